package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
)

var errUsage = errors.New("usage")

func usage(text string) error {
	printlnFn("Usage:", text)
	return errUsage
}

func report(err error) error {
	if err != nil {
		printlnFn("Error:", err.Error())
	}
	return err
}

// Upload reads a local file and stores it under the given name, or under its
// base name when none is given.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return usage("upload <file> [name]")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return report(err)
	}

	name := filepath.Base(args[0])
	if len(args) == 2 {
		name = args[1]
	}

	path, err := a.client.UploadFile(ctx, a.owner, name, data)
	if err != nil {
		return report(err)
	}
	printlnFn(fmt.Sprintf("Uploaded %d bytes as %s", len(data), path))
	return nil
}

// Download saves a stored file into the given directory, or into the
// configured download directory.
func (a *App) Download(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return usage("download <path> [dir]")
	}

	dir := a.config.DownloadDir
	if len(args) == 2 {
		dir = args[1]
	}

	local, err := a.client.DownloadToFile(ctx, args[0], dir)
	if err != nil {
		return report(err)
	}
	printlnFn("Saved to", local)
	return nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// Cat streams a stored file to the app output.
func (a *App) Cat(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("cat <path>")
	}

	if _, err := a.client.DownloadToStream(ctx, args[0], nopWriteCloser{a.out}); err != nil {
		return report(err)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Delete removes a file of the current owner.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delete <name>")
	}

	if err := a.client.DeleteFile(ctx, a.owner, args[0]); err != nil {
		return report(err)
	}
	printlnFn("Deleted", args[0])
	return nil
}

// List prints the files of the current owner.
func (a *App) List(ctx context.Context) error {
	files, err := a.client.ListFiles(ctx, a.owner)
	if err != nil {
		return report(err)
	}

	if len(files) == 0 {
		printlnFn("No files")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tPROGRESS\tPATH")
	for _, f := range files {
		fmt.Fprintf(tw, "%s\t%d\t%d%%\t%s\n", f.Name, f.Size, f.UploadingProgress, f.StoragePath)
	}
	return tw.Flush()
}

// Whoami prints the owner address and the gateway in use.
func (a *App) Whoami(ctx context.Context) error {
	printlnFn(fmt.Sprintf("owner %s via %s gateway", a.owner, a.config.GatewayMode))
	return nil
}
