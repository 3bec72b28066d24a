package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Upload(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
	Cat(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Whoami(ctx context.Context) error
}

const helpText = "Available commands: upload <file> [name], download <path> [dir], cat <path>, delete <name>, (l)ist, whoami, exit"

// runREPL starts a simple read–eval–print loop for the filestorage CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command and passes the remaining tokens to the handler on 'a'. Unknown
// commands are reported back to the user. The loop exits on scanner EOF or
// when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("fs %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "upload", "put":
			_ = a.Upload(ctx, args)

		case "download", "get":
			_ = a.Download(ctx, args)

		case "cat":
			_ = a.Cat(ctx, args)

		case "delete", "rm":
			_ = a.Delete(ctx, args)

		case "l", "list", "ls":
			_ = a.List(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
