// Package cli provides the interactive filestorage command-line client.
//
// It wires configuration, a gateway (remote gRPC server, ledger node or an
// in-process memory gateway) and an interactive REPL. Typical flow: pick the
// gateway from the configured mode, resolve the owner address, then execute
// user commands until exit.
//
// Commands:
//   - upload <file> [name]     upload a local file
//   - download <path> [dir]    download a stored file into a directory
//   - cat <path>               print a stored file
//   - delete <name>            delete a file of the current owner
//   - list                     list files of the current owner with progress
//   - whoami                   show the owner and gateway mode
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
