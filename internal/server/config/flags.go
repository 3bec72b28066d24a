package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/filestorage/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string        gRPC bind address (e.g., ":50051")
//	-driver string   record database driver: sqlite or pgx
//	-d string        record database DSN
//	-blobs string    chunk storage: badger or s3
//	-badger string   badger directory, empty for in-memory
//	-compress        lz4-compress stored chunks
//	-chunk int       chunk length in bytes
//	-u string        S3 root user
//	-p string        S3 root password
//	-b string        S3 bucket name
//	-g string        S3 region
//	-e string        S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-debug           debug logging
//
// Boolean flags take no separate value; use -compress=false to switch off.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-driver", "-d", "-blobs", "-badger", "-compress", "-chunk",
		"-u", "-p", "-b", "-g", "-e", "-debug",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "database driver (sqlite|pgx)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.BlobBackend, "blobs", config.BlobBackend, "blob backend (badger|s3)")
	fs.StringVar(&config.BadgerPath, "badger", config.BadgerPath, "badger directory")
	fs.BoolVar(&config.Compress, "compress", config.Compress, "compress stored chunks")
	fs.Int64Var(&config.ChunkLength, "chunk", config.ChunkLength, "chunk length in bytes")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.BoolVar(&config.Debug, "debug", config.Debug, "debug logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
