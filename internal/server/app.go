// Package server wires the gateway server: record database, chunk blob
// store and the gRPC endpoint, with graceful shutdown on SIGINT, SIGTERM
// and SIGQUIT.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/filestorage/internal/blobs"
	"github.com/dmitrijs2005/filestorage/internal/gateway/store"
	"github.com/dmitrijs2005/filestorage/internal/logging"
	"github.com/dmitrijs2005/filestorage/internal/records"
	"github.com/dmitrijs2005/filestorage/internal/server/config"

	gs "github.com/dmitrijs2005/filestorage/internal/gateway/grpc"
)

// Blob backends.
const (
	BlobBackendBadger = "badger"
	BlobBackendS3     = "s3"
)

var ErrUnknownBlobBackend = errors.New("unknown blob backend")

type App struct {
	config *config.Config
	logger logging.Logger
	db     *records.Database
	blobs  blobs.Store
}

// NewApp opens and migrates the record database and opens the blob store.
// Logs go to w as JSON.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	logger := logging.NewJSONLogger(w, c.Debug)

	db, err := records.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	bs, err := openBlobs(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	return &App{config: c, logger: logger, db: db, blobs: bs}, nil
}

func openBlobs(ctx context.Context, c *config.Config) (blobs.Store, error) {
	var (
		bs  blobs.Store
		err error
	)

	switch c.BlobBackend {
	case BlobBackendBadger:
		bs, err = blobs.NewBadgerStore(c.BadgerPath)
	case BlobBackendS3:
		bs, err = blobs.NewS3Store(ctx, blobs.S3Config{
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Bucket:       c.S3Bucket,
			BaseEndpoint: c.S3BaseEndpoint,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlobBackend, c.BlobBackend)
	}
	if err != nil {
		return nil, err
	}

	if c.Compress {
		return blobs.NewCompressed(bs), nil
	}
	return bs, nil
}

// Run serves the gateway until ctx is done or a shutdown signal arrives,
// then releases the stores.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	defer app.close(ctx)

	app.logger.Info(ctx, "Starting app...",
		"database", app.config.DatabaseDriver,
		"blobs", app.config.BlobBackend,
		"chunk_length", app.config.ChunkLength)

	gw := store.New(app.db, app.blobs, app.config.ChunkLength, app.logger)
	s := gs.NewServer(app.config.EndpointAddrGRPC, gw, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}
	return nil
}

func (app *App) close(ctx context.Context) {
	if err := app.blobs.Close(); err != nil {
		app.logger.Error(ctx, "blob store close error", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}

// Main loads the configuration and runs the app, returning a process exit code.
func Main() int {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := NewApp(ctx, cfg, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := app.Run(ctx); err != nil {
		return 1
	}
	return 0
}
