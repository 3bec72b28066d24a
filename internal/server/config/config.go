// Package config handles configuration for the gateway server: defaults,
// JSON overlay, environment variables and command-line flags, applied in
// that order.
package config

import (
	"github.com/dmitrijs2005/filestorage/internal/common"
)

// Config holds runtime settings for the gateway server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the gRPC endpoint.
//   - DatabaseDriver / DatabaseDSN: record database, "sqlite" or "pgx".
//   - BlobBackend: chunk storage, "badger" or "s3".
//   - BadgerPath: badger directory; empty keeps blobs in memory.
//   - Compress: lz4-compress chunks at rest.
//   - ChunkLength: chunk length the gateway enforces; clients must match it.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint:
//     S3-compatible backend settings.
//   - Debug: enables debug logging.
type Config struct {
	EndpointAddrGRPC string `envconfig:"GRPC_ADDR"`
	DatabaseDriver   string `envconfig:"DATABASE_DRIVER"`
	DatabaseDSN      string `envconfig:"DATABASE_DSN"`
	BlobBackend      string `envconfig:"BLOB_BACKEND"`
	BadgerPath       string `envconfig:"BADGER_PATH"`
	Compress         bool   `envconfig:"COMPRESS"`
	ChunkLength      int64  `envconfig:"CHUNK_LENGTH"`
	S3RootUser       string `envconfig:"S3_ROOT_USER"`
	S3RootPassword   string `envconfig:"S3_ROOT_PASSWORD"`
	S3Bucket         string `envconfig:"S3_BUCKET"`
	S3Region         string `envconfig:"S3_REGION"`
	S3BaseEndpoint   string `envconfig:"S3_BASE_ENDPOINT"`
	Debug            bool   `envconfig:"LOG_DEBUG"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: the S3 credentials are the local MinIO ones and must be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "filestorage.db"
	c.BlobBackend = "badger"
	c.BadgerPath = "data/blobs"
	c.Compress = false
	c.ChunkLength = common.ChunkLength
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "filestorage"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.Debug = false
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
