package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/filestorage/internal/flagx"
)

// JsonConfig is the on-disk form of Config. Absent keys leave the current
// value untouched.
type JsonConfig struct {
	EndpointAddrGRPC string `json:"endpoint_addr_grpc"`
	DatabaseDriver   string `json:"database_driver"`
	DatabaseDSN      string `json:"database_dsn"`
	BlobBackend      string `json:"blob_backend"`
	BadgerPath       string `json:"badger_path"`
	Compress         *bool  `json:"compress"`
	ChunkLength      int64  `json:"chunk_length"`
	S3RootUser       string `json:"s3_root_user"`
	S3RootPassword   string `json:"s3_root_password"`
	S3Bucket         string `json:"s3_bucket"`
	S3Region         string `json:"s3_region"`
	S3BaseEndpoint   string `json:"s3_base_endpoint"`
	Debug            *bool  `json:"debug"`
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// parseJson overlays config with the JSON file named by -c or -config.
// Without either flag nothing is loaded. It panics if the file cannot be read
// or parsed.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.BlobBackend, c.BlobBackend)
	setString(&config.BadgerPath, c.BadgerPath)
	if c.Compress != nil {
		config.Compress = *c.Compress
	}
	if c.ChunkLength > 0 {
		config.ChunkLength = c.ChunkLength
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.Debug != nil {
		config.Debug = *c.Debug
	}
}
