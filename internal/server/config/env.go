package config

import "github.com/kelseyhightower/envconfig"

const envPrefix = "FILESTORAGE"

// parseEnv overlays config with FILESTORAGE_* variables, e.g.
// FILESTORAGE_DATABASE_DSN. Unset variables leave fields untouched.
func parseEnv(config *Config) {
	if err := envconfig.Process(envPrefix, config); err != nil {
		panic(err)
	}
}
