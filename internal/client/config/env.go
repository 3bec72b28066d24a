package config

import "github.com/kelseyhightower/envconfig"

const envPrefix = "FILESTORAGE"

// parseEnv overlays cfg with FILESTORAGE_* variables. Durations use Go
// syntax, e.g. FILESTORAGE_CALL_TIMEOUT=10s.
func parseEnv(cfg *Config) {
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		panic(err)
	}
}
