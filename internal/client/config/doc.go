// Package config loads runtime configuration for the filestorage CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. FILESTORAGE_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-m string   gateway mode: grpc, ledger or memory
//	-a string   address:port of the gateway server (grpc mode)
//	-t int      per-call timeout (seconds)
//	-o string   owner address used for uploads and listings
//	-l string   ledger node endpoint (ledger mode)
//	-k string   filestorage contract address (ledger mode)
//	-chunk int  chunk length in bytes
//	-d string   download directory
//	-debug      debug logging
//
// The signing key is never taken from flags. Set it in the JSON file or in
// FILESTORAGE_PRIVATE_KEY; in ledger mode the CLI prompts for it otherwise.
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "30s"
// or integer nanoseconds:
//
//	{
//	  "gateway_mode": "grpc",
//	  "gateway_addr": "127.0.0.1:50051",
//	  "call_timeout": "30s",
//	  "owner": "0x...",
//	  "download_dir": "downloads"
//	}
package config
