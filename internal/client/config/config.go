package config

import (
	"time"

	"github.com/dmitrijs2005/filestorage/internal/common"
	"github.com/dmitrijs2005/filestorage/internal/gateway/ledger"
)

// Gateway modes.
const (
	ModeGRPC   = "grpc"
	ModeLedger = "ledger"
	ModeMemory = "memory"
)

// Config holds runtime settings for the filestorage CLI.
type Config struct {
	GatewayMode     string        `envconfig:"GATEWAY_MODE"`
	GatewayAddr     string        `envconfig:"GATEWAY_ADDR"`
	CallTimeout     time.Duration `envconfig:"CALL_TIMEOUT"`
	Owner           string        `envconfig:"OWNER"`
	LedgerEndpoint  string        `envconfig:"LEDGER_ENDPOINT"`
	ContractAddress string        `envconfig:"CONTRACT_ADDRESS"`
	PrivateKey      string        `envconfig:"PRIVATE_KEY"`
	ChunkLength     int64         `envconfig:"CHUNK_LENGTH"`
	DownloadDir     string        `envconfig:"DOWNLOAD_DIR"`
	Debug           bool          `envconfig:"LOG_DEBUG"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.GatewayMode = ModeGRPC
	c.GatewayAddr = "127.0.0.1:50051"
	c.CallTimeout = 30 * time.Second
	c.Owner = ""
	c.LedgerEndpoint = "http://127.0.0.1:8545"
	c.ContractAddress = ledger.DefaultContractAddress
	c.PrivateKey = ""
	c.ChunkLength = common.ChunkLength
	c.DownloadDir = "downloads"
	c.Debug = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
