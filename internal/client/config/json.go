package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/filestorage/internal/flagx"
	"github.com/dmitrijs2005/filestorage/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Keys that are
// absent leave the corresponding Config field untouched.
type JsonConfig struct {
	GatewayMode     string         `json:"gateway_mode"`
	GatewayAddr     string         `json:"gateway_addr"`
	CallTimeout     timex.Duration `json:"call_timeout"`
	Owner           string         `json:"owner"`
	LedgerEndpoint  string         `json:"ledger_endpoint"`
	ContractAddress string         `json:"contract_address"`
	PrivateKey      string         `json:"private_key"`
	ChunkLength     int64          `json:"chunk_length"`
	DownloadDir     string         `json:"download_dir"`
	Debug           *bool          `json:"debug"`
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// parseJson overlays cfg with the JSON file named by -c or -config. It
// panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.GatewayMode, jc.GatewayMode)
	setString(&cfg.GatewayAddr, jc.GatewayAddr)
	if jc.CallTimeout.Duration > 0 {
		cfg.CallTimeout = jc.CallTimeout.Duration
	}
	setString(&cfg.Owner, jc.Owner)
	setString(&cfg.LedgerEndpoint, jc.LedgerEndpoint)
	setString(&cfg.ContractAddress, jc.ContractAddress)
	setString(&cfg.PrivateKey, jc.PrivateKey)
	if jc.ChunkLength > 0 {
		cfg.ChunkLength = jc.ChunkLength
	}
	setString(&cfg.DownloadDir, jc.DownloadDir)
	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
}
