package config

import (
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/filestorage/internal/common"
	"github.com/dmitrijs2005/filestorage/internal/gateway/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ModeGRPC, c.GatewayMode)
	assert.Equal(t, "127.0.0.1:50051", c.GatewayAddr)
	assert.Equal(t, 30*time.Second, c.CallTimeout)
	assert.Empty(t, c.Owner)
	assert.Equal(t, "http://127.0.0.1:8545", c.LedgerEndpoint)
	assert.Equal(t, ledger.DefaultContractAddress, c.ContractAddress)
	assert.Empty(t, c.PrivateKey)
	assert.Equal(t, common.ChunkLength, c.ChunkLength)
	assert.Equal(t, "downloads", c.DownloadDir)
	assert.False(t, c.Debug)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "127.0.0.1:50051", cfg.GatewayAddr)
	assert.Equal(t, 30*time.Second, cfg.CallTimeout)
}

func TestLoadConfig_EnvOverJSONFlagsOverEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"gateway_mode": "memory",
		"owner":        "0xjson",
		"private_key":  "abc123",
	})
	t.Setenv("FILESTORAGE_OWNER", "0xenv")
	t.Setenv("FILESTORAGE_GATEWAY_MODE", "ledger")
	os.Args = []string{"testbin", "-c", path, "-m", "grpc"}

	cfg := LoadConfig()

	assert.Equal(t, "0xenv", cfg.Owner)
	assert.Equal(t, ModeGRPC, cfg.GatewayMode)
	assert.Equal(t, "abc123", cfg.PrivateKey)
}

func TestLoadConfig_SubSecondTimeoutSurvivesWithoutFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Setenv("FILESTORAGE_CALL_TIMEOUT", "1500ms")

	os.Args = []string{"testbin"}
	assert.Equal(t, 1500*time.Millisecond, LoadConfig().CallTimeout)

	os.Args = []string{"testbin", "-t", "3"}
	assert.Equal(t, 3*time.Second, LoadConfig().CallTimeout)
}
