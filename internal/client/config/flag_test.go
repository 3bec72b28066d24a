package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		initial     *Config
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "Test1 OK",
			args: []string{"cmd", "-m", "ledger", "-a", "127.0.0.1:9090", "-t", "10", "-o", "0xabc",
				"-l", "http://node", "-k", "0x01", "-chunk", "64", "-d", "out", "-debug"},
			expected: &Config{
				GatewayMode:     ModeLedger,
				GatewayAddr:     "127.0.0.1:9090",
				CallTimeout:     10 * time.Second,
				Owner:           "0xabc",
				LedgerEndpoint:  "http://node",
				ContractAddress: "0x01",
				ChunkLength:     64,
				DownloadDir:     "out",
				Debug:           true,
			},
		},
		{
			name:     "Test2 private key is not a flag",
			args:     []string{"cmd", "-private-key", "secret", "-a", "h:1"},
			expected: &Config{GatewayAddr: "h:1"},
		},
		{
			name:     "Test3 timeout kept when -t is absent",
			args:     []string{"cmd", "-a", "h:2"},
			initial:  &Config{CallTimeout: 250 * time.Millisecond},
			expected: &Config{GatewayAddr: "h:2", CallTimeout: 250 * time.Millisecond},
		},
		{name: "Test4 incorrect timeout", args: []string{"cmd", "-a", "127.0.0.1:9090", "-t", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}
			if tt.initial != nil {
				*config = *tt.initial
			}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
