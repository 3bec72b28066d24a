package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/filestorage/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags. Only
// the flags listed in the package documentation are considered; the rest of
// os.Args is left to other parsers.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-m", "-a", "-t", "-o", "-l", "-k", "-chunk", "-d", "-debug"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.GatewayMode, "m", cfg.GatewayMode, "gateway mode (grpc|ledger|memory)")
	fs.StringVar(&cfg.GatewayAddr, "a", cfg.GatewayAddr, "address and port of the gateway server")
	callTimeout := fs.Int("t", int(cfg.CallTimeout.Seconds()), "per-call timeout (in seconds)")
	fs.StringVar(&cfg.Owner, "o", cfg.Owner, "owner address")
	fs.StringVar(&cfg.LedgerEndpoint, "l", cfg.LedgerEndpoint, "ledger node endpoint")
	fs.StringVar(&cfg.ContractAddress, "k", cfg.ContractAddress, "filestorage contract address")
	fs.Int64Var(&cfg.ChunkLength, "chunk", cfg.ChunkLength, "chunk length in bytes")
	fs.StringVar(&cfg.DownloadDir, "d", cfg.DownloadDir, "download directory")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "debug logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t is whole seconds; keep a finer JSON or env duration unless it is given
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.CallTimeout = time.Duration(*callTimeout) * time.Second
		}
	})
}
