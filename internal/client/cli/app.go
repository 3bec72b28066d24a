package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/filestorage/internal/client/config"
	"github.com/dmitrijs2005/filestorage/internal/filestorage"
	"github.com/dmitrijs2005/filestorage/internal/gateway"
	"github.com/dmitrijs2005/filestorage/internal/gateway/ledger"
	"github.com/dmitrijs2005/filestorage/internal/gateway/memory"
	"github.com/dmitrijs2005/filestorage/internal/logging"

	gs "github.com/dmitrijs2005/filestorage/internal/gateway/grpc"
)

var (
	ErrUnknownMode = errors.New("unknown gateway mode")
	ErrNoOwner     = errors.New("owner address is required")
)

// dialLedger is a test seam for ledger.Dial.
var dialLedger = ledger.Dial

type App struct {
	config *config.Config
	client *filestorage.Client
	closer io.Closer
	owner  string
	reader *bufio.Reader
	out    io.Writer
}

// NewApp connects to the gateway selected by c.GatewayMode and resolves the
// owner, prompting on in when it is not configured.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	logger := logging.NewJSONLogger(os.Stderr, c.Debug)
	reader := bufio.NewReader(in)

	gw, closer, owner, err := openGateway(ctx, c, reader, out, logger)
	if err != nil {
		return nil, err
	}

	if owner == "" {
		owner, err = GetSimpleText(reader, "Enter owner address", out)
		if err != nil || owner == "" {
			if closer != nil {
				_ = closer.Close()
			}
			return nil, ErrNoOwner
		}
	}

	client := filestorage.New(gw,
		filestorage.WithChunkLength(c.ChunkLength),
		filestorage.WithLogger(logger),
	)

	return &App{config: c, client: client, closer: closer, owner: owner, reader: reader, out: out}, nil
}

func openGateway(ctx context.Context, c *config.Config, reader *bufio.Reader, out io.Writer, l logging.Logger) (gateway.Gateway, io.Closer, string, error) {
	switch c.GatewayMode {
	case config.ModeGRPC:
		cl, err := gs.NewClient(c.GatewayAddr, c.CallTimeout)
		if err != nil {
			return nil, nil, "", fmt.Errorf("grpc client: %w", err)
		}
		return cl, cl, c.Owner, nil

	case config.ModeLedger:
		key := c.PrivateKey
		if key == "" {
			secret, err := GetSecret("Enter private key (empty for read-only): ", out)
			if err != nil {
				return nil, nil, "", err
			}
			key = string(secret)
		}

		g, err := dialLedger(ctx, ledger.Config{
			Endpoint:        c.LedgerEndpoint,
			ContractAddress: c.ContractAddress,
			PrivateKey:      key,
		}, l)
		if err != nil {
			return nil, nil, "", err
		}

		owner := c.Owner
		if owner == "" && key != "" {
			owner = g.Address()
		}
		return g, g, owner, nil

	case config.ModeMemory:
		return memory.New(c.ChunkLength), nil, c.Owner, nil

	default:
		return nil, nil, "", fmt.Errorf("%w: %q", ErrUnknownMode, c.GatewayMode)
	}
}

// Run starts the REPL on the app input and blocks until the user exits or
// the input ends.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	printlnFn("Welcome to filestorage CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) getStatus() string {
	return fmt.Sprintf("(%s %s)", shortOwner(a.owner), a.config.GatewayMode)
}

func (a *App) close() {
	if a.closer == nil {
		return
	}
	if err := a.closer.Close(); err != nil {
		printlnFn("close error:", err)
	}
}

func shortOwner(owner string) string {
	if len(owner) <= 10 {
		return owner
	}
	return owner[:6] + ".." + owner[len(owner)-4:]
}
