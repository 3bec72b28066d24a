// Package ledger talks to the filestorage contract on an Ethereum-compatible
// chain. Reads are eth_call queries; mutations are signed transactions that
// are awaited until mined.
package ledger

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/dmitrijs2005/filestorage/internal/codec"
	"github.com/dmitrijs2005/filestorage/internal/common"
	"github.com/dmitrijs2005/filestorage/internal/gateway"
	"github.com/dmitrijs2005/filestorage/internal/logging"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

var (
	ErrTransactionFailed = errors.New("transaction failed")
	ErrOwnerMismatch     = errors.New("owner is not the signing account")
	ErrReadOnly          = errors.New("no signing key configured")
	ErrInvalidAddress    = errors.New("invalid address")
)

// Backend is what the gateway needs from a node connection.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

type Config struct {
	Endpoint        string
	ContractAddress string
	// PrivateKey is hex, with or without the wire prefix. Empty means
	// read-only.
	PrivateKey string
}

type Gateway struct {
	backend  Backend
	contract *bind.BoundContract
	auth     *bind.TransactOpts
	logger   logging.Logger
}

// Dial connects to the node at cfg.Endpoint and binds the contract.
func Dial(ctx context.Context, cfg Config, l logging.Logger) (*Gateway, error) {
	client, err := ethclient.DialContext(ctx, cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.Endpoint, err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("chain id: %w", err)
	}

	var key *ecdsa.PrivateKey
	if cfg.PrivateKey != "" {
		if key, err = crypto.HexToECDSA(codec.StripWirePrefix(cfg.PrivateKey)); err != nil {
			client.Close()
			return nil, fmt.Errorf("private key: %w", err)
		}
	}

	address := cfg.ContractAddress
	if address == "" {
		address = DefaultContractAddress
	}

	g, err := New(client, chainID, address, key, l)
	if err != nil {
		client.Close()
		return nil, err
	}
	return g, nil
}

// New binds the contract at address through backend. key may be nil for a
// read-only gateway.
func New(backend Backend, chainID *big.Int, address string, key *ecdsa.PrivateKey, l logging.Logger) (*Gateway, error) {
	if !ethcommon.IsHexAddress(address) {
		return nil, fmt.Errorf("contract %q: %w", address, ErrInvalidAddress)
	}
	if l == nil {
		l = logging.Nop{}
	}

	g := &Gateway{
		backend:  backend,
		contract: bind.NewBoundContract(ethcommon.HexToAddress(address), parsedABI, backend, backend, backend),
		logger:   l.With("module", "ledger"),
	}

	if key != nil {
		auth, err := bind.NewKeyedTransactorWithChainID(key, chainID)
		if err != nil {
			return nil, fmt.Errorf("transactor: %w", err)
		}
		g.auth = auth
	}
	return g, nil
}

// Close releases the node connection when the backend holds one.
func (g *Gateway) Close() error {
	if c, ok := g.backend.(interface{ Close() }); ok {
		c.Close()
	}
	return nil
}

// Address is the signing account, or the zero address when read-only.
func (g *Gateway) Address() string {
	if g.auth == nil {
		return ethcommon.Address{}.Hex()
	}
	return g.auth.From.Hex()
}

// transact sends a signed call on behalf of owner and waits for it to be mined.
func (g *Gateway) transact(ctx context.Context, owner, method string, params ...any) error {
	if g.auth == nil {
		return ErrReadOnly
	}
	if gateway.OwnerKey(owner) != gateway.OwnerKey(g.auth.From.Hex()) {
		return fmt.Errorf("%s: %w", owner, ErrOwnerMismatch)
	}

	opts := *g.auth
	opts.Context = ctx

	tx, err := g.contract.Transact(&opts, method, params...)
	if err != nil {
		return fmt.Errorf("%s: %w", method, revertError(err))
	}

	receipt, err := bind.WaitMined(ctx, g.backend, tx)
	if err != nil {
		return fmt.Errorf("%s: wait mined: %w", method, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("%s: tx %s: %w", method, tx.Hash().Hex(), ErrTransactionFailed)
	}

	g.logger.Debug(ctx, "transaction mined", "method", method, "tx", tx.Hash().Hex(), "gas", receipt.GasUsed)
	return nil
}

func (g *Gateway) call(ctx context.Context, method string, params ...any) ([]any, error) {
	opts := &bind.CallOpts{Context: ctx}
	if g.auth != nil {
		opts.From = g.auth.From
	}

	var out []any
	if err := g.contract.Call(opts, &out, method, params...); err != nil {
		return nil, fmt.Errorf("%s: %w", method, revertError(err))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: empty result", method)
	}
	return out, nil
}

func (g *Gateway) StartUpload(ctx context.Context, owner, fileName string, totalSize int64) error {
	return g.transact(ctx, owner, "startUpload", fileName, big.NewInt(totalSize))
}

func (g *Gateway) UploadChunk(ctx context.Context, owner, fileName string, offset int64, payload string) error {
	data, err := codec.HexToBytes(payload)
	if err != nil {
		return fmt.Errorf("%v: %w", err, gateway.ErrInvalidChunk)
	}
	return g.transact(ctx, owner, "uploadChunk", fileName, big.NewInt(offset), data)
}

func (g *Gateway) FinishUpload(ctx context.Context, owner, fileName string) error {
	return g.transact(ctx, owner, "finishUpload", fileName)
}

func (g *Gateway) DeleteFile(ctx context.Context, owner, fileName string) error {
	return g.transact(ctx, owner, "deleteFile", fileName)
}

func (g *Gateway) GetFileSize(ctx context.Context, storagePath string) (int64, error) {
	out, err := g.call(ctx, "getFileSize", storagePath)
	if err != nil {
		return 0, err
	}
	size := abi.ConvertType(out[0], new(big.Int)).(*big.Int)
	if !size.IsInt64() {
		return 0, fmt.Errorf("getFileSize: size %s overflows int64", size)
	}
	return size.Int64(), nil
}

// ReadChunk trims the contract's fixed-size word array to the words that
// cover length bytes.
func (g *Gateway) ReadChunk(ctx context.Context, storagePath string, offset, length int64) ([]codec.Word, error) {
	if length < 0 || length > gateway.MaxReadLength {
		return nil, fmt.Errorf("length %d: %w", length, gateway.ErrOutOfRange)
	}
	n := (length + common.WordSize - 1) / common.WordSize

	out, err := g.call(ctx, "readChunk", storagePath, big.NewInt(offset), big.NewInt(length))
	if err != nil {
		return nil, err
	}
	blocks := abi.ConvertType(out[0], new([maxBlockCount][32]byte)).(*[maxBlockCount][32]byte)

	words := make([]codec.Word, n)
	for i := range words {
		words[i] = codec.Word(blocks[i])
	}
	return words, nil
}

func (g *Gateway) GetFileInfoList(ctx context.Context, owner string) ([]gateway.FileRecord, error) {
	address := codec.AddWirePrefix(owner)
	if !ethcommon.IsHexAddress(address) {
		return nil, fmt.Errorf("owner %q: %w", owner, ErrInvalidAddress)
	}

	out, err := g.call(ctx, "getFileInfoList", ethcommon.HexToAddress(address))
	if err != nil {
		return nil, err
	}
	return toRecords(*abi.ConvertType(out[0], new([]fileInfo)).(*[]fileInfo))
}

func toRecords(infos []fileInfo) ([]gateway.FileRecord, error) {
	result := make([]gateway.FileRecord, 0, len(infos))
	for _, fi := range infos {
		if fi.Size == nil || !fi.Size.IsInt64() {
			return nil, fmt.Errorf("getFileInfoList: size %v of %q overflows int64", fi.Size, fi.Name)
		}
		result = append(result, gateway.FileRecord{
			Name:            fi.Name,
			Size:            fi.Size.Int64(),
			IsChunkUploaded: fi.IsChunkUploaded,
		})
	}
	return result, nil
}

// revertSentinels are matched against revert reasons, in order.
var revertSentinels = []error{
	gateway.ErrChunkAlreadyUploaded,
	gateway.ErrIncompleteUpload,
	gateway.ErrAlreadyExists,
	gateway.ErrNotFound,
	gateway.ErrInvalidChunk,
	gateway.ErrInvalidFileName,
	gateway.ErrInvalidSize,
	gateway.ErrInvalidStoragePath,
	gateway.ErrOutOfRange,
}

type revert struct {
	err      error
	sentinel error
}

func (r *revert) Error() string   { return r.err.Error() }
func (r *revert) Unwrap() []error { return []error{r.err, r.sentinel} }

// revertError attaches the gateway sentinel named by a revert reason.
func revertError(err error) error {
	msg := strings.ToLower(err.Error())
	for _, s := range revertSentinels {
		if strings.Contains(msg, s.Error()) {
			return &revert{err: err, sentinel: s}
		}
	}
	return err
}
