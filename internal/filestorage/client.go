// Package filestorage moves whole files through a gateway.Gateway in
// fixed-size chunks.
//
// Uploads open a file record, send every chunk in ascending offset order and
// seal the record; the gateway refuses to seal a record with missing chunks.
// Downloads ask for the declared size and read the file back chunk by chunk,
// trimming the word padding of each read. There is no retry and no resume:
// the first gateway error aborts the transfer and is returned to the caller.
package filestorage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/filestorage/internal/codec"
	"github.com/dmitrijs2005/filestorage/internal/common"
	"github.com/dmitrijs2005/filestorage/internal/filex"
	"github.com/dmitrijs2005/filestorage/internal/gateway"
	"github.com/dmitrijs2005/filestorage/internal/logging"
	"github.com/google/uuid"
)

// ErrStreamUnavailable is returned by the streaming download when no sink is
// supplied.
var ErrStreamUnavailable = errors.New("stream sink is not available")

type Client struct {
	gw          gateway.Gateway
	chunkLength int64
	logger      logging.Logger
}

type Option func(*Client)

// WithChunkLength overrides common.ChunkLength. It must match the chunk
// length the gateway enforces. Non-positive values are ignored.
func WithChunkLength(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.chunkLength = n
		}
	}
}

// WithLogger enables transfer logging. Per-chunk progress is logged at debug
// level.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func New(gw gateway.Gateway, opts ...Option) *Client {
	c := &Client{
		gw:          gw,
		chunkLength: common.ChunkLength,
		logger:      logging.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("module", "filestorage")
	return c
}

// ChunkLength reports the chunk length used for slicing.
func (c *Client) ChunkLength() int64 {
	return c.chunkLength
}

// UploadFile stores data as fileName of owner and returns its storage path.
func (c *Client) UploadFile(ctx context.Context, owner, fileName string, data []byte) (string, error) {
	log := c.logger.With("transfer_id", uuid.NewString(), "file", fileName)
	size := int64(len(data))

	if err := c.gw.StartUpload(ctx, owner, fileName, size); err != nil {
		return "", fmt.Errorf("start upload of %s: %w", fileName, err)
	}

	var chunk int
	for offset := int64(0); offset < size; chunk++ {
		end := min(offset+c.chunkLength, size)
		payload := codec.AddWirePrefix(codec.BytesToHex(data[offset:end]))

		if err := c.gw.UploadChunk(ctx, owner, fileName, offset, payload); err != nil {
			return "", fmt.Errorf("upload chunk %d of %s at offset %d: %w", chunk, fileName, offset, err)
		}

		offset += int64(len(codec.StripWirePrefix(payload)) / 2)
		log.Debug(ctx, "chunk uploaded", "chunk", chunk, "sent_bytes", offset, "total_bytes", size)
	}

	if err := c.gw.FinishUpload(ctx, owner, fileName); err != nil {
		return "", fmt.Errorf("finish upload of %s: %w", fileName, err)
	}

	log.Debug(ctx, "file uploaded", "chunks", chunk, "size", size)
	return gateway.StoragePath(owner, fileName), nil
}

// download reads the file at storagePath in ascending chunk order. Each chunk
// is written to sink, when given, as soon as it is decoded; the whole file is
// accumulated and returned as well.
func (c *Client) download(ctx context.Context, storagePath string, sink io.Writer) ([]byte, error) {
	log := c.logger.With("transfer_id", uuid.NewString(), "path", storagePath)

	size, err := c.gw.GetFileSize(ctx, storagePath)
	if err != nil {
		return nil, fmt.Errorf("size of %s: %w", storagePath, err)
	}
	if size < 0 {
		return nil, fmt.Errorf("size of %s is %d: %w", storagePath, size, gateway.ErrInvalidSize)
	}

	var buf bytes.Buffer
	buf.Grow(int(size))

	var chunk int
	for offset := int64(0); offset < size; chunk++ {
		length := min(c.chunkLength, size-offset)

		words, err := c.gw.ReadChunk(ctx, storagePath, offset, length)
		if err != nil {
			return nil, fmt.Errorf("read chunk %d of %s at offset %d: %w", chunk, storagePath, offset, err)
		}

		data, err := codec.ConcatWords(words, int(length))
		if err != nil {
			return nil, fmt.Errorf("decode chunk %d of %s: %w", chunk, storagePath, err)
		}

		if sink != nil {
			if _, err := sink.Write(data); err != nil {
				return nil, fmt.Errorf("write chunk %d of %s: %w", chunk, storagePath, err)
			}
		}
		buf.Write(data)

		offset += length
		log.Debug(ctx, "chunk downloaded", "chunk", chunk, "received_bytes", offset, "total_bytes", size)
	}

	log.Debug(ctx, "file downloaded", "chunks", chunk, "size", size)
	return buf.Bytes(), nil
}

// DownloadToBuffer returns the contents of the file at storagePath.
func (c *Client) DownloadToBuffer(ctx context.Context, storagePath string) ([]byte, error) {
	return c.download(ctx, storagePath, nil)
}

// DownloadToStream writes the file at storagePath to sink chunk by chunk and
// also returns the whole contents. sink is closed on return, whether or not
// the transfer succeeded. A nil sink fails with ErrStreamUnavailable before
// the gateway is contacted.
func (c *Client) DownloadToStream(ctx context.Context, storagePath string, sink io.WriteCloser) (data []byte, err error) {
	if sink == nil {
		return nil, ErrStreamUnavailable
	}

	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close sink: %w", cerr)
		}
	}()

	return c.download(ctx, storagePath, sink)
}

// DownloadToFile streams the file at storagePath into dir, naming it after
// the last element of the path, and returns the local file path. A failed
// transfer removes the partial file.
func (c *Client) DownloadToFile(ctx context.Context, storagePath, dir string) (string, error) {
	_, name, err := gateway.SplitStoragePath(storagePath)
	if err != nil {
		return "", err
	}

	f, err := filex.Create(dir, name)
	if err != nil {
		return "", err
	}

	if _, err := c.DownloadToStream(ctx, storagePath, f); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// DeleteFile removes fileName of owner from the gateway.
func (c *Client) DeleteFile(ctx context.Context, owner, fileName string) error {
	if err := c.gw.DeleteFile(ctx, owner, fileName); err != nil {
		return fmt.Errorf("delete %s: %w", fileName, err)
	}
	return nil
}
