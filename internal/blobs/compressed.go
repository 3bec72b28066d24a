package blobs

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// Compressed wraps a Store and keeps values lz4-framed at rest.
type Compressed struct {
	Store
}

func NewCompressed(s Store) *Compressed {
	return &Compressed{Store: s}
}

func (c *Compressed) Put(ctx context.Context, key string, data []byte) error {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("lz4 compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("lz4 compress: %w", err)
	}
	return c.Store.Put(ctx, key, buf.Bytes())
}

func (c *Compressed) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := c.Store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(lz4.NewReader(bytes.NewReader(raw)))
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress %q: %w", key, err)
	}
	return data, nil
}
