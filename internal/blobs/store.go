// Package blobs stores chunk bytes for the store-backed gateway. Keys are
// opaque strings built with Key; values are raw chunk bytes.
package blobs

import (
	"context"
	"fmt"
)

// Store is a flat key/value blob store. Get on a missing key returns an error
// wrapping common.ErrorNotFound.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key names the blob holding chunk index of the file at storagePath.
func Key(storagePath string, index int) string {
	return fmt.Sprintf("%s#%d", storagePath, index)
}
