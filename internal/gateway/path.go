package gateway

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/filestorage/internal/codec"
)

// StoragePath identifies a stored file: the owner address without its wire
// prefix, a slash, and the file name.
func StoragePath(owner, fileName string) string {
	return codec.StripWirePrefix(owner) + "/" + fileName
}

// SplitStoragePath is the inverse of StoragePath. The owner it returns has no
// wire prefix.
func SplitStoragePath(storagePath string) (owner, fileName string, err error) {
	owner, fileName, ok := strings.Cut(storagePath, "/")
	if !ok || owner == "" || fileName == "" {
		return "", "", fmt.Errorf("%q: %w", storagePath, ErrInvalidStoragePath)
	}
	return codec.StripWirePrefix(owner), fileName, nil
}

// OwnerKey normalises an owner address for use as a lookup key.
func OwnerKey(owner string) string {
	return strings.ToLower(codec.StripWirePrefix(owner))
}
