// Package gateway describes the ledger-backed storage contract the transfer
// client talks to.
//
// The contract stores a file as a FileRecord plus its chunks. A file is
// created with StartUpload, filled chunk by chunk with UploadChunk and sealed
// with FinishUpload, which succeeds only when every chunk slot is marked
// uploaded. Any backend that honours these seven operations can stand in for
// the contract: see the memory, store, ledger and grpc subpackages.
package gateway

import (
	"context"

	"github.com/dmitrijs2005/filestorage/internal/codec"
)

// Gateway is the remote storage contract.
type Gateway interface {
	StartUpload(ctx context.Context, owner, fileName string, totalSize int64) error
	UploadChunk(ctx context.Context, owner, fileName string, offset int64, payload string) error
	FinishUpload(ctx context.Context, owner, fileName string) error
	DeleteFile(ctx context.Context, owner, fileName string) error
	GetFileSize(ctx context.Context, storagePath string) (int64, error)
	ReadChunk(ctx context.Context, storagePath string, offset, length int64) ([]codec.Word, error)
	GetFileInfoList(ctx context.Context, owner string) ([]FileRecord, error)
}

// FileRecord is the contract-side metadata of one file.
type FileRecord struct {
	Name string
	Size int64
	// IsChunkUploaded has one slot per chunk index.
	IsChunkUploaded []bool
}

// Complete reports whether every chunk slot is set.
func (r FileRecord) Complete() bool {
	for _, ok := range r.IsChunkUploaded {
		if !ok {
			return false
		}
	}
	return true
}

// NewFileRecord allocates a record with an all-false status vector.
func NewFileRecord(name string, size, chunkLength int64) FileRecord {
	return FileRecord{
		Name:            name,
		Size:            size,
		IsChunkUploaded: make([]bool, ChunkCount(size, chunkLength)),
	}
}

// ChunkCount is ceil(size / chunkLength).
func ChunkCount(size, chunkLength int64) int {
	if size <= 0 || chunkLength <= 0 {
		return 0
	}
	n := size / chunkLength
	if size%chunkLength != 0 {
		n++
	}
	return int(n)
}
