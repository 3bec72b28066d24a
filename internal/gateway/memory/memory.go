// Package memory is an in-process gateway.Gateway. It applies the same
// contract rules as the persistent backends and is safe for concurrent use.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/filestorage/internal/codec"
	"github.com/dmitrijs2005/filestorage/internal/common"
	"github.com/dmitrijs2005/filestorage/internal/gateway"
)

type file struct {
	record gateway.FileRecord
	chunks map[int][]byte
}

type Gateway struct {
	mu    sync.RWMutex
	rules gateway.Rules
	files map[string]map[string]*file
}

// New returns an empty gateway. A non-positive chunkLength selects
// common.ChunkLength.
func New(chunkLength int64) *Gateway {
	if chunkLength <= 0 {
		chunkLength = common.ChunkLength
	}
	return &Gateway{
		rules: gateway.Rules{ChunkLength: chunkLength},
		files: make(map[string]map[string]*file),
	}
}

func (g *Gateway) lookup(owner, fileName string) (*file, error) {
	f, ok := g.files[gateway.OwnerKey(owner)][fileName]
	if !ok {
		return nil, fmt.Errorf("%s: %w", gateway.StoragePath(owner, fileName), gateway.ErrNotFound)
	}
	return f, nil
}

func (g *Gateway) lookupPath(storagePath string) (*file, error) {
	owner, fileName, err := gateway.SplitStoragePath(storagePath)
	if err != nil {
		return nil, err
	}
	return g.lookup(owner, fileName)
}

func (g *Gateway) StartUpload(ctx context.Context, owner, fileName string, totalSize int64) error {
	if err := g.rules.CheckStart(fileName, totalSize); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	key := gateway.OwnerKey(owner)
	if _, exists := g.files[key][fileName]; exists {
		return fmt.Errorf("%s: %w", gateway.StoragePath(owner, fileName), gateway.ErrAlreadyExists)
	}
	if g.files[key] == nil {
		g.files[key] = make(map[string]*file)
	}
	g.files[key][fileName] = &file{
		record: gateway.NewFileRecord(fileName, totalSize, g.rules.ChunkLength),
		chunks: make(map[int][]byte),
	}
	return nil
}

func (g *Gateway) UploadChunk(ctx context.Context, owner, fileName string, offset int64, payload string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	f, err := g.lookup(owner, fileName)
	if err != nil {
		return err
	}

	index, data, err := g.rules.CheckChunk(f.record, offset, payload)
	if err != nil {
		return err
	}

	f.chunks[index] = data
	f.record.IsChunkUploaded[index] = true
	return nil
}

func (g *Gateway) FinishUpload(ctx context.Context, owner, fileName string) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	f, err := g.lookup(owner, fileName)
	if err != nil {
		return err
	}
	return g.rules.CheckFinish(f.record)
}

func (g *Gateway) DeleteFile(ctx context.Context, owner, fileName string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.lookup(owner, fileName); err != nil {
		return err
	}
	delete(g.files[gateway.OwnerKey(owner)], fileName)
	return nil
}

func (g *Gateway) GetFileSize(ctx context.Context, storagePath string) (int64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	f, err := g.lookupPath(storagePath)
	if err != nil {
		return 0, err
	}
	return f.record.Size, nil
}

// ReadChunk returns whatever is stored in the range; slots that were never
// uploaded read back as zeros.
func (g *Gateway) ReadChunk(ctx context.Context, storagePath string, offset, length int64) ([]codec.Word, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	f, err := g.lookupPath(storagePath)
	if err != nil {
		return nil, err
	}
	if err := g.rules.CheckRead(f.record, offset, length); err != nil {
		return nil, err
	}

	out := make([]byte, length)
	first, last := g.rules.Chunks(offset, length)
	for i := first; i <= last; i++ {
		data, ok := f.chunks[i]
		if !ok {
			continue
		}
		start := int64(i) * g.rules.ChunkLength
		from := max(offset, start)
		to := min(offset+length, start+int64(len(data)))
		if from < to {
			copy(out[from-offset:to-offset], data[from-start:to-start])
		}
	}
	return codec.PackWords(out), nil
}

func (g *Gateway) GetFileInfoList(ctx context.Context, owner string) ([]gateway.FileRecord, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	files := g.files[gateway.OwnerKey(owner)]
	result := make([]gateway.FileRecord, 0, len(files))
	for _, f := range files {
		rec := f.record
		rec.IsChunkUploaded = append([]bool(nil), f.record.IsChunkUploaded...)
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result, nil
}
