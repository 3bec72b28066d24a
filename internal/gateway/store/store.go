// Package store implements gateway.Gateway over a record database and a blob
// store. Records track which chunk slots are set; blobs hold chunk bytes.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filestorage/internal/blobs"
	"github.com/dmitrijs2005/filestorage/internal/codec"
	"github.com/dmitrijs2005/filestorage/internal/common"
	"github.com/dmitrijs2005/filestorage/internal/dbx"
	"github.com/dmitrijs2005/filestorage/internal/gateway"
	"github.com/dmitrijs2005/filestorage/internal/logging"
	"github.com/dmitrijs2005/filestorage/internal/records"
)

type Gateway struct {
	db     *records.Database
	blobs  blobs.Store
	rules  gateway.Rules
	logger logging.Logger
}

func New(db *records.Database, bs blobs.Store, chunkLength int64, logger logging.Logger) *Gateway {
	if chunkLength <= 0 {
		chunkLength = common.ChunkLength
	}
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Gateway{
		db:     db,
		blobs:  bs,
		rules:  gateway.Rules{ChunkLength: chunkLength},
		logger: logger.With("module", "store"),
	}
}

func toRecord(f *records.File) gateway.FileRecord {
	return gateway.FileRecord{Name: f.Name, Size: f.Size, IsChunkUploaded: f.Uploaded}
}

func (g *Gateway) StartUpload(ctx context.Context, owner, fileName string, totalSize int64) error {
	if err := g.rules.CheckStart(fileName, totalSize); err != nil {
		return err
	}

	f := &records.File{
		Owner:      gateway.OwnerKey(owner),
		Name:       fileName,
		Size:       totalSize,
		ChunkCount: gateway.ChunkCount(totalSize, g.rules.ChunkLength),
	}
	if err := g.db.Repository(g.db.DB).Create(ctx, f); err != nil {
		return err
	}

	g.logger.Debug(ctx, "upload started", "owner", f.Owner, "name", fileName, "size", totalSize)
	return nil
}

func (g *Gateway) UploadChunk(ctx context.Context, owner, fileName string, offset int64, payload string) error {
	key := gateway.OwnerKey(owner)

	return dbx.WithTx(ctx, g.db.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := g.db.Repository(tx)

		f, err := repo.Get(ctx, key, fileName)
		if err != nil {
			return err
		}

		index, data, err := g.rules.CheckChunk(toRecord(f), offset, payload)
		if err != nil {
			return err
		}

		if err := g.blobs.Put(ctx, blobs.Key(key+"/"+fileName, index), data); err != nil {
			return fmt.Errorf("store chunk %d: %w", index, err)
		}

		if err := repo.MarkChunkUploaded(ctx, key, fileName, index); err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return fmt.Errorf("chunk %d: %w", index, gateway.ErrChunkAlreadyUploaded)
			}
			return err
		}
		return nil
	})
}

func (g *Gateway) FinishUpload(ctx context.Context, owner, fileName string) error {
	f, err := g.db.Repository(g.db.DB).Get(ctx, gateway.OwnerKey(owner), fileName)
	if err != nil {
		return err
	}
	if err := g.rules.CheckFinish(toRecord(f)); err != nil {
		return err
	}

	g.logger.Debug(ctx, "upload finished", "owner", f.Owner, "name", fileName)
	return nil
}

// DeleteFile removes the record first; blob removal failures after that are
// logged and leave orphaned blobs that a re-upload overwrites.
func (g *Gateway) DeleteFile(ctx context.Context, owner, fileName string) error {
	key := gateway.OwnerKey(owner)

	var f *records.File
	err := dbx.WithTx(ctx, g.db.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := g.db.Repository(tx)

		var err error
		if f, err = repo.Get(ctx, key, fileName); err != nil {
			return err
		}
		return repo.Delete(ctx, key, fileName)
	})
	if err != nil {
		return err
	}

	for i, uploaded := range f.Uploaded {
		if !uploaded {
			continue
		}
		if err := g.blobs.Delete(ctx, blobs.Key(key+"/"+fileName, i)); err != nil {
			g.logger.Warn(ctx, "blob delete failed", "name", fileName, "chunk", i, "error", err)
		}
	}
	return nil
}

func (g *Gateway) lookupPath(ctx context.Context, storagePath string) (*records.File, error) {
	owner, fileName, err := gateway.SplitStoragePath(storagePath)
	if err != nil {
		return nil, err
	}
	return g.db.Repository(g.db.DB).Get(ctx, gateway.OwnerKey(owner), fileName)
}

func (g *Gateway) GetFileSize(ctx context.Context, storagePath string) (int64, error) {
	f, err := g.lookupPath(ctx, storagePath)
	if err != nil {
		return 0, err
	}
	return f.Size, nil
}

// ReadChunk assembles the range from the overlapping chunk blobs. Slots that
// were never uploaded read back as zeros.
func (g *Gateway) ReadChunk(ctx context.Context, storagePath string, offset, length int64) ([]codec.Word, error) {
	f, err := g.lookupPath(ctx, storagePath)
	if err != nil {
		return nil, err
	}
	if err := g.rules.CheckRead(toRecord(f), offset, length); err != nil {
		return nil, err
	}

	out := make([]byte, length)
	first, last := g.rules.Chunks(offset, length)
	for i := first; i <= last; i++ {
		if !f.Uploaded[i] {
			continue
		}

		data, err := g.blobs.Get(ctx, blobs.Key(f.Owner+"/"+f.Name, i))
		if err != nil {
			return nil, fmt.Errorf("load chunk %d: %w", i, err)
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
	files, err := g.db.Repository(g.db.DB).ListByOwner(ctx, gateway.OwnerKey(owner))
	if err != nil {
		return nil, err
	}

	result := make([]gateway.FileRecord, 0, len(files))
	for _, f := range files {
		result = append(result, toRecord(f))
	}
	return result, nil
}
