// Package records persists upload bookkeeping for the store-backed gateway:
// one row per file and one row per uploaded chunk. SQLite and PostgreSQL are
// supported through the same repository code with dialect-specific queries.
package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filestorage/internal/common"
	"github.com/dmitrijs2005/filestorage/internal/dbx"
)

// File is the persisted state of one upload. Uploaded has ChunkCount entries.
type File struct {
	Owner      string
	Name       string
	Size       int64
	ChunkCount int
	Uploaded   []bool
}

type Repository interface {
	Create(ctx context.Context, f *File) error
	Get(ctx context.Context, owner, name string) (*File, error)
	MarkChunkUploaded(ctx context.Context, owner, name string, index int) error
	ListByOwner(ctx context.Context, owner string) ([]*File, error)
	Delete(ctx context.Context, owner, name string) error
}

type queries struct {
	insertFile  string
	selectFile  string
	insertChunk string
	selectChunk string
	ownerFiles  string
	ownerChunks string
	deleteChunk string
	deleteFile  string
}

type repository struct {
	db dbx.DBTX
	q  *queries
}

// Create inserts a new file row. An existing (owner, name) pair yields
// common.ErrorAlreadyExists.
func (r *repository) Create(ctx context.Context, f *File) error {
	res, err := r.db.ExecContext(ctx, r.q.insertFile, f.Owner, f.Name, f.Size, f.ChunkCount)
	if err != nil {
		return fmt.Errorf("failed to insert file: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("%s/%s: %w", f.Owner, f.Name, common.ErrorAlreadyExists)
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *repository) Get(ctx context.Context, owner, name string) (*File, error) {
	f := &File{Owner: owner, Name: name}
	err := r.db.QueryRowContext(ctx, r.q.selectFile, owner, name).Scan(&f.Size, &f.ChunkCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s/%s: %w", owner, name, common.ErrorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select file: %w", err)
	}

	f.Uploaded = make([]bool, f.ChunkCount)

	rows, err := r.db.QueryContext(ctx, r.q.selectChunk, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to select chunks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var index int
		if err := rows.Scan(&index); err != nil {
			return nil, err
		}
		if index >= 0 && index < len(f.Uploaded) {
			f.Uploaded[index] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return f, nil
}

// MarkChunkUploaded records chunk index as uploaded. A chunk that is already
// recorded yields common.ErrorAlreadyExists.
func (r *repository) MarkChunkUploaded(ctx context.Context, owner, name string, index int) error {
	res, err := r.db.ExecContext(ctx, r.q.insertChunk, owner, name, index)
	if err != nil {
		return fmt.Errorf("failed to insert chunk: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("chunk %d of %s/%s: %w", index, owner, name, common.ErrorAlreadyExists)
	}
	return nil
}

// ListByOwner returns the owner's files ordered by name.
func (r *repository) ListByOwner(ctx context.Context, owner string) ([]*File, error) {
	rows, err := r.db.QueryContext(ctx, r.q.ownerFiles, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*File
	byName := make(map[string]*File)
	for rows.Next() {
		f := &File{Owner: owner}
		if err := rows.Scan(&f.Name, &f.Size, &f.ChunkCount); err != nil {
			return nil, err
		}
		f.Uploaded = make([]bool, f.ChunkCount)
		byName[f.Name] = f
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return result, nil
	}

	chunks, err := r.db.QueryContext(ctx, r.q.ownerChunks, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to select chunks: %w", err)
	}
	defer chunks.Close()

	for chunks.Next() {
		var (
			name  string
			index int
		)
		if err := chunks.Scan(&name, &index); err != nil {
			return nil, err
		}
		if f, ok := byName[name]; ok && index >= 0 && index < len(f.Uploaded) {
			f.Uploaded[index] = true
		}
	}
	if err := chunks.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Delete removes the file row and its chunk rows. A missing file yields
// common.ErrorNotFound.
func (r *repository) Delete(ctx context.Context, owner, name string) error {
	if _, err := r.db.ExecContext(ctx, r.q.deleteChunk, owner, name); err != nil {
		return fmt.Errorf("failed to delete chunks: %w", err)
	}

	res, err := r.db.ExecContext(ctx, r.q.deleteFile, owner, name)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s/%s: %w", owner, name, common.ErrorNotFound)
	}
	return nil
}
