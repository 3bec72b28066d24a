package records

import (
	"github.com/dmitrijs2005/filestorage/internal/dbx"
)

var postgresQueries = &queries{
	insertFile:  `INSERT INTO files (owner, name, size, chunk_count) VALUES ($1, $2, $3, $4) ON CONFLICT (owner, name) DO NOTHING`,
	selectFile:  `SELECT size, chunk_count FROM files WHERE owner=$1 AND name=$2`,
	insertChunk: `INSERT INTO file_chunks (owner, name, chunk_index) VALUES ($1, $2, $3) ON CONFLICT (owner, name, chunk_index) DO NOTHING`,
	selectChunk: `SELECT chunk_index FROM file_chunks WHERE owner=$1 AND name=$2`,
	ownerFiles:  `SELECT name, size, chunk_count FROM files WHERE owner=$1 ORDER BY name`,
	ownerChunks: `SELECT name, chunk_index FROM file_chunks WHERE owner=$1`,
	deleteChunk: `DELETE FROM file_chunks WHERE owner=$1 AND name=$2`,
	deleteFile:  `DELETE FROM files WHERE owner=$1 AND name=$2`,
}

// NewPostgresRepository binds a repository to db, which may be a *sql.DB or
// an open *sql.Tx.
func NewPostgresRepository(db dbx.DBTX) Repository {
	return &repository{db: db, q: postgresQueries}
}
