package records

import (
	"github.com/dmitrijs2005/filestorage/internal/dbx"
)

var sqliteQueries = &queries{
	insertFile:  `INSERT INTO files (owner, name, size, chunk_count) VALUES (?, ?, ?, ?) ON CONFLICT (owner, name) DO NOTHING`,
	selectFile:  `SELECT size, chunk_count FROM files WHERE owner=? AND name=?`,
	insertChunk: `INSERT INTO file_chunks (owner, name, chunk_index) VALUES (?, ?, ?) ON CONFLICT (owner, name, chunk_index) DO NOTHING`,
	selectChunk: `SELECT chunk_index FROM file_chunks WHERE owner=? AND name=?`,
	ownerFiles:  `SELECT name, size, chunk_count FROM files WHERE owner=? ORDER BY name`,
	ownerChunks: `SELECT name, chunk_index FROM file_chunks WHERE owner=?`,
	deleteChunk: `DELETE FROM file_chunks WHERE owner=? AND name=?`,
	deleteFile:  `DELETE FROM files WHERE owner=? AND name=?`,
}

// NewSQLiteRepository binds a repository to db, which may be a *sql.DB or
// an open *sql.Tx.
func NewSQLiteRepository(db dbx.DBTX) Repository {
	return &repository{db: db, q: sqliteQueries}
}
