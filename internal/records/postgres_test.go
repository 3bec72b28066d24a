package records

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/filestorage/internal/common"
)

func newRepoWithMock(t *testing.T) (Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestPostgresCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+files\b.*VALUES\s*\(\$1, \$2, \$3, \$4\)\s*ON\s+CONFLICT.*DO\s+NOTHING$`).
		WithArgs("abc", "a.bin", int64(10), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &File{Owner: "abc", Name: "a.bin", Size: 10, ChunkCount: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate_AlreadyExists(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+files`).
		WithArgs("abc", "a.bin", int64(10), 3).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Create(context.Background(), &File{Owner: "abc", Name: "a.bin", Size: 10, ChunkCount: 3})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want ErrorAlreadyExists, got %v", err)
	}
}

func TestPostgresCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+files`).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &File{Owner: "abc", Name: "a.bin"})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestPostgresGet_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^SELECT size, chunk_count FROM files WHERE owner=\$1 AND name=\$2$`).
		WithArgs("abc", "a.bin").
		WillReturnRows(sqlmock.NewRows([]string{"size", "chunk_count"}).AddRow(int64(10), 3))
	mock.ExpectQuery(`^SELECT chunk_index FROM file_chunks WHERE owner=\$1 AND name=\$2$`).
		WithArgs("abc", "a.bin").
		WillReturnRows(sqlmock.NewRows([]string{"chunk_index"}).AddRow(0).AddRow(2))

	f, err := repo.Get(context.Background(), "abc", "a.bin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []bool{true, false, true}
	for i := range want {
		if f.Uploaded[i] != want[i] {
			t.Fatalf("uploaded = %v, want %v", f.Uploaded, want)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT size, chunk_count FROM files`).
		WithArgs("abc", "nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "abc", "nope")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestPostgresMarkChunkUploaded_Duplicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+file_chunks`).
		WithArgs("abc", "a.bin", 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkChunkUploaded(context.Background(), "abc", "a.bin", 1)
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want ErrorAlreadyExists, got %v", err)
	}
}

func TestPostgresDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM file_chunks`).WithArgs("abc", "a").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM files`).WithArgs("abc", "a").WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.Delete(context.Background(), "abc", "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec(`DELETE FROM file_chunks`).WithArgs("abc", "a").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM files`).WithArgs("abc", "a").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.Delete(context.Background(), "abc", "a"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresListByOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT name, size, chunk_count FROM files WHERE owner=\$1 ORDER BY name`).
		WithArgs("abc").
		WillReturnRows(sqlmock.NewRows([]string{"name", "size", "chunk_count"}).
			AddRow("a", int64(3), 1).
			AddRow("b", int64(8), 2))
	mock.ExpectQuery(`SELECT name, chunk_index FROM file_chunks WHERE owner=\$1`).
		WithArgs("abc").
		WillReturnRows(sqlmock.NewRows([]string{"name", "chunk_index"}).AddRow("b", 1))

	files, err := repo.ListByOwner(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 || files[0].Uploaded[0] || !files[1].Uploaded[1] || files[1].Uploaded[0] {
		t.Fatalf("unexpected listing: %+v %+v", files[0], files[1])
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "dsn")
	if !errors.Is(err, ErrUnsupportedDriver) {
		t.Fatalf("expected ErrUnsupportedDriver, got %v", err)
	}
}
