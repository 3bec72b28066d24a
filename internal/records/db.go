package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filestorage/internal/dbx"
	"github.com/dmitrijs2005/filestorage/internal/records/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Database owns the connection pool and hands out repositories bound either
// to the pool or to a transaction.
type Database struct {
	DB     *sql.DB
	driver string
}

// Open connects to dsn with the named driver and verifies the connection.
func Open(ctx context.Context, driver, dsn string) (*Database, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if driver == DriverSQLite {
		// one writer; also keeps a :memory: database alive across calls
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return &Database{DB: db, driver: driver}, nil
}

func (d *Database) dialect() string {
	if d.driver == DriverPostgres {
		return "postgres"
	}
	return "sqlite3"
}

// Migrate applies every pending migration.
func (d *Database) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(d.dialect()); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, d.DB, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

// Repository returns a repository for the database dialect bound to tx.
// Pass d.DB for autocommit access.
func (d *Database) Repository(tx dbx.DBTX) Repository {
	if d.driver == DriverPostgres {
		return NewPostgresRepository(tx)
	}
	return NewSQLiteRepository(tx)
}

func (d *Database) Close() error {
	return d.DB.Close()
}
