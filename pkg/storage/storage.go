package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// MemoryDSN is the shared in-memory sqlite database used by tests and
// ephemeral catalog runs. cache=shared keeps every connection on the same
// database for the life of the process.
const MemoryDSN = "file::memory:?cache=shared"

// OpenSQLite opens a sqlite database at the supplied DSN. An empty DSN falls
// back to the in-memory database.
func OpenSQLite(dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite %s: %w", dsn, err)
	}
	return db, nil
}

// NewBunSQLite wraps a sqlite connection in a bun.DB with the sqlite dialect.
// Connections are capped at one because shared-cache sqlite serializes
// writers anyway.
func NewBunSQLite(sqlDB *sql.DB) *bun.DB {
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	return db
}

// OpenBun opens a sqlite-backed bun.DB in one step.
func OpenBun(dsn string) (*bun.DB, error) {
	sqlDB, err := OpenSQLite(dsn)
	if err != nil {
		return nil, err
	}
	return NewBunSQLite(sqlDB), nil
}

// EnsureSchema creates tables for the supplied bun models when they do not
// exist yet. The catalog is a rebuildable projection, so creating on open is
// safe; there is no migration history to preserve.
func EnsureSchema(ctx context.Context, db *bun.DB, models ...any) error {
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage: create table %T: %w", model, err)
		}
	}
	return nil
}
