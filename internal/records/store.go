// Package records implements the durable local index of file and folder
// records. The store is a plain index: envelope fields are opaque strings it
// never decrypts, and views (trash, starred, recent) are secondary filters
// over the same table rather than store-computed state.
package records

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"

	"github.com/kapish505/CipherVault/internal/records/migrations"
)

// Store owns the SQLite handle and its schema migrations.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the record database at dsn and brings the
// schema up to date.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}

	// SQLite allows a single writer, and an in-memory database only exists
	// on the connection that created it, so the pool stays at one.
	db.SetMaxOpenConns(1)

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate record store: %w", err)
	}

	return &Store{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Repo returns the repository bound to the store's handle.
func (s *Store) Repo() *SQLiteRepository {
	return NewSQLiteRepository(s.db)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
