// Package sqlite provides SQLite-based storage implementations for linkwish services.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait 5 seconds before failing on lock contention instead of returning
	// immediate "database is locked" errors.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode gives much faster writes and concurrent reads during writes,
	// at the cost of -wal and -shm files alongside the database.
	// Not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// Stats returns database statistics.
func (db *DB) Stats() sql.DBStats {
	return db.db.Stats()
}

// createSchema creates the database tables if they don't exist.
// The UNIQUE constraint on canonical_url is what enforces wishlist
// deduplication; list-valued record fields are stored as JSON text.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS wishlist_entries (
			id TEXT PRIMARY KEY,
			url TEXT NOT NULL,
			canonical_url TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			images TEXT NOT NULL DEFAULT '[]',
			price TEXT NOT NULL DEFAULT '',
			currency TEXT NOT NULL DEFAULT '',
			original_price TEXT NOT NULL DEFAULT '',
			discount TEXT NOT NULL DEFAULT '',
			site_name TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			brand TEXT NOT NULL DEFAULT '',
			rating TEXT NOT NULL DEFAULT '',
			review_count TEXT NOT NULL DEFAULT '',
			availability TEXT NOT NULL DEFAULT '',
			features TEXT NOT NULL DEFAULT '[]',
			offers TEXT NOT NULL DEFAULT '[]',
			content_type TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_wishlist_entries_site_name ON wishlist_entries(site_name);
	`

	_, err := db.db.Exec(schema)
	return err
}
