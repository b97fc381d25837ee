// Package sqlite reads the news gatherer's article backlog from its SQLite
// database. The database belongs to the gatherer: this package never
// creates or alters its schema.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/fwojciec/newsextract"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string

	// ReadOnly opens the database file in read-only mode.
	// It has no effect on in-memory databases.
	ReadOnly bool
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection. A missing database file is reported
// as ENOTFOUND rather than silently creating an empty database.
func (db *DB) Open() error {
	dsn := db.path
	if db.path != ":memory:" {
		if _, err := os.Stat(db.path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return newsextract.Errorf(newsextract.ENOTFOUND, "database not found: %s", db.path)
			}
			return fmt.Errorf("failed to stat database: %w", err)
		}
		if db.ReadOnly {
			uri, err := readOnlyURI(db.path)
			if err != nil {
				return fmt.Errorf("failed to resolve database path: %w", err)
			}
			dsn = uri
		}
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps an in-memory database alive across queries.
	conn.SetMaxOpenConns(1)

	// Verify connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// The gatherer may be writing while we read; wait instead of failing
	// immediately with "database is locked".
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	db.db = conn
	return nil
}

// readOnlyURI returns a SQLite URI filename opening path read-only.
// The path is made absolute and percent-escaped so that '?', '#' and '%'
// in file names survive.
func readOnlyURI(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=ro"}
	return u.String(), nil
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
