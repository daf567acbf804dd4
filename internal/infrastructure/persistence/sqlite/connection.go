// Package sqlite persists feedwall settings in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/bnema/feedwall/internal/logging"
)

const dbDirPerm = 0o750

// connPragmas are applied by the driver to every connection it opens.
// busy_timeout covers a CLI write racing the running window.
var connPragmas = []string{
	"busy_timeout(5000)",
	"journal_mode(wal)",
	"synchronous(normal)",
	"foreign_keys(on)",
}

// DSN builds the driver URI for the database file at path. Relative paths
// are resolved against the working directory.
func DSN(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	q := url.Values{}
	for _, p := range connPragmas {
		q.Add("_pragma", p)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path), RawQuery: q.Encode()}
	return u.String()
}

// NewConnection opens the settings database at dbPath and migrates it. The
// parent directory is created when missing.
func NewConnection(ctx context.Context, dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), dbDirPerm); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", DSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Settings are tiny and written by one goroutine; a single connection
	// keeps the WAL writer uncontended inside the process.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logging.FromContext(ctx).Debug().Str("path", dbPath).Msg("settings database ready")
	return db, nil
}

// Close closes db, tolerating nil.
func Close(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}
