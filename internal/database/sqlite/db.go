// Package sqlite is the single-file ledger backend for standalone kiosks.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/kylasweb/IOC-Spinwheel/internal/database/migrations"
)

// DB wraps the connection so it satisfies database.Pool
type DB struct {
	*sql.DB
}

// Open creates the file and its directory if needed, applies the pragmas
// and the embedded migrations. One connection serializes all writers.
func Open(ctx context.Context, path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpen, err)
		}
	}

	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpen, err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s %q: %w", ErrMsgFailedPragma, pragma, err)
		}
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.SQLite())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}

	slog.Default().Info(LogMsgOpened, "path", path, "migrations_applied", len(results))
	return &DB{DB: db}, nil
}

// Ping checks the file is still reachable
func (d *DB) Ping(ctx context.Context) error {
	return d.PingContext(ctx)
}

// Close releases the connection
func (d *DB) Close() {
	if err := d.DB.Close(); err != nil {
		slog.Default().Warn(LogMsgCloseFailed, "error", err)
	}
}
