package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// CodeRegistry records issued codes in issued_codes
type CodeRegistry struct {
	db *sql.DB
}

// NewCodeRegistry creates a new CodeRegistry
func NewCodeRegistry(db *DB) *CodeRegistry {
	return &CodeRegistry{db: db.DB}
}

func (r *CodeRegistry) ReserveCode(ctx context.Context, code string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO issued_codes (code) VALUES (?)`, code)
	if err != nil {
		return false, fmt.Errorf("failed to reserve code: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to reserve code: %w", err)
	}
	return n == 1, nil
}

// Count returns how many codes have been issued
func (r *CodeRegistry) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM issued_codes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count codes: %w", err)
	}
	return n, nil
}
