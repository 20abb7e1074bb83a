package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CodeRegistry records issued codes in issued_codes
type CodeRegistry struct {
	db *pgxpool.Pool
}

// NewCodeRegistry creates a new CodeRegistry
func NewCodeRegistry(db *pgxpool.Pool) *CodeRegistry {
	return &CodeRegistry{db: db}
}

func (r *CodeRegistry) ReserveCode(ctx context.Context, code string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO issued_codes (code) VALUES ($1) ON CONFLICT (code) DO NOTHING`, code)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to reserve code: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
