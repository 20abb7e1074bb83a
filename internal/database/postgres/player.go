// Package postgres is the pgx backed ledger backend.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
	"github.com/kylasweb/IOC-Spinwheel/internal/repository"
)

// PlayerRepository persists profiles and their win history
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) RegisterProfile(ctx context.Context, mobile string, at time.Time) (*domain.Profile, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO players (mobile, created_at, last_activity)
		VALUES ($1, $2, $2)
		ON CONFLICT (mobile) DO UPDATE SET last_activity = EXCLUDED.last_activity
		RETURNING `+profileColumns, mobile, at)

	p, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("failed to register player: %w", err)
	}
	if p.History, err = loadHistory(ctx, r.db, mobile); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PlayerRepository) GetProfile(ctx context.Context, mobile string) (*domain.Profile, error) {
	return getProfile(ctx, r.db, mobile, false)
}

func (r *PlayerRepository) ListProfiles(ctx context.Context) ([]*domain.Profile, error) {
	rows, err := r.db.Query(ctx, `SELECT `+profileColumns+` FROM players ORDER BY mobile`)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	profiles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Profile, error) {
		return scanProfile(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan players: %w", err)
	}

	for _, p := range profiles {
		if p.History, err = loadHistory(ctx, r.db, p.Mobile); err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

func (r *PlayerRepository) BeginTx(ctx context.Context) (repository.PlayerTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &playerTx{tx: tx}, nil
}

type playerTx struct {
	tx pgx.Tx
}

func (t *playerTx) GetProfileForUpdate(ctx context.Context, mobile string) (*domain.Profile, error) {
	return getProfile(ctx, t.tx, mobile, true)
}

func (t *playerTx) SaveProfile(ctx context.Context, p *domain.Profile) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE players SET
			name = $2, email = $3, vehicle_number = $4,
			attempts = $5, droplets_balance = $6,
			daily_plays = $7, daily_plays_date = $8,
			last_activity = $9
		WHERE mobile = $1`,
		p.Mobile, p.Name, p.Email, p.VehicleNumber,
		p.Attempts, p.DropletsBalance,
		p.DailyPlays, p.DailyPlaysDate,
		p.LastActivity)
	if err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, p.Mobile)
	}
	return nil
}

func (t *playerTx) AppendWinRecord(ctx context.Context, mobile string, rec domain.WinRecord) error {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return fmt.Errorf("invalid record id: %w", err)
	}
	prize, err := json.Marshal(rec.Prize)
	if err != nil {
		return fmt.Errorf("failed to encode prize: %w", err)
	}

	var code *string
	if rec.ClaimCode != "" {
		code = &rec.ClaimCode
	}
	_, err = t.tx.Exec(ctx, `
		INSERT INTO win_records (record_id, mobile, prize, won_at, claim_code)
		VALUES ($1, $2, $3, $4, $5)`, id, mobile, prize, rec.WonAt, code)
	if err != nil {
		return fmt.Errorf("failed to append win record: %w", err)
	}
	return nil
}

func (t *playerTx) SetClaimCode(ctx context.Context, mobile, recordID, code string) error {
	id, err := uuid.Parse(recordID)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrWinRecordNotFound, recordID)
	}
	tag, err := t.tx.Exec(ctx, `
		UPDATE win_records SET claim_code = $3
		WHERE mobile = $1 AND record_id = $2`, mobile, id, code)
	if err != nil {
		return fmt.Errorf("failed to set claim code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrWinRecordNotFound, recordID)
	}
	return nil
}

func (t *playerTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *playerTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func getProfile(ctx context.Context, q querier, mobile string, forUpdate bool) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM players WHERE mobile = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	p, err := scanProfile(q.QueryRow(ctx, query, mobile))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, mobile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if p.History, err = loadHistory(ctx, q, mobile); err != nil {
		return nil, err
	}
	return p, nil
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(&p.Mobile, &p.Name, &p.Email, &p.VehicleNumber,
		&p.Attempts, &p.DropletsBalance,
		&p.DailyPlays, &p.DailyPlaysDate,
		&p.CreatedAt, &p.LastActivity)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func loadHistory(ctx context.Context, q querier, mobile string) ([]domain.WinRecord, error) {
	rows, err := q.Query(ctx, `
		SELECT record_id, prize, won_at, COALESCE(claim_code, '')
		FROM win_records WHERE mobile = $1
		ORDER BY won_at, record_id`, mobile)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	history := []domain.WinRecord{}
	for rows.Next() {
		var (
			id    uuid.UUID
			prize []byte
			rec   domain.WinRecord
		)
		if err := rows.Scan(&id, &prize, &rec.WonAt, &rec.ClaimCode); err != nil {
			return nil, fmt.Errorf("failed to scan win record: %w", err)
		}
		if err := json.Unmarshal(prize, &rec.Prize); err != nil {
			return nil, fmt.Errorf("failed to decode prize: %w", err)
		}
		rec.ID = id.String()
		history = append(history, rec)
	}
	return history, rows.Err()
}
