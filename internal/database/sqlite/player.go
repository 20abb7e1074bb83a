package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
	"github.com/kylasweb/IOC-Spinwheel/internal/repository"
)

// PlayerRepository persists profiles and their win history in one file
type PlayerRepository struct {
	db *sql.DB
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *DB) *PlayerRepository {
	return &PlayerRepository{db: db.DB}
}

func (r *PlayerRepository) RegisterProfile(ctx context.Context, mobile string, at time.Time) (*domain.Profile, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO players (mobile, created_at, last_activity)
		VALUES (?, ?, ?)
		ON CONFLICT (mobile) DO UPDATE SET last_activity = excluded.last_activity`,
		mobile, at.UnixNano(), at.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("failed to register player: %w", err)
	}
	return r.GetProfile(ctx, mobile)
}

func (r *PlayerRepository) GetProfile(ctx context.Context, mobile string) (*domain.Profile, error) {
	return getProfile(ctx, r.db, mobile)
}

func (r *PlayerRepository) ListProfiles(ctx context.Context) ([]*domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM players ORDER BY mobile`)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	var profiles []*domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan players: %w", err)
		}
		profiles = append(profiles, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan players: %w", err)
	}

	// history is loaded after the cursor closes, the pool holds one connection
	for _, p := range profiles {
		if p.History, err = loadHistory(ctx, r.db, p.Mobile); err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

// BeginTx opens a staged transaction. Reads go to the file immediately and
// writes are applied together in one SQL transaction on Commit, so code
// reservations made while the unit is open do not wait on it.
func (r *PlayerRepository) BeginTx(ctx context.Context) (repository.PlayerTx, error) {
	return &playerTx{db: r.db, appended: make(map[string]string)}, nil
}

type stagedWrite struct {
	query string
	args  []any
	// mustAffect fails the commit when the statement changes no row
	mustAffect error
}

type playerTx struct {
	db       *sql.DB
	writes   []stagedWrite
	appended map[string]string // record id -> mobile
	done     bool
}

func (t *playerTx) GetProfileForUpdate(ctx context.Context, mobile string) (*domain.Profile, error) {
	if t.done {
		return nil, domain.ErrTxClosed
	}
	return getProfile(ctx, t.db, mobile)
}

func (t *playerTx) SaveProfile(ctx context.Context, p *domain.Profile) error {
	if t.done {
		return domain.ErrTxClosed
	}
	notFound := fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, p.Mobile)
	ok, err := exists(ctx, t.db, `SELECT 1 FROM players WHERE mobile = ?`, p.Mobile)
	if err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}
	if !ok {
		return notFound
	}

	t.writes = append(t.writes, stagedWrite{
		query: `
		UPDATE players SET
			name = ?, email = ?, vehicle_number = ?,
			attempts = ?, droplets_balance = ?,
			daily_plays = ?, daily_plays_date = ?,
			last_activity = ?
		WHERE mobile = ?`,
		args: []any{
			p.Name, p.Email, p.VehicleNumber,
			p.Attempts, p.DropletsBalance,
			p.DailyPlays, p.DailyPlaysDate,
			p.LastActivity.UnixNano(), p.Mobile,
		},
		mustAffect: notFound,
	})
	return nil
}

func (t *playerTx) AppendWinRecord(ctx context.Context, mobile string, rec domain.WinRecord) error {
	if t.done {
		return domain.ErrTxClosed
	}
	prize, err := json.Marshal(rec.Prize)
	if err != nil {
		return fmt.Errorf("failed to encode prize: %w", err)
	}

	var code any
	if rec.ClaimCode != "" {
		code = rec.ClaimCode
	}
	t.writes = append(t.writes, stagedWrite{
		query: `
		INSERT INTO win_records (record_id, mobile, prize, won_at, claim_code)
		VALUES (?, ?, ?, ?, ?)`,
		args: []any{rec.ID, mobile, string(prize), rec.WonAt.UnixNano(), code},
	})
	t.appended[rec.ID] = mobile
	return nil
}

func (t *playerTx) SetClaimCode(ctx context.Context, mobile, recordID, code string) error {
	if t.done {
		return domain.ErrTxClosed
	}
	notFound := fmt.Errorf("%w: %s", domain.ErrWinRecordNotFound, recordID)
	if owner, ok := t.appended[recordID]; !ok || owner != mobile {
		found, err := exists(ctx, t.db,
			`SELECT 1 FROM win_records WHERE mobile = ? AND record_id = ?`, mobile, recordID)
		if err != nil {
			return fmt.Errorf("failed to set claim code: %w", err)
		}
		if !found {
			return notFound
		}
	}

	t.writes = append(t.writes, stagedWrite{
		query:      `UPDATE win_records SET claim_code = ? WHERE mobile = ? AND record_id = ?`,
		args:       []any{code, mobile, recordID},
		mustAffect: notFound,
	})
	return nil
}

func (t *playerTx) Commit(ctx context.Context) error {
	if t.done {
		return domain.ErrTxClosed
	}
	t.done = true
	if len(t.writes) == 0 {
		return nil
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	for _, w := range t.writes {
		res, err := tx.ExecContext(ctx, w.query, w.args...)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to apply staged write: %w", err)
		}
		if w.mustAffect != nil {
			if n, err := res.RowsAffected(); err == nil && n == 0 {
				_ = tx.Rollback()
				return w.mustAffect
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (t *playerTx) Rollback(ctx context.Context) error {
	if t.done {
		return domain.ErrTxClosed
	}
	t.done = true
	t.writes = nil
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func getProfile(ctx context.Context, db *sql.DB, mobile string) (*domain.Profile, error) {
	row := db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM players WHERE mobile = ?`, mobile)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, mobile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if p.History, err = loadHistory(ctx, db, mobile); err != nil {
		return nil, err
	}
	return p, nil
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var (
		p                     domain.Profile
		createdAt, lastActive int64
	)
	err := row.Scan(&p.Mobile, &p.Name, &p.Email, &p.VehicleNumber,
		&p.Attempts, &p.DropletsBalance,
		&p.DailyPlays, &p.DailyPlaysDate,
		&createdAt, &lastActive)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = time.Unix(0, createdAt).UTC()
	p.LastActivity = time.Unix(0, lastActive).UTC()
	return &p, nil
}

func loadHistory(ctx context.Context, db *sql.DB, mobile string) ([]domain.WinRecord, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT record_id, prize, won_at, COALESCE(claim_code, '')
		FROM win_records WHERE mobile = ?
		ORDER BY won_at, record_id`, mobile)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	history := []domain.WinRecord{}
	for rows.Next() {
		var (
			prize string
			wonAt int64
			rec   domain.WinRecord
		)
		if err := rows.Scan(&rec.ID, &prize, &wonAt, &rec.ClaimCode); err != nil {
			return nil, fmt.Errorf("failed to scan win record: %w", err)
		}
		if err := json.Unmarshal([]byte(prize), &rec.Prize); err != nil {
			return nil, fmt.Errorf("failed to decode prize: %w", err)
		}
		rec.WonAt = time.Unix(0, wonAt).UTC()
		history = append(history, rec)
	}
	return history, rows.Err()
}

func exists(ctx context.Context, db *sql.DB, query string, args ...any) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
