// Package memory is the default in-process ledger backend.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
	"github.com/kylasweb/IOC-Spinwheel/internal/repository"
)

// PlayerRepository keeps profiles in a map. Transactions stage copies and
// publish them on commit; per-player ordering comes from the caller's locks.
type PlayerRepository struct {
	mu       sync.RWMutex
	profiles map[string]*domain.Profile
}

// NewPlayerRepository creates an empty repository
func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{profiles: make(map[string]*domain.Profile)}
}

func (r *PlayerRepository) RegisterProfile(ctx context.Context, mobile string, at time.Time) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[mobile]
	if !ok {
		p = &domain.Profile{Mobile: mobile, CreatedAt: at, History: []domain.WinRecord{}}
		r.profiles[mobile] = p
	}
	p.LastActivity = at
	return p.Clone(), nil
}

func (r *PlayerRepository) GetProfile(ctx context.Context, mobile string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[mobile]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, mobile)
	}
	return p.Clone(), nil
}

func (r *PlayerRepository) ListProfiles(ctx context.Context) ([]*domain.Profile, error) {
	r.mu.RLock()
	out := make([]*domain.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Mobile < out[j].Mobile })
	return out, nil
}

func (r *PlayerRepository) BeginTx(ctx context.Context) (repository.PlayerTx, error) {
	return &playerTx{repo: r, staged: make(map[string]*domain.Profile)}, nil
}

type playerTx struct {
	repo   *PlayerRepository
	staged map[string]*domain.Profile
	done   bool
}

func (tx *playerTx) GetProfileForUpdate(ctx context.Context, mobile string) (*domain.Profile, error) {
	if tx.done {
		return nil, domain.ErrTxClosed
	}
	if p, ok := tx.staged[mobile]; ok {
		return p.Clone(), nil
	}
	p, err := tx.repo.GetProfile(ctx, mobile)
	if err != nil {
		return nil, err
	}
	tx.staged[mobile] = p
	return p.Clone(), nil
}

func (tx *playerTx) staging(mobile string) (*domain.Profile, error) {
	if tx.done {
		return nil, domain.ErrTxClosed
	}
	p, ok := tx.staged[mobile]
	if !ok {
		return nil, fmt.Errorf("%w: %s not loaded for update", domain.ErrPlayerNotFound, mobile)
	}
	return p, nil
}

func (tx *playerTx) SaveProfile(ctx context.Context, profile *domain.Profile) error {
	p, err := tx.staging(profile.Mobile)
	if err != nil {
		return err
	}
	history := p.History
	*p = *profile.Clone()
	p.History = history
	return nil
}

func (tx *playerTx) AppendWinRecord(ctx context.Context, mobile string, record domain.WinRecord) error {
	p, err := tx.staging(mobile)
	if err != nil {
		return err
	}
	p.History = append(p.History, record)
	return nil
}

func (tx *playerTx) SetClaimCode(ctx context.Context, mobile, recordID, code string) error {
	p, err := tx.staging(mobile)
	if err != nil {
		return err
	}
	i := p.FindRecord(recordID)
	if i < 0 {
		return fmt.Errorf("%w: %s", domain.ErrWinRecordNotFound, recordID)
	}
	p.History[i].ClaimCode = code
	return nil
}

func (tx *playerTx) Commit(ctx context.Context) error {
	if tx.done {
		return domain.ErrTxClosed
	}
	tx.done = true

	tx.repo.mu.Lock()
	defer tx.repo.mu.Unlock()
	for mobile, p := range tx.staged {
		tx.repo.profiles[mobile] = p
	}
	return nil
}

func (tx *playerTx) Rollback(ctx context.Context) error {
	if tx.done {
		return domain.ErrTxClosed
	}
	tx.done = true
	tx.staged = nil
	return nil
}
