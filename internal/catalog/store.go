// Package catalog owns the prize list, the redeemable rewards and the game
// configuration. It is constructed once per process and shared by reference.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
	"github.com/kylasweb/IOC-Spinwheel/internal/event"
	"github.com/kylasweb/IOC-Spinwheel/internal/logger"
)

// Store is safe for concurrent use. Readers always receive copies.
type Store struct {
	mu        sync.RWMutex
	prizes    []domain.Prize
	config    domain.GameConfig
	rewards   []domain.RedeemableReward
	publisher event.Publisher
}

// NewStore validates the seed before accepting it
func NewStore(seed Seed, publisher event.Publisher) (*Store, error) {
	prizes, err := normalizePrizes(seed.Prizes)
	if err != nil {
		return nil, err
	}
	if err := seed.Config.Validate(); err != nil {
		return nil, err
	}
	return &Store{
		prizes:    prizes,
		config:    seed.Config,
		rewards:   append([]domain.RedeemableReward(nil), seed.Rewards...),
		publisher: publisher,
	}, nil
}

// Prizes returns a copy of the catalog
func (s *Store) Prizes() []domain.Prize {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Prize(nil), s.prizes...)
}

// ByCategory returns the prizes tagged with c
func (s *Store) ByCategory(c domain.Category) []domain.Prize {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Prize, 0, len(s.prizes))
	for _, p := range s.prizes {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}

// Prize looks a catalog entry up by id
func (s *Store) Prize(id string) (domain.Prize, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.prizes {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Prize{}, false
}

// Config returns the current game configuration
func (s *Store) Config() domain.GameConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Snapshot returns the odds and catalog as one consistent pair
func (s *Store) Snapshot() (domain.Odds, []domain.Prize) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.Odds, append([]domain.Prize(nil), s.prizes...)
}

// Rewards returns what droplets can buy
func (s *Store) Rewards() []domain.RedeemableReward {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.RedeemableReward(nil), s.rewards...)
}

// Reward looks a redeemable reward up by id
func (s *Store) Reward(id string) (domain.RedeemableReward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rewards {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.RedeemableReward{}, fmt.Errorf("%w: %s", domain.ErrRewardNotFound, id)
}

// UpdatePrizes replaces the catalog. An empty or invalid list is rejected
// and the previous catalog stays in place.
func (s *Store) UpdatePrizes(ctx context.Context, prizes []domain.Prize) error {
	normalized, err := normalizePrizes(prizes)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.prizes = normalized
	odds := s.config.Odds
	s.mu.Unlock()

	logger.FromContext(ctx).Info("Prize catalog replaced", "prize_count", len(normalized))
	s.publish(ctx, event.NewCatalogEvent(event.CatalogUpdated, len(normalized), odds))
	return nil
}

// AddPrizes appends to the catalog, as bulk import does
func (s *Store) AddPrizes(ctx context.Context, prizes []domain.Prize) (int, error) {
	if len(prizes) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	merged, err := normalizePrizes(append(append([]domain.Prize(nil), s.prizes...), prizes...))
	if err != nil {
		s.mu.Unlock()
		return 0, err
	}
	s.prizes = merged
	odds := s.config.Odds
	s.mu.Unlock()

	logger.FromContext(ctx).Info("Prizes added to catalog", "added", len(prizes), "prize_count", len(merged))
	s.publish(ctx, event.NewCatalogEvent(event.CatalogUpdated, len(merged), odds))
	return len(prizes), nil
}

// UpdateConfig applies cfg only when it passes the hard commit-time checks
func (s *Store) UpdateConfig(ctx context.Context, cfg domain.GameConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.config = cfg
	count := len(s.prizes)
	s.mu.Unlock()

	logger.FromContext(ctx).Info("Game configuration updated",
		"max_retries", cfg.MaxRetries,
		"enable_game", cfg.EnableGame,
		"daily_limit", cfg.DailyLimit,
		"odds", cfg.Odds)
	s.publish(ctx, event.NewCatalogEvent(event.ConfigUpdated, count, cfg.Odds))
	return nil
}

// ExportYAML renders the current state as a seed document
func (s *Store) ExportYAML() ([]byte, error) {
	s.mu.RLock()
	seed := Seed{
		Config:  s.config,
		Prizes:  append([]domain.Prize(nil), s.prizes...),
		Rewards: append([]domain.RedeemableReward(nil), s.rewards...),
	}
	s.mu.RUnlock()
	return yaml.Marshal(seed)
}

func (s *Store) publish(ctx context.Context, e event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, e)
	}
}

// normalizePrizes trims labels, assigns missing ids and rejects bad entries
func normalizePrizes(prizes []domain.Prize) ([]domain.Prize, error) {
	if len(prizes) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	out := make([]domain.Prize, 0, len(prizes))
	seen := make(map[string]struct{}, len(prizes))
	for i, p := range prizes {
		p.Label = strings.TrimSpace(p.Label)
		if p.Label == "" {
			return nil, fmt.Errorf("%w: prize %d has no label", domain.ErrInvalidPrize, i)
		}
		if !p.Category.Valid() {
			return nil, fmt.Errorf("%w: prize %q has unknown category %q", domain.ErrInvalidPrize, p.Label, p.Category)
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate prize id %q", domain.ErrInvalidPrize, p.ID)
		}
		seen[p.ID] = struct{}{}
		p.OverrideValue = ""
		out = append(out, p)
	}
	return out, nil
}
