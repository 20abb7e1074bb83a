package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
	"github.com/kylasweb/IOC-Spinwheel/internal/event"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recordingPublisher) PublishWithRetry(ctx context.Context, e event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func newTestStore(t *testing.T) (*Store, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	s, err := NewStore(DefaultSeed(), pub)
	require.NoError(t, err)
	return s, pub
}

func TestNewStore_Defaults(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Len(t, s.Prizes(), 6)
	assert.Len(t, s.ByCategory(domain.CategoryGrand), 4)
	assert.Len(t, s.ByCategory(domain.CategoryDroplets), 1)
	assert.Len(t, s.ByCategory(domain.CategoryTryAgain), 1)
	assert.Equal(t, domain.DefaultGameConfig(), s.Config())
	assert.Len(t, s.Rewards(), 3)
}

func TestNewStore_RejectsEmptyCatalog(t *testing.T) {
	seed := DefaultSeed()
	seed.Prizes = nil
	_, err := NewStore(seed, nil)
	assert.ErrorIs(t, err, domain.ErrEmptyCatalog)
}

func TestStore_PrizesReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	p := s.Prizes()
	p[0].Label = "mutated"

	assert.Equal(t, "10% Cashback", s.Prizes()[0].Label)
}

func TestStore_UpdateConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("odds must sum to 100", func(t *testing.T) {
		s, pub := newTestStore(t)
		cfg := s.Config()
		cfg.Odds = domain.Odds{Grand: 50, TryAgain: 40, Droplets: 20}

		err := s.UpdateConfig(ctx, cfg)
		require.ErrorIs(t, err, domain.ErrInvalidOdds)
		assert.Contains(t, err.Error(), "110%")
		assert.Equal(t, domain.DefaultGameConfig(), s.Config(), "rejected config must not apply")
		assert.Empty(t, pub.events)
	})

	t.Run("valid update applies and publishes", func(t *testing.T) {
		s, pub := newTestStore(t)
		cfg := domain.GameConfig{MaxRetries: 5, EnableGame: false, Odds: domain.Odds{Grand: 100}}

		require.NoError(t, s.UpdateConfig(ctx, cfg))
		assert.Equal(t, cfg, s.Config())
		require.Len(t, pub.events, 1)
		assert.Equal(t, event.ConfigUpdated, pub.events[0].Type)
	})

	t.Run("max retries floor", func(t *testing.T) {
		s, _ := newTestStore(t)
		cfg := s.Config()
		cfg.MaxRetries = 0
		assert.ErrorIs(t, s.UpdateConfig(ctx, cfg), domain.ErrInvalidConfig)
	})
}

func TestStore_UpdatePrizes(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		prizes  []domain.Prize
		wantErr error
	}{
		{"empty", nil, domain.ErrEmptyCatalog},
		{"missing label", []domain.Prize{{Label: " ", Category: domain.CategoryGrand}}, domain.ErrInvalidPrize},
		{"bad category", []domain.Prize{{Label: "x", Category: "JACKPOT"}}, domain.ErrInvalidPrize},
		{"duplicate id", []domain.Prize{
			{ID: "a", Label: "x", Category: domain.CategoryGrand},
			{ID: "a", Label: "y", Category: domain.CategoryGrand},
		}, domain.ErrInvalidPrize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			assert.ErrorIs(t, s.UpdatePrizes(ctx, tt.prizes), tt.wantErr)
			assert.Len(t, s.Prizes(), 6)
		})
	}

	t.Run("valid replace assigns ids", func(t *testing.T) {
		s, pub := newTestStore(t)
		err := s.UpdatePrizes(ctx, []domain.Prize{
			{Label: "Grand A", Category: domain.CategoryGrand},
			{Label: "Try Again B", Category: domain.CategoryTryAgain, OverrideValue: "stale"},
		})
		require.NoError(t, err)

		got := s.Prizes()
		require.Len(t, got, 2)
		assert.NotEmpty(t, got[0].ID)
		assert.Empty(t, got[1].OverrideValue)
		require.Len(t, pub.events, 1)
		assert.Equal(t, event.CatalogUpdated, pub.events[0].Type)
	})
}

func TestStore_AddPrizes(t *testing.T) {
	s, _ := newTestStore(t)
	n, err := s.AddPrizes(context.Background(), []domain.Prize{{Label: "Helmet", Category: domain.CategoryGrand}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, s.Prizes(), 7)
	assert.Equal(t, "Helmet", s.Prizes()[6].Label)

	n, err = s.AddPrizes(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_Reward(t *testing.T) {
	s, _ := newTestStore(t)
	r, err := s.Reward("xp95-1l")
	require.NoError(t, err)
	assert.Equal(t, 110, r.Cost)

	_, err = s.Reward("nope")
	assert.ErrorIs(t, err, domain.ErrRewardNotFound)
}

func TestStore_PrizeLookup(t *testing.T) {
	s, _ := newTestStore(t)
	p, ok := s.Prize("4")
	require.True(t, ok)
	assert.Equal(t, domain.CategoryDroplets, p.Category)
	_, ok = s.Prize("404")
	assert.False(t, ok)
}

func TestStore_ExportYAML(t *testing.T) {
	s, _ := newTestStore(t)
	out, err := s.ExportYAML()
	require.NoError(t, err)

	var seed Seed
	require.NoError(t, yaml.Unmarshal(out, &seed))
	assert.Len(t, seed.Prizes, 6)
	assert.Equal(t, 3, seed.Config.MaxRetries)
	assert.Equal(t, "#F37021", seed.Prizes[0].Color)
}
