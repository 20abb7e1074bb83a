package prize

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
)

// stubRNG returns scripted values, repeating the last one when exhausted
type stubRNG struct {
	floats []float64
	ints   []int
}

func (s *stubRNG) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	if len(s.floats) > 1 {
		s.floats = s.floats[1:]
	}
	return v
}

func (s *stubRNG) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	if len(s.ints) > 1 {
		s.ints = s.ints[1:]
	}
	return v % n
}

var (
	grandA    = domain.Prize{ID: "g1", Label: "10% Cashback", Category: domain.CategoryGrand}
	grandB    = domain.Prize{ID: "g2", Label: "Free Car Wash", Category: domain.CategoryGrand}
	tryAgainB = domain.Prize{ID: "t1", Label: "Try Again", Category: domain.CategoryTryAgain}
	tryAgainC = domain.Prize{ID: "t2", Label: "Better Luck", Category: domain.CategoryTryAgain}
	droplets  = domain.Prize{ID: "d1", Label: "Fuel Droplets", Category: domain.CategoryDroplets, Description: "Collect droplets"}
)

func TestSelectCategory(t *testing.T) {
	odds := domain.Odds{Grand: 12, TryAgain: 70, Droplets: 18}
	tests := []struct {
		r    float64
		want domain.Category
	}{
		{0, domain.CategoryGrand},
		{11.99, domain.CategoryGrand},
		{12, domain.CategoryTryAgain},
		{81.99, domain.CategoryTryAgain},
		{82, domain.CategoryDroplets},
		{99.99, domain.CategoryDroplets},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("r=%v", tt.r), func(t *testing.T) {
			assert.Equal(t, tt.want, SelectCategory(odds, tt.r))
		})
	}
}

func TestSelectCategory_DropletsAbsorbsUnclaimedMass(t *testing.T) {
	odds := domain.Odds{Grand: 10, TryAgain: 10, Droplets: 0}
	assert.Equal(t, domain.CategoryDroplets, SelectCategory(odds, 50))
}

func TestResolve_AllGrand(t *testing.T) {
	catalog := []domain.Prize{grandA, tryAgainB}
	odds := domain.Odds{Grand: 100}
	rng := NewSeededRNG(7)

	for i := 0; i < 500; i++ {
		p := Resolve(odds, catalog, rng)
		require.Equal(t, grandA.ID, p.ID)
	}
}

func TestResolve_FallbackToFirstTryAgain(t *testing.T) {
	catalog := []domain.Prize{grandA, tryAgainB, tryAgainC}
	odds := domain.Odds{Droplets: 100}
	rng := NewSeededRNG(1)

	for i := 0; i < 100; i++ {
		assert.Equal(t, tryAgainB.ID, Resolve(odds, catalog, rng).ID)
	}
}

func TestResolve_UltimateFallbackToFirstEntry(t *testing.T) {
	catalog := []domain.Prize{grandB, grandA}
	odds := domain.Odds{Droplets: 100}

	p := Resolve(odds, catalog, NewSeededRNG(3))
	assert.Equal(t, grandB.ID, p.ID)
}

func TestResolve_EmptyCatalogDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		p := Resolve(domain.Odds{Grand: 100}, nil, NewSeededRNG(1))
		assert.Equal(t, domain.CategoryTryAgain, p.Category)
	})
}

func TestResolve_UniformPickWithinCategory(t *testing.T) {
	catalog := []domain.Prize{grandA, grandB, tryAgainB}
	rng := &stubRNG{floats: []float64{0.01}, ints: []int{1}}

	p := Resolve(domain.Odds{Grand: 100}, catalog, rng)
	assert.Equal(t, grandB.ID, p.ID)
}

func TestResolve_DropletsAreRevalued(t *testing.T) {
	catalog := []domain.Prize{droplets}
	rng := &stubRNG{floats: []float64{0.5}, ints: []int{0, 6}}

	p := Resolve(domain.Odds{Droplets: 100}, catalog, rng)

	assert.Equal(t, "7", p.Value)
	assert.Equal(t, "7 Droplets", p.OverrideValue)
	assert.Equal(t, "You have collected 7 Fuel Droplets! Collect 100 to get 1 Litre Free Fuel.", p.Description)
	assert.Equal(t, 7, DropletCount(p))

	// the catalog entry is untouched
	assert.Empty(t, catalog[0].Value)
	assert.Empty(t, catalog[0].OverrideValue)
	assert.Equal(t, "Collect droplets", catalog[0].Description)
}

func TestResolve_DropletCountWithinBounds(t *testing.T) {
	catalog := []domain.Prize{droplets}
	rng := NewSeededRNG(42)
	seen := make(map[int]bool)

	for i := 0; i < 2000; i++ {
		n := DropletCount(Resolve(domain.Odds{Droplets: 100}, catalog, rng))
		require.GreaterOrEqual(t, n, domain.MinDropletAward)
		require.LessOrEqual(t, n, domain.MaxDropletAward)
		seen[n] = true
	}
	assert.Len(t, seen, domain.MaxDropletAward, "every count in range should appear")
}

func TestResolve_FrequenciesMatchOdds(t *testing.T) {
	catalog := []domain.Prize{grandA, grandB, tryAgainB, droplets}
	odds := domain.Odds{Grand: 12, TryAgain: 70, Droplets: 18}

	d := Simulate(odds, catalog, NewSeededRNG(2024), 10000)

	assert.Equal(t, 10000, d.Draws)
	assert.InDelta(t, 12.0, d.Percent[domain.CategoryGrand], 2.0)
	assert.InDelta(t, 70.0, d.Percent[domain.CategoryTryAgain], 2.0)
	assert.InDelta(t, 18.0, d.Percent[domain.CategoryDroplets], 2.0)
	assert.InDelta(t, 10.5, d.DropletsPerWin, 1.0)
}

func TestResolve_AnyValidOddsAlwaysReturnsCatalogPrize(t *testing.T) {
	catalog := []domain.Prize{grandA, tryAgainB}
	ids := map[string]bool{grandA.ID: true, tryAgainB.ID: true}
	rng := NewSeededRNG(99)

	for g := 0; g <= 100; g += 25 {
		for ta := 0; ta <= 100-g; ta += 25 {
			odds := domain.Odds{Grand: g, TryAgain: ta, Droplets: 100 - g - ta}
			for i := 0; i < 20; i++ {
				p := Resolve(odds, catalog, rng)
				assert.True(t, ids[p.ID], "unexpected prize %q for %+v", p.ID, odds)
			}
		}
	}
}

func TestSimulate_ClampsDraws(t *testing.T) {
	catalog := []domain.Prize{tryAgainB}
	assert.Equal(t, DefaultSimulationDraws, Simulate(domain.Odds{TryAgain: 100}, catalog, NewSeededRNG(1), 0).Draws)
	assert.Equal(t, MaxSimulationDraws, Simulate(domain.Odds{TryAgain: 100}, catalog, NewSeededRNG(1), MaxSimulationDraws+1).Draws)
}

func TestDefaultRNG_Ranges(t *testing.T) {
	rng := DefaultRNG()
	for i := 0; i < 1000; i++ {
		f := rng.Float64()
		require.GreaterOrEqual(t, f, 0.0)
		require.Less(t, f, 1.0)
		n := rng.IntN(20)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 20)
	}
	assert.Equal(t, 0, rng.IntN(0))
}
