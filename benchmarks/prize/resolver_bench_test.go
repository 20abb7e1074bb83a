package prize_bench

import (
	"testing"

	"github.com/kylasweb/IOC-Spinwheel/internal/catalog"
	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
	"github.com/kylasweb/IOC-Spinwheel/internal/prize"
)

func BenchmarkResolve_CryptoRNG(b *testing.B) {
	odds := domain.DefaultGameConfig().Odds
	prizes := catalog.DefaultPrizes()
	rng := prize.DefaultRNG()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = prize.Resolve(odds, prizes, rng)
	}
}

func BenchmarkResolve_SeededRNG(b *testing.B) {
	odds := domain.DefaultGameConfig().Odds
	prizes := catalog.DefaultPrizes()
	rng := prize.NewSeededRNG(42)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = prize.Resolve(odds, prizes, rng)
	}
}

func BenchmarkSimulate_DefaultDraws(b *testing.B) {
	odds := domain.DefaultGameConfig().Odds
	prizes := catalog.DefaultPrizes()
	rng := prize.NewSeededRNG(42)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = prize.Simulate(odds, prizes, rng, prize.DefaultSimulationDraws)
	}
}
