package prize

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource is the randomness the resolver draws from
type RandomSource interface {
	Float64() float64 // [0, 1)
	IntN(n int) int   // [0, n)
}

// cryptoRNG is the default source for live draws
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Float64() //nolint:gosec // fallback when the system source fails
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

func (cryptoRNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.IntN(n) //nolint:gosec // fallback when the system source fails
	}
	// rejection sampling keeps the result unbiased
	limit := ^uint64(0) - (^uint64(0) % uint64(n))
	for {
		u := binary.BigEndian.Uint64(buf[:])
		if u < limit {
			return int(u % uint64(n))
		}
		if _, err := cryptoRand.Read(buf[:]); err != nil {
			return rand.IntN(n) //nolint:gosec // fallback when the system source fails
		}
	}
}

// DefaultRNG returns the crypto backed source
func DefaultRNG() RandomSource { return cryptoRNG{} }

// seededRNG is replicable, for tests and odds previews
type seededRNG struct{ r *rand.Rand }

// NewSeededRNG returns a deterministic PCG source
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))} //nolint:gosec // deterministic on purpose
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

func (s *seededRNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.IntN(n)
}
