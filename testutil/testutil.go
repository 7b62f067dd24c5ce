package testutil

import (
	"math/rand/v2"
	"strings"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: newRand(seed),
		seed: seed,
	}
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = newRand(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

// Uint32n returns a pseudo-random number in [0,n).
func (r *RNG) Uint32n(n uint32) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint32N(n)
}

// Bases returns n uniformly random nucleotides.
func (r *RNG) Bases(n int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.basesLocked(n)
}

func (r *RNG) basesLocked(n int) string {
	const alphabet = "ACGT"
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteByte(alphabet[r.rand.IntN(4)])
	}
	return sb.String()
}

// GappedBases returns n random nucleotides with up to gaps stretches of N,
// each at most gapLen long, placed at random.
func (r *RNG) GappedBases(n, gaps, gapLen int) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := []byte(r.basesLocked(n))
	for g := 0; g < gaps && n > 0 && gapLen > 0; g++ {
		start := r.rand.IntN(n)
		l := 1 + r.rand.IntN(gapLen)
		for i := start; i < start+l && i < n; i++ {
			b[i] = 'N'
		}
	}
	return string(b)
}
