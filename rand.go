package butterfly

import "math/rand"

// Rand is the seeded PRNG carried by the ambient "state_with_rng" from
// spec.md §4.2/§9: a first-class, mutably-borrowed parameter to every
// structural mutator and the scheduler, rather than something pulled
// off a global or ambient fuzzer state. Determinism under a fixed seed
// follows directly from wrapping a single *rand.Rand.
type Rand struct {
	src *rand.Rand
}

// NewRand returns a Rand seeded deterministically.
func NewRand(seed int64) *Rand {
	return &Rand{src: rand.New(rand.NewSource(seed))}
}

// Below returns a pseudo-random value in [0, n). Panics if n == 0
// (callers must check their precondition before drawing).
func (r *Rand) Below(n uint64) uint64 {
	if n == 0 {
		panic("butterfly: Rand.Below called with n == 0")
	}

	return uint64(r.src.Int63n(int64(n)))
}

// BelowInt is a convenience wrapper returning Below(n) as an int.
func (r *Rand) BelowInt(n int) int {
	return int(r.Below(uint64(n)))
}
