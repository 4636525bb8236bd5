package vmath

// Rand is a xorshift64 PRNG. Not cryptographic; it exists so simulations
// can be seeded and replayed deterministically without the global
// math/rand state.
type Rand struct {
	state uint64
}

func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = 1
	}
	return &Rand{state: seed}
}

func (r *Rand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a uniform value in [0, 1)
func (r *Rand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a uniform value in [lo, hi)
func (r *Rand) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Jitter returns a uniform value in [-mag, mag)
func (r *Rand) Jitter(mag float64) float64 {
	return r.Range(-mag, mag)
}
