package sim

// RandomSource produces uniform floats. Every stochastic decision in the
// simulation goes through one, which keeps runs reproducible from a seed.
type RandomSource interface {
	// Range returns a value in [lo, hi).
	Range(lo, hi float64) float64
	// RangeInclusive returns a value in [lo, hi].
	RangeInclusive(lo, hi float64) float64
}

// SimpleRNG is a deterministic pseudo-random number generator.
// Uses a 64-bit LCG (Knuth's MMIX constants).
type SimpleRNG struct {
	state uint64
}

// NewSimpleRNG creates a new RNG with the given seed.
func NewSimpleRNG(seed int64) *SimpleRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &SimpleRNG{state: s}
}

// Next generates the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Float64 returns a random float64 in [0, 1).
func (r *SimpleRNG) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Unit returns a random float64 in [0, 1].
func (r *SimpleRNG) Unit() float64 {
	return float64(r.Next()>>11) / ((1 << 53) - 1)
}

// Range returns a value in [lo, hi). Returns lo when the range is empty.
func (r *SimpleRNG) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	v := lo + r.Float64()*(hi-lo)
	// Guard against rounding up to hi for very wide ranges.
	if v >= hi {
		return lo
	}
	return v
}

// RangeInclusive returns a value in [lo, hi]. Returns lo when hi < lo.
func (r *SimpleRNG) RangeInclusive(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	v := lo + r.Unit()*(hi-lo)
	if v > hi {
		return hi
	}
	return v
}

// State returns the internal generator state for snapshots.
func (r *SimpleRNG) State() uint64 {
	return r.state
}

// SetState restores a state previously returned by State.
func (r *SimpleRNG) SetState(s uint64) {
	r.state = s
}
