package animator

// RNG is a small seeded generator for glyph picks and column restarts.
// It is an LCG whose output is taken from the high bits only.
type RNG struct {
	state uint64
}

// NewRNG creates a generator; the seed is mixed so that nearby seeds
// (0, 1, 2...) do not produce correlated first values
func NewRNG(seed uint64) *RNG {
	seed += 0x9e3779b97f4a7c15
	seed = (seed ^ (seed >> 30)) * 0xbf58476d1ce4e5b9
	seed = (seed ^ (seed >> 27)) * 0x94d049bb133111eb
	return &RNG{state: seed ^ (seed >> 31)}
}

func (r *RNG) next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Float64 returns a value in [0, 1)
func (r *RNG) Float64() float64 {
	return float64(r.next()>>11) / (1 << 53)
}

// Intn returns a value in [0, n), or 0 when n <= 0
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.next() >> 33) % uint64(n))
}

// Chance reports true with probability p
func (r *RNG) Chance(p float64) bool {
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	}
	return r.Float64() < p
}

// Glyph picks a rune from set, or a space for an empty set
func (r *RNG) Glyph(set []rune) rune {
	if len(set) == 0 {
		return ' '
	}
	return set[r.Intn(len(set))]
}
