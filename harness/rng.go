package harness

import "strings"

const rngModulus = 1_000_000_007

// RNG is the deterministic generator behind every randomized workload, so a
// failing run can be replayed from its seed alone.
//
// It is not safe for concurrent use; give each goroutine its own.
type RNG struct {
	seed int64
}

// NewRNG starts a generator from seed, reduced into [0, 1e9+7) so the state
// squared always fits in an int64.
func NewRNG(seed int) *RNG {
	s := int64(seed) % rngModulus
	if s < 0 {
		s += rngModulus
	}
	return &RNG{seed: s}
}

// Seed returns the current state
func (r *RNG) Seed() int {
	return int(r.seed)
}

func (r *RNG) advance() {
	r.seed = (r.seed*r.seed + 1) % rngModulus
}

// Between returns a value in [lo, hi].
func (r *RNG) Between(lo, hi int) int {
	r.advance()
	return int(r.seed%int64(hi-lo+1)) + lo
}

// SmallPath returns a path of depth 0..4 over the names a, b and c, so that
// random operations collide often.
func (r *RNG) SmallPath() string {
	var sb strings.Builder
	sb.WriteByte('/')
	depth := r.Between(0, 4)
	for range depth {
		sb.WriteByte(byte('a' + r.Between(0, 2)))
		sb.WriteByte('/')
	}
	return sb.String()
}

// LongName returns a single-folder path whose name is n random letters.
func (r *RNG) LongName(n int) string {
	buf := make([]byte, n+2)
	buf[0] = '/'
	for i := range n {
		buf[1+i] = byte('a' + r.Between(0, 25))
	}
	buf[n+1] = '/'
	return string(buf)
}
