package engine

// seedFallback replaces a zero seed. xorshift is stuck at zero forever,
// so a degenerate seed is silently remapped instead of reported.
const seedFallback uint64 = 0x9E3779B97F4A7C15

// PRNG is a xorshift64 generator. It lives inside a State and is advanced
// in place on every draw; two instances built from the same seed produce
// identical sequences for any number of draws.
type PRNG struct {
	state uint64
}

// NewPRNG seeds a generator. Seed 0 behaves like seedFallback.
func NewPRNG(seed uint64) *PRNG {
	if seed == 0 {
		seed = seedFallback
	}
	return &PRNG{state: seed}
}

// State returns the current generator state, e.g. for replay logs.
func (r *PRNG) State() uint64 { return r.state }

// Float64 advances the generator and returns a value in [0, 1).
func (r *PRNG) Float64() float64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.state = x
	// top 53 bits, the mantissa width of a float64
	return float64(x>>11) / (1 << 53)
}

// Intn advances the generator and returns a value in [0, n). n must be > 0.
func (r *PRNG) Intn(n int) int {
	return int(r.Float64() * float64(n))
}
