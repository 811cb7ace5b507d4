package guild

// RNG is a counter-based deterministic generator. Every draw method consumes
// exactly one unit from the draw counter; output depends only on the seed and
// the draw index. Reordering call sites is a replay-breaking change.
//
// The RNG instance is the only mutable value in the engine. It is owned by
// the caller driving Step and must not be shared across instances.
type RNG struct {
	seed  int64
	draws uint64
}

func NewRNG(seed int64) *RNG {
	return &RNG{seed: seed}
}

// ResumeRNG reconstructs a generator at a recorded draw position, as reported
// by Draws(). Draws after the resume match the ones a fresh generator would
// produce past that position.
func ResumeRNG(seed int64, draws uint64) *RNG {
	return &RNG{seed: seed, draws: draws}
}

// Seed returns the seed the generator was constructed with.
func (r *RNG) Seed() int64 { return r.seed }

// Draws returns the number of draws consumed so far.
func (r *RNG) Draws() uint64 { return r.draws }

func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func (r *RNG) next() uint64 {
	v := mix64(uint64(r.seed) ^ mix64(r.draws*0xbf58476d1ce4e5b9))
	r.draws++
	return v
}

// NextInt returns a value in [0, bound). bound must be > 0.
func (r *RNG) NextInt(bound int) int {
	if bound <= 0 {
		panic("rng: NextInt bound must be > 0")
	}
	return int(r.next() % uint64(bound))
}

// NextLong returns a value in [0, bound). bound must be > 0.
func (r *RNG) NextLong(bound int64) int64 {
	if bound <= 0 {
		panic("rng: NextLong bound must be > 0")
	}
	return int64(r.next() % uint64(bound))
}

func (r *RNG) NextBool() bool {
	return r.next()&1 == 1
}

// NextFloat returns a value in [0, 1) with 53 bits of precision.
func (r *RNG) NextFloat() float64 {
	return float64(r.next()>>11) / (1 << 53)
}
