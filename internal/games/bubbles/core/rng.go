package core

// Source is the random number source used for board fills, row inserts and
// next-bubble draws. Implementations must be deterministic for a given seed.
type Source interface {
	// Intn returns a value in [0, n). n <= 0 returns 0.
	Intn(n int) int
}

// XorShift is a deterministic pseudo-random number generator (xorshift64).
type XorShift struct {
	state uint64
}

// NewRNG creates a new XorShift seeded with seed.
func NewRNG(seed uint64) *XorShift {
	if seed == 0 {
		seed = 88172645463325252
	}
	return &XorShift{state: seed}
}

// Next returns the next random uint64.
func (r *XorShift) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Intn returns a random int in [0, n).
func (r *XorShift) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// State returns the internal state so a run can be resumed.
func (r *XorShift) State() uint64 {
	return r.state
}

// Sequence replays a fixed list of values, wrapping around at the end.
// Each value is reduced modulo n. It is meant for tests that need to pin
// exactly which colors a fill produces.
type Sequence struct {
	values []int
	next   int
}

// NewSequence creates a Sequence over values.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

// Intn returns the next value modulo n.
func (s *Sequence) Intn(n int) int {
	if n <= 0 || len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
