package keygen

import "math/rand"

type Uniform struct {
	lower, upper int64
}

func NewUniform(lower, upper int64) *Uniform {
	if upper < lower {
		panic("keygen: invalid uniform range")
	}
	return &Uniform{lower: lower, upper: upper}
}

func (u *Uniform) Next(rng *rand.Rand) int64 {
	return u.lower + rng.Int63n(u.upper-u.lower+1)
}

// Sequential walks [lower, upper] in order and wraps around. It ignores rng
// and is not safe for concurrent use.
type Sequential struct {
	lower, upper int64
	next         int64
}

func NewSequential(lower, upper int64) *Sequential {
	if upper < lower {
		panic("keygen: invalid sequential range")
	}
	return &Sequential{lower: lower, upper: upper, next: lower}
}

func (s *Sequential) Next(_ *rand.Rand) int64 {
	v := s.next
	s.next++
	if s.next > s.upper {
		s.next = s.lower
	}
	return v
}
