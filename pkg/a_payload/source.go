package payload

import (
	"math/rand"

	datagen "github.com/arjunsk/cometbench/pkg/b_datagen"
)

// Source pairs one generator with its own random stream. A Source belongs
// to a single goroutine.
type Source struct {
	gen datagen.DataGenerator
	rng *rand.Rand
}

func NewSource(gen datagen.DataGenerator, seed int64) *Source {
	return &Source{
		gen: gen,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Next returns a freshly allocated payload of size bytes.
func (s *Source) Next(size int) []byte {
	if size <= 0 {
		return []byte{}
	}
	return s.gen.Fill(s.rng, make([]byte, size))
}

// FillInto overwrites buf in place.
func (s *Source) FillInto(buf []byte) []byte {
	return s.gen.Fill(s.rng, buf)
}

func (s *Source) Generator() datagen.DataGenerator {
	return s.gen
}

// EstMaxCompression reports the generator's compression bound, or 1.0 when
// the generator gives none.
func (s *Source) EstMaxCompression() float64 {
	if est, ok := s.gen.(datagen.Estimator); ok {
		return est.EstMaxCompression()
	}
	return 1.0
}
