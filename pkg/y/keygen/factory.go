package keygen

import (
	"fmt"
	"math/rand"
	"strings"
)

type Distribution int

const (
	SEQUENTIAL Distribution = iota
	UNIFORM
)

// Generator yields payload key ids. The caller owns rng.
type Generator interface {
	Next(rng *rand.Rand) int64
}

func ParseDistribution(name string) (Distribution, error) {
	switch strings.ToLower(name) {
	case "sequential", "seq":
		return SEQUENTIAL, nil
	case "uniform":
		return UNIFORM, nil
	default:
		return 0, fmt.Errorf("unknown key distribution %q", name)
	}
}

func Build(dist Distribution, start int64, count int64) Generator {

	var keyRangeLowerBound = start
	var keyRangeUpperBound = start + count - 1

	var keygen Generator
	switch dist {
	case UNIFORM:
		keygen = NewUniform(keyRangeLowerBound, keyRangeUpperBound)
	case SEQUENTIAL:
		keygen = NewSequential(keyRangeLowerBound, keyRangeUpperBound)
	default:
		panic("Unknown distribution")
	}
	return keygen
}

// Format renders a key id the way payloads are keyed in the sink: zero
// padded so that key order matches id order and keys are URL safe.
// key length 16 --> cache padding improvement
func Format(id int64) string {
	return fmt.Sprintf("%016d", id)
}
