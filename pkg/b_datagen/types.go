package datagen

import (
	"strings"

	"github.com/arjunsk/cometbench/pkg/y/config"
)

// RandomSource is the randomness a generator consumes. *rand.Rand
// satisfies it; generators never seed a source of their own.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

// DataGenerator fills payload buffers. Instances are not safe for
// concurrent use: give each worker its own.
type DataGenerator interface {
	// InitProps configures the generator from settings under keyPrefix.
	InitProps(props config.Props, keyPrefix string) error
	// Fill writes generated bytes into data and returns it.
	Fill(rng RandomSource, data []byte) []byte
}

// Estimator is implemented by generators that can bound the compression
// ratio of their output.
type Estimator interface {
	EstMaxCompression() float64
}

// Property key suffixes, appended to the generator's key prefix.
const (
	StartByteKey  = "startbyte"
	EndByteKey    = "endbyte"
	UniquenessKey = "uniqueness"
	MotifLenKey   = "motif_length"
)

type Typ int

const (
	Uniform Typ = iota
	Motif
)

func (t Typ) String() string {
	switch t {
	case Uniform:
		return "uniform"
	case Motif:
		return "motif"
	default:
		return "unknown"
	}
}

// ParseTyp accepts short names and generator class names, optionally
// package qualified ("x.y.MotifDataGenerator").
func ParseTyp(name string) (Typ, error) {
	n := strings.TrimSpace(name)
	if i := strings.LastIndex(n, "."); i >= 0 {
		n = n[i+1:]
	}
	switch strings.ToLower(n) {
	case "uniform", "uniformdatagenerator":
		return Uniform, nil
	case "motif", "motifdatagenerator":
		return Motif, nil
	default:
		return 0, config.Errorf("datagen", name, "unknown data generator")
	}
}

// ValidateByteRange checks the inclusive [start, end] byte alphabet shared
// by all generators.
func ValidateByteRange(start, end int) error {
	if start < 0 || start > 255 {
		return config.Errorf("start", start, "out of range [0,255]")
	}
	if end < 0 || end > 255 {
		return config.Errorf("end", end, "out of range [0,255]")
	}
	if start >= end {
		return config.Errorf("start/end", start, "start must be less than end %d", end)
	}
	return nil
}
