// Package motif generates bytes in which the same short sequences, or
// motifs, recur. A single output buffer is barely compressible on its own,
// but the concatenated output of many Fill calls on one generator is,
// because every call copies substrings out of one fixed motif buffer.
//
// Output is built chunk by chunk. Each chunk is either fresh random bytes,
// with probability uniqueness, or a copy of a random window of the motif
// buffer. uniqueness = 0 draws everything from motifs, uniqueness = 1
// yields fully independent bytes.
package motif

import (
	"fmt"

	datagen "github.com/arjunsk/cometbench/pkg/b_datagen"
	"github.com/arjunsk/cometbench/pkg/y/config"
	"github.com/arjunsk/cometbench/pkg/y/stats"
)

const (
	maxChunkSize = 128

	DefaultMotifBufferSize = 512
)

type Generator struct {
	// lowest byte to appear in output
	start int
	// number of distinct bytes to appear in output
	span int
	// probability that a chunk is fresh rather than copied from motifs
	uniqueness float64

	// nil until the first Fill so that it is drawn from the caller's source
	motifs     []byte
	motifBytes int
}

var _ datagen.DataGenerator = new(Generator)
var _ datagen.Estimator = new(Generator)

func New() *Generator {
	return &Generator{}
}

// InitDefault is Init with the default motif buffer size.
func (g *Generator) InitDefault(start, end int, uniqueness float64) error {
	return g.Init(start, end, uniqueness, DefaultMotifBufferSize)
}

// Init configures the generator to emit bytes in [start, end], both
// inclusive. uniqueness is not validated. Any existing motif buffer is
// dropped and rebuilt on the next Fill.
func (g *Generator) Init(start, end int, uniqueness float64, motifBytes int) error {
	if err := datagen.ValidateByteRange(start, end); err != nil {
		return err
	}
	if motifBytes < 1 {
		return config.Errorf(datagen.MotifLenKey, motifBytes, "must be at least 1")
	}
	g.start = start
	g.span = end - start + 1
	g.uniqueness = uniqueness
	g.motifBytes = motifBytes
	g.motifs = nil
	return nil
}

func (g *Generator) InitProps(props config.Props, keyPrefix string) error {
	startByte, err := props.GetInt(keyPrefix + datagen.StartByteKey)
	if err != nil {
		return err
	}
	endByte, err := props.GetInt(keyPrefix + datagen.EndByteKey)
	if err != nil {
		return err
	}
	uniqueness, err := props.GetFloat(keyPrefix + datagen.UniquenessKey)
	if err != nil {
		return err
	}
	motifBytes, err := props.IntOr(keyPrefix+datagen.MotifLenKey, DefaultMotifBufferSize)
	if err != nil {
		return err
	}
	return g.Init(startByte, endByte, uniqueness, motifBytes)
}

// EstMaxCompression gives an upper bound for the compression ratio of the
// output: 0.0 is perfectly compressible, 1.0 is incompressible. Motif bytes
// are assumed to compress away entirely and fresh bytes to cost their
// uniform alphabet entropy.
func (g *Generator) EstMaxCompression() float64 {
	charCompression := float64(g.span) / 255.0
	return stats.Clamp(charCompression*g.uniqueness, 0.0, 1.0)
}

// Motifs returns the shared motif buffer, nil before the first Fill.
func (g *Generator) Motifs() []byte {
	return g.motifs
}

func (g *Generator) Fill(rng datagen.RandomSource, data []byte) []byte {
	if g.motifBytes == 0 {
		panic("motif: Fill called before Init")
	}

	if g.motifs == nil {
		g.motifs = make([]byte, g.motifBytes)
		for i := range g.motifs {
			g.motifs[i] = g.randByte(rng)
		}
	}

	n := len(data)
	chunk := min(maxChunkSize, g.motifBytes)

	for i := 0; i < n; i += chunk {
		chunkEnd := min(n, i+chunk)
		if rng.Float64() < g.uniqueness {
			for j := i; j < chunkEnd; j++ {
				data[j] = g.randByte(rng)
			}
		} else {
			thisChunk := chunkEnd - i
			k := rng.Intn(g.motifBytes - thisChunk + 1)
			copy(data[i:chunkEnd], g.motifs[k:k+thisChunk])
		}
	}
	return data
}

func (g *Generator) randByte(rng datagen.RandomSource) byte {
	return byte(g.start + rng.Intn(g.span))
}

func (g *Generator) String() string {
	return fmt.Sprintf("motif[start=%d range=%d uniqueness=%.2f motif_length=%d]",
		g.start, g.span, g.uniqueness, g.motifBytes)
}
