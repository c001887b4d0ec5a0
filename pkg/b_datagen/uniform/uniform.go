package uniform

import (
	datagen "github.com/arjunsk/cometbench/pkg/b_datagen"
	"github.com/arjunsk/cometbench/pkg/y/config"
)

// Generator emits independent bytes drawn uniformly from [start, end].
// Its output is the incompressible baseline for the motif generator.
type Generator struct {
	start int
	span  int
}

var _ datagen.DataGenerator = new(Generator)
var _ datagen.Estimator = new(Generator)

func New() *Generator {
	return &Generator{}
}

func (g *Generator) Init(start, end int) error {
	if err := datagen.ValidateByteRange(start, end); err != nil {
		return err
	}
	g.start = start
	g.span = end - start + 1
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
	return g.Init(startByte, endByte)
}

func (g *Generator) EstMaxCompression() float64 {
	return min(float64(g.span)/255.0, 1.0)
}

func (g *Generator) Fill(rng datagen.RandomSource, data []byte) []byte {
	if g.span == 0 {
		panic("uniform: Fill called before Init")
	}
	for i := range data {
		data[i] = byte(g.start + rng.Intn(g.span))
	}
	return data
}
