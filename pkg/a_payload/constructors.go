package payload

import (
	datagen "github.com/arjunsk/cometbench/pkg/b_datagen"
	"github.com/arjunsk/cometbench/pkg/b_datagen/motif"
	"github.com/arjunsk/cometbench/pkg/b_datagen/uniform"
)

func NewDataGenerator(typ datagen.Typ) (gen datagen.DataGenerator) {

	switch typ {
	case datagen.Uniform:
		gen = uniform.New()

	case datagen.Motif:
		gen = motif.New()

	default:
		panic("unknown")
	}

	return
}
