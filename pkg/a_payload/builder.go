package payload

import (
	"fmt"

	datagen "github.com/arjunsk/cometbench/pkg/b_datagen"
	"github.com/arjunsk/cometbench/pkg/y/config"
)

// Load builds the generator named by props[classKey] and configures it from
// the settings prefixed with classKey + "_", e.g. for classKey "datagen":
//
//	datagen = motif
//	datagen_startbyte = 32
//	datagen_endbyte = 126
//	datagen_uniqueness = 0.25
//	datagen_motif_length = 1024
func Load(props config.Props, classKey string) (datagen.DataGenerator, error) {
	name, err := props.GetString(classKey)
	if err != nil {
		return nil, err
	}
	typ, err := datagen.ParseTyp(name)
	if err != nil {
		return nil, err
	}
	gen := NewDataGenerator(typ)
	if err := gen.InitProps(props, classKey+"_"); err != nil {
		return nil, fmt.Errorf("init %s generator: %w", typ, err)
	}
	return gen, nil
}
