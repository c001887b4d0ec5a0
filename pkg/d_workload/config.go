package workload

import (
	"fmt"
	"time"

	"github.com/arjunsk/cometbench/pkg/y/config"
	"github.com/arjunsk/cometbench/pkg/y/keygen"
)

const (
	DefaultGeneratorKey = "datagen"
	DefaultQueueSize    = 1 << 12
	DefaultSampleBytes  = 64 << 10
	repeatWindow        = 8
)

type Config struct {
	Threads   int
	Count     int
	ValueSize int
	Seed      int64
	TTL       time.Duration

	KeyDist  keygen.Distribution
	KeyRange int64

	// GeneratorKey names the generator in Props; its settings live under
	// GeneratorKey + "_".
	GeneratorKey string
	Props        config.Props

	QueueSize uint32
	// SampleBytes is how much of each worker's output is kept to measure
	// repetition.
	SampleBytes int
}

// ConfigFromProps reads the workload settings:
//
//	threads, count, value_size, seed, ttl, key_dist, key_range, datagen
func ConfigFromProps(props config.Props) (Config, error) {
	cfg := Config{
		GeneratorKey: DefaultGeneratorKey,
		Props:        props,
		QueueSize:    DefaultQueueSize,
		SampleBytes:  DefaultSampleBytes,
	}

	var err error
	if cfg.Threads, err = props.IntOr("threads", 1); err != nil {
		return cfg, err
	}
	if cfg.Count, err = props.IntOr("count", 1000); err != nil {
		return cfg, err
	}
	if cfg.ValueSize, err = props.IntOr("value_size", 1024); err != nil {
		return cfg, err
	}
	if cfg.Seed, err = props.Int64Or("seed", 301); err != nil {
		return cfg, err
	}
	if cfg.TTL, err = props.DurationOr("ttl", 0); err != nil {
		return cfg, err
	}
	if cfg.KeyRange, err = props.Int64Or("key_range", 1_000_000); err != nil {
		return cfg, err
	}
	dist := props.StringOr("key_dist", "uniform")
	if cfg.KeyDist, err = keygen.ParseDistribution(dist); err != nil {
		return cfg, config.Errorf("key_dist", dist, "%v", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Threads < 1 {
		return config.Errorf("threads", c.Threads, "must be at least 1")
	}
	if c.Count < 0 {
		return config.Errorf("count", c.Count, "must be non-negative")
	}
	if c.ValueSize < 0 {
		return config.Errorf("value_size", c.ValueSize, "must be non-negative")
	}
	if c.KeyRange < 1 {
		return config.Errorf("key_range", c.KeyRange, "must be at least 1")
	}
	if c.GeneratorKey == "" {
		return fmt.Errorf("workload: empty generator key")
	}
	return nil
}
