package sink

import (
	"time"

	"github.com/arjunsk/cometbench/pkg/c_sink/mem_btree"
	"github.com/arjunsk/cometbench/pkg/y/entry"
)

// Sink receives generated payloads keyed by string.
type Sink interface {
	Put(key string, val []byte)
	Get(key string) []byte
	Scan(startKey string, count int) []entry.Pair[string, []byte]

	Len() int
	Bytes() int64
	Close()

	Name() string
}

var _ Sink = new(mem_btree.Store)

type Type int

const (
	MBtree Type = iota
)

func New(t Type, ttl time.Duration) Sink {
	switch t {
	case MBtree:
		return mem_btree.New(ttl)
	default:
		panic("unknown sink type")
	}
}
