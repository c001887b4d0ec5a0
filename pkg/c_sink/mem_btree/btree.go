package mem_btree

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/RussellLuo/timingwheel"
	"github.com/arjunsk/cometbench/pkg/y/entry"
	"github.com/arjunsk/cometbench/pkg/y/stats"
	"github.com/tidwall/btree"
)

type item struct {
	key     string
	val     []byte
	version uint64
}

// Store keeps payloads ordered by key. With a positive ttl every entry is
// dropped ttl after it was last written.
type Store struct {
	// serializes Put against expiry so a stale timer never drops a newer value
	mu      sync.Mutex
	version uint64

	tree  *btree.BTreeG[item]
	timer *timingwheel.TimingWheel
	ttl   time.Duration
	bytes atomic.Int64
}

func New(ttl time.Duration) *Store {
	s := &Store{ttl: ttl}
	s.tree = btree.NewBTreeG(func(a, b item) bool {
		return a.key < b.key
	})

	if ttl > 0 {
		tick := stats.Clamp(ttl/16, time.Millisecond, time.Second)
		s.timer = timingwheel.NewTimingWheel(tick, 64)
		s.timer.Start()
	}
	return s
}

func (s *Store) Name() string {
	return "mem_btree"
}

func (s *Store) Put(key string, val []byte) {
	s.mu.Lock()
	s.version++
	version := s.version
	old, replaced := s.tree.Set(item{key: key, val: val, version: version})
	if replaced {
		s.bytes.Add(-int64(len(old.val)))
	}
	s.bytes.Add(int64(len(val)))
	s.mu.Unlock()

	if s.timer != nil {
		s.timer.AfterFunc(s.ttl, func() {
			s.expire(key, version)
		})
	}
}

func (s *Store) expire(key string, version uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.tree.Get(item{key: key})
	if !ok || cur.version != version {
		return
	}
	s.tree.Delete(cur)
	s.bytes.Add(-int64(len(cur.val)))
}

func (s *Store) Get(key string) []byte {
	it, ok := s.tree.Get(item{key: key})
	if !ok {
		return nil
	}
	return it.val
}

func (s *Store) Scan(startKey string, count int) []entry.Pair[string, []byte] {
	if count <= 0 {
		return []entry.Pair[string, []byte]{}
	}
	res := make([]entry.Pair[string, []byte], 0, min(count, s.tree.Len()))
	s.tree.Ascend(item{key: startKey}, func(it item) bool {
		res = append(res, entry.Pair[string, []byte]{Key: it.key, Val: it.val})
		return len(res) < count
	})
	return res
}

func (s *Store) Len() int {
	return s.tree.Len()
}

// Bytes is the payload volume currently held.
func (s *Store) Bytes() int64 {
	return s.bytes.Load()
}

func (s *Store) Close() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.Clear()
	s.bytes.Store(0)
}
