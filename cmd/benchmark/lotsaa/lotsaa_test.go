package lotsaa

import (
	"bytes"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommaize(t *testing.T) {
	assert.Equal(t, "0", commaize(0))
	assert.Equal(t, "999", commaize(999))
	assert.Equal(t, "1,000", commaize(1000))
	assert.Equal(t, "12,345,678", commaize(12345678))
}

func TestOps(t *testing.T) {
	var buf bytes.Buffer
	Output = &buf
	defer func() { Output = nil }()

	var seen [4]atomic.Bool
	count, n := Ops(50*time.Millisecond, 4, 1, func(r *rand.Rand, idx int) int {
		seen[idx].Store(true)
		return 10
	})

	assert.Greater(t, count, int64(0))
	assert.Equal(t, count*10, n)
	for i := range seen {
		assert.True(t, seen[i].Load(), "thread %d", i)
	}
	assert.Contains(t, buf.String(), "4 threads R = ")
	assert.Contains(t, buf.String(), "MB/sec")
}
