package stats

import (
	"sync"
	"time"

	movingaverage "github.com/RobinUS2/golang-moving-average"
)

// Latency keeps a moving average of the last window observations.
type Latency struct {
	mu    sync.Mutex
	moAvg *movingaverage.MovingAverage
	count int64
}

func NewLatency(window int) *Latency {
	if window < 1 {
		window = 1
	}
	return &Latency{moAvg: movingaverage.New(window)}
}

func (l *Latency) Observe(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.moAvg.Add(float64(d.Nanoseconds()))
	l.count++
}

func (l *Latency) Avg() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.count == 0 {
		return 0
	}
	return time.Duration(l.moAvg.Avg())
}

func (l *Latency) Count() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
