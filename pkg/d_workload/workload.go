package workload

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alphadose/zenq/v2"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	payload "github.com/arjunsk/cometbench/pkg/a_payload"
	sink "github.com/arjunsk/cometbench/pkg/c_sink"
	"github.com/arjunsk/cometbench/pkg/y/entry"
	"github.com/arjunsk/cometbench/pkg/y/keygen"
	"github.com/arjunsk/cometbench/pkg/y/logging"
	"github.com/arjunsk/cometbench/pkg/y/stats"
)

type Result struct {
	RunID   string
	Ops     int64
	Bytes   int64
	Elapsed time.Duration

	// AvgFill is the moving average time to generate one payload.
	AvgFill time.Duration
	// RepeatRatio is the mean, over workers, of the share of 8-byte windows
	// of a worker's output that repeat an earlier window.
	RepeatRatio       float64
	EstMaxCompression float64
}

func (r Result) String() string {
	mbps := 0.0
	if r.Elapsed > 0 {
		mbps = float64(r.Bytes) / (1 << 20) / r.Elapsed.Seconds()
	}
	return fmt.Sprintf("run=%s ops=%d bytes=%d elapsed=%s %.1f MB/s avg_fill=%s repeat=%.3f est_max_compression=%.3f",
		r.RunID, r.Ops, r.Bytes, r.Elapsed, mbps, r.AvgFill, r.RepeatRatio, r.EstMaxCompression)
}

// Run generates cfg.Count payloads on each of cfg.Threads workers and writes
// them into dst through a single writer. Every worker owns its generator and
// its random stream, seeded cfg.Seed + worker id, so a run is reproducible
// per worker. Generator configuration errors are returned before any work
// starts. On ctx cancellation Run stops early and returns the partial
// result with ctx.Err().
func Run(ctx context.Context, cfg Config, dst sink.Sink, log logging.Logger) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if log == nil {
		log = logging.Nop{}
	}

	// 1. One generator per worker
	sources := make([]*payload.Source, cfg.Threads)
	for w := range sources {
		gen, err := payload.Load(cfg.Props, cfg.GeneratorKey)
		if err != nil {
			return Result{}, err
		}
		sources[w] = payload.NewSource(gen, cfg.Seed+int64(w))
	}

	res := Result{
		RunID:             uuid.New().String(),
		EstMaxCompression: sources[0].EstMaxCompression(),
	}
	log.Info("run %s: threads=%d count=%d value_size=%d sink=%s", res.RunID, cfg.Threads, cfg.Count, cfg.ValueSize, dst.Name())

	pool, err := ants.NewPool(cfg.Threads)
	if err != nil {
		return Result{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	queueSize := cfg.QueueSize
	if queueSize == 0 {
		queueSize = DefaultQueueSize
	}
	queue := zenq.New[entry.Pair[string, []byte]](queueSize)

	// 2. Single writer into the sink
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for {
			pair, isQueueOpen := queue.Read()
			if !isQueueOpen {
				return
			}
			dst.Put(pair.Key, pair.Val)
		}
	}()

	// 3. Workers
	var (
		ops, bytes atomic.Int64
		wg         sync.WaitGroup
		ratios     = make([]float64, cfg.Threads)
		lat        = stats.NewLatency(1000)
	)
	start := time.Now()
	for w := 0; w < cfg.Threads; w++ {
		w := w
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()

			src := sources[w]
			keyRand := rand.New(rand.NewSource(cfg.Seed + int64(w)))
			keys := keygen.Build(cfg.KeyDist, 1, cfg.KeyRange)
			sample := make([]byte, 0, cfg.SampleBytes)

			for i := 0; i < cfg.Count; i++ {
				if ctx.Err() != nil {
					break
				}
				key := keygen.Format(keys.Next(keyRand))

				t0 := time.Now()
				val := src.Next(cfg.ValueSize)
				lat.Observe(time.Since(t0))

				if room := cfg.SampleBytes - len(sample); room > 0 {
					sample = append(sample, val[:min(room, len(val))]...)
				}

				queue.Write(entry.Pair[string, []byte]{Key: key, Val: val})
				ops.Add(1)
				bytes.Add(int64(len(val)))
			}
			ratios[w] = stats.RepeatRatio(sample, repeatWindow)
		})
		if err != nil {
			wg.Done()
			log.Error("run %s: submit worker %d: %v", res.RunID, w, err)
		}
	}
	wg.Wait()
	queue.Close()
	<-writerDone

	res.Elapsed = time.Since(start)
	res.Ops = ops.Load()
	res.Bytes = bytes.Load()
	res.AvgFill = lat.Avg()
	for _, r := range ratios {
		res.RepeatRatio += r
	}
	res.RepeatRatio /= float64(cfg.Threads)

	log.Info("run %s: %s", res.RunID, res)
	return res, ctx.Err()
}
