package lotsaa

import (
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Output is used to print elapsed time, ops/sec and MB/sec
var Output io.Writer

// MemUsage is used to output the memory usage
var MemUsage bool

// Ops executes an operation over multiple goroutines for duration.
// threads is the number of goroutines, each with its own rand seeded
// seed + threadIdx. op returns the number of bytes it produced.
// TODO: accept ctx
func Ops(duration time.Duration, threads int, seed int64, op func(threadRand *rand.Rand, threadIdx int) int) (count, bytes int64) {

	var start time.Time
	var wg sync.WaitGroup
	wg.Add(threads)
	var ms1 runtime.MemStats
	output := Output
	if output != nil && MemUsage {
		runtime.GC()
		runtime.ReadMemStats(&ms1)
	}
	start = time.Now()

	var totalCount, totalBytes atomic.Int64
	for i := 0; i < threads; i++ {

		go func(i int) {
			defer wg.Done()
			timer := time.NewTimer(duration)
			defer timer.Stop()

			randGen := rand.New(rand.NewSource(seed + int64(i)))
			for {
				select {
				case <-timer.C:
					return
				default:
					n := op(randGen, i)
					totalCount.Add(1)
					totalBytes.Add(int64(n))
				}
			}
		}(i)
	}
	wg.Wait()

	count, bytes = totalCount.Load(), totalBytes.Load()
	if output != nil {
		dur := time.Since(start)
		var alloc uint64
		if MemUsage {
			runtime.GC()
			var ms2 runtime.MemStats
			runtime.ReadMemStats(&ms2)
			if ms1.HeapAlloc < ms2.HeapAlloc {
				alloc = ms2.HeapAlloc - ms1.HeapAlloc
			}
		}
		WriteOutput(output, count, bytes, threads, dur, alloc)
	}
	return count, bytes
}

func commaize(n int64) string {
	s1, s2 := fmt.Sprintf("%d", n), ""
	for i, j := len(s1)-1, 0; i >= 0; i, j = i-1, j+1 {
		if j%3 == 0 && j != 0 {
			s2 = "," + s2
		}
		s2 = string(s1[i]) + s2
	}
	return s2
}

// WriteOutput writes an output line to the specified writer
func WriteOutput(w io.Writer, count, bytes int64, threads int, elapsed time.Duration, alloc uint64) {
	secs := elapsed.Seconds()
	if secs <= 0 {
		secs = 1e-9
	}
	fmt.Fprintf(w, "%d threads R = %s ops/sec, %.1f MB/sec", threads,
		commaize(int64(float64(count)/secs)), float64(bytes)/(1<<20)/secs)
	if MemUsage {
		fmt.Fprintf(w, ", %s bytes allocated", commaize(int64(alloc)))
	}
	fmt.Fprintln(w)
}
