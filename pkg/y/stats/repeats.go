package stats

import (
	"golang.org/x/exp/constraints"
)

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RepeatRatio returns the fraction of k-byte windows in data that already
// occurred earlier in data. Uniform random bytes over a wide alphabet score
// close to 0; data assembled from a small set of recurring substrings scores
// close to 1. It returns 0 when data is shorter than k or k < 1.
func RepeatRatio(data []byte, k int) float64 {
	if k < 1 || len(data) < k {
		return 0
	}
	windows := len(data) - k + 1
	seen := make(map[string]struct{}, windows)
	repeated := 0
	for i := 0; i < windows; i++ {
		w := string(data[i : i+k])
		if _, ok := seen[w]; ok {
			repeated++
			continue
		}
		seen[w] = struct{}{}
	}
	return float64(repeated) / float64(windows)
}
