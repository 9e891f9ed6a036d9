// Package lib provide small utilities shared by index algorithms.
package lib

import "fmt"
import "math"
import "sort"
import "strconv"
import "strings"

// HistogramInt64 statistical histogram of int64 samples. Samples
// below `from` fall into the first bucket, samples at or above
// `till` fall into the last bucket.
type HistogramInt64 struct {
	n       int64
	minval  int64
	maxval  int64
	sum     int64
	sumsq   float64
	buckets []int64
	seeded  bool
	from    int64
	till    int64
	width   int64
}

// NewhistorgramInt64 return a new histogram with buckets of `width`
// between `from` and `till`.
func NewhistorgramInt64(from, till, width int64) *HistogramInt64 {
	from, till = (from/width)*width, (till/width)*width
	h := &HistogramInt64{from: from, till: till, width: width}
	h.buckets = make([]int64, ((till-from)/width)+2)
	return h
}

// Add a sample to this histogram.
func (h *HistogramInt64) Add(sample int64) {
	h.n, h.sum = h.n+1, h.sum+sample
	f := float64(sample)
	h.sumsq += f * f
	if h.seeded == false || sample < h.minval {
		h.minval, h.seeded = sample, true
	}
	if h.maxval < sample {
		h.maxval = sample
	}
	switch {
	case sample < h.from:
		h.buckets[0]++
	case sample >= h.till:
		h.buckets[len(h.buckets)-1]++
	default:
		h.buckets[((sample-h.from)/h.width)+1]++
	}
}

// Samples return number of samples added to this histogram.
func (h *HistogramInt64) Samples() int64 {
	return h.n
}

// Min return smallest sample value.
func (h *HistogramInt64) Min() int64 {
	return h.minval
}

// Max return largest sample value.
func (h *HistogramInt64) Max() int64 {
	return h.maxval
}

// Sum return sum of all sample values.
func (h *HistogramInt64) Sum() int64 {
	return h.sum
}

// Mean return average of all sample values.
func (h *HistogramInt64) Mean() int64 {
	if h.n == 0 {
		return 0
	}
	return int64(float64(h.sum) / float64(h.n))
}

// Variance return squared deviation of samples from their mean.
func (h *HistogramInt64) Variance() int64 {
	if h.n == 0 {
		return 0
	}
	nf, meanf := float64(h.n), float64(h.Mean())
	return int64((h.sumsq / nf) - (meanf * meanf))
}

// SD return standard deviation of samples from their mean.
func (h *HistogramInt64) SD() int64 {
	if h.n == 0 {
		return 0
	}
	return int64(math.Sqrt(float64(h.Variance())))
}

// Stats return non-empty buckets as a map of bucket-start to count.
// The overflow bucket, if non-empty, is keyed as "+".
func (h *HistogramInt64) Stats() map[string]int64 {
	m := make(map[string]int64)
	for i, count := range h.buckets {
		if count == 0 {
			continue
		}
		if i == len(h.buckets)-1 {
			m["+"] = count
			continue
		}
		start := h.from + (int64(i)-1)*h.width
		if i == 0 {
			start = h.minval
		}
		m[strconv.Itoa(int(start))] = count
	}
	return m
}

// Fullstats include samples,min,max,mean,variance,stddeviance
// along with Stats().
func (h *HistogramInt64) Fullstats() map[string]interface{} {
	hmap := make(map[string]interface{})
	for k, v := range h.Stats() {
		hmap[k] = v
	}
	return map[string]interface{}{
		"samples":     h.Samples(),
		"min":         h.Min(),
		"max":         h.Max(),
		"mean":        h.Mean(),
		"variance":    h.Variance(),
		"stddeviance": h.SD(),
		"histogram":   hmap,
	}
}

// Logstring return Fullstats as loggable string.
func (h *HistogramInt64) Logstring() string {
	stats := h.Fullstats()
	keys := []string{}
	for k := range stats {
		if k != "histogram" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	ss := []string{}
	for _, key := range keys {
		ss = append(ss, fmt.Sprintf(`"%v": %v`, key, stats[key]))
	}
	histogram := stats["histogram"].(map[string]interface{})
	hkeys := []int{}
	for k := range histogram {
		if k == "+" {
			continue
		}
		n, _ := strconv.Atoi(k)
		hkeys = append(hkeys, n)
	}
	sort.Ints(hkeys)
	hs := []string{}
	for _, k := range hkeys {
		ks := strconv.Itoa(k)
		hs = append(hs, fmt.Sprintf(`"%v": %v`, ks, histogram[ks]))
	}
	if v, ok := histogram["+"]; ok {
		hs = append(hs, fmt.Sprintf(`"+": %v`, v))
	}
	ss = append(ss, `"histogram": {`+strings.Join(hs, ",")+`}`)
	return "{" + strings.Join(ss, ",") + "}"
}
