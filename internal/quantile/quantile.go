// Package quantile implements the order-statistic selector shared by
// the historical and Monte-Carlo VaR/ES paths.
//
// Select permutes its input via quickselect (Lomuto partitioning), the
// same worst-case-linear-expected-time algorithm as std::nth_element in
// the original C++ engine. It never sorts the whole slice.
package quantile

import (
	"math"

	"github.com/mfrandev/risk-assessment-engine/internal/rkerr"
)

const op = "quantile.Select"

// Select returns the idx-th order statistic of sample, where
// idx = floor(q * (n-1)) and q is clamped to [0, 1]. sample is permuted
// in place; callers that need to preserve their data should pass a copy.
//
// Select fails with rkerr.InvalidArgument if sample is empty or q is
// not finite.
func Select(sample []float64, q float64) (float64, error) {
	n := len(sample)
	if n == 0 {
		return 0, rkerr.New(op, rkerr.InvalidArgument, errEmptySample)
	}
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, rkerr.New(op, rkerr.InvalidArgument, errNonFiniteQ)
	}

	q = clamp01(q)
	if n == 1 {
		return sample[0], nil
	}

	rank := q * float64(n-1)
	idx := int(math.Floor(rank))

	quickselect(sample, idx)
	return sample[idx], nil
}

func clamp01(q float64) float64 {
	if q < 0 {
		return 0
	}
	if q > 1 {
		return 1
	}
	return q
}

// quickselect partitions data in place so that data[k] holds the value
// that would occupy index k in a fully sorted slice.
func quickselect(data []float64, k int) {
	lo, hi := 0, len(data)-1
	for lo < hi {
		p := partition(data, lo, hi)
		switch {
		case k == p:
			return
		case k < p:
			hi = p - 1
		default:
			lo = p + 1
		}
	}
}

// partition uses the middle element as pivot (Lomuto scheme) and
// returns its final sorted index.
func partition(data []float64, lo, hi int) int {
	mid := lo + (hi-lo)/2
	pivot := data[mid]
	data[mid], data[hi] = data[hi], data[mid]

	store := lo
	for i := lo; i < hi; i++ {
		if data[i] < pivot {
			data[i], data[store] = data[store], data[i]
			store++
		}
	}
	data[store], data[hi] = data[hi], data[store]
	return store
}
