// Package numutil provides the numeric primitives shared across the
// aggregation pipeline: currency rounding, median, and guarded ratios.
package numutil

import (
	"math"
	"sort"
)

// Round2 rounds to two decimal places, half away from zero. Every monetary
// value finalized for an artifact goes through this, so per-group sums
// reconcile with displayed figures within rounding tolerance.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Median returns the median of the values, or 0 for an empty slice.
// The caller's slice is not mutated.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 != 0 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// SafePct returns delta/base as a rounded percentage, or 0 when base is 0.
// A zero base is a valid input (a section bid at zero), not an error.
func SafePct(delta, base float64) float64 {
	if base == 0 {
		return 0
	}
	return Round2(delta / base * 100)
}

// Mean returns the arithmetic mean of the values. The second return is
// false when the slice is empty, letting callers keep "no data" distinct
// from a mean of zero.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// Sum returns the sum of the values.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
