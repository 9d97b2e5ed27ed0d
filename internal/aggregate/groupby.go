// Package aggregate provides the shared accumulate-by-key routine and the
// distribution bucketizer used by every report dimension. Each dimension
// (client, office, status, revenue segment, section, manager) is the same
// GroupBy call with different extractors, never a copy-pasted loop.
package aggregate

import "estlens/internal/numutil"

// Unknown is the coalesced key for records missing a dimension value.
// Records with an empty key are grouped here, never dropped.
const Unknown = "Unknown"

// Bucket holds the running count and sum for one group key.
type Bucket struct {
	Count int
	Sum   float64
}

// Avg derives the group average from sum and count, rounded to currency
// precision. It is never stored, so avg*count always reconciles with the
// stored sum up to rounding.
func (b Bucket) Avg() float64 {
	if b.Count == 0 {
		return 0
	}
	return numutil.Round2(b.Sum / float64(b.Count))
}

// RoundedSum returns the group sum at currency precision.
func (b Bucket) RoundedSum() float64 {
	return numutil.Round2(b.Sum)
}

// Grouped is the result of one GroupBy pass. Order records each key's first
// encounter so callers can rank with deterministic tie-breaking; beyond that
// the grouping itself carries no ordering guarantee.
type Grouped struct {
	Order   []string
	Buckets map[string]Bucket
}

// GroupBy accumulates items into per-key buckets. key and value extract the
// grouping dimension and the summed figure from each item; an empty key is
// coalesced to Unknown.
func GroupBy[T any](items []T, key func(T) string, value func(T) float64) *Grouped {
	g := &Grouped{Buckets: make(map[string]Bucket)}
	for _, item := range items {
		k := Coalesce(key(item))
		b, seen := g.Buckets[k]
		if !seen {
			g.Order = append(g.Order, k)
		}
		b.Count++
		b.Sum += value(item)
		g.Buckets[k] = b
	}
	return g
}

// Coalesce substitutes Unknown for an empty dimension value.
func Coalesce(key string) string {
	if key == "" {
		return Unknown
	}
	return key
}
