package aggregate

import (
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"
)

// Range is one half-open histogram bucket [Min, Max). The final range of a
// set is unbounded (Max = +Inf).
type Range struct {
	Label string  `toml:"label"`
	Min   float64 `toml:"min"`
	Max   float64 `toml:"max"`
}

// RangeCount is one histogram bucket with its membership count, in the
// declared range order.
type RangeCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DefaultRanges returns the grand-total histogram buckets used by the cost
// analysis artifact.
func DefaultRanges() []Range {
	return []Range{
		{Label: "Under $1K", Min: 0, Max: 1000},
		{Label: "$1K-$5K", Min: 1000, Max: 5000},
		{Label: "$5K-$10K", Min: 5000, Max: 10000},
		{Label: "$10K-$25K", Min: 10000, Max: 25000},
		{Label: "$25K-$50K", Min: 25000, Max: 50000},
		{Label: "$50K-$100K", Min: 50000, Max: 100000},
		{Label: "$100K+", Min: 100000, Max: math.Inf(1)},
	}
}

// Histogram counts the values falling into each range, in range order.
// Values <= 0 are excluded entirely: an unset grand total is unknown, not a
// zero-cost event.
func Histogram(ranges []Range, values []float64) []RangeCount {
	counts := make([]RangeCount, len(ranges))
	for i, r := range ranges {
		counts[i] = RangeCount{Label: r.Label}
	}
	for _, v := range values {
		if v <= 0 {
			continue
		}
		for i, r := range ranges {
			if v >= r.Min && v < r.Max {
				counts[i].Count++
				break
			}
		}
	}
	return counts
}

// rangesFile is the on-disk shape of a ranges declaration.
type rangesFile struct {
	Ranges []rangeDecl `toml:"ranges"`
}

type rangeDecl struct {
	Label string   `toml:"label"`
	Min   float64  `toml:"min"`
	Max   *float64 `toml:"max"` // absent on the final, unbounded range
}

// LoadRanges reads a TOML range declaration and validates it: ranges must
// start at 0, be ordered and gapless, and the last range must be unbounded
// (no max).
func LoadRanges(path string) ([]Range, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read ranges file: %w", err)
	}
	var file rangesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unable to parse ranges file %s: %w", path, err)
	}
	if len(file.Ranges) == 0 {
		return nil, fmt.Errorf("ranges file %s declares no ranges", path)
	}

	ranges := make([]Range, len(file.Ranges))
	for i, decl := range file.Ranges {
		r := Range{Label: decl.Label, Min: decl.Min, Max: math.Inf(1)}
		if decl.Max != nil {
			r.Max = *decl.Max
		}
		ranges[i] = r
	}

	if ranges[0].Min != 0 {
		return nil, fmt.Errorf("ranges must start at 0, got %v", ranges[0].Min)
	}
	for i, r := range ranges {
		if r.Label == "" {
			return nil, fmt.Errorf("range %d has no label", i)
		}
		if r.Max <= r.Min {
			return nil, fmt.Errorf("range %q is empty (min %v, max %v)", r.Label, r.Min, r.Max)
		}
		if i > 0 && r.Min != ranges[i-1].Max {
			return nil, fmt.Errorf("gap between %q and %q", ranges[i-1].Label, r.Label)
		}
		if i < len(ranges)-1 && math.IsInf(r.Max, 1) {
			return nil, fmt.Errorf("only the final range may be unbounded, %q is not last", r.Label)
		}
	}
	if !math.IsInf(ranges[len(ranges)-1].Max, 1) {
		return nil, fmt.Errorf("final range %q must be unbounded", ranges[len(ranges)-1].Label)
	}
	return ranges, nil
}
