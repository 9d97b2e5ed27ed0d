// Package variance compares bid (planned) and recap (realized) figures for
// events that carry recap data. An event that is only partially recapped is
// compared over its recapped sections alone; sections never recapped drop
// out of both sides of the comparison.
package variance

import (
	"sort"

	"estlens/internal/aggregate"
	"estlens/internal/model"
	"estlens/internal/numutil"
)

// SectionVariance is the bid/realized delta for one section of one event.
type SectionVariance struct {
	Name        string  `json:"name"`
	Bid         float64 `json:"bid"`
	Actual      float64 `json:"actual"`
	Variance    float64 `json:"variance"`
	VariancePct float64 `json:"variancePct"`
}

// Record is the per-event variance result. Positive variance means realized
// exceeded bid (over budget); negative means under budget.
type Record struct {
	EventName        string            `json:"event_name"`
	Client           string            `json:"client"`
	LeadOffice       string            `json:"lead_office"`
	GrandTotalBid    float64           `json:"grandTotalBid"`
	GrandTotalActual float64           `json:"grandTotalActual"`
	Variance         float64           `json:"variance"`
	VariancePct      float64           `json:"variancePct"`
	SectionVariances []SectionVariance `json:"sectionVariances,omitempty"`
}

// Summary aggregates the percentage variances across all qualifying events.
type Summary struct {
	AvgVariancePct    float64 `json:"avgVariancePct"`
	MedianVariancePct float64 `json:"medianVariancePct"`
	Count             int     `json:"count"`
}

// GroupVariance is a variance rollup over one grouping key (section, client,
// or office).
type GroupVariance struct {
	Name           string  `json:"name"`
	AvgVariancePct float64 `json:"avgVariancePct"`
	TotalOverUnder float64 `json:"totalOverUnder"`
	EventCount     int     `json:"eventCount"`
}

// Analyze produces one Record per qualifying event, in input order. An event
// qualifies when it has recap data and at least one section with a non-nil,
// positive realized total; events with zero qualifying sections are excluded
// entirely, not zero-filled.
func Analyze(events []model.EventRecord) []Record {
	var records []Record
	for i := range events {
		r := &events[i]
		if !r.HasRecapData {
			continue
		}
		recapped := qualifyingSections(r)
		if len(recapped) == 0 {
			continue
		}

		var bid, actual float64
		sectionVariances := make([]SectionVariance, 0, len(recapped))
		for _, s := range recapped {
			bid += s.Bid
			actual += *s.Recap
			delta := numutil.Round2(*s.Recap - s.Bid)
			sectionVariances = append(sectionVariances, SectionVariance{
				Name:        s.Name,
				Bid:         s.Bid,
				Actual:      *s.Recap,
				Variance:    delta,
				VariancePct: numutil.SafePct(delta, s.Bid),
			})
		}

		bid = numutil.Round2(bid)
		actual = numutil.Round2(actual)
		delta := numutil.Round2(actual - bid)
		records = append(records, Record{
			EventName:        r.DisplayName(),
			Client:           aggregate.Coalesce(r.Client),
			LeadOffice:       aggregate.Coalesce(r.LeadOffice),
			GrandTotalBid:    bid,
			GrandTotalActual: actual,
			Variance:         delta,
			VariancePct:      numutil.SafePct(delta, bid),
			SectionVariances: sectionVariances,
		})
	}
	return records
}

// RealizedTotals sums the bid and realized figures over an event's
// qualifying sections. ok is false when the event carries no recap data or
// has no qualifying sections, which keeps "never recapped" distinct from a
// zero-variance recap.
func RealizedTotals(r *model.EventRecord) (bid, actual float64, ok bool) {
	if !r.HasRecapData {
		return 0, 0, false
	}
	recapped := qualifyingSections(r)
	if len(recapped) == 0 {
		return 0, 0, false
	}
	for _, s := range recapped {
		bid += s.Bid
		actual += *s.Recap
	}
	return bid, actual, true
}

// qualifyingSections returns the event's sections carrying a non-nil,
// positive realized total. This partial-recap policy mirrors the historical
// reporting behavior; see DESIGN.md before changing it.
func qualifyingSections(r *model.EventRecord) []model.CostSection {
	var out []model.CostSection
	for _, s := range r.CostSections() {
		if s.Recap != nil && *s.Recap > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Summarize computes the average and median of all records' percentage
// variances.
func Summarize(records []Record) Summary {
	pcts := make([]float64, 0, len(records))
	for _, rec := range records {
		pcts = append(pcts, rec.VariancePct)
	}
	avg, _ := numutil.Mean(pcts)
	return Summary{
		AvgVariancePct:    numutil.Round2(avg),
		MedianVariancePct: numutil.Round2(numutil.Median(pcts)),
		Count:             len(records),
	}
}

// TopByAbsVariance returns the n records with the largest absolute variance,
// ranked descending. The signed variance is retained in the output; ties
// keep their original input order.
func TopByAbsVariance(records []Record, n int) []Record {
	top := make([]Record, len(records))
	copy(top, records)
	sort.SliceStable(top, func(i, j int) bool {
		return abs(top[i].Variance) > abs(top[j].Variance)
	})
	if n < len(top) {
		top = top[:n]
	}
	// The leaderboard drops the per-section detail.
	for i := range top {
		top[i].SectionVariances = nil
	}
	return top
}

// BySection rolls variances up per section across all records, sorted by
// absolute total over/under descending.
func BySection(records []Record) []GroupVariance {
	type acc struct {
		total float64
		count int
		pcts  []float64
	}
	groups := make(map[string]*acc)
	var order []string
	for _, rec := range records {
		for _, sv := range rec.SectionVariances {
			g, ok := groups[sv.Name]
			if !ok {
				g = &acc{}
				groups[sv.Name] = g
				order = append(order, sv.Name)
			}
			g.total += sv.Variance
			g.count++
			g.pcts = append(g.pcts, sv.VariancePct)
		}
	}

	out := make([]GroupVariance, 0, len(order))
	for _, name := range order {
		g := groups[name]
		avg, _ := numutil.Mean(g.pcts)
		out = append(out, GroupVariance{
			Name:           name,
			AvgVariancePct: numutil.Round2(avg),
			TotalOverUnder: numutil.Round2(g.total),
			EventCount:     g.count,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return abs(out[i].TotalOverUnder) > abs(out[j].TotalOverUnder)
	})
	return out
}

// ByClient rolls variances up per client, sorted by total over/under
// descending.
func ByClient(records []Record) []GroupVariance {
	return byEventKey(records, func(r Record) string { return r.Client })
}

// ByOffice rolls variances up per lead office, sorted by total over/under
// descending.
func ByOffice(records []Record) []GroupVariance {
	return byEventKey(records, func(r Record) string { return r.LeadOffice })
}

func byEventKey(records []Record, key func(Record) string) []GroupVariance {
	type acc struct {
		total float64
		count int
		pcts  []float64
	}
	groups := make(map[string]*acc)
	var order []string
	for _, rec := range records {
		k := key(rec)
		g, ok := groups[k]
		if !ok {
			g = &acc{}
			groups[k] = g
			order = append(order, k)
		}
		g.total += rec.Variance
		g.count++
		g.pcts = append(g.pcts, rec.VariancePct)
	}

	out := make([]GroupVariance, 0, len(order))
	for _, name := range order {
		g := groups[name]
		avg, _ := numutil.Mean(g.pcts)
		out = append(out, GroupVariance{
			Name:           name,
			AvgVariancePct: numutil.Round2(avg),
			TotalOverUnder: numutil.Round2(g.total),
			EventCount:     g.count,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalOverUnder > out[j].TotalOverUnder
	})
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
