package report

import (
	"sort"

	"estlens/internal/aggregate"
	"estlens/internal/model"
	"estlens/internal/numutil"
)

// SectionAggregate is the bid/realized rollup for one cost section across
// all events that carry it. AvgActual is nil, not zero, when no event ever
// recapped the section.
type SectionAggregate struct {
	Name        string   `json:"name"`
	EventCount  int      `json:"eventCount"`
	RecapCount  int      `json:"recapCount"`
	TotalBid    float64  `json:"totalBid"`
	TotalActual float64  `json:"totalActual"`
	AvgBid      float64  `json:"avgBid"`
	AvgActual   *float64 `json:"avgActual"`
}

// SectionShare records how widely one section appears across the portfolio.
type SectionShare struct {
	Name            string  `json:"name"`
	EventCount      int     `json:"eventCount"`
	PercentOfEvents float64 `json:"percentOfEvents"`
}

// SectionSummary is the prevalence view over all sections.
type SectionSummary struct {
	TotalEventsAnalyzed int            `json:"totalEventsAnalyzed"`
	Sections            []SectionShare `json:"sections"`
}

// CostAnalysis is the cost structure artifact: the grand-total distribution,
// per-section rollups, and the per-dimension revenue breakdowns.
type CostAnalysis struct {
	TotalEvents       int                    `json:"totalEvents"`
	FilesBidAndRecap  int                    `json:"filesBidAndRecap"`
	GrandTotalRanges  []aggregate.RangeCount `json:"grandTotalRanges"`
	SectionAggregates []SectionAggregate     `json:"sectionAggregates"`
	SectionSummary    SectionSummary         `json:"sectionSummary"`
	ByRevenueSegment  []DimensionStat        `json:"byRevenueSegment"`
	ByClient          []DimensionStat        `json:"byClient"`
	ByLeadOffice      []DimensionStat        `json:"byLeadOffice"`
	ByStatus          []DimensionStat        `json:"byStatus"`
}

func buildCostAnalysis(events []model.EventRecord, ranges []aggregate.Range) CostAnalysis {
	revenues := make([]float64, 0, len(events))
	recapCount := 0
	for i := range events {
		revenues = append(revenues, events[i].Revenue())
		if events[i].HasRecapData {
			recapCount++
		}
	}

	return CostAnalysis{
		TotalEvents:       len(events),
		FilesBidAndRecap:  recapCount,
		GrandTotalRanges:  aggregate.Histogram(ranges, revenues),
		SectionAggregates: buildSectionAggregates(events),
		SectionSummary:    buildSectionSummary(events),
		ByRevenueSegment:  revenueRollup(events, func(r model.EventRecord) string { return r.RevenueSegment }),
		ByClient:          revenueRollup(events, func(r model.EventRecord) string { return r.Client }),
		ByLeadOffice:      revenueRollup(events, func(r model.EventRecord) string { return r.LeadOffice }),
		ByStatus:          statusRollup(events),
	}
}

// buildSectionAggregates rolls every (event, section) pair up per section.
// The bid side counts every occurrence; the realized side counts only
// sections with a positive recap figure, matching the variance policy.
func buildSectionAggregates(events []model.EventRecord) []SectionAggregate {
	var all []model.CostSection
	for i := range events {
		all = append(all, events[i].CostSections()...)
	}

	bids := aggregate.GroupBy(all,
		func(s model.CostSection) string { return s.Name },
		func(s model.CostSection) float64 { return s.Bid })

	var recapped []model.CostSection
	for _, s := range all {
		if s.Recap != nil && *s.Recap > 0 {
			recapped = append(recapped, s)
		}
	}
	actuals := aggregate.GroupBy(recapped,
		func(s model.CostSection) string { return s.Name },
		func(s model.CostSection) float64 { return *s.Recap })

	out := make([]SectionAggregate, 0, len(bids.Order))
	for _, name := range bids.Order {
		bid := bids.Buckets[name]
		agg := SectionAggregate{
			Name:       name,
			EventCount: bid.Count,
			TotalBid:   bid.RoundedSum(),
			AvgBid:     bid.Avg(),
		}
		if actual, ok := actuals.Buckets[name]; ok {
			avg := actual.Avg()
			agg.RecapCount = actual.Count
			agg.TotalActual = actual.RoundedSum()
			agg.AvgActual = &avg
		}
		out = append(out, agg)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalBid > out[j].TotalBid
	})
	return out
}

func buildSectionSummary(events []model.EventRecord) SectionSummary {
	counts := make(map[string]int)
	var order []string
	for i := range events {
		for _, s := range events[i].CostSections() {
			if _, seen := counts[s.Name]; !seen {
				order = append(order, s.Name)
			}
			counts[s.Name]++
		}
	}

	sections := make([]SectionShare, 0, len(order))
	for _, name := range order {
		sections = append(sections, SectionShare{
			Name:            name,
			EventCount:      counts[name],
			PercentOfEvents: numutil.SafePct(float64(counts[name]), float64(len(events))),
		})
	}
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].EventCount > sections[j].EventCount
	})
	return SectionSummary{
		TotalEventsAnalyzed: len(events),
		Sections:            sections,
	}
}

// revenueRollup is the shared per-dimension breakdown: count and revenue per
// key, ranked by revenue descending with first-encounter tie order.
func revenueRollup(events []model.EventRecord, key func(model.EventRecord) string) []DimensionStat {
	g := aggregate.GroupBy(events, key,
		func(r model.EventRecord) float64 { return r.Revenue() })
	rows := dimensionRows(g)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalRevenue > rows[j].TotalRevenue
	})
	return rows
}

// statusRollup keeps first-encounter order: the status breakdown is a small
// fixed set and is emitted unranked.
func statusRollup(events []model.EventRecord) []DimensionStat {
	g := aggregate.GroupBy(events,
		func(r model.EventRecord) string { return r.Status },
		func(r model.EventRecord) float64 { return r.Revenue() })
	return dimensionRows(g)
}
