// Package report assembles the six report artifacts from one input snapshot.
// Each artifact is built independently from the same immutable events, so
// their shared figures (event counts, totals) agree by construction.
package report

import (
	"sort"

	"estlens/internal/aggregate"
	"estlens/internal/model"
	"estlens/internal/numutil"
)

// DimensionStat is one row of a grouped count/revenue distribution.
type DimensionStat struct {
	Name         string  `json:"name"`
	Count        int     `json:"count"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// CountStat is one row of a count-only distribution.
type CountStat struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// MonthStat is one month of the event volume series.
type MonthStat struct {
	Month   string  `json:"month"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// ExecutiveSummary is the headline artifact: portfolio totals plus the main
// distributions.
type ExecutiveSummary struct {
	TotalEvents         int             `json:"totalEvents"`
	TotalRevenue        float64         `json:"totalRevenue"`
	AvgEventSize        float64         `json:"avgEventSize"`
	MedianEventSize     float64         `json:"medianEventSize"`
	EventsWithRecap     int             `json:"eventsWithRecap"`
	TopClientsByRevenue []DimensionStat `json:"topClientsByRevenue"`
	TopOfficesByVolume  []DimensionStat `json:"topOfficesByVolume"`
	StatusDistribution  []CountStat     `json:"statusDistribution"`
	RevenueSegments     []DimensionStat `json:"revenueSegmentDistribution"`
	EventsByMonth       []MonthStat     `json:"eventsByMonth"`
}

const topClientCount = 10

func buildExecutiveSummary(events []model.EventRecord) ExecutiveSummary {
	var totalRevenue float64
	var sizes []float64
	recapCount := 0
	for i := range events {
		rev := events[i].Revenue()
		totalRevenue += rev
		// Average and median event size consider priced events only; an
		// unpriced event is unknown, not free.
		if rev > 0 {
			sizes = append(sizes, rev)
		}
		if events[i].HasRecapData {
			recapCount++
		}
	}
	avgSize, _ := numutil.Mean(sizes)

	clients := aggregate.GroupBy(events,
		func(r model.EventRecord) string { return r.Client },
		func(r model.EventRecord) float64 { return r.Revenue() })
	offices := aggregate.GroupBy(events,
		func(r model.EventRecord) string { return r.LeadOffice },
		func(r model.EventRecord) float64 { return r.Revenue() })
	statuses := aggregate.GroupBy(events,
		func(r model.EventRecord) string { return r.Status },
		func(r model.EventRecord) float64 { return r.Revenue() })
	segments := aggregate.GroupBy(events,
		func(r model.EventRecord) string { return r.RevenueSegment },
		func(r model.EventRecord) float64 { return r.Revenue() })

	topClients := dimensionRows(clients)
	sort.SliceStable(topClients, func(i, j int) bool {
		return topClients[i].TotalRevenue > topClients[j].TotalRevenue
	})
	if len(topClients) > topClientCount {
		topClients = topClients[:topClientCount]
	}

	officeRows := dimensionRows(offices)
	sort.SliceStable(officeRows, func(i, j int) bool {
		return officeRows[i].Count > officeRows[j].Count
	})

	statusRows := make([]CountStat, 0, len(statuses.Order))
	for _, name := range statuses.Order {
		statusRows = append(statusRows, CountStat{Name: name, Count: statuses.Buckets[name].Count})
	}
	sort.SliceStable(statusRows, func(i, j int) bool {
		return statusRows[i].Count > statusRows[j].Count
	})

	segmentRows := dimensionRows(segments)
	sort.SliceStable(segmentRows, func(i, j int) bool {
		return segmentRows[i].TotalRevenue > segmentRows[j].TotalRevenue
	})

	return ExecutiveSummary{
		TotalEvents:         len(events),
		TotalRevenue:        numutil.Round2(totalRevenue),
		AvgEventSize:        numutil.Round2(avgSize),
		MedianEventSize:     numutil.Round2(numutil.Median(sizes)),
		EventsWithRecap:     recapCount,
		TopClientsByRevenue: topClients,
		TopOfficesByVolume:  officeRows,
		StatusDistribution:  statusRows,
		RevenueSegments:     segmentRows,
		EventsByMonth:       buildMonthlySeries(events),
	}
}

// buildMonthlySeries groups events by start month, sorted chronologically.
// Events whose date fails to parse are skipped here and only here.
func buildMonthlySeries(events []model.EventRecord) []MonthStat {
	type dated struct {
		month   string
		revenue float64
	}
	var parsed []dated
	for i := range events {
		if month, ok := parseMonth(events[i].EventStartDate); ok {
			parsed = append(parsed, dated{month: month, revenue: events[i].Revenue()})
		}
	}
	months := aggregate.GroupBy(parsed,
		func(d dated) string { return d.month },
		func(d dated) float64 { return d.revenue })

	out := make([]MonthStat, 0, len(months.Order))
	for _, month := range months.Order {
		b := months.Buckets[month]
		out = append(out, MonthStat{Month: month, Count: b.Count, Revenue: b.RoundedSum()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// dimensionRows materializes a grouping in first-encounter order; callers
// apply their own ranking on top so ties stay deterministic.
func dimensionRows(g *aggregate.Grouped) []DimensionStat {
	rows := make([]DimensionStat, 0, len(g.Order))
	for _, name := range g.Order {
		b := g.Buckets[name]
		rows = append(rows, DimensionStat{
			Name:         name,
			Count:        b.Count,
			TotalRevenue: b.RoundedSum(),
		})
	}
	return rows
}
