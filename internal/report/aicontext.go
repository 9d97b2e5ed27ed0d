package report

import (
	"sort"

	"estlens/internal/aggregate"
	"estlens/internal/model"
)

// DateRange brackets the portfolio's event start dates. Both ends are nil
// when no event carries a date.
type DateRange struct {
	Earliest *string `json:"earliest"`
	Latest   *string `json:"latest"`
}

// SectionStat is the condensed per-section view for downstream estimation
// prompts: what a section typically bids at and, where recaps exist, what it
// typically realizes.
type SectionStat struct {
	Name       string   `json:"name"`
	EventCount int      `json:"eventCount"`
	AvgBid     float64  `json:"avgBid"`
	AvgActual  *float64 `json:"avgActual"`
}

// RoleRate is one frequently used labor role with its unit rate spread.
type RoleRate struct {
	Role        string  `json:"role"`
	Occurrences int     `json:"occurrences"`
	RateMin     float64 `json:"rateMin"`
	RateMax     float64 `json:"rateMax"`
	RateAvg     float64 `json:"rateAvg"`
}

// SegmentSize is the typical event size within one revenue segment.
type SegmentSize struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	AvgSize float64 `json:"avgSize"`
}

// AIContext is the compact digest artifact fed to estimation assistants.
type AIContext struct {
	TotalEvents     int           `json:"totalEvents"`
	EventsWithRecap int           `json:"eventsWithRecap"`
	DateRange       DateRange     `json:"dateRange"`
	Sections        []SectionStat `json:"sections"`
	CommonRoles     []RoleRate    `json:"commonRoles"`
	RevenueSegments []SegmentSize `json:"revenueSegments"`
}

const commonRoleCount = 20

func buildAIContext(events []model.EventRecord, rateCard []model.RateCardRecord) AIContext {
	recapCount := 0
	for i := range events {
		if events[i].HasRecapData {
			recapCount++
		}
	}

	sections := make([]SectionStat, 0)
	for _, agg := range buildSectionAggregates(events) {
		sections = append(sections, SectionStat{
			Name:       agg.Name,
			EventCount: agg.EventCount,
			AvgBid:     agg.AvgBid,
			AvgActual:  agg.AvgActual,
		})
	}

	return AIContext{
		TotalEvents:     len(events),
		EventsWithRecap: recapCount,
		DateRange:       buildDateRange(events),
		Sections:        sections,
		CommonRoles:     buildCommonRoles(rateCard),
		RevenueSegments: buildSegmentSizes(events),
	}
}

// buildDateRange brackets the parsable event start dates, normalized to
// "YYYY-MM-DD" so the two source spellings sort together.
func buildDateRange(events []model.EventRecord) DateRange {
	var dates []string
	for i := range events {
		if key, ok := parseDateKey(events[i].EventStartDate); ok {
			dates = append(dates, key)
		}
	}
	if len(dates) == 0 {
		return DateRange{}
	}
	sort.Strings(dates)
	earliest := dates[0]
	latest := dates[len(dates)-1]
	return DateRange{Earliest: &earliest, Latest: &latest}
}

// buildCommonRoles ranks rate card roles by how often they appear on
// estimates, keeping the top slice with their unit rate spread.
func buildCommonRoles(rateCard []model.RateCardRecord) []RoleRate {
	roles := make([]RoleRate, 0, len(rateCard))
	for i := range rateCard {
		rc := &rateCard[i]
		roles = append(roles, RoleRate{
			Role:        rc.Role,
			Occurrences: rc.Occurrences,
			RateMin:     rc.UnitRateRange.Min,
			RateMax:     rc.UnitRateRange.Max,
			RateAvg:     rc.UnitRateRange.Avg,
		})
	}
	sort.SliceStable(roles, func(i, j int) bool {
		return roles[i].Occurrences > roles[j].Occurrences
	})
	if len(roles) > commonRoleCount {
		roles = roles[:commonRoleCount]
	}
	return roles
}

func buildSegmentSizes(events []model.EventRecord) []SegmentSize {
	segments := aggregate.GroupBy(events,
		func(r model.EventRecord) string { return r.RevenueSegment },
		func(r model.EventRecord) float64 { return r.Revenue() })

	out := make([]SegmentSize, 0, len(segments.Order))
	for _, name := range segments.Order {
		b := segments.Buckets[name]
		out = append(out, SegmentSize{Name: name, Count: b.Count, AvgSize: b.Avg()})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
