// Package model defines the input record shapes for the precompute pipeline.
// Field names and JSON tags follow the upstream extraction pipeline's schema
// (enriched_master_index.json and rate_card_master.json).
package model

import "sort"

// SectionInfo describes one cost section as scanned from an estimate workbook.
// BidTotal and RecapTotal are pointers because the scan distinguishes "no
// figure present" from "figure of zero": a nil RecapTotal means the section
// was never recapped, while a zero value means it was recapped at zero cost.
type SectionInfo struct {
	CanonicalName string   `json:"canonical_name"`
	SectionExists bool     `json:"section_exists"`
	StartRow      int      `json:"start_row"`
	TotalRow      *int     `json:"total_row"`
	BidTotal      *float64 `json:"bid_total"`
	RecapTotal    *float64 `json:"recap_total"`
}

// LaborRole is one labor line item on an estimate.
type LaborRole struct {
	Role         string   `json:"role"`
	UnitRate     float64  `json:"unit_rate"`
	GLCode       *string  `json:"gl_code"`
	CostRate     *float64 `json:"cost_rate"`
	HasOTVariant bool     `json:"has_ot_variant"`
}

// EventRecord is one historical estimate/event from the master index.
// It is immutable for the duration of a run.
type EventRecord struct {
	Client         string                 `json:"client,omitempty"`
	EventName      string                 `json:"event_name,omitempty"`
	LeadOffice     string                 `json:"lead_office,omitempty"`
	Status         string                 `json:"status,omitempty"`
	EventManager   string                 `json:"event_manager,omitempty"`
	RevenueSegment string                 `json:"revenue_segment,omitempty"`
	EventStartDate string                 `json:"event_start_date,omitempty"`
	EventEndDate   string                 `json:"event_end_date,omitempty"`
	Filename       string                 `json:"filename"`
	Format         string                 `json:"format,omitempty"`
	GrandTotal     *float64               `json:"grand_total"`
	Sections       map[string]SectionInfo `json:"sections"`
	LaborRoles     []LaborRole            `json:"labor_roles"`
	HasRecapData   bool                   `json:"has_recap_data"`
	JoinStatus     string                 `json:"join_status,omitempty"`
}

// CostSection is the flattened per-section view used by the aggregation and
// variance stages. Bid is coalesced to 0 when absent; Recap keeps the
// nil-vs-zero distinction.
type CostSection struct {
	Name  string
	Bid   float64
	Recap *float64
}

// CostSections flattens the keyed section map into a deterministic,
// name-sorted slice. Sorting keeps downstream per-section iteration stable
// across runs, which the artifact determinism guarantee depends on.
func (r *EventRecord) CostSections() []CostSection {
	if len(r.Sections) == 0 {
		return nil
	}
	out := make([]CostSection, 0, len(r.Sections))
	for name, info := range r.Sections {
		s := CostSection{Name: name, Recap: info.RecapTotal}
		if info.BidTotal != nil {
			s.Bid = *info.BidTotal
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Revenue returns the grand total, coalescing an absent figure to 0.
func (r *EventRecord) Revenue() float64 {
	if r.GrandTotal == nil {
		return 0
	}
	return *r.GrandTotal
}

// DisplayName returns the event name, falling back to the source filename.
func (r *EventRecord) DisplayName() string {
	if r.EventName != "" {
		return r.EventName
	}
	return r.Filename
}

// RateRange is a min/max/avg/median summary of a rate distribution.
type RateRange struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Avg    float64 `json:"avg"`
	Median float64 `json:"median"`
}

// RateCardRecord is one labor role's aggregated rate statistics from the
// rate card master.
type RateCardRecord struct {
	Role                 string     `json:"role"`
	RateUnits            []string   `json:"rate_units"`
	GLCodes              []string   `json:"gl_codes"`
	Occurrences          int        `json:"occurrences"`
	HasOTVariant         bool       `json:"has_ot_variant"`
	HasDTVariant         bool       `json:"has_dt_variant"`
	HasWeekendVariant    bool       `json:"has_weekend_variant"`
	HasAfterhoursVariant bool       `json:"has_afterhours_variant"`
	UnitRateRange        RateRange  `json:"unit_rate_range"`
	UnitRateRangeRaw     RateRange  `json:"unit_rate_range_raw"`
	MarginRange          *RateRange `json:"margin_range"`
}

// Snapshot is the complete, fully materialized input for one pipeline run.
type Snapshot struct {
	Events   []EventRecord
	RateCard []RateCardRecord
}
