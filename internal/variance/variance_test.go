package variance

import (
	"testing"

	"estlens/internal/model"
)

func f(v float64) *float64 { return &v }

func event(name string, recap bool, sections map[string]model.SectionInfo) model.EventRecord {
	return model.EventRecord{
		EventName:    name,
		Client:       "Acme",
		LeadOffice:   "Chicago",
		Filename:     name + ".xlsx",
		HasRecapData: recap,
		Sections:     sections,
	}
}

func TestAnalyzePartialRecapUsesOnlyRecappedSections(t *testing.T) {
	events := []model.EventRecord{
		event("gala", true, map[string]model.SectionInfo{
			"PLANNING & ADMINISTRATION": {BidTotal: f(100), RecapTotal: f(150)},
			"PRODUCTION EXPENSES":       {BidTotal: f(200), RecapTotal: nil},
		}),
	}

	records := Analyze(events)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.GrandTotalBid != 100 || rec.GrandTotalActual != 150 {
		t.Errorf("bid/actual = %v/%v, want 100/150", rec.GrandTotalBid, rec.GrandTotalActual)
	}
	if rec.Variance != 50 || rec.VariancePct != 50 {
		t.Errorf("variance = %v (%v%%), want +50 (+50%%)", rec.Variance, rec.VariancePct)
	}
	if len(rec.SectionVariances) != 1 {
		t.Fatalf("expected 1 section variance, got %d", len(rec.SectionVariances))
	}
}

func TestAnalyzeExcludesEventsWithoutQualifyingSections(t *testing.T) {
	events := []model.EventRecord{
		event("never-recapped", true, map[string]model.SectionInfo{
			"PRODUCTION EXPENSES": {BidTotal: f(200), RecapTotal: nil},
		}),
		event("zero-recap", true, map[string]model.SectionInfo{
			"PRODUCTION EXPENSES": {BidTotal: f(200), RecapTotal: f(0)},
		}),
		event("no-recap-flag", false, map[string]model.SectionInfo{
			"PRODUCTION EXPENSES": {BidTotal: f(200), RecapTotal: f(180)},
		}),
	}

	if records := Analyze(events); len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestAnalyzeZeroBid(t *testing.T) {
	events := []model.EventRecord{
		event("freebie", true, map[string]model.SectionInfo{
			"PRODUCTION EXPENSES": {BidTotal: f(0), RecapTotal: f(75)},
		}),
	}

	records := Analyze(events)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Variance != 75 {
		t.Errorf("variance = %v, want 75", records[0].Variance)
	}
	// Percentage is defined as 0 when the bid is 0, never an error.
	if records[0].VariancePct != 0 {
		t.Errorf("variancePct = %v, want 0 for zero bid", records[0].VariancePct)
	}
}

func TestAnalyzeUnderBudgetIsNegative(t *testing.T) {
	events := []model.EventRecord{
		event("thrifty", true, map[string]model.SectionInfo{
			"PRODUCTION EXPENSES": {BidTotal: f(200), RecapTotal: f(150)},
		}),
	}

	records := Analyze(events)
	if records[0].Variance != -50 || records[0].VariancePct != -25 {
		t.Errorf("variance = %v (%v%%), want -50 (-25%%)", records[0].Variance, records[0].VariancePct)
	}
}

func TestTopByAbsVariance(t *testing.T) {
	records := []Record{
		{EventName: "a", Variance: 10},
		{EventName: "b", Variance: -300},
		{EventName: "c", Variance: 200},
		{EventName: "d", Variance: -10},
	}

	top := TopByAbsVariance(records, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 records, got %d", len(top))
	}
	if top[0].EventName != "b" || top[1].EventName != "c" {
		t.Errorf("ranking wrong: %q, %q", top[0].EventName, top[1].EventName)
	}
	// Ties on |variance| keep input order: "a" before "d".
	if top[2].EventName != "a" {
		t.Errorf("tie-break wrong: got %q, want a", top[2].EventName)
	}
	// Signed values are retained.
	if top[0].Variance != -300 {
		t.Errorf("leaderboard should keep signed variance, got %v", top[0].Variance)
	}
	// Input order must be untouched.
	if records[0].EventName != "a" {
		t.Error("TopByAbsVariance mutated its input")
	}
}

func TestSummarize(t *testing.T) {
	records := []Record{
		{VariancePct: 10},
		{VariancePct: -20},
		{VariancePct: 40},
	}
	s := Summarize(records)
	if s.Count != 3 {
		t.Errorf("count = %d, want 3", s.Count)
	}
	if s.AvgVariancePct != 10 {
		t.Errorf("avg = %v, want 10", s.AvgVariancePct)
	}
	if s.MedianVariancePct != 10 {
		t.Errorf("median = %v, want 10", s.MedianVariancePct)
	}

	empty := Summarize(nil)
	if empty.Count != 0 || empty.AvgVariancePct != 0 || empty.MedianVariancePct != 0 {
		t.Errorf("empty summary = %+v, want zeros", empty)
	}
}

func TestBySection(t *testing.T) {
	records := []Record{
		{SectionVariances: []SectionVariance{
			{Name: "PRODUCTION EXPENSES", Variance: 100, VariancePct: 50},
			{Name: "PLANNING & ADMINISTRATION", Variance: -10, VariancePct: -5},
		}},
		{SectionVariances: []SectionVariance{
			{Name: "PRODUCTION EXPENSES", Variance: -400, VariancePct: -20},
		}},
	}

	groups := BySection(records)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	// Sorted by |totalOverUnder| descending.
	if groups[0].Name != "PRODUCTION EXPENSES" {
		t.Errorf("first group = %q", groups[0].Name)
	}
	if groups[0].TotalOverUnder != -300 || groups[0].EventCount != 2 {
		t.Errorf("production rollup = %+v", groups[0])
	}
	if groups[0].AvgVariancePct != 15 {
		t.Errorf("avg pct = %v, want 15", groups[0].AvgVariancePct)
	}
}

func TestByClientSortsByTotalOverUnder(t *testing.T) {
	records := []Record{
		{Client: "Acme", Variance: -500, VariancePct: -10},
		{Client: "Globex", Variance: 100, VariancePct: 20},
		{Client: "Acme", Variance: 50, VariancePct: 5},
	}

	groups := ByClient(records)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Name != "Globex" || groups[1].Name != "Acme" {
		t.Errorf("order = %q, %q; want Globex first", groups[0].Name, groups[1].Name)
	}
	if groups[1].TotalOverUnder != -450 || groups[1].EventCount != 2 {
		t.Errorf("Acme rollup = %+v", groups[1])
	}
}
