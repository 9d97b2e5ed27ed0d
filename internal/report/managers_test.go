package report

import (
	"testing"

	"estlens/internal/model"
	"estlens/internal/names"
)

func TestManagerPerformanceGrouping(t *testing.T) {
	canon := names.New(names.DefaultTable())
	perf := buildManagerPerformance(testEvents(), canon)

	// "Duffus" and "mark duffas" collapse to one manager; the manager-less
	// event is skipped, not grouped.
	if perf.TotalManagers != 2 {
		t.Fatalf("totalManagers = %d, want 2", perf.TotalManagers)
	}

	duffus := perf.Managers[0]
	if duffus.Name != "Mark Duffus" {
		t.Fatalf("top manager = %q, want Mark Duffus", duffus.Name)
	}
	if duffus.EventCount != 2 || duffus.TotalRevenue != 180000 || duffus.AvgEventSize != 90000 {
		t.Errorf("duffus rollup = %+v", duffus)
	}
	if duffus.ClientsServed != 1 {
		t.Errorf("clientsServed = %d, want 1 distinct client", duffus.ClientsServed)
	}
	if duffus.RecapEventCount != 2 {
		t.Errorf("recapEventCount = %d, want 2", duffus.RecapEventCount)
	}
	// Mean of 59000/55000 and 76000/80000, rounded.
	if duffus.AvgBidAccuracy == nil || *duffus.AvgBidAccuracy != 1.01 {
		t.Errorf("avgBidAccuracy = %v, want 1.01", duffus.AvgBidAccuracy)
	}

	tapanes := perf.Managers[1]
	if tapanes.Name != "Johnny Tapanes" || tapanes.EventCount != 1 {
		t.Errorf("second manager = %+v", tapanes)
	}
	// No usable recaps: accuracy is nil, not zero.
	if tapanes.AvgBidAccuracy != nil {
		t.Errorf("avgBidAccuracy = %v, want nil", *tapanes.AvgBidAccuracy)
	}
}

func TestManagersRankedByEventCount(t *testing.T) {
	events := []model.EventRecord{
		{EventManager: "Busy Bee", Filename: "a.xlsx", GrandTotal: f(1000)},
		{EventManager: "Busy Bee", Filename: "b.xlsx", GrandTotal: f(1000)},
		{EventManager: "Busy Bee", Filename: "c.xlsx", GrandTotal: f(1000)},
		{EventManager: "Big Fish", Filename: "d.xlsx", GrandTotal: f(900000)},
	}
	perf := buildManagerPerformance(events, names.New(nil))

	// Event count ranks the list, even when one event dwarfs the revenue.
	if perf.Managers[0].Name != "Busy Bee" || perf.Managers[0].EventCount != 3 {
		t.Errorf("top manager = %+v, want Busy Bee with 3 events", perf.Managers[0])
	}
	if perf.Managers[1].Name != "Big Fish" || perf.Managers[1].TotalRevenue != 900000 {
		t.Errorf("second manager = %+v, want Big Fish", perf.Managers[1])
	}
}

func TestManagerRecapCountRequiresQualifyingSection(t *testing.T) {
	events := []model.EventRecord{
		{
			EventManager: "Ana Smith",
			Filename:     "a.xlsx",
			HasRecapData: true,
			Sections: map[string]model.SectionInfo{
				"LABOR": section(100, f(110)),
			},
		},
		{
			// Flagged as recapped but every realized total is nil: it does
			// not count as a recapped event for the manager rollup.
			EventManager: "Ana Smith",
			Filename:     "b.xlsx",
			HasRecapData: true,
			Sections: map[string]model.SectionInfo{
				"LABOR": section(100, nil),
			},
		},
	}
	perf := buildManagerPerformance(events, names.New(nil))

	m := perf.Managers[0]
	if m.EventCount != 2 {
		t.Fatalf("eventCount = %d, want 2", m.EventCount)
	}
	if m.RecapEventCount != 1 {
		t.Errorf("recapEventCount = %d, want 1", m.RecapEventCount)
	}
}

func TestManagerBidAccuracyExcludesUnrecapped(t *testing.T) {
	events := []model.EventRecord{
		{
			EventManager: "Ana Smith",
			Filename:     "a.xlsx",
			HasRecapData: true,
			Sections: map[string]model.SectionInfo{
				"LABOR": section(100, f(100)), // ratio 1.0
			},
		},
		{
			EventManager: "Ana Smith",
			Filename:     "b.xlsx",
			HasRecapData: true,
			Sections: map[string]model.SectionInfo{
				"LABOR": section(100, f(120)), // ratio 1.2
			},
		},
		{
			EventManager: "Ana Smith",
			Filename:     "c.xlsx",
			Sections: map[string]model.SectionInfo{
				"LABOR": section(100, nil), // never recapped, excluded
			},
		},
	}
	perf := buildManagerPerformance(events, names.New(nil))

	if len(perf.Managers) != 1 {
		t.Fatalf("expected 1 manager, got %d", len(perf.Managers))
	}
	m := perf.Managers[0]
	if m.EventCount != 3 || m.RecapEventCount != 2 {
		t.Errorf("counts = %d/%d, want 3 events, 2 recapped", m.EventCount, m.RecapEventCount)
	}
	if m.AvgBidAccuracy == nil || *m.AvgBidAccuracy != 1.1 {
		t.Errorf("avgBidAccuracy = %v, want 1.1", m.AvgBidAccuracy)
	}
}

func TestManagerPerformanceEmptyInput(t *testing.T) {
	perf := buildManagerPerformance(nil, names.New(nil))
	if perf.TotalManagers != 0 || len(perf.Managers) != 0 {
		t.Errorf("empty input should produce no managers: %+v", perf)
	}
}
