package report

import (
	"estlens/internal/model"
)

func f(v float64) *float64 { return &v }

func section(bid float64, recap *float64) model.SectionInfo {
	return model.SectionInfo{SectionExists: true, BidTotal: f(bid), RecapTotal: recap}
}

// testEvents is a small portfolio exercising the main edge cases: a fully
// recapped event, a partially recapped one, an unpriced one, and one with
// no manager or client at all.
func testEvents() []model.EventRecord {
	return []model.EventRecord{
		{
			Client:         "Acme",
			EventName:      "Spring Gala",
			LeadOffice:     "Chicago",
			Status:         "Won",
			EventManager:   "Duffus",
			RevenueSegment: "Tier 2 ($50K-$100K)",
			EventStartDate: "2023-03-15",
			Filename:       "gala.xlsx",
			GrandTotal:     f(60000),
			HasRecapData:   true,
			Sections: map[string]model.SectionInfo{
				"PRODUCTION EXPENSES": section(40000, f(44000)),
				"LABOR":               section(15000, f(15000)),
			},
		},
		{
			Client:         "Acme",
			EventName:      "Fall Summit",
			LeadOffice:     "Chicago",
			Status:         "Won",
			EventManager:   "mark duffas",
			RevenueSegment: "Tier 1 ($100K+)",
			EventStartDate: "Oct 2, 2023",
			Filename:       "summit.xlsx",
			GrandTotal:     f(120000),
			HasRecapData:   true,
			Sections: map[string]model.SectionInfo{
				"PRODUCTION EXPENSES": section(80000, f(76000)),
				"LABOR":               section(30000, nil),
			},
		},
		{
			Client:         "Globex",
			EventName:      "Product Launch",
			LeadOffice:     "Miami",
			Status:         "Lost",
			EventManager:   "Johnny Tapanes",
			RevenueSegment: "Tier 3 (Under $50K)",
			EventStartDate: "2023-05-01",
			Filename:       "launch.xlsx",
			GrandTotal:     f(20000),
			Sections: map[string]model.SectionInfo{
				"PRODUCTION EXPENSES": section(18000, nil),
			},
		},
		{
			Filename:       "unpriced.xlsx",
			EventStartDate: "not a date",
			Sections:       map[string]model.SectionInfo{},
		},
	}
}

func testRateCard() []model.RateCardRecord {
	return []model.RateCardRecord{
		{
			Role:          "Lead Technician",
			RateUnits:     []string{"hour"},
			GLCodes:       []string{"5010"},
			Occurrences:   40,
			UnitRateRange: model.RateRange{Min: 75, Max: 95, Avg: 85, Median: 85},
			MarginRange:   &model.RateRange{Min: 0.2, Max: 0.4, Avg: 0.3, Median: 0.3},
		},
		{
			Role:          "Stagehand",
			RateUnits:     []string{"hour"},
			GLCodes:       []string{"5020"},
			Occurrences:   65,
			UnitRateRange: model.RateRange{Min: 35, Max: 55, Avg: 45, Median: 45},
		},
	}
}

func testSnapshot() *model.Snapshot {
	return &model.Snapshot{Events: testEvents(), RateCard: testRateCard()}
}
