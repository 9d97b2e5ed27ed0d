package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"estlens/internal/errors"
)

const masterFixture = `[
  {
    "client": "Acme",
    "event_name": "Summit",
    "lead_office": "Chicago",
    "status": "Won",
    "event_manager": "Duffus",
    "grand_total": 12500.50,
    "filename": "summit.xlsx",
    "has_recap_data": true,
    "sections": {
      "PRODUCTION EXPENSES": {
        "canonical_name": "PRODUCTION EXPENSES",
        "section_exists": true,
        "start_row": 10,
        "total_row": 42,
        "bid_total": 10000,
        "recap_total": null
      }
    },
    "labor_roles": [
      {"role": "Lead Technician", "unit_rate": 85, "gl_code": "5010", "cost_rate": 60, "has_ot_variant": true}
    ]
  }
]`

const rateCardFixture = `[
  {
    "role": "Lead Technician",
    "rate_units": ["hour"],
    "gl_codes": ["5010"],
    "occurrences": 12,
    "has_ot_variant": true,
    "has_dt_variant": false,
    "has_weekend_variant": false,
    "has_afterhours_variant": false,
    "unit_rate_range": {"min": 75, "max": 95, "avg": 85, "median": 85},
    "unit_rate_range_raw": {"min": 75, "max": 95, "avg": 85, "median": 85},
    "margin_range": null
  }
]`

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "enriched_master_index.json"), []byte(masterFixture), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "rate_card_master.json"), []byte(rateCardFixture), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return dir
}

func TestLoadSnapshot(t *testing.T) {
	dir := writeFixtures(t)
	loader := NewLoader(dir, "enriched_master_index.json", "rate_card_master.json")

	snap, err := loader.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if len(snap.Events) != 1 || len(snap.RateCard) != 1 {
		t.Fatalf("unexpected snapshot sizes: %d events, %d roles", len(snap.Events), len(snap.RateCard))
	}

	ev := snap.Events[0]
	if ev.Client != "Acme" || !ev.HasRecapData {
		t.Errorf("unexpected event: %+v", ev)
	}
	if ev.GrandTotal == nil || *ev.GrandTotal != 12500.50 {
		t.Errorf("grand total not decoded: %v", ev.GrandTotal)
	}
	s, ok := ev.Sections["PRODUCTION EXPENSES"]
	if !ok {
		t.Fatal("section missing")
	}
	// A JSON null recap stays nil, distinct from zero.
	if s.RecapTotal != nil {
		t.Errorf("null recap should decode as nil, got %v", *s.RecapTotal)
	}
	if s.BidTotal == nil || *s.BidTotal != 10000 {
		t.Errorf("bid total not decoded: %v", s.BidTotal)
	}

	if snap.RateCard[0].MarginRange != nil {
		t.Error("null margin_range should decode as nil")
	}
}

func TestLoadSnapshotMissingInputIsFatal(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(dir, "enriched_master_index.json", "rate_card_master.json")

	_, err := loader.LoadSnapshot()
	if err == nil {
		t.Fatal("expected error for missing input")
	}
	if errors.CodeOf(err) != errors.InputMissing {
		t.Errorf("code = %v, want INPUT_MISSING", errors.CodeOf(err))
	}
	if !strings.Contains(err.Error(), "enriched_master_index.json") {
		t.Errorf("diagnostic should identify the missing input: %v", err)
	}
}

func TestLoadSnapshotMalformedInput(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "enriched_master_index.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	loader := NewLoader(dir, "enriched_master_index.json", "rate_card_master.json")

	_, err := loader.LoadSnapshot()
	if err == nil {
		t.Fatal("expected error for malformed input")
	}
	if errors.CodeOf(err) != errors.InputMalformed {
		t.Errorf("code = %v, want INPUT_MALFORMED", errors.CodeOf(err))
	}
}
