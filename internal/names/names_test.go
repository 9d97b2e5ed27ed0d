package names

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	c := New(DefaultTable())

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"misspelling", "Dufffus", "Mark Duffus"},
		{"surname only with whitespace", "  DUFFUS ", "Mark Duffus"},
		{"already canonical", "Mark Duffus", "Mark Duffus"},
		{"mixed case", "mark DUFFAS", "Mark Duffus"},
		{"office name sentinel", "Los Angeles", "Unassigned (Los Angeles)"},
		{"multi-person slash", "eric goetz/aaron hansen", "Eric Goetz, Aaron Hansen"},
		{"multi-person reversed", "aaron hansen, eric goetz", "Eric Goetz, Aaron Hansen"},
		{"multi-person and-joined", "matt hruska and bill hahn", "Bill Hahn, Matt Hruska"},
		{"unknown name passes through trimmed", "  Jane Smith ", "Jane Smith"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Canonicalize(tt.input); got != tt.expected {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	c := New(DefaultTable())
	for _, canonical := range DefaultTable() {
		if got := c.Canonicalize(canonical); got != canonical {
			t.Errorf("Canonicalize(%q) = %q, not idempotent", canonical, got)
		}
	}
}

func TestCanonicalizeNilTable(t *testing.T) {
	c := New(nil)
	if got := c.Canonicalize(" Duffus "); got != "Duffus" {
		t.Errorf("nil-table Canonicalize = %q, want trimmed input", got)
	}
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.yaml")
	content := "\" J. Doe \": Jane Doe\nduffus: Marcus Duffus\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}

	c := New(table)
	if got := c.Canonicalize("j. doe"); got != "Jane Doe" {
		t.Errorf("file entry not applied, got %q", got)
	}
	// File entries override the built-in table.
	if got := c.Canonicalize("Duffus"); got != "Marcus Duffus" {
		t.Errorf("override not applied, got %q", got)
	}
	// Untouched defaults still resolve.
	if got := c.Canonicalize("josh piles"); got != "Josh Plies" {
		t.Errorf("default entry lost, got %q", got)
	}
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "alias table") {
		t.Errorf("error should identify the alias table: %v", err)
	}
}
