package report

import "testing"

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		valid bool
	}{
		{"2023-06-27", "2023-06", true},
		{"2023-06", "2023-06", true},
		{"2023-11-01T00:00:00", "2023-11", true},
		{"Jun 27, 2023", "2023-06", true},
		{"June 27, 2023", "2023-06", true},
		{"Dec 1, 2022", "2022-12", true},
		{"  2024-01-05  ", "2024-01", true},
		{"", "", false},
		{"TBD", "", false},
		{"Foo 12, 2023", "", false},
		{"27/06/2023", "", false},
	}
	for _, tt := range tests {
		got, ok := parseMonth(tt.in)
		if ok != tt.valid || got != tt.want {
			t.Errorf("parseMonth(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.valid)
		}
	}
}

func TestParseDateKey(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		valid bool
	}{
		{"2023-06-27", "2023-06-27", true},
		{"2023-06", "2023-06-01", true},
		{"Jun 2, 2023", "2023-06-02", true},
		{"December 31, 2022", "2022-12-31", true},
		{"garbage", "", false},
	}
	for _, tt := range tests {
		got, ok := parseDateKey(tt.in)
		if ok != tt.valid || got != tt.want {
			t.Errorf("parseDateKey(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.valid)
		}
	}
}
