// Package names resolves free-text event manager names to canonical display
// names. The project list spells the same person several ways (typos, swapped
// orderings, ad hoc separators for multi-person entries), so every grouping
// over managers goes through a Canonicalizer first.
package names

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table maps a normalized (lowercased, trimmed) spelling variant to its
// canonical display name. Many variants map to one canonical name.
type Table map[string]string

// Canonicalizer resolves raw manager names against an immutable alias table.
// The table is injected so tests can swap it out.
type Canonicalizer struct {
	table Table
}

// New creates a Canonicalizer over the given table. A nil table resolves
// nothing: every input comes back trimmed but otherwise unchanged.
func New(table Table) *Canonicalizer {
	return &Canonicalizer{table: table}
}

// Canonicalize resolves a raw manager name. Lookup is case- and
// whitespace-insensitive; an unmatched input is returned trimmed with its
// original casing. Canonicalizing an already-canonical name is a no-op.
func (c *Canonicalizer) Canonicalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := c.table[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// LoadTable reads a YAML file of `variant: canonical` pairs and merges it
// over the default table. Variant keys are normalized on load so the file
// can spell them naturally.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read alias table: %w", err)
	}
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unable to parse alias table %s: %w", path, err)
	}
	table := DefaultTable()
	for variant, canonical := range raw {
		table[strings.ToLower(strings.TrimSpace(variant))] = strings.TrimSpace(canonical)
	}
	return table, nil
}

// DefaultTable returns the built-in alias table for the historical project
// list. Multi-person entries collapse to one comma-joined ordering so that
// e.g. "rafael/chris" and "chris / rafael" do not group separately.
func DefaultTable() Table {
	return Table{
		// Mark Duffus variants
		"duffus":      "Mark Duffus",
		"dufffus":     "Mark Duffus",
		"mark duffus": "Mark Duffus",
		"mark duffas": "Mark Duffus",
		// Johnny Tapanes variants
		"johnny tapanes":  "Johnny Tapanes",
		"johnny tapenas":  "Johnny Tapanes",
		"johnny tapanese": "Johnny Tapanes",
		"johnnytapanes":   "Johnny Tapanes",
		"johnnytapenas":   "Johnny Tapanes",
		"johnny tapanas":  "Johnny Tapanes",
		"johnny tapenes":  "Johnny Tapanes",
		// Chris Ruballos variants
		"chris ruballos": "Chris Ruballos",
		"chris rubellos": "Chris Ruballos",
		"chis ruballos":  "Chris Ruballos",
		"chris rubllos":  "Chris Ruballos",
		// Rafael Rivera variants
		"rafael rivera":  "Rafael Rivera",
		"rafael riveria": "Rafael Rivera",
		"rafale rivera":  "Rafael Rivera",
		// Matt Hruska variants
		"matt hruska":    "Matt Hruska",
		"matthew hruska": "Matt Hruska",
		// Aaron Hansen variants
		"aaron hanson": "Aaron Hansen",
		// Summer Stacey variants
		"summer stacy": "Summer Stacey",
		// Josh Plies variants
		"josh piles": "Josh Plies",
		// Office name misattributed as a person
		"los angeles": "Unassigned (Los Angeles)",
		// Multi-person entries, normalized to one comma-joined ordering
		"eric goetz, aaron hansen":                 "Eric Goetz, Aaron Hansen",
		"aaron hansen, eric goetz":                 "Eric Goetz, Aaron Hansen",
		"eric goetz / aaron hansen":                "Eric Goetz, Aaron Hansen",
		"eric goetz/aaron hansen":                  "Eric Goetz, Aaron Hansen",
		"aaron hansen/eric goetz":                  "Eric Goetz, Aaron Hansen",
		"aaron hansen / eric goetz":                "Eric Goetz, Aaron Hansen",
		"chris / rafael":                           "Chris Ruballos, Rafael Rivera",
		"chris /rafael":                            "Chris Ruballos, Rafael Rivera",
		"rafael/chris":                             "Rafael Rivera, Chris Ruballos",
		"rafael/chrs":                              "Rafael Rivera, Chris Ruballos",
		"rafael rivera/chris ruballos":             "Chris Ruballos, Rafael Rivera",
		"rafael rivera/chris rubellos":             "Chris Ruballos, Rafael Rivera",
		"rafael and chris":                         "Rafael Rivera, Chris Ruballos",
		"bill hahn/ matt hruska":                   "Bill Hahn, Matt Hruska",
		"matt hruska and bill hahn":                "Bill Hahn, Matt Hruska",
		"johnny and summer":                        "Johnny Tapanes, Summer Stacey",
		"josh, eric":                               "Josh Plies, Eric Goetz",
		"josh piles, eric goetz":                   "Josh Plies, Eric Goetz",
		"eric goetz, josh plies":                   "Eric Goetz, Josh Plies",
		"eric goetz, aaron hansen, johnny tapanes": "Eric Goetz, Aaron Hansen, Johnny Tapanes",
		"john / jennifer harper":                   "John Harper, Jennifer Harper",
		"matt hruska and tony giacalone":           "Matt Hruska, Tony Giacalone",
		"matt hruska and friends":                  "Matt Hruska",
		"aaron hansen (and others)":                "Aaron Hansen",
	}
}
