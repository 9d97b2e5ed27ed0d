package report

import "estlens/internal/model"

// RateCardEntry is one labor role's published rate statistics. MarginRange
// is always present in the artifact; roles without margin data get a zeroed
// range rather than a null so consumers can index fields unconditionally.
type RateCardEntry struct {
	Role                 string          `json:"role"`
	RateUnits            []string        `json:"rateUnits"`
	GLCodes              []string        `json:"glCodes"`
	Occurrences          int             `json:"occurrences"`
	HasOTVariant         bool            `json:"hasOTVariant"`
	HasDTVariant         bool            `json:"hasDTVariant"`
	HasWeekendVariant    bool            `json:"hasWeekendVariant"`
	HasAfterhoursVariant bool            `json:"hasAfterhoursVariant"`
	UnitRateRange        model.RateRange `json:"unitRateRange"`
	UnitRateRangeRaw     model.RateRange `json:"unitRateRangeRaw"`
	MarginRange          model.RateRange `json:"marginRange"`
}

// RateCardDigest is the rate-card pass-through artifact, in source order.
type RateCardDigest struct {
	TotalRoles int             `json:"totalRoles"`
	Roles      []RateCardEntry `json:"roles"`
}

func buildRateCardDigest(records []model.RateCardRecord) RateCardDigest {
	roles := make([]RateCardEntry, 0, len(records))
	for i := range records {
		rc := &records[i]
		entry := RateCardEntry{
			Role:                 rc.Role,
			RateUnits:            rc.RateUnits,
			GLCodes:              rc.GLCodes,
			Occurrences:          rc.Occurrences,
			HasOTVariant:         rc.HasOTVariant,
			HasDTVariant:         rc.HasDTVariant,
			HasWeekendVariant:    rc.HasWeekendVariant,
			HasAfterhoursVariant: rc.HasAfterhoursVariant,
			UnitRateRange:        rc.UnitRateRange,
			UnitRateRangeRaw:     rc.UnitRateRangeRaw,
		}
		if rc.MarginRange != nil {
			entry.MarginRange = *rc.MarginRange
		}
		roles = append(roles, entry)
	}
	return RateCardDigest{
		TotalRoles: len(roles),
		Roles:      roles,
	}
}
