package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"estlens/internal/errors"
	"estlens/internal/model"
)

// ImportSnapshot replaces the stored snapshot with snap. Events keep their
// input order via the autoincrement id, which LoadSnapshot reads back in
// order so a sqlite-sourced run stays byte-identical with a json-sourced one.
func (db *DB) ImportSnapshot(snap *model.Snapshot) error {
	return db.WithTx(func(tx *sql.Tx) error {
		for _, table := range []string{"labor_roles", "sections", "events", "rate_card"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		eventStmt, err := tx.Prepare(`INSERT INTO events
			(client, event_name, lead_office, status, event_manager, revenue_segment,
			 event_start_date, event_end_date, filename, format, grand_total,
			 has_recap_data, join_status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer eventStmt.Close()

		sectionStmt, err := tx.Prepare(`INSERT INTO sections
			(event_id, name, canonical_name, section_exists, start_row, total_row,
			 bid_total, recap_total)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer sectionStmt.Close()

		roleStmt, err := tx.Prepare(`INSERT INTO labor_roles
			(event_id, role, unit_rate, gl_code, cost_rate, has_ot_variant)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer roleStmt.Close()

		for i := range snap.Events {
			ev := &snap.Events[i]
			res, err := eventStmt.Exec(
				ev.Client, ev.EventName, ev.LeadOffice, ev.Status, ev.EventManager,
				ev.RevenueSegment, ev.EventStartDate, ev.EventEndDate, ev.Filename,
				ev.Format, ev.GrandTotal, ev.HasRecapData, ev.JoinStatus)
			if err != nil {
				return fmt.Errorf("failed to insert event %s: %w", ev.Filename, err)
			}
			eventID, err := res.LastInsertId()
			if err != nil {
				return err
			}

			for _, s := range ev.CostSections() {
				info := ev.Sections[s.Name]
				if _, err := sectionStmt.Exec(eventID, s.Name, info.CanonicalName,
					info.SectionExists, info.StartRow, info.TotalRow,
					info.BidTotal, info.RecapTotal); err != nil {
					return fmt.Errorf("failed to insert section %s: %w", s.Name, err)
				}
			}

			for _, role := range ev.LaborRoles {
				if _, err := roleStmt.Exec(eventID, role.Role, role.UnitRate,
					role.GLCode, role.CostRate, role.HasOTVariant); err != nil {
					return fmt.Errorf("failed to insert labor role %s: %w", role.Role, err)
				}
			}
		}

		rateStmt, err := tx.Prepare(`INSERT INTO rate_card
			(role, rate_units, gl_codes, occurrences, has_ot_variant, has_dt_variant,
			 has_weekend_variant, has_afterhours_variant, unit_rate_range,
			 unit_rate_range_raw, margin_range)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer rateStmt.Close()

		for i := range snap.RateCard {
			rc := &snap.RateCard[i]
			rateUnits, err := json.Marshal(rc.RateUnits)
			if err != nil {
				return err
			}
			glCodes, err := json.Marshal(rc.GLCodes)
			if err != nil {
				return err
			}
			unitRange, err := json.Marshal(rc.UnitRateRange)
			if err != nil {
				return err
			}
			rawRange, err := json.Marshal(rc.UnitRateRangeRaw)
			if err != nil {
				return err
			}
			var marginRange interface{}
			if rc.MarginRange != nil {
				data, err := json.Marshal(rc.MarginRange)
				if err != nil {
					return err
				}
				marginRange = string(data)
			}
			if _, err := rateStmt.Exec(rc.Role, string(rateUnits), string(glCodes),
				rc.Occurrences, rc.HasOTVariant, rc.HasDTVariant, rc.HasWeekendVariant,
				rc.HasAfterhoursVariant, string(unitRange), string(rawRange),
				marginRange); err != nil {
				return fmt.Errorf("failed to insert rate card role %s: %w", rc.Role, err)
			}
		}

		db.logger.Info("Snapshot imported", map[string]interface{}{
			"events": len(snap.Events),
			"roles":  len(snap.RateCard),
		})
		return nil
	})
}

// LoadSnapshot reads the stored snapshot back in import order. An empty
// store is SNAPSHOT_UNAVAILABLE: precompute must not run against nothing.
func (db *DB) LoadSnapshot() (*model.Snapshot, error) {
	events, err := db.loadEvents()
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, errors.New(errors.SnapshotUnavailable,
			"snapshot store is empty; run `estlens import` first", nil)
	}

	rateCard, err := db.loadRateCard()
	if err != nil {
		return nil, err
	}

	return &model.Snapshot{Events: events, RateCard: rateCard}, nil
}

func (db *DB) loadEvents() ([]model.EventRecord, error) {
	rows, err := db.conn.Query(`SELECT id, client, event_name, lead_office, status,
		event_manager, revenue_segment, event_start_date, event_end_date, filename,
		format, grand_total, has_recap_data, join_status
		FROM events ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []model.EventRecord
	ids := make([]int64, 0)
	for rows.Next() {
		var (
			id         int64
			ev         model.EventRecord
			grandTotal sql.NullFloat64
		)
		if err := rows.Scan(&id, &ev.Client, &ev.EventName, &ev.LeadOffice, &ev.Status,
			&ev.EventManager, &ev.RevenueSegment, &ev.EventStartDate, &ev.EventEndDate,
			&ev.Filename, &ev.Format, &grandTotal, &ev.HasRecapData, &ev.JoinStatus); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if grandTotal.Valid {
			v := grandTotal.Float64
			ev.GrandTotal = &v
		}
		ev.Sections = make(map[string]model.SectionInfo)
		events = append(events, ev)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	index := make(map[int64]*model.EventRecord, len(events))
	for i, id := range ids {
		index[id] = &events[i]
	}

	if err := db.loadSections(index); err != nil {
		return nil, err
	}
	if err := db.loadLaborRoles(index); err != nil {
		return nil, err
	}
	return events, nil
}

func (db *DB) loadSections(index map[int64]*model.EventRecord) error {
	rows, err := db.conn.Query(`SELECT event_id, name, canonical_name, section_exists,
		start_row, total_row, bid_total, recap_total FROM sections ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			eventID    int64
			name       string
			info       model.SectionInfo
			totalRow   sql.NullInt64
			bidTotal   sql.NullFloat64
			recapTotal sql.NullFloat64
		)
		if err := rows.Scan(&eventID, &name, &info.CanonicalName, &info.SectionExists,
			&info.StartRow, &totalRow, &bidTotal, &recapTotal); err != nil {
			return fmt.Errorf("failed to scan section: %w", err)
		}
		if totalRow.Valid {
			v := int(totalRow.Int64)
			info.TotalRow = &v
		}
		if bidTotal.Valid {
			v := bidTotal.Float64
			info.BidTotal = &v
		}
		if recapTotal.Valid {
			v := recapTotal.Float64
			info.RecapTotal = &v
		}
		if ev, ok := index[eventID]; ok {
			ev.Sections[name] = info
		}
	}
	return rows.Err()
}

func (db *DB) loadLaborRoles(index map[int64]*model.EventRecord) error {
	rows, err := db.conn.Query(`SELECT event_id, role, unit_rate, gl_code, cost_rate,
		has_ot_variant FROM labor_roles ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to query labor roles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			eventID  int64
			role     model.LaborRole
			glCode   sql.NullString
			costRate sql.NullFloat64
		)
		if err := rows.Scan(&eventID, &role.Role, &role.UnitRate, &glCode, &costRate,
			&role.HasOTVariant); err != nil {
			return fmt.Errorf("failed to scan labor role: %w", err)
		}
		if glCode.Valid {
			v := glCode.String
			role.GLCode = &v
		}
		if costRate.Valid {
			v := costRate.Float64
			role.CostRate = &v
		}
		if ev, ok := index[eventID]; ok {
			ev.LaborRoles = append(ev.LaborRoles, role)
		}
	}
	return rows.Err()
}

func (db *DB) loadRateCard() ([]model.RateCardRecord, error) {
	rows, err := db.conn.Query(`SELECT role, rate_units, gl_codes, occurrences,
		has_ot_variant, has_dt_variant, has_weekend_variant, has_afterhours_variant,
		unit_rate_range, unit_rate_range_raw, margin_range
		FROM rate_card ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rate card: %w", err)
	}
	defer rows.Close()

	var records []model.RateCardRecord
	for rows.Next() {
		var (
			rc          model.RateCardRecord
			rateUnits   string
			glCodes     string
			unitRange   string
			rawRange    string
			marginRange sql.NullString
		)
		if err := rows.Scan(&rc.Role, &rateUnits, &glCodes, &rc.Occurrences,
			&rc.HasOTVariant, &rc.HasDTVariant, &rc.HasWeekendVariant,
			&rc.HasAfterhoursVariant, &unitRange, &rawRange, &marginRange); err != nil {
			return nil, fmt.Errorf("failed to scan rate card role: %w", err)
		}
		if err := json.Unmarshal([]byte(rateUnits), &rc.RateUnits); err != nil {
			return nil, fmt.Errorf("failed to decode rate units: %w", err)
		}
		if err := json.Unmarshal([]byte(glCodes), &rc.GLCodes); err != nil {
			return nil, fmt.Errorf("failed to decode gl codes: %w", err)
		}
		if err := json.Unmarshal([]byte(unitRange), &rc.UnitRateRange); err != nil {
			return nil, fmt.Errorf("failed to decode unit rate range: %w", err)
		}
		if err := json.Unmarshal([]byte(rawRange), &rc.UnitRateRangeRaw); err != nil {
			return nil, fmt.Errorf("failed to decode raw unit rate range: %w", err)
		}
		if marginRange.Valid {
			var mr model.RateRange
			if err := json.Unmarshal([]byte(marginRange.String), &mr); err != nil {
				return nil, fmt.Errorf("failed to decode margin range: %w", err)
			}
			rc.MarginRange = &mr
		}
		records = append(records, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
