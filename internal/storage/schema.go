package storage

import (
	"database/sql"
	"fmt"
)

const currentSchemaVersion = 1

// initializeSchema creates all tables for a new database
func (db *DB) initializeSchema() error {
	return db.WithTx(func(tx *sql.Tx) error {
		statements := []string{
			`CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER NOT NULL
			)`,
			// Recap/bid totals are nullable REALs on purpose: NULL means
			// "never recapped", 0 means "recapped at zero cost".
			`CREATE TABLE IF NOT EXISTS events (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				client TEXT,
				event_name TEXT,
				lead_office TEXT,
				status TEXT,
				event_manager TEXT,
				revenue_segment TEXT,
				event_start_date TEXT,
				event_end_date TEXT,
				filename TEXT NOT NULL,
				format TEXT,
				grand_total REAL,
				has_recap_data INTEGER NOT NULL DEFAULT 0,
				join_status TEXT
			)`,
			`CREATE TABLE IF NOT EXISTS sections (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				event_id INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
				name TEXT NOT NULL,
				canonical_name TEXT,
				section_exists INTEGER NOT NULL DEFAULT 1,
				start_row INTEGER,
				total_row INTEGER,
				bid_total REAL,
				recap_total REAL
			)`,
			`CREATE TABLE IF NOT EXISTS labor_roles (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				event_id INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
				role TEXT NOT NULL,
				unit_rate REAL NOT NULL,
				gl_code TEXT,
				cost_rate REAL,
				has_ot_variant INTEGER NOT NULL DEFAULT 0
			)`,
			`CREATE TABLE IF NOT EXISTS rate_card (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				role TEXT NOT NULL,
				rate_units TEXT NOT NULL,
				gl_codes TEXT NOT NULL,
				occurrences INTEGER NOT NULL,
				has_ot_variant INTEGER NOT NULL DEFAULT 0,
				has_dt_variant INTEGER NOT NULL DEFAULT 0,
				has_weekend_variant INTEGER NOT NULL DEFAULT 0,
				has_afterhours_variant INTEGER NOT NULL DEFAULT 0,
				unit_rate_range TEXT NOT NULL,
				unit_rate_range_raw TEXT NOT NULL,
				margin_range TEXT
			)`,
			`CREATE INDEX IF NOT EXISTS idx_sections_event ON sections(event_id)`,
			`CREATE INDEX IF NOT EXISTS idx_labor_roles_event ON labor_roles(event_id)`,
		}

		for _, stmt := range statements {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("failed to create schema: %w", err)
			}
		}

		if _, err := tx.Exec(`INSERT INTO schema_version (version) VALUES (?)`, currentSchemaVersion); err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}

		db.logger.Info("Snapshot database schema initialized", map[string]interface{}{
			"version": currentSchemaVersion,
		})
		return nil
	})
}
