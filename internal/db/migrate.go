package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies every schema statement. Statements are idempotent so
// Migrate can run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		signature_date TEXT NOT NULL,
		capacity_kwc   REAL NOT NULL,
		technology     TEXT NOT NULL
		               CHECK(technology IN ('new-roof','renovation','canopy','ground-mounted')),
		model          TEXT NOT NULL
		               CHECK(model IN ('direct-epc','third-party-epc')),
		connection     TEXT NOT NULL
		               CHECK(connection IN ('grid-injection','self-consumption')),
		subcontracted  INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS phase_overrides (
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		phase_id        TEXT NOT NULL,
		enabled         INTEGER,
		manual_duration REAL,
		PRIMARY KEY (project_id, phase_id)
	)`,

	`CREATE TABLE IF NOT EXISTS phases (
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		seq             INTEGER NOT NULL,
		phase_id        TEXT NOT NULL,
		name            TEXT NOT NULL,
		start_date      TEXT NOT NULL,
		end_date        TEXT NOT NULL,
		duration_months REAL NOT NULL,
		color           TEXT NOT NULL DEFAULT '',
		milestone       INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (project_id, seq)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_created ON projects(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_phases_phase ON phases(phase_id)`,
}
