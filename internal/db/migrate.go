package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies all schema statements. Every statement is safe to re-run;
// ALTER TABLE additions that already exist are skipped.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tracks (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		track_id    TEXT NOT NULL REFERENCES tracks(id) ON DELETE CASCADE,
		id          TEXT NOT NULL,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		end_date    TEXT,
		order_index INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (track_id, id)
	)`,

	`CREATE TABLE IF NOT EXISTS steps (
		track_id     TEXT NOT NULL,
		milestone_id TEXT NOT NULL,
		id           TEXT NOT NULL,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		required     INTEGER NOT NULL DEFAULT 0,
		type         TEXT NOT NULL
		             CHECK(type IN ('task','survey','presentation','meeting')),
		content      TEXT NOT NULL DEFAULT '{}',
		order_index  INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (track_id, id),
		FOREIGN KEY (track_id, milestone_id) REFERENCES milestones(track_id, id) ON DELETE CASCADE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_steps_milestone ON steps(track_id, milestone_id)`,

	`CREATE TABLE IF NOT EXISTS employees (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`ALTER TABLE employees ADD COLUMN position TEXT NOT NULL DEFAULT ''`,

	`CREATE TABLE IF NOT EXISTS track_assignments (
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		track_id    TEXT NOT NULL REFERENCES tracks(id) ON DELETE CASCADE,
		start_date  TEXT NOT NULL,
		mentor_id   TEXT REFERENCES employees(id) ON DELETE SET NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		PRIMARY KEY (employee_id, track_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_assignments_track ON track_assignments(track_id)`,

	`CREATE TABLE IF NOT EXISTS step_progress (
		employee_id TEXT NOT NULL,
		track_id    TEXT NOT NULL,
		step_id     TEXT NOT NULL,
		completed   INTEGER NOT NULL DEFAULT 0,
		answers     TEXT,
		updated_at  TEXT NOT NULL,
		PRIMARY KEY (employee_id, track_id, step_id),
		FOREIGN KEY (employee_id, track_id)
		    REFERENCES track_assignments(employee_id, track_id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS calendar_events (
		id           TEXT PRIMARY KEY,
		employee_id  TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		start_at     TEXT NOT NULL,
		end_at       TEXT NOT NULL,
		location     TEXT NOT NULL DEFAULT '',
		meeting_type TEXT NOT NULL DEFAULT '',
		meeting_url  TEXT NOT NULL DEFAULT '',
		participants TEXT NOT NULL DEFAULT '[]',
		status       TEXT NOT NULL DEFAULT 'scheduled'
		             CHECK(status IN ('scheduled','completed','cancelled')),
		stage_id     TEXT,
		source       TEXT NOT NULL DEFAULT 'local',
		created_at   TEXT NOT NULL
	)`,

	`ALTER TABLE calendar_events ADD COLUMN color TEXT NOT NULL DEFAULT ''`,

	`CREATE INDEX IF NOT EXISTS idx_events_employee_start ON calendar_events(employee_id, start_at)`,
	`CREATE INDEX IF NOT EXISTS idx_events_stage ON calendar_events(stage_id)`,
}
