package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_AddsLaterColumns simulates a database created
// before employees.position and calendar_events.color existed. Existing rows
// must survive and pick up the column defaults.
func TestMigrate_UpgradePath_AddsLaterColumns(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	legacy := []string{
		`CREATE TABLE employees (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE calendar_events (
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
			status       TEXT NOT NULL DEFAULT 'scheduled',
			stage_id     TEXT,
			source       TEXT NOT NULL DEFAULT 'local',
			created_at   TEXT NOT NULL
		)`,
		`INSERT INTO employees (id, name, created_at, updated_at) VALUES ('e1', 'Ada', 'x', 'x')`,
		`INSERT INTO calendar_events (id, employee_id, title, start_at, end_at, created_at)
		 VALUES ('ev1', 'e1', 'Kickoff', '2024-06-10T09:00:00Z', '2024-06-10T10:00:00Z', 'x')`,
	}
	for _, stmt := range legacy {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db))

	var position string
	require.NoError(t, db.QueryRow(`SELECT position FROM employees WHERE id = 'e1'`).Scan(&position))
	assert.Equal(t, "", position)

	var color, title string
	require.NoError(t, db.QueryRow(`SELECT color, title FROM calendar_events WHERE id = 'ev1'`).Scan(&color, &title))
	assert.Equal(t, "", color)
	assert.Equal(t, "Kickoff", title)
}
