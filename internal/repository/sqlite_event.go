package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/adapta/internal/db"
	"github.com/alexanderramin/adapta/internal/domain"
)

// SQLiteEventRepo implements EventRepo using a SQLite database.
// Instants are stored as UTC RFC3339 strings.
type SQLiteEventRepo struct {
	db db.DBTX
}

// NewSQLiteEventRepo creates a new SQLiteEventRepo.
func NewSQLiteEventRepo(db db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: db}
}

const eventColumns = `id, employee_id, title, description, start_at, end_at, location,
	meeting_type, meeting_url, participants, color, status, stage_id, source, created_at`

func (r *SQLiteEventRepo) Create(ctx context.Context, e *domain.CalendarEvent) error {
	participants, err := marshalJSONColumn(nonNilStrings(e.Participants))
	if err != nil {
		return fmt.Errorf("encoding participants: %w", err)
	}
	query := `INSERT INTO calendar_events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		e.ID,
		e.EmployeeID,
		e.Title,
		e.Description,
		formatTimestamp(e.Start),
		formatTimestamp(e.End),
		e.Location,
		e.MeetingType,
		e.MeetingURL,
		participants,
		e.Color,
		string(e.Status),
		nullableString(e.StageID),
		string(e.Source),
		formatTimestamp(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting calendar event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE id = ?`
	e, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("calendar event %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

// ListByEmployee returns the employee's stored events ordered by start.
func (r *SQLiteEventRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE employee_id = ? ORDER BY start_at, id`
	rows, err := r.db.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("listing calendar events: %w", err)
	}
	defer rows.Close()

	var events []*domain.CalendarEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating calendar events: %w", err)
	}
	return events, nil
}

func (r *SQLiteEventRepo) Update(ctx context.Context, e *domain.CalendarEvent) error {
	participants, err := marshalJSONColumn(nonNilStrings(e.Participants))
	if err != nil {
		return fmt.Errorf("encoding participants: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE calendar_events SET title = ?, description = ?, start_at = ?, end_at = ?, location = ?,
			meeting_type = ?, meeting_url = ?, participants = ?, color = ?, status = ?, stage_id = ?
		WHERE id = ?`,
		e.Title, e.Description,
		formatTimestamp(e.Start), formatTimestamp(e.End),
		e.Location, e.MeetingType, e.MeetingURL,
		participants, e.Color, string(e.Status),
		nullableString(e.StageID),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating calendar event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("calendar event %s: %w", e.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteEventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting calendar event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("calendar event %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanEvent(row rowScanner) (*domain.CalendarEvent, error) {
	var e domain.CalendarEvent
	var start, end, participants, status, source, createdAt string
	var stageID sql.NullString
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.Title, &e.Description,
		&start, &end, &e.Location,
		&e.MeetingType, &e.MeetingURL, &participants, &e.Color,
		&status, &stageID, &source, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning calendar event: %w", err)
	}
	e.Status = domain.EventStatus(status)
	e.Source = domain.EventSource(source)
	e.StageID = stringPtr(stageID)
	if participants != "" {
		if err := json.Unmarshal([]byte(participants), &e.Participants); err != nil {
			return nil, fmt.Errorf("decoding participants: %w", err)
		}
	}
	if e.Start, err = parseTimestamp("start_at", start); err != nil {
		return nil, err
	}
	if e.End, err = parseTimestamp("end_at", end); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
