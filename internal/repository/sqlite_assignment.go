package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/adapta/internal/db"
	"github.com/alexanderramin/adapta/internal/domain"
)

// SQLiteAssignmentRepo implements AssignmentRepo using a SQLite database.
// Step progress lives in its own table and is deleted with the assignment.
type SQLiteAssignmentRepo struct {
	db db.DBTX
}

// NewSQLiteAssignmentRepo creates a new SQLiteAssignmentRepo.
func NewSQLiteAssignmentRepo(db db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: db}
}

const assignmentColumns = `employee_id, track_id, start_date, mentor_id, created_at, updated_at`

// Get returns the assignment with its step progress loaded.
func (r *SQLiteAssignmentRepo) Get(ctx context.Context, employeeID, trackID string) (*domain.TrackAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM track_assignments WHERE employee_id = ? AND track_id = ?`
	a, err := scanAssignment(r.db.QueryRowContext(ctx, query, employeeID, trackID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("assignment %s/%s: %w", employeeID, trackID, ErrNotFound)
		}
		return nil, err
	}
	if a.StepProgress, err = r.GetProgress(ctx, employeeID, trackID); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *SQLiteAssignmentRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.TrackAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM track_assignments WHERE employee_id = ? ORDER BY start_date, track_id`
	return r.list(ctx, query, employeeID)
}

func (r *SQLiteAssignmentRepo) ListByTrack(ctx context.Context, trackID string) ([]*domain.TrackAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM track_assignments WHERE track_id = ? ORDER BY start_date, employee_id`
	return r.list(ctx, query, trackID)
}

func (r *SQLiteAssignmentRepo) list(ctx context.Context, query string, arg string) ([]*domain.TrackAssignment, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	var assignments []*domain.TrackAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	rows.Close()

	for _, a := range assignments {
		if a.StepProgress, err = r.GetProgress(ctx, a.EmployeeID, a.TrackID); err != nil {
			return nil, err
		}
	}
	return assignments, nil
}

// Upsert inserts the assignment or, if the pair already exists, overwrites
// its start date and mentor. Progress rows are untouched; callers that
// reassign clear them explicitly.
func (r *SQLiteAssignmentRepo) Upsert(ctx context.Context, a *domain.TrackAssignment) error {
	query := `INSERT INTO track_assignments (` + assignmentColumns + `) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, track_id) DO UPDATE SET
			start_date = excluded.start_date,
			mentor_id = excluded.mentor_id,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		a.EmployeeID,
		a.TrackID,
		a.StartDate.Format(dateLayout),
		nullableString(a.MentorID),
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting assignment: %w", err)
	}
	return nil
}

// UpdateMeta changes start date and mentor of an existing assignment.
func (r *SQLiteAssignmentRepo) UpdateMeta(ctx context.Context, a *domain.TrackAssignment) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE track_assignments SET start_date = ?, mentor_id = ?, updated_at = ?
		WHERE employee_id = ? AND track_id = ?`,
		a.StartDate.Format(dateLayout),
		nullableString(a.MentorID),
		a.UpdatedAt.Format(time.RFC3339),
		a.EmployeeID, a.TrackID,
	)
	if err != nil {
		return fmt.Errorf("updating assignment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("assignment %s/%s: %w", a.EmployeeID, a.TrackID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) Delete(ctx context.Context, employeeID, trackID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM track_assignments WHERE employee_id = ? AND track_id = ?`, employeeID, trackID)
	if err != nil {
		return fmt.Errorf("deleting assignment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("assignment %s/%s: %w", employeeID, trackID, ErrNotFound)
	}
	return nil
}

// GetProgress returns all step progress recorded for the pair, including
// entries whose step no longer exists in the track.
func (r *SQLiteAssignmentRepo) GetProgress(ctx context.Context, employeeID, trackID string) (domain.StepProgress, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT step_id, completed, answers, updated_at FROM step_progress
		WHERE employee_id = ? AND track_id = ?`, employeeID, trackID)
	if err != nil {
		return nil, fmt.Errorf("listing step progress: %w", err)
	}
	defer rows.Close()

	progress := domain.StepProgress{}
	for rows.Next() {
		var stepID, updatedAt string
		var completed int
		var answers sql.NullString
		if err := rows.Scan(&stepID, &completed, &answers, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning step progress row: %w", err)
		}
		entry := domain.StepProgressEntry{Completed: intToBool(completed)}
		if answers.Valid && answers.String != "" {
			if err := json.Unmarshal([]byte(answers.String), &entry.Answers); err != nil {
				return nil, fmt.Errorf("decoding answers for step %s: %w", stepID, err)
			}
		}
		if entry.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
			return nil, err
		}
		progress[stepID] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating step progress: %w", err)
	}
	return progress, nil
}

func (r *SQLiteAssignmentRepo) SetStepProgress(ctx context.Context, employeeID, trackID, stepID string, entry domain.StepProgressEntry) error {
	var answers any
	if entry.Answers != nil {
		encoded, err := marshalJSONColumn(entry.Answers)
		if err != nil {
			return fmt.Errorf("encoding answers: %w", err)
		}
		answers = encoded
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO step_progress (employee_id, track_id, step_id, completed, answers, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, track_id, step_id) DO UPDATE SET
			completed = excluded.completed,
			answers = excluded.answers,
			updated_at = excluded.updated_at`,
		employeeID, trackID, stepID,
		boolToInt(entry.Completed),
		answers,
		entry.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving step progress: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) ClearProgress(ctx context.Context, employeeID, trackID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM step_progress WHERE employee_id = ? AND track_id = ?`, employeeID, trackID)
	if err != nil {
		return fmt.Errorf("clearing step progress: %w", err)
	}
	return nil
}

func scanAssignment(row rowScanner) (*domain.TrackAssignment, error) {
	var a domain.TrackAssignment
	var startDate, createdAt, updatedAt string
	var mentorID sql.NullString
	if err := row.Scan(&a.EmployeeID, &a.TrackID, &startDate, &mentorID, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning assignment: %w", err)
	}
	var err error
	if a.StartDate, err = time.Parse(dateLayout, startDate); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if a.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return nil, err
	}
	a.MentorID = stringPtr(mentorID)
	return &a, nil
}
