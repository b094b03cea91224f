package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/adapta/internal/db"
	"github.com/alexanderramin/adapta/internal/domain"
)

// SQLiteTrackRepo implements TrackRepo using a SQLite database. A track is
// stored across three tables (tracks, milestones, steps); writes that touch
// more than one row should run inside a UnitOfWork.
type SQLiteTrackRepo struct {
	db db.DBTX
}

// NewSQLiteTrackRepo creates a new SQLiteTrackRepo.
func NewSQLiteTrackRepo(db db.DBTX) *SQLiteTrackRepo {
	return &SQLiteTrackRepo{db: db}
}

const trackColumns = `id, title, description, created_at, updated_at`

func (r *SQLiteTrackRepo) Create(ctx context.Context, t *domain.Track) error {
	query := `INSERT INTO tracks (` + trackColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting track: %w", err)
	}
	return r.insertHierarchy(ctx, t)
}

// Replace overwrites the track row and swaps its milestones and steps for
// the ones in t. Step progress rows are keyed by step ID and survive.
func (r *SQLiteTrackRepo) Replace(ctx context.Context, t *domain.Track) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tracks SET title = ?, description = ?, updated_at = ? WHERE id = ?`,
		t.Title, t.Description, t.UpdatedAt.Format(time.RFC3339), t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating track: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("track %s: %w", t.ID, ErrNotFound)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM milestones WHERE track_id = ?`, t.ID); err != nil {
		return fmt.Errorf("clearing milestones: %w", err)
	}
	return r.insertHierarchy(ctx, t)
}

func (r *SQLiteTrackRepo) insertHierarchy(ctx context.Context, t *domain.Track) error {
	for mi, m := range t.Milestones {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO milestones (track_id, id, title, description, end_date, order_index)
			VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, m.ID, m.Title, m.Description,
			nullableTimeToString(m.EndDate, dateLayout),
			mi,
		)
		if err != nil {
			return fmt.Errorf("inserting milestone %s: %w", m.ID, err)
		}
		for si, s := range m.Steps {
			typ, content, err := encodeStepContent(s.Content)
			if err != nil {
				return fmt.Errorf("step %s: %w", s.ID, err)
			}
			_, err = r.db.ExecContext(ctx,
				`INSERT INTO steps (track_id, milestone_id, id, title, description, required, type, content, order_index)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				t.ID, m.ID, s.ID, s.Title, s.Description,
				boolToInt(s.Required), typ, content, si,
			)
			if err != nil {
				return fmt.Errorf("inserting step %s: %w", s.ID, err)
			}
		}
	}
	return nil
}

func (r *SQLiteTrackRepo) GetByID(ctx context.Context, id string) (*domain.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks WHERE id = ?`
	t, err := scanTrack(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("track %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if err := r.loadHierarchy(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTrackRepo) List(ctx context.Context) ([]*domain.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tracks: %w", err)
	}
	var tracks []*domain.Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating tracks: %w", err)
	}
	rows.Close()

	// Hierarchies load after the cursor is closed: a single-connection
	// database cannot serve a nested query while rows are open.
	for _, t := range tracks {
		if err := r.loadHierarchy(ctx, t); err != nil {
			return nil, err
		}
	}
	return tracks, nil
}

func (r *SQLiteTrackRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tracks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting track: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("track %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTrackRepo) loadHierarchy(ctx context.Context, t *domain.Track) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, end_date FROM milestones
		WHERE track_id = ? ORDER BY order_index, id`, t.ID)
	if err != nil {
		return fmt.Errorf("listing milestones: %w", err)
	}
	var milestones []domain.Milestone
	index := make(map[string]int)
	for rows.Next() {
		var m domain.Milestone
		var endDate sql.NullString
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &endDate); err != nil {
			rows.Close()
			return fmt.Errorf("scanning milestone row: %w", err)
		}
		m.EndDate = parseNullableTime(endDate, dateLayout)
		index[m.ID] = len(milestones)
		milestones = append(milestones, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterating milestones: %w", err)
	}
	rows.Close()

	stepRows, err := r.db.QueryContext(ctx,
		`SELECT milestone_id, id, title, description, required, type, content FROM steps
		WHERE track_id = ? ORDER BY order_index, id`, t.ID)
	if err != nil {
		return fmt.Errorf("listing steps: %w", err)
	}
	defer stepRows.Close()
	for stepRows.Next() {
		var s domain.Step
		var milestoneID, typ, content string
		var required int
		if err := stepRows.Scan(&milestoneID, &s.ID, &s.Title, &s.Description, &required, &typ, &content); err != nil {
			return fmt.Errorf("scanning step row: %w", err)
		}
		s.Required = intToBool(required)
		if s.Content, err = decodeStepContent(typ, content); err != nil {
			return fmt.Errorf("step %s: %w", s.ID, err)
		}
		i, ok := index[milestoneID]
		if !ok {
			return fmt.Errorf("step %s references unknown milestone %s", s.ID, milestoneID)
		}
		milestones[i].Steps = append(milestones[i].Steps, s)
	}
	if err := stepRows.Err(); err != nil {
		return fmt.Errorf("iterating steps: %w", err)
	}
	t.Milestones = milestones
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrack(row rowScanner) (*domain.Track, error) {
	var t domain.Track
	var createdAt, updatedAt string
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning track: %w", err)
	}
	var err error
	if t.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
