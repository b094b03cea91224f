package service

import (
	"context"
	"time"

	"github.com/alexanderramin/adapta/internal/app"
	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/alexanderramin/adapta/internal/importer"
	"github.com/alexanderramin/adapta/internal/tracking"
)

type TrackService interface {
	GetByID(ctx context.Context, id string) (*domain.Track, error)
	List(ctx context.Context) ([]*domain.Track, error)
	Delete(ctx context.Context, id string, force bool) error
}

type EmployeeService interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, id string) error
}

// AssignmentService manages track assignments and their step progress.
// AssignTrack resets progress; UpdateTrack only touches metadata.
type AssignmentService interface {
	AssignTrack(ctx context.Context, req app.AssignTrackRequest) (*domain.TrackAssignment, error)
	UpdateTrack(ctx context.Context, req app.AssignTrackRequest) (*domain.TrackAssignment, error)
	RemoveTrack(ctx context.Context, employeeID, trackID string) error
	Get(ctx context.Context, employeeID, trackID string) (*domain.TrackAssignment, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*domain.TrackAssignment, error)

	MarkStepCompleted(ctx context.Context, employeeID, trackID, stepID string) (*domain.TrackAssignment, error)
	MarkStepIncomplete(ctx context.Context, employeeID, trackID, stepID string) (*domain.TrackAssignment, error)
	UpdateStepProgress(ctx context.Context, employeeID, trackID, stepID string, completed bool) (*domain.TrackAssignment, error)
	SubmitSurvey(ctx context.Context, employeeID, trackID, stepID string, answers map[string]string) (*domain.TrackAssignment, error)
}

type ProgressService interface {
	GetProgress(ctx context.Context, employeeID, trackID string) (tracking.Progress, error)
	GetStatus(ctx context.Context, employeeID, trackID string) (domain.AssignmentStatus, error)
	Overview(ctx context.Context, req app.ProgressRequest) (*app.ProgressResponse, error)
}

type ScheduleService interface {
	Schedule(ctx context.Context, req app.ScheduleRequest) (*app.ScheduleResponse, error)
}

// EventService manages locally stored calendar events. Events carrying a
// stage ID override the track meeting with that step ID.
type EventService interface {
	Create(ctx context.Context, e *domain.CalendarEvent) error
	GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*domain.CalendarEvent, error)
	SetStatus(ctx context.Context, id string, status domain.EventStatus) (*domain.CalendarEvent, error)
	Delete(ctx context.Context, id string) error
}

type ImportService interface {
	ImportTrack(ctx context.Context, filePath string, replace bool) (*app.ImportResult, error)
	ImportTrackFromSchema(ctx context.Context, schema *importer.ImportSchema, replace bool) (*app.ImportResult, error)
}

// EventFeed supplies externally managed calendar events for an employee
// within [from, to).
type EventFeed interface {
	Name() string
	Events(ctx context.Context, employee *domain.Employee, from, to time.Time) ([]domain.CalendarEvent, error)
}
