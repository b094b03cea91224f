package repository

import (
	"context"

	"github.com/alexanderramin/adapta/internal/domain"
)

type TrackRepo interface {
	Create(ctx context.Context, t *domain.Track) error
	GetByID(ctx context.Context, id string) (*domain.Track, error)
	List(ctx context.Context) ([]*domain.Track, error)
	Replace(ctx context.Context, t *domain.Track) error
	Delete(ctx context.Context, id string) error
}

type EmployeeRepo interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, id string) error
}

// AssignmentRepo stores track assignments together with their step progress.
type AssignmentRepo interface {
	Get(ctx context.Context, employeeID, trackID string) (*domain.TrackAssignment, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*domain.TrackAssignment, error)
	ListByTrack(ctx context.Context, trackID string) ([]*domain.TrackAssignment, error)
	Upsert(ctx context.Context, a *domain.TrackAssignment) error
	UpdateMeta(ctx context.Context, a *domain.TrackAssignment) error
	Delete(ctx context.Context, employeeID, trackID string) error

	GetProgress(ctx context.Context, employeeID, trackID string) (domain.StepProgress, error)
	SetStepProgress(ctx context.Context, employeeID, trackID, stepID string, entry domain.StepProgressEntry) error
	ClearProgress(ctx context.Context, employeeID, trackID string) error
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.CalendarEvent) error
	GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*domain.CalendarEvent, error)
	Update(ctx context.Context, e *domain.CalendarEvent) error
	Delete(ctx context.Context, id string) error
}
