package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/adapta/internal/db"
	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/alexanderramin/adapta/internal/repository"
	"github.com/google/uuid"
)

type eventService struct {
	events          repository.EventRepo
	uow             db.UnitOfWork
	defaultDuration time.Duration
	observer        UseCaseObserver
}

func NewEventService(
	events repository.EventRepo,
	uow db.UnitOfWork,
	defaultDuration time.Duration,
	observers ...UseCaseObserver,
) EventService {
	return &eventService{
		events:          events,
		uow:             uow,
		defaultDuration: defaultDuration,
		observer:        useCaseObserverOrNoop(observers),
	}
}

// Create stores a local event for an existing employee. A zero End is
// filled in from the default meeting duration.
func (s *eventService) Create(ctx context.Context, e *domain.CalendarEvent) (err error) {
	defer record(ctx, s.observer, "add-event", time.Now().UTC(), map[string]any{
		"employee_id": e.EmployeeID,
		"stage_id":    e.Stage(),
	}, &err)

	e.Title = strings.TrimSpace(e.Title)
	e.StageID = normalizeID(e.StageID)
	if e.End.IsZero() && !e.Start.IsZero() {
		e.End = e.Start.Add(s.defaultDuration)
	}
	if e.Status == "" {
		e.Status = domain.EventScheduled
	}
	if err = e.Validate(); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.Source = domain.SourceLocal
	e.CreatedAt = nowUTC()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteEmployeeRepo(tx).GetByID(ctx, e.EmployeeID); err != nil {
			return err
		}
		return repository.NewSQLiteEventRepo(tx).Create(ctx, e)
	})
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	return s.events.GetByID(ctx, id)
}

func (s *eventService) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.CalendarEvent, error) {
	return s.events.ListByEmployee(ctx, employeeID)
}

func (s *eventService) SetStatus(ctx context.Context, id string, status domain.EventStatus) (ev *domain.CalendarEvent, err error) {
	defer record(ctx, s.observer, "set-event-status", time.Now().UTC(), map[string]any{
		"event_id": id,
		"status":   string(status),
	}, &err)

	if !domain.ValidEventStatuses[string(status)] {
		return nil, fmt.Errorf("invalid event status %q", status)
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteEventRepo(tx)
		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		current.Status = status
		if err := repo.Update(ctx, current); err != nil {
			return err
		}
		ev = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *eventService) Delete(ctx context.Context, id string) (err error) {
	defer record(ctx, s.observer, "remove-event", time.Now().UTC(), map[string]any{"event_id": id}, &err)
	return s.events.Delete(ctx, id)
}
