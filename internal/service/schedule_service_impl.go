package service

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/alexanderramin/adapta/internal/app"
	"github.com/alexanderramin/adapta/internal/calendar"
	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/alexanderramin/adapta/internal/repository"
)

// feedHorizon bounds how far before and after now external feeds are queried.
const feedHorizon = 180 * 24 * time.Hour

type scheduleService struct {
	employees       repository.EmployeeRepo
	tracks          repository.TrackRepo
	assignments     repository.AssignmentRepo
	events          repository.EventRepo
	feeds           []EventFeed
	defaultDuration time.Duration
	now             func() time.Time
}

// NewScheduleService builds the schedule use case. Locally stored events
// and every feed form the external event source; each assigned track's
// meeting steps form the derived source.
func NewScheduleService(
	employees repository.EmployeeRepo,
	tracks repository.TrackRepo,
	assignments repository.AssignmentRepo,
	events repository.EventRepo,
	defaultDuration time.Duration,
	feeds ...EventFeed,
) ScheduleService {
	return &scheduleService{
		employees:       employees,
		tracks:          tracks,
		assignments:     assignments,
		events:          events,
		feeds:           feeds,
		defaultDuration: defaultDuration,
		now:             time.Now,
	}
}

func (s *scheduleService) Schedule(ctx context.Context, req app.ScheduleRequest) (*app.ScheduleResponse, error) {
	now := s.now()
	if req.Now != nil {
		now = *req.Now
	}
	loc := now.Location()
	if req.Location != nil {
		loc = req.Location
	}
	now = now.In(loc)
	window := req.Window
	if window == "" {
		window = domain.WindowAll
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignments.ListByEmployee(ctx, emp.ID)
	if err != nil {
		return nil, err
	}
	if req.TrackID != "" {
		assignments = slices.DeleteFunc(assignments, func(a *domain.TrackAssignment) bool {
			return a.TrackID != req.TrackID
		})
		if len(assignments) == 0 {
			return nil, fmt.Errorf("employee %s, track %s: %w", emp.ID, req.TrackID, ErrNotAssigned)
		}
	}

	var derived []domain.CalendarEvent
	knownSteps := make(map[string]bool)
	for _, a := range assignments {
		track, err := s.tracks.GetByID(ctx, a.TrackID)
		if err != nil {
			return nil, fmt.Errorf("loading track %s: %w", a.TrackID, err)
		}
		for _, step := range track.Steps() {
			knownSteps[step.ID] = true
		}
		derived = append(derived, calendar.DeriveTrackEvents(track, a.StepProgress, calendar.DeriveOptions{
			DefaultDuration: s.defaultDuration,
			EmployeeID:      emp.ID,
		})...)
	}

	external, err := s.externalEvents(ctx, emp, now)
	if err != nil {
		return nil, err
	}

	resp := &app.ScheduleResponse{
		EmployeeID:  emp.ID,
		Window:      window,
		GeneratedAt: now,
	}
	derivedStages := make(map[string]bool, len(derived))
	for _, ev := range derived {
		derivedStages[ev.Stage()] = true
	}
	overridden := make(map[string]bool)
	if req.TrackID != "" {
		// A single-track view drops external events tied to other steps.
		// Events without a stage never collide and are kept.
		external = slices.DeleteFunc(external, func(ev domain.CalendarEvent) bool {
			return ev.HasStage() && !knownSteps[ev.Stage()]
		})
	}
	for _, ev := range external {
		if !ev.HasStage() {
			continue
		}
		switch {
		case derivedStages[ev.Stage()]:
			overridden[ev.Stage()] = true
		case !knownSteps[ev.Stage()]:
			resp.Warnings = append(resp.Warnings,
				fmt.Sprintf("event %q references step %q which is not in any assigned track", ev.Title, ev.Stage()))
		}
	}
	resp.Overridden = slices.Sorted(maps.Keys(overridden))

	merged := calendar.Reconcile(derived, external)
	filtered := calendar.Filter(merged, window, now)
	resp.Days = calendar.GroupByDate(filtered, loc)
	resp.EventCount = len(filtered)
	return resp, nil
}

// externalEvents collects the stored events and every feed's events.
func (s *scheduleService) externalEvents(ctx context.Context, emp *domain.Employee, now time.Time) ([]domain.CalendarEvent, error) {
	stored, err := s.events.ListByEmployee(ctx, emp.ID)
	if err != nil {
		return nil, err
	}
	external := make([]domain.CalendarEvent, 0, len(stored))
	for _, ev := range stored {
		external = append(external, *ev)
	}
	for _, feed := range s.feeds {
		events, err := feed.Events(ctx, emp, now.Add(-feedHorizon), now.Add(feedHorizon))
		if err != nil {
			return nil, fmt.Errorf("fetching %s events: %w", feed.Name(), err)
		}
		external = append(external, events...)
	}
	return external, nil
}
