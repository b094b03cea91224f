package gcal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/adapta/internal/domain"
	"google.golang.org/api/calendar/v3"
)

// Feed reads an employee's events from one Google calendar.
type Feed struct {
	srv        *calendar.Service
	calendarID string
	loc        *time.Location
}

func NewFeed(srv *calendar.Service, calendarID string, loc *time.Location) *Feed {
	if calendarID == "" {
		calendarID = "primary"
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Feed{srv: srv, calendarID: calendarID, loc: loc}
}

func (f *Feed) Name() string { return "google calendar" }

// Events lists the calendar's events between from and to that belong to emp:
// either tagged with emp's ID in the employee_id private property, or
// attended by emp's email address. Recurring events are expanded.
func (f *Feed) Events(ctx context.Context, emp *domain.Employee, from, to time.Time) ([]domain.CalendarEvent, error) {
	var out []domain.CalendarEvent
	call := f.srv.Events.List(f.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")
	err := call.Pages(ctx, func(page *calendar.Events) error {
		for _, item := range page.Items {
			if !belongsTo(item, emp) {
				continue
			}
			ev, err := ToDomainEvent(item, emp.ID, f.loc)
			if err != nil {
				return err
			}
			out = append(out, ev)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing calendar %s: %w", f.calendarID, err)
	}
	return out, nil
}

func belongsTo(ev *calendar.Event, emp *domain.Employee) bool {
	if ev.ExtendedProperties != nil && ev.ExtendedProperties.Private[EmployeeProperty] == emp.ID {
		return true
	}
	if emp.Email == "" {
		return false
	}
	for _, a := range ev.Attendees {
		if strings.EqualFold(a.Email, emp.Email) {
			return true
		}
	}
	return false
}
