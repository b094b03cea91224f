package domain

import (
	"fmt"
	"time"
)

// CalendarEvent is a schedulable item. StageID, when set, refers back to the
// track step the event was derived from or is meant to override; the event
// reconciler uses it as the merge identity.
type CalendarEvent struct {
	ID           string
	EmployeeID   string
	Title        string
	Description  string
	Start        time.Time
	End          time.Time
	Location     string
	MeetingType  string
	MeetingURL   string
	Participants []string
	Color        string
	Status       EventStatus
	StageID      *string
	Source       EventSource
	CreatedAt    time.Time
}

// HasStage reports whether the event carries a non-empty stage reference.
func (e CalendarEvent) HasStage() bool {
	return e.StageID != nil && *e.StageID != ""
}

// Stage returns the stage reference or "".
func (e CalendarEvent) Stage() string {
	if e.StageID == nil {
		return ""
	}
	return *e.StageID
}

// Validate checks that the event is titled, ends after it starts and uses a
// known status.
func (e *CalendarEvent) Validate() error {
	if e.Title == "" {
		return fmt.Errorf("event title is required")
	}
	if e.Start.IsZero() {
		return fmt.Errorf("event start is required")
	}
	if e.End.Before(e.Start) {
		return fmt.Errorf("event end %s is before start %s", e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
	}
	if e.Status != "" && !ValidEventStatuses[string(e.Status)] {
		return fmt.Errorf("invalid event status %q", e.Status)
	}
	return nil
}
