package domain

import "fmt"

// AssignmentStatus is the aggregate onboarding state of one track assignment.
// It is always derived from the track and the step progress, never stored.
type AssignmentStatus string

const (
	StatusNotStarted AssignmentStatus = "not_started"
	StatusInProgress AssignmentStatus = "in_progress"
	StatusCompleted  AssignmentStatus = "completed"
)

type StepType string

const (
	StepTask         StepType = "task"
	StepSurvey       StepType = "survey"
	StepPresentation StepType = "presentation"
	StepMeeting      StepType = "meeting"
)

// ValidStepTypes is the canonical set of accepted step type strings.
var ValidStepTypes = map[string]bool{
	"task": true, "survey": true, "presentation": true, "meeting": true,
}

type EventStatus string

const (
	EventScheduled EventStatus = "scheduled"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

// ValidEventStatuses is the canonical set of accepted calendar event statuses.
var ValidEventStatuses = map[string]bool{
	"scheduled": true, "completed": true, "cancelled": true,
}

// EventSource records where a calendar event came from.
type EventSource string

const (
	SourceTrack  EventSource = "track"
	SourceLocal  EventSource = "local"
	SourceGoogle EventSource = "google"
)

type TimeWindow string

const (
	WindowPast     TimeWindow = "past"
	WindowToday    TimeWindow = "today"
	WindowUpcoming TimeWindow = "upcoming"
	WindowAll      TimeWindow = "all"
)

// ParseTimeWindow converts user input into a TimeWindow. Empty input means all.
func ParseTimeWindow(s string) (TimeWindow, error) {
	switch TimeWindow(s) {
	case "":
		return WindowAll, nil
	case WindowPast, WindowToday, WindowUpcoming, WindowAll:
		return TimeWindow(s), nil
	default:
		return "", fmt.Errorf("invalid time window %q (expected past, today, upcoming or all)", s)
	}
}
