package testutil

import (
	"time"

	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/google/uuid"
)

// Track options
type TrackOption func(*domain.Track)

// WithMilestone appends a milestone holding the given steps.
func WithMilestone(id, title string, steps ...domain.Step) TrackOption {
	return func(t *domain.Track) {
		t.Milestones = append(t.Milestones, domain.Milestone{ID: id, Title: title, Steps: steps})
	}
}

func WithMilestoneEndDate(id string, d time.Time) TrackOption {
	return func(t *domain.Track) {
		for i := range t.Milestones {
			if t.Milestones[i].ID == id {
				t.Milestones[i].EndDate = &d
			}
		}
	}
}

func WithTrackDescription(d string) TrackOption {
	return func(t *domain.Track) {
		t.Description = d
	}
}

func WithTrackID(id string) TrackOption {
	return func(t *domain.Track) {
		t.ID = id
	}
}

// NewTestTrack builds a track. Without milestone options it holds no steps.
func NewTestTrack(title string, opts ...TrackOption) *domain.Track {
	now := time.Now().UTC().Truncate(time.Second)
	t := &domain.Track{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TaskStep is a required plain task.
func TaskStep(id string) domain.Step {
	return domain.Step{ID: id, Title: "Task " + id, Required: true, Content: domain.TaskContent{}}
}

func SurveyStep(id string, questions ...string) domain.Step {
	return domain.Step{ID: id, Title: "Survey " + id, Required: true, Content: domain.SurveyContent{Questions: questions}}
}

func PresentationStep(id, url string) domain.Step {
	return domain.Step{ID: id, Title: "Presentation " + id, Content: domain.PresentationContent{URL: url}}
}

// MeetingStep is a meeting at start. durationMin 0 leaves the duration unset.
func MeetingStep(id string, start time.Time, durationMin int) domain.Step {
	return domain.Step{
		ID:       id,
		Title:    "Meeting " + id,
		Required: true,
		Content: domain.MeetingContent{MeetingDetails: domain.MeetingDetails{
			Start:       start,
			DurationMin: durationMin,
			Tool:        "zoom",
		}},
	}
}

// Employee options
type EmployeeOption func(*domain.Employee)

func WithEmail(email string) EmployeeOption {
	return func(e *domain.Employee) {
		e.Email = email
	}
}

func WithPosition(p string) EmployeeOption {
	return func(e *domain.Employee) {
		e.Position = p
	}
}

func NewTestEmployee(name string, opts ...EmployeeOption) *domain.Employee {
	now := time.Now().UTC().Truncate(time.Second)
	e := &domain.Employee{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Assignment options
type AssignmentOption func(*domain.TrackAssignment)

func WithMentor(id string) AssignmentOption {
	return func(a *domain.TrackAssignment) {
		a.MentorID = &id
	}
}

func WithStartDate(d time.Time) AssignmentOption {
	return func(a *domain.TrackAssignment) {
		a.StartDate = d
	}
}

func NewTestAssignment(employeeID, trackID string, opts ...AssignmentOption) *domain.TrackAssignment {
	now := time.Now().UTC().Truncate(time.Second)
	a := &domain.TrackAssignment{
		EmployeeID:   employeeID,
		TrackID:      trackID,
		StartDate:    time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		StepProgress: domain.StepProgress{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Event options
type EventOption func(*domain.CalendarEvent)

func WithStage(stageID string) EventOption {
	return func(e *domain.CalendarEvent) {
		e.StageID = &stageID
	}
}

func WithEventStatus(s domain.EventStatus) EventOption {
	return func(e *domain.CalendarEvent) {
		e.Status = s
	}
}

func WithEventSource(s domain.EventSource) EventOption {
	return func(e *domain.CalendarEvent) {
		e.Source = s
	}
}

func WithParticipants(p ...string) EventOption {
	return func(e *domain.CalendarEvent) {
		e.Participants = p
	}
}

// NewTestEvent builds a one-hour local event starting at start.
func NewTestEvent(employeeID, title string, start time.Time, opts ...EventOption) *domain.CalendarEvent {
	e := &domain.CalendarEvent{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		Title:      title,
		Start:      start,
		End:        start.Add(time.Hour),
		Status:     domain.EventScheduled,
		Source:     domain.SourceLocal,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
