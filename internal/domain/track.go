package domain

import (
	"fmt"
	"time"
)

// Track is an onboarding plan: an ordered list of milestones, each holding
// an ordered list of steps. A Track value is read-only once loaded; edits
// produce a new Track.
type Track struct {
	ID          string
	Title       string
	Description string
	Milestones  []Milestone
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Milestone struct {
	ID          string
	Title       string
	Description string
	EndDate     *time.Time
	Steps       []Step
}

// Step is the smallest unit of onboarding work. Content carries the
// type-specific payload and determines the step type.
type Step struct {
	ID          string
	Title       string
	Description string
	Required    bool
	Content     StepContent
}

// StepContent is the closed set of step payloads: TaskContent,
// SurveyContent, PresentationContent and MeetingContent.
type StepContent interface {
	StepType() StepType
	isStepContent()
}

// MeetingDetails describes a scheduled meeting slot.
// DurationMin is zero when the duration was not specified.
type MeetingDetails struct {
	Start        time.Time
	DurationMin  int
	Location     string
	Tool         string
	Participants []string
}

// TaskContent is a task, optionally carrying an embedded meeting.
type TaskContent struct {
	Meeting *MeetingDetails
}

// SurveyContent lists the question keys answered when the step is completed.
type SurveyContent struct {
	Questions []string
}

// PresentationContent is informational; it has no behavioral fields.
type PresentationContent struct {
	URL string
}

type MeetingContent struct {
	MeetingDetails
}

func (TaskContent) StepType() StepType         { return StepTask }
func (SurveyContent) StepType() StepType       { return StepSurvey }
func (PresentationContent) StepType() StepType { return StepPresentation }
func (MeetingContent) StepType() StepType      { return StepMeeting }

func (TaskContent) isStepContent()         {}
func (SurveyContent) isStepContent()       {}
func (PresentationContent) isStepContent() {}
func (MeetingContent) isStepContent()      {}

// Type returns the step type, or "" when the step has no content.
func (s Step) Type() StepType {
	if s.Content == nil {
		return ""
	}
	return s.Content.StepType()
}

// Meeting returns the meeting slot carried by a meeting step or by a task
// with an embedded meeting.
func (s Step) Meeting() (MeetingDetails, bool) {
	switch c := s.Content.(type) {
	case MeetingContent:
		return c.MeetingDetails, true
	case TaskContent:
		if c.Meeting != nil {
			return *c.Meeting, true
		}
		return MeetingDetails{}, false
	case SurveyContent, PresentationContent:
		return MeetingDetails{}, false
	default:
		return MeetingDetails{}, false
	}
}

// Questions returns the survey question keys, or nil for non-survey steps.
func (s Step) Questions() []string {
	if c, ok := s.Content.(SurveyContent); ok {
		return c.Questions
	}
	return nil
}

// Steps flattens all steps across milestones, preserving milestone then step order.
func (t *Track) Steps() []Step {
	if t == nil {
		return nil
	}
	var steps []Step
	for _, m := range t.Milestones {
		steps = append(steps, m.Steps...)
	}
	return steps
}

// StepCount returns the number of steps across all milestones.
func (t *Track) StepCount() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, m := range t.Milestones {
		n += len(m.Steps)
	}
	return n
}

// StepByID looks up a step by identifier.
func (t *Track) StepByID(id string) (Step, bool) {
	if t == nil {
		return Step{}, false
	}
	for _, m := range t.Milestones {
		for _, s := range m.Steps {
			if s.ID == id {
				return s, true
			}
		}
	}
	return Step{}, false
}

// MilestoneForStep returns the milestone containing the given step.
func (t *Track) MilestoneForStep(stepID string) (Milestone, bool) {
	if t == nil {
		return Milestone{}, false
	}
	for _, m := range t.Milestones {
		for _, s := range m.Steps {
			if s.ID == stepID {
				return m, true
			}
		}
	}
	return Milestone{}, false
}

// HasStep reports whether stepID belongs to the track.
func (t *Track) HasStep(stepID string) bool {
	_, ok := t.StepByID(stepID)
	return ok
}

// Validate checks that the track has a title and that step identifiers
// are non-empty, typed and unique within the track.
func (t *Track) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("track title is required")
	}
	seen := make(map[string]bool)
	for _, m := range t.Milestones {
		for _, s := range m.Steps {
			if s.ID == "" {
				return fmt.Errorf("milestone %q: step id is required", m.Title)
			}
			if s.Content == nil {
				return fmt.Errorf("step %q: content is required", s.ID)
			}
			if seen[s.ID] {
				return fmt.Errorf("duplicate step id %q", s.ID)
			}
			seen[s.ID] = true
		}
	}
	return nil
}
