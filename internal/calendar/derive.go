package calendar

import (
	"time"

	"github.com/alexanderramin/adapta/internal/domain"
)

// DefaultMeetingDuration applies to meeting steps that do not specify one.
const DefaultMeetingDuration = 60 * time.Minute

// TrackEventColor is the display color of events derived from track steps.
const TrackEventColor = "#83a598"

// DeriveOptions tunes track event derivation.
type DeriveOptions struct {
	// DefaultDuration replaces DefaultMeetingDuration when positive.
	DefaultDuration time.Duration
	// EmployeeID is stamped on every derived event.
	EmployeeID string
}

// DeriveTrackEvents projects the track's meeting steps, and tasks carrying an
// embedded meeting, into calendar events. Each event uses the step ID as both
// its ID and its StageID. Events are returned in track order.
//
// Derivation is pure: the same track and progress always produce the same events.
func DeriveTrackEvents(track *domain.Track, progress domain.StepProgress, opts DeriveOptions) []domain.CalendarEvent {
	defaultDur := opts.DefaultDuration
	if defaultDur <= 0 {
		defaultDur = DefaultMeetingDuration
	}

	var events []domain.CalendarEvent
	for _, step := range track.Steps() {
		slot, ok := meetingSlot(step)
		if !ok {
			continue
		}

		dur := defaultDur
		if slot.DurationMin > 0 {
			dur = time.Duration(slot.DurationMin) * time.Minute
		}

		status := domain.EventScheduled
		if progress.IsCompleted(step.ID) {
			status = domain.EventCompleted
		}

		stageID := step.ID
		events = append(events, domain.CalendarEvent{
			ID:           step.ID,
			EmployeeID:   opts.EmployeeID,
			Title:        step.Title,
			Description:  step.Description,
			Start:        slot.Start,
			End:          slot.Start.Add(dur),
			Location:     slot.Location,
			MeetingType:  slot.Tool,
			Participants: append([]string(nil), slot.Participants...),
			Color:        TrackEventColor,
			Status:       status,
			StageID:      &stageID,
			Source:       domain.SourceTrack,
		})
	}
	return events
}

// meetingSlot selects the steps that produce events. The switch is kept
// exhaustive over step content so a new step type has to be decided here.
func meetingSlot(step domain.Step) (domain.MeetingDetails, bool) {
	switch c := step.Content.(type) {
	case domain.MeetingContent:
		if c.Start.IsZero() {
			return domain.MeetingDetails{}, false
		}
		return c.MeetingDetails, true
	case domain.TaskContent:
		if c.Meeting == nil || c.Meeting.Start.IsZero() {
			return domain.MeetingDetails{}, false
		}
		return *c.Meeting, true
	case domain.SurveyContent, domain.PresentationContent:
		return domain.MeetingDetails{}, false
	default:
		return domain.MeetingDetails{}, false
	}
}
