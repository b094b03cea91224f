package gcal

import (
	"fmt"
	"time"

	"github.com/alexanderramin/adapta/internal/domain"
	"google.golang.org/api/calendar/v3"
)

// Private extended properties linking a Google event back to adapta.
const (
	StageProperty    = "stage_id"
	EmployeeProperty = "employee_id"
)

// IDPrefix namespaces Google event IDs so they never collide with local ones.
const IDPrefix = "gcal:"

// palette maps Google event color IDs to their hex values.
var palette = map[string]string{
	"1":  "#7986cb",
	"2":  "#33b679",
	"3":  "#8e24aa",
	"4":  "#e67c73",
	"5":  "#f6bf26",
	"6":  "#f4511e",
	"7":  "#039be5",
	"8":  "#616161",
	"9":  "#3f51b5",
	"10": "#0b8043",
	"11": "#d50000",
}

// ToDomainEvent converts a Google event for employeeID. All-day events start
// at midnight in loc and end at midnight of their exclusive end date.
func ToDomainEvent(ev *calendar.Event, employeeID string, loc *time.Location) (domain.CalendarEvent, error) {
	start, err := parseEventTime(ev.Start, loc)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("event %s start: %w", ev.Id, err)
	}
	end, err := parseEventTime(ev.End, loc)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("event %s end: %w", ev.Id, err)
	}

	out := domain.CalendarEvent{
		ID:          IDPrefix + ev.Id,
		EmployeeID:  employeeID,
		Title:       ev.Summary,
		Description: ev.Description,
		Start:       start,
		End:         end,
		Location:    ev.Location,
		Color:       palette[ev.ColorId],
		Status:      domain.EventScheduled,
		Source:      domain.SourceGoogle,
	}
	if out.Title == "" {
		out.Title = "(no title)"
	}
	if ev.Status == "cancelled" {
		out.Status = domain.EventCancelled
	}
	if ev.ExtendedProperties != nil {
		out.StageID = domain.StrPtrOrNil(ev.ExtendedProperties.Private[StageProperty])
	}
	out.MeetingType, out.MeetingURL = meetingLink(ev)
	for _, a := range ev.Attendees {
		out.Participants = append(out.Participants, domain.CoalesceStr(a.Email, a.DisplayName))
	}
	if ev.Created != "" {
		if created, err := time.Parse(time.RFC3339, ev.Created); err == nil {
			out.CreatedAt = created.UTC()
		}
	}
	return out, nil
}

func parseEventTime(t *calendar.EventDateTime, loc *time.Location) (time.Time, error) {
	if t == nil {
		return time.Time{}, fmt.Errorf("missing time")
	}
	if t.DateTime != "" {
		return time.Parse(time.RFC3339, t.DateTime)
	}
	if t.Date != "" {
		return time.ParseInLocation("2006-01-02", t.Date, loc)
	}
	return time.Time{}, fmt.Errorf("neither dateTime nor date set")
}

func meetingLink(ev *calendar.Event) (string, string) {
	if ev.HangoutLink != "" {
		return "google_meet", ev.HangoutLink
	}
	if ev.ConferenceData != nil {
		for _, ep := range ev.ConferenceData.EntryPoints {
			if ep.EntryPointType == "video" {
				name := ""
				if ev.ConferenceData.ConferenceSolution != nil {
					name = ev.ConferenceData.ConferenceSolution.Name
				}
				return name, ep.Uri
			}
		}
	}
	return "", ""
}
