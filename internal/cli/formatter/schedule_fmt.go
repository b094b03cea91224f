package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/adapta/internal/app"
	"github.com/alexanderramin/adapta/internal/domain"
)

// FormatSchedule renders the reconciled schedule grouped by day. Times are
// shown in the location of resp.GeneratedAt.
func FormatSchedule(resp *app.ScheduleResponse) string {
	var b strings.Builder
	now := resp.GeneratedAt
	b.WriteString(Header(fmt.Sprintf("Schedule · %s", resp.Window)) + "\n")

	if len(resp.Days) == 0 {
		b.WriteString(Dim("No events.") + "\n")
	}
	for _, day := range resp.Days {
		fmt.Fprintf(&b, "\n%s %s\n", Bold(day.Date.Format("Mon Jan 2")), Dim("· "+RelativeDay(day.Date, now)))
		for _, ev := range day.Events {
			b.WriteString("  " + FormatEventLine(ev, now.Location()) + "\n")
		}
	}

	if len(resp.Overridden) > 0 {
		b.WriteString("\n" + Dim("rescheduled from track: "+strings.Join(resp.Overridden, ", ")) + "\n")
	}
	for _, w := range resp.Warnings {
		b.WriteString(StyleYellow.Render("warning: "+w) + "\n")
	}
	return b.String()
}

// FormatEventLine renders one event as "09:00–10:00  Title  [source] status  where".
func FormatEventLine(ev domain.CalendarEvent, loc *time.Location) string {
	span := fmt.Sprintf("%s–%s", ev.Start.In(loc).Format("15:04"), ev.End.In(loc).Format("15:04"))
	title := ev.Title
	if ev.Status == domain.EventCancelled {
		title = StyleDim.Strikethrough(true).Render(title)
	}
	parts := []string{StyleFg.Render(span), title, "[" + SourceBadge(ev.Source) + "]", EventStatusPill(ev.Status)}
	if where := eventWhere(ev); where != "" {
		parts = append(parts, Dim(where))
	}
	return strings.Join(parts, "  ")
}

func eventWhere(ev domain.CalendarEvent) string {
	switch {
	case ev.MeetingURL != "":
		return ev.MeetingURL
	case ev.Location != "" && ev.MeetingType != "":
		return ev.Location + " / " + ev.MeetingType
	case ev.Location != "":
		return ev.Location
	default:
		return ev.MeetingType
	}
}

// FormatEventList renders stored events as a table with times in loc.
func FormatEventList(events []*domain.CalendarEvent, loc *time.Location) string {
	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		rows = append(rows, []string{
			ev.ID,
			ev.Start.In(loc).Format("2006-01-02 15:04"),
			FormatMinutes(int(ev.End.Sub(ev.Start).Minutes())),
			ev.Title,
			orDash(ev.Stage()),
			EventStatusPill(ev.Status),
		})
	}
	return RenderTable([]string{"ID", "START", "LENGTH", "TITLE", "STAGE", "STATUS"}, rows)
}
