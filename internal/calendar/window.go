package calendar

import (
	"time"

	"github.com/alexanderramin/adapta/internal/domain"
)

// DayGroup holds the events starting on one calendar date.
type DayGroup struct {
	Date   time.Time // midnight of the day, in the grouping location
	Events []domain.CalendarEvent
}

// Key returns the group date as YYYY-MM-DD.
func (g DayGroup) Key() string {
	return g.Date.Format("2006-01-02")
}

// Filter returns the events that fall into window relative to now. "today"
// compares calendar dates in now's location, not instants. The input slice
// is not modified.
func Filter(events []domain.CalendarEvent, window domain.TimeWindow, now time.Time) []domain.CalendarEvent {
	out := make([]domain.CalendarEvent, 0, len(events))
	for _, ev := range events {
		if InWindow(ev, window, now) {
			out = append(out, ev)
		}
	}
	return out
}

// InWindow reports whether a single event belongs to window.
func InWindow(ev domain.CalendarEvent, window domain.TimeWindow, now time.Time) bool {
	switch window {
	case domain.WindowPast:
		return ev.End.Before(now)
	case domain.WindowToday:
		return SameDay(ev.Start, now, now.Location())
	case domain.WindowUpcoming:
		return ev.Start.After(now)
	default:
		return true
	}
}

// SameDay reports whether a and b fall on the same calendar date in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	y1, m1, d1 := a.In(loc).Date()
	y2, m2, d2 := b.In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// GroupByDate groups events by the calendar date of their start in loc.
// Groups are ascending by date and events keep chronological order within
// a day. Every input event appears in exactly one group.
func GroupByDate(events []domain.CalendarEvent, loc *time.Location) []DayGroup {
	if loc == nil {
		loc = time.Local
	}
	sorted := append([]domain.CalendarEvent(nil), events...)
	SortByStart(sorted)

	var groups []DayGroup
	for _, ev := range sorted {
		start := ev.Start.In(loc)
		day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
		if n := len(groups); n > 0 && groups[n-1].Date.Equal(day) {
			groups[n-1].Events = append(groups[n-1].Events, ev)
			continue
		}
		groups = append(groups, DayGroup{Date: day, Events: []domain.CalendarEvent{ev}})
	}
	return groups
}
