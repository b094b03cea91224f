package calendar

import (
	"sort"

	"github.com/alexanderramin/adapta/internal/domain"
)

// Reconcile merges events derived from a track with an externally supplied
// event list. External events are authoritative: a derived event is dropped
// when any external event carries the same StageID. Events without a StageID
// never collide and always survive. External events whose StageID matches no
// derived event are kept as they are.
//
// Every StageID appears at most once in the result. If the external list
// itself holds several events for one stage, the earliest one (ties broken by
// ID) is kept, so the surviving set does not depend on input order.
//
// The result is sorted by start time, then by ID.
func Reconcile(derived, external []domain.CalendarEvent) []domain.CalendarEvent {
	external = dedupeByStage(external)

	overridden := make(map[string]bool, len(external))
	for _, ev := range external {
		if ev.HasStage() {
			overridden[ev.Stage()] = true
		}
	}

	merged := make([]domain.CalendarEvent, 0, len(derived)+len(external))
	merged = append(merged, external...)

	seen := make(map[string]bool, len(derived))
	for _, ev := range derived {
		if !ev.HasStage() {
			merged = append(merged, ev)
			continue
		}
		stage := ev.Stage()
		if overridden[stage] || seen[stage] {
			continue
		}
		seen[stage] = true
		merged = append(merged, ev)
	}

	SortByStart(merged)
	return merged
}

// SortByStart orders events by start time, then by ID.
func SortByStart(events []domain.CalendarEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return eventLess(events[i], events[j])
	})
}

func eventLess(a, b domain.CalendarEvent) bool {
	if !a.Start.Equal(b.Start) {
		return a.Start.Before(b.Start)
	}
	return a.ID < b.ID
}

// dedupeByStage keeps one event per StageID and every event without one.
func dedupeByStage(events []domain.CalendarEvent) []domain.CalendarEvent {
	best := make(map[string]int)
	out := make([]domain.CalendarEvent, 0, len(events))
	for _, ev := range events {
		if !ev.HasStage() {
			out = append(out, ev)
			continue
		}
		stage := ev.Stage()
		if idx, ok := best[stage]; ok {
			if eventLess(ev, out[idx]) {
				out[idx] = ev
			}
			continue
		}
		best[stage] = len(out)
		out = append(out, ev)
	}
	return out
}
