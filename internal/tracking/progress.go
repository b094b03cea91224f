package tracking

import (
	"math"
	"slices"

	"github.com/alexanderramin/adapta/internal/domain"
)

// Progress is the completion aggregate of one track assignment.
type Progress struct {
	Completed int
	Total     int
	Percent   int
}

// MilestoneProgress is the completion aggregate of a single milestone.
type MilestoneProgress struct {
	MilestoneID string
	Title       string
	Progress    Progress
	RequiredMet bool
}

// Aggregate counts completed steps of the track. Total covers every step in
// every milestone; progress entries for steps no longer in the track are
// ignored.
func Aggregate(track *domain.Track, progress domain.StepProgress) Progress {
	var p Progress
	for _, s := range track.Steps() {
		p.Total++
		if progress.IsCompleted(s.ID) {
			p.Completed++
		}
	}
	p.Percent = Percent(p.Completed, p.Total)
	return p
}

// Percent returns round(completed/total*100), or 0 when total is 0.
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// AggregateMilestones breaks progress down per milestone, in track order.
// RequiredMet is true when every required step of the milestone is completed.
func AggregateMilestones(track *domain.Track, progress domain.StepProgress) []MilestoneProgress {
	if track == nil {
		return nil
	}
	out := make([]MilestoneProgress, 0, len(track.Milestones))
	for _, m := range track.Milestones {
		mp := MilestoneProgress{MilestoneID: m.ID, Title: m.Title, RequiredMet: true}
		for _, s := range m.Steps {
			mp.Progress.Total++
			done := progress.IsCompleted(s.ID)
			if done {
				mp.Progress.Completed++
			}
			if s.Required && !done {
				mp.RequiredMet = false
			}
		}
		mp.Progress.Percent = Percent(mp.Progress.Completed, mp.Progress.Total)
		out = append(out, mp)
	}
	return out
}

// StaleEntries returns progress keys that do not refer to a step of the
// track, sorted.
func StaleEntries(track *domain.Track, progress domain.StepProgress) []string {
	var stale []string
	for id := range progress {
		if !track.HasStep(id) {
			stale = append(stale, id)
		}
	}
	slices.Sort(stale)
	return stale
}
