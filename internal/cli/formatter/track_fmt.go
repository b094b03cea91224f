package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/adapta/internal/app"
	"github.com/alexanderramin/adapta/internal/domain"
)

// FormatTrackList renders the track catalogue as a table.
func FormatTrackList(tracks []*domain.Track) string {
	rows := make([][]string, 0, len(tracks))
	for _, t := range tracks {
		rows = append(rows, []string{
			t.ID,
			t.Title,
			strconv.Itoa(len(t.Milestones)),
			strconv.Itoa(t.StepCount()),
		})
	}
	return RenderTable([]string{"ID", "TITLE", "MILESTONES", "STEPS"}, rows)
}

// FormatTrackDetail renders a track as a milestone/step tree. Steps found
// completed in progress are checked; pass nil for a plain catalogue view.
func FormatTrackDetail(track *domain.Track, progress domain.StepProgress) string {
	var b strings.Builder
	b.WriteString(Header(track.Title) + "\n")
	if track.Description != "" {
		b.WriteString(Dim(track.Description) + "\n")
	}
	b.WriteString(fmt.Sprintf("%s %s\n\n", Dim("id:"), track.ID))

	var items []TreeItem
	for _, m := range track.Milestones {
		detail := ""
		if m.EndDate != nil {
			detail = "due " + m.EndDate.Format("Jan 2")
		}
		items = append(items, TreeItem{Title: m.Title, Detail: detail})
		for i, s := range m.Steps {
			items = append(items, TreeItem{
				Title:  fmt.Sprintf("%s %s", s.Title, Dim("("+s.ID+")")),
				Level:  1,
				IsLast: i == len(m.Steps)-1,
				Done:   progress.IsCompleted(s.ID),
				Detail: stepDetail(s),
			})
		}
	}
	b.WriteString(RenderTree(items))
	return b.String()
}

func stepDetail(s domain.Step) string {
	parts := []string{string(s.Type())}
	if !s.Required {
		parts = append(parts, "optional")
	}
	if slot, ok := s.Meeting(); ok && !slot.Start.IsZero() {
		parts = append(parts, slot.Start.Format("Jan 2 15:04"))
	}
	return strings.Join(parts, " · ")
}

// FormatImportResult summarizes a track import.
func FormatImportResult(res *app.ImportResult) string {
	verb := "Imported"
	if res.Replaced {
		verb = "Replaced"
	}
	return fmt.Sprintf("%s track %s [%s]: %d milestones, %d steps",
		verb, Bold(res.Track.Title), res.Track.ID, res.MilestoneCount, res.StepCount)
}
