package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/adapta/internal/app"
	"github.com/alexanderramin/adapta/internal/domain"
)

const barWidth = 20

// FormatProgress renders an employee's onboarding overview: one block per
// assigned track with its milestone breakdown.
func FormatProgress(resp *app.ProgressResponse) string {
	var b strings.Builder
	b.WriteString(Header("Onboarding · "+resp.EmployeeName) + "\n")
	if len(resp.Assignments) == 0 {
		b.WriteString(Dim("No tracks assigned.") + "\n")
		return b.String()
	}

	for i, a := range resp.Assignments {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  %s\n", Bold(a.TrackTitle), StatusPill(a.Status))
		fmt.Fprintf(&b, "  %s  %d/%d steps\n", RenderProgress(a.Progress.Percent, barWidth), a.Progress.Completed, a.Progress.Total)

		meta := []string{"started " + a.StartDate.Format("2006-01-02")}
		if a.MentorName != "" {
			meta = append(meta, "mentor "+a.MentorName)
		} else if a.MentorID != nil {
			meta = append(meta, "mentor "+TruncID(*a.MentorID))
		}
		b.WriteString("  " + Dim(strings.Join(meta, " · ")) + "\n")

		for _, m := range a.Milestones {
			mark := StyleDim.Render("○")
			if m.RequiredMet {
				mark = StyleGreen.Render("✔")
			}
			fmt.Fprintf(&b, "    %s %-24s %s\n", mark, m.Title, RenderProgress(m.Progress.Percent, barWidth/2))
		}
		if len(a.StaleStepIDs) > 0 {
			b.WriteString("  " + StyleYellow.Render("ignored progress for removed steps: "+strings.Join(a.StaleStepIDs, ", ")) + "\n")
		}
	}
	return b.String()
}

// FormatAssignmentList renders an employee's assignments as a table.
// titles maps track IDs to titles; unknown tracks show their ID.
func FormatAssignmentList(assignments []*domain.TrackAssignment, titles map[string]string) string {
	rows := make([][]string, 0, len(assignments))
	for _, a := range assignments {
		title := titles[a.TrackID]
		if title == "" {
			title = a.TrackID
		}
		mentor := ""
		if a.MentorID != nil {
			mentor = TruncID(*a.MentorID)
		}
		rows = append(rows, []string{
			a.TrackID,
			title,
			a.StartDate.Format("2006-01-02"),
			orDash(mentor),
			fmt.Sprintf("%d", len(a.StepProgress.CompletedIDs())),
		})
	}
	return RenderTable([]string{"TRACK", "TITLE", "START", "MENTOR", "DONE"}, rows)
}

// FormatAssignment confirms an assign or update.
func FormatAssignment(verb string, a *domain.TrackAssignment, employeeName, trackTitle string) string {
	msg := fmt.Sprintf("%s %s to %s starting %s", verb, Bold(trackTitle), employeeName, a.StartDate.Format("2006-01-02"))
	if a.MentorID != nil {
		msg += " (mentor " + TruncID(*a.MentorID) + ")"
	}
	return msg
}
