package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a milestone/step tree. Level 0 is a milestone,
// level 1 a step.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	Done   bool
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree draws items with box-drawing connectors. Completed items get a
// green check and details are right-aligned as badges.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	width := 0
	for i, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}
		title := item.Title
		if item.Done {
			title = StyleGreen.Render("✔ ") + Dim(title)
		} else if item.Level > 0 {
			title = StyleDim.Render("○ ") + title
		} else {
			title = Bold(title)
		}
		contents[i] = prefix + title
		width = max(width, lipgloss.Width(contents[i]))
	}

	var b strings.Builder
	for i, item := range items {
		b.WriteString(contents[i])
		if item.Detail != "" {
			pad := width - lipgloss.Width(contents[i])
			b.WriteString(strings.Repeat(" ", pad+2))
			b.WriteString(StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
