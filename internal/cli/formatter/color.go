package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusPill returns a colored indicator for an assignment status.
func StatusPill(status domain.AssignmentStatus) string {
	switch status {
	case domain.StatusCompleted:
		return StyleGreen.Render("✔ Completed")
	case domain.StatusInProgress:
		return StyleYellow.Render("● In progress")
	case domain.StatusNotStarted:
		return StyleBlue.Render("○ Not started")
	default:
		return StyleDim.Render(string(status))
	}
}

// EventStatusPill returns a colored indicator for a calendar event status.
func EventStatusPill(status domain.EventStatus) string {
	switch status {
	case domain.EventCompleted:
		return StyleGreen.Render("✔ done")
	case domain.EventCancelled:
		return StyleRed.Render("✖ cancelled")
	case domain.EventScheduled:
		return StyleBlue.Render("○ scheduled")
	default:
		return StyleDim.Render(string(status))
	}
}

// SourceBadge labels where an event came from.
func SourceBadge(source domain.EventSource) string {
	switch source {
	case domain.SourceTrack:
		return StylePurple.Render("track")
	case domain.SourceGoogle:
		return StyleBlue.Render("google")
	case domain.SourceLocal:
		return StyleFg.Render("local")
	default:
		return StyleDim.Render(string(source))
	}
}

// Header renders an upper-cased section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
