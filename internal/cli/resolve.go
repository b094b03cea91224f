package cli

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// resolveEmployeeID accepts an exact ID, an email address, a full name
// (case-insensitive) or an unambiguous ID prefix.
func resolveEmployeeID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("employee is required")
	}
	employees, err := app.Employees.List(ctx)
	if err != nil {
		return "", err
	}

	for _, e := range employees {
		if e.ID == input {
			return e.ID, nil
		}
	}
	var named []string
	for _, e := range employees {
		if (e.Email != "" && strings.EqualFold(e.Email, input)) || strings.EqualFold(e.Name, input) {
			named = append(named, e.ID)
		}
	}
	if len(named) == 1 {
		return named[0], nil
	}
	if len(named) > 1 {
		return "", fmt.Errorf("employee %q is ambiguous (%d matches, use the ID)", input, len(named))
	}

	var matches []string
	for _, e := range employees {
		if strings.HasPrefix(e.ID, input) {
			matches = append(matches, e.ID)
		}
	}
	return pickOne("employee", input, matches)
}

// resolveTrackID accepts an exact ID, a title (case-insensitive) or an
// unambiguous ID prefix.
func resolveTrackID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("track is required")
	}
	tracks, err := app.Tracks.List(ctx)
	if err != nil {
		return "", err
	}

	for _, t := range tracks {
		if t.ID == input {
			return t.ID, nil
		}
	}
	for _, t := range tracks {
		if strings.EqualFold(t.Title, input) {
			return t.ID, nil
		}
	}
	var matches []string
	for _, t := range tracks {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}
	return pickOne("track", input, matches)
}

func pickOne(kind, input string, matches []string) (string, error) {
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

// resolveEmployeeAndTrack resolves the common "EMPLOYEE TRACK" argument pair.
func resolveEmployeeAndTrack(ctx context.Context, app *App, emp, track string) (string, string, error) {
	empID, err := resolveEmployeeID(ctx, app, emp)
	if err != nil {
		return "", "", err
	}
	trackID, err := resolveTrackID(ctx, app, track)
	if err != nil {
		return "", "", err
	}
	return empID, trackID, nil
}

var dateTimeLayouts = []string{"2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"}

// parseDateTime reads RFC3339 or a local "YYYY-MM-DD[ HH:MM]" in loc.
func parseDateTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date/time %q (use YYYY-MM-DD HH:MM or RFC3339)", s)
}

// parseDate reads a YYYY-MM-DD calendar date as midnight UTC.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return t, nil
}
