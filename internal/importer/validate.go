package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/adapta/internal/domain"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if schema.Track.Title == "" {
		errs = append(errs, fmt.Errorf("track.title is required"))
	}

	refs := make(map[string]bool)
	stepIDs := make(map[string]string)
	for i, m := range schema.Milestones {
		path := fmt.Sprintf("milestones[%d]", i)
		errs = append(errs, validateMilestone(path, &m, refs)...)
		for j, s := range m.Steps {
			stepPath := fmt.Sprintf("%s.steps[%d]", path, j)
			if s.ID != "" {
				if prev, dup := stepIDs[s.ID]; dup {
					errs = append(errs, fmt.Errorf("%s: duplicate step id %q (first used at %s)", stepPath, s.ID, prev))
				} else {
					stepIDs[s.ID] = stepPath
				}
			}
			errs = append(errs, validateStep(stepPath, &s)...)
		}
	}

	return errs
}

func validateMilestone(path string, m *MilestoneImport, refs map[string]bool) []error {
	var errs []error
	if m.Title == "" {
		errs = append(errs, fmt.Errorf("%s.title is required", path))
	}
	if m.Ref != "" {
		if refs[m.Ref] {
			errs = append(errs, fmt.Errorf("%s: duplicate milestone ref %q", path, m.Ref))
		}
		refs[m.Ref] = true
	}
	if m.EndDate != nil {
		if _, err := time.Parse(dateLayout, *m.EndDate); err != nil {
			errs = append(errs, fmt.Errorf("%s.end_date: invalid date format %q (expected YYYY-MM-DD)", path, *m.EndDate))
		}
	}
	return errs
}

func validateStep(path string, s *StepImport) []error {
	var errs []error
	if s.ID == "" {
		errs = append(errs, fmt.Errorf("%s.id is required", path))
	}
	if s.Title == "" {
		errs = append(errs, fmt.Errorf("%s.title is required", path))
	}

	switch domain.StepType(s.Type) {
	case domain.StepMeeting:
		if s.Meeting == nil {
			errs = append(errs, fmt.Errorf("%s: meeting step requires a meeting block", path))
		}
	case domain.StepTask:
	case domain.StepSurvey:
		seen := make(map[string]bool, len(s.Questions))
		for _, q := range s.Questions {
			if q == "" {
				errs = append(errs, fmt.Errorf("%s.questions: empty question key", path))
				continue
			}
			if seen[q] {
				errs = append(errs, fmt.Errorf("%s.questions: duplicate question key %q", path, q))
			}
			seen[q] = true
		}
	case domain.StepPresentation:
	default:
		errs = append(errs, fmt.Errorf("%s.type: invalid value %q", path, s.Type))
	}

	if s.Meeting != nil {
		if t := domain.StepType(s.Type); t != domain.StepMeeting && t != domain.StepTask {
			errs = append(errs, fmt.Errorf("%s: meeting block is only allowed on meeting and task steps", path))
		}
		errs = append(errs, validateMeeting(path+".meeting", s.Meeting)...)
	}
	if len(s.Questions) > 0 && s.Type != string(domain.StepSurvey) {
		errs = append(errs, fmt.Errorf("%s: questions are only allowed on survey steps", path))
	}
	if s.URL != "" && s.Type != string(domain.StepPresentation) {
		errs = append(errs, fmt.Errorf("%s: url is only allowed on presentation steps", path))
	}
	return errs
}

func validateMeeting(path string, m *MeetingImport) []error {
	var errs []error
	if _, err := parseMeetingStart(m, time.UTC); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", path, err))
	}
	// Omit duration_min for the default length; zero-length meetings are rejected.
	if m.DurationMin != nil && *m.DurationMin < 1 {
		errs = append(errs, fmt.Errorf("%s.duration_min must be >= 1, got %d", path, *m.DurationMin))
	}
	return errs
}

// parseMeetingStart resolves date and optional time into an instant. Dates
// without an offset are interpreted in loc.
func parseMeetingStart(m *MeetingImport, loc *time.Location) (time.Time, error) {
	if m.Date == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if ts, err := time.Parse(time.RFC3339, m.Date); err == nil {
		if m.Time != "" {
			return time.Time{}, fmt.Errorf("time %q cannot be combined with timestamp date %q", m.Time, m.Date)
		}
		return ts, nil
	}
	day, err := time.ParseInLocation(dateLayout, m.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or RFC3339)", m.Date)
	}
	if m.Time == "" {
		return day, nil
	}
	clock, err := time.Parse(timeLayout, m.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (expected HH:MM)", m.Time)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
}
