package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/google/uuid"
)

// Convert transforms a validated ImportSchema into a Track ready for
// persistence. Meeting dates without an offset are placed in loc.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema, loc *time.Location) (*domain.Track, error) {
	if loc == nil {
		loc = time.UTC
	}
	now := time.Now().UTC().Truncate(time.Second)

	track := &domain.Track{
		ID:          schema.Track.ID,
		Title:       schema.Track.Title,
		Description: schema.Track.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if track.ID == "" {
		track.ID = uuid.New().String()
	}

	track.Milestones = make([]domain.Milestone, 0, len(schema.Milestones))
	for _, mi := range schema.Milestones {
		m := domain.Milestone{
			ID:          mi.Ref,
			Title:       mi.Title,
			Description: mi.Description,
		}
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		if mi.EndDate != nil {
			end, err := time.Parse(dateLayout, *mi.EndDate)
			if err != nil {
				return nil, fmt.Errorf("parsing end_date of milestone %q: %w", mi.Title, err)
			}
			m.EndDate = &end
		}
		for _, si := range mi.Steps {
			content, err := convertContent(&si, loc)
			if err != nil {
				return nil, fmt.Errorf("step %q: %w", si.ID, err)
			}
			m.Steps = append(m.Steps, domain.Step{
				ID:          si.ID,
				Title:       si.Title,
				Description: si.Description,
				Required:    domain.BoolFromPtrWithDefault(true, si.Required),
				Content:     content,
			})
		}
		track.Milestones = append(track.Milestones, m)
	}

	if err := track.Validate(); err != nil {
		return nil, err
	}
	return track, nil
}

func convertContent(s *StepImport, loc *time.Location) (domain.StepContent, error) {
	switch domain.StepType(s.Type) {
	case domain.StepTask:
		var c domain.TaskContent
		if s.Meeting != nil {
			m, err := convertMeeting(s.Meeting, loc)
			if err != nil {
				return nil, err
			}
			c.Meeting = &m
		}
		return c, nil
	case domain.StepSurvey:
		return domain.SurveyContent{Questions: s.Questions}, nil
	case domain.StepPresentation:
		return domain.PresentationContent{URL: s.URL}, nil
	case domain.StepMeeting:
		if s.Meeting == nil {
			return nil, fmt.Errorf("meeting step without meeting block")
		}
		m, err := convertMeeting(s.Meeting, loc)
		if err != nil {
			return nil, err
		}
		return domain.MeetingContent{MeetingDetails: m}, nil
	default:
		return nil, fmt.Errorf("unknown step type %q", s.Type)
	}
}

func convertMeeting(mi *MeetingImport, loc *time.Location) (domain.MeetingDetails, error) {
	start, err := parseMeetingStart(mi, loc)
	if err != nil {
		return domain.MeetingDetails{}, err
	}
	return domain.MeetingDetails{
		Start:        start,
		DurationMin:  domain.IntFromPtrWithDefault(0, mi.DurationMin),
		Location:     mi.Location,
		Tool:         mi.Tool,
		Participants: mi.Participants,
	}, nil
}
