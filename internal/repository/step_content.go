package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/adapta/internal/domain"
)

// meetingRecord is the JSON shape of a meeting slot inside steps.content.
type meetingRecord struct {
	Start        string   `json:"start,omitempty"`
	DurationMin  int      `json:"duration_min,omitempty"`
	Location     string   `json:"location,omitempty"`
	Tool         string   `json:"tool,omitempty"`
	Participants []string `json:"participants,omitempty"`
}

// contentRecord is the union of all step payload fields. Which fields are
// meaningful depends on steps.type.
type contentRecord struct {
	Meeting   *meetingRecord `json:"meeting,omitempty"`
	Questions []string       `json:"questions,omitempty"`
	URL       string         `json:"url,omitempty"`
}

func toMeetingRecord(m domain.MeetingDetails) *meetingRecord {
	rec := &meetingRecord{
		DurationMin:  m.DurationMin,
		Location:     m.Location,
		Tool:         m.Tool,
		Participants: m.Participants,
	}
	if !m.Start.IsZero() {
		rec.Start = m.Start.Format(time.RFC3339)
	}
	return rec
}

func (rec *meetingRecord) details() (domain.MeetingDetails, error) {
	m := domain.MeetingDetails{
		DurationMin:  rec.DurationMin,
		Location:     rec.Location,
		Tool:         rec.Tool,
		Participants: rec.Participants,
	}
	if rec.Start != "" {
		start, err := time.Parse(time.RFC3339, rec.Start)
		if err != nil {
			return domain.MeetingDetails{}, fmt.Errorf("parsing meeting start: %w", err)
		}
		m.Start = start
	}
	return m, nil
}

// encodeStepContent returns the type column and JSON payload for a step.
func encodeStepContent(c domain.StepContent) (string, string, error) {
	var rec contentRecord
	switch v := c.(type) {
	case domain.TaskContent:
		if v.Meeting != nil {
			rec.Meeting = toMeetingRecord(*v.Meeting)
		}
	case domain.SurveyContent:
		rec.Questions = v.Questions
	case domain.PresentationContent:
		rec.URL = v.URL
	case domain.MeetingContent:
		rec.Meeting = toMeetingRecord(v.MeetingDetails)
	default:
		return "", "", fmt.Errorf("unsupported step content %T", c)
	}
	payload, err := marshalJSONColumn(rec)
	if err != nil {
		return "", "", fmt.Errorf("encoding step content: %w", err)
	}
	return string(c.StepType()), payload, nil
}

func decodeStepContent(typ, payload string) (domain.StepContent, error) {
	var rec contentRecord
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, fmt.Errorf("decoding %s step content: %w", typ, err)
		}
	}
	switch domain.StepType(typ) {
	case domain.StepTask:
		var c domain.TaskContent
		if rec.Meeting != nil {
			m, err := rec.Meeting.details()
			if err != nil {
				return nil, err
			}
			c.Meeting = &m
		}
		return c, nil
	case domain.StepSurvey:
		return domain.SurveyContent{Questions: rec.Questions}, nil
	case domain.StepPresentation:
		return domain.PresentationContent{URL: rec.URL}, nil
	case domain.StepMeeting:
		var m domain.MeetingDetails
		if rec.Meeting != nil {
			var err error
			if m, err = rec.Meeting.details(); err != nil {
				return nil, err
			}
		}
		return domain.MeetingContent{MeetingDetails: m}, nil
	default:
		return nil, fmt.Errorf("unknown step type %q", typ)
	}
}
