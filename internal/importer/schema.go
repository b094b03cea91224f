package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a track import document.
type ImportSchema struct {
	Track      TrackImport       `json:"track"`
	Milestones []MilestoneImport `json:"milestones"`
}

// TrackImport defines the track-level fields. ID is optional; when set,
// importing the same document again addresses the same track.
type TrackImport struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type MilestoneImport struct {
	Ref         string       `json:"ref,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	EndDate     *string      `json:"end_date,omitempty"`
	Steps       []StepImport `json:"steps"`
}

// StepImport defines one step. Which content fields apply depends on Type:
// meeting requires Meeting, task may carry Meeting, survey uses Questions
// and presentation uses URL.
type StepImport struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Required    *bool          `json:"required,omitempty"`
	Type        string         `json:"type"`
	Meeting     *MeetingImport `json:"meeting,omitempty"`
	Questions   []string       `json:"questions,omitempty"`
	URL         string         `json:"url,omitempty"`
}

// MeetingImport is a meeting slot. Date is YYYY-MM-DD (combined with Time
// when given) or a full RFC3339 timestamp.
type MeetingImport struct {
	Date         string   `json:"date"`
	Time         string   `json:"time,omitempty"`
	DurationMin  *int     `json:"duration_min,omitempty"`
	Location     string   `json:"location,omitempty"`
	Tool         string   `json:"tool,omitempty"`
	Participants []string `json:"participants,omitempty"`
}

// LoadImportSchema reads a track document from path. Files ending in .yaml
// or .yml are parsed as YAML, everything else as JSON.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	return ParseImportSchema(data, ext == ".yaml" || ext == ".yml")
}

// ParseImportSchema decodes a track document and checks it against the
// document JSON Schema. Semantic checks are left to ValidateImportSchema.
func ParseImportSchema(data []byte, isYAML bool) (*ImportSchema, error) {
	if isYAML {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing YAML import file: %w", err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("converting YAML import file: %w", err)
		}
		data = converted
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("decoding import file: %w", err)
	}
	return &schema, nil
}
