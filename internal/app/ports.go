package app

import (
	"context"

	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/alexanderramin/adapta/internal/importer"
)

type ProgressUseCase interface {
	Overview(ctx context.Context, req ProgressRequest) (*ProgressResponse, error)
}

type ScheduleUseCase interface {
	Schedule(ctx context.Context, req ScheduleRequest) (*ScheduleResponse, error)
}

type AssignTrackUseCase interface {
	AssignTrack(ctx context.Context, req AssignTrackRequest) (*domain.TrackAssignment, error)
	UpdateTrack(ctx context.Context, req AssignTrackRequest) (*domain.TrackAssignment, error)
	RemoveTrack(ctx context.Context, employeeID, trackID string) error
}

type StepProgressUseCase interface {
	UpdateStepProgress(ctx context.Context, employeeID, trackID, stepID string, completed bool) (*domain.TrackAssignment, error)
	SubmitSurvey(ctx context.Context, employeeID, trackID, stepID string, answers map[string]string) (*domain.TrackAssignment, error)
}

// ImportResult holds the outcome of a track import.
type ImportResult struct {
	Track          *domain.Track
	MilestoneCount int
	StepCount      int
	Replaced       bool
}

type ImportTrackUseCase interface {
	ImportTrack(ctx context.Context, filePath string, replace bool) (*ImportResult, error)
	ImportTrackFromSchema(ctx context.Context, schema *importer.ImportSchema, replace bool) (*ImportResult, error)
}
