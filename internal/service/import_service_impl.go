package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/adapta/internal/app"
	"github.com/alexanderramin/adapta/internal/db"
	"github.com/alexanderramin/adapta/internal/importer"
	"github.com/alexanderramin/adapta/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	loc      *time.Location
	observer UseCaseObserver
}

// NewImportService builds the track importer. Meeting dates without an
// offset are interpreted in loc.
func NewImportService(uow db.UnitOfWork, loc *time.Location, observers ...UseCaseObserver) ImportService {
	if loc == nil {
		loc = time.UTC
	}
	return &importService{uow: uow, loc: loc, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportTrack(ctx context.Context, filePath string, replace bool) (*app.ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema, replace)
}

func (s *importService) ImportTrackFromSchema(ctx context.Context, schema *importer.ImportSchema, replace bool) (*app.ImportResult, error) {
	return s.importSchema(ctx, schema, replace)
}

// importSchema stores the converted track. An existing track with the same
// ID is replaced only when replace is set; progress recorded against step
// IDs that survive the replacement still counts.
func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema, replace bool) (result *app.ImportResult, err error) {
	fields := map[string]any{"track_id": schema.Track.ID, "replace": replace}
	defer record(ctx, s.observer, "import-track", time.Now().UTC(), fields, &err)

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	track, err := importer.Convert(schema, s.loc)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}
	fields["track_id"] = track.ID
	fields["step_count"] = track.StepCount()

	result = &app.ImportResult{
		Track:          track,
		MilestoneCount: len(track.Milestones),
		StepCount:      track.StepCount(),
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		tracks := repository.NewSQLiteTrackRepo(tx)
		existing, err := tracks.GetByID(ctx, track.ID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return tracks.Create(ctx, track)
		case err != nil:
			return err
		case !replace:
			return fmt.Errorf("track %s: %w (use --replace to overwrite)", track.ID, ErrTrackExists)
		}
		track.CreatedAt = existing.CreatedAt
		result.Replaced = true
		return tracks.Replace(ctx, track)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
