package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/alexanderramin/adapta/internal/repository"
)

type trackService struct {
	tracks      repository.TrackRepo
	assignments repository.AssignmentRepo
}

func NewTrackService(tracks repository.TrackRepo, assignments repository.AssignmentRepo) TrackService {
	return &trackService{tracks: tracks, assignments: assignments}
}

func (s *trackService) GetByID(ctx context.Context, id string) (*domain.Track, error) {
	return s.tracks.GetByID(ctx, id)
}

func (s *trackService) List(ctx context.Context) ([]*domain.Track, error) {
	return s.tracks.List(ctx)
}

// Delete removes a track. A track that is still assigned is only deleted
// with force, which also drops the assignments and their progress.
func (s *trackService) Delete(ctx context.Context, id string, force bool) error {
	if !force {
		assigned, err := s.assignments.ListByTrack(ctx, id)
		if err != nil {
			return err
		}
		if len(assigned) > 0 {
			return fmt.Errorf("track is assigned to %d employee(s) (use --force to delete anyway)", len(assigned))
		}
	}
	return s.tracks.Delete(ctx, id)
}
