package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/adapta/internal/app"
	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/alexanderramin/adapta/internal/repository"
	"github.com/alexanderramin/adapta/internal/tracking"
)

type progressService struct {
	employees   repository.EmployeeRepo
	tracks      repository.TrackRepo
	assignments repository.AssignmentRepo
}

func NewProgressService(
	employees repository.EmployeeRepo,
	tracks repository.TrackRepo,
	assignments repository.AssignmentRepo,
) ProgressService {
	return &progressService{employees: employees, tracks: tracks, assignments: assignments}
}

func (s *progressService) GetProgress(ctx context.Context, employeeID, trackID string) (tracking.Progress, error) {
	a, track, err := s.load(ctx, employeeID, trackID)
	if err != nil {
		return tracking.Progress{}, err
	}
	return tracking.Aggregate(track, a.StepProgress), nil
}

func (s *progressService) GetStatus(ctx context.Context, employeeID, trackID string) (domain.AssignmentStatus, error) {
	a, track, err := s.load(ctx, employeeID, trackID)
	if err != nil {
		return "", err
	}
	return tracking.DeriveStatus(track, a.StepProgress), nil
}

func (s *progressService) load(ctx context.Context, employeeID, trackID string) (*domain.TrackAssignment, *domain.Track, error) {
	a, err := s.assignments.Get(ctx, employeeID, trackID)
	if err != nil {
		return nil, nil, notAssigned(err, employeeID, trackID)
	}
	track, err := s.tracks.GetByID(ctx, trackID)
	if err != nil {
		return nil, nil, err
	}
	return a, track, nil
}

// Overview reports progress, status and the per-milestone breakdown of
// every track assigned to the employee, or of req.TrackID alone.
func (s *progressService) Overview(ctx context.Context, req app.ProgressRequest) (*app.ProgressResponse, error) {
	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	var assignments []*domain.TrackAssignment
	if req.TrackID != "" {
		a, err := s.assignments.Get(ctx, req.EmployeeID, req.TrackID)
		if err != nil {
			return nil, notAssigned(err, req.EmployeeID, req.TrackID)
		}
		assignments = []*domain.TrackAssignment{a}
	} else {
		assignments, err = s.assignments.ListByEmployee(ctx, req.EmployeeID)
		if err != nil {
			return nil, err
		}
	}

	resp := &app.ProgressResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Assignments:  make([]app.AssignmentProgressView, 0, len(assignments)),
	}
	mentorNames := make(map[string]string)
	for _, a := range assignments {
		track, err := s.tracks.GetByID(ctx, a.TrackID)
		if err != nil {
			return nil, fmt.Errorf("loading track %s: %w", a.TrackID, err)
		}
		view := app.AssignmentProgressView{
			TrackID:      track.ID,
			TrackTitle:   track.Title,
			StartDate:    a.StartDate,
			MentorID:     a.MentorID,
			Progress:     tracking.Aggregate(track, a.StepProgress),
			Status:       tracking.DeriveStatus(track, a.StepProgress),
			Milestones:   tracking.AggregateMilestones(track, a.StepProgress),
			StaleStepIDs: tracking.StaleEntries(track, a.StepProgress),
		}
		if a.MentorID != nil {
			name, ok := mentorNames[*a.MentorID]
			if !ok {
				if mentor, err := s.employees.GetByID(ctx, *a.MentorID); err == nil {
					name = mentor.Name
				}
				mentorNames[*a.MentorID] = name
			}
			view.MentorName = name
		}
		resp.Assignments = append(resp.Assignments, view)
	}
	return resp, nil
}
