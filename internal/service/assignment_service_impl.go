package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/alexanderramin/adapta/internal/app"
	"github.com/alexanderramin/adapta/internal/db"
	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/alexanderramin/adapta/internal/repository"
)

type assignmentService struct {
	assignments repository.AssignmentRepo
	uow         db.UnitOfWork
	observer    UseCaseObserver
}

// NewAssignmentService builds the assignment manager. Every write runs in
// its own transaction so a reassignment and its progress reset commit
// together.
func NewAssignmentService(
	assignments repository.AssignmentRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *assignmentService) AssignTrack(ctx context.Context, req app.AssignTrackRequest) (a *domain.TrackAssignment, err error) {
	defer record(ctx, s.observer, "assign-track", time.Now().UTC(), map[string]any{
		"employee_id": req.EmployeeID,
		"track_id":    req.TrackID,
	}, &err)

	if req.StartDate.IsZero() {
		return nil, fmt.Errorf("start date is required")
	}
	req.MentorID = normalizeID(req.MentorID)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txAssignments := repository.NewSQLiteAssignmentRepo(tx)
		if err := resolveParticipants(ctx, tx, req); err != nil {
			return err
		}

		now := nowUTC()
		a = &domain.TrackAssignment{
			EmployeeID:   req.EmployeeID,
			TrackID:      req.TrackID,
			StartDate:    req.StartDate,
			MentorID:     req.MentorID,
			StepProgress: domain.StepProgress{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if existing, err := txAssignments.Get(ctx, req.EmployeeID, req.TrackID); err == nil {
			a.CreatedAt = existing.CreatedAt
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		if err := txAssignments.Upsert(ctx, a); err != nil {
			return err
		}
		return txAssignments.ClearProgress(ctx, req.EmployeeID, req.TrackID)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateTrack changes start date and mentor of an existing assignment and
// leaves its progress intact. A zero StartDate keeps the current date; a nil
// MentorID keeps the current mentor and a pointer to "" clears it.
func (s *assignmentService) UpdateTrack(ctx context.Context, req app.AssignTrackRequest) (a *domain.TrackAssignment, err error) {
	defer record(ctx, s.observer, "update-track", time.Now().UTC(), map[string]any{
		"employee_id": req.EmployeeID,
		"track_id":    req.TrackID,
	}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txAssignments := repository.NewSQLiteAssignmentRepo(tx)

		existing, err := txAssignments.Get(ctx, req.EmployeeID, req.TrackID)
		if err != nil {
			return notAssigned(err, req.EmployeeID, req.TrackID)
		}
		if !req.StartDate.IsZero() {
			existing.StartDate = req.StartDate
		}
		if req.MentorID != nil {
			existing.MentorID = normalizeID(req.MentorID)
		}
		if err := checkMentor(ctx, tx, req.EmployeeID, existing.MentorID); err != nil {
			return err
		}
		existing.UpdatedAt = nowUTC()
		if err := txAssignments.UpdateMeta(ctx, existing); err != nil {
			return err
		}
		a = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assignmentService) RemoveTrack(ctx context.Context, employeeID, trackID string) (err error) {
	defer record(ctx, s.observer, "remove-track", time.Now().UTC(), map[string]any{
		"employee_id": employeeID,
		"track_id":    trackID,
	}, &err)

	if err = s.assignments.Delete(ctx, employeeID, trackID); err != nil {
		return notAssigned(err, employeeID, trackID)
	}
	return nil
}

func (s *assignmentService) Get(ctx context.Context, employeeID, trackID string) (*domain.TrackAssignment, error) {
	a, err := s.assignments.Get(ctx, employeeID, trackID)
	if err != nil {
		return nil, notAssigned(err, employeeID, trackID)
	}
	return a, nil
}

func (s *assignmentService) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.TrackAssignment, error) {
	return s.assignments.ListByEmployee(ctx, employeeID)
}

func (s *assignmentService) MarkStepCompleted(ctx context.Context, employeeID, trackID, stepID string) (*domain.TrackAssignment, error) {
	return s.UpdateStepProgress(ctx, employeeID, trackID, stepID, true)
}

func (s *assignmentService) MarkStepIncomplete(ctx context.Context, employeeID, trackID, stepID string) (*domain.TrackAssignment, error) {
	return s.UpdateStepProgress(ctx, employeeID, trackID, stepID, false)
}

// UpdateStepProgress sets the completion flag of one step. Writing the value
// the step already has leaves the stored entry untouched. Un-completing a
// step drops its survey answers.
func (s *assignmentService) UpdateStepProgress(ctx context.Context, employeeID, trackID, stepID string, completed bool) (a *domain.TrackAssignment, err error) {
	defer record(ctx, s.observer, "update-step-progress", time.Now().UTC(), map[string]any{
		"employee_id": employeeID,
		"track_id":    trackID,
		"step_id":     stepID,
		"completed":   completed,
	}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		current, _, err := loadAssignedStep(ctx, tx, employeeID, trackID, stepID)
		if err != nil {
			return err
		}
		a = current
		if current.StepProgress.IsCompleted(stepID) == completed {
			return nil
		}

		entry := current.StepProgress[stepID]
		entry.Completed = completed
		if !completed {
			entry.Answers = nil
		}
		entry.UpdatedAt = nowUTC()
		if err := repository.NewSQLiteAssignmentRepo(tx).SetStepProgress(ctx, employeeID, trackID, stepID, entry); err != nil {
			return err
		}
		a.StepProgress = current.StepProgress.With(stepID, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// SubmitSurvey completes a survey step and stores its answers. Every answer
// key must be one of the step's question keys.
func (s *assignmentService) SubmitSurvey(ctx context.Context, employeeID, trackID, stepID string, answers map[string]string) (a *domain.TrackAssignment, err error) {
	defer record(ctx, s.observer, "submit-survey", time.Now().UTC(), map[string]any{
		"employee_id": employeeID,
		"track_id":    trackID,
		"step_id":     stepID,
		"answers":     len(answers),
	}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		current, step, err := loadAssignedStep(ctx, tx, employeeID, trackID, stepID)
		if err != nil {
			return err
		}
		if step.Type() != domain.StepSurvey {
			return fmt.Errorf("step %q is a %s step, not a survey", stepID, step.Type())
		}
		questions := step.Questions()
		for key := range answers {
			if !slices.Contains(questions, key) {
				return fmt.Errorf("question %q is not part of step %q: %w", key, stepID, ErrInvalidAnswers)
			}
		}

		entry := domain.StepProgressEntry{
			Completed: true,
			Answers:   answers,
			UpdatedAt: nowUTC(),
		}
		if err := repository.NewSQLiteAssignmentRepo(tx).SetStepProgress(ctx, employeeID, trackID, stepID, entry); err != nil {
			return err
		}
		current.StepProgress = current.StepProgress.With(stepID, entry)
		a = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// loadAssignedStep loads the assignment and checks that stepID belongs to
// the assigned track.
func loadAssignedStep(ctx context.Context, tx db.DBTX, employeeID, trackID, stepID string) (*domain.TrackAssignment, domain.Step, error) {
	a, err := repository.NewSQLiteAssignmentRepo(tx).Get(ctx, employeeID, trackID)
	if err != nil {
		return nil, domain.Step{}, notAssigned(err, employeeID, trackID)
	}
	track, err := repository.NewSQLiteTrackRepo(tx).GetByID(ctx, trackID)
	if err != nil {
		return nil, domain.Step{}, err
	}
	step, ok := track.StepByID(stepID)
	if !ok {
		return nil, domain.Step{}, fmt.Errorf("step %q in track %q: %w", stepID, track.Title, ErrStepNotInTrack)
	}
	return a, step, nil
}

// resolveParticipants checks that the employee, the track and the optional
// mentor exist.
func resolveParticipants(ctx context.Context, tx db.DBTX, req app.AssignTrackRequest) error {
	if _, err := repository.NewSQLiteEmployeeRepo(tx).GetByID(ctx, req.EmployeeID); err != nil {
		return err
	}
	if _, err := repository.NewSQLiteTrackRepo(tx).GetByID(ctx, req.TrackID); err != nil {
		return err
	}
	return checkMentor(ctx, tx, req.EmployeeID, req.MentorID)
}

func checkMentor(ctx context.Context, tx db.DBTX, employeeID string, mentorID *string) error {
	if mentorID == nil {
		return nil
	}
	if *mentorID == employeeID {
		return fmt.Errorf("employee cannot mentor themselves")
	}
	if _, err := repository.NewSQLiteEmployeeRepo(tx).GetByID(ctx, *mentorID); err != nil {
		return fmt.Errorf("mentor: %w", err)
	}
	return nil
}
