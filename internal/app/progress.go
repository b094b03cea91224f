package app

import (
	"time"

	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/alexanderramin/adapta/internal/tracking"
)

// ProgressRequest selects an employee and optionally narrows the view to
// one assigned track.
type ProgressRequest struct {
	EmployeeID string
	TrackID    string
}

type AssignmentProgressView struct {
	TrackID    string
	TrackTitle string
	StartDate  time.Time
	MentorID   *string
	MentorName string
	Progress   tracking.Progress
	Status     domain.AssignmentStatus
	Milestones []tracking.MilestoneProgress
	// StaleStepIDs lists progress entries whose step is no longer in the track.
	StaleStepIDs []string
}

type ProgressResponse struct {
	EmployeeID   string
	EmployeeName string
	Assignments  []AssignmentProgressView
}
