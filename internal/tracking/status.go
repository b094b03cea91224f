package tracking

import "github.com/alexanderramin/adapta/internal/domain"

// DeriveStatus computes the assignment status from the assigned track and the
// employee's step progress. A nil track means nothing is assigned.
//
// The result depends only on its inputs: there is no stored state to move
// between values, so calling it repeatedly yields the same answer.
func DeriveStatus(track *domain.Track, progress domain.StepProgress) domain.AssignmentStatus {
	if track == nil {
		return domain.StatusNotStarted
	}
	return StatusFor(Aggregate(track, progress))
}

// StatusFor maps an aggregate onto a status.
func StatusFor(p Progress) domain.AssignmentStatus {
	switch {
	case p.Completed == 0:
		return domain.StatusNotStarted
	case p.Total > 0 && p.Completed >= p.Total:
		return domain.StatusCompleted
	default:
		return domain.StatusInProgress
	}
}
