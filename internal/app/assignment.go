package app

import "time"

// AssignTrackRequest carries the (track, start date, mentor) triple for
// assigning or updating a track on an employee.
type AssignTrackRequest struct {
	EmployeeID string
	TrackID    string
	StartDate  time.Time
	MentorID   *string
}
