package domain

import (
	"fmt"
	"net/mail"
	"time"
)

type Employee struct {
	ID        string
	Name      string
	Email     string
	Position  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks required employee fields.
func (e *Employee) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("employee name is required")
	}
	if e.Email != "" {
		if _, err := mail.ParseAddress(e.Email); err != nil {
			return fmt.Errorf("employee email %q is invalid", e.Email)
		}
	}
	return nil
}

// TrackAssignment binds an employee to a track with a start date and an
// optional mentor. StepProgress holds the employee's completion records for
// this track. The assignment status is derived from the track and
// StepProgress by tracking.DeriveStatus.
type TrackAssignment struct {
	EmployeeID   string
	TrackID      string
	StartDate    time.Time
	MentorID     *string
	StepProgress StepProgress
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
