package app

import (
	"time"

	"github.com/alexanderramin/adapta/internal/calendar"
	"github.com/alexanderramin/adapta/internal/domain"
)

// ScheduleRequest asks for an employee's reconciled meeting schedule.
// An empty TrackID includes every assigned track. Now defaults to the
// current time; Location defaults to Now's location.
type ScheduleRequest struct {
	EmployeeID string
	TrackID    string
	Window     domain.TimeWindow
	Now        *time.Time
	Location   *time.Location
}

func NewScheduleRequest(employeeID string) ScheduleRequest {
	return ScheduleRequest{EmployeeID: employeeID, Window: domain.WindowAll}
}

type ScheduleResponse struct {
	EmployeeID  string
	Window      domain.TimeWindow
	GeneratedAt time.Time
	Days        []calendar.DayGroup
	EventCount  int
	// Overridden lists stage IDs whose track-derived event was replaced by
	// an external one.
	Overridden []string
	Warnings   []string
}
