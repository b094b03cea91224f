package cli

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/adapta/internal/app"
	"github.com/alexanderramin/adapta/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services used by CLI commands.
type App struct {
	Tracks      service.TrackService
	Employees   service.EmployeeService
	Assignments service.AssignmentService
	Progress    service.ProgressService
	Schedule    service.ScheduleService
	Events      service.EventService
	Import      service.ImportService

	// Use-case ports. When nil the matching service above is used.
	AssignTrack  app.AssignTrackUseCase
	StepProgress app.StepProgressUseCase
	ImportTrack  app.ImportTrackUseCase
	ProgressView app.ProgressUseCase
	ScheduleView app.ScheduleUseCase

	// Location interprets dates typed on the command line and renders times.
	Location *time.Location
	// GCalLogin runs the Google Calendar authorization flow; nil when the
	// feed is not configured.
	GCalLogin func(ctx context.Context, in io.Reader, out io.Writer) error
	// Confirm asks before destructive commands; nil uses a huh prompt on
	// the command's streams.
	Confirm func(cmd *cobra.Command, title, description string) (bool, error)
}

// NewRootCmd creates the top-level "adapta" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "adapta",
		Short:         "Employee onboarding tracks, progress and schedules",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTrackCmd(app),
		newEmployeeCmd(app),
		newAssignCmd(app),
		newAssignmentCmd(app),
		newStepCmd(app),
		newProgressCmd(app),
		newEventCmd(app),
		newScheduleCmd(app),
		newGCalCmd(app),
	)

	return root
}

func (a *App) location() *time.Location {
	if a.Location != nil {
		return a.Location
	}
	return time.Local
}
