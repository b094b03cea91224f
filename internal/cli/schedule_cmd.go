package cli

import (
	"fmt"

	"github.com/alexanderramin/adapta/internal/app"
	"github.com/alexanderramin/adapta/internal/cli/formatter"
	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/spf13/cobra"
)

func newScheduleCmd(a *App) *cobra.Command {
	var track, window, at string

	cmd := &cobra.Command{
		Use:   "schedule EMPLOYEE",
		Short: "Show the employee's onboarding calendar",
		Long: `Show track meetings merged with stored and Google Calendar events.
An external event carrying a step's stage ID replaces that step's meeting.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w, err := domain.ParseTimeWindow(window)
			if err != nil {
				return err
			}

			req := app.NewScheduleRequest("")
			req.Window = w
			req.Location = a.location()
			if req.EmployeeID, err = resolveEmployeeID(ctx, a, args[0]); err != nil {
				return err
			}
			if track != "" {
				if req.TrackID, err = resolveTrackID(ctx, a, track); err != nil {
					return err
				}
			}
			if at != "" {
				now, err := parseDateTime(at, a.location())
				if err != nil {
					return err
				}
				req.Now = &now
			}

			resp, err := a.scheduleUseCase().Schedule(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchedule(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&track, "track", "", "Limit to one track")
	cmd.Flags().StringVar(&window, "window", "all", "Time window: past, today, upcoming or all")
	cmd.Flags().StringVar(&at, "at", "", "Evaluate the window at this time instead of now")

	return cmd
}
