package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/adapta/internal/cli/formatter"
	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/spf13/cobra"
)

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage locally stored calendar events",
	}

	cmd.AddCommand(
		newEventAddCmd(app),
		newEventListCmd(app),
		newEventRemoveCmd(app),
		newEventStatusCmd(app),
	)

	return cmd
}

func newEventAddCmd(app *App) *cobra.Command {
	var title, description, start, stage, location, tool, url string
	var durationMin int
	var participants []string

	cmd := &cobra.Command{
		Use:   "add EMPLOYEE",
		Short: "Add an event; --stage reschedules the matching track step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			empID, err := resolveEmployeeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			startAt, err := parseDateTime(start, app.location())
			if err != nil {
				return err
			}

			ev := &domain.CalendarEvent{
				EmployeeID:   empID,
				Title:        title,
				Description:  description,
				Start:        startAt,
				Location:     location,
				MeetingType:  tool,
				MeetingURL:   url,
				Participants: participants,
				StageID:      domain.StrPtrOrNil(stage),
			}
			if durationMin < 0 {
				return fmt.Errorf("duration must not be negative")
			}
			if durationMin > 0 {
				ev.End = startAt.Add(time.Duration(durationMin) * time.Minute)
			}
			if err := app.Events.Create(ctx, ev); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added event %s [%s]\n", ev.Title, ev.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Event title")
	cmd.Flags().StringVar(&description, "description", "", "Event description")
	cmd.Flags().StringVar(&start, "start", "", "Start (YYYY-MM-DD HH:MM or RFC3339)")
	cmd.Flags().IntVar(&durationMin, "duration", 0, "Duration in minutes (default meeting length when 0)")
	cmd.Flags().StringVar(&stage, "stage", "", "Step ID this event replaces")
	cmd.Flags().StringVar(&location, "location", "", "Location")
	cmd.Flags().StringVar(&tool, "tool", "", "Meeting tool, e.g. zoom")
	cmd.Flags().StringVar(&url, "url", "", "Meeting link")
	cmd.Flags().StringSliceVar(&participants, "participant", nil, "Participant (repeatable)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newEventListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list EMPLOYEE",
		Short: "List stored events of an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			empID, err := resolveEmployeeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			events, err := app.Events.ListByEmployee(ctx, empID)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No events found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEventList(events, app.location()))
			return nil
		},
	}
}

func newEventRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a stored event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Events.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed event %s\n", args[0])
			return nil
		},
	}
}

func newEventStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "status ID STATUS",
		Short:     "Set an event's status (scheduled, completed, cancelled)",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"scheduled", "completed", "cancelled"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := app.Events.SetStatus(cmd.Context(), args[0], domain.EventStatus(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Event %s is now %s\n", ev.Title, ev.Status)
			return nil
		},
	}
}
