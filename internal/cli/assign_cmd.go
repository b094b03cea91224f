package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/adapta/internal/app"
	"github.com/alexanderramin/adapta/internal/cli/formatter"
	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/alexanderramin/adapta/internal/service"
	"github.com/spf13/cobra"
)

func newAssignCmd(a *App) *cobra.Command {
	var start, mentor string
	var yes bool

	cmd := &cobra.Command{
		Use:     "assign EMPLOYEE TRACK",
		Aliases: []string{"reassign"},
		Short:   "Assign a track to an employee, resetting any previous progress",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			empID, trackID, err := resolveEmployeeAndTrack(ctx, a, args[0], args[1])
			if err != nil {
				return err
			}

			req := app.AssignTrackRequest{EmployeeID: empID, TrackID: trackID}
			if start == "" {
				now := time.Now().In(a.location())
				req.StartDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			} else if req.StartDate, err = parseDate(start); err != nil {
				return err
			}
			if mentor != "" {
				mentorID, err := resolveEmployeeID(ctx, a, mentor)
				if err != nil {
					return fmt.Errorf("mentor: %w", err)
				}
				req.MentorID = &mentorID
			}

			if done, err := recordedSteps(ctx, a, empID, trackID); err != nil {
				return err
			} else if done > 0 {
				ok, err := a.confirmDestructive(cmd, yes,
					fmt.Sprintf("Reassign track %s to %s?", trackID, empID),
					fmt.Sprintf("%d recorded step(s) will be discarded. Use 'assignment update' to keep them.", done))
				if err != nil || !ok {
					return err
				}
			}

			assignment, err := a.assignTrackUseCase().AssignTrack(ctx, req)
			if err != nil {
				return err
			}
			return printAssignment(ctx, cmd, a, "Assigned", assignment)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&mentor, "mentor", "", "Mentor (employee ID, email or name)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation when progress would be discarded")

	return cmd
}

func newAssignmentCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignment",
		Short: "Inspect and change track assignments",
	}

	cmd.AddCommand(
		newAssignmentUpdateCmd(a),
		newAssignmentRemoveCmd(a),
		newAssignmentListCmd(a),
	)

	return cmd
}

func newAssignmentUpdateCmd(a *App) *cobra.Command {
	var start, mentor string
	var noMentor bool

	cmd := &cobra.Command{
		Use:   "update EMPLOYEE TRACK",
		Short: "Change start date or mentor, keeping progress",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if mentor != "" && noMentor {
				return fmt.Errorf("--mentor and --no-mentor are mutually exclusive")
			}
			empID, trackID, err := resolveEmployeeAndTrack(ctx, a, args[0], args[1])
			if err != nil {
				return err
			}

			req := app.AssignTrackRequest{EmployeeID: empID, TrackID: trackID}
			if start != "" {
				if req.StartDate, err = parseDate(start); err != nil {
					return err
				}
			}
			switch {
			case noMentor:
				cleared := ""
				req.MentorID = &cleared
			case mentor != "":
				mentorID, err := resolveEmployeeID(ctx, a, mentor)
				if err != nil {
					return fmt.Errorf("mentor: %w", err)
				}
				req.MentorID = &mentorID
			}

			assignment, err := a.assignTrackUseCase().UpdateTrack(ctx, req)
			if err != nil {
				return err
			}
			return printAssignment(ctx, cmd, a, "Updated", assignment)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&mentor, "mentor", "", "New mentor (employee ID, email or name)")
	cmd.Flags().BoolVar(&noMentor, "no-mentor", false, "Remove the mentor")

	return cmd
}

func newAssignmentRemoveCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove EMPLOYEE TRACK",
		Short: "Unassign a track and drop its progress",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			empID, trackID, err := resolveEmployeeAndTrack(ctx, a, args[0], args[1])
			if err != nil {
				return err
			}
			ok, err := a.confirmDestructive(cmd, yes,
				fmt.Sprintf("Remove track %s from employee %s?", trackID, empID),
				"The assignment and its recorded progress are deleted.")
			if err != nil || !ok {
				return err
			}
			if err := a.assignTrackUseCase().RemoveTrack(ctx, empID, trackID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed track %s from employee %s\n", trackID, empID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

// recordedSteps counts progress entries an assignment would lose on
// reassignment; 0 when the track is not assigned yet.
func recordedSteps(ctx context.Context, a *App, employeeID, trackID string) (int, error) {
	if a.Assignments == nil {
		return 0, nil
	}
	existing, err := a.Assignments.Get(ctx, employeeID, trackID)
	if errors.Is(err, service.ErrNotAssigned) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return len(existing.StepProgress), nil
}

func newAssignmentListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list EMPLOYEE",
		Short: "List an employee's track assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			empID, err := resolveEmployeeID(ctx, a, args[0])
			if err != nil {
				return err
			}
			assignments, err := a.Assignments.ListByEmployee(ctx, empID)
			if err != nil {
				return err
			}
			if len(assignments) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tracks assigned.")
				return nil
			}
			titles := make(map[string]string, len(assignments))
			for _, as := range assignments {
				if t, err := a.Tracks.GetByID(ctx, as.TrackID); err == nil {
					titles[t.ID] = t.Title
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAssignmentList(assignments, titles))
			return nil
		},
	}
}

func printAssignment(ctx context.Context, cmd *cobra.Command, a *App, verb string, as *domain.TrackAssignment) error {
	emp, err := a.Employees.GetByID(ctx, as.EmployeeID)
	if err != nil {
		return err
	}
	track, err := a.Tracks.GetByID(ctx, as.TrackID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAssignment(verb, as, emp.Name, track.Title))
	return nil
}
