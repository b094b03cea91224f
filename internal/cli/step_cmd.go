package cli

import (
	"fmt"

	"github.com/alexanderramin/adapta/internal/tracking"
	"github.com/spf13/cobra"
)

func newStepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Record step progress",
	}

	cmd.AddCommand(
		newStepMarkCmd(app, "done", "Mark a step completed", true),
		newStepMarkCmd(app, "undo", "Mark a step not completed", false),
		newStepSurveyCmd(app),
	)

	return cmd
}

func newStepMarkCmd(app *App, use, short string, completed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " EMPLOYEE TRACK STEP",
		Short: short,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			empID, trackID, err := resolveEmployeeAndTrack(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			a, err := app.stepProgressUseCase().UpdateStepProgress(ctx, empID, trackID, args[2], completed)
			if err != nil {
				return err
			}
			track, err := app.Tracks.GetByID(ctx, trackID)
			if err != nil {
				return err
			}
			p := tracking.Aggregate(track, a.StepProgress)
			state := "completed"
			if !completed {
				state = "not completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Step %s %s (%d/%d, %d%%)\n", args[2], state, p.Completed, p.Total, p.Percent)
			return nil
		},
	}
}

func newStepSurveyCmd(app *App) *cobra.Command {
	var answers map[string]string

	cmd := &cobra.Command{
		Use:   "survey EMPLOYEE TRACK STEP",
		Short: "Submit survey answers and complete the step",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			empID, trackID, err := resolveEmployeeAndTrack(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			if _, err := app.stepProgressUseCase().SubmitSurvey(ctx, empID, trackID, args[2], answers); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Survey %s submitted with %d answers\n", args[2], len(answers))
			return nil
		},
	}

	cmd.Flags().StringToStringVar(&answers, "answer", nil, "Answer as question=value (repeatable)")

	return cmd
}
