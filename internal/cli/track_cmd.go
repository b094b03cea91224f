package cli

import (
	"fmt"

	"github.com/alexanderramin/adapta/internal/cli/formatter"
	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/spf13/cobra"
)

func newTrackCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Manage onboarding tracks",
	}

	cmd.AddCommand(
		newTrackImportCmd(app),
		newTrackListCmd(app),
		newTrackShowCmd(app),
		newTrackRemoveCmd(app),
	)

	return cmd
}

func newTrackImportCmd(app *App) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a track from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.importTrackUseCase().ImportTrack(cmd.Context(), args[0], replace)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatImportResult(result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Replace an existing track with the same ID")

	return cmd
}

func newTrackListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tracks, err := app.Tracks.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(tracks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tracks found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTrackList(tracks))
			return nil
		},
	}
}

func newTrackShowCmd(app *App) *cobra.Command {
	var employee string

	cmd := &cobra.Command{
		Use:   "show TRACK",
		Short: "Show a track's milestones and steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			trackID, err := resolveTrackID(ctx, app, args[0])
			if err != nil {
				return err
			}
			track, err := app.Tracks.GetByID(ctx, trackID)
			if err != nil {
				return err
			}

			var progress domain.StepProgress
			if employee != "" {
				empID, err := resolveEmployeeID(ctx, app, employee)
				if err != nil {
					return err
				}
				a, err := app.Assignments.Get(ctx, empID, trackID)
				if err != nil {
					return err
				}
				progress = a.StepProgress
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTrackDetail(track, progress))
			return nil
		},
	}

	cmd.Flags().StringVar(&employee, "employee", "", "Mark the steps this employee completed")

	return cmd
}

func newTrackRemoveCmd(app *App) *cobra.Command {
	var force, yes bool

	cmd := &cobra.Command{
		Use:   "remove TRACK",
		Short: "Delete a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			trackID, err := resolveTrackID(ctx, app, args[0])
			if err != nil {
				return err
			}
			desc := "The track and its milestones and steps are deleted."
			if force {
				desc = "Assignments and recorded progress on this track are deleted too."
			}
			ok, err := app.confirmDestructive(cmd, yes, fmt.Sprintf("Delete track %s?", trackID), desc)
			if err != nil || !ok {
				return err
			}
			if err := app.Tracks.Delete(ctx, trackID, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed track %s\n", trackID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete even if the track is assigned")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
