package cli

import (
	"fmt"

	"github.com/alexanderramin/adapta/internal/app"
	"github.com/alexanderramin/adapta/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProgressCmd(a *App) *cobra.Command {
	var track string

	cmd := &cobra.Command{
		Use:   "progress EMPLOYEE",
		Short: "Show onboarding progress and status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req := app.ProgressRequest{}
			var err error
			if req.EmployeeID, err = resolveEmployeeID(ctx, a, args[0]); err != nil {
				return err
			}
			if track != "" {
				if req.TrackID, err = resolveTrackID(ctx, a, track); err != nil {
					return err
				}
			}
			resp, err := a.progressUseCase().Overview(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProgress(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&track, "track", "", "Limit to one track")

	return cmd
}
