package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGCalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gcal",
		Short: "Google Calendar integration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "login",
		Short: "Authorize read access to Google Calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.GCalLogin == nil {
				return fmt.Errorf("google calendar is not configured (set ADAPTA_GCAL_CREDENTIALS)")
			}
			return app.GCalLogin(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	})

	return cmd
}
