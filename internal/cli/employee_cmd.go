package cli

import (
	"fmt"

	"github.com/alexanderramin/adapta/internal/cli/formatter"
	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/spf13/cobra"
)

func newEmployeeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage employees",
	}

	cmd.AddCommand(
		newEmployeeAddCmd(app),
		newEmployeeListCmd(app),
		newEmployeeRemoveCmd(app),
	)

	return cmd
}

func newEmployeeAddCmd(app *App) *cobra.Command {
	var name, email, position string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := &domain.Employee{Name: name, Email: email, Position: position}
			if err := app.Employees.Create(cmd.Context(), e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added employee %s [%s]\n", e.Name, e.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address (used to match calendar invitations)")
	cmd.Flags().StringVar(&position, "position", "", "Job title")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newEmployeeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := app.Employees.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(employees) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No employees found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEmployeeList(employees))
			return nil
		},
	}
}

func newEmployeeRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove EMPLOYEE",
		Short: "Delete an employee with their assignments and events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveEmployeeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ok, err := app.confirmDestructive(cmd, yes, fmt.Sprintf("Delete employee %s?", id),
				"Their assignments, progress and stored events are deleted too.")
			if err != nil || !ok {
				return err
			}
			if err := app.Employees.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed employee %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
