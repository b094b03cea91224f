package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/adapta/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func adaptaHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorRed).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func confirmForm(title, description string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(adaptaHuhTheme()).WithShowHelp(false)
}

// huhConfirm asks on the command's streams. Without a terminal on stdin the
// form runs in accessible mode, which reads a plain y/n line.
func huhConfirm(cmd *cobra.Command, title, description string) (bool, error) {
	var ok bool
	form := confirmForm(title, description, &ok).
		WithInput(cmd.InOrStdin()).
		WithOutput(cmd.ErrOrStderr())
	if f, isFile := cmd.InOrStdin().(*os.File); !isFile || !isatty.IsTerminal(f.Fd()) {
		form = form.WithAccessible(true)
	}
	if err := form.RunWithContext(cmd.Context()); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation prompt: %w", err)
	}
	return ok, nil
}

// confirmDestructive gates commands that discard progress or cascade
// deletes. --yes skips the prompt. A declined prompt prints "Cancelled."
// and reports false.
func (a *App) confirmDestructive(cmd *cobra.Command, yes bool, title, description string) (bool, error) {
	if yes {
		return true, nil
	}
	confirm := a.Confirm
	if confirm == nil {
		confirm = huhConfirm
	}
	ok, err := confirm(cmd, title, description)
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
	}
	return ok, nil
}
