package cli

import (
	"fmt"

	"github.com/dori/constructtrack/internal/ui/theme"
	"github.com/spf13/cobra"
)

func newThemeCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the saved TUI theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, opts, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			current := a.ThemeName()
			var rows [][]string
			for _, t := range theme.Available() {
				mark := ""
				if t.Name == current {
					mark = "*"
				}
				rows = append(rows, []string{t.Name, mark})
			}
			return writeOut(cmd, opts, map[string]string{"theme": current}, []string{"THEME", "ACTIVE"}, rows)
		},
	}
	cmd.AddCommand(newThemeSetCmd(opts))
	cmd.AddCommand(newThemeResetCmd(opts))
	return cmd
}

func newThemeSetCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name>",
		Short: "Save a theme for the next TUI start",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := theme.ByName(args[0]); !ok {
				return writeErr(cmd, errUnknownTheme(args[0]))
			}
			a, err := loadApp(cmd, opts, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			if err := a.SaveTheme(args[0]); err != nil {
				return writeErr(cmd, fmt.Errorf("failed to save theme: %w", err))
			}
			return writeOut(cmd, opts, map[string]string{"theme": args[0]}, []string{"THEME"}, [][]string{{args[0]}})
		},
	}
}

func newThemeResetCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved theme and use the configured one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, opts, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			if err := a.ResetTheme(); err != nil {
				return writeErr(cmd, fmt.Errorf("failed to reset theme: %w", err))
			}
			name := a.ThemeName()
			return writeOut(cmd, opts, map[string]string{"theme": name}, []string{"THEME"}, [][]string{{name}})
		},
	}
}
