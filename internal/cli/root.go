// Package cli wires the cobra command tree. Without a subcommand it starts
// the TUI; the subcommands are scriptable wrappers over the same panel.
package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/constructtrack/internal/app"
	"github.com/dori/constructtrack/internal/config"
	"github.com/dori/constructtrack/internal/logging"
	"github.com/dori/constructtrack/internal/ui"
	"github.com/dori/constructtrack/internal/ui/theme"
	"github.com/spf13/cobra"
)

// Version is reported by the version subcommand
var Version = "0.1.0"

// Options holds the persistent flag values
type Options struct {
	ConfigFile string
	BackendURL string
	Theme      string
	JSON       bool
}

func NewRootCmd() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:           "constructtrack",
		Short:         "ConstructTrack: time tracking for construction projects and tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive panel
  constructtrack

  # Point at a different backend
  constructtrack --backend-url https://api.example.com

  # Scriptable commands
  constructtrack projects create "Tower A"
  constructtrack tasks create "Pour slab" --project <project-id>
  constructtrack timer toggle <task-id>
  constructtrack entries list --json
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if err := runTUI(cmd, opts); err != nil {
					return writeErr(cmd, err)
				}
				return nil
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "Config file (default $XDG_CONFIG_HOME/constructtrack/constructtrack.yml)")
	cmd.PersistentFlags().StringVar(&opts.BackendURL, "backend-url", "", "Backend API base URL (overrides CONSTRUCTTRACK_BACKEND_URL)")
	cmd.PersistentFlags().StringVar(&opts.Theme, "theme", "", "Theme name (slate, nord, dracula, gruvbox, catppuccin)")
	cmd.PersistentFlags().BoolVar(&opts.JSON, "json", false, "Print JSON instead of tables")

	cmd.AddCommand(newProjectsCmd(opts))
	cmd.AddCommand(newTasksCmd(opts))
	cmd.AddCommand(newTimerCmd(opts))
	cmd.AddCommand(newEntriesCmd(opts))
	cmd.AddCommand(newThemeCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadApp reads configuration and opens the application. Only the TUI takes
// the single-instance lock.
func loadApp(cmd *cobra.Command, opts *Options, interactive bool) (*app.App, error) {
	cfg, err := config.Load(opts.ConfigFile, cmd.Root().PersistentFlags())
	if err != nil {
		return nil, err
	}
	if opts.Theme != "" {
		if _, ok := theme.ByName(opts.Theme); !ok {
			return nil, errUnknownTheme(opts.Theme)
		}
	}
	logging.Debugf("cli: %s backend=%s", cmd.CommandPath(), cfg.BackendURL)
	return app.New(cfg, app.Options{Interactive: interactive})
}

func runTUI(cmd *cobra.Command, opts *Options) error {
	application, err := loadApp(cmd, opts, true)
	if err != nil {
		return err
	}
	defer application.Close()

	// An explicit --theme wins over the saved one and becomes the new default
	if opts.Theme != "" {
		if err := application.SaveTheme(opts.Theme); err != nil {
			logging.Debugf("cli: saving theme: %v", err)
		}
	}

	ctx := contextOf(cmd)
	p := tea.NewProgram(
		ui.NewRootModel(ctx, application),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "constructtrack v%s\n", Version)
			return err
		},
	}
}
