package cli

import (
	"github.com/dori/constructtrack/internal/model"
	"github.com/dori/constructtrack/internal/panel"
	"github.com/spf13/cobra"
)

var entryHeaders = []string{"ID", "TASK", "START", "END", "DURATION"}

func newEntriesCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Time entry commands",
	}
	cmd.AddCommand(newEntriesListCmd(opts))
	return cmd
}

func newEntriesListCmd(opts *Options) *cobra.Command {
	var projectID string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent time entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, opts, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			if err := loadScoped(cmd, a, projectID); err != nil {
				return writeErr(cmd, err)
			}

			entries := a.Panel.Recent()
			if all {
				entries = a.Panel.State().Entries
			}
			return writeOut(cmd, opts, entries, entryHeaders, entryRows(entries))
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Only entries of this project's tasks")
	cmd.Flags().BoolVar(&all, "all", false, "Show every entry instead of the most recent")
	return cmd
}

func entryRows(entries []model.TimeEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		duration := "running..."
		if e.DurationSec != nil {
			duration = panel.FormatDuration(*e.DurationSec)
		}
		rows = append(rows, []string{e.ID, "Task " + panel.ShortID(e.TaskID), deref(e.StartTime), deref(e.EndTime), duration})
	}
	return rows
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
