package cli

import (
	"github.com/dori/constructtrack/internal/app"
	"github.com/dori/constructtrack/internal/logging"
	"github.com/dori/constructtrack/internal/model"
	"github.com/dori/constructtrack/internal/panel"
	"github.com/spf13/cobra"
)

func newTimerCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Start and stop time entries",
	}
	cmd.AddCommand(newTimerStartCmd(opts))
	cmd.AddCommand(newTimerStopCmd(opts))
	cmd.AddCommand(newTimerToggleCmd(opts))
	return cmd
}

func newTimerStartCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "start <task-id>",
		Short: "Start a timer for a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, opts, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			r, err := run(contextOf(cmd), a.Panel, a.Panel.StartTimer(args[0]))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeEntry(cmd, opts, r.Entry)
		},
	}
}

func newTimerStopCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "stop <entry-id>",
		Short: "Stop a running time entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, opts, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			r, err := run(contextOf(cmd), a.Panel, a.Panel.StopTimer(args[0]))
			if err != nil {
				return writeErr(cmd, err)
			}
			notifyStopped(a, r.Entry)
			return writeEntry(cmd, opts, r.Entry)
		},
	}
}

func newTimerToggleCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <task-id>",
		Short: "Stop the task's running timer, or start one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, opts, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			// The running entry is looked up in the loaded entries
			if err := loadScoped(cmd, a, ""); err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := a.Panel.TaskName(args[0]); !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}

			r, err := run(contextOf(cmd), a.Panel, a.Panel.ToggleTimer(args[0]))
			if err != nil {
				return writeErr(cmd, err)
			}
			if r.Op == panel.OpStopTimer {
				notifyStopped(a, r.Entry)
			}
			return writeEntry(cmd, opts, r.Entry)
		},
	}
}

// notifyStopped sends the desktop notification for a stopped entry. Failure
// is logged and otherwise ignored.
func notifyStopped(a *app.App, e *model.TimeEntry) {
	if e == nil || a.Notifier == nil || !a.Notifier.IsEnabled() {
		return
	}
	name, ok := a.Panel.TaskName(e.TaskID)
	if !ok {
		name = "Task " + panel.ShortID(e.TaskID)
	}
	if err := a.Notifier.SendTimerStopped(name, panel.FormatDuration(e.TrackedSeconds())); err != nil {
		logging.Debugf("cli: notify: %v", err)
	}
}

func writeEntry(cmd *cobra.Command, opts *Options, e *model.TimeEntry) error {
	var rows [][]string
	if e != nil {
		rows = entryRows([]model.TimeEntry{*e})
	}
	return writeOut(cmd, opts, e, entryHeaders, rows)
}
