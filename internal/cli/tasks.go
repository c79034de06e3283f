package cli

import (
	"strings"

	"github.com/dori/constructtrack/internal/app"
	"github.com/dori/constructtrack/internal/model"
	"github.com/dori/constructtrack/internal/panel"
	"github.com/spf13/cobra"
)

func newTasksCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}
	cmd.AddCommand(newTasksListCmd(opts))
	cmd.AddCommand(newTasksCreateCmd(opts))
	return cmd
}

// loadScoped selects projectID (empty for all projects) and loads the panel.
// A project that the backend does not list is reported as not found.
func loadScoped(cmd *cobra.Command, a *app.App, projectID string) error {
	// The selection's own refetch is covered by Load
	_ = a.Panel.SelectProject(projectID)
	if _, err := run(contextOf(cmd), a.Panel, a.Panel.Load()); err != nil {
		return err
	}
	if projectID == "" {
		return nil
	}
	for _, p := range a.Panel.State().Projects {
		if p.ID == projectID {
			return nil
		}
	}
	return errNotFound("project", projectID)
}

func newTasksListCmd(opts *Options) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with their tracked time",
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
			tasks := a.Panel.VisibleTasks()
			return writeOut(cmd, opts, tasks, []string{"ID", "NAME", "PROJECT", "TRACKED", "TIMER"}, taskRows(a.Panel, tasks))
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Only tasks of this project")
	return cmd
}

func newTasksCreateCmd(opts *Options) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a task in a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if strings.TrimSpace(name) == "" {
				return writeErr(cmd, errBlankName("task"))
			}

			a, err := loadApp(cmd, opts, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			if err := loadScoped(cmd, a, projectID); err != nil {
				return writeErr(cmd, err)
			}

			a.Panel.SetTaskDraft(name)
			r, err := run(contextOf(cmd), a.Panel, a.Panel.CreateTask(name))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, opts, r.Task, []string{"ID", "NAME", "PROJECT", "TRACKED", "TIMER"}, taskRows(a.Panel, []model.Task{*r.Task}))
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project the task belongs to")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func taskRows(p *panel.Panel, tasks []model.Task) [][]string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		timer := "stopped"
		if p.RunningFor(t.ID) != nil {
			timer = "running"
		}
		rows = append(rows, []string{t.ID, t.Name, t.ProjectID, panel.FormatDuration(p.TotalFor(t.ID)), timer})
	}
	return rows
}
