package cli

import (
	"strings"

	"github.com/dori/constructtrack/internal/model"
	"github.com/spf13/cobra"
)

func newProjectsCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project commands",
	}
	cmd.AddCommand(newProjectsListCmd(opts))
	cmd.AddCommand(newProjectsCreateCmd(opts))
	return cmd
}

func newProjectsListCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, opts, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			if _, err := run(contextOf(cmd), a.Panel, a.Panel.Load()); err != nil {
				return writeErr(cmd, err)
			}
			projects := a.Panel.State().Projects
			return writeOut(cmd, opts, projects, []string{"ID", "NAME"}, projectRows(projects))
		},
	}
}

func newProjectsCreateCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if strings.TrimSpace(name) == "" {
				return writeErr(cmd, errBlankName("project"))
			}

			a, err := loadApp(cmd, opts, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer a.Close()

			a.Panel.SetProjectDraft(name)
			r, err := run(contextOf(cmd), a.Panel, a.Panel.CreateProject(name))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, opts, r.Project, []string{"ID", "NAME"}, projectRows([]model.Project{*r.Project}))
		},
	}
}

func projectRows(projects []model.Project) [][]string {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{p.ID, p.Name})
	}
	return rows
}
