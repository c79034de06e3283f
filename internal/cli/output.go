package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dori/constructtrack/internal/panel"
	"github.com/spf13/cobra"
)

// run executes a panel action in line. It returns the panel's failure
// message as an error when the operation or its refetch failed.
func run(ctx context.Context, p *panel.Panel, a panel.Action) (panel.Result, error) {
	if a == nil {
		return panel.Result{}, fmt.Errorf("operation rejected")
	}
	r := a(ctx)
	p.Apply(r)
	if msg := p.State().Err; msg != "" {
		return r, panelError{message: msg, cause: r.Err}
	}
	return r, nil
}

// writeOut prints v as a {"data": v} JSON envelope with --json, otherwise as
// a table of headers and rows
func writeOut(cmd *cobra.Command, opts *Options, v any, headers []string, rows [][]string) error {
	out := cmd.OutOrStdout()
	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"data": v})
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(out, "(none)")
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	_, err := fmt.Fprintln(out, t.String())
	return err
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
