package panel

import (
	"context"

	"github.com/dori/constructtrack/internal/model"
)

// Op identifies the operation a Result belongs to
type Op int

const (
	OpLoad Op = iota
	OpSelectProject
	OpCreateProject
	OpCreateTask
	OpStartTimer
	OpStopTimer
)

// String returns the display name for an operation
func (o Op) String() string {
	switch o {
	case OpLoad:
		return "load"
	case OpSelectProject:
		return "select project"
	case OpCreateProject:
		return "create project"
	case OpCreateTask:
		return "create task"
	case OpStartTimer:
		return "start timer"
	case OpStopTimer:
		return "stop timer"
	default:
		return "unknown"
	}
}

// Mutates returns true for operations that hold the busy flag
func (o Op) Mutates() bool {
	switch o {
	case OpCreateProject, OpCreateTask, OpStartTimer, OpStopTimer:
		return true
	}
	return false
}

// Failure is the message shown when the operation fails. The underlying
// error is never shown.
func (o Op) Failure() string {
	return "Failed to " + o.String()
}

// Result is the outcome of an Action
type Result struct {
	Op  Op
	Err error // The create/start/stop call itself failed

	Project *model.Project   // Created project
	Task    *model.Task      // Created task
	Entry   *model.TimeEntry // Started or stopped entry

	projects *fetched[model.Project]
	tasks    *fetched[model.Task]
	entries  *fetched[model.TimeEntry]
}

type fetched[T any] struct {
	gen   uint64
	items []T
	err   error
}

func fetchProjects(ctx context.Context, b Backend, gen uint64) *fetched[model.Project] {
	items, err := b.ListProjects(ctx)
	return &fetched[model.Project]{gen: gen, items: items, err: err}
}

func fetchTasks(ctx context.Context, b Backend, projectID string, gen uint64) *fetched[model.Task] {
	items, err := b.ListTasks(ctx, projectID)
	return &fetched[model.Task]{gen: gen, items: items, err: err}
}

func fetchEntries(ctx context.Context, b Backend, projectID string, gen uint64) *fetched[model.TimeEntry] {
	items, err := b.ListEntries(ctx, projectID)
	return &fetched[model.TimeEntry]{gen: gen, items: items, err: err}
}
