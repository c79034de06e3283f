// Package panel holds the client-side state of the project/task/timer panel
// and the operations that change it.
//
// Every operation updates state synchronously and hands back an Action that
// performs the network calls. Actions never touch the Panel; their Result is
// folded back in with Apply. A UI runs Actions off its event loop and calls
// Apply from it, so only one goroutine ever mutates a Panel.
package panel

import (
	"context"
	"strings"

	"github.com/dori/constructtrack/internal/logging"
	"github.com/dori/constructtrack/internal/model"
)

// Backend is the subset of the REST API the panel needs
type Backend interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	ListTasks(ctx context.Context, projectID string) ([]model.Task, error)
	ListEntries(ctx context.Context, projectID string) ([]model.TimeEntry, error)
	CreateProject(ctx context.Context, name string) (*model.Project, error)
	CreateTask(ctx context.Context, name, projectID string) (*model.Task, error)
	StartTimer(ctx context.Context, taskID string) (*model.TimeEntry, error)
	StopTimer(ctx context.Context, entryID string) (*model.TimeEntry, error)
}

// State is a snapshot of everything the panel shows.
// Slices are shared with the Panel and must be treated as read-only.
type State struct {
	Projects []model.Project
	Tasks    []model.Task
	Entries  []model.TimeEntry

	SelectedProject string // "" means all projects
	ProjectDraft    string
	TaskDraft       string
	ActiveEntryID   string // Entry started from this panel, cleared on stop

	Busy bool
	Err  string
}

// Action performs the network side of an operation
type Action func(ctx context.Context) Result

type listKind int

const (
	listProjects listKind = iota
	listTasks
	listEntries
	listCount
)

// Panel is the controller for the project/task/timer panel
type Panel struct {
	backend Backend
	state   State

	// Request generations per list. A result older than one already
	// applied is discarded, so a slow response cannot overwrite a newer one.
	issued  [listCount]uint64
	applied [listCount]uint64
}

// New creates a panel backed by backend
func New(backend Backend) *Panel {
	return &Panel{backend: backend}
}

// State returns the current snapshot
func (p *Panel) State() State {
	return p.state
}

// SetProjectDraft records the new-project input as typed
func (p *Panel) SetProjectDraft(s string) {
	p.state.ProjectDraft = s
}

// SetTaskDraft records the new-task input as typed
func (p *Panel) SetTaskDraft(s string) {
	p.state.TaskDraft = s
}

// Load fetches projects, then tasks and entries for the current selection
func (p *Panel) Load() Action {
	backend := p.backend
	projectID := p.state.SelectedProject
	pg, tg, eg := p.bump(listProjects), p.bump(listTasks), p.bump(listEntries)

	return func(ctx context.Context) Result {
		return Result{
			Op:       OpLoad,
			projects: fetchProjects(ctx, backend, pg),
			tasks:    fetchTasks(ctx, backend, projectID, tg),
			entries:  fetchEntries(ctx, backend, projectID, eg),
		}
	}
}

// SelectProject changes the filter and refetches tasks and entries scoped
// to it. An empty projectID selects all projects.
func (p *Panel) SelectProject(projectID string) Action {
	p.state.SelectedProject = projectID
	backend := p.backend
	tg, eg := p.bump(listTasks), p.bump(listEntries)

	return func(ctx context.Context) Result {
		return Result{
			Op:      OpSelectProject,
			tasks:   fetchTasks(ctx, backend, projectID, tg),
			entries: fetchEntries(ctx, backend, projectID, eg),
		}
	}
}

// CreateProject creates a project named name and refetches the project
// list. It returns nil, leaving state untouched, when name is blank or
// another mutation is in flight.
func (p *Panel) CreateProject(name string) Action {
	if strings.TrimSpace(name) == "" || p.state.Busy {
		return nil
	}
	p.begin()
	backend := p.backend
	pg := p.bump(listProjects)

	return func(ctx context.Context) Result {
		r := Result{Op: OpCreateProject}
		created, err := backend.CreateProject(ctx, name)
		if err != nil {
			r.Err = err
			return r
		}
		r.Project = created
		r.projects = fetchProjects(ctx, backend, pg)
		return r
	}
}

// CreateTask creates a task in the selected project and refetches that
// project's tasks. It returns nil when name is blank, no project is
// selected, or another mutation is in flight.
func (p *Panel) CreateTask(name string) Action {
	projectID := p.state.SelectedProject
	if strings.TrimSpace(name) == "" || projectID == "" || p.state.Busy {
		return nil
	}
	p.begin()
	backend := p.backend
	tg := p.bump(listTasks)

	return func(ctx context.Context) Result {
		r := Result{Op: OpCreateTask}
		created, err := backend.CreateTask(ctx, name, projectID)
		if err != nil {
			r.Err = err
			return r
		}
		r.Task = created
		r.tasks = fetchTasks(ctx, backend, projectID, tg)
		return r
	}
}

// StartTimer opens a running entry for taskID and refetches entries
func (p *Panel) StartTimer(taskID string) Action {
	if taskID == "" || p.state.Busy {
		return nil
	}
	p.begin()
	backend := p.backend
	projectID := p.state.SelectedProject
	eg := p.bump(listEntries)

	return func(ctx context.Context) Result {
		r := Result{Op: OpStartTimer}
		entry, err := backend.StartTimer(ctx, taskID)
		if err != nil {
			r.Err = err
			return r
		}
		r.Entry = entry
		r.entries = fetchEntries(ctx, backend, projectID, eg)
		return r
	}
}

// StopTimer closes entryID and refetches entries
func (p *Panel) StopTimer(entryID string) Action {
	if entryID == "" || p.state.Busy {
		return nil
	}
	p.begin()
	backend := p.backend
	projectID := p.state.SelectedProject
	eg := p.bump(listEntries)

	return func(ctx context.Context) Result {
		r := Result{Op: OpStopTimer}
		entry, err := backend.StopTimer(ctx, entryID)
		if err != nil {
			r.Err = err
			return r
		}
		r.Entry = entry
		r.entries = fetchEntries(ctx, backend, projectID, eg)
		return r
	}
}

// ToggleTimer starts a timer for taskID, or stops its running entry if it
// has one. This is the single Start/Stop affordance of a task card.
func (p *Panel) ToggleTimer(taskID string) Action {
	if running := RunningEntry(p.state.Entries, taskID); running != nil {
		return p.StopTimer(running.ID)
	}
	return p.StartTimer(taskID)
}

// Apply folds the outcome of an Action into the panel state
func (p *Panel) Apply(r Result) {
	if r.Op.Mutates() {
		p.state.Busy = false
	}
	if r.Err != nil {
		logging.Debugf("panel %s failed: %v", r.Op, r.Err)
		p.state.Err = r.Op.Failure()
		return
	}

	switch r.Op {
	case OpCreateProject:
		p.state.ProjectDraft = ""
	case OpCreateTask:
		p.state.TaskDraft = ""
	case OpStartTimer:
		if r.Entry != nil {
			p.state.ActiveEntryID = r.Entry.ID
		}
	case OpStopTimer:
		p.state.ActiveEntryID = ""
	}

	if f := r.projects; f != nil && p.current(listProjects, f.gen) {
		if f.err != nil {
			p.state.Err = "Failed to load projects"
		} else {
			p.state.Projects = f.items
		}
	}
	if f := r.tasks; f != nil && p.current(listTasks, f.gen) {
		if f.err != nil {
			p.state.Err = "Failed to load tasks"
		} else {
			p.state.Tasks = f.items
		}
	}
	if f := r.entries; f != nil && p.current(listEntries, f.gen) {
		if f.err != nil {
			p.state.Err = "Failed to load time entries"
		} else {
			p.state.Entries = f.items
		}
	}
}

// Run executes a in line and applies its result. A nil Action is a no-op.
func (p *Panel) Run(ctx context.Context, a Action) {
	if a == nil {
		return
	}
	p.Apply(a(ctx))
}

// VisibleTasks returns the tasks of the selected project
func (p *Panel) VisibleTasks() []model.Task {
	return FilterTasks(p.state.Tasks, p.state.SelectedProject)
}

// TotalFor returns the tracked seconds for taskID
func (p *Panel) TotalFor(taskID string) int64 {
	return TotalSecondsForTask(p.state.Entries, taskID)
}

// RunningFor returns the running entry for taskID, if any
func (p *Panel) RunningFor(taskID string) *model.TimeEntry {
	return RunningEntry(p.state.Entries, taskID)
}

// Recent returns the entries shown under Recent Entries
func (p *Panel) Recent() []model.TimeEntry {
	return RecentEntries(p.state.Entries, RecentLimit)
}

// TaskName returns the name of taskID if it is loaded
func (p *Panel) TaskName(taskID string) (string, bool) {
	for _, t := range p.state.Tasks {
		if t.ID == taskID {
			return t.Name, true
		}
	}
	return "", false
}

func (p *Panel) begin() {
	p.state.Busy = true
	p.state.Err = ""
}

func (p *Panel) bump(k listKind) uint64 {
	p.issued[k]++
	return p.issued[k]
}

func (p *Panel) current(k listKind, gen uint64) bool {
	if gen < p.applied[k] {
		logging.Debugf("panel: dropping stale list %d result (gen %d, applied %d)", k, gen, p.applied[k])
		return false
	}
	p.applied[k] = gen
	return true
}
