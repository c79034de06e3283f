package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/constructtrack/internal/logging"
	"github.com/dori/constructtrack/internal/model"
	"github.com/dori/constructtrack/internal/notify"
	"github.com/dori/constructtrack/internal/panel"
	"github.com/dori/constructtrack/internal/ui/theme"
)

// PanelMode represents the current input mode of the panel view
type PanelMode int

const (
	PanelModeNormal PanelMode = iota
	PanelModeNewProject
	PanelModeNewTask
)

// ResultMsg carries a finished panel action back to the event loop
type ResultMsg struct {
	Result panel.Result
}

// PanelView renders the project selector, task cards and recent entries
type PanelView struct {
	ctx      context.Context
	panel    *panel.Panel
	notifier *notify.Notifier
	width    int
	height   int

	mode         PanelMode
	projectInput textinput.Model
	taskInput    textinput.Model
	cursor       int    // Index into the visible tasks
	hint         string // Local, non-error feedback
}

// NewPanelView creates a panel view driving p. Network actions run with ctx.
func NewPanelView(ctx context.Context, p *panel.Panel, notifier *notify.Notifier) PanelView {
	pi := textinput.New()
	pi.Placeholder = "New project name"
	pi.CharLimit = 200

	ti := textinput.New()
	ti.Placeholder = "New task name"
	ti.CharLimit = 200

	return PanelView{
		ctx:          ctx,
		panel:        p,
		notifier:     notifier,
		projectInput: pi,
		taskInput:    ti,
	}
}

// Init loads projects, tasks and entries
func (v PanelView) Init() tea.Cmd {
	return v.run(v.panel.Load())
}

// IsInputMode returns true when the view is capturing text input
func (v PanelView) IsInputMode() bool {
	return v.mode != PanelModeNormal
}

// Mode returns the current input mode
func (v PanelView) Mode() PanelMode {
	return v.mode
}

// SetSize updates the view dimensions
func (v PanelView) SetSize(width, height int) PanelView {
	v.width = width
	v.height = height
	v.projectInput.Width = max(10, width/3)
	v.taskInput.Width = max(10, width/3)
	return v
}

// run turns a panel action into a command. A nil action means the panel
// rejected the operation and nothing is sent.
func (v PanelView) run(a panel.Action) tea.Cmd {
	if a == nil {
		return nil
	}
	ctx := v.ctx
	return func() tea.Msg {
		return ResultMsg{Result: a(ctx)}
	}
}

// Update handles messages for the panel view
func (v PanelView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ResultMsg:
		return v.applyResult(msg.Result)

	case tea.KeyMsg:
		switch v.mode {
		case PanelModeNewProject:
			return v.handleProjectInput(msg)
		case PanelModeNewTask:
			return v.handleTaskInput(msg)
		default:
			return v.handleNormalMode(msg)
		}
	}

	var cmd tea.Cmd
	switch v.mode {
	case PanelModeNewProject:
		v.projectInput, cmd = v.projectInput.Update(msg)
	case PanelModeNewTask:
		v.taskInput, cmd = v.taskInput.Update(msg)
	}
	return v, cmd
}

func (v PanelView) applyResult(r panel.Result) (tea.Model, tea.Cmd) {
	logging.Debugf("view: %s result err=%v", r.Op, r.Err)

	// Name lookup has to happen before Apply swaps the entry list
	var stoppedTask string
	if r.Op == panel.OpStopTimer && r.Err == nil && r.Entry != nil {
		stoppedTask, _ = v.panel.TaskName(r.Entry.TaskID)
	}

	v.panel.Apply(r)
	st := v.panel.State()

	// Drafts are cleared by the panel on success and kept on failure
	v.projectInput.SetValue(st.ProjectDraft)
	v.taskInput.SetValue(st.TaskDraft)
	v.clampCursor()

	if r.Op == panel.OpStopTimer && r.Err == nil && r.Entry != nil {
		return v, v.notifyStopped(stoppedTask, r.Entry)
	}
	return v, nil
}

func (v PanelView) notifyStopped(taskName string, entry *model.TimeEntry) tea.Cmd {
	if v.notifier == nil || !v.notifier.IsEnabled() {
		return nil
	}
	formatted := panel.FormatDuration(entry.TrackedSeconds())
	notifier := v.notifier
	return func() tea.Msg {
		if err := notifier.SendTimerStopped(taskName, formatted); err != nil {
			logging.Debugf("notify: %v", err)
		}
		return nil
	}
}

// handleNormalMode handles keypresses in normal mode
func (v PanelView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.hint = ""
	tasks := v.panel.VisibleTasks()
	cols := v.columns()

	switch msg.String() {
	case "up", "k":
		if v.cursor-cols >= 0 {
			v.cursor -= cols
		}
	case "down", "j":
		if v.cursor+cols < len(tasks) {
			v.cursor += cols
		}
	case "left", "h":
		if v.cursor > 0 {
			v.cursor--
		}
	case "right", "l":
		if v.cursor < len(tasks)-1 {
			v.cursor++
		}

	case "[":
		return v.selectRelative(-1)
	case "]":
		return v.selectRelative(1)
	case "0":
		v.cursor = 0
		return v, v.run(v.panel.SelectProject(""))

	case "n":
		v.mode = PanelModeNewProject
		v.projectInput.SetValue(v.panel.State().ProjectDraft)
		v.projectInput.Focus()
		return v, textinput.Blink

	case "a":
		if v.panel.State().SelectedProject == "" {
			v.hint = "Select a project to add tasks"
			return v, nil
		}
		v.mode = PanelModeNewTask
		v.taskInput.SetValue(v.panel.State().TaskDraft)
		v.taskInput.Focus()
		return v, textinput.Blink

	case "s", " ", "enter":
		if v.cursor < len(tasks) {
			return v, v.run(v.panel.ToggleTimer(tasks[v.cursor].ID))
		}

	case "r":
		return v, v.run(v.panel.Load())
	}

	return v, nil
}

// handleProjectInput handles keypresses while typing a project name
func (v PanelView) handleProjectInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := v.projectInput.Value()
		v.panel.SetProjectDraft(name)
		if a := v.panel.CreateProject(name); a != nil {
			v.hint = ""
			v.mode = PanelModeNormal
			v.projectInput.Blur()
			return v, v.run(a)
		}
		v.hint = v.refusedHint(name)
		return v, nil
	case "esc":
		v.panel.SetProjectDraft(v.projectInput.Value())
		v.mode = PanelModeNormal
		v.projectInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.projectInput, cmd = v.projectInput.Update(msg)
	v.panel.SetProjectDraft(v.projectInput.Value())
	return v, cmd
}

// handleTaskInput handles keypresses while typing a task name
func (v PanelView) handleTaskInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := v.taskInput.Value()
		v.panel.SetTaskDraft(name)
		if a := v.panel.CreateTask(name); a != nil {
			v.hint = ""
			v.mode = PanelModeNormal
			v.taskInput.Blur()
			return v, v.run(a)
		}
		v.hint = v.refusedHint(name)
		return v, nil
	case "esc":
		v.panel.SetTaskDraft(v.taskInput.Value())
		v.mode = PanelModeNormal
		v.taskInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.taskInput, cmd = v.taskInput.Update(msg)
	v.panel.SetTaskDraft(v.taskInput.Value())
	return v, cmd
}

// refusedHint explains why a non-blank name was not submitted
func (v PanelView) refusedHint(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}
	if v.panel.State().Busy {
		return "Busy, try again"
	}
	return ""
}

// selectRelative moves the project filter through "All Projects" followed
// by each loaded project, wrapping at both ends
func (v PanelView) selectRelative(delta int) (tea.Model, tea.Cmd) {
	st := v.panel.State()
	options := make([]string, 0, len(st.Projects)+1)
	options = append(options, "")
	for _, p := range st.Projects {
		options = append(options, p.ID)
	}

	current := 0
	for i, id := range options {
		if id == st.SelectedProject {
			current = i
			break
		}
	}
	next := (current + delta + len(options)) % len(options)
	v.cursor = 0
	return v, v.run(v.panel.SelectProject(options[next]))
}

func (v *PanelView) clampCursor() {
	n := len(v.panel.VisibleTasks())
	if v.cursor >= n {
		v.cursor = max(0, n-1)
	}
}

// columns returns how many task cards fit side by side
func (v PanelView) columns() int {
	if v.width >= 80 {
		return 2
	}
	return 1
}

// View renders the panel
func (v PanelView) View() string {
	var sections []string
	sections = append(sections, v.renderToolbar())
	sections = append(sections, v.renderTasks())
	sections = append(sections, v.renderEntries())

	st := v.panel.State()
	styles := theme.Current.Styles
	if st.Busy {
		sections = append(sections, styles.Busy.Render("Working..."))
	}
	if st.Err != "" {
		sections = append(sections, styles.Error.Render(st.Err))
	} else if v.hint != "" {
		sections = append(sections, styles.Tracked.Render(v.hint))
	}

	return strings.Join(sections, "\n")
}

// renderToolbar renders the project selector and the new-project form
func (v PanelView) renderToolbar() string {
	styles := theme.Current.Styles
	st := v.panel.State()

	options := []string{renderOption("All Projects", st.SelectedProject == "")}
	for _, p := range st.Projects {
		options = append(options, renderOption(p.Name, p.ID == st.SelectedProject))
	}
	selector := lipgloss.JoinHorizontal(lipgloss.Center, options...)

	inputStyle := styles.Input
	if v.mode == PanelModeNewProject {
		inputStyle = styles.InputFocused
	}
	button := styles.CreateButton.Render("+ Project")
	if st.Busy {
		button = styles.DisabledButton.Render("+ Project")
	}
	form := lipgloss.JoinHorizontal(lipgloss.Center, inputStyle.Render(v.projectInput.View()), " ", button)

	return lipgloss.JoinVertical(lipgloss.Left, selector, form)
}

func renderOption(label string, on bool) string {
	styles := theme.Current.Styles
	if on {
		return styles.SelectorOn.Render(label)
	}
	return styles.Selector.Render(label)
}

// renderTasks renders the Tasks section: new-task form and task cards
func (v PanelView) renderTasks() string {
	styles := theme.Current.Styles
	st := v.panel.State()

	inputStyle := styles.Input
	if v.mode == PanelModeNewTask {
		inputStyle = styles.InputFocused
	}
	button := styles.CreateButton.Render("+ Task")
	if st.Busy || st.SelectedProject == "" {
		button = styles.DisabledButton.Render("+ Task")
	}
	head := lipgloss.JoinHorizontal(lipgloss.Center,
		styles.SectionHead.Render("Tasks"), "  ",
		inputStyle.Render(v.taskInput.View()), " ", button)

	tasks := v.panel.VisibleTasks()
	if len(tasks) == 0 {
		return styles.Section.Render(lipgloss.JoinVertical(lipgloss.Left, head, styles.Tracked.Render("No tasks yet")))
	}

	cols := v.columns()
	cardWidth := 30
	if v.width > 0 {
		cardWidth = max(20, (v.width-6)/cols-2)
	}

	var rows []string
	for i := 0; i < len(tasks); i += cols {
		var row []string
		for j := i; j < i+cols && j < len(tasks); j++ {
			row = append(row, v.renderCard(tasks[j], j == v.cursor, cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return styles.Section.Render(lipgloss.JoinVertical(lipgloss.Left, head, body))
}

// renderCard renders one task with its tracked total and timer affordance
func (v PanelView) renderCard(t model.Task, focused bool, width int) string {
	styles := theme.Current.Styles

	tracked := styles.Tracked.Render("Tracked: " + panel.FormatDuration(v.panel.TotalFor(t.ID)))
	var button string
	if v.panel.RunningFor(t.ID) == nil {
		button = styles.StartButton.Render("▶ Start")
	} else {
		button = styles.StopButton.Render("■ Stop")
	}

	left := lipgloss.JoinVertical(lipgloss.Left, styles.TaskName.Render(t.Name), tracked)
	gap := width - lipgloss.Width(left) - lipgloss.Width(button) - 4
	if gap < 1 {
		gap = 1
	}
	content := lipgloss.JoinHorizontal(lipgloss.Center, left, strings.Repeat(" ", gap), button)

	card := styles.Card
	if focused {
		card = styles.CardFocused
	}
	return card.Width(width).Render(content)
}

// renderEntries renders the Recent Entries section
func (v PanelView) renderEntries() string {
	styles := theme.Current.Styles
	lines := []string{styles.SectionHead.Render("Recent Entries")}

	recent := v.panel.Recent()
	if len(recent) == 0 {
		lines = append(lines, styles.Tracked.Render("No entries yet"))
	}
	for _, e := range recent {
		label := fmt.Sprintf("Task %s", panel.ShortID(e.TaskID))
		var value string
		if e.DurationSec != nil {
			value = styles.EntryRow.Render(panel.FormatDuration(*e.DurationSec))
		} else {
			value = styles.EntryRunning.Render("running...")
		}
		width := 40
		if v.width > 0 {
			width = max(30, v.width-6)
		}
		gap := width - lipgloss.Width(label) - lipgloss.Width(value)
		if gap < 1 {
			gap = 1
		}
		lines = append(lines, label+strings.Repeat(" ", gap)+value)
	}

	return styles.Section.Render(strings.Join(lines, "\n"))
}
