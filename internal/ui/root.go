package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/constructtrack/internal/app"
	"github.com/dori/constructtrack/internal/logging"
	"github.com/dori/constructtrack/internal/ui/theme"
	"github.com/dori/constructtrack/internal/ui/views"
)

const (
	appTitle    = "ConstructTrack"
	appTagline  = "SaaS platform for construction task time tracking"
	appFeatures = "Log hours with precision · Organize by projects & tasks"
	backendTip  = "Tip: set CONSTRUCTTRACK_BACKEND_URL to your API for persistence"
)

// RootModel is the application shell around the time-tracking panel
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	panelView   views.PanelView
	helpVisible bool

	statusMsg string
}

// NewRootModel creates a new root model. ctx bounds every backend call the
// panel issues.
func NewRootModel(ctx context.Context, application *app.App) RootModel {
	h := help.New()
	h.ShowAll = false

	if t, ok := theme.ByName(application.ThemeName()); ok {
		theme.SetTheme(t)
	}

	return RootModel{
		app:       application,
		keys:      DefaultKeyMap(),
		help:      h,
		panelView: views.NewPanelView(ctx, application.Panel, application.Notifier),
	}
}

// Init loads the initial panel data
func (m RootModel) Init() tea.Cmd {
	return m.panelView.Init()
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.panelView = m.panelView.SetSize(m.width, m.height-m.chromeHeight())
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		isInputMode := m.panelView.IsInputMode()

		switch {
		case key.Matches(msg, m.keys.Quit):
			// 'q' is a character while typing a name
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			return m, m.cycleTheme()
		}

		if !isInputMode && key.Matches(msg, m.keys.Help) {
			m.helpVisible = !m.helpVisible
			m.help.ShowAll = m.helpVisible
			return m, nil
		}
		if m.helpVisible {
			if key.Matches(msg, m.keys.Cancel) {
				m.helpVisible = false
				m.help.ShowAll = false
			}
			return m, nil
		}

	case ThemeChangedMsg:
		if msg.Err != nil {
			logging.Debugf("root: saving theme: %v", msg.Err)
			m.statusMsg = fmt.Sprintf("Theme: %s (not saved)", msg.ThemeName)
		} else {
			m.statusMsg = fmt.Sprintf("Theme: %s", msg.ThemeName)
		}
		return m, nil
	}

	updated, cmd := m.panelView.Update(msg)
	m.panelView = updated.(views.PanelView)
	return m, cmd
}

// chromeHeight is the number of lines the header and footer take
func (m RootModel) chromeHeight() int {
	return 6
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content string
	if m.helpVisible {
		content = m.help.View(m.keys)
	} else {
		content = m.panelView.View()
	}

	sections := []string{m.renderHeader(), content, m.renderFooter()}
	return strings.Join(sections, "\n")
}

// renderHeader renders the title, tagline and theme indicator
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles

	title := lipgloss.JoinHorizontal(lipgloss.Center,
		styles.Header.Render(appTitle),
		styles.Tagline.Render(appTagline))
	themeIndicator := styles.Features.Render(fmt.Sprintf("theme: %s", theme.Current.Theme.Name))

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(themeIndicator)
	if gap < 0 {
		gap = 0
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title+strings.Repeat(" ", gap)+themeIndicator,
		" "+styles.Features.Render(appFeatures))
}

// renderFooter renders the status line, key hints and the backend tip
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles

	var lines []string
	if m.statusMsg != "" {
		lines = append(lines, styles.Busy.Render(m.statusMsg))
	}

	if m.panelView.IsInputMode() {
		k := func(k, desc string) string {
			return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
		}
		lines = append(lines, k("enter", "create")+styles.HelpSeparator.Render(" │ ")+k("esc", "cancel"))
	} else if !m.helpVisible {
		lines = append(lines, m.help.View(m.keys))
	}

	lines = append(lines, styles.Tip.Render(backendTip))
	return strings.Join(lines, "\n")
}

// cycleTheme switches to the next theme and persists the choice
func (m *RootModel) cycleTheme() tea.Cmd {
	next := theme.Next(theme.Current.Theme.Name)
	theme.SetTheme(next)
	application := m.app
	return func() tea.Msg {
		return ThemeChangedMsg{ThemeName: next.Name, Err: application.SaveTheme(next.Name)}
	}
}
