package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/constructtrack/internal/app"
	"github.com/dori/constructtrack/internal/config"
	"github.com/dori/constructtrack/internal/ui/theme"
)

func newTestRoot(t *testing.T) (RootModel, *app.App) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	application, err := app.New(&config.Config{
		BackendURL: srv.URL,
		Theme:      "slate",
		DataDir:    dir,
		DBPath:     filepath.Join(dir, "constructtrack.db"),
	}, app.Options{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { application.Close() })
	t.Cleanup(func() { theme.SetTheme(theme.Slate) })

	m := NewRootModel(context.Background(), application)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(RootModel)
	updated, _ = m.Update(m.Init()())
	return updated.(RootModel), application
}

func TestRootRendersShell(t *testing.T) {
	m, _ := newTestRoot(t)

	out := m.View()
	for _, want := range []string{
		"ConstructTrack",
		"SaaS platform for construction task time tracking",
		"Log hours with precision",
		"All Projects",
		"Recent Entries",
		"CONSTRUCTTRACK_BACKEND_URL",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestThemeCyclePersists(t *testing.T) {
	m, application := newTestRoot(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = updated.(RootModel)
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	msg, ok := cmd().(ThemeChangedMsg)
	if !ok || msg.Err != nil {
		t.Fatalf("msg = %#v", msg)
	}
	if msg.ThemeName != "nord" || theme.Current.Theme.Name != "nord" {
		t.Errorf("theme = %q, current = %q", msg.ThemeName, theme.Current.Theme.Name)
	}
	if got := application.ThemeName(); got != "nord" {
		t.Errorf("saved theme = %q", got)
	}

	updated, _ = m.Update(msg)
	if !strings.Contains(updated.(RootModel).View(), "Theme: nord") {
		t.Error("status line should announce the theme")
	}
}

func TestQuitIsTypedWhileNaming(t *testing.T) {
	m, _ := newTestRoot(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m = updated.(RootModel)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatal("q should be typed into the project name, not quit")
		}
	}
}
