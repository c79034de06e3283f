package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme and styles for the UI
type Theme struct {
	Name string

	// Base colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color
	Border     lipgloss.Color

	// Semantic colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color

	// Timer colors
	Start   lipgloss.Color
	Stop    lipgloss.Color
	Running lipgloss.Color
}

// Styles holds pre-computed lipgloss styles based on theme
type Styles struct {
	// Shell
	Header   lipgloss.Style
	Tagline  lipgloss.Style
	Features lipgloss.Style
	Tip      lipgloss.Style

	// Panel
	Section     lipgloss.Style
	SectionHead lipgloss.Style
	Card        lipgloss.Style
	CardFocused lipgloss.Style
	TaskName    lipgloss.Style
	Tracked     lipgloss.Style
	Selector    lipgloss.Style
	SelectorOn  lipgloss.Style

	// Buttons
	StartButton    lipgloss.Style
	StopButton     lipgloss.Style
	CreateButton   lipgloss.Style
	DisabledButton lipgloss.Style

	// Inputs
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Entries
	EntryRow     lipgloss.Style
	EntryRunning lipgloss.Style

	// Status
	Error lipgloss.Style
	Busy  lipgloss.Style

	// Help
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	button := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true).
		Padding(0, 1)

	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Bold(true).
			Padding(0, 1),

		Tagline: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Padding(0, 1),

		Features: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Tip: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true),

		Section: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		SectionHead: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Bold(true),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Highlight).
			Padding(0, 1),

		CardFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),

		TaskName: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Bold(true),

		Tracked: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Selector: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		SelectorOn: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Background(t.Highlight).
			Bold(true).
			Padding(0, 1),

		StartButton:    button.Background(t.Start),
		StopButton:     button.Background(t.Stop),
		CreateButton:   button.Background(t.Success),
		DisabledButton: button.Foreground(t.Subtle).Background(t.Highlight).Bold(false),

		Input: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),

		EntryRow: lipgloss.NewStyle().
			Foreground(t.Secondary),

		EntryRunning: lipgloss.NewStyle().
			Foreground(t.Running).
			Italic(true),

		Error: lipgloss.NewStyle().
			Foreground(t.Error),

		Busy: lipgloss.NewStyle().
			Foreground(t.Info),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.Subtle),

		HelpSeparator: lipgloss.NewStyle().
			Foreground(t.Border),
	}
}

// Current holds the current active theme and styles
var Current = struct {
	Theme  Theme
	Styles Styles
}{
	Theme:  Slate,
	Styles: NewStyles(Slate),
}

// SetTheme changes the current theme
func SetTheme(t Theme) {
	Current.Theme = t
	Current.Styles = NewStyles(t)
}

// Available returns all available themes
func Available() []Theme {
	return []Theme{
		Slate,
		Nord,
		Dracula,
		Gruvbox,
		Catppuccin,
	}
}

// ByName returns a theme by its name
func ByName(name string) (Theme, bool) {
	for _, t := range Available() {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Next returns the theme after the named one, wrapping around
func Next(name string) Theme {
	themes := Available()
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
