package theme

import "github.com/charmbracelet/lipgloss"

// Slate theme - the ConstructTrack web palette: slate surfaces, blue
// accents, emerald for task actions, rose for stopping
var Slate = Theme{
	Name: "slate",

	Background: lipgloss.Color("#0F172A"), // slate-900
	Foreground: lipgloss.Color("#F8FAFC"),
	Subtle:     lipgloss.Color("#94A3B8"),
	Highlight:  lipgloss.Color("#1E293B"), // slate-800
	Border:     lipgloss.Color("#334155"),

	Primary:   lipgloss.Color("#60A5FA"), // blue-400
	Secondary: lipgloss.Color("#BFDBFE"), // blue-200
	Info:      lipgloss.Color("#93C5FD"),

	Success: lipgloss.Color("#10B981"), // emerald-500
	Warning: lipgloss.Color("#FBBF24"),
	Error:   lipgloss.Color("#FB7185"), // rose-400

	Start:   lipgloss.Color("#2563EB"), // blue-600
	Stop:    lipgloss.Color("#E11D48"), // rose-600
	Running: lipgloss.Color("#FBBF24"),
}
