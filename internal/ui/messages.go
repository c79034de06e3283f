package ui

// ThemeChangedMsg indicates the theme was changed
type ThemeChangedMsg struct {
	ThemeName string
	Err       error // Saving the choice failed; the theme still applies
}
