// Package style holds the lipgloss styles for command line output.
package style

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for reports
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
}

var (
	ThemeDefault = Theme{
		Name:    "default",
		Primary: lipgloss.Color("#00ffff"),
		Accent:  lipgloss.Color("#ffaa00"),
		Muted:   lipgloss.Color("#666688"),
		Success: lipgloss.Color("#00ff88"),
		Error:   lipgloss.Color("#ff4444"),
	}

	ThemePlain = Theme{Name: "plain"}

	Themes = []Theme{ThemeDefault, ThemePlain}
)

// Styles is the set of text styles derived from a theme.
type Styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
	Muted lipgloss.Style
	OK    lipgloss.Style
	Fail  lipgloss.Style
}

func New(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Label: lipgloss.NewStyle().Foreground(t.Muted),
		Value: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Muted: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		OK:    lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		Fail:  lipgloss.NewStyle().Bold(true).Foreground(t.Error),
	}
}

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDefault
}

// Check renders a pass/fail marker.
func (s Styles) Check(ok bool) string {
	if ok {
		return s.OK.Render("ok")
	}
	return s.Fail.Render("FAIL")
}
