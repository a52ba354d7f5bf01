// Package present renders catalog views for the terminal. All layouts
// share one set of renderers; themes only change styling.
package present

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette shared by the built-in themes
var (
	Ink     = lipgloss.Color("#020617") // slate-950
	Slate   = lipgloss.Color("#475569") // slate-600
	Mist    = lipgloss.Color("#94a3b8") // slate-400
	Cloud   = lipgloss.Color("#e2e8f0") // slate-200
	Paper   = lipgloss.Color("#f8fafc") // slate-50
	Emerald = lipgloss.Color("#10b981")
	Indigo  = lipgloss.Color("#6366f1")
)

// Theme holds the styles used by every renderer
type Theme struct {
	Name     string
	Card     lipgloss.Style
	Title    lipgloss.Style
	Badge    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Link     lipgloss.Style
	Chip     lipgloss.Style
	Selected lipgloss.Style
	Section  lipgloss.Style
}

var themes = map[string]Theme{
	"minimal":  minimalTheme(),
	"gradient": gradientTheme(),
	"motion":   motionTheme(),
}

// ThemeByName returns a built-in theme, or minimal when name is unknown
func ThemeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["minimal"]
}

// ThemeNames lists the built-in themes
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func minimalTheme() Theme {
	return Theme{
		Name: "minimal",
		Card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(Cloud).
			Padding(0, 1),
		Title:    lipgloss.NewStyle().Foreground(Ink).Bold(true),
		Badge:    lipgloss.NewStyle().Foreground(Slate).Background(Cloud).Padding(0, 1),
		Text:     lipgloss.NewStyle().Foreground(Slate),
		Muted:    lipgloss.NewStyle().Foreground(Mist),
		Label:    lipgloss.NewStyle().Foreground(Mist),
		Value:    lipgloss.NewStyle().Foreground(Ink).Bold(true),
		Link:     lipgloss.NewStyle().Foreground(Ink).Underline(true),
		Chip:     lipgloss.NewStyle().Foreground(Slate).Padding(0, 1),
		Selected: lipgloss.NewStyle().Foreground(Paper).Background(Ink).Padding(0, 1),
		Section:  lipgloss.NewStyle().Foreground(Ink).MarginTop(1),
	}
}

func gradientTheme() Theme {
	t := minimalTheme()
	t.Name = "gradient"
	t.Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(1, 2)
	t.Title = t.Title.Foreground(Indigo)
	t.Selected = lipgloss.NewStyle().Foreground(Paper).Background(Indigo).Padding(0, 1)
	return t
}

func motionTheme() Theme {
	t := minimalTheme()
	t.Name = "motion"
	t.Card = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(Emerald).
		Padding(0, 2)
	t.Badge = t.Badge.Foreground(Paper).Background(Emerald)
	t.Value = t.Value.Foreground(Emerald)
	t.Selected = lipgloss.NewStyle().Foreground(Paper).Background(Emerald).Bold(true).Padding(0, 1)
	return t
}
