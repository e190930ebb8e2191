package tui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bubbles/internal/core"
)

// Theme contains all configurable visual styles for the reveal screen.
type Theme struct {
	Name       string
	Background core.Color // Canvas behind the bubbles

	// HUD styles
	HUDTitle     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	HUDControls  lipgloss.Style
	Milestone    lipgloss.Style
	Error        lipgloss.Style

	// Progress bar gradient endpoints, "#rrggbb"
	ProgressFrom string
	ProgressTo   string
}

// themeBuilders holds every named theme; each builds its styles with the
// given renderer so SSH sessions get their own color profile.
var themeBuilders = map[string]func(r *lipgloss.Renderer) Theme{
	"midnight": MidnightTheme,
	"neon":     NeonTheme,
	"pastel":   PastelTheme,
	"mono":     MonochromeTheme,
}

// MidnightTheme returns the default visual theme.
func MidnightTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Name:       "midnight",
		Background: core.RGBA8(0x10, 0x10, 0x18, 0xff),

		HUDTitle:     r.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue:     r.NewStyle().Foreground(lipgloss.Color("255")),
		HUDSeparator: r.NewStyle().Foreground(lipgloss.Color("240")),
		HUDControls:  r.NewStyle().Foreground(lipgloss.Color("245")),
		Milestone:    r.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Error:        r.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),

		ProgressFrom: "#5A56E0",
		ProgressTo:   "#EE6FF8",
	}
}

// NeonTheme returns a neon-style theme.
func NeonTheme(r *lipgloss.Renderer) Theme {
	theme := MidnightTheme(r)
	theme.Name = "neon"
	theme.Background = core.Black
	theme.HUDTitle = r.NewStyle().Foreground(lipgloss.Color("199")).Bold(true) // Neon pink
	theme.Milestone = r.NewStyle().Foreground(lipgloss.Color("118")).Bold(true) // Neon green
	theme.ProgressFrom, theme.ProgressTo = "#00FFD1", "#FF00E5"
	return theme
}

// PastelTheme returns a softer pastel theme.
func PastelTheme(r *lipgloss.Renderer) Theme {
	theme := MidnightTheme(r)
	theme.Name = "pastel"
	theme.Background = core.RGBA8(0xf7, 0xf3, 0xe9, 0xff)
	theme.HUDTitle = r.NewStyle().Foreground(lipgloss.Color("183")).Bold(true) // Pastel purple
	theme.Milestone = r.NewStyle().Foreground(lipgloss.Color("218")).Bold(true) // Pastel pink
	theme.ProgressFrom, theme.ProgressTo = "#A0E7E5", "#FFAEBC"
	return theme
}

// MonochromeTheme returns a grayscale theme.
func MonochromeTheme(r *lipgloss.Renderer) Theme {
	theme := MidnightTheme(r)
	theme.Name = "mono"
	theme.Background = core.Black
	theme.HUDTitle = r.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.Milestone = r.NewStyle().Foreground(lipgloss.Color("250")).Bold(true)
	theme.Error = r.NewStyle().Foreground(lipgloss.Color("255")).Underline(true)
	theme.ProgressFrom, theme.ProgressTo = "#606060", "#F0F0F0"
	return theme
}

// ThemeByName returns the named theme, falling back to midnight.
// A nil renderer uses the default lipgloss renderer.
func ThemeByName(r *lipgloss.Renderer, name string) (Theme, bool) {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	build, ok := themeBuilders[name]
	if !ok {
		return MidnightTheme(r), false
	}
	return build(r), true
}

// ThemeNames lists the available themes, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themeBuilders))
	for name := range themeBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
