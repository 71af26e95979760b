package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header, footer and panels
	SurfaceAlt string // Secondary surfaces

	// Border colors
	Border      string // Default panel border
	BorderFocus string // Focused input border

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// StatusColors maps server status and log level names to colors.
	StatusColors map[string]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		// Text styles
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		// Component styles
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(1, 2),

		FocusedLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.BorderFocus)).
			Bold(true),

		// Status badge style generator
		statusColors: t.StatusColors,
		background:   t.Background,
		muted:        t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	// Components
	Header       lipgloss.Style
	Footer       lipgloss.Style
	Logo         lipgloss.Style
	Panel        lipgloss.Style
	FocusedLabel lipgloss.Style

	// For dynamic status colors
	statusColors map[string]string
	background   string
	muted        string
}

// StatusColor returns the color for a status or log level name.
func (s Styles) StatusColor(name string) string {
	if color := s.statusColors[strings.ToLower(strings.TrimSpace(name))]; color != "" {
		return color
	}
	return s.muted
}

// StatusStyle returns a badge style for the given status.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(s.StatusColor(status))).
		Bold(true).
		Padding(0, 1)
}

// LevelStyle colors a log level label.
func (s Styles) LevelStyle(level string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.StatusColor(level))).
		Bold(true)
}

// Theme definitions

var themes = map[string]Theme{
	"Ember":    emberTheme(),
	"Frost":    frostTheme(),
	"Daylight": daylightTheme(),
}

var themeOrder = []string{"Ember", "Frost", "Daylight"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return emberTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func emberTheme() Theme {
	// Warm charcoal with ember accents, matching the game's splash art.
	return Theme{
		Name: "Ember",

		Background: "#16110f",
		Surface:    "#211916",
		SurfaceAlt: "#2c221e",

		Border:      "#4a3a33",
		BorderFocus: "#f08a4b",

		Text:    "#efe3d6",
		Muted:   "#a8978a",
		Faint:   "#75665c",
		Accent:  "#f08a4b",
		Success: "#9ccf6f",
		Warning: "#f2c15f",
		Danger:  "#e5534b",
		Info:    "#6fb7c9",

		StatusColors: map[string]string{
			"online":  "#9ccf6f",
			"offline": "#e5534b",
			"unknown": "#a8978a",
			"debug":   "#75665c",
			"info":    "#6fb7c9",
			"warn":    "#f2c15f",
			"error":   "#e5534b",
		},
	}
}

func frostTheme() Theme {
	// Cold night palette for the late-session crowd.
	return Theme{
		Name: "Frost",

		Background: "#0d1418",
		Surface:    "#142027",
		SurfaceAlt: "#1c2c35",

		Border:      "#2f4754",
		BorderFocus: "#7fd1e8",

		Text:    "#dcebf0",
		Muted:   "#86a0ab",
		Faint:   "#5e7782",
		Accent:  "#7fd1e8",
		Success: "#7ed3a4",
		Warning: "#e8cf7f",
		Danger:  "#e77b8c",
		Info:    "#9bb7f0",

		StatusColors: map[string]string{
			"online":  "#7ed3a4",
			"offline": "#e77b8c",
			"unknown": "#86a0ab",
			"debug":   "#5e7782",
			"info":    "#9bb7f0",
			"warn":    "#e8cf7f",
			"error":   "#e77b8c",
		},
	}
}

func daylightTheme() Theme {
	// Light background for bright rooms and projectors.
	return Theme{
		Name: "Daylight",

		Background: "#f7f4ee",
		Surface:    "#ece7dd",
		SurfaceAlt: "#e0d9cc",

		Border:      "#b9ae9c",
		BorderFocus: "#b4531f",

		Text:    "#2a231d",
		Muted:   "#6b5f53",
		Faint:   "#958878",
		Accent:  "#b4531f",
		Success: "#3f7d2c",
		Warning: "#9a6a00",
		Danger:  "#b3261e",
		Info:    "#1f6f8b",

		StatusColors: map[string]string{
			"online":  "#3f7d2c",
			"offline": "#b3261e",
			"unknown": "#6b5f53",
			"debug":   "#958878",
			"info":    "#1f6f8b",
			"warn":    "#9a6a00",
			"error":   "#b3261e",
		},
	}
}
