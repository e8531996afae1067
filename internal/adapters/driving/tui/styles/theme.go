// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	// Primary is the control accent colour.
	Primary lipgloss.Color

	// Secondary highlights coordinates and labels.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for hints and placeholders.
	Muted lipgloss.Color

	// Info colours informational flash messages.
	Info lipgloss.Color

	// Error colours error flash messages.
	Error lipgloss.Color

	// Marker colours result pins on the map panel.
	Marker lipgloss.Color

	// Land is the map panel background.
	Land lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#2E86DE"), // Blue
		Secondary:  lipgloss.Color("#10AC84"), // Teal
		Foreground: lipgloss.Color("#DCDDE1"), // Light gray
		Muted:      lipgloss.Color("#718093"), // Slate
		Info:       lipgloss.Color("#FBC531"), // Amber
		Error:      lipgloss.Color("#E84118"), // Red
		Marker:     lipgloss.Color("#E1B12C"), // Gold
		Land:       lipgloss.Color("#1E272E"), // Dark
		Border:     lipgloss.Color("#487EB0"), // Steel
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title     lipgloss.Style
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	Info      lipgloss.Style
	Error     lipgloss.Style
	Coord     lipgloss.Style
	Marker    lipgloss.Style
	Popup     lipgloss.Style
	Icon      lipgloss.Style
	Button    lipgloss.Style
	StatusBar lipgloss.Style
	Help      lipgloss.Style

	// SearchBox frames the text input.
	SearchBox lipgloss.Style

	// Suggestions frames the autocomplete list.
	Suggestions lipgloss.Style

	// MapPanel frames the map.
	MapPanel lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Info: lipgloss.NewStyle().
			Foreground(theme.Info),

		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Error),

		Coord: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Marker: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Marker),

		Popup: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Marker).
			Padding(0, 1),

		Icon: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Background(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		SearchBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Suggestions: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Border),

		MapPanel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Background(theme.Land),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
