package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/tasks/internal/core/settings"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Warning    color.Color
	Error      color.Color

	// Dark reports whether the palette is meant for a dark background.
	Dark bool
}

// DarkPalette is Tokyo Night.
var DarkPalette = Palette{
	Primary:    lipgloss.Color("#7aa2f7"),
	Secondary:  lipgloss.Color("#7dcfff"),
	Foreground: lipgloss.Color("#c0caf5"),
	Muted:      lipgloss.Color("#565f89"),
	Background: lipgloss.Color("#1a1b26"),
	Surface:    lipgloss.Color("#3b4261"),
	Success:    lipgloss.Color("#9ece6a"),
	Warning:    lipgloss.Color("#e0af68"),
	Error:      lipgloss.Color("#f7768e"),
	Dark:       true,
}

// LightPalette is Tokyo Night Day.
var LightPalette = Palette{
	Primary:    lipgloss.Color("#2e7de9"),
	Secondary:  lipgloss.Color("#007197"),
	Foreground: lipgloss.Color("#3760bf"),
	Muted:      lipgloss.Color("#8990b3"),
	Background: lipgloss.Color("#e1e2e7"),
	Surface:    lipgloss.Color("#c4c8da"),
	Success:    lipgloss.Color("#587539"),
	Warning:    lipgloss.Color("#8c6c3e"),
	Error:      lipgloss.Color("#f52a65"),
	Dark:       false,
}

// PaletteFor resolves a theme preference. ThemeSystem follows the terminal
// background reported by darkBackground.
func PaletteFor(theme settings.Theme, darkBackground bool) Palette {
	switch theme {
	case settings.ThemeDark:
		return DarkPalette
	case settings.ThemeLight:
		return LightPalette
	default:
		if darkBackground {
			return DarkPalette
		}
		return LightPalette
	}
}
