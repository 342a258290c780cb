// Package settings holds user preferences. Today that is only the theme.
package settings

import (
	"fmt"
	"strings"
)

// Theme selects the color scheme. ThemeSystem follows the terminal.
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeDark   Theme = "dark"
	ThemeLight  Theme = "light"
)

// Themes lists the selectable themes in menu order.
var Themes = []Theme{ThemeSystem, ThemeDark, ThemeLight}

// Label returns the display name of the theme.
func (t Theme) Label() string {
	switch t {
	case ThemeDark:
		return "Dark"
	case ThemeLight:
		return "Light"
	default:
		return "System default"
	}
}

// ParseTheme parses a theme name. "default" is accepted for ThemeSystem.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "system", "default", "":
		return ThemeSystem, nil
	case "dark":
		return ThemeDark, nil
	case "light":
		return ThemeLight, nil
	}
	return "", fmt.Errorf("unknown theme %q (want system, dark or light)", s)
}
