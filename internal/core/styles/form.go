package styles

import (
	"image/color"

	"github.com/charmbracelet/huh"
	lipglossv1 "github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// v1 converts a palette color for huh, which still renders with lipgloss v1.
func v1(c color.Color) lipglossv1.TerminalColor {
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return lipglossv1.NoColor{}
	}
	return lipglossv1.Color(cc.Hex())
}

// FormTheme returns a huh theme matching the palette.
func (s Styles) FormTheme() *huh.Theme {
	p := s.Palette
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(v1(p.Primary))
	t.Focused.Title = t.Focused.Title.Foreground(v1(p.Primary)).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(v1(p.Muted))
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(v1(p.Error))
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(v1(p.Error))
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(v1(p.Secondary))
	t.Focused.Option = t.Focused.Option.Foreground(v1(p.Foreground))
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(v1(p.Success))
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(v1(p.Secondary))
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(v1(p.Muted))
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(v1(p.Secondary))
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(v1(p.Background)).
		Background(v1(p.Primary))
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(v1(p.Foreground)).
		Background(v1(p.Surface))

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipglossv1.HiddenBorder())
	t.Blurred.Title = t.Blurred.Title.Foreground(v1(p.Muted)).Bold(false)

	return t
}
