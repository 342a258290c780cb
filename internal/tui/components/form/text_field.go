package form

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/tasks/internal/core/styles"
)

// TextField is a single-line text input form field.
type TextField struct {
	input   textinput.Model
	label   string
	focused bool
	err     string
	styles  styles.Styles
}

// NewTextField creates a new single-line text input field.
func NewTextField(st styles.Styles, label, placeholder, defaultVal string) *TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.SetWidth(48)
	ti.CharLimit = 256

	if defaultVal != "" {
		ti.SetValue(defaultVal)
	}

	inputStyles := textinput.DefaultStyles(st.Palette.Dark)
	inputStyles.Cursor.Color = st.Palette.Primary
	inputStyles.Focused.Placeholder = st.TextMuted
	inputStyles.Blurred.Placeholder = st.TextMuted
	ti.SetStyles(inputStyles)

	return &TextField{
		input:  ti,
		label:  label,
		styles: st,
	}
}

func (f *TextField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !f.focused {
		return f, nil
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f *TextField) View() string {
	return renderField(f.styles, f.label, f.input.View(), f.err, f.focused)
}

func (f *TextField) Focus() tea.Cmd {
	f.focused = true
	return f.input.Focus()
}

func (f *TextField) Blur() {
	f.focused = false
	f.input.Blur()
}

func (f *TextField) Focused() bool       { return f.focused }
func (f *TextField) Value() string       { return f.input.Value() }
func (f *TextField) SetValue(v string)   { f.input.SetValue(v) }
func (f *TextField) Label() string       { return f.label }
func (f *TextField) SetError(msg string) { f.err = msg }

// renderField draws the label, body and optional error inside the field
// border shared by every field type.
func renderField(st styles.Styles, label, body, errMsg string, focused bool) string {
	titleStyle, borderStyle := st.FormLabel, st.FormField
	if focused {
		titleStyle, borderStyle = st.FormLabelFocused, st.FormFieldFocused
	}

	parts := []string{titleStyle.Render(label), body}
	if errMsg != "" {
		parts = append(parts, st.FormError.Render(errMsg))
	}

	return borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
