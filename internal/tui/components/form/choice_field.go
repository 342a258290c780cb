package form

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/tasks/internal/core/styles"
)

// ChoiceField picks one of a fixed set of options, cycled with left/right.
type ChoiceField struct {
	options  []string
	selected int
	label    string
	focused  bool
	err      string
	styles   styles.Styles
}

// NewChoiceField creates a choice field. defaultVal pre-selects the matching
// option; otherwise the first option is selected.
func NewChoiceField(st styles.Styles, label string, options []string, defaultVal string) *ChoiceField {
	f := &ChoiceField{
		options: options,
		label:   label,
		styles:  st,
	}
	f.SetValue(defaultVal)
	return f
}

func (f *ChoiceField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !f.focused || len(f.options) == 0 {
		return f, nil
	}

	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return f, nil
	}

	switch keyMsg.String() {
	case "left", "h":
		f.selected = (f.selected - 1 + len(f.options)) % len(f.options)
	case "right", "l", "space":
		f.selected = (f.selected + 1) % len(f.options)
	}
	return f, nil
}

func (f *ChoiceField) View() string {
	rendered := make([]string, 0, len(f.options))
	for i, opt := range f.options {
		if i == f.selected {
			rendered = append(rendered, f.styles.ModalOptionSelected.UnsetPaddingLeft().Render("["+opt+"]"))
			continue
		}
		rendered = append(rendered, f.styles.TextMuted.Render(" "+opt+" "))
	}
	return renderField(f.styles, f.label, strings.Join(rendered, " "), f.err, f.focused)
}

func (f *ChoiceField) Focus() tea.Cmd {
	f.focused = true
	return nil
}

func (f *ChoiceField) Blur() { f.focused = false }

func (f *ChoiceField) Focused() bool { return f.focused }

func (f *ChoiceField) Value() string {
	if len(f.options) == 0 {
		return ""
	}
	return f.options[f.selected]
}

// SetValue selects the option equal to v, leaving the selection alone when
// there is none.
func (f *ChoiceField) SetValue(v string) {
	for i, opt := range f.options {
		if opt == v {
			f.selected = i
			return
		}
	}
}

func (f *ChoiceField) Label() string       { return f.label }
func (f *ChoiceField) SetError(msg string) { f.err = msg }
