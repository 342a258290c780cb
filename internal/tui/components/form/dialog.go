package form

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/tasks/internal/core/styles"
)

// Dialog is a form container that manages focus cycling, submission, and
// cancellation across a set of named form fields.
type Dialog struct {
	fields       []Field
	names        []string // parallel slice: name for each field
	focusedField int
	submitted    bool
	cancelled    bool
	help         string
	styles       styles.Styles
}

// NewDialog creates a form dialog with the given fields and names. The first
// field is focused automatically.
func NewDialog(st styles.Styles, fields []Field, names []string) *Dialog {
	d := &Dialog{
		fields: fields,
		names:  names,
		styles: st,
		help:   "tab: next  shift+tab: prev  ctrl+s: save  esc: back",
	}
	if len(fields) > 0 {
		fields[0].Focus()
	}
	return d
}

// SetHelp replaces the help line rendered under the fields.
func (d *Dialog) SetHelp(help string) { d.help = help }

// Update handles key input for the dialog, managing focus cycling and submit/cancel.
func (d *Dialog) Update(msg tea.Msg) (*Dialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return d.updateFocusedField(msg)
	}

	switch keyMsg.String() {
	case "tab":
		return d.advanceFocus()
	case "shift+tab":
		return d.retreatFocus()
	case "ctrl+s":
		d.submitted = true
		return d, nil
	case "enter":
		if d.isTextAreaFocused() {
			return d.updateFocusedField(msg)
		}
		return d.advanceFocus()
	case "esc":
		d.cancelled = true
		return d, nil
	}

	return d.updateFocusedField(msg)
}

// View renders all fields vertically with spacing and help text.
func (d *Dialog) View() string {
	var parts []string
	for i, field := range d.fields {
		if i > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, field.View())
	}

	if d.help != "" {
		parts = append(parts, "", d.styles.TextMuted.Render(d.help))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Values returns a map of field names to field values.
func (d *Dialog) Values() map[string]string {
	result := make(map[string]string, len(d.fields))
	for i, field := range d.fields {
		result[d.names[i]] = field.Value()
	}
	return result
}

// Field returns the field registered under name.
func (d *Dialog) Field(name string) (Field, bool) {
	for i, n := range d.names {
		if n == name {
			return d.fields[i], true
		}
	}
	return nil, false
}

// FocusedName returns the name of the focused field.
func (d *Dialog) FocusedName() string {
	if len(d.names) == 0 {
		return ""
	}
	return d.names[d.focusedField]
}

// Submitted returns whether the form was submitted.
func (d *Dialog) Submitted() bool { return d.submitted }

// Cancelled returns whether the form was cancelled.
func (d *Dialog) Cancelled() bool { return d.cancelled }

// Reset clears the submitted and cancelled flags so the dialog can be
// submitted again, for example after a failed save.
func (d *Dialog) Reset() {
	d.submitted = false
	d.cancelled = false
}

func (d *Dialog) advanceFocus() (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}

	next := d.focusedField + 1
	if next >= len(d.fields) {
		d.submitted = true
		return d, nil
	}

	d.fields[d.focusedField].Blur()
	d.focusedField = next
	cmd := d.fields[d.focusedField].Focus()
	return d, cmd
}

func (d *Dialog) retreatFocus() (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 || d.focusedField == 0 {
		return d, nil
	}

	d.fields[d.focusedField].Blur()
	d.focusedField--
	cmd := d.fields[d.focusedField].Focus()
	return d, cmd
}

func (d *Dialog) updateFocusedField(msg tea.Msg) (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}

	var cmd tea.Cmd
	d.fields[d.focusedField], cmd = d.fields[d.focusedField].Update(msg)
	return d, cmd
}

func (d *Dialog) isTextAreaFocused() bool {
	if len(d.fields) == 0 {
		return false
	}
	_, ok := d.fields[d.focusedField].(*TextAreaField)
	return ok
}
