package tui

import (
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/tasks/internal/core/styles"
)

// Modal is a confirmation dialog with Confirm and Cancel buttons.
type Modal struct {
	title           string
	message         string
	confirmSelected bool
}

// NewModal creates a modal with Cancel preselected.
func NewModal(title, message string) Modal {
	return Modal{title: title, message: message}
}

// ToggleSelection switches the selected button.
func (m *Modal) ToggleSelection() {
	m.confirmSelected = !m.confirmSelected
}

// ConfirmSelected returns true if the confirm button is selected.
func (m Modal) ConfirmSelected() bool {
	return m.confirmSelected
}

// Overlay centers the modal over background.
func (m Modal) Overlay(st styles.Styles, background string, width, height int) string {
	confirmBtn := st.ModalOption.Render("Delete")
	cancelBtn := st.ModalOptionSelected.Render("Cancel")
	if m.confirmSelected {
		confirmBtn = st.ModalOptionSelected.Foreground(st.Palette.Error).Render("Delete")
		cancelBtn = st.ModalOption.Render("Cancel")
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		st.ModalTitle.Render(m.title),
		m.message,
		lipgloss.NewStyle().MarginTop(1).Render(lipgloss.JoinHorizontal(lipgloss.Center, confirmBtn, "  ", cancelBtn)),
		st.ModalHelp.Render("←/→ select  enter confirm  esc cancel"),
	)

	return overlayCenter(background, st.Modal.Render(content), width, height)
}

// overlayCenter composites fg centered over background.
func overlayCenter(background, fg string, width, height int) string {
	bgLayer := lipgloss.NewLayer(background)
	fgLayer := lipgloss.NewLayer(fg)
	fgLayer.
		X(max((width-lipgloss.Width(fg))/2, 0)).
		Y(max((height-lipgloss.Height(fg))/2, 0)).
		Z(1)
	return lipgloss.NewCompositor(bgLayer, fgLayer).Render()
}
