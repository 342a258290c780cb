// Package styles provides lipgloss v2 styles for CLI and TUI components.
//
// Styles are plain values built from a Palette. Callers rebuild them when the
// theme preference changes instead of mutating package state.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/tasks/internal/core/task"
)

// Styles is the full set of styles for one palette.
type Styles struct {
	Palette Palette

	// Text
	TextForeground     lipgloss.Style
	TextForegroundBold lipgloss.Style
	TextPrimary        lipgloss.Style
	TextPrimaryBold    lipgloss.Style
	TextSecondary      lipgloss.Style
	TextMuted          lipgloss.Style
	TextSuccess        lipgloss.Style
	TextWarning        lipgloss.Style
	TextError          lipgloss.Style

	// Task list
	Header        lipgloss.Style
	SectionHeader lipgloss.Style
	SectionCount  lipgloss.Style
	Item          lipgloss.Style
	ItemSelected  lipgloss.Style
	ItemDone      lipgloss.Style
	DueDate       lipgloss.Style
	ProgressBar   lipgloss.Style
	ProgressTrack lipgloss.Style

	PriorityLow    lipgloss.Style
	PriorityMedium lipgloss.Style
	PriorityHigh   lipgloss.Style

	// Dialogs and forms
	Modal               lipgloss.Style
	ModalTitle          lipgloss.Style
	ModalHelp           lipgloss.Style
	ModalOption         lipgloss.Style
	ModalOptionSelected lipgloss.Style
	FormField           lipgloss.Style
	FormFieldFocused    lipgloss.Style
	FormLabel           lipgloss.Style
	FormLabelFocused    lipgloss.Style
	FormError           lipgloss.Style
	Banner              lipgloss.Style

	// Notifications
	ToastInfo    lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style

	Divider   lipgloss.Style
	StatusBar lipgloss.Style
	Help      lipgloss.Style
}

// New builds the styles for p.
func New(p Palette) Styles {
	text := func(c color.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	s := Styles{
		Palette: p,

		TextForeground:     text(p.Foreground),
		TextForegroundBold: text(p.Foreground).Bold(true),
		TextPrimary:        text(p.Primary),
		TextPrimaryBold:    text(p.Primary).Bold(true),
		TextSecondary:      text(p.Secondary),
		TextMuted:          text(p.Muted),
		TextSuccess:        text(p.Success),
		TextWarning:        text(p.Warning),
		TextError:          text(p.Error),
	}

	s.Header = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		PaddingLeft(1)
	s.SectionHeader = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)
	s.SectionCount = lipgloss.NewStyle().
		Foreground(p.Muted)
	s.Item = lipgloss.NewStyle().
		Foreground(p.Foreground).
		PaddingLeft(2)
	s.ItemSelected = lipgloss.NewStyle().
		Foreground(p.Primary).
		Background(p.Surface).
		Bold(true).
		PaddingLeft(2)
	s.ItemDone = lipgloss.NewStyle().
		Foreground(p.Muted).
		Strikethrough(true).
		PaddingLeft(2)
	s.DueDate = lipgloss.NewStyle().
		Foreground(p.Muted)
	s.ProgressBar = lipgloss.NewStyle().
		Foreground(p.Success)
	s.ProgressTrack = lipgloss.NewStyle().
		Foreground(p.Surface)

	s.PriorityLow = lipgloss.NewStyle().Foreground(p.Muted)
	s.PriorityMedium = lipgloss.NewStyle().Foreground(p.Warning)
	s.PriorityHigh = lipgloss.NewStyle().Foreground(p.Error).Bold(true)

	s.Modal = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
	s.ModalTitle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		MarginBottom(1)
	s.ModalHelp = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)
	s.ModalOption = lipgloss.NewStyle().
		Foreground(p.Foreground).
		PaddingLeft(2)
	s.ModalOptionSelected = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		PaddingLeft(2)
	s.FormField = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(p.Surface).
		PaddingLeft(1)
	s.FormFieldFocused = s.FormField.
		BorderForeground(p.Primary)
	s.FormLabel = lipgloss.NewStyle().
		Foreground(p.Muted)
	s.FormLabelFocused = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	s.FormError = lipgloss.NewStyle().
		Foreground(p.Error)
	s.Banner = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Success).
		Padding(0, 1)

	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	s.ToastInfo = toast.BorderForeground(p.Primary).Foreground(p.Foreground)
	s.ToastWarning = toast.BorderForeground(p.Warning).Foreground(p.Warning)
	s.ToastError = toast.BorderForeground(p.Error).Foreground(p.Error)

	s.Divider = lipgloss.NewStyle().Foreground(p.Surface)
	s.StatusBar = lipgloss.NewStyle().Foreground(p.Muted).PaddingLeft(1)
	s.Help = lipgloss.NewStyle().Foreground(p.Muted).PaddingLeft(1)

	return s
}

// Priority returns the style for a priority label.
func (s Styles) Priority(p task.Priority) lipgloss.Style {
	switch p {
	case task.PriorityHigh:
		return s.PriorityHigh
	case task.PriorityMedium:
		return s.PriorityMedium
	default:
		return s.PriorityLow
	}
}
