package tui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/tasks/internal/core/eventbus"
	"github.com/colonyops/tasks/internal/core/styles"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders toast notifications and composites them as an overlay.
type ToastView struct {
	controller *ToastController
}

func NewToastView(controller *ToastController) *ToastView {
	return &ToastView{controller: controller}
}

// View renders the toast stack, oldest at top and newest at bottom.
func (v *ToastView) View(st styles.Styles) string {
	toasts := v.controller.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, renderToast(st, t))
	}

	return strings.Join(rendered, "\n")
}

func renderToast(st styles.Styles, t toast) string {
	icon, style := styles.IconNotifyInfo, st.ToastInfo

	switch t.notification.Level {
	case eventbus.LevelError:
		icon, style = styles.IconNotifyError, st.ToastError
	case eventbus.LevelWarning:
		icon, style = styles.IconNotifyWarning, st.ToastWarning
	}

	return style.Width(toastWidth).Render(icon + " " + t.notification.Message)
}

// Overlay composites the toast stack over background in the lower-right corner.
func (v *ToastView) Overlay(st styles.Styles, background string, width, height int) string {
	toastContent := v.View(st)
	if toastContent == "" {
		return background
	}

	bgLayer := lipgloss.NewLayer(background)
	toastLayer := lipgloss.NewLayer(toastContent)

	rightX := max(width-lipgloss.Width(toastContent)-1, 0)
	bottomY := max(height-lipgloss.Height(toastContent)-1, 0)

	toastLayer.X(rightX).Y(bottomY).Z(2)

	return lipgloss.NewCompositor(bgLayer, toastLayer).Render()
}
