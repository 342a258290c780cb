package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/tasks/internal/core/eventbus"
	"github.com/colonyops/tasks/internal/core/screens/editscreen"
	"github.com/colonyops/tasks/internal/core/screens/listscreen"
	"github.com/colonyops/tasks/internal/core/screens/settingsscreen"
	"github.com/colonyops/tasks/internal/core/settings"
)

type (
	listStateMsg listscreen.State
	listEventMsg struct{ event listscreen.Event }

	// Edit and settings messages carry the screen they came from so output
	// from a screen that was already closed is dropped.
	editStateMsg struct {
		screen *editscreen.Screen
		state  editscreen.State
	}
	editEventMsg struct {
		screen *editscreen.Screen
		event  editscreen.Event
	}
	settingsStateMsg struct {
		screen *settingsscreen.Screen
		state  settingsscreen.State
	}
	settingsEventMsg struct {
		screen *settingsscreen.Screen
		event  settingsscreen.Event
	}

	themeMsg        settings.Theme
	notificationMsg eventbus.NotificationPublishedPayload

	removeResultMsg struct {
		id  int64
		err error
	}
)

// waitFor reads one value from ch and wraps it as a message. A closed
// channel or a done ctx yields no message, which ends the read loop.
func waitFor[T any](ctx context.Context, ch <-chan T, wrap func(T) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case v, ok := <-ch:
			if !ok {
				return nil
			}
			return wrap(v)
		}
	}
}
