// Package settingsscreen holds the preferences screen. The only preference
// is the color theme.
package settingsscreen

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/colonyops/tasks/internal/core/reducer"
	"github.com/colonyops/tasks/internal/core/settings"
)

// State is the settings screen state.
type State struct {
	Theme settings.Theme
	Error string
}

// Action is a user intent submitted to the screen.
type Action interface{ isAction() }

type (
	ThemeChange struct{ Theme settings.Theme }
	Back        struct{}
)

func (ThemeChange) isAction() {}
func (Back) isAction()        {}

// Event is a one-shot side effect for the presentation layer.
type Event interface{ isEvent() }

// NavigateBack asks the presentation layer to leave the screen.
type NavigateBack struct{}

func (NavigateBack) isEvent() {}

// Preferences is the theme store the screen reads and writes.
type Preferences interface {
	SetTheme(ctx context.Context, t settings.Theme) error
	Subscribe(ctx context.Context) <-chan settings.Theme
}

// Screen is the settings state machine.
type Screen struct {
	machine *reducer.Machine[State, Action, Event]
	prefs   Preferences
	log     zerolog.Logger
}

// New creates a settings screen. The theme shows System until Run delivers
// the stored value.
func New(prefs Preferences, log zerolog.Logger) *Screen {
	log = log.With().Str("component", "settings-screen").Logger()
	return &Screen{
		machine: reducer.New[State, Action, Event](State{Theme: settings.ThemeSystem}, log),
		prefs:   prefs,
		log:     log,
	}
}

// State returns the current state.
func (s *Screen) State() State { return s.machine.State() }

// Subscribe streams states, starting with the current one.
func (s *Screen) Subscribe(ctx context.Context) <-chan State { return s.machine.Subscribe(ctx) }

// Events streams one-shot navigation events.
func (s *Screen) Events() <-chan Event { return s.machine.Events() }

// Send queues an action for Run.
func (s *Screen) Send(ctx context.Context, a Action) error { return s.machine.Send(ctx, a) }

// Run follows the stored theme and applies actions until ctx is done.
func (s *Screen) Run(ctx context.Context) error {
	themes := s.prefs.Subscribe(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil

		case theme, ok := <-themes:
			if !ok {
				return nil
			}
			s.machine.Update(func(st State) State {
				st.Theme = theme
				return st
			})

		case a := <-s.machine.Actions():
			switch a := a.(type) {
			case ThemeChange:
				if err := s.prefs.SetTheme(ctx, a.Theme); err != nil {
					s.log.Error().Err(err).Str("theme", string(a.Theme)).Msg("failed to save theme")
					s.machine.Update(func(st State) State {
						st.Error = err.Error()
						return st
					})
					continue
				}
				s.machine.Update(func(st State) State {
					st.Error = ""
					return st
				})
			case Back:
				s.machine.Emit(NavigateBack{})
			}
		}
	}
}
