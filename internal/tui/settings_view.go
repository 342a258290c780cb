package tui

import (
	"context"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/tasks/internal/core/screens/settingsscreen"
	"github.com/colonyops/tasks/internal/core/settings"
	"github.com/colonyops/tasks/internal/core/styles"
)

type settingsSession struct {
	screen *settingsscreen.Screen
	ctx    context.Context
	cancel context.CancelFunc
	states <-chan settingsscreen.State
	state  settingsscreen.State
	cursor int
}

func (m *Model) openSettings() tea.Cmd {
	if m.deps.Prefs == nil {
		return nil
	}
	m.closeSettings()

	screen := settingsscreen.New(m.deps.Prefs, m.deps.Log)
	ctx, cancel := context.WithCancel(m.ctx)
	go func() {
		if err := screen.Run(ctx); err != nil {
			m.log.Error().Err(err).Msg("settings screen stopped")
		}
	}()

	m.settings = &settingsSession{
		screen: screen,
		ctx:    ctx,
		cancel: cancel,
		states: screen.Subscribe(ctx),
		state:  screen.State(),
		cursor: max(slices.Index(settings.Themes, m.theme), 0),
	}
	m.active = viewSettings

	return tea.Batch(m.waitSettingsState(), m.waitSettingsEvent())
}

func (m *Model) closeSettings() {
	if m.settings == nil {
		return
	}
	m.settings.cancel()
	m.settings = nil
	if m.active == viewSettings {
		m.active = viewList
	}
}

func (m Model) handleSettingsState(msg settingsStateMsg) (tea.Model, tea.Cmd) {
	if m.settings == nil || msg.screen != m.settings.screen {
		return m, nil
	}

	// Follow the stored theme until the user moves the cursor.
	if m.settings.cursor == slices.Index(settings.Themes, m.settings.state.Theme) {
		m.settings.cursor = max(slices.Index(settings.Themes, msg.state.Theme), 0)
	}
	m.settings.state = msg.state

	return m, m.waitSettingsState()
}

func (m Model) handleSettingsEvent(msg settingsEventMsg) (tea.Model, tea.Cmd) {
	if m.settings == nil || msg.screen != m.settings.screen {
		return m, nil
	}

	if _, ok := msg.event.(settingsscreen.NavigateBack); ok {
		m.closeSettings()
		return m, nil
	}
	return m, m.waitSettingsEvent()
}

func (m Model) handleSettingsKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	s := m.settings
	if s == nil {
		m.active = viewList
		return m, nil
	}

	var a settingsscreen.Action
	switch msg.String() {
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = min(s.cursor+1, len(settings.Themes)-1)
	case "enter", "space":
		a = settingsscreen.ThemeChange{Theme: settings.Themes[s.cursor]}
	case "esc", "q", ",":
		a = settingsscreen.Back{}
	}

	if a != nil {
		if err := s.screen.Send(m.ctx, a); err != nil {
			m.log.Warn().Err(err).Type("action", a).Msg("settings action dropped")
		}
	}
	return m, nil
}

func (m Model) renderSettings(_, _ int) string {
	if m.settings == nil {
		return ""
	}

	st, s := m.styles, m.settings
	lines := []string{st.Header.Render(styles.IconGear + " Settings"), "", st.FormLabelFocused.PaddingLeft(1).Render("Theme")}

	for i, theme := range settings.Themes {
		label := theme.Label()
		if theme == s.state.Theme {
			label += " •"
		}
		if i == s.cursor {
			lines = append(lines, st.ModalOptionSelected.Render("> "+label))
			continue
		}
		lines = append(lines, st.ModalOption.Render("  "+label))
	}

	if s.state.Error != "" {
		lines = append(lines, "", st.FormError.PaddingLeft(1).Render(s.state.Error))
	}

	lines = append(lines, "", st.Help.Render("↑/↓ move  enter apply  esc back"))
	return strings.Join(lines, "\n")
}

func (m Model) waitSettingsState() tea.Cmd {
	if m.settings == nil {
		return nil
	}
	screen := m.settings.screen
	return waitFor(m.settings.ctx, m.settings.states, func(s settingsscreen.State) tea.Msg {
		return settingsStateMsg{screen: screen, state: s}
	})
}

func (m Model) waitSettingsEvent() tea.Cmd {
	if m.settings == nil {
		return nil
	}
	screen := m.settings.screen
	return waitFor(m.settings.ctx, screen.Events(), func(e settingsscreen.Event) tea.Msg {
		return settingsEventMsg{screen: screen, event: e}
	})
}
