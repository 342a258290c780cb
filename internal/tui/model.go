// Package tui is the interactive task manager: the list, editor and settings
// screens rendered with Bubble Tea.
package tui

import (
	"context"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/tasks/internal/core/config"
	"github.com/colonyops/tasks/internal/core/eventbus"
	"github.com/colonyops/tasks/internal/core/screens/editscreen"
	"github.com/colonyops/tasks/internal/core/screens/listscreen"
	"github.com/colonyops/tasks/internal/core/screens/settingsscreen"
	"github.com/colonyops/tasks/internal/core/settings"
	"github.com/colonyops/tasks/internal/core/styles"
	"github.com/colonyops/tasks/internal/core/task"
)

// TaskService is the task surface the screens read and write.
type TaskService interface {
	listscreen.Source
	editscreen.Service
}

// Deps are the services the TUI runs against.
type Deps struct {
	Tasks  TaskService
	Prefs  settingsscreen.Preferences
	Bus    *eventbus.EventBus
	Config *config.Config
	Log    zerolog.Logger
}

// Opts are the startup options taken from flags.
type Opts struct {
	SortBy   task.SortBy
	FilterBy task.Status
	Match    string
}

type viewType int

const (
	viewList viewType = iota
	viewEdit
	viewSettings
)

// Model is the root Bubble Tea model.
type Model struct {
	ctx  context.Context
	deps Deps
	log  zerolog.Logger

	active        viewType
	width, height int
	quitting      bool

	theme          settings.Theme
	darkBackground bool
	styles         styles.Styles
	themes         <-chan settings.Theme

	spinner  spinner.Model
	spinning bool
	help     help.Model
	keys     listKeyMap

	list       *listscreen.Screen
	listStates <-chan listscreen.State
	listState  listscreen.State
	cursor     int
	matchInput textinput.Model
	matching   bool
	sortCursor int
	confirm    *Modal
	confirmID  int64

	edit     *editSession
	settings *settingsSession

	toasts        *ToastController
	toastView     *ToastView
	notifications <-chan eventbus.NotificationPublishedPayload
	markdown      *markdownRenderer
}

// New creates the root model and starts the list screen. Screens stop when
// ctx is done.
func New(ctx context.Context, deps Deps, opts Opts) Model {
	log := deps.Log.With().Str("component", "tui").Logger()

	list := listscreen.New(deps.Tasks, listscreen.Options{SortBy: opts.SortBy, FilterBy: opts.FilterBy}, deps.Log)
	go func() {
		if err := list.Run(ctx); err != nil {
			log.Error().Err(err).Msg("list screen stopped")
		}
	}()
	if opts.Match != "" {
		if err := list.Send(ctx, listscreen.MatchChange{Pattern: opts.Match}); err != nil {
			log.Warn().Err(err).Msg("failed to apply initial match")
		}
	}

	notes := make(chan eventbus.NotificationPublishedPayload, 16)
	if deps.Bus != nil {
		deps.Bus.SubscribeNotificationPublished(func(p eventbus.NotificationPublishedPayload) {
			select {
			case notes <- p:
			default:
			}
		})
	}

	var themes <-chan settings.Theme
	if deps.Prefs != nil {
		themes = deps.Prefs.Subscribe(ctx)
	}

	matchInput := textinput.New()
	matchInput.Prompt = "/"
	matchInput.Placeholder = "glob, e.g. *milk*"
	matchInput.SetValue(opts.Match)
	matchInput.SetWidth(32)

	s := spinner.New()
	s.Spinner = spinner.Dot

	toasts := NewToastController()

	m := Model{
		ctx:            ctx,
		deps:           deps,
		log:            log,
		theme:          settings.ThemeSystem,
		darkBackground: true,
		themes:         themes,
		spinner:        s,
		spinning:       true,
		help:           help.New(),
		keys:           newListKeyMap(),
		list:           list,
		listStates:     list.Subscribe(ctx),
		listState:      list.State(),
		matchInput:     matchInput,
		toasts:         toasts,
		toastView:      NewToastView(toasts),
		notifications:  notes,
		markdown:       newMarkdownRenderer(),
	}
	m.restyle()
	return m
}

// Init starts the screen, theme and notification read loops.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.waitListState(),
		m.waitListEvent(),
		m.waitTheme(),
		m.waitNotification(),
		tea.RequestBackgroundColor,
		m.spinner.Tick,
	)
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.BackgroundColorMsg:
		m.darkBackground = msg.IsDark()
		m.restyle()
		return m, nil

	case themeMsg:
		m.theme = settings.Theme(msg)
		m.restyle()
		return m, m.waitTheme()

	case notificationMsg:
		return m, tea.Batch(m.pushToast(eventbus.NotificationPublishedPayload(msg)), m.waitNotification())

	case toastTickMsg:
		m.toasts.Tick(toastTickInterval)
		if m.toasts.HasToasts() {
			return m, scheduleToastTick()
		}
		m.toasts.SetTicking(false)
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case listStateMsg:
		return m.handleListState(listscreen.State(msg))
	case listEventMsg:
		return m.handleListEvent(msg.event)
	case editStateMsg:
		return m.handleEditState(msg)
	case editEventMsg:
		return m.handleEditEvent(msg)
	case settingsStateMsg:
		return m.handleSettingsState(msg)
	case settingsEventMsg:
		return m.handleSettingsEvent(msg)

	case removeResultMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Int64("task_id", msg.id).Msg("failed to delete task")
			return m, m.pushToast(eventbus.NotificationPublishedPayload{
				Level:   eventbus.LevelError,
				Message: "delete failed: " + msg.err.Error(),
			})
		}
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		switch m.active {
		case viewEdit:
			return m.handleEditKey(msg)
		case viewSettings:
			return m.handleSettingsKey(msg)
		default:
			return m.handleListKey(msg)
		}
	}

	return m.forward(msg)
}

// View renders the active screen with any overlays.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	var content string
	switch m.active {
	case viewEdit:
		content = m.renderEdit(w, h)
	case viewSettings:
		content = m.renderSettings(w, h)
	default:
		content = m.renderList(w, h)
	}
	content = lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, content)

	if m.active == viewList {
		switch {
		case m.confirm != nil:
			content = m.confirm.Overlay(m.styles, content, w, h)
		case m.listState.ShowSortDialog:
			content = overlayCenter(content, m.renderSortDialog(), w, h)
		}
	}

	if m.toasts.HasToasts() {
		content = m.toastView.Overlay(m.styles, content, w, h)
	}

	v := tea.NewView(content)
	v.AltScreen = true
	return v
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.closeEdit()
	m.closeSettings()
	return m, tea.Quit
}

// forward routes non-key messages, such as cursor blinks, to the focused input.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.active == viewEdit && m.edit != nil:
		m.edit.form, cmd = m.edit.form.Update(msg)
	case m.active == viewList && m.matching:
		m.matchInput, cmd = m.matchInput.Update(msg)
	}
	return m, cmd
}

// restyle rebuilds styles from the theme preference and terminal background.
func (m *Model) restyle() {
	m.styles = styles.New(styles.PaletteFor(m.theme, m.darkBackground))
	m.spinner.Style = m.styles.TextPrimary
	m.help.Styles.ShortKey = m.styles.TextSecondary
	m.help.Styles.ShortDesc = m.styles.TextMuted
	m.help.Styles.ShortSeparator = m.styles.TextMuted
}

// busy reports whether a spinner is on screen.
func (m Model) busy() bool {
	if _, ok := m.listState.View.(listscreen.Loading); ok && m.active == viewList {
		return true
	}
	if m.edit != nil {
		if _, ok := m.edit.state.View.(editscreen.Saving); ok {
			return true
		}
	}
	return false
}

// startSpinner restarts the spinner tick loop if a busy view appeared.
func (m *Model) startSpinner() tea.Cmd {
	if m.spinning || !m.busy() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) pushToast(n eventbus.NotificationPublishedPayload) tea.Cmd {
	m.toasts.Push(n)
	if m.toasts.Ticking() {
		return nil
	}
	m.toasts.SetTicking(true)
	return scheduleToastTick()
}

func (m Model) waitListState() tea.Cmd {
	return waitFor(m.ctx, m.listStates, func(s listscreen.State) tea.Msg { return listStateMsg(s) })
}

func (m Model) waitListEvent() tea.Cmd {
	return waitFor(m.ctx, m.list.Events(), func(e listscreen.Event) tea.Msg { return listEventMsg{event: e} })
}

func (m Model) waitTheme() tea.Cmd {
	return waitFor(m.ctx, m.themes, func(t settings.Theme) tea.Msg { return themeMsg(t) })
}

func (m Model) waitNotification() tea.Cmd {
	return waitFor(m.ctx, m.notifications, func(n eventbus.NotificationPublishedPayload) tea.Msg { return notificationMsg(n) })
}
