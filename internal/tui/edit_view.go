package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/tasks/internal/core/screens/editscreen"
	"github.com/colonyops/tasks/internal/core/task"
	"github.com/colonyops/tasks/internal/tui/components/form"
)

// dueLayout is the entry format of the due date field.
const dueLayout = "2006-01-02"

const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldPriority    = "priority"
	fieldDue         = "due"
)

// editSession ties an open edit screen to its form widgets.
type editSession struct {
	screen *editscreen.Screen
	ctx    context.Context
	cancel context.CancelFunc
	states <-chan editscreen.State
	state  editscreen.State
	form   *form.Dialog

	// sent holds the field values last pushed to the screen.
	sent   map[string]string
	filled bool
}

var dueValidation = form.FieldValidation{
	Required: true,
	Check: func(s string) error {
		if _, err := time.Parse(dueLayout, strings.TrimSpace(s)); err != nil {
			return fmt.Errorf("use YYYY-MM-DD")
		}
		return nil
	},
}

func (m *Model) openEdit(screen *editscreen.Screen) tea.Cmd {
	m.closeEdit()

	ctx, cancel := context.WithCancel(m.ctx)
	go func() {
		if err := screen.Run(ctx); err != nil {
			m.log.Error().Err(err).Msg("edit screen stopped")
		}
	}()

	st := screen.State()
	session := &editSession{
		screen: screen,
		ctx:    ctx,
		cancel: cancel,
		states: screen.Subscribe(ctx),
		state:  st,
		form:   m.newTaskForm(st),
	}
	session.sent = session.form.Values()
	session.filled = st.Loaded

	m.edit = session
	m.active = viewEdit

	return tea.Batch(m.waitEditState(), m.waitEditEvent())
}

func (m *Model) closeEdit() {
	if m.edit == nil {
		return
	}
	m.edit.cancel()
	m.edit = nil
	if m.active == viewEdit {
		m.active = viewList
	}
}

func (m Model) newTaskForm(st editscreen.State) *form.Dialog {
	priorities := make([]string, len(task.Priorities))
	for i, p := range task.Priorities {
		priorities[i] = p.String()
	}

	d := form.NewDialog(m.styles,
		[]form.Field{
			form.NewTextField(m.styles, "Title", "What needs doing?", st.Title),
			form.NewTextAreaField(m.styles, "Description", "Markdown is supported", st.Description),
			form.NewChoiceField(m.styles, "Priority", priorities, st.Priority.String()),
			form.NewTextField(m.styles, "Due date", dueLayout, formatDue(st.DueDate)),
		},
		[]string{fieldTitle, fieldDescription, fieldPriority, fieldDue},
	)

	if _, ok := st.Mode.(editscreen.Edit); ok {
		d.SetHelp("tab next  ctrl+s save  ctrl+d mark done  ctrl+x delete  esc back")
	}
	return d
}

func formatDue(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dueLayout)
}

// fillForm copies a freshly loaded task into the form widgets.
func (e *editSession) fillForm(st editscreen.State) {
	values := map[string]string{
		fieldTitle:       st.Title,
		fieldDescription: st.Description,
		fieldPriority:    st.Priority.String(),
		fieldDue:         formatDue(st.DueDate),
	}
	for name, v := range values {
		if f, ok := e.form.Field(name); ok {
			f.SetValue(v)
		}
	}
	e.sent = e.form.Values()
	e.filled = true
}

func (m Model) handleEditState(msg editStateMsg) (tea.Model, tea.Cmd) {
	if m.edit == nil || msg.screen != m.edit.screen {
		return m, nil
	}

	m.edit.state = msg.state
	if msg.state.Loaded && !m.edit.filled {
		m.edit.fillForm(msg.state)
	}

	return m, tea.Batch(m.waitEditState(), m.startSpinner())
}

func (m Model) handleEditEvent(msg editEventMsg) (tea.Model, tea.Cmd) {
	if m.edit == nil || msg.screen != m.edit.screen {
		return m, nil
	}

	if _, ok := msg.event.(editscreen.NavigateBack); ok {
		m.closeEdit()
		return m, nil
	}
	return m, m.waitEditEvent()
}

func (m Model) sendEdit(a editscreen.Action) {
	if err := m.edit.screen.Send(m.ctx, a); err != nil {
		m.log.Warn().Err(err).Type("action", a).Msg("edit action dropped")
	}
}

func (m Model) handleEditKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.edit == nil {
		m.active = viewList
		return m, nil
	}

	st := m.edit.state
	if st.ShowSuccess {
		switch msg.String() {
		case "enter", "esc", "space":
			m.sendEdit(editscreen.AcknowledgeSuccess{})
		}
		return m, nil
	}
	if _, saving := st.View.(editscreen.Saving); saving {
		return m, nil
	}

	_, editing := st.Mode.(editscreen.Edit)
	switch msg.String() {
	case "ctrl+d":
		if editing {
			m.sendEdit(editscreen.MarkDone{})
		}
		return m, nil
	case "ctrl+x":
		m.sendEdit(editscreen.Delete{})
		return m, nil
	}

	var cmd tea.Cmd
	m.edit.form, cmd = m.edit.form.Update(msg)

	dueOK := m.syncForm()

	switch {
	case m.edit.form.Cancelled():
		m.closeEdit()
	case m.edit.form.Submitted():
		m.edit.form.Reset()
		if dueOK {
			m.sendEdit(editscreen.Save{})
		}
	}

	return m, cmd
}

// syncForm sends a change action for every field edited since the last sync.
// It returns false when the due date field does not parse.
func (m Model) syncForm() bool {
	e := m.edit
	values := e.form.Values()
	dueOK := true

	for name, v := range values {
		if e.sent[name] == v && name != fieldDue {
			continue
		}

		switch name {
		case fieldTitle:
			m.sendEdit(editscreen.TitleChange{Title: v})
		case fieldDescription:
			m.sendEdit(editscreen.DescriptionChange{Description: v})
		case fieldPriority:
			p, err := task.ParsePriority(v)
			if err != nil {
				continue
			}
			m.sendEdit(editscreen.PriorityChange{Priority: p})
		case fieldDue:
			f, _ := e.form.Field(fieldDue)
			if msg := dueValidation.ValidateText(v); msg != "" {
				f.SetError(msg)
				dueOK = false
				continue
			}
			f.SetError("")
			if e.sent[name] == v {
				continue
			}
			due, _ := time.ParseInLocation(dueLayout, strings.TrimSpace(v), time.Local)
			m.sendEdit(editscreen.DueDateChange{DueDate: keepClock(due, e.state.DueDate)})
		}
	}

	e.sent = values
	return dueOK
}

// keepClock moves the time of day of prev onto the calendar day of day.
func keepClock(day, prev time.Time) time.Time {
	if prev.IsZero() {
		return day
	}
	y, mo, d := day.Date()
	return time.Date(y, mo, d, prev.Hour(), prev.Minute(), prev.Second(), 0, prev.Location())
}

func (m Model) renderEdit(w, _ int) string {
	if m.edit == nil {
		return ""
	}

	st, es := m.styles, m.edit.state
	title := "New task"
	if edit, ok := es.Mode.(editscreen.Edit); ok {
		title = fmt.Sprintf("Edit task %d", edit.ID)
	}

	lines := []string{st.Header.Render(title), ""}

	switch v := es.View.(type) {
	case editscreen.Saving:
		lines = append(lines, "  "+m.spinner.View()+" "+st.TextMuted.Render("Saving…"), "")
	case editscreen.Error:
		lines = append(lines, st.FormError.PaddingLeft(1).Render(v.Message), "")
	}

	if es.ShowSuccess {
		lines = append(lines, " "+st.Banner.Render("Saved. Press enter to go back."), "")
	}

	if _, editing := es.Mode.(editscreen.Edit); editing && !es.Loaded {
		if _, failed := es.View.(editscreen.Error); !failed {
			lines = append(lines, "  "+st.TextMuted.Render("Loading task…"))
		}
		return strings.Join(lines, "\n")
	}

	body := lipgloss.NewStyle().PaddingLeft(1).Render(m.edit.form.View())
	if preview := m.renderDescriptionPreview(w - lipgloss.Width(body) - 4); preview != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "   ", preview)
	}
	lines = append(lines, body)

	return strings.Join(lines, "\n")
}

// renderDescriptionPreview shows the description as rendered markdown beside
// the form when there is room for it.
func (m Model) renderDescriptionPreview(width int) string {
	desc := strings.TrimSpace(m.edit.state.Description)
	if desc == "" || width < 30 {
		return ""
	}

	out, err := m.markdown.Render(m.styles, desc, width)
	if err != nil {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.styles.FormLabel.Render("Preview"), out)
}

func (m Model) waitEditState() tea.Cmd {
	if m.edit == nil {
		return nil
	}
	screen := m.edit.screen
	return waitFor(m.edit.ctx, m.edit.states, func(s editscreen.State) tea.Msg {
		return editStateMsg{screen: screen, state: s}
	})
}

func (m Model) waitEditEvent() tea.Cmd {
	if m.edit == nil {
		return nil
	}
	screen := m.edit.screen
	return waitFor(m.edit.ctx, screen.Events(), func(e editscreen.Event) tea.Msg {
		return editEventMsg{screen: screen, event: e}
	})
}
