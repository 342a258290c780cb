package tui

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/tasks/internal/core/screens/editscreen"
	"github.com/colonyops/tasks/internal/core/screens/listscreen"
	"github.com/colonyops/tasks/internal/core/styles"
	"github.com/colonyops/tasks/internal/core/task"
	"github.com/colonyops/tasks/internal/core/tasklist"
)

const (
	progressWidth   = 20
	defaultDateFmt  = "Jan 02, 2006"
	listChromeLines = 6
)

// row is one selectable line of the list: a section header when task is nil.
type row struct {
	status task.Status
	task   *task.Task
	count  int
	open   bool
}

func (r row) header() bool { return r.task == nil }

// buildRows flattens the visible sections of st into selectable rows.
func buildRows(st listscreen.State) []row {
	content, ok := st.View.(listscreen.Content)
	if !ok {
		return nil
	}

	var rows []row
	for _, sec := range content.Overview.Sections {
		rows = append(rows, row{status: sec.Status, count: sec.Count, open: sec.Expanded})
		if !sec.Expanded {
			continue
		}
		for i := range sec.Tasks {
			rows = append(rows, row{status: sec.Status, task: &sec.Tasks[i]})
		}
	}
	return rows
}

// sameRow reports whether a and b point at the same header or task.
func sameRow(a, b row) bool {
	if a.header() || b.header() {
		return a.header() && b.header() && a.status == b.status
	}
	return a.task.ID == b.task.ID
}

func (m Model) selectedRow() (row, bool) {
	rows := buildRows(m.listState)
	if m.cursor < 0 || m.cursor >= len(rows) {
		return row{}, false
	}
	return rows[m.cursor], true
}

func (m Model) handleListState(st listscreen.State) (tea.Model, tea.Cmd) {
	prev, hadPrev := m.selectedRow()

	m.listState = st
	rows := buildRows(st)

	if hadPrev {
		if i := slices.IndexFunc(rows, func(r row) bool { return sameRow(r, prev) }); i >= 0 {
			m.cursor = i
		}
	}
	m.cursor = max(min(m.cursor, len(rows)-1), 0)

	return m, tea.Batch(m.waitListState(), m.startSpinner())
}

func (m Model) handleListEvent(ev listscreen.Event) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch e := ev.(type) {
	case listscreen.NavigateToEdit:
		cmd = m.openEdit(editscreen.NewEdit(m.deps.Tasks, e.ID, m.deps.Log))
	case listscreen.NavigateToCreate:
		cmd = m.openEdit(editscreen.NewCreate(m.deps.Tasks, m.defaultTask(), m.deps.Log))
	case listscreen.NavigateToDelete:
		title := fmt.Sprintf("task %d", e.ID)
		if r, ok := m.selectedRow(); ok && !r.header() && r.task.ID == e.ID {
			title = fmt.Sprintf("%q", r.task.Title)
		}
		modal := NewModal("Delete task?", title+" is completed. Delete it permanently?")
		m.confirm = &modal
		m.confirmID = e.ID
	case listscreen.NavigateToSettings:
		cmd = m.openSettings()
	}

	return m, tea.Batch(m.waitListEvent(), cmd)
}

func (m Model) defaultTask() task.Task {
	if m.deps.Config == nil {
		return task.New("", time.Now())
	}
	return m.deps.Config.Defaults.NewTask("", time.Now())
}

func (m Model) sendList(a listscreen.Action) {
	if err := m.list.Send(m.ctx, a); err != nil {
		m.log.Warn().Err(err).Type("action", a).Msg("list action dropped")
	}
}

func (m Model) handleListKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.confirm != nil:
		return m.handleConfirmKey(msg)
	case m.listState.ShowSortDialog:
		return m.handleSortKey(msg)
	case m.matching:
		return m.handleMatchKey(msg)
	}

	rows := buildRows(m.listState)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = max(min(m.cursor+1, len(rows)-1), 0)
	case key.Matches(msg, m.keys.Open):
		if m.cursor >= len(rows) {
			return m, nil
		}
		if r := rows[m.cursor]; r.header() {
			m.sendList(listscreen.ToggleSection{Status: r.status})
		} else {
			m.sendList(listscreen.ItemClick{ID: r.task.ID})
		}
	case key.Matches(msg, m.keys.Add):
		m.sendList(listscreen.AddTask{})
	case key.Matches(msg, m.keys.Sort):
		m.sortCursor = max(slices.Index(task.SortOptions, m.listState.SortBy), 0)
		m.sendList(listscreen.ShowSortDialog{})
	case key.Matches(msg, m.keys.Filter):
		m.sendList(listscreen.FilterChange{Status: m.nextFilter()})
	case key.Matches(msg, m.keys.Match):
		m.matching = true
		return m, m.matchInput.Focus()
	case key.Matches(msg, m.keys.Settings):
		m.sendList(listscreen.ShowSettings{})
	}

	return m, nil
}

// nextFilter picks the section after the expanded one, in display order.
func (m Model) nextFilter() task.Status {
	statuses := []task.Status{task.StatusPending, task.StatusCompleted}
	if content, ok := m.listState.View.(listscreen.Content); ok && len(content.Overview.Sections) > 0 {
		statuses = statuses[:0]
		for _, sec := range content.Overview.Sections {
			statuses = append(statuses, sec.Status)
		}
	}

	i := slices.Index(statuses, m.listState.FilterBy)
	return statuses[(i+1)%len(statuses)]
}

func (m Model) handleMatchKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.matching = false
		m.matchInput.Blur()
		return m, nil
	case "esc":
		m.matching = false
		m.matchInput.Blur()
		if m.matchInput.Value() != "" {
			m.matchInput.SetValue("")
			m.sendList(listscreen.MatchChange{Pattern: ""})
		}
		return m, nil
	}

	before := m.matchInput.Value()
	var cmd tea.Cmd
	m.matchInput, cmd = m.matchInput.Update(msg)
	if after := m.matchInput.Value(); after != before {
		m.sendList(listscreen.MatchChange{Pattern: after})
	}
	return m, cmd
}

func (m Model) handleSortKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.sortCursor = max(m.sortCursor-1, 0)
	case "down", "j":
		m.sortCursor = min(m.sortCursor+1, len(task.SortOptions)-1)
	case "enter", "space":
		m.sendList(listscreen.SortChange{SortBy: task.SortOptions[m.sortCursor]})
	case "esc", "q", "s":
		m.sendList(listscreen.DismissSortDialog{})
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "right", "h", "l", "tab":
		m.confirm.ToggleSelection()
		return m, nil
	case "esc", "n":
		m.confirm = nil
		return m, nil
	case "enter", "y":
		confirmed := m.confirm.ConfirmSelected() || msg.String() == "y"
		m.confirm = nil
		if !confirmed {
			return m, nil
		}
		return m, m.removeTask(m.confirmID)
	}
	return m, nil
}

func (m Model) removeTask(id int64) tea.Cmd {
	ctx, tasks := m.ctx, m.deps.Tasks
	return func() tea.Msg {
		return removeResultMsg{id: id, err: tasks.Remove(ctx, id)}
	}
}

func (m Model) dateFormat() string {
	if m.deps.Config != nil && m.deps.Config.TUI.DateFormat != "" {
		return m.deps.Config.TUI.DateFormat
	}
	return defaultDateFmt
}

func (m Model) renderList(w, h int) string {
	st := m.styles
	lines := []string{m.renderListHeader(), m.renderToolbar(), ""}

	switch v := m.listState.View.(type) {
	case listscreen.Loading:
		lines = append(lines, "  "+m.spinner.View()+" "+st.TextMuted.Render("Loading tasks…"))
	case listscreen.NoItems:
		lines = append(lines,
			st.TextMuted.PaddingLeft(2).Render("No tasks yet."),
			st.TextMuted.PaddingLeft(2).Render("Press a to add one."),
		)
	case listscreen.Error:
		lines = append(lines, st.TextError.PaddingLeft(2).Render("Could not load tasks: "+v.Message))
	case listscreen.Content:
		if v.Overview.Empty() {
			lines = append(lines, st.TextMuted.PaddingLeft(2).Render("No tasks match /"+m.listState.Match))
			break
		}
		lines = append(lines, m.renderRows(w, h)...)
		if preview := m.renderPreview(w); preview != "" {
			lines = append(lines, "", st.Divider.Render(strings.Repeat("─", w)), preview)
		}
	}

	lines = append(lines, "", m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func (m Model) renderListHeader() string {
	st := m.styles
	header := st.Header.Render(styles.IconCheckList + "Tasks")

	content, ok := m.listState.View.(listscreen.Content)
	if !ok || content.Overview.Progress == nil {
		return header
	}
	return header + "  " + renderProgress(st, *content.Overview.Progress)
}

func renderProgress(st styles.Styles, p tasklist.Progress) string {
	filled := int(math.Round(p.Percent / 100 * progressWidth))
	filled = max(min(filled, progressWidth), 0)

	bar := st.ProgressBar.Render(strings.Repeat("━", filled)) +
		st.ProgressTrack.Render(strings.Repeat("━", progressWidth-filled))

	return fmt.Sprintf("%s %s", bar, st.TextMuted.Render(fmt.Sprintf("%d/%d %.0f%%", p.Completed, p.Total, p.Percent)))
}

func (m Model) renderToolbar() string {
	st := m.styles
	parts := []string{st.TextMuted.Render(styles.IconSort + " " + m.listState.SortBy.Label())}

	switch {
	case m.matching:
		parts = append(parts, m.matchInput.View())
	case m.listState.Match != "":
		parts = append(parts, st.TextSecondary.Render(styles.IconFilter+" /"+m.listState.Match))
	}
	if m.listState.MatchErr != "" {
		parts = append(parts, st.FormError.Render(m.listState.MatchErr))
	}

	return st.StatusBar.Render(strings.Join(parts, "   "))
}

func (m Model) renderRows(w, h int) []string {
	rows := buildRows(m.listState)

	visible := max(h-listChromeLines, 3)
	if m.hasPreview() {
		visible = max(visible/2, 3)
	}
	start := max(m.cursor-visible+1, 0)
	end := min(start+visible, len(rows))

	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, m.renderRow(rows[i], i == m.cursor, w))
	}
	return out
}

func (m Model) renderRow(r row, selected bool, w int) string {
	st := m.styles

	if r.header() {
		marker := styles.IconCollapsed
		if r.open {
			marker = styles.IconExpanded
		}
		line := fmt.Sprintf("%s %s %s", marker, st.SectionHeader.Render(r.status.Label()), st.SectionCount.Render(fmt.Sprintf("(%d)", r.count)))
		if selected {
			return st.ItemSelected.PaddingLeft(1).Width(w).Render(line)
		}
		return " " + line
	}

	t := r.task
	icon, title := styles.IconTodo, t.Title
	style := st.Item
	if t.Status == task.StatusCompleted {
		icon = styles.IconDone
		style = st.ItemDone
	}
	if selected {
		style = st.ItemSelected
	}

	meta := lipgloss.JoinHorizontal(lipgloss.Left,
		st.Priority(t.Priority).Render(t.Priority.String()),
		"  ",
		st.DueDate.Render(styles.IconCalendar+" "+t.DueDate.Format(m.dateFormat())),
	)

	titleWidth := max(w-lipgloss.Width(meta)-8, 10)
	line := style.Width(titleWidth + 4).Render(icon + " " + truncate(title, titleWidth))
	return line + " " + meta
}

func (m Model) hasPreview() bool {
	r, ok := m.selectedRow()
	return ok && !r.header() && strings.TrimSpace(r.task.Description) != ""
}

// renderPreview renders the selected task's description as markdown.
func (m Model) renderPreview(w int) string {
	if !m.hasPreview() {
		return ""
	}
	r, _ := m.selectedRow()

	out, err := m.markdown.Render(m.styles, r.task.Description, w-4)
	if err != nil {
		m.log.Warn().Err(err).Int64("task_id", r.task.ID).Msg("failed to render description")
		return m.styles.TextForeground.PaddingLeft(2).Render(r.task.Description)
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(out)
}

func (m Model) renderSortDialog() string {
	st := m.styles
	lines := []string{st.ModalTitle.Render(styles.IconSort + " Sort by")}

	for i, opt := range task.SortOptions {
		label := opt.Label()
		if opt == m.listState.SortBy {
			label += " •"
		}
		if i == m.sortCursor {
			lines = append(lines, st.ModalOptionSelected.Render("> "+label))
			continue
		}
		lines = append(lines, st.ModalOption.Render("  "+label))
	}
	lines = append(lines, st.ModalHelp.Render("↑/↓ move  enter select  esc close"))

	return st.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) > n-1 {
		r = r[:max(n-1, 0)]
	}
	return string(r) + "…"
}
