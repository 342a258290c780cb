package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tasks/internal/core/eventbus"
	"github.com/colonyops/tasks/internal/core/screens/editscreen"
	"github.com/colonyops/tasks/internal/core/screens/listscreen"
	"github.com/colonyops/tasks/internal/core/settings"
	"github.com/colonyops/tasks/internal/core/styles"
	"github.com/colonyops/tasks/internal/core/task"
	"github.com/colonyops/tasks/internal/core/tasklist"
	"github.com/colonyops/tasks/pkg/tuitest"
)

const waitTimeout = 2 * time.Second

type fakeTasks struct {
	mu      sync.Mutex
	tasks   []task.Task
	removed []int64
	saved   []task.Task
	snaps   chan task.Snapshot
}

func newFakeTasks(tasks ...task.Task) *fakeTasks {
	f := &fakeTasks{tasks: tasks, snaps: make(chan task.Snapshot, 1)}
	f.snaps <- task.Snapshot{Tasks: tasks}
	return f
}

func (f *fakeTasks) Watch(context.Context) <-chan task.Snapshot { return f.snaps }

func (f *fakeTasks) WatchTask(_ context.Context, id int64) <-chan task.Result {
	ch := make(chan task.Result, 1)
	ch <- task.Snapshot{Tasks: f.tasks}.Find(id)
	return ch
}

func (f *fakeTasks) Create(_ context.Context, t task.Task) (task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, t)
	return t, nil
}

func (f *fakeTasks) Update(_ context.Context, t task.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, t)
	return nil
}

func (f *fakeTasks) Complete(context.Context, int64) error { return nil }

func (f *fakeTasks) Remove(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == 404 {
		return errors.New("no such task")
	}
	f.removed = append(f.removed, id)
	return nil
}

func sampleTasks() []task.Task {
	due := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return []task.Task{
		{ID: 1, Title: "Buy milk", Priority: task.PriorityHigh, DueDate: due, Status: task.StatusPending, Description: "**two** litres"},
		{ID: 2, Title: "Call mom", Priority: task.PriorityLow, DueDate: due, Status: task.StatusPending},
		{ID: 3, Title: "File taxes", Priority: task.PriorityMedium, DueDate: due, Status: task.StatusCompleted},
	}
}

func newTestModel(t *testing.T, tasks *fakeTasks) Model {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	m := New(ctx, Deps{Tasks: tasks, Log: zerolog.Nop()}, Opts{})
	m.width, m.height = 100, 30
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// syncList waits for the list screen to reach a matching state and feeds it
// to the model.
func syncList(t *testing.T, m Model, pred func(listscreen.State) bool) Model {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()

	for st := range m.list.Subscribe(ctx) {
		if pred(st) {
			m, _ = update(t, m, listStateMsg(st))
			return m
		}
	}
	require.FailNow(t, "list state never matched", "last: %+v", m.list.State())
	return m
}

func nextListEvent(t *testing.T, m Model) listscreen.Event {
	t.Helper()
	select {
	case ev := <-m.list.Events():
		return ev
	case <-time.After(waitTimeout):
		require.FailNow(t, "no list event")
		return nil
	}
}

func hasContent(st listscreen.State) bool {
	_, ok := st.View.(listscreen.Content)
	return ok
}

func TestBuildRows(t *testing.T) {
	overview := tasklist.Aggregate(sampleTasks(), task.SortPriority, task.StatusPending)
	rows := buildRows(listscreen.State{View: listscreen.Content{Overview: overview}})

	// Pending header, two pending tasks, collapsed Completed header.
	require.Len(t, rows, 4)
	assert.True(t, rows[0].header())
	assert.Equal(t, 2, rows[0].count)
	assert.Equal(t, int64(1), rows[1].task.ID)
	assert.Equal(t, int64(2), rows[2].task.ID)
	assert.True(t, rows[3].header())
	assert.False(t, rows[3].open)

	assert.Empty(t, buildRows(listscreen.State{View: listscreen.Loading{}}))
}

func TestSameRow(t *testing.T) {
	a, b := sampleTasks()[0], sampleTasks()[1]
	pending := row{status: task.StatusPending}

	assert.True(t, sameRow(pending, row{status: task.StatusPending}))
	assert.False(t, sameRow(pending, row{status: task.StatusCompleted}))
	assert.False(t, sameRow(pending, row{status: task.StatusPending, task: &a}))
	assert.True(t, sameRow(row{task: &a}, row{task: &a}))
	assert.False(t, sameRow(row{task: &a}, row{task: &b}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

func TestRenderProgress(t *testing.T) {
	out := tuitest.StripANSI(renderProgress(testStyles, tasklist.Progress{Completed: 1, Total: 4, Percent: 25}))
	assert.Contains(t, out, "1/4 25%")
}

func TestModel_RendersSections(t *testing.T) {
	m := newTestModel(t, newFakeTasks(sampleTasks()...))
	m = syncList(t, m, hasContent)

	out := tuitest.StripANSI(m.renderList(100, 30))
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "(2)")
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "Completed")
	assert.NotContains(t, out, "File taxes", "completed section starts collapsed")
	assert.Contains(t, out, "1/3")
}

func TestModel_NoItems(t *testing.T) {
	m := newTestModel(t, newFakeTasks())
	m = syncList(t, m, func(st listscreen.State) bool {
		_, ok := st.View.(listscreen.NoItems)
		return ok
	})

	assert.Contains(t, tuitest.StripANSI(m.renderList(100, 30)), "No tasks yet.")
}

func TestModel_CursorAndPreview(t *testing.T) {
	m := newTestModel(t, newFakeTasks(sampleTasks()...))
	m = syncList(t, m, hasContent)

	m, _ = update(t, m, tuitest.KeyDown())
	r, ok := m.selectedRow()
	require.True(t, ok)
	require.False(t, r.header())
	assert.Equal(t, "Buy milk", r.task.Title)
	assert.True(t, m.hasPreview())
	assert.Contains(t, tuitest.StripANSI(m.renderList(100, 30)), "two")

	m, _ = update(t, m, tuitest.KeyUp())
	m, _ = update(t, m, tuitest.KeyUp())
	assert.Equal(t, 0, m.cursor)
}

func TestModel_ToggleSection(t *testing.T) {
	m := newTestModel(t, newFakeTasks(sampleTasks()...))
	m = syncList(t, m, hasContent)

	// Move to the Completed header and open it.
	for range 3 {
		m, _ = update(t, m, tuitest.KeyDown())
	}
	m, _ = update(t, m, tuitest.KeyEnter())

	m = syncList(t, m, func(st listscreen.State) bool {
		return st.Toggled[task.StatusCompleted]
	})
	assert.Contains(t, tuitest.StripANSI(m.renderList(100, 30)), "File taxes")
}

func TestModel_OpenTaskLoadsEditor(t *testing.T) {
	m := newTestModel(t, newFakeTasks(sampleTasks()...))
	m = syncList(t, m, hasContent)

	m, _ = update(t, m, tuitest.KeyDown())
	m, _ = update(t, m, tuitest.KeyEnter())

	ev := nextListEvent(t, m)
	require.Equal(t, listscreen.NavigateToEdit{ID: 1}, ev)

	m, _ = update(t, m, listEventMsg{event: ev})
	require.Equal(t, viewEdit, m.active)
	require.NotNil(t, m.edit)

	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	for st := range m.edit.screen.Subscribe(ctx) {
		if st.Loaded {
			m, _ = update(t, m, editStateMsg{screen: m.edit.screen, state: st})
			break
		}
	}

	values := m.edit.form.Values()
	assert.Equal(t, "Buy milk", values[fieldTitle])
	assert.Equal(t, "High", values[fieldPriority])
	assert.Equal(t, "2024-05-01", values[fieldDue])

	m, _ = update(t, m, tuitest.KeyEsc())
	assert.Equal(t, viewList, m.active)
	assert.Nil(t, m.edit)
}

func TestModel_CreateTaskSaves(t *testing.T) {
	tasks := newFakeTasks(sampleTasks()...)
	m := newTestModel(t, tasks)
	m = syncList(t, m, hasContent)

	m, _ = update(t, m, tuitest.KeyPress('a'))
	ev := nextListEvent(t, m)
	require.Equal(t, listscreen.NavigateToCreate{}, ev)
	m, _ = update(t, m, listEventMsg{event: ev})
	require.NotNil(t, m.edit)

	for _, k := range tuitest.Type("Water plants") {
		m, _ = update(t, m, k)
	}
	m, _ = update(t, m, tuitest.KeyCtrl('s'))

	require.Eventually(t, func() bool {
		tasks.mu.Lock()
		defer tasks.mu.Unlock()
		return len(tasks.saved) == 1
	}, waitTimeout, 10*time.Millisecond)

	tasks.mu.Lock()
	assert.Equal(t, "Water plants", tasks.saved[0].Title)
	tasks.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	for st := range m.edit.screen.Subscribe(ctx) {
		if st.ShowSuccess {
			m, _ = update(t, m, editStateMsg{screen: m.edit.screen, state: st})
			break
		}
	}
	assert.Contains(t, tuitest.StripANSI(m.renderEdit(100, 30)), "Saved.")

	screen := m.edit.screen
	m, _ = update(t, m, tuitest.KeyEnter())
	select {
	case ev := <-screen.Events():
		assert.Equal(t, editscreen.NavigateBack{}, ev)
		m, _ = update(t, m, editEventMsg{screen: screen, event: ev})
	case <-time.After(waitTimeout):
		require.FailNow(t, "no navigate back")
	}
	assert.Equal(t, viewList, m.active)
}

func TestModel_InvalidDueDateBlocksSave(t *testing.T) {
	tasks := newFakeTasks()
	m := newTestModel(t, tasks)
	m.openEdit(editscreen.NewCreate(tasks, task.Task{Title: "x"}, zerolog.Nop()))

	due, ok := m.edit.form.Field(fieldDue)
	require.True(t, ok)
	due.SetValue("tomorrow")

	m, _ = update(t, m, tuitest.KeyCtrl('s'))
	assert.Contains(t, tuitest.StripANSI(m.edit.form.View()), "use YYYY-MM-DD")

	time.Sleep(50 * time.Millisecond)
	tasks.mu.Lock()
	defer tasks.mu.Unlock()
	assert.Empty(t, tasks.saved)
}

func TestModel_SortDialog(t *testing.T) {
	m := newTestModel(t, newFakeTasks(sampleTasks()...))
	m = syncList(t, m, hasContent)

	m, _ = update(t, m, tuitest.KeyPress('s'))
	m = syncList(t, m, func(st listscreen.State) bool { return st.ShowSortDialog })
	assert.Contains(t, tuitest.StripANSI(m.renderSortDialog()), "Sort by")

	m, _ = update(t, m, tuitest.KeyDown())
	m, _ = update(t, m, tuitest.KeyEnter())
	m = syncList(t, m, func(st listscreen.State) bool {
		return st.SortBy == task.SortAlphabet && !st.ShowSortDialog && hasContent(st)
	})
	assert.Contains(t, tuitest.StripANSI(m.renderToolbar()), "Alphabet")
}

func TestModel_MatchFilters(t *testing.T) {
	m := newTestModel(t, newFakeTasks(sampleTasks()...))
	m = syncList(t, m, hasContent)

	m, _ = update(t, m, tuitest.KeyPress('/'))
	require.True(t, m.matching)
	for _, k := range tuitest.Type("*milk*") {
		m, _ = update(t, m, k)
	}
	m, _ = update(t, m, tuitest.KeyEnter())
	assert.False(t, m.matching)

	m = syncList(t, m, func(st listscreen.State) bool { return st.Match == "*milk*" && hasContent(st) })
	out := tuitest.StripANSI(m.renderList(100, 30))
	assert.Contains(t, out, "Buy milk")
	assert.NotContains(t, out, "Call mom")
}

func TestModel_DeleteConfirm(t *testing.T) {
	tasks := newFakeTasks(sampleTasks()...)
	m := newTestModel(t, tasks)

	m, _ = update(t, m, listEventMsg{event: listscreen.NavigateToDelete{ID: 3}})
	require.NotNil(t, m.confirm)

	t.Run("esc cancels", func(t *testing.T) {
		m, _ := update(t, m, tuitest.KeyEsc())
		assert.Nil(t, m.confirm)
	})

	m, cmd := update(t, m, tuitest.KeyPress('y'))
	assert.Nil(t, m.confirm)
	require.NotNil(t, cmd)

	msg := cmd()
	require.Equal(t, removeResultMsg{id: 3}, msg)
	assert.Equal(t, []int64{3}, tasks.removed)
}

func TestModel_DeleteFailureShowsToast(t *testing.T) {
	m := newTestModel(t, newFakeTasks())

	m, cmd := update(t, m, removeResultMsg{id: 404, err: errors.New("no such task")})
	assert.NotNil(t, cmd)
	require.True(t, m.toasts.HasToasts())
	assert.Equal(t, eventbus.LevelError, m.toasts.Toasts()[0].notification.Level)
}

func TestModel_NotificationsAndTheme(t *testing.T) {
	m := newTestModel(t, newFakeTasks())

	m, cmd := update(t, m, notificationMsg{Level: eventbus.LevelInfo, Message: "added \"x\""})
	assert.NotNil(t, cmd)
	assert.True(t, m.toasts.HasToasts())
	assert.True(t, m.toasts.Ticking())

	m, _ = update(t, m, themeMsg(settings.ThemeLight))
	assert.Equal(t, styles.LightPalette, m.styles.Palette)

	m, _ = update(t, m, themeMsg(settings.ThemeSystem))
	assert.Equal(t, styles.DarkPalette, m.styles.Palette, "system follows the dark default background")
}

func TestModel_QuitStopsScreens(t *testing.T) {
	tasks := newFakeTasks()
	m := newTestModel(t, tasks)
	m.openEdit(editscreen.NewCreate(tasks, task.Task{}, zerolog.Nop()))
	ctx := m.edit.ctx

	m, cmd := update(t, m, tuitest.KeyCtrl('c'))
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
	assert.Error(t, ctx.Err())
}
