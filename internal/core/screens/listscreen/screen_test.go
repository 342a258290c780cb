package listscreen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tasks/internal/app"
	"github.com/colonyops/tasks/internal/core/task"
	"github.com/colonyops/tasks/internal/data/db"
	"github.com/colonyops/tasks/internal/data/stores"
)

const waitTimeout = 2 * time.Second

type fakeSource struct {
	ch chan task.Snapshot
}

func newFakeSource() *fakeSource {
	return &fakeSource{ch: make(chan task.Snapshot, 1)}
}

func (f *fakeSource) Watch(context.Context) <-chan task.Snapshot { return f.ch }

func startScreen(t *testing.T, src Source, opts Options) (*Screen, context.Context) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	s := New(src, opts, zerolog.Nop())
	go func() { _ = s.Run(ctx) }()
	return s, ctx
}

func waitState(t *testing.T, ctx context.Context, s *Screen, pred func(State) bool) State {
	t.Helper()
	ctx, cancel := context.WithTimeout(ctx, waitTimeout)
	defer cancel()

	for st := range s.Subscribe(ctx) {
		if pred(st) {
			return st
		}
	}
	require.FailNow(t, "state never matched", "last state: %+v", s.State())
	return State{}
}

func isContent(st State) bool {
	_, ok := st.View.(Content)
	return ok
}

func waitEvent(t *testing.T, s *Screen) Event {
	t.Helper()
	select {
	case e := <-s.Events():
		return e
	case <-time.After(waitTimeout):
		require.FailNow(t, "no event")
	}
	return nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}

func pending(id int64, title string, due time.Time) task.Task {
	return task.Task{ID: id, Title: title, Priority: task.PriorityLow, DueDate: due, Status: task.StatusPending}
}

func completed(id int64, title string, due time.Time) task.Task {
	t := pending(id, title, due)
	t.Status = task.StatusCompleted
	return t
}

func TestScreen_StartsLoading(t *testing.T) {
	s := New(newFakeSource(), Options{}, zerolog.Nop())

	st := s.State()
	assert.IsType(t, Loading{}, st.View)
	assert.Equal(t, task.SortDueDate, st.SortBy)
	assert.Equal(t, task.StatusPending, st.FilterBy)
	assert.False(t, st.ShowSortDialog)
}

func TestScreen_EmptySnapshotIsNoItems(t *testing.T) {
	src := newFakeSource()
	s, ctx := startScreen(t, src, Options{})

	src.ch <- task.Snapshot{}

	st := waitState(t, ctx, s, func(st State) bool { _, ok := st.View.(NoItems); return ok })
	assert.IsType(t, NoItems{}, st.View)
}

func TestScreen_SnapshotErrorIsError(t *testing.T) {
	src := newFakeSource()
	s, ctx := startScreen(t, src, Options{})

	src.ch <- task.Snapshot{Err: errors.New("database is locked")}

	st := waitState(t, ctx, s, func(st State) bool { _, ok := st.View.(Error); return ok })
	assert.Equal(t, "database is locked", st.View.(Error).Message)

	src.ch <- task.Snapshot{Tasks: []task.Task{pending(1, "recovered", day(2024, 1, 1))}}
	waitState(t, ctx, s, isContent)
}

func TestScreen_SortsByDueDateDescending(t *testing.T) {
	src := newFakeSource()
	s, ctx := startScreen(t, src, Options{})

	src.ch <- task.Snapshot{Tasks: []task.Task{
		pending(1, "early", day(2024, 1, 5)),
		pending(2, "late", day(2024, 1, 10)),
	}}

	st := waitState(t, ctx, s, isContent)
	sec, ok := st.View.(Content).Overview.Section(task.StatusPending)
	require.True(t, ok)
	require.Len(t, sec.Tasks, 2)
	assert.Equal(t, 10, sec.Tasks[0].DueDate.Day())
	assert.Equal(t, 5, sec.Tasks[1].DueDate.Day())
	assert.True(t, sec.Expanded)
}

func TestScreen_DismissSortDialog(t *testing.T) {
	src := newFakeSource()
	s, ctx := startScreen(t, src, Options{})

	src.ch <- task.Snapshot{Tasks: []task.Task{pending(1, "a", day(2024, 1, 1))}}
	waitState(t, ctx, s, isContent)

	require.NoError(t, s.Send(ctx, ShowSortDialog{}))
	waitState(t, ctx, s, func(st State) bool { return st.ShowSortDialog })

	require.NoError(t, s.Send(ctx, DismissSortDialog{}))
	st := waitState(t, ctx, s, func(st State) bool { return !st.ShowSortDialog })
	assert.Equal(t, task.SortDueDate, st.SortBy)
	assert.IsType(t, Content{}, st.View)
}

func TestScreen_SortChangeBeforeFirstSnapshot(t *testing.T) {
	src := newFakeSource()
	s, ctx := startScreen(t, src, Options{})

	require.NoError(t, s.Send(ctx, ShowSortDialog{}))
	waitState(t, ctx, s, func(st State) bool { return st.ShowSortDialog })

	require.NoError(t, s.Send(ctx, SortChange{SortBy: task.SortAlphabet}))
	st := waitState(t, ctx, s, func(st State) bool { return st.SortBy == task.SortAlphabet })
	assert.IsType(t, Loading{}, st.View)
	assert.False(t, st.ShowSortDialog)

	src.ch <- task.Snapshot{Tasks: []task.Task{
		pending(3, "c", day(2024, 1, 1)),
		pending(1, "a", day(2024, 1, 9)),
	}}

	st = waitState(t, ctx, s, isContent)
	sec, _ := st.View.(Content).Overview.Section(task.StatusPending)
	assert.Equal(t, []int64{1, 3}, []int64{sec.Tasks[0].ID, sec.Tasks[1].ID})
}

func TestScreen_SortChangeReaggregates(t *testing.T) {
	src := newFakeSource()
	s, ctx := startScreen(t, src, Options{})

	low := pending(1, "low", day(2024, 1, 9))
	high := pending(2, "high", day(2024, 1, 1))
	high.Priority = task.PriorityHigh
	src.ch <- task.Snapshot{Tasks: []task.Task{low, high}}
	waitState(t, ctx, s, isContent)

	require.NoError(t, s.Send(ctx, SortChange{SortBy: task.SortPriority}))

	st := waitState(t, ctx, s, func(st State) bool {
		return st.SortBy == task.SortPriority && isContent(st)
	})
	sec, _ := st.View.(Content).Overview.Section(task.StatusPending)
	assert.Equal(t, int64(2), sec.Tasks[0].ID)
}

func TestScreen_ItemClick(t *testing.T) {
	src := newFakeSource()
	s, ctx := startScreen(t, src, Options{})

	src.ch <- task.Snapshot{Tasks: []task.Task{
		pending(1, "todo", day(2024, 1, 1)),
		completed(2, "done", day(2024, 1, 1)),
	}}
	before := waitState(t, ctx, s, isContent)

	require.NoError(t, s.Send(ctx, ItemClick{ID: 1}))
	assert.Equal(t, NavigateToEdit{ID: 1}, waitEvent(t, s))

	require.NoError(t, s.Send(ctx, ItemClick{ID: 2}))
	assert.Equal(t, NavigateToDelete{ID: 2}, waitEvent(t, s))

	require.NoError(t, s.Send(ctx, AddTask{}))
	assert.Equal(t, NavigateToCreate{}, waitEvent(t, s))

	require.NoError(t, s.Send(ctx, ShowSettings{}))
	assert.Equal(t, NavigateToSettings{}, waitEvent(t, s))

	assert.Equal(t, before, s.State())
}

func TestScreen_FilterAndToggle(t *testing.T) {
	src := newFakeSource()
	s, ctx := startScreen(t, src, Options{})

	src.ch <- task.Snapshot{Tasks: []task.Task{
		pending(1, "todo", day(2024, 1, 1)),
		completed(2, "done", day(2024, 1, 1)),
	}}
	waitState(t, ctx, s, isContent)

	expanded := func(st State, status task.Status) bool {
		sec, _ := st.View.(Content).Overview.Section(status)
		return sec.Expanded
	}

	require.NoError(t, s.Send(ctx, FilterChange{Status: task.StatusCompleted}))
	st := waitState(t, ctx, s, func(st State) bool { return st.FilterBy == task.StatusCompleted })
	assert.True(t, expanded(st, task.StatusCompleted))
	assert.False(t, expanded(st, task.StatusPending))

	require.NoError(t, s.Send(ctx, ToggleSection{Status: task.StatusPending}))
	st = waitState(t, ctx, s, func(st State) bool { return st.Toggled[task.StatusPending] })
	assert.True(t, expanded(st, task.StatusPending))

	require.NoError(t, s.Send(ctx, FilterChange{Status: task.StatusPending}))
	st = waitState(t, ctx, s, func(st State) bool { return st.FilterBy == task.StatusPending })
	assert.Empty(t, st.Toggled)
	assert.True(t, expanded(st, task.StatusPending))
	assert.False(t, expanded(st, task.StatusCompleted))
}

func TestScreen_MatchChange(t *testing.T) {
	src := newFakeSource()
	s, ctx := startScreen(t, src, Options{})

	src.ch <- task.Snapshot{Tasks: []task.Task{
		pending(1, "Buy milk", day(2024, 1, 1)),
		pending(2, "Call mom", day(2024, 1, 1)),
	}}
	waitState(t, ctx, s, isContent)

	require.NoError(t, s.Send(ctx, MatchChange{Pattern: "milk"}))
	st := waitState(t, ctx, s, func(st State) bool { return st.Match == "milk" })
	sec, _ := st.View.(Content).Overview.Section(task.StatusPending)
	require.Len(t, sec.Tasks, 1)
	assert.Equal(t, "Buy milk", sec.Tasks[0].Title)

	require.NoError(t, s.Send(ctx, MatchChange{Pattern: "[unclosed"}))
	st = waitState(t, ctx, s, func(st State) bool { return st.MatchErr != "" })
	sec, _ = st.View.(Content).Overview.Section(task.StatusPending)
	assert.Len(t, sec.Tasks, 1, "previous filter stays in effect")
}

func TestScreen_MatchKeepsOverallProgress(t *testing.T) {
	src := newFakeSource()
	s, ctx := startScreen(t, src, Options{})

	src.ch <- task.Snapshot{Tasks: []task.Task{
		pending(1, "Buy milk", day(2024, 1, 1)),
		pending(2, "Call mom", day(2024, 1, 1)),
		completed(3, "Pay rent", day(2024, 1, 1)),
		completed(4, "Water plants", day(2024, 1, 1)),
	}}
	waitState(t, ctx, s, isContent)

	require.NoError(t, s.Send(ctx, MatchChange{Pattern: "milk"}))
	st := waitState(t, ctx, s, func(st State) bool { return st.Match == "milk" })

	overview := st.View.(Content).Overview
	_, ok := overview.Section(task.StatusCompleted)
	assert.False(t, ok, "no completed task matches")
	require.NotNil(t, overview.Progress)
	assert.Equal(t, 2, overview.Progress.Completed)
	assert.Equal(t, 4, overview.Progress.Total)
	assert.InDelta(t, 50.0, overview.Progress.Percent, 0.001)
}

// End-to-end against SQLite through the live query.

func newLiveScreen(t *testing.T) (*Screen, *app.TaskService, context.Context) {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	svc := app.NewTaskService(stores.NewTaskStore(database), nil, zerolog.Nop())
	s, ctx := startScreen(t, svc, Options{})
	return s, svc, ctx
}

func TestScreen_LiveEmptyStore(t *testing.T) {
	s, _, ctx := newLiveScreen(t)
	waitState(t, ctx, s, func(st State) bool { _, ok := st.View.(NoItems); return ok })
}

func TestScreen_LiveInsertThenComplete(t *testing.T) {
	s, svc, ctx := newLiveScreen(t)
	waitState(t, ctx, s, func(st State) bool { _, ok := st.View.(NoItems); return ok })

	created, err := svc.Create(ctx, task.New("Buy milk", time.Now()))
	require.NoError(t, err)

	st := waitState(t, ctx, s, isContent)
	overview := st.View.(Content).Overview
	require.Len(t, overview.Sections, 1)
	assert.Equal(t, "Pending", overview.Sections[0].Label())
	assert.Equal(t, 1, overview.Sections[0].Count)
	_, hasCompleted := overview.Section(task.StatusCompleted)
	assert.False(t, hasCompleted)
	assert.Nil(t, overview.Progress)

	require.NoError(t, svc.Complete(ctx, created.ID))

	st = waitState(t, ctx, s, func(st State) bool {
		if !isContent(st) {
			return false
		}
		_, ok := st.View.(Content).Overview.Section(task.StatusCompleted)
		return ok
	})
	overview = st.View.(Content).Overview
	_, hasPending := overview.Section(task.StatusPending)
	assert.False(t, hasPending)
	require.NotNil(t, overview.Progress)
	assert.InDelta(t, 100.0, overview.Progress.Percent, 0.001)
}
