package tasklist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tasks/internal/core/task"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func mixedTasks() []task.Task {
	return []task.Task{
		{ID: 4, Title: "d", Status: task.StatusPending, Priority: task.PriorityMedium, DueDate: day(2024, 1, 7)},
		{ID: 1, Title: "a", Status: task.StatusCompleted, Priority: task.PriorityLow, DueDate: day(2024, 1, 3)},
		{ID: 3, Title: "c", Status: task.StatusPending, Priority: task.PriorityHigh, DueDate: day(2024, 1, 9)},
		{ID: 2, Title: "b", Status: task.StatusPending, Priority: task.PriorityLow, DueDate: day(2024, 1, 1)},
		{ID: 5, Title: "e", Status: task.StatusCompleted, Priority: task.PriorityHigh, DueDate: day(2024, 1, 8)},
	}
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil, task.SortDueDate, task.StatusPending)
	assert.True(t, got.Empty())
	assert.Nil(t, got.Progress)
}

func TestAggregate_GroupsEveryTaskOnce(t *testing.T) {
	input := mixedTasks()
	got := Aggregate(input, task.SortDueDate, task.StatusPending)

	require.Len(t, got.Sections, 2)

	seen := map[int64]int{}
	for _, s := range got.Sections {
		assert.Equal(t, len(s.Tasks), s.Count)
		for _, tk := range s.Tasks {
			assert.Equal(t, s.Status, tk.Status)
			seen[tk.ID]++
		}
	}

	require.Len(t, seen, len(input))
	for id, n := range seen {
		assert.Equal(t, 1, n, "task %d", id)
	}
}

func TestAggregate_SectionOrderFollowsFirstSeen(t *testing.T) {
	got := Aggregate(mixedTasks(), task.SortDueDate, task.StatusPending)
	require.Len(t, got.Sections, 2)
	assert.Equal(t, task.StatusPending, got.Sections[0].Status)
	assert.Equal(t, task.StatusCompleted, got.Sections[1].Status)
}

func TestAggregate_Expanded(t *testing.T) {
	got := Aggregate(mixedTasks(), task.SortDueDate, task.StatusCompleted)

	pending, ok := got.Section(task.StatusPending)
	require.True(t, ok)
	assert.False(t, pending.Expanded)

	completed, ok := got.Section(task.StatusCompleted)
	require.True(t, ok)
	assert.True(t, completed.Expanded)
}

func TestAggregate_Progress(t *testing.T) {
	t.Run("all pending has no progress", func(t *testing.T) {
		got := Aggregate([]task.Task{
			{ID: 1, Status: task.StatusPending},
			{ID: 2, Status: task.StatusPending},
		}, task.SortDueDate, task.StatusPending)
		assert.Nil(t, got.Progress)
	})

	t.Run("one of each is fifty percent", func(t *testing.T) {
		got := Aggregate([]task.Task{
			{ID: 1, Status: task.StatusPending},
			{ID: 2, Status: task.StatusCompleted},
		}, task.SortDueDate, task.StatusPending)

		require.NotNil(t, got.Progress)
		assert.InDelta(t, 50.0, got.Progress.Percent, 1e-9)

		pending, _ := got.Section(task.StatusPending)
		completed, _ := got.Section(task.StatusCompleted)
		assert.Equal(t, 1, pending.Count)
		assert.Equal(t, 1, completed.Count)
	})

	t.Run("matches completed over total", func(t *testing.T) {
		got := Aggregate(mixedTasks(), task.SortDueDate, task.StatusPending)
		require.NotNil(t, got.Progress)
		assert.Equal(t, 2, got.Progress.Completed)
		assert.Equal(t, 5, got.Progress.Total)
		assert.InDelta(t, 40.0, got.Progress.Percent, 1e-9)
	})
}

func TestProgressOf(t *testing.T) {
	assert.Nil(t, ProgressOf(nil))

	got := ProgressOf(mixedTasks())
	require.NotNil(t, got)
	assert.Equal(t, Progress{Completed: 2, Total: 5, Percent: 40}, *got)
}

func TestAggregate_SortDueDate(t *testing.T) {
	t.Run("latest day first", func(t *testing.T) {
		got := Aggregate([]task.Task{
			{ID: 1, Status: task.StatusPending, DueDate: day(2024, 1, 5)},
			{ID: 2, Status: task.StatusPending, DueDate: day(2024, 1, 10)},
		}, task.SortDueDate, task.StatusPending)

		tasks := got.Sections[0].Tasks
		require.Len(t, tasks, 2)
		assert.Equal(t, day(2024, 1, 10), tasks[0].DueDate)
		assert.Equal(t, day(2024, 1, 5), tasks[1].DueDate)
	})

	t.Run("non-increasing within each section", func(t *testing.T) {
		got := Aggregate(mixedTasks(), task.SortDueDate, task.StatusPending)
		for _, s := range got.Sections {
			for i := 1; i < len(s.Tasks); i++ {
				assert.False(t, s.Tasks[i].DueDay().After(s.Tasks[i-1].DueDay()))
			}
		}
	})

	t.Run("time of day does not reorder same-day tasks", func(t *testing.T) {
		got := Aggregate([]task.Task{
			{ID: 1, Status: task.StatusPending, DueDate: time.Date(2024, 1, 5, 1, 0, 0, 0, time.UTC)},
			{ID: 2, Status: task.StatusPending, DueDate: time.Date(2024, 1, 5, 23, 0, 0, 0, time.UTC)},
		}, task.SortDueDate, task.StatusPending)

		tasks := got.Sections[0].Tasks
		assert.Equal(t, int64(1), tasks[0].ID)
		assert.Equal(t, int64(2), tasks[1].ID)
	})
}

func TestAggregate_SortAlphabetOrdersByID(t *testing.T) {
	got := Aggregate(mixedTasks(), task.SortAlphabet, task.StatusPending)
	for _, s := range got.Sections {
		for i := 1; i < len(s.Tasks); i++ {
			assert.LessOrEqual(t, s.Tasks[i-1].ID, s.Tasks[i].ID)
		}
	}

	pending, _ := got.Section(task.StatusPending)
	ids := []int64{}
	for _, tk := range pending.Tasks {
		ids = append(ids, tk.ID)
	}
	assert.Equal(t, []int64{2, 3, 4}, ids)
}

func TestAggregate_SortPriority(t *testing.T) {
	got := Aggregate(mixedTasks(), task.SortPriority, task.StatusPending)
	pending, _ := got.Section(task.StatusPending)

	require.Len(t, pending.Tasks, 3)
	assert.Equal(t, task.PriorityHigh, pending.Tasks[0].Priority)
	assert.Equal(t, task.PriorityMedium, pending.Tasks[1].Priority)
	assert.Equal(t, task.PriorityLow, pending.Tasks[2].Priority)
}

func TestAggregate_Idempotent(t *testing.T) {
	input := mixedTasks()
	for _, sortBy := range task.SortOptions {
		first := Aggregate(input, sortBy, task.StatusPending)
		second := Aggregate(input, sortBy, task.StatusPending)
		assert.Equal(t, first, second, sortBy)
	}
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	input := mixedTasks()
	before := append([]task.Task(nil), input...)
	_ = Aggregate(input, task.SortPriority, task.StatusPending)
	assert.Equal(t, before, input)
}
