package commands

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tasks/internal/core/config"
	"github.com/colonyops/tasks/internal/core/task"
	"github.com/colonyops/tasks/internal/core/tasklist"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "12", want: 12},
		{in: "#7", want: 7},
		{in: "3:Buy milk", want: 3},
		{in: "0", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseID(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDue(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	now := time.Date(2024, 5, 10, 14, 30, 0, 0, loc)

	t.Run("date keeps the clock", func(t *testing.T) {
		got, err := parseDue("2024-06-01", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 1, 14, 30, 0, 0, loc), got)
	})

	t.Run("rfc3339", func(t *testing.T) {
		got, err := parseDue("2024-06-01T09:00:00Z", now)
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)))
	})

	t.Run("keywords", func(t *testing.T) {
		got, err := parseDue("today", now)
		require.NoError(t, err)
		assert.Equal(t, now, got)

		got, err = parseDue("Tomorrow", now)
		require.NoError(t, err)
		assert.Equal(t, now.AddDate(0, 0, 1), got)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := parseDue("next week", now)
		assert.ErrorContains(t, err, "YYYY-MM-DD")
	})
}

func TestStatusIn(t *testing.T) {
	assert.True(t, statusIn(task.StatusCompleted, nil))
	assert.True(t, statusIn(task.StatusPending, []task.Status{task.StatusPending}))
	assert.False(t, statusIn(task.StatusCompleted, []task.Status{task.StatusPending}))
}

func TestOnlySection(t *testing.T) {
	now := time.Now()
	done := task.New("done", now)
	done.Status = task.StatusCompleted

	overview := tasklist.Aggregate([]task.Task{task.New("open", now), done}, task.SortDueDate, task.StatusPending)

	t.Run("keeps one section and progress", func(t *testing.T) {
		got := onlySection(overview, task.StatusCompleted)
		require.Len(t, got.Sections, 1)
		assert.Equal(t, task.StatusCompleted, got.Sections[0].Status)
		require.NotNil(t, got.Progress)
		assert.Equal(t, 2, got.Progress.Total)
	})

	t.Run("missing status empties", func(t *testing.T) {
		pendingOnly := tasklist.Aggregate([]task.Task{task.New("open", now)}, task.SortDueDate, task.StatusPending)
		got := onlySection(pendingOnly, task.StatusCompleted)
		assert.True(t, got.Empty())
	})
}

func TestImportInput_Validate(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		err := ImportInput{}.Validate()
		var fieldErrs criterio.FieldErrors
		require.True(t, errors.As(err, &fieldErrs))
		assert.Equal(t, "tasks", fieldErrs[0].Field)
	})

	t.Run("valid", func(t *testing.T) {
		in := ImportInput{Tasks: []ImportTask{
			{Title: "a"},
			{Title: "b", Priority: "high", Status: "completed"},
		}}
		assert.NoError(t, in.Validate())
	})

	t.Run("collects every field error", func(t *testing.T) {
		in := ImportInput{Tasks: []ImportTask{
			{Title: "  "},
			{Title: "ok", Priority: "urgent", Status: "archived"},
		}}
		err := in.Validate()

		var fieldErrs criterio.FieldErrors
		require.True(t, errors.As(err, &fieldErrs))

		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field)
		}
		assert.ElementsMatch(t, []string{"tasks[0].title", "tasks[1].priority", "tasks[1].status"}, fields)
	})
}

func TestImportTask_ToTask(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	defaults := config.DefaultsConfig{Priority: "medium", DueIn: 24 * time.Hour}

	t.Run("defaults fill gaps", func(t *testing.T) {
		got := ImportTask{Title: "a"}.toTask(defaults.NewTask, now)
		assert.Equal(t, "a", got.Title)
		assert.Equal(t, task.PriorityMedium, got.Priority)
		assert.Equal(t, now.Add(24*time.Hour), got.DueDate)
		assert.Equal(t, task.StatusPending, got.Status)
	})

	t.Run("explicit fields win", func(t *testing.T) {
		due := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
		got := ImportTask{Title: "b", Description: "d", Priority: "high", DueDate: due}.toTask(defaults.NewTask, now)
		assert.Equal(t, "d", got.Description)
		assert.Equal(t, task.PriorityHigh, got.Priority)
		assert.Equal(t, due, got.DueDate)
	})
}

func TestFieldIssues(t *testing.T) {
	assert.Nil(t, fieldIssues(nil))

	plain := fieldIssues(fmt.Errorf("data directory cannot be empty"))
	require.Len(t, plain, 1)
	assert.Equal(t, "config", plain[0].Field)

	var b criterio.FieldErrorsBuilder
	b = b.Append("tui.date_format", fmt.Errorf("bad layout"))
	issues := fieldIssues(b.ToError())
	require.Len(t, issues, 1)
	assert.Equal(t, configIssue{Field: "tui.date_format", Message: "bad layout"}, issues[0])
}
