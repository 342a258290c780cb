package doctor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tasks/internal/core/config"
	"github.com/colonyops/tasks/internal/core/task"
	"github.com/colonyops/tasks/internal/data/db"
)

type fakeDB struct {
	problems     []string
	checkErr     error
	states       []db.MigrationState
	walSize      int64
	checkpointed bool
}

func (f *fakeDB) Path() string { return "/data/tasks.db" }

func (f *fakeDB) QuickCheck(context.Context) ([]string, error) { return f.problems, f.checkErr }

func (f *fakeDB) MigrationStatus(context.Context) ([]db.MigrationState, error) {
	return f.states, nil
}

func (f *fakeDB) WALSize() int64 { return f.walSize }

func (f *fakeDB) Checkpoint(context.Context) error {
	f.checkpointed = true
	f.walSize = 0
	return nil
}

func applied(version int, name string, ok bool) db.MigrationState {
	return db.MigrationState{Migration: db.Migration{Version: version, Name: name}, Applied: ok}
}

func TestDatabaseCheck_Healthy(t *testing.T) {
	f := &fakeDB{states: []db.MigrationState{applied(1, "tasks", true), applied(2, "kv_store", true)}}

	result := NewDatabaseCheck(f, false).Run(context.Background())

	assert.Equal(t, "Database", result.Name)
	require.Len(t, result.Items, 3)
	for _, item := range result.Items {
		assert.Equal(t, StatusPass, item.Status, item.Label)
	}
	assert.Equal(t, "version 0002", result.Items[1].Detail)
}

func TestDatabaseCheck_Problems(t *testing.T) {
	f := &fakeDB{
		problems: []string{"row 3 missing from index idx_tasks_status"},
		states:   []db.MigrationState{applied(1, "tasks", true), applied(2, "kv_store", false)},
		walSize:  8 << 20,
	}

	results := RunAll(context.Background(), []Check{NewDatabaseCheck(f, false)})
	require.Len(t, results, 1)
	items := results[0].Items

	assert.Equal(t, StatusFail, items[0].Status)
	assert.Contains(t, items[0].Detail, "idx_tasks_status")
	assert.Equal(t, StatusWarn, items[1].Status)
	assert.Contains(t, items[1].Detail, "0002_kv_store")
	assert.Equal(t, StatusWarn, items[2].Status)
	assert.True(t, items[2].Fixable)
	assert.False(t, f.checkpointed)

	passed, warned, failed := Summary(results)
	assert.Equal(t, 0, passed)
	assert.Equal(t, 2, warned)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, CountFixable(results))
}

func TestDatabaseCheck_AutofixCheckpoints(t *testing.T) {
	f := &fakeDB{walSize: 8 << 20}

	result := NewDatabaseCheck(f, true).Run(context.Background())

	assert.True(t, f.checkpointed)
	wal := result.Items[2]
	assert.Equal(t, StatusPass, wal.Status)
	assert.True(t, wal.Fixed)
}

func TestDatabaseCheck_QuickCheckError(t *testing.T) {
	f := &fakeDB{checkErr: errors.New("file is not a database")}

	result := NewDatabaseCheck(f, false).Run(context.Background())
	assert.Equal(t, StatusFail, result.Items[0].Status)
}

type listStore struct {
	task.Store
	tasks []task.Task
	err   error
}

func (s listStore) List(context.Context) ([]task.Task, error) { return s.tasks, s.err }

func TestTaskCheck(t *testing.T) {
	now := time.Now()

	t.Run("clean", func(t *testing.T) {
		store := listStore{tasks: []task.Task{task.New("a", now), task.New("b", now)}}
		result := NewTaskCheck(store).Run(context.Background())
		require.Len(t, result.Items, 1)
		assert.Equal(t, "2 task(s)", result.Items[0].Detail)
	})

	t.Run("suspicious rows", func(t *testing.T) {
		blank := task.New(" ", now)
		odd := task.New("odd", now)
		odd.Priority = 9
		odd.Status = "archived"

		result := NewTaskCheck(listStore{tasks: []task.Task{blank, odd}}).Run(context.Background())
		_, warned, failed := Summary([]Result{result})
		assert.Equal(t, 2, warned)
		assert.Equal(t, 1, failed)
	})

	t.Run("read error", func(t *testing.T) {
		result := NewTaskCheck(listStore{err: errors.New("locked")}).Run(context.Background())
		require.Len(t, result.Items, 1)
		assert.Equal(t, StatusFail, result.Items[0].Status)
	})
}

func TestConfigCheck(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	result := NewConfigCheck(&cfg, "").Run(context.Background())
	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusPass, result.Items[0].Status)

	cfg.TUI.DateFormat = "never"
	result = NewConfigCheck(&cfg, "").Run(context.Background())
	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusFail, result.Items[0].Status)
	assert.Equal(t, "tui.date_format", result.Items[0].Label)
}
