package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/tasks/internal/core/task"
	"github.com/colonyops/tasks/internal/data/db"
)

// TaskStore implements task.Store using SQLite.
type TaskStore struct {
	db  *db.DB
	now func() time.Time
}

var _ task.Store = (*TaskStore)(nil)

// NewTaskStore creates a new SQLite-backed task store.
func NewTaskStore(db *db.DB) *TaskStore {
	return &TaskStore{db: db, now: time.Now}
}

// Insert persists t. A zero ID lets SQLite assign one; a non-zero ID replaces
// the existing row with that id.
func (s *TaskStore) Insert(ctx context.Context, t task.Task) (int64, error) {
	if err := validate(&t, s.now()); err != nil {
		return 0, err
	}

	now := s.now().UnixNano()
	dueAt, zone, offset := encodeDue(t.DueDate)
	priority, status := int64(t.Priority), string(t.Status)

	var id int64

	err := withBusyRetry(ctx, func() error {
		if t.ID == 0 {
			var err error
			id, err = s.db.Queries().CreateTask(ctx, db.CreateTaskParams{
				Title:       t.Title,
				Description: t.Description,
				Priority:    priority,
				Status:      status,
				DueAt:       dueAt,
				DueZone:     zone,
				DueOffset:   offset,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
			return err
		}

		id = t.ID
		return s.db.Queries().ReplaceTask(ctx, db.ReplaceTaskParams{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Priority:    priority,
			Status:      status,
			DueAt:       dueAt,
			DueZone:     zone,
			DueOffset:   offset,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	})
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}

	return id, nil
}

// Get returns a single task by id.
func (s *TaskStore) Get(ctx context.Context, id int64) (task.Task, error) {
	row, err := s.db.Queries().GetTask(ctx, id)
	if err != nil {
		if IsNotFoundError(err) {
			return task.Task{}, fmt.Errorf("get task %d: %w", id, task.ErrNotFound)
		}
		return task.Task{}, fmt.Errorf("get task %d: %w", id, err)
	}
	return rowToTask(row), nil
}

// List returns every task ordered by id.
func (s *TaskStore) List(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.Queries().ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]task.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, rowToTask(row))
	}
	return tasks, nil
}

// Update overwrites the editable fields of an existing task. Status is left
// untouched; use UpdateStatus for that.
func (s *TaskStore) Update(ctx context.Context, t task.Task) (int64, error) {
	if !t.Priority.Valid() {
		return 0, fmt.Errorf("update task %d: %w: priority %d", t.ID, task.ErrInvalid, t.Priority)
	}

	dueAt, zone, offset := encodeDue(t.DueDate)

	var n int64
	err := withBusyRetry(ctx, func() error {
		var err error
		n, err = s.db.Queries().UpdateTask(ctx, db.UpdateTaskParams{
			Title:       t.Title,
			Description: t.Description,
			Priority:    int64(t.Priority),
			DueAt:       dueAt,
			DueZone:     zone,
			DueOffset:   offset,
			UpdatedAt:   s.now().UnixNano(),
			ID:          t.ID,
		})
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("update task %d: %w", t.ID, err)
	}
	return n, nil
}

// UpdateStatus changes the status of a task.
func (s *TaskStore) UpdateStatus(ctx context.Context, id int64, status task.Status) (int64, error) {
	status, err := task.ParseStatus(string(status))
	if err != nil {
		return 0, fmt.Errorf("update task %d status: %w", id, err)
	}

	var n int64
	err = withBusyRetry(ctx, func() error {
		var err error
		n, err = s.db.Queries().UpdateTaskStatus(ctx, db.UpdateTaskStatusParams{
			Status:    string(status),
			UpdatedAt: s.now().UnixNano(),
			ID:        id,
		})
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("update task %d status: %w", id, err)
	}
	return n, nil
}

// Remove deletes a task.
func (s *TaskStore) Remove(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := withBusyRetry(ctx, func() error {
		var err error
		n, err = s.db.Queries().DeleteTask(ctx, id)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("remove task %d: %w", id, err)
	}
	return n, nil
}

// DeleteAll deletes every task.
func (s *TaskStore) DeleteAll(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithTx(ctx, func(q *db.Queries) error {
		var err error
		n, err = q.DeleteAllTasks(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("delete all tasks: %w", err)
	}
	return n, nil
}

func validate(t *task.Task, now time.Time) error {
	if t.Priority == 0 {
		t.Priority = task.PriorityLow
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("insert task: %w: priority %d", task.ErrInvalid, t.Priority)
	}

	if t.Status == "" {
		t.Status = task.StatusPending
	}
	status, err := task.ParseStatus(string(t.Status))
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	t.Status = status

	if t.DueDate.IsZero() {
		t.DueDate = now
	}
	return nil
}

// encodeDue splits a due date into unix nanoseconds and the zone it was
// expressed in.
func encodeDue(due time.Time) (int64, string, int64) {
	name, offset := due.Zone()
	return due.UnixNano(), name, int64(offset)
}

func decodeDue(at int64, zone string, offset int64) time.Time {
	loc := time.UTC
	if zone != "UTC" || offset != 0 {
		loc = time.FixedZone(zone, int(offset))
	}
	return time.Unix(0, at).In(loc)
}

func rowToTask(row db.Task) task.Task {
	return task.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Priority:    task.Priority(row.Priority),
		DueDate:     decodeDue(row.DueAt, row.DueZone, row.DueOffset),
		Status:      task.Status(row.Status),
	}
}
