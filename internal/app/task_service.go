// Package app wires the task store, preferences and event bus into the
// services consumed by commands and the TUI.
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/tasks/internal/core/eventbus"
	"github.com/colonyops/tasks/internal/core/task"
	"github.com/colonyops/tasks/pkg/replay"
)

// TaskService wraps task.Store with a live query surface and event publishing.
// Every mutation re-reads the full task set and publishes it to watchers.
type TaskService struct {
	store task.Store
	bus   *eventbus.EventBus
	log   zerolog.Logger
	now   func() time.Time

	// refreshMu serializes read-then-publish so watchers never see an older
	// snapshot after a newer one.
	refreshMu sync.Mutex
	snapshots replay.Topic[task.Snapshot]
}

// NewTaskService creates a new TaskService. bus may be nil.
func NewTaskService(store task.Store, bus *eventbus.EventBus, log zerolog.Logger) *TaskService {
	return &TaskService{
		store: store,
		bus:   bus,
		log:   log.With().Str("component", "task-service").Logger(),
		now:   time.Now,
	}
}

// Create inserts a new pending task and returns it with its assigned id.
// Zero priority and due date fall back to Low and now.
func (s *TaskService) Create(ctx context.Context, t task.Task) (task.Task, error) {
	t.ID = 0
	t.Title = strings.TrimSpace(t.Title)
	t.Status = task.StatusPending
	if t.Priority == 0 {
		t.Priority = task.PriorityLow
	}
	if t.DueDate.IsZero() {
		t.DueDate = s.now()
	}

	id, err := s.store.Insert(ctx, t)
	if err != nil {
		return task.Task{}, err
	}
	t.ID = id

	s.log.Debug().Ctx(ctx).Int64("id", id).Str("title", t.Title).Msg("task created")
	s.Refresh(ctx)
	if s.bus != nil {
		s.bus.PublishTaskCreated(eventbus.TaskCreatedPayload{Task: t})
	}
	return t, nil
}

// Get returns a single task.
func (s *TaskService) Get(ctx context.Context, id int64) (task.Task, error) {
	return s.store.Get(ctx, id)
}

// List returns the current task set.
func (s *TaskService) List(ctx context.Context) ([]task.Task, error) {
	return s.store.List(ctx)
}

// Update saves title, description, priority and due date of an existing task.
func (s *TaskService) Update(ctx context.Context, t task.Task) error {
	t.Title = strings.TrimSpace(t.Title)

	n, err := s.store.Update(ctx, t)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("update task %d: %w", t.ID, task.ErrNotFound)
	}

	s.log.Debug().Ctx(ctx).Int64("id", t.ID).Msg("task updated")
	s.Refresh(ctx)
	if s.bus != nil {
		s.bus.PublishTaskUpdated(eventbus.TaskUpdatedPayload{Task: t})
	}
	return nil
}

// Complete marks a task completed.
func (s *TaskService) Complete(ctx context.Context, id int64) error {
	return s.SetStatus(ctx, id, task.StatusCompleted)
}

// SetStatus changes a task's status.
func (s *TaskService) SetStatus(ctx context.Context, id int64, status task.Status) error {
	n, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("update task %d status: %w", id, task.ErrNotFound)
	}

	s.log.Debug().Ctx(ctx).Int64("id", id).Str("status", string(status)).Msg("task status changed")
	s.Refresh(ctx)
	if s.bus != nil {
		s.bus.PublishTaskStatusChanged(eventbus.TaskStatusChangedPayload{ID: id, Status: status})
	}
	return nil
}

// Remove deletes a task.
func (s *TaskService) Remove(ctx context.Context, id int64) error {
	n, err := s.store.Remove(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("remove task %d: %w", id, task.ErrNotFound)
	}

	s.log.Debug().Ctx(ctx).Int64("id", id).Msg("task removed")
	s.Refresh(ctx)
	if s.bus != nil {
		s.bus.PublishTaskRemoved(eventbus.TaskRemovedPayload{ID: id})
	}
	return nil
}

// Clear deletes every task and returns how many were removed.
func (s *TaskService) Clear(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	s.log.Debug().Ctx(ctx).Int64("count", n).Msg("tasks cleared")
	s.Refresh(ctx)
	if s.bus != nil {
		s.bus.PublishTasksCleared(eventbus.TasksClearedPayload{Count: n})
	}
	return n, nil
}

// Refresh re-reads the full task set and publishes it to watchers. A read
// failure is published as a snapshot carrying the error.
func (s *TaskService) Refresh(ctx context.Context) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	tasks, err := s.store.List(ctx)
	if err != nil {
		s.log.Error().Ctx(ctx).Err(err).Msg("failed to refresh task snapshot")
		s.snapshots.Publish(task.Snapshot{Err: err})
		return
	}
	s.snapshots.Publish(task.Snapshot{Tasks: tasks})
}

// Watch returns a live view of the full task set: the current snapshot
// first, then a new snapshot after every mutation. Delivery is latest-wins.
// The channel closes when ctx is done.
func (s *TaskService) Watch(ctx context.Context) <-chan task.Snapshot {
	if _, ok := s.snapshots.Latest(); !ok {
		s.Refresh(ctx)
	}
	return s.snapshots.Subscribe(ctx)
}

// WatchTask is Watch narrowed to one task. Each emission carries the task
// or task.ErrNotFound when it is absent from the snapshot.
func (s *TaskService) WatchTask(ctx context.Context, id int64) <-chan task.Result {
	var results replay.Topic[task.Result]
	out := results.Subscribe(ctx)

	snapshots := s.Watch(ctx)
	go func() {
		for snap := range snapshots {
			results.Publish(snap.Find(id))
		}
	}()

	return out
}
