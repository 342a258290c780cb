package task

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a task does not exist.
	ErrNotFound = errors.New("task not found")
	// ErrInvalid is returned for malformed task fields or unknown enum values.
	ErrInvalid = errors.New("invalid task")
)

// Store defines the interface for task persistence.
type Store interface {
	// Insert persists a task and returns its id. A zero ID asks the store to
	// assign one; a non-zero ID replaces any existing row with that id.
	Insert(ctx context.Context, t Task) (int64, error)

	// Get returns a single task by id.
	// Returns ErrNotFound if the task does not exist.
	Get(ctx context.Context, id int64) (Task, error)

	// List returns every task ordered by id.
	List(ctx context.Context) ([]Task, error)

	// Update overwrites title, description, priority and due date.
	// Returns the number of affected rows.
	Update(ctx context.Context, t Task) (int64, error)

	// UpdateStatus changes the status of a task and returns the number of affected rows.
	UpdateStatus(ctx context.Context, id int64, status Status) (int64, error)

	// Remove deletes a task and returns the number of affected rows.
	Remove(ctx context.Context, id int64) (int64, error)

	// DeleteAll deletes every task and returns the number of affected rows.
	DeleteAll(ctx context.Context) (int64, error)
}
