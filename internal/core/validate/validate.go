// Package validate provides shared validation functions.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/tasks/internal/core/task"
)

// ErrTitleRequired is returned when a task title is blank.
var ErrTitleRequired = errors.New("title is required")

// Title validates a task title is non-empty after trimming whitespace.
func Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	return nil
}

// TitleField returns a criterio validator for task titles.
func TitleField(field, title string) error {
	return criterio.Run(field, title, Title)
}

// Task validates the user-editable fields of t.
func Task(t task.Task) error {
	return criterio.ValidateStruct(
		TitleField("title", t.Title),
		criterio.Run("priority", t.Priority, priority),
		criterio.Run("due_date", t.DueDate, dueDate),
	)
}

func priority(p task.Priority) error {
	if !p.Valid() {
		return fmt.Errorf("must be one of low, medium, high")
	}
	return nil
}

func dueDate(d time.Time) error {
	if d.IsZero() {
		return fmt.Errorf("is required")
	}
	return nil
}
