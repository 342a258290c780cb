package doctor

import (
	"context"
	"fmt"

	"github.com/colonyops/tasks/internal/core/task"
)

// TaskCheck scans stored tasks for rows that the UI cannot display
// faithfully, such as those written by older versions or edited by hand.
type TaskCheck struct {
	store task.Store
}

// NewTaskCheck creates a new task data check.
func NewTaskCheck(store task.Store) *TaskCheck {
	return &TaskCheck{store: store}
}

func (c *TaskCheck) Name() string {
	return "Tasks"
}

func (c *TaskCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	tasks, err := c.store.List(ctx)
	if err != nil {
		result.Items = append(result.Items, CheckItem{Label: "read", Status: StatusFail, Detail: err.Error()})
		return result
	}

	var blank, badPriority, badStatus int
	for _, t := range tasks {
		if t.IsBlank() {
			blank++
		}
		if !t.Priority.Valid() {
			badPriority++
		}
		if _, err := task.ParseStatus(string(t.Status)); err != nil {
			badStatus++
		}
	}

	result.Items = append(result.Items, CheckItem{
		Label:  "count",
		Status: StatusPass,
		Detail: fmt.Sprintf("%d task(s)", len(tasks)),
	})

	if blank > 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "titles",
			Status: StatusWarn,
			Detail: fmt.Sprintf("%d task(s) with a blank title", blank),
		})
	}
	if badPriority > 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "priority",
			Status: StatusWarn,
			Detail: fmt.Sprintf("%d task(s) with an unknown priority", badPriority),
		})
	}
	if badStatus > 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "status",
			Status: StatusFail,
			Detail: fmt.Sprintf("%d task(s) with an unknown status", badStatus),
		})
	}

	return result
}
