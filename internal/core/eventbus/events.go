// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within tasks.
package eventbus

import (
	"github.com/colonyops/tasks/internal/core/task"
)

// Event names a bus topic.
type Event string

// Keep list sorted A-Z.
const (
	EventNotificationPublished Event = "notification.published"
	EventTaskCreated           Event = "task.created"
	EventTaskRemoved           Event = "task.removed"
	EventTaskStatusChanged     Event = "task.status-changed"
	EventTaskUpdated           Event = "task.updated"
	EventTasksCleared          Event = "tasks.cleared"
	EventThemeChanged          Event = "theme.changed"
)

// TaskEvents lists every event emitted by a task mutation.
var TaskEvents = []Event{
	EventTaskCreated,
	EventTaskRemoved,
	EventTaskStatusChanged,
	EventTaskUpdated,
	EventTasksCleared,
}

// TaskCreatedPayload is emitted after a task is inserted.
type TaskCreatedPayload struct {
	Task task.Task
}

// TaskUpdatedPayload is emitted after a task's editable fields change.
type TaskUpdatedPayload struct {
	Task task.Task
}

// TaskStatusChangedPayload is emitted after a task changes status.
type TaskStatusChangedPayload struct {
	ID     int64
	Status task.Status
}

// TaskRemovedPayload is emitted after a task is deleted.
type TaskRemovedPayload struct {
	ID int64
}

// TasksClearedPayload is emitted after all tasks are deleted.
type TasksClearedPayload struct {
	Count int64
}

// ThemeChangedPayload is emitted after the theme preference is stored.
type ThemeChangedPayload struct {
	Theme string
}

// Level is the severity of a user-facing notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// NotificationPublishedPayload carries a short message for the status line.
type NotificationPublishedPayload struct {
	Level   Level
	Message string
}
