package eventbus

import "fmt"

// NotificationRouter maps task events to user-facing status-line messages.
type NotificationRouter struct {
	bus *EventBus
}

// NewNotificationRouter constructs a router for event-to-notification mappings.
func NewNotificationRouter(bus *EventBus) *NotificationRouter {
	return &NotificationRouter{bus: bus}
}

// Register subscribes all supported event mappings.
func (r *NotificationRouter) Register() {
	if r == nil || r.bus == nil {
		return
	}

	r.bus.SubscribeTaskCreated(func(p TaskCreatedPayload) {
		r.notifyf(LevelInfo, "added %q", p.Task.Title)
	})

	r.bus.SubscribeTaskUpdated(func(p TaskUpdatedPayload) {
		r.notifyf(LevelInfo, "saved %q", p.Task.Title)
	})

	r.bus.SubscribeTaskStatusChanged(func(p TaskStatusChangedPayload) {
		r.notifyf(LevelInfo, "task %d marked %s", p.ID, p.Status)
	})

	r.bus.SubscribeTaskRemoved(func(p TaskRemovedPayload) {
		r.notifyf(LevelWarning, "task %d deleted", p.ID)
	})

	r.bus.SubscribeTasksCleared(func(p TasksClearedPayload) {
		r.notifyf(LevelWarning, "cleared %d tasks", p.Count)
	})

	r.bus.SubscribeThemeChanged(func(p ThemeChangedPayload) {
		r.notifyf(LevelInfo, "theme set to %s", p.Theme)
	})
}

func (r *NotificationRouter) notifyf(level Level, format string, args ...any) {
	r.bus.PublishNotificationPublished(NotificationPublishedPayload{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}
