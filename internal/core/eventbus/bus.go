package eventbus

import (
	"context"
	"sync"
)

type envelope struct {
	event   Event
	payload any
}

// EventBus dispatches published events to subscribers on a single
// goroutine started by Start. Publishing never blocks; when the buffer is
// full the event is dropped and the OnDrop hooks fire.
type EventBus struct {
	ch    chan envelope
	hooks hooks

	mu   sync.RWMutex
	subs map[Event][]func(any)
}

// New creates a bus with the given buffer size.
func New(bufSize int) *EventBus {
	if bufSize < 1 {
		bufSize = 1
	}
	return &EventBus{
		ch:   make(chan envelope, bufSize),
		subs: make(map[Event][]func(any)),
	}
}

// Start dispatches events until ctx is done.
func (bus *EventBus) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-bus.ch:
			bus.dispatch(env)
		}
	}
}

func (bus *EventBus) dispatch(env envelope) {
	bus.mu.RLock()
	subs := make([]func(any), len(bus.subs[env.event]))
	copy(subs, bus.subs[env.event])
	bus.mu.RUnlock()

	for _, fn := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					bus.runOnPanic(env.event, env.payload, r)
				}
			}()
			fn(env.payload)
		}()
	}
}

func (bus *EventBus) subscribe(event Event, fn func(any)) {
	bus.mu.Lock()
	bus.subs[event] = append(bus.subs[event], fn)
	bus.mu.Unlock()
	bus.runOnSubscribe(event)
}

// PublishTaskCreated publishes EventTaskCreated.
func (bus *EventBus) PublishTaskCreated(p TaskCreatedPayload) { bus.send(EventTaskCreated, p) }

// SubscribeTaskCreated registers fn for EventTaskCreated.
func (bus *EventBus) SubscribeTaskCreated(fn func(TaskCreatedPayload)) {
	bus.subscribe(EventTaskCreated, func(p any) { fn(p.(TaskCreatedPayload)) })
}

// PublishTaskUpdated publishes EventTaskUpdated.
func (bus *EventBus) PublishTaskUpdated(p TaskUpdatedPayload) { bus.send(EventTaskUpdated, p) }

// SubscribeTaskUpdated registers fn for EventTaskUpdated.
func (bus *EventBus) SubscribeTaskUpdated(fn func(TaskUpdatedPayload)) {
	bus.subscribe(EventTaskUpdated, func(p any) { fn(p.(TaskUpdatedPayload)) })
}

// PublishTaskStatusChanged publishes EventTaskStatusChanged.
func (bus *EventBus) PublishTaskStatusChanged(p TaskStatusChangedPayload) {
	bus.send(EventTaskStatusChanged, p)
}

// SubscribeTaskStatusChanged registers fn for EventTaskStatusChanged.
func (bus *EventBus) SubscribeTaskStatusChanged(fn func(TaskStatusChangedPayload)) {
	bus.subscribe(EventTaskStatusChanged, func(p any) { fn(p.(TaskStatusChangedPayload)) })
}

// PublishTaskRemoved publishes EventTaskRemoved.
func (bus *EventBus) PublishTaskRemoved(p TaskRemovedPayload) { bus.send(EventTaskRemoved, p) }

// SubscribeTaskRemoved registers fn for EventTaskRemoved.
func (bus *EventBus) SubscribeTaskRemoved(fn func(TaskRemovedPayload)) {
	bus.subscribe(EventTaskRemoved, func(p any) { fn(p.(TaskRemovedPayload)) })
}

// PublishTasksCleared publishes EventTasksCleared.
func (bus *EventBus) PublishTasksCleared(p TasksClearedPayload) { bus.send(EventTasksCleared, p) }

// SubscribeTasksCleared registers fn for EventTasksCleared.
func (bus *EventBus) SubscribeTasksCleared(fn func(TasksClearedPayload)) {
	bus.subscribe(EventTasksCleared, func(p any) { fn(p.(TasksClearedPayload)) })
}

// PublishThemeChanged publishes EventThemeChanged.
func (bus *EventBus) PublishThemeChanged(p ThemeChangedPayload) { bus.send(EventThemeChanged, p) }

// SubscribeThemeChanged registers fn for EventThemeChanged.
func (bus *EventBus) SubscribeThemeChanged(fn func(ThemeChangedPayload)) {
	bus.subscribe(EventThemeChanged, func(p any) { fn(p.(ThemeChangedPayload)) })
}

// PublishNotificationPublished publishes EventNotificationPublished.
func (bus *EventBus) PublishNotificationPublished(p NotificationPublishedPayload) {
	bus.send(EventNotificationPublished, p)
}

// SubscribeNotificationPublished registers fn for EventNotificationPublished.
func (bus *EventBus) SubscribeNotificationPublished(fn func(NotificationPublishedPayload)) {
	bus.subscribe(EventNotificationPublished, func(p any) { fn(p.(NotificationPublishedPayload)) })
}
