package eventbus

import "sync"

// hooks holds the lifecycle hook state for the EventBus.
type hooks struct {
	mu          sync.RWMutex
	onPublish   []func(Event, any)
	onDrop      []func(Event, any)
	onSubscribe []func(Event)
	onPanic     []func(Event, any, any)
}

// OnPublish registers a hook that fires after an event is successfully enqueued.
func (bus *EventBus) OnPublish(fn func(Event, any)) {
	bus.hooks.mu.Lock()
	bus.hooks.onPublish = append(bus.hooks.onPublish, fn)
	bus.hooks.mu.Unlock()
}

// OnDrop registers a hook that fires when an event is dropped due to a full buffer.
func (bus *EventBus) OnDrop(fn func(Event, any)) {
	bus.hooks.mu.Lock()
	bus.hooks.onDrop = append(bus.hooks.onDrop, fn)
	bus.hooks.mu.Unlock()
}

// OnSubscribe registers a hook that fires after a subscriber is registered.
func (bus *EventBus) OnSubscribe(fn func(Event)) {
	bus.hooks.mu.Lock()
	bus.hooks.onSubscribe = append(bus.hooks.onSubscribe, fn)
	bus.hooks.mu.Unlock()
}

// OnPanic registers a hook that fires when a subscriber panics.
func (bus *EventBus) OnPanic(fn func(Event, any, any)) {
	bus.hooks.mu.Lock()
	bus.hooks.onPanic = append(bus.hooks.onPanic, fn)
	bus.hooks.mu.Unlock()
}

// send enqueues an event without blocking and fires the publish or drop hooks.
func (bus *EventBus) send(event Event, payload any) {
	select {
	case bus.ch <- envelope{event: event, payload: payload}:
		for _, fn := range snapshot(&bus.hooks.mu, &bus.hooks.onPublish) {
			fn(event, payload)
		}
	default:
		for _, fn := range snapshot(&bus.hooks.mu, &bus.hooks.onDrop) {
			fn(event, payload)
		}
	}
}

func (bus *EventBus) runOnSubscribe(event Event) {
	for _, fn := range snapshot(&bus.hooks.mu, &bus.hooks.onSubscribe) {
		fn(event)
	}
}

// runOnPanic isolates hooks from each other: a panicking hook is swallowed.
func (bus *EventBus) runOnPanic(event Event, payload any, recovered any) {
	for _, fn := range snapshot(&bus.hooks.mu, &bus.hooks.onPanic) {
		func() {
			defer func() { recover() }() //nolint:errcheck
			fn(event, payload, recovered)
		}()
	}
}

// snapshot copies a hook slice under the read lock so hooks run unlocked.
func snapshot[T any](mu *sync.RWMutex, src *[]T) []T {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]T, len(*src))
	copy(out, *src)
	return out
}
