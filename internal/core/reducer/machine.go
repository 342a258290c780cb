// Package reducer provides the per-screen state container shared by the
// task list, task edit and settings screens.
//
// A Machine owns one state value. Presentation code reads it with State or
// Subscribe, submits actions with Send, and receives one-shot side effects
// (navigation, toasts) from Events. The screen's Run loop drains Actions and
// is the only writer of state, so handlers never run concurrently.
package reducer

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/tasks/pkg/replay"
)

const (
	defaultActionBuffer = 32
	defaultEventBuffer  = 16
)

// Option configures a Machine.
type Option func(*options)

type options struct {
	actionBuffer int
	eventBuffer  int
}

// WithActionBuffer sets the action queue capacity.
func WithActionBuffer(n int) Option {
	return func(o *options) { o.actionBuffer = n }
}

// WithEventBuffer sets the event channel capacity. Events emitted while the
// buffer is full are dropped and logged.
func WithEventBuffer(n int) Option {
	return func(o *options) { o.eventBuffer = n }
}

// Machine holds the state S of one screen, a FIFO queue of actions A and a
// channel of one-shot events E.
type Machine[S, A, E any] struct {
	mu     sync.Mutex
	state  S
	states replay.Topic[S]

	actions chan A
	events  chan E
	log     zerolog.Logger
}

// New creates a Machine in the initial state.
func New[S, A, E any](initial S, log zerolog.Logger, opts ...Option) *Machine[S, A, E] {
	o := options{actionBuffer: defaultActionBuffer, eventBuffer: defaultEventBuffer}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Machine[S, A, E]{
		state:   initial,
		actions: make(chan A, o.actionBuffer),
		events:  make(chan E, o.eventBuffer),
		log:     log,
	}
	m.states.Publish(initial)
	return m
}

// State returns the current state.
func (m *Machine[S, A, E]) State() S {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Update applies fn to the current state and publishes the result.
func (m *Machine[S, A, E]) Update(fn func(S) S) S {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = fn(m.state)
	m.states.Publish(m.state)
	return m.state
}

// Subscribe returns the current state followed by every later state,
// latest-wins. The channel closes when ctx is done.
func (m *Machine[S, A, E]) Subscribe(ctx context.Context) <-chan S {
	return m.states.Subscribe(ctx)
}

// Send queues an action. It blocks only while the queue is full and returns
// ctx.Err() if ctx ends first.
func (m *Machine[S, A, E]) Send(ctx context.Context, a A) error {
	select {
	case m.actions <- a:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Actions is the queue drained by the screen's Run loop.
func (m *Machine[S, A, E]) Actions() <-chan A {
	return m.actions
}

// Emit delivers a one-shot event without blocking.
func (m *Machine[S, A, E]) Emit(e E) {
	select {
	case m.events <- e:
	default:
		m.log.Warn().Interface("event", e).Msg("event buffer full, dropping event")
	}
}

// Events yields each emitted event exactly once.
func (m *Machine[S, A, E]) Events() <-chan E {
	return m.events
}
