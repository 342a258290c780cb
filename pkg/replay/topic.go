// Package replay provides a conflating publish/subscribe topic. New
// subscribers receive the most recent value immediately, and a slow
// subscriber only ever sees the latest value rather than a backlog.
package replay

import (
	"context"
	"sync"
)

// Topic fans values out to subscribers with latest-wins delivery. The zero
// value is ready to use.
type Topic[T any] struct {
	mu   sync.Mutex
	last T
	has  bool
	subs map[chan T]struct{}
}

// Publish records v as the latest value and offers it to every subscriber,
// replacing any value a subscriber has not yet received.
func (t *Topic[T]) Publish(v T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.last = v
	t.has = true
	for ch := range t.subs {
		offer(ch, v)
	}
}

// Latest returns the most recently published value.
func (t *Topic[T]) Latest() (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.has
}

// Subscribe returns a channel that first yields the latest value (if any)
// and then every later value, conflated. The channel is closed when ctx is
// done.
func (t *Topic[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	t.mu.Lock()
	if t.subs == nil {
		t.subs = make(map[chan T]struct{})
	}
	t.subs[ch] = struct{}{}
	if t.has {
		ch <- t.last
	}
	t.mu.Unlock()

	go func() {
		<-ctx.Done()
		t.mu.Lock()
		delete(t.subs, ch)
		close(ch)
		t.mu.Unlock()
	}()

	return ch
}

// Subscribers returns the number of live subscriptions.
func (t *Topic[T]) Subscribers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}

// offer must be called with the topic lock held so that two publishers never
// interleave on the same channel.
func offer[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
