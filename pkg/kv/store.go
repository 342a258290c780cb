// Package kv provides a small thread-safe key-value cache with a fixed
// capacity.
package kv

import "sync"

// Store is a thread-safe cache holding at most capacity entries. When full,
// the least recently written entry is evicted.
type Store[K comparable, V any] struct {
	mu       sync.Mutex
	data     map[K]V
	order    []K
	capacity int
}

// New creates a store. A capacity below 1 is treated as 1.
func New[K comparable, V any](capacity int) *Store[K, V] {
	capacity = max(capacity, 1)
	return &Store[K, V]{
		data:     make(map[K]V, capacity),
		order:    make([]K, 0, capacity),
		capacity: capacity,
	}
}

// Get retrieves a value by key.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.data[key]
	return val, ok
}

// Set stores a value by key.
func (s *Store[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(key, value)
}

// GetOrSet returns the cached value for key, computing and storing it with
// fn on a miss. Errors from fn are returned and nothing is cached.
func (s *Store[K, V]) GetOrSet(key K, fn func() (V, error)) (V, error) {
	if v, ok := s.Get(key); ok {
		return v, nil
	}

	v, err := fn()
	if err != nil {
		return v, err
	}

	s.Set(key, v)
	return v, nil
}

// Delete removes a key from the store.
func (s *Store[K, V]) Delete(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return
	}
	delete(s.data, key)
	s.forget(key)
}

// Clear removes all entries from the store.
func (s *Store[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[K]V, s.capacity)
	s.order = s.order[:0]
}

// Len returns the number of items in the store.
func (s *Store[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

func (s *Store[K, V]) set(key K, value V) {
	if _, ok := s.data[key]; ok {
		s.forget(key)
	} else if len(s.data) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.data, oldest)
	}
	s.data[key] = value
	s.order = append(s.order, key)
}

func (s *Store[K, V]) forget(key K) {
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
