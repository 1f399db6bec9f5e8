// Package state provides an observable state container used by controllers.
// Each controller owns its stores; there are no shared singletons.
package state

import (
	"sort"
	"sync"
)

// Store keeps a value of T and notifies subscribers after every update.
// Updaters must replace slices and maps instead of mutating the ones already stored,
// snapshots handed to readers and subscribers share them.
type Store[T any] struct {
	mu     sync.RWMutex
	value  T
	subs   map[int]func(T)
	nextID int
}

// New makes a store with initial value
func New[T any](initial T) *Store[T] {
	return &Store[T]{value: initial, subs: map[int]func(T){}}
}

// Get returns a snapshot of the current value
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Update applies fn to the stored value and notifies subscribers with the result.
// Subscribers are called outside the lock, so they may read or update the store.
func (s *Store[T]) Update(fn func(v *T)) {
	s.mu.Lock()
	fn(&s.value)
	snapshot := s.value
	subs := s.subscribers()
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snapshot)
	}
}

// Swap applies fn under the lock and reports its result, notifying subscribers only if fn returned true.
// It is used for check-and-set transitions which must not race with other updates.
func (s *Store[T]) Swap(fn func(v *T) bool) bool {
	s.mu.Lock()
	changed := fn(&s.value)
	snapshot := s.value
	var subs []func(T)
	if changed {
		subs = s.subscribers()
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snapshot)
	}
	return changed
}

// Subscribe registers fn to be called after each update. The returned func unsubscribes.
func (s *Store[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// subscribers returns subscribers in registration order, must be called under lock
func (s *Store[T]) subscribers() []func(T) {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	res := make([]func(T), 0, len(ids))
	for _, id := range ids {
		res = append(res, s.subs[id])
	}
	return res
}

// Select subscribes to a derived value of the store and calls fn only when it changes.
// The comparison uses eq; fn is not called for the value current at subscription time.
func Select[T, V any](s *Store[T], pick func(T) V, eq func(a, b V) bool, fn func(prev, curr V)) (unsubscribe func()) {
	var mu sync.Mutex
	last := pick(s.Get())
	return s.Subscribe(func(v T) {
		curr := pick(v)
		mu.Lock()
		if eq(last, curr) {
			mu.Unlock()
			return
		}
		prev := last
		last = curr
		mu.Unlock()
		fn(prev, curr)
	})
}
