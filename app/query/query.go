// Package query wraps a single remote resource: fetch guarded by an enabled predicate,
// cached data with subscribers and optimistic updates reverted on failure.
package query

import (
	"context"
	"fmt"
	"sync/atomic"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/admax/app/state"
)

// State of the resource
type State[T any] struct {
	Data      T
	HasData   bool
	IsLoading bool
	Err       error
}

// Client keeps the last fetched value of a resource
type Client[T any] struct {
	name    string
	fetch   func(ctx context.Context) (T, error)
	enabled func() bool
	store   *state.Store[State[T]]
	gen     atomic.Uint64 // fetch generation
	ver     uint64        // bumped on every data change, guarded by the store lock
}

// Option customizes the client
type Option[T any] func(c *Client[T])

// Enabled sets predicate checked before each fetch, disabled fetch does nothing
func Enabled[T any](fn func() bool) Option[T] {
	return func(c *Client[T]) { c.enabled = fn }
}

// New makes a client for the fetch function; name is used in logs and errors
func New[T any](name string, fetch func(ctx context.Context) (T, error), opts ...Option[T]) *Client[T] {
	res := &Client[T]{name: name, fetch: fetch, store: state.New(State[T]{})}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Fetch loads the resource if enabled. Failed fetch keeps previous data.
func (c *Client[T]) Fetch(ctx context.Context) error {
	if c.enabled != nil && !c.enabled() {
		log.Printf("[DEBUG] skip %s fetch, disabled", c.name)
		return nil
	}
	gen := c.gen.Add(1)
	c.store.Update(func(s *State[T]) { s.IsLoading = true })

	data, err := c.fetch(ctx)
	applied := c.store.Swap(func(s *State[T]) bool {
		if c.gen.Load() != gen {
			return false
		}
		s.IsLoading = false
		if err != nil {
			s.Err = err
			return true
		}
		s.Data, s.HasData, s.Err = data, true, nil
		c.ver++
		return true
	})
	if !applied {
		return nil // superseded by Reset or another fetch
	}
	if err != nil {
		return fmt.Errorf("fetch %s: %w", c.name, err)
	}
	return nil
}

// Data returns the cached value and whether it was ever loaded
func (c *Client[T]) Data() (T, bool) {
	st := c.store.Get()
	return st.Data, st.HasData
}

// State returns a snapshot of the resource state
func (c *Client[T]) State() State[T] { return c.store.Get() }

// Set replaces cached data
func (c *Client[T]) Set(data T) {
	c.store.Update(func(s *State[T]) {
		s.Data, s.HasData = data, true
		c.ver++
	})
}

// Reset drops cached data and in-flight fetch results
func (c *Client[T]) Reset() {
	c.store.Update(func(s *State[T]) {
		c.gen.Add(1)
		c.ver++
		*s = State[T]{}
	})
}

// Subscribe calls fn after every state change
func (c *Client[T]) Subscribe(fn func(State[T])) (unsubscribe func()) { return c.store.Subscribe(fn) }

// OptimisticUpdate applies updater to cached data, then runs executor.
// On executor failure the data is restored to the value it had before the patch, unless
// the data changed after the patch. A newer fetch or update wins over the revert.
func (c *Client[T]) OptimisticUpdate(ctx context.Context, executor func(ctx context.Context) error, updater func(T) T) error {
	var prev T
	var had bool
	var ver uint64
	c.store.Update(func(s *State[T]) {
		prev, had = s.Data, s.HasData
		s.Data = updater(s.Data)
		s.HasData = true
		c.ver++
		ver = c.ver
	})

	if err := executor(ctx); err != nil {
		reverted := c.store.Swap(func(s *State[T]) bool {
			if c.ver != ver {
				return false
			}
			s.Data, s.HasData = prev, had
			c.ver++
			return true
		})
		if reverted {
			log.Printf("[WARN] %s update failed, revert, %v", c.name, err)
		} else {
			log.Printf("[WARN] %s update failed, data changed since, keep it, %v", c.name, err)
		}
		return fmt.Errorf("update %s: %w", c.name, err)
	}
	return nil
}
