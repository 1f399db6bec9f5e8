// Package paginate manages a cursor-paginated list: first page fetch, appending next pages
// and atomic refetch. Responses of superseded fetches are dropped.
package paginate

import (
	"context"
	"fmt"
	"sync/atomic"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/state"
)

// Fetcher loads one page for params starting at cursor, empty cursor means the first page
type Fetcher[T, P any] func(ctx context.Context, params P, cursor string) (api.Page[T], error)

// State of the paginated list
type State[T, P any] struct {
	Items              []T
	Params             P
	Cursor             string // cursor of the next page
	HasNextPage        bool
	IsLoading          bool // first page or refetch in flight
	IsFetchingNextPage bool
	Loaded             bool // at least one first page fetch completed
	Err                error
}

// Manager keeps pages loaded so far
type Manager[T, P any] struct {
	name  string
	fetch Fetcher[T, P]
	store *state.Store[State[T, P]]
	gen   atomic.Uint64
}

// New makes a manager; name is used in logs only
func New[T, P any](name string, fetch Fetcher[T, P]) *Manager[T, P] {
	return &Manager[T, P]{name: name, fetch: fetch, store: state.New(State[T, P]{})}
}

// State returns a snapshot of the list state
func (m *Manager[T, P]) State() State[T, P] { return m.store.Get() }

// Store exposes the state store for subscriptions
func (m *Manager[T, P]) Store() *state.Store[State[T, P]] { return m.store }

// Items returns loaded items
func (m *Manager[T, P]) Items() []T { return m.store.Get().Items }

// CanFetchNextPage is the caller-side guard of FetchNextPage
func (m *Manager[T, P]) CanFetchNextPage() bool {
	st := m.store.Get()
	return canFetchNext(st)
}

// Fetch resets the list for params and loads the first page
func (m *Manager[T, P]) Fetch(ctx context.Context, params P) error {
	return m.loadFirst(ctx, &params)
}

// Refetch reloads the first page with current params and replaces the list in one update
func (m *Manager[T, P]) Refetch(ctx context.Context) error {
	return m.loadFirst(ctx, nil)
}

// FetchNextPage appends the next page. It does nothing if a fetch is in flight or there is no next page.
// The generation is bumped and checked under the store lock only, so a page can't land on a newer list.
func (m *Manager[T, P]) FetchNextPage(ctx context.Context) error {
	var params P
	var cursor string
	var gen uint64
	started := m.store.Swap(func(s *State[T, P]) bool {
		if !canFetchNext(*s) {
			return false
		}
		s.IsFetchingNextPage = true
		params, cursor, gen = s.Params, s.Cursor, m.gen.Load()
		return true
	})
	if !started {
		return nil
	}

	page, err := m.fetch(ctx, params, cursor)
	applied := m.store.Swap(func(s *State[T, P]) bool {
		if m.gen.Load() != gen {
			return false // superseded fetch already reset the flag
		}
		s.IsFetchingNextPage = false
		if err != nil {
			s.Err = err
			return true
		}
		items := make([]T, 0, len(s.Items)+len(page.Results))
		items = append(items, s.Items...)
		items = append(items, page.Results...)
		s.Items = items
		s.Cursor = page.Next
		s.HasNextPage = page.Next != ""
		s.Err = nil
		return true
	})
	if !applied {
		log.Printf("[DEBUG] drop stale %s page %q", m.name, cursor)
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetch next %s page: %w", m.name, err)
	}
	return nil
}

// Reset clears the list and drops in-flight responses
func (m *Manager[T, P]) Reset() {
	m.store.Update(func(s *State[T, P]) {
		m.gen.Add(1)
		*s = State[T, P]{}
	})
}

// loadFirst starts a new generation and loads the first page, with newParams replacing the current ones
func (m *Manager[T, P]) loadFirst(ctx context.Context, newParams *P) error {
	var gen uint64
	var params P
	m.store.Update(func(s *State[T, P]) {
		gen = m.gen.Add(1)
		if newParams != nil {
			s.Params = *newParams
		}
		s.IsLoading = true
		s.IsFetchingNextPage = false
		params = s.Params
	})

	page, err := m.fetch(ctx, params, "")
	results := page.Results
	if results == nil {
		results = []T{}
	}
	applied := m.store.Swap(func(s *State[T, P]) bool {
		if m.gen.Load() != gen {
			return false
		}
		s.IsLoading = false
		if err != nil {
			s.Err = err
			return true
		}
		s.Items = results
		s.Cursor = page.Next
		s.HasNextPage = page.Next != ""
		s.Loaded = true
		s.Err = nil
		return true
	})
	if !applied {
		log.Printf("[DEBUG] drop stale %s first page", m.name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetch %s: %w", m.name, err)
	}
	return nil
}

func canFetchNext[T, P any](s State[T, P]) bool {
	return !s.IsLoading && !s.IsFetchingNextPage && s.HasNextPage
}
