// Package nav provides the console router and transient hand-off messages passed to other pages.
package nav

import (
	"net/url"
	"sync"

	log "github.com/go-pkgz/lgr"
)

// console paths
const (
	QueuePath = "/tool/ad-max/queue"
	SetupPath = "/tool/ad-max/setup"
)

// Location is a path with query
type Location struct {
	Path  string
	Query url.Values
}

// String returns location as relative url
func (l Location) String() string {
	if len(l.Query) == 0 {
		return l.Path
	}
	return l.Path + "?" + l.Query.Encode()
}

// Param returns query parameter value
func (l Location) Param(name string) string { return l.Query.Get(name) }

// Router reads and changes the current location
type Router interface {
	Location() Location
	Navigate(path string, query url.Values, replace bool)
	Subscribe(fn func(Location)) (unsubscribe func())
}

// MemoryRouter keeps current location and a bounded history in memory.
// The web layer syncs it with incoming page requests and renders redirects from it.
type MemoryRouter struct {
	mu         sync.Mutex
	current    Location
	history    []Location
	maxHistory int
	subs       map[int]func(Location)
	nextID     int
}

// NewMemoryRouter makes router at the initial location
func NewMemoryRouter(initial Location, maxHistory int) *MemoryRouter {
	if maxHistory <= 0 {
		maxHistory = 50
	}
	return &MemoryRouter{current: initial, maxHistory: maxHistory, subs: map[int]func(Location){}}
}

// Location returns the current location
func (r *MemoryRouter) Location() Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Navigate moves to path with query. Replace changes the current entry instead of pushing a new one.
func (r *MemoryRouter) Navigate(path string, query url.Values, replace bool) {
	loc := Location{Path: path, Query: cloneValues(query)}
	r.mu.Lock()
	if !replace {
		r.history = append(r.history, r.current)
		if len(r.history) > r.maxHistory {
			r.history = r.history[len(r.history)-r.maxHistory:]
		}
	}
	r.current = loc
	subs := r.subscribers()
	r.mu.Unlock()

	log.Printf("[DEBUG] navigate to %s, replace=%v", loc, replace)
	for _, fn := range subs {
		fn(loc)
	}
}

// Sync sets location reported by the browser, subscribers are notified only on change
func (r *MemoryRouter) Sync(loc Location) {
	r.mu.Lock()
	if loc.String() == r.current.String() {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	r.Navigate(loc.Path, loc.Query, true)
}

// History returns visited locations, oldest first
func (r *MemoryRouter) History() []Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Location(nil), r.history...)
}

// Subscribe calls fn after every location change
func (r *MemoryRouter) Subscribe(fn func(Location)) (unsubscribe func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.subs[id] = fn
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

func (r *MemoryRouter) subscribers() []func(Location) {
	res := make([]func(Location), 0, len(r.subs))
	for id := 0; id < r.nextID; id++ {
		if fn, ok := r.subs[id]; ok {
			res = append(res, fn)
		}
	}
	return res
}

func cloneValues(v url.Values) url.Values {
	res := url.Values{}
	for k, vv := range v {
		res[k] = append([]string(nil), vv...)
	}
	return res
}
