package queue

import (
	"context"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
)

// scroll trigger defaults
const (
	DefaultScrollDebounce  = 100 * time.Millisecond
	DefaultScrollThreshold = 100
)

// ScrollMetrics reported by the scroll container
type ScrollMetrics struct {
	ScrollTop    float64 `json:"scroll_top"`
	ClientHeight float64 `json:"client_height"`
	ScrollHeight float64 `json:"scroll_height"`
}

// NearBottom reports whether the visible area is within threshold from the bottom
func (m ScrollMetrics) NearBottom(threshold float64) bool {
	return m.ScrollTop+m.ClientHeight+threshold >= m.ScrollHeight
}

// pager is the part of paginated list used by the scroll trigger
type pager interface {
	CanFetchNextPage() bool
	FetchNextPage(ctx context.Context) error
}

// ScrollTrigger loads the next page when the debounced scroll event is near the bottom of an active tab
type ScrollTrigger struct {
	name      string
	list      pager
	isActive  func() bool
	debounce  time.Duration
	threshold float64

	mu      sync.Mutex
	timer   *time.Timer
	ctx     context.Context
	stopped bool
	wg      sync.WaitGroup
}

// NewScrollTrigger makes a trigger for the list, isActive reports whether the list's tab is shown
func NewScrollTrigger(ctx context.Context, name string, list pager, isActive func() bool, debounce time.Duration, threshold float64) *ScrollTrigger {
	if debounce <= 0 {
		debounce = DefaultScrollDebounce
	}
	if threshold <= 0 {
		threshold = DefaultScrollThreshold
	}
	return &ScrollTrigger{ctx: ctx, name: name, list: list, isActive: isActive, debounce: debounce, threshold: threshold}
}

// OnScroll handles a scroll event; only the last event within the debounce window is evaluated
func (s *ScrollTrigger) OnScroll(m ScrollMetrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() { s.check(m) })
}

// Stop drops pending events and waits for a started page fetch
func (s *ScrollTrigger) Stop() {
	s.mu.Lock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *ScrollTrigger) check(m ScrollMetrics) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	if !s.isActive() {
		return
	}
	if !m.NearBottom(s.threshold) || !s.list.CanFetchNextPage() {
		return
	}
	if err := s.list.FetchNextPage(s.ctx); err != nil {
		log.Printf("[WARN] can't load next %s page, %v", s.name, err)
	}
}
