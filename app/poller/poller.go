// Package poller implements cooperative polling of remote task status.
// A poll fetches immediately, then sleeps for the interval between fetches
// until the status is finished, interrupted, attempts are exhausted or the context is canceled.
package poller

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater"
	"github.com/go-pkgz/repeater/strategy"
	"golang.org/x/sync/singleflight"
)

// DefaultInterval between status fetches
const DefaultInterval = 2 * time.Second

// ErrInterrupted returned together with the last status when NeedInterrupt matched it
var ErrInterrupted = errors.New("polling interrupted")

// ErrExhausted returned when MaxAttempts fetches did not reach a finished status
var ErrExhausted = errors.New("polling attempts exhausted")

var (
	errPending = errors.New("pending")
	errFetch   = errors.New("fetch failed")
)

// Options of a single poll
type Options[T any] struct {
	Interval      time.Duration // sleep between fetches, DefaultInterval if zero
	MaxAttempts   int           // max fetches, unlimited if zero
	IsFinished    func(T) bool  // stops polling, required
	NeedInterrupt func(T) bool  // stops polling with ErrInterrupted, checked before IsFinished
}

// Poll fetches status until it is finished. Fetch errors stop polling and are returned as is.
func Poll[T any](ctx context.Context, fetch func(ctx context.Context) (T, error), opts Options[T]) (T, error) {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = math.MaxInt32
	}

	var last T
	var fetchErr error
	rptr := repeater.New(&strategy.FixedDelay{Repeats: attempts, Delay: interval})
	err := rptr.Do(ctx, func() error {
		res, err := fetch(ctx)
		if err != nil {
			fetchErr = err
			return errFetch
		}
		last = res
		if opts.NeedInterrupt != nil && opts.NeedInterrupt(res) {
			return ErrInterrupted
		}
		if opts.IsFinished(res) {
			return nil
		}
		return errPending
	}, errFetch, ErrInterrupted)

	switch {
	case err == nil:
		return last, nil
	case errors.Is(err, errFetch):
		return last, fetchErr
	case errors.Is(err, ErrInterrupted):
		return last, ErrInterrupted
	case errors.Is(err, errPending):
		return last, ErrExhausted
	default:
		return last, err
	}
}

// Manager keeps at most one active poll per key. Concurrent callers polling the same key share
// the loop started by the first one, which runs with that caller's context.
type Manager[T any] struct {
	mu     sync.Mutex
	group  singleflight.Group
	active map[string]context.CancelFunc
}

// NewManager makes an empty manager
func NewManager[T any]() *Manager[T] {
	return &Manager[T]{active: map[string]context.CancelFunc{}}
}

// Poll runs Poll for key unless it is already running, in which case it waits for the running one
func (m *Manager[T]) Poll(ctx context.Context, key string, fetch func(ctx context.Context) (T, error), opts Options[T]) (T, error) {
	ch := m.group.DoChan(key, func() (any, error) {
		pollCtx, cancel := context.WithCancel(ctx)
		m.mu.Lock()
		m.active[key] = cancel
		m.mu.Unlock()
		defer func() {
			m.mu.Lock()
			delete(m.active, key)
			m.mu.Unlock()
			cancel()
		}()
		log.Printf("[DEBUG] start polling %s", key)
		return Poll(pollCtx, fetch, opts)
	})

	select {
	case res := <-ch:
		val, _ := res.Val.(T)
		return val, res.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Active reports whether key is being polled
func (m *Manager[T]) Active(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.active[key]
	return ok
}

// Cancel stops polling of key
func (m *Manager[T]) Cancel(key string) {
	m.mu.Lock()
	cancel, ok := m.active[key]
	m.mu.Unlock()
	if ok {
		log.Printf("[DEBUG] cancel polling %s", key)
		cancel()
	}
}

// CancelAll stops all active polls
func (m *Manager[T]) CancelAll() {
	m.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(m.active))
	for _, cancel := range m.active {
		cancels = append(cancels, cancel)
	}
	m.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
}

// TaskError is a task which ended in a failed state
type TaskError struct {
	TaskID  string
	Status  string
	Message string
}

// ErrTaskFailed matches any *TaskError with errors.Is
var ErrTaskFailed = errors.New("task failed")

func (e *TaskError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("task %s %s", e.TaskID, e.Status)
	}
	return fmt.Sprintf("task %s %s: %s", e.TaskID, e.Status, e.Message)
}

// Is makes errors.Is(err, ErrTaskFailed) work
func (e *TaskError) Is(target error) bool { return target == ErrTaskFailed }
