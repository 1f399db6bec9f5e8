// Package disposer collects teardown callbacks of a controller
package disposer

import "sync"

// Manager runs registered callbacks once, in reverse registration order
type Manager struct {
	mu       sync.Mutex
	fns      []func()
	disposed bool
}

// Add registers fn. Adding to an already disposed manager runs fn immediately.
func (m *Manager) Add(fn func()) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		fn()
		return
	}
	m.fns = append(m.fns, fn)
	m.mu.Unlock()
}

// Dispose runs all callbacks. Subsequent calls do nothing.
func (m *Manager) Dispose() {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	m.disposed = true
	fns := m.fns
	m.fns = nil
	m.mu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

// Disposed reports whether Dispose was called
func (m *Manager) Disposed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disposed
}
