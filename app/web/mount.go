package web

import (
	"context"
	"fmt"
	"sync"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/admax/app/queue"
	"github.com/umputun/admax/app/setup"
)

// mounter keeps the page controller of the open page. Only one page is mounted at a time,
// mounting one disposes the other. Actions run with the mount context, so unmount cancels
// them and closes their dialogs. Bootstrap runs under mountMu only, partials and actions
// of the previous page see no page until the new one is mounted.
type mounter struct {
	mountMu  sync.Mutex // serializes mount and unmount
	mu       sync.Mutex // guards the mounted page and its context
	parent   context.Context
	newQueue func() *queue.Page
	newSetup func() *setup.Wizard
	dialogs  Dialogs

	queue  *queue.Page
	setup  *setup.Wizard
	ctx    context.Context
	cancel context.CancelFunc
}

func newMounter(parent context.Context, newQueue func() *queue.Page, newSetup func() *setup.Wizard, dialogs Dialogs) *mounter {
	return &mounter{parent: parent, newQueue: newQueue, newSetup: newSetup, dialogs: dialogs}
}

// mountQueue disposes the mounted page and bootstraps a new queue page
func (m *mounter) mountQueue(ctx context.Context) (*queue.Page, error) {
	m.mountMu.Lock()
	defer m.mountMu.Unlock()
	if err := m.release(); err != nil {
		return nil, err
	}

	pg := m.newQueue()
	if err := pg.Bootstrap(ctx); err != nil {
		pg.Dispose()
		return nil, fmt.Errorf("bootstrap queue page: %w", err)
	}
	pg.BindScroll()

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.parent.Err(); err != nil {
		pg.Dispose()
		return nil, fmt.Errorf("server closed: %w", err)
	}
	m.queue = pg
	m.ctx, m.cancel = context.WithCancel(m.parent)
	log.Printf("[DEBUG] queue page mounted")
	return pg, nil
}

// mountSetup disposes the mounted page and bootstraps a new setup wizard
func (m *mounter) mountSetup(ctx context.Context) (*setup.Wizard, error) {
	m.mountMu.Lock()
	defer m.mountMu.Unlock()
	if err := m.release(); err != nil {
		return nil, err
	}

	w := m.newSetup()
	if err := w.Bootstrap(ctx); err != nil {
		w.Dispose()
		return nil, fmt.Errorf("bootstrap setup wizard: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.parent.Err(); err != nil {
		w.Dispose()
		return nil, fmt.Errorf("server closed: %w", err)
	}
	m.setup = w
	m.ctx, m.cancel = context.WithCancel(m.parent)
	log.Printf("[DEBUG] setup page mounted")
	return w, nil
}

// release unmounts the current page before a new one bootstraps
func (m *mounter) release() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.parent.Err(); err != nil {
		return fmt.Errorf("server closed: %w", err)
	}
	m.unmountLocked()
	return nil
}

// currentQueue returns the mounted queue page, nil if not mounted, and the mount context
func (m *mounter) currentQueue() (*queue.Page, context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue, m.ctx
}

// currentSetup returns the mounted wizard, nil if not mounted, and the mount context
func (m *mounter) currentSetup() (*setup.Wizard, context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setup, m.ctx
}

func (m *mounter) unmount() {
	m.mountMu.Lock()
	defer m.mountMu.Unlock()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unmountLocked()
}

func (m *mounter) unmountLocked() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.dialogs.DismissAll()
	if m.queue != nil {
		m.queue.Dispose()
		m.queue = nil
		log.Printf("[DEBUG] queue page unmounted")
	}
	if m.setup != nil {
		m.setup.Dispose()
		m.setup = nil
		log.Printf("[DEBUG] setup page unmounted")
	}
}
