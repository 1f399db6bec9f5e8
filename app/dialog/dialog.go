// Package dialog implements "show and await" dialogs as a request/response channel.
// A controller posts a request and blocks until the user resolves or dismisses it in the UI.
package dialog

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"
)

// Kind of the dialog, defines how the UI renders it
type Kind string

// dialog kinds
const (
	KindAlert              Kind = "alert"
	KindReject             Kind = "reject"
	KindInsufficientBudget Kind = "insufficient-budget"
	KindRequestCreatives   Kind = "request-creatives"
	KindInstruct           Kind = "instruct"
	KindRuleDetail         Kind = "rule-detail"
	KindAddRule            Kind = "add-rule"
)

// ErrDismissed returned by Show when the user closed the dialog without confirming
var ErrDismissed = errors.New("dialog dismissed")

// ErrNotFound returned for unknown or already closed dialog id
var ErrNotFound = errors.New("dialog not found")

// Field is an input of the dialog form
type Field struct {
	Name    string
	Label   string
	Type    string // text, textarea, checkbox, select
	Options []string
	Value   string
}

// Request describes a dialog to present
type Request struct {
	ID           string
	Kind         Kind
	Title        string
	Description  string
	ConfirmLabel string
	CancelLabel  string
	Fields       []Field
	Data         map[string]string // read-only values for the view
	CreatedAt    time.Time
}

// Response is the user answer
type Response struct {
	Confirmed bool
	Values    map[string][]string
}

// Value returns the first value of the field
func (r Response) Value(name string) string {
	if v := r.Values[name]; len(v) > 0 {
		return v[0]
	}
	return ""
}

type pending struct {
	req  Request
	resp chan Response
}

// Manager keeps open dialogs
type Manager struct {
	mu   sync.Mutex
	open map[string]*pending
}

// NewManager makes a manager without open dialogs
func NewManager() *Manager {
	return &Manager{open: map[string]*pending{}}
}

// Show presents the request and waits for the answer.
// Dismissed dialogs return ErrDismissed, canceled context closes the dialog and returns ctx error.
func (m *Manager) Show(ctx context.Context, req Request) (Response, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	req.CreatedAt = time.Now()
	p := &pending{req: req, resp: make(chan Response, 1)}

	m.mu.Lock()
	m.open[req.ID] = p
	m.mu.Unlock()
	log.Printf("[DEBUG] show %s dialog %s", req.Kind, req.ID)

	defer func() {
		m.mu.Lock()
		delete(m.open, req.ID)
		m.mu.Unlock()
	}()

	select {
	case resp := <-p.resp:
		if !resp.Confirmed {
			return resp, ErrDismissed
		}
		return resp, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}

// Resolve answers the dialog
func (m *Manager) Resolve(id string, resp Response) error {
	m.mu.Lock()
	p, ok := m.open[id]
	if ok {
		delete(m.open, id)
	}
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	p.resp <- resp
	return nil
}

// Dismiss closes the dialog without confirmation
func (m *Manager) Dismiss(id string) error {
	return m.Resolve(id, Response{})
}

// DismissAll closes every open dialog
func (m *Manager) DismissAll() {
	for _, req := range m.Pending() {
		_ = m.Dismiss(req.ID)
	}
}

// Pending returns open dialogs, oldest first
func (m *Manager) Pending() []Request {
	m.mu.Lock()
	res := make([]Request, 0, len(m.open))
	for _, p := range m.open {
		res = append(res, p.req)
	}
	m.mu.Unlock()
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res
}
