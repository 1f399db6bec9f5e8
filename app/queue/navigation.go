// Package queue implements controllers of the AdMax queue page: tab navigation,
// creation and analysis pipeline queues, knowledge base and the page composing them.
package queue

import (
	"net/url"

	"github.com/umputun/admax/app/disposer"
	"github.com/umputun/admax/app/enums"
	"github.com/umputun/admax/app/nav"
	"github.com/umputun/admax/app/state"
)

// TabGuard tells which tabs can be opened
type TabGuard interface {
	IsTabEnabled(tab enums.Tab) bool
}

// Navigation keeps the active tab in sync with the tab query parameter of the queue page
type Navigation struct {
	router   nav.Router
	guard    TabGuard
	store    *state.Store[enums.Tab]
	disposer disposer.Manager
}

// NewNavigation makes navigation with the creation tab active
func NewNavigation(router nav.Router, guard TabGuard) *Navigation {
	return &Navigation{router: router, guard: guard, store: state.New(enums.TabCreation)}
}

// ActiveTab returns the active tab
func (n *Navigation) ActiveTab() enums.Tab { return n.store.Get() }

// Store exposes the active tab store
func (n *Navigation) Store() *state.Store[enums.Tab] { return n.store }

// IsTabEnabled reports whether the tab can be opened
func (n *Navigation) IsTabEnabled(tab enums.Tab) bool { return n.guard.IsTabEnabled(tab) }

// SetActiveTab switches to the tab and replaces the url. Returns false if the tab is disabled.
func (n *Navigation) SetActiveTab(tab enums.Tab) bool {
	if !n.guard.IsTabEnabled(tab) {
		return false
	}
	n.store.Update(func(t *enums.Tab) { *t = tab })
	n.router.Navigate(nav.QueuePath, url.Values{"tab": {tab.String()}}, true)
	return true
}

// Bootstrap takes the initial tab from the url and follows url changes
func (n *Navigation) Bootstrap() {
	initial := TabFromLocation(n.router.Location())
	n.store.Update(func(t *enums.Tab) { *t = initial })

	unsubscribe := n.router.Subscribe(func(loc nav.Location) {
		if loc.Path != nav.QueuePath {
			return
		}
		tab := TabFromLocation(loc)
		n.store.Swap(func(t *enums.Tab) bool {
			if *t == tab {
				return false
			}
			*t = tab
			return true
		})
	})
	n.disposer.Add(unsubscribe)
}

// Dispose stops following the router
func (n *Navigation) Dispose() { n.disposer.Dispose() }

// TabFromLocation returns the tab of the queue page location, creation for other pages and unknown tabs
func TabFromLocation(loc nav.Location) enums.Tab {
	if loc.Path != nav.QueuePath {
		return enums.TabCreation
	}
	tab, err := enums.ParseTab(loc.Param("tab"))
	if err != nil {
		return enums.TabCreation
	}
	return tab
}
