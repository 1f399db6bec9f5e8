// Package account keeps the list of Meta ad accounts connected to the brand.
package account

import (
	"context"
	"fmt"
	"sync"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/state"
)

// sync statuses reported for accounts
const (
	SyncStatusSynced  = "synced"
	SyncStatusSyncing = "syncing"
)

// Lister loads the accounts
type Lister interface {
	ListMetaAccounts(ctx context.Context) ([]api.MetaAccount, error)
}

// State of the directory
type State struct {
	Accounts  []api.MetaAccount
	IsLoading bool
	Loaded    bool
	Err       error
}

// Directory holds the ad accounts of the brand
type Directory struct {
	lister Lister
	store  *state.Store[State]

	readyOnce sync.Once
	ready     chan struct{}
}

// NewDirectory makes an empty directory
func NewDirectory(lister Lister) *Directory {
	return &Directory{lister: lister, store: state.New(State{}), ready: make(chan struct{})}
}

// Fetch loads accounts. The directory becomes ready after the first attempt, failed or not.
func (d *Directory) Fetch(ctx context.Context) error {
	d.store.Update(func(s *State) { s.IsLoading = true })
	accounts, err := d.lister.ListMetaAccounts(ctx)
	defer d.readyOnce.Do(func() { close(d.ready) })
	if err != nil {
		d.store.Update(func(s *State) {
			s.IsLoading, s.Loaded, s.Err = false, true, err
		})
		return fmt.Errorf("list meta accounts: %w", err)
	}
	log.Printf("[DEBUG] loaded %d meta accounts", len(accounts))
	d.store.Update(func(s *State) {
		s.Accounts, s.IsLoading, s.Loaded, s.Err = accounts, false, true, nil
	})
	return nil
}

// WaitReady blocks until the first fetch completed or ctx is done
func (d *Directory) WaitReady(ctx context.Context) error {
	select {
	case <-d.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Accounts returns all accounts, hidden included
func (d *Directory) Accounts() []api.MetaAccount { return d.store.Get().Accounts }

// Available returns accounts which are not hidden
func (d *Directory) Available() []api.MetaAccount {
	accounts := d.store.Get().Accounts
	res := make([]api.MetaAccount, 0, len(accounts))
	for _, a := range accounts {
		if !a.IsHidden {
			res = append(res, a)
		}
	}
	return res
}

// Find returns account by id
func (d *Directory) Find(id string) (api.MetaAccount, bool) {
	if id == "" {
		return api.MetaAccount{}, false
	}
	for _, a := range d.store.Get().Accounts {
		if a.AccountID == id {
			return a, true
		}
	}
	return api.MetaAccount{}, false
}

// FindAvailable returns account by id if it is not hidden
func (d *Directory) FindAvailable(id string) (api.MetaAccount, bool) {
	a, ok := d.Find(id)
	if !ok || a.IsHidden {
		return api.MetaAccount{}, false
	}
	return a, true
}

// State returns a snapshot of the directory state
func (d *Directory) State() State { return d.store.Get() }

// Subscribe calls fn after every change
func (d *Directory) Subscribe(fn func(State)) (unsubscribe func()) { return d.store.Subscribe(fn) }

// BestAvailableID picks the account to preselect among visible setup-complete accounts:
// synced with campaigns, then synced, then syncing, then the first one. Empty if none complete.
func (d *Directory) BestAvailableID() string {
	return BestAccountID(d.Available())
}

// BestAccountID is BestAvailableID over the given accounts
func BestAccountID(accounts []api.MetaAccount) string {
	var complete []api.MetaAccount
	for _, a := range accounts {
		if a.IsSetupComplete && !a.IsHidden {
			complete = append(complete, a)
		}
	}
	if len(complete) == 0 {
		return ""
	}
	preferences := []func(api.MetaAccount) bool{
		func(a api.MetaAccount) bool { return a.SyncStatus == SyncStatusSynced && a.CampaignCount > 0 },
		func(a api.MetaAccount) bool { return a.SyncStatus == SyncStatusSynced },
		func(a api.MetaAccount) bool { return a.SyncStatus == SyncStatusSyncing },
	}
	for _, match := range preferences {
		for _, a := range complete {
			if match(a) {
				return a.AccountID
			}
		}
	}
	return complete[0].AccountID
}
