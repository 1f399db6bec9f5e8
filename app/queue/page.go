package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/syncs"

	"github.com/umputun/admax/app/account"
	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/cycle"
	"github.com/umputun/admax/app/dialog"
	"github.com/umputun/admax/app/disposer"
	"github.com/umputun/admax/app/enums"
	"github.com/umputun/admax/app/guard"
	"github.com/umputun/admax/app/nav"
	"github.com/umputun/admax/app/persist"
	"github.com/umputun/admax/app/query"
	"github.com/umputun/admax/app/state"
)

// Options tune the queue page
type Options struct {
	PollInterval    time.Duration
	LowBudgetPct    float64
	RequestDelay    time.Duration
	ScrollDebounce  time.Duration
	ScrollThreshold float64
	Planner         *cycle.Planner // nil means default weekly schedule
	Now             func() time.Time
}

// PageParams are dependencies of the queue page
type PageParams struct {
	Backend  Backend
	Persist  *persist.Manager
	Accounts Accounts
	Router   nav.Router
	Messages MessageStore
	Dialogs  Dialogs
	Toast    Toaster
	Alerter  Alerter
	BrandID  func() string
	Options
}

// PageState is the page level state
type PageState struct {
	IsReady          bool
	AutomationStatus cycle.AutomationStatus
	WeeklyCycle      cycle.WeeklyCycle
}

// Counts of pending items
type Counts struct {
	Creation int `json:"creation"`
	Analysis int `json:"analysis"`
	Total    int `json:"total"`
}

// Page composes queue controllers of the AdMax queue page
type Page struct {
	p     PageParams
	store *state.Store[PageState]
	guard *guard.Guard

	nav       *Navigation
	analysis  *Analysis
	creation  *Creation
	knowledge *Knowledge

	accountStats *query.Client[api.AccountStats]
	brandSetup   *query.Client[api.BrandSetup]

	disposer  disposer.Manager
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	refreshMu sync.Mutex
}

// NewPage makes the queue page with all controllers
func NewPage(p PageParams) *Page {
	if p.Now == nil {
		p.Now = time.Now
	}
	if p.BrandID == nil {
		p.BrandID = func() string { return "" }
	}
	if p.Planner == nil {
		p.Planner, _ = cycle.NewPlanner(cycle.DefaultSpec, time.Time{})
	}
	ctx, cancel := context.WithCancel(context.Background())
	res := &Page{p: p, ctx: ctx, cancel: cancel}
	res.store = state.New(PageState{
		AutomationStatus: cycle.DefaultAutomationStatus(),
		WeeklyCycle:      p.Planner.At(p.Now()),
	})
	res.guard = guard.New(res)

	res.accountStats = query.New("account stats",
		func(ctx context.Context) (api.AccountStats, error) {
			return p.Backend.GetAccountStats(ctx, res.SelectedAccountID())
		},
		query.Enabled[api.AccountStats](func() bool { return res.SelectedAccountID() != "" }))
	res.brandSetup = query.New("brand setup", p.Backend.GetBrandSetup,
		query.Enabled[api.BrandSetup](func() bool { return res.SelectedAccountID() == "" }))

	res.nav = NewNavigation(p.Router, res.guard)
	res.analysis = NewAnalysis(AnalysisParams{
		Backend:    p.Backend,
		SelectedID: res.SelectedAccountID,
		Messages:   p.Messages,
		Router:     p.Router,
		Dialogs:    p.Dialogs,
		Toast:      p.Toast,
	})
	res.creation = NewCreation(CreationParams{
		Backend:      p.Backend,
		SelectedID:   res.SelectedAccountID,
		Accounts:     p.Accounts,
		Messages:     p.Messages,
		Router:       p.Router,
		Dialogs:      p.Dialogs,
		Toast:        p.Toast,
		Alerter:      p.Alerter,
		OnTabChange:  res.nav.SetActiveTab,
		PollInterval: p.PollInterval,
		LowBudgetPct: p.LowBudgetPct,
		RequestDelay: p.RequestDelay,
	})
	res.knowledge = NewKnowledge(KnowledgeParams{
		Backend:    p.Backend,
		SelectedID: res.SelectedAccountID,
		BrandID:    p.BrandID,
		Dialogs:    p.Dialogs,
		Toast:      p.Toast,
		Now:        p.Now,
	})
	return res
}

// State returns page state snapshot
func (pg *Page) State() PageState { return pg.store.Get() }

// Store exposes page state store
func (pg *Page) Store() *state.Store[PageState] { return pg.store }

// Navigation returns tab navigation
func (pg *Page) Navigation() *Navigation { return pg.nav }

// Analysis returns the analysis queue
func (pg *Page) Analysis() *Analysis { return pg.analysis }

// Creation returns the creation queue
func (pg *Page) Creation() *Creation { return pg.creation }

// Knowledge returns the knowledge base
func (pg *Page) Knowledge() *Knowledge { return pg.knowledge }

// Guard returns the account guard bound to the page
func (pg *Page) Guard() *guard.Guard { return pg.guard }

// AccountStats returns the account stats query
func (pg *Page) AccountStats() *query.Client[api.AccountStats] { return pg.accountStats }

// BrandSetupQuery returns the brand setup query
func (pg *Page) BrandSetupQuery() *query.Client[api.BrandSetup] { return pg.brandSetup }

// SelectedAccountID returns persisted account selection, empty in brand mode
func (pg *Page) SelectedAccountID() string { return pg.p.Persist.Get().SelectedAccountID }

// BrandSetup returns loaded brand setup, nil if not loaded
func (pg *Page) BrandSetup() *api.BrandSetup {
	bs, ok := pg.brandSetup.Data()
	if !ok {
		return nil
	}
	return &bs
}

// Accounts returns all meta accounts of the brand
func (pg *Page) Accounts() []api.MetaAccount { return pg.p.Accounts.Accounts() }

// IsBrandMode reports whether no account is selected
func (pg *Page) IsBrandMode() bool { return pg.SelectedAccountID() == "" }

// SetSelectedAccountID changes persisted selection, empty id switches to brand mode
func (pg *Page) SetSelectedAccountID(id string) { pg.p.Persist.SetSelectedAccountID(id) }

// SelectedAccount returns the selected account if it is in the account list
func (pg *Page) SelectedAccount() (api.MetaAccount, bool) {
	id := pg.SelectedAccountID()
	for _, acc := range pg.Accounts() {
		if acc.AccountID == id {
			return acc, true
		}
	}
	return api.MetaAccount{}, false
}

// ActiveTab returns the active tab
func (pg *Page) ActiveTab() enums.Tab { return pg.nav.ActiveTab() }

// GuardResult evaluates the action against the current account state
func (pg *Page) GuardResult(action guard.Action) guard.Result { return pg.guard.Check(action) }

// HeaderCTA returns header call to action
func (pg *Page) HeaderCTA() *guard.HeaderCTA { return pg.guard.HeaderCTA() }

// IsTabEnabled reports whether the tab can be opened
func (pg *Page) IsTabEnabled(tab enums.Tab) bool { return pg.nav.IsTabEnabled(tab) }

// Counts returns numbers of loaded pending items
func (pg *Page) Counts() Counts {
	res := Counts{Creation: len(pg.creation.Items()), Analysis: len(pg.analysis.Items())}
	res.Total = res.Creation + res.Analysis
	return res
}

// WeeklyCycle returns the cycle state for now
func (pg *Page) WeeklyCycle() cycle.WeeklyCycle { return pg.p.Planner.At(pg.p.Now()) }

// AutomationStatus returns the automation status
func (pg *Page) AutomationStatus() cycle.AutomationStatus { return pg.store.Get().AutomationStatus }

// PresentGuardDialog shows the blocking dialog of the guard result and follows its call to action on confirm
func (pg *Page) PresentGuardDialog(ctx context.Context, res guard.Result) error {
	if res.Dialog == nil {
		return nil
	}
	_, err := pg.p.Dialogs.Show(ctx, dialog.Request{
		Kind:         dialog.KindAlert,
		Title:        res.Dialog.Title,
		Description:  res.Dialog.Description,
		ConfirmLabel: res.Dialog.CTALabel,
		CancelLabel:  "Cancel",
		Data:         map[string]string{"href": res.Dialog.CTAHref},
	})
	if errors.Is(err, dialog.ErrDismissed) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("guard dialog: %w", err)
	}
	pg.p.Router.Navigate(res.Dialog.CTAHref, nil, false)
	return nil
}

// WithGuard runs the action only if the guard allows it, otherwise presents the guard dialog
func (pg *Page) WithGuard(ctx context.Context, action guard.Action, runner func(ctx context.Context) error) error {
	res := pg.GuardResult(action)
	if !res.CanProceed {
		log.Printf("[DEBUG] action %s blocked, %s", action, res.Reason)
		return pg.PresentGuardDialog(ctx, res)
	}
	return runner(ctx)
}

// SetActiveTab switches the tab, disabled tab presents the analysis guard dialog instead
func (pg *Page) SetActiveTab(ctx context.Context, tab enums.Tab) error {
	if pg.nav.SetActiveTab(tab) {
		return nil
	}
	return pg.PresentGuardDialog(ctx, pg.GuardResult(guard.ActionAnalysisTab))
}

// BindScroll attaches scroll triggers to both pipeline lists, each active only on its tab
func (pg *Page) BindScroll() {
	pg.analysis.SetScrollContainer(NewScrollTrigger(pg.ctx, "analysis", pg.analysis.List(),
		func() bool { return pg.ActiveTab() == enums.TabAnalysis }, pg.p.ScrollDebounce, pg.p.ScrollThreshold))
	pg.creation.SetScrollContainer(NewScrollTrigger(pg.ctx, "creation", pg.creation.List(),
		func() bool { return pg.ActiveTab() == enums.TabCreation }, pg.p.ScrollDebounce, pg.p.ScrollThreshold))
}

// ApproveCreationItem approves the ad set if the account is ready
func (pg *Page) ApproveCreationItem(ctx context.Context, id string, selectedJobIDs []string) error {
	return pg.WithGuard(ctx, guard.ActionApproveCreation, func(ctx context.Context) error {
		return pg.creation.ApproveItem(ctx, id, selectedJobIDs)
	})
}

// BringOwnCreatives opens the ad launcher if the account is ready
func (pg *Page) BringOwnCreatives(ctx context.Context) error {
	return pg.WithGuard(ctx, guard.ActionTestCreatives, pg.creation.BringOwnCreatives)
}

// RequestCreatives asks for new creatives if the account is ready
func (pg *Page) RequestCreatives(ctx context.Context, pipelineID string) error {
	return pg.WithGuard(ctx, guard.ActionRequestCreatives, func(ctx context.Context) error {
		req := api.CreativesRequest{CreationPipelineID: pipelineID}
		if id := pg.SelectedAccountID(); id != "" {
			req.Platform, req.AccountID = api.PlatformMeta, id
		}
		return pg.creation.RequestCreatives(ctx, req)
	})
}

// ClearSetupCache drops persisted setup progress
func (pg *Page) ClearSetupCache() { pg.p.Persist.ClearSetupState() }

// Bootstrap prepares the page: tab from url, account selection, setup check and initial data.
// Redirects to the setup page if neither the brand nor any account is set up.
func (pg *Page) Bootstrap(ctx context.Context) error {
	pg.nav.Bootstrap()

	if err := pg.p.Accounts.WaitReady(ctx); err != nil {
		return fmt.Errorf("wait accounts: %w", err)
	}
	pg.p.Persist.SetAnalysisTaskID("")

	if pg.IsBrandMode() {
		if err := pg.brandSetup.Fetch(ctx); err != nil {
			log.Printf("[WARN] %v", err)
		}
	}

	if !pg.checkSetupCompleteAndRedirect() {
		log.Printf("[INFO] nothing is set up, redirect to %s", nav.SetupPath)
		return nil
	}

	pg.bootstrapAccountSync()
	pg.bootstrapData(ctx)
	pg.bootstrapRefreshListener()

	pg.store.Update(func(s *PageState) {
		s.IsReady = true
		s.AutomationStatus = cycle.DefaultAutomationStatus()
		s.WeeklyCycle = pg.WeeklyCycle()
	})
	return nil
}

// Refresh reloads both pipeline lists, used by periodic refresh
func (pg *Page) Refresh(ctx context.Context) {
	if !pg.store.Get().IsReady {
		return
	}
	brandMode := pg.IsBrandMode()
	pg.fanOut(ctx, func(ctx context.Context) error { return pg.analysis.Fetch(ctx, brandMode) },
		func(ctx context.Context) error { return pg.creation.Fetch(ctx, brandMode) })
	pg.store.Update(func(s *PageState) { s.WeeklyCycle = pg.WeeklyCycle() })
}

// Dispose stops listeners, cancels polls and waits for background refreshes
func (pg *Page) Dispose() {
	pg.cancel()
	pg.disposer.Dispose()
	pg.nav.Dispose()
	pg.analysis.Dispose()
	pg.creation.Dispose()
	pg.knowledge.Dispose()
	pg.wg.Wait()
}

func (pg *Page) checkSetupCompleteAndRedirect() bool {
	selected := pg.SelectedAccountID()
	available := pg.p.Accounts.Available()

	if selected != "" {
		for _, acc := range available {
			if acc.AccountID == selected && acc.IsSetupComplete {
				return true
			}
		}
	}

	if bs := pg.BrandSetup(); bs != nil && bs.IsSetupComplete {
		if selected != "" {
			pg.SetSelectedAccountID("")
		}
		return true
	}

	for _, acc := range available {
		if acc.IsSetupComplete && acc.BudgetSettings != nil && acc.LaunchConfig != nil {
			pg.SetSelectedAccountID(acc.AccountID)
			return true
		}
	}

	pg.p.Router.Navigate(nav.SetupPath, nil, true)
	return false
}

// bootstrapAccountSync selects the best account when nothing is selected and accounts appear
func (pg *Page) bootstrapAccountSync() {
	update := func() {
		if pg.SelectedAccountID() != "" || len(pg.p.Accounts.Available()) == 0 {
			return
		}
		if best := pg.p.Accounts.BestAvailableID(); best != "" {
			log.Printf("[INFO] auto-select account %s", best)
			pg.SetSelectedAccountID(best)
		}
	}
	update()
	pg.disposer.Add(pg.p.Accounts.Subscribe(func(account.State) { update() }))
}

func (pg *Page) bootstrapData(ctx context.Context) {
	brandMode := pg.IsBrandMode()
	accountReady := pg.guard.State().Status == guard.StatusReady
	creationActive := pg.ActiveTab() == enums.TabCreation

	fetches := []func(ctx context.Context) error{
		func(ctx context.Context) error { return pg.analysis.Fetch(ctx, brandMode) },
		func(ctx context.Context) error { return pg.creation.Fetch(ctx, brandMode) },
	}
	fetches = append(fetches, pg.sideFetches(brandMode)...)
	pg.fanOut(ctx, fetches...)

	// generation outlives the bootstrap request, the page renders it as in progress
	if creationActive {
		pg.creation.StartConceptGeneration(pg.ctx, accountReady, brandMode)
	}
}

// sideFetches returns fetches of brand setup, rules, stats and budget for the current selection
func (pg *Page) sideFetches(brandMode bool) []func(ctx context.Context) error {
	var res []func(ctx context.Context) error
	if brandMode {
		res = append(res, pg.brandSetup.Fetch)
	}
	if !brandMode {
		res = append(res, pg.knowledge.Fetch, pg.knowledge.FetchInsights)
	}
	if pg.guard.ShouldFetchAccountStats() {
		res = append(res, pg.accountStats.Fetch)
	}
	if pg.guard.ShouldFetchTestingBudget() {
		res = append(res, pg.creation.FetchTestingBudget)
	} else {
		pg.creation.ClearTestingBudget()
	}
	return res
}

// bootstrapRefreshListener reloads data when the selected account changes
func (pg *Page) bootstrapRefreshListener() {
	unsubscribe := state.Select(pg.p.Persist.Store(),
		func(s persist.State) string { return s.SelectedAccountID },
		func(a, b string) bool { return a == b },
		func(prev, curr string) {
			log.Printf("[INFO] selected account changed %q -> %q", prev, curr)
			pg.creation.ResetConceptGeneration()
			pg.wg.Add(1)
			go func() {
				defer pg.wg.Done()
				pg.refresh(pg.ctx)
			}()
		})
	pg.disposer.Add(unsubscribe)
}

func (pg *Page) refresh(ctx context.Context) {
	pg.refreshMu.Lock()
	defer pg.refreshMu.Unlock()
	if ctx.Err() != nil {
		return
	}

	brandMode := pg.IsBrandMode()
	fetches := []func(ctx context.Context) error{
		func(ctx context.Context) error { return pg.analysis.Fetch(ctx, brandMode) },
		func(ctx context.Context) error { return pg.creation.Fetch(ctx, brandMode) },
	}
	fetches = append(fetches, pg.sideFetches(brandMode)...)
	pg.fanOut(ctx, fetches...)

	if pg.ActiveTab() == enums.TabCreation {
		accountReady := pg.guard.State().Status == guard.StatusReady
		pg.creation.StartConceptGeneration(ctx, accountReady, brandMode)
	}
}

// fanOut runs all fetches concurrently and waits for all of them, failures are logged only
func (pg *Page) fanOut(ctx context.Context, fetches ...func(ctx context.Context) error) {
	gr := syncs.NewSizedGroup(len(fetches))
	for _, fetch := range fetches {
		gr.Go(func(context.Context) {
			if err := fetch(ctx); err != nil {
				log.Printf("[WARN] %v", err)
			}
		})
	}
	gr.Wait()
}
