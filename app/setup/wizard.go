// Package setup implements the AdMax setup wizard: account or brand selection, products and
// competitors, cold start analysis, user info questions, campaign structure review and template config.
package setup

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/syncs"

	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/disposer"
	"github.com/umputun/admax/app/enums"
	"github.com/umputun/admax/app/nav"
	"github.com/umputun/admax/app/persist"
	"github.com/umputun/admax/app/poller"
	"github.com/umputun/admax/app/state"
)

// ErrIncompleteStructure returned when campaign structure is saved before it was loaded
var ErrIncompleteStructure = errors.New("campaign structure is incomplete")

// Options tune the wizard
type Options struct {
	AnalysisDuration time.Duration
	AnalysisTick     time.Duration
	PollInterval     time.Duration
}

// WizardParams are dependencies of the wizard
type WizardParams struct {
	Backend  Backend
	Persist  *persist.Manager
	Accounts Accounts
	Router   nav.Router
	Toast    Toaster
	Alerter  Alerter // optional
	BrandID  func() string
	Options
}

// WizardState is the wizard state. Empty AccountID means brand flow, nil Campaigns means not loaded yet.
type WizardState struct {
	IsReady              bool
	CurrentStep          enums.SetupStep
	VisibleSteps         []enums.SetupStep
	AccountID            string
	BrandSetup           *api.BrandSetup
	Campaigns            []Campaign
	InitialCampaigns     []Campaign
	SelectedProducts     []api.Product
	SelectedCompetitors  []api.Tracker
	UserInfoQuestions    string
	UserInfoAnswer       string
	UserInfoSnapshotID   string
	IsUserInfoLoading    bool
	IsSubmittingUserInfo bool
}

// Wizard drives the setup steps. Step transitions are serialized, analyzer events wait for the
// running transition to finish.
type Wizard struct {
	p        WizardParams
	store    *state.Store[WizardState]
	analyzer *Analyzer
	disposer disposer.Manager
	flow     chan struct{} // transition lock, acquired with ctx
}

// NewWizard makes the wizard at the connect step
func NewWizard(p WizardParams) *Wizard {
	if p.BrandID == nil {
		p.BrandID = func() string { return "" }
	}
	res := &Wizard{
		p: p,
		store: state.New(WizardState{
			CurrentStep:         enums.SetupStepConnect,
			VisibleSteps:        VisibleSteps(false),
			SelectedProducts:    []api.Product{},
			SelectedCompetitors: []api.Tracker{},
		}),
		flow: make(chan struct{}, 1),
	}
	res.analyzer = NewAnalyzer(AnalyzerParams{
		Backend:      p.Backend,
		Accounts:     p.Accounts,
		Duration:     p.AnalysisDuration,
		Tick:         p.AnalysisTick,
		PollInterval: p.PollInterval,
	})
	res.disposer.Add(res.analyzer.OnComplete(res.onAnalysisComplete))
	res.disposer.Add(res.analyzer.OnFailed(res.onAnalysisFailed))
	return res
}

// State returns a snapshot of the wizard state
func (w *Wizard) State() WizardState { return w.store.Get() }

// Store exposes the wizard state store
func (w *Wizard) Store() *state.Store[WizardState] { return w.store }

// Analyzer returns the cold start analyzer
func (w *Wizard) Analyzer() *Analyzer { return w.analyzer }

// AnalysisProgress is the analysis progress percentage
func (w *Wizard) AnalysisProgress() int { return w.analyzer.Progress() }

// AnalysisSteps returns analysis progress labels
func (w *Wizard) AnalysisSteps() []AnalysisStep { return w.analyzer.Steps() }

// CurrentAnalysisStep returns the analysis step in progress
func (w *Wizard) CurrentAnalysisStep() (AnalysisStep, bool) { return w.analyzer.CurrentStepInfo() }

// IsAllStepsCompleted reports whether all analysis steps are done
func (w *Wizard) IsAllStepsCompleted() bool { return w.analyzer.IsAllStepsCompleted() }

// IsAccountFlow reports whether the wizard sets up an ad account rather than the brand
func (w *Wizard) IsAccountFlow() bool { return w.store.Get().AccountID != "" }

// IsAdAccountConnected reports whether any ad account is connected
func (w *Wizard) IsAdAccountConnected() bool {
	return w.store.Get().IsReady && len(w.p.Accounts.Accounts()) > 0
}

// IsSelectedAccountSetupComplete reports whether the selected account finished setup earlier
func (w *Wizard) IsSelectedAccountSetupComplete() bool {
	st := w.store.Get()
	if !st.IsReady || st.AccountID == "" {
		return false
	}
	acc, ok := w.findAccount(st.AccountID)
	return ok && acc.IsSetupComplete
}

// IsBrandSetupComplete reports whether the brand finished setup, always false in account flow
func (w *Wizard) IsBrandSetupComplete() bool {
	st := w.store.Get()
	if !st.IsReady || st.AccountID != "" {
		return false
	}
	return st.BrandSetup != nil && st.BrandSetup.IsSetupComplete
}

// IsSetupComplete reports whether the selected account or the brand is set up
func (w *Wizard) IsSetupComplete() bool {
	return w.IsSelectedAccountSetupComplete() || w.IsBrandSetupComplete()
}

// TotalBudget is the monthly budget of visible campaigns
func (w *Wizard) TotalBudget() int { return TotalBudget(w.store.Get().Campaigns) }

// Bootstrap selects the account to set up and restores the persisted step when it is still relevant.
// Persisted account is used when it is visible and not set up yet, otherwise the first such account.
func (w *Wizard) Bootstrap(ctx context.Context) error {
	if err := w.lock(ctx); err != nil {
		return err
	}
	defer w.unlock()

	if err := w.p.Accounts.WaitReady(ctx); err != nil {
		return fmt.Errorf("wait for accounts: %w", err)
	}

	visible := w.p.Accounts.Available()
	firstID := ""
	for _, a := range visible {
		if !a.IsSetupComplete {
			firstID = a.AccountID
			break
		}
	}

	tempID := firstID
	if persistID := w.p.Persist.Get().SelectedAccountID; persistID != "" {
		idx := slices.IndexFunc(visible, func(a api.MetaAccount) bool { return a.AccountID == persistID })
		switch {
		case idx >= 0 && !visible[idx].IsSetupComplete:
			tempID = persistID
		case idx < 0:
			log.Printf("[INFO] persisted account %s is gone, drop selection", persistID)
			w.p.Persist.SetSelectedAccountID("")
		}
	}
	w.store.Update(func(s *WizardState) { s.AccountID = tempID })
	w.syncVisibleSteps()
	w.loadSavedProductsAndCompetitors(ctx, tempID, false)

	if err := w.restoreStep(ctx, tempID); err != nil {
		log.Printf("[WARN] can't restore setup step, %v", err)
	}
	w.store.Update(func(s *WizardState) { s.IsReady = true })
	log.Printf("[DEBUG] setup wizard ready, account %q, step %s", tempID, w.store.Get().CurrentStep)
	return nil
}

// Next moves to the next step doing the work the current step requires
func (w *Wizard) Next(ctx context.Context) error {
	if err := w.lock(ctx); err != nil {
		return err
	}
	defer w.unlock()
	return w.next(ctx)
}

// Prev moves one step back
func (w *Wizard) Prev(ctx context.Context) error {
	if err := w.lock(ctx); err != nil {
		return err
	}
	defer w.unlock()
	return w.prev(ctx)
}

// SelectAccount selects the account to set up, empty id switches to brand flow.
// Switching from another account drops campaigns, products, competitors and persisted setup progress.
func (w *Wizard) SelectAccount(ctx context.Context, accountID string) error {
	if err := w.lock(ctx); err != nil {
		return err
	}
	defer w.unlock()

	st := w.store.Get()
	changing := st.AccountID != "" && st.AccountID != accountID
	w.store.Update(func(s *WizardState) {
		s.AccountID = accountID
		if changing {
			s.Campaigns, s.InitialCampaigns = nil, nil
			s.SelectedProducts, s.SelectedCompetitors = []api.Product{}, []api.Tracker{}
			s.BrandSetup = nil
		}
	})
	if changing {
		w.p.Persist.ClearSetupState()
	}

	st = w.store.Get()
	loaded := len(st.SelectedProducts) > 0 || len(st.SelectedCompetitors) > 0
	if accountID == "" && !changing && st.BrandSetup != nil && loaded {
		w.syncVisibleSteps()
		return nil
	}
	w.loadSavedProductsAndCompetitors(ctx, accountID, changing)
	w.syncVisibleSteps()
	return nil
}

// SetSelectedProducts replaces selected products, duplicates dropped
func (w *Wizard) SetSelectedProducts(products []api.Product) {
	w.store.Update(func(s *WizardState) { s.SelectedProducts = mergeProducts(nil, products) })
}

// SetSelectedCompetitors replaces selected competitors
func (w *Wizard) SetSelectedCompetitors(competitors []api.Tracker) {
	w.store.Update(func(s *WizardState) { s.SelectedCompetitors = mergeTrackers(nil, competitors) })
}

// RemoveProduct drops a selected product by folder id
func (w *Wizard) RemoveProduct(id string) {
	w.store.Update(func(s *WizardState) {
		s.SelectedProducts = slices.DeleteFunc(slices.Clone(s.SelectedProducts), func(p api.Product) bool { return p.ID == id })
	})
}

// RemoveCompetitor drops a selected competitor by page id
func (w *Wizard) RemoveCompetitor(pageID string) {
	w.store.Update(func(s *WizardState) {
		s.SelectedCompetitors = slices.DeleteFunc(slices.Clone(s.SelectedCompetitors), func(t api.Tracker) bool { return t.PageID == pageID })
	})
}

// AddProduct looks the product up and adds it to the selection
func (w *Wizard) AddProduct(ctx context.Context, productID string) error {
	product, err := w.p.Backend.GetProduct(ctx, productID)
	if err != nil {
		w.p.Toast.Error("Failed to load product. Please try again.")
		return fmt.Errorf("get product %s: %w", productID, err)
	}
	w.store.Update(func(s *WizardState) {
		s.SelectedProducts = mergeProducts(s.SelectedProducts, []api.Product{product})
	})
	return nil
}

// AddCompetitor looks the competitor tracker up and adds it to the selection
func (w *Wizard) AddCompetitor(ctx context.Context, pageID string) error {
	tracker, err := w.p.Backend.GetTracker(ctx, pageID)
	if err != nil {
		w.p.Toast.Error("Failed to load competitor. Please try again.")
		return fmt.Errorf("get tracker %s: %w", pageID, err)
	}
	w.store.Update(func(s *WizardState) {
		s.SelectedCompetitors = mergeTrackers(s.SelectedCompetitors, []api.Tracker{tracker})
	})
	return nil
}

// UpdateCampaignBudget sets monthly budget of a campaign type
func (w *Wizard) UpdateCampaignBudget(ct api.CampaignType, budget int) {
	w.updateCampaigns(func(c []Campaign) []Campaign { return UpdateBudget(c, ct, budget) })
}

// UpdateCampaignPercent sets budget share of a campaign type
func (w *Wizard) UpdateCampaignPercent(ct api.CampaignType, percent int) {
	w.updateCampaigns(func(c []Campaign) []Campaign { return UpdatePercent(c, ct, percent) })
}

// UpdateTotalBudget sets total monthly budget of visible campaigns
func (w *Wizard) UpdateTotalBudget(total int) {
	w.updateCampaigns(func(c []Campaign) []Campaign { return UpdateTotal(c, total) })
}

// LinkCampaigns links campaign types to existing campaigns, nil link unlinks
func (w *Wizard) LinkCampaigns(links map[api.CampaignType]*CampaignLink) {
	w.updateCampaigns(func(c []Campaign) []Campaign { return LinkCampaigns(c, links) })
}

// SaveCampaignStructure saves the reviewed structure. Account flow keeps it as a draft submitted
// with the template config, brand flow submits it right away.
func (w *Wizard) SaveCampaignStructure(ctx context.Context) error {
	st := w.store.Get()
	if st.Campaigns == nil {
		w.p.Toast.Error("Please complete the campaign structure setup")
		return ErrIncompleteStructure
	}
	settings := SettingsFromCampaigns(st.Campaigns)
	total := float64(TotalBudget(st.Campaigns))

	if st.AccountID != "" {
		w.p.Persist.SetReviewStructureDraft(api.ReviewStructureDraft{BudgetSettings: settings, TotalMonthlyBudget: total})
		w.p.Toast.Success("Campaign structure saved")
		return nil
	}

	req := api.SetupRequest{Platform: api.PlatformMeta, BudgetSettings: &settings, TotalMonthlyBudget: total}
	if err := w.p.Backend.SubmitSetup(ctx, req); err != nil {
		log.Printf("[WARN] failed to save campaign structure, %v", err)
		w.p.Toast.Error("Failed to save campaign structure. Please try again.")
		return fmt.Errorf("submit brand setup: %w", err)
	}
	w.p.Toast.Success("Campaign structure saved successfully")
	return nil
}

// SubmitTemplateConfig submits account setup with the saved structure draft and the launch template,
// then completes the wizard
func (w *Wizard) SubmitTemplateConfig(ctx context.Context, cfg api.LaunchConfig) error {
	if err := w.lock(ctx); err != nil {
		return err
	}
	defer w.unlock()

	st := w.store.Get()
	if st.AccountID == "" || st.Campaigns == nil {
		w.p.Toast.Error("Please complete the campaign structure setup")
		return ErrIncompleteStructure
	}
	draft, ok := w.p.Persist.ReviewStructureDraft()
	if !ok {
		draft = api.ReviewStructureDraft{
			BudgetSettings:     SettingsFromCampaigns(st.Campaigns),
			TotalMonthlyBudget: float64(TotalBudget(st.Campaigns)),
		}
	}
	req := api.SetupRequest{
		Platform:           api.PlatformMeta,
		AccountID:          st.AccountID,
		BudgetSettings:     &draft.BudgetSettings,
		TotalMonthlyBudget: draft.TotalMonthlyBudget,
		LaunchConfig:       cfg,
	}
	if err := w.p.Backend.SubmitSetup(ctx, req); err != nil {
		log.Printf("[WARN] failed to submit account setup, %v", err)
		w.p.Toast.Error("Failed to save template config. Please try again.")
		return fmt.Errorf("submit account setup: %w", err)
	}
	w.p.Persist.ClearReviewStructureDraft()
	return w.completeSetup(ctx)
}

// CompleteSetup makes the set up account selected and opens the knowledge tab of the queue
func (w *Wizard) CompleteSetup(ctx context.Context) error {
	if err := w.lock(ctx); err != nil {
		return err
	}
	defer w.unlock()
	return w.completeSetup(ctx)
}

// SkipToQueue leaves the wizard for an already set up account
func (w *Wizard) SkipToQueue(ctx context.Context) error {
	if err := w.lock(ctx); err != nil {
		return err
	}
	defer w.unlock()

	if id := w.store.Get().AccountID; id != "" {
		w.p.Persist.SetSelectedAccountID(id)
	}
	w.p.Persist.ClearSetupState()
	w.p.Router.Navigate(nav.QueuePath, url.Values{"tab": {enums.TabKnowledge.String()}}, false)
	return nil
}

// SkipAnalysis stops the running analysis, loads campaigns from existing settings and moves to questions
func (w *Wizard) SkipAnalysis(ctx context.Context) error {
	if err := w.lock(ctx); err != nil {
		return err
	}
	defer w.unlock()

	w.analyzer.Stop()
	w.p.Persist.SetAnalysisTaskID("")
	settings, total := w.budgetSource(false)
	w.setCampaigns(w.loadCampaigns(ctx, settings, total))
	if err := w.setCurrentStep(ctx, enums.SetupStepQuestions); err != nil {
		return err
	}
	w.loadUserInfoQuestions(ctx, false)
	return nil
}

// LoadUserInfoQuestions loads AI questions unless loading already or loaded and not forced
func (w *Wizard) LoadUserInfoQuestions(ctx context.Context, force bool) {
	w.loadUserInfoQuestions(ctx, force)
}

// SetUserInfoAnswer sets the answer to the questions
func (w *Wizard) SetUserInfoAnswer(answer string) {
	w.store.Update(func(s *WizardState) { s.UserInfoAnswer = answer })
}

// SubmitUserInfoAnswer submits the answer and moves on. Without questions the step is skipped.
func (w *Wizard) SubmitUserInfoAnswer(ctx context.Context) error {
	if err := w.lock(ctx); err != nil {
		return err
	}
	defer w.unlock()

	start := w.store.Swap(func(s *WizardState) bool {
		if s.IsSubmittingUserInfo {
			return false
		}
		s.IsSubmittingUserInfo = true
		return true
	})
	if !start {
		return nil
	}
	defer w.store.Update(func(s *WizardState) { s.IsSubmittingUserInfo = false })

	st := w.store.Get()
	if strings.TrimSpace(st.UserInfoQuestions) == "" {
		log.Printf("[INFO] no user info questions, skip the step")
		return w.skipUserInfo(ctx)
	}
	if err := w.submitUserAnswers(ctx, st.UserInfoAnswer); err != nil {
		log.Printf("[WARN] failed to submit user info, %v", err)
		w.p.Toast.Error("Failed to submit answers. Please try again.")
		return err
	}
	return w.next(ctx)
}

// SkipUserInfoStep moves past the questions step without answering
func (w *Wizard) SkipUserInfoStep(ctx context.Context) error {
	if err := w.lock(ctx); err != nil {
		return err
	}
	defer w.unlock()
	return w.skipUserInfo(ctx)
}

// GoBackFromUserInfoStep moves back from the questions step
func (w *Wizard) GoBackFromUserInfoStep(ctx context.Context) error {
	if err := w.lock(ctx); err != nil {
		return err
	}
	defer w.unlock()
	if w.store.Get().CurrentStep != enums.SetupStepQuestions {
		return nil
	}
	return w.prev(ctx)
}

// Dispose stops the analysis and drops listeners and the brand setup cache
func (w *Wizard) Dispose() {
	w.analyzer.Dispose()
	w.disposer.Dispose()
	w.store.Update(func(s *WizardState) { s.BrandSetup = nil })
}

func (w *Wizard) next(ctx context.Context) error {
	st := w.store.Get()
	switch st.CurrentStep {
	case enums.SetupStepConnect:
		return w.setCurrentStep(ctx, enums.SetupStepProducts)
	case enums.SetupStepProducts:
		if err := w.startAnalysis(ctx); err != nil {
			log.Printf("[WARN] failed to start analysis, %v", err)
			w.p.Toast.Error("Failed to start analysis. Please check your inputs and try again.")
			return err
		}
		// polling just started, nothing to resume
		w.enterStep(enums.SetupStepAnalysis)
		return nil
	case enums.SetupStepAnalysis:
		return nil
	case enums.SetupStepQuestions:
		return w.setCurrentStep(ctx, enums.SetupStepStructure)
	case enums.SetupStepStructure:
		if err := w.SaveCampaignStructure(ctx); err != nil {
			return err
		}
		if st.AccountID != "" {
			return w.setCurrentStep(ctx, enums.SetupStepTemplate)
		}
		w.finalize(ctx)
		return nil
	case enums.SetupStepTemplate:
		return w.completeSetup(ctx)
	}
	return nil
}

func (w *Wizard) prev(ctx context.Context) error {
	step, ok := prevStep(w.store.Get().CurrentStep)
	if !ok {
		return nil
	}
	return w.setCurrentStep(ctx, step)
}

func (w *Wizard) skipUserInfo(ctx context.Context) error {
	if w.store.Get().CurrentStep != enums.SetupStepQuestions {
		return nil
	}
	return w.next(ctx)
}

// setCurrentStep enters the step and loads the data it needs
func (w *Wizard) setCurrentStep(ctx context.Context, step enums.SetupStep) error {
	w.enterStep(step)
	return w.loadDataForStep(ctx, step)
}

// enterStep sets and persists the step with the flow marker: brand id for brand flow, empty for account flow
func (w *Wizard) enterStep(step enums.SetupStep) {
	w.store.Update(func(s *WizardState) { s.CurrentStep = step })
	w.p.Persist.SetCurrentSetupStep(&step)
	if w.store.Get().AccountID != "" {
		w.p.Persist.SetSetupBrandID("")
		return
	}
	if brandID := w.p.BrandID(); brandID != "" {
		w.p.Persist.SetSetupBrandID(brandID)
	}
}

func (w *Wizard) loadDataForStep(ctx context.Context, step enums.SetupStep) error {
	st := w.store.Get()
	switch step {
	case enums.SetupStepStructure:
		if st.Campaigns == nil {
			settings, total := w.budgetSource(true)
			w.setCampaigns(w.loadCampaigns(ctx, settings, total))
		}
	case enums.SetupStepQuestions:
		if !st.IsUserInfoLoading {
			w.loadUserInfoQuestions(ctx, true)
		}
	case enums.SetupStepProducts:
		if len(st.SelectedProducts) == 0 && len(st.SelectedCompetitors) == 0 && (st.AccountID != "" || st.BrandSetup != nil) {
			w.loadSavedProductsAndCompetitors(ctx, st.AccountID, false)
		}
	case enums.SetupStepAnalysis:
		taskID := w.p.Persist.Get().AnalysisTaskID
		hasExtra := len(st.SelectedProducts) > 0 || len(st.SelectedCompetitors) > 0
		switch {
		case taskID != "":
			if err := w.analyzer.ResumePolling(ctx, taskID, hasExtra); err != nil {
				log.Printf("[WARN] failed to resume analysis polling, %v", err)
				w.p.Persist.SetAnalysisTaskID("")
			}
		case st.Campaigns != nil && w.analyzer.IsAllStepsCompleted():
			if err := w.setCurrentStep(ctx, enums.SetupStepQuestions); err != nil {
				return err
			}
			w.loadUserInfoQuestions(ctx, false)
		}
	}
	return nil
}

// restoreStep restores the persisted step unless the flow type changed or setup is already complete
func (w *Wizard) restoreStep(ctx context.Context, accountID string) error {
	ps := w.p.Persist.Get()
	brandID := w.p.BrandID()
	wasBrandFlow := ps.SetupBrandID != ""
	isBrandFlow := accountID == ""
	flowChanged := (wasBrandFlow && !isBrandFlow) || (!wasBrandFlow && ps.CurrentSetupStep != nil && isBrandFlow)
	if flowChanged {
		log.Printf("[INFO] setup flow type changed, start from the beginning")
		w.p.Persist.ClearSetupState()
		return nil
	}
	if ps.CurrentSetupStep == nil || !slices.Contains(w.store.Get().VisibleSteps, *ps.CurrentSetupStep) {
		return nil
	}

	brandIncomplete := func() bool {
		bs := w.store.Get().BrandSetup
		return bs == nil || !bs.IsSetupComplete
	}
	restore := false
	switch {
	case accountID != "":
		acc, ok := w.findAccount(accountID)
		restore = ok && !acc.IsSetupComplete
	case ps.SetupBrandID != "" && ps.SetupBrandID == brandID:
		restore = brandIncomplete()
	case ps.SetupBrandID == "":
		restore = brandIncomplete()
		if restore && brandID != "" {
			w.p.Persist.SetSetupBrandID(brandID)
		}
	}
	if !restore {
		w.p.Persist.ClearSetupState()
		return nil
	}
	log.Printf("[INFO] restore setup step %s", *ps.CurrentSetupStep)
	return w.setCurrentStep(ctx, *ps.CurrentSetupStep)
}

func (w *Wizard) syncVisibleSteps() {
	w.store.Update(func(s *WizardState) {
		s.VisibleSteps = VisibleSteps(s.AccountID != "")
		s.CurrentStep = fitStep(s.CurrentStep, s.VisibleSteps)
	})
}

func (w *Wizard) startAnalysis(ctx context.Context) error {
	st := w.store.Get()
	params := ColdStartParams{
		AccountID:            st.AccountID,
		ProductIDs:           make([]string, 0, len(st.SelectedProducts)),
		CompetitorTrackerIDs: make([]string, 0, len(st.SelectedCompetitors)),
		OnTaskID:             w.p.Persist.SetAnalysisTaskID,
	}
	if st.AccountID == "" {
		params.BrandID = w.p.BrandID()
	}
	for _, p := range st.SelectedProducts {
		params.ProductIDs = append(params.ProductIDs, p.ProductKey())
	}
	for _, c := range st.SelectedCompetitors {
		params.CompetitorTrackerIDs = append(params.CompetitorTrackerIDs, c.PageID)
	}
	return w.analyzer.StartColdStart(ctx, params)
}

func (w *Wizard) onAnalysisComplete(ctx context.Context) {
	if err := w.lock(ctx); err != nil {
		return
	}
	defer w.unlock()

	w.p.Persist.SetAnalysisTaskID("")
	if w.store.Get().Campaigns == nil {
		settings, total := w.budgetSource(false)
		w.setCampaigns(w.loadCampaigns(ctx, settings, total))
	}
	if err := w.setCurrentStep(ctx, enums.SetupStepQuestions); err != nil {
		log.Printf("[WARN] can't enter questions step, %v", err)
		return
	}
	w.loadUserInfoQuestions(ctx, false)
}

func (w *Wizard) onAnalysisFailed(ctx context.Context, err error) {
	if e := w.lock(ctx); e != nil {
		return
	}
	defer w.unlock()

	w.p.Persist.SetAnalysisTaskID("")
	if e := w.setCurrentStep(ctx, enums.SetupStepConnect); e != nil {
		log.Printf("[WARN] can't enter connect step, %v", e)
	}
	w.p.Toast.Error("Failed to analyze ad account. Please try again.")
	if errors.Is(err, poller.ErrTaskFailed) && w.p.Alerter != nil {
		if e := w.p.Alerter.Alert(ctx, fmt.Sprintf("setup analysis failed: %v", err)); e != nil {
			log.Printf("[WARN] failed to send alert, %v", e)
		}
	}
}

func (w *Wizard) completeSetup(ctx context.Context) error {
	st := w.store.Get()
	if st.Campaigns == nil || st.AccountID == "" {
		w.p.Toast.Error("Please complete the campaign structure setup")
		return nil
	}
	w.p.Persist.SetSelectedAccountID(st.AccountID)
	w.finalize(ctx)
	return nil
}

// finalize drops setup progress, reloads accounts and brand setup and opens the knowledge tab
func (w *Wizard) finalize(ctx context.Context) {
	w.p.Toast.Success("AdMax setup completed successfully")
	w.p.Persist.ClearSetupState()

	gr := syncs.NewSizedGroup(2)
	gr.Go(func(context.Context) {
		if err := w.p.Accounts.Fetch(ctx); err != nil {
			log.Printf("[WARN] can't reload accounts, %v", err)
		}
	})
	gr.Go(func(context.Context) {
		bs, err := w.p.Backend.GetBrandSetup(ctx)
		if err != nil {
			log.Printf("[WARN] can't reload brand setup, %v", err)
			return
		}
		w.store.Update(func(s *WizardState) { s.BrandSetup = &bs })
	})
	gr.Wait()

	w.p.Router.Navigate(nav.QueuePath, url.Values{"tab": {enums.TabKnowledge.String()}}, false)
}

// budgetSource picks budget settings: structure draft (account flow, when allowed), account settings
// or brand settings. Nil settings mean defaults.
func (w *Wizard) budgetSource(useDraft bool) (*api.BudgetSettings, float64) {
	st := w.store.Get()
	if st.AccountID != "" {
		if draft, ok := w.p.Persist.ReviewStructureDraft(); useDraft && ok {
			return &draft.BudgetSettings, draft.TotalMonthlyBudget
		}
		if acc, ok := w.findAccount(st.AccountID); ok {
			return acc.BudgetSettings, acc.TotalMonthlyBudget
		}
		return nil, 0
	}
	if st.BrandSetup != nil {
		return st.BrandSetup.BudgetSettings, st.BrandSetup.TotalMonthlyBudget
	}
	return nil, 0
}

// loadCampaigns converts settings to campaigns, resolving linked campaign names in account flow
func (w *Wizard) loadCampaigns(ctx context.Context, settings *api.BudgetSettings, total float64) []Campaign {
	names := map[string]string{}
	accountID := w.store.Get().AccountID
	if settings != nil && accountID != "" {
		if ids := campaignIDs(*settings); len(ids) > 0 {
			names = w.campaignNames(ctx, accountID, ids)
		}
	}
	return CampaignsFromSettings(settings, total, names)
}

func (w *Wizard) campaignNames(ctx context.Context, accountID string, ids []string) map[string]string {
	res := map[string]string{}
	campaigns, err := w.p.Backend.ListCampaigns(ctx, accountID)
	if err != nil {
		log.Printf("[WARN] failed to load campaign names, %v", err)
		return res
	}
	for _, c := range campaigns {
		if slices.Contains(ids, c.CampaignID) {
			res[c.CampaignID] = c.Name
		}
	}
	return res
}

func (w *Wizard) setCampaigns(campaigns []Campaign) {
	w.store.Update(func(s *WizardState) {
		s.Campaigns = campaigns
		s.InitialCampaigns = cloneCampaigns(campaigns)
	})
}

func (w *Wizard) updateCampaigns(fn func([]Campaign) []Campaign) {
	w.store.Update(func(s *WizardState) {
		if s.Campaigns == nil {
			return
		}
		s.Campaigns = fn(s.Campaigns)
	})
}

// loadSavedProductsAndCompetitors loads products and competitors saved for the account or brand.
// With replace the selection is replaced, otherwise loaded items are merged into it.
func (w *Wizard) loadSavedProductsAndCompetitors(ctx context.Context, accountID string, replace bool) {
	var productIDs, trackerIDs []string
	if accountID == "" {
		bs := w.store.Get().BrandSetup
		if bs == nil {
			loaded, err := w.p.Backend.GetBrandSetup(ctx)
			if err != nil {
				log.Printf("[WARN] failed to fetch brand setup, %v", err)
				if replace {
					w.SetSelectedProducts(nil)
					w.SetSelectedCompetitors(nil)
				}
				return
			}
			bs = &loaded
			w.store.Update(func(s *WizardState) { s.BrandSetup = bs })
		}
		productIDs, trackerIDs = unique(bs.EcommerceProducts), unique(bs.ContentUnderstandingTrackers)
	} else {
		acc, ok := w.findAccount(accountID)
		if !ok {
			return
		}
		productIDs, trackerIDs = unique(acc.EcommerceProducts), unique(acc.ContentUnderstandingTrackers)
	}

	products := make([]api.Product, len(productIDs))
	trackers := make([]api.Tracker, len(trackerIDs))
	gr := syncs.NewSizedGroup(4)
	for i, id := range productIDs {
		gr.Go(func(context.Context) {
			p, err := w.p.Backend.GetProduct(ctx, id)
			if err != nil {
				log.Printf("[WARN] failed to load product %s, %v", id, err)
				return
			}
			products[i] = p
		})
	}
	for i, id := range trackerIDs {
		gr.Go(func(context.Context) {
			t, err := w.p.Backend.GetTracker(ctx, id)
			if err != nil {
				log.Printf("[WARN] failed to load tracker %s, %v", id, err)
				return
			}
			trackers[i] = t
		})
	}
	gr.Wait()
	products = slices.DeleteFunc(products, func(p api.Product) bool { return p.ID == "" })
	trackers = slices.DeleteFunc(trackers, func(t api.Tracker) bool { return t.PageID == "" })

	w.store.Update(func(s *WizardState) {
		switch {
		case len(products) > 0 && replace:
			s.SelectedProducts = mergeProducts(nil, products)
		case len(products) > 0:
			s.SelectedProducts = mergeProducts(s.SelectedProducts, products)
		case replace:
			s.SelectedProducts = []api.Product{}
		}
		switch {
		case len(trackers) > 0 && replace:
			s.SelectedCompetitors = mergeTrackers(nil, trackers)
		case len(trackers) > 0:
			s.SelectedCompetitors = mergeTrackers(s.SelectedCompetitors, trackers)
		case replace:
			s.SelectedCompetitors = []api.Tracker{}
		}
	})
}

func (w *Wizard) loadUserInfoQuestions(ctx context.Context, force bool) {
	start := w.store.Swap(func(s *WizardState) bool {
		if s.IsUserInfoLoading || (!force && s.UserInfoQuestions != "") {
			return false
		}
		s.IsUserInfoLoading = true
		return true
	})
	if !start {
		return
	}
	questions := w.fetchQuestions(ctx)
	w.store.Update(func(s *WizardState) {
		s.UserInfoQuestions = questions
		if force {
			s.UserInfoAnswer = ""
		}
		s.IsUserInfoLoading = false
	})
}

// fetchQuestions loads insight questions of the account or brand, failures result in no questions
func (w *Wizard) fetchQuestions(ctx context.Context) string {
	accountID := w.store.Get().AccountID
	if accountID == "" && w.p.BrandID() == "" {
		return ""
	}
	resp, err := w.p.Backend.GetInsightQuestions(ctx, accountID)
	if err != nil {
		log.Printf("[WARN] failed to fetch insight questions, %v", err)
		return ""
	}
	w.store.Update(func(s *WizardState) { s.UserInfoSnapshotID = resp.SnapshotID })
	return resp.Questions
}

func (w *Wizard) submitUserAnswers(ctx context.Context, answer string) error {
	st := w.store.Get()
	if st.UserInfoSnapshotID == "" {
		return errors.New("missing snapshot id")
	}
	req := api.InsightFeedback{AccountID: st.AccountID, SnapshotID: st.UserInfoSnapshotID, UserAnswer: answer}
	if st.AccountID == "" {
		req.BrandID = w.p.BrandID()
		if req.BrandID == "" {
			return errors.New("missing account id or brand id")
		}
	}
	if err := w.p.Backend.SubmitInsightFeedback(ctx, req); err != nil {
		return fmt.Errorf("submit insight feedback: %w", err)
	}
	return nil
}

func (w *Wizard) findAccount(id string) (api.MetaAccount, bool) {
	for _, a := range w.p.Accounts.Accounts() {
		if a.AccountID == id {
			return a, true
		}
	}
	return api.MetaAccount{}, false
}

func (w *Wizard) lock(ctx context.Context) error {
	select {
	case w.flow <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Wizard) unlock() { <-w.flow }

// unique drops duplicates keeping the first occurrence order
func unique(ids []string) []string {
	res := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(res, id) {
			res = append(res, id)
		}
	}
	return res
}

func mergeProducts(current, loaded []api.Product) []api.Product {
	res := slices.Clone(current)
	if res == nil {
		res = []api.Product{}
	}
	for _, p := range loaded {
		if !slices.ContainsFunc(res, func(x api.Product) bool { return x.ID == p.ID }) {
			res = append(res, p)
		}
	}
	return res
}

func mergeTrackers(current, loaded []api.Tracker) []api.Tracker {
	res := slices.Clone(current)
	if res == nil {
		res = []api.Tracker{}
	}
	for _, t := range loaded {
		if !slices.ContainsFunc(res, func(x api.Tracker) bool { return x.PageID == t.PageID }) {
			res = append(res, t)
		}
	}
	return res
}
