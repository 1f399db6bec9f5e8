package queue

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/dialog"
	"github.com/umputun/admax/app/enums"
	"github.com/umputun/admax/app/nav"
	"github.com/umputun/admax/app/paginate"
	"github.com/umputun/admax/app/poller"
	"github.com/umputun/admax/app/state"
)

// AdLaunchPath is the ad launcher page approved creatives are handed to
const AdLaunchPath = "/tool/creative-testing/ad-launch"

// conceptTaskPrefix is prepended by the service to concept generation task ids
const conceptTaskPrefix = "ads_meta_account-"

// DefaultLowBudgetThreshold is the remaining testing budget percentage considered low
const DefaultLowBudgetThreshold = 30

// TestingBudget is the monthly testing campaign budget with the remaining part
type TestingBudget struct {
	CampaignID              string
	MonthlyBudget           float64 // spent
	MonthlyBudgetAllocation float64
	Remaining               float64
}

// CreationState is the state of the creation queue besides the list
type CreationState struct {
	IsGeneratingConcept           bool
	ConceptGenerationTaskID       string
	HasTriggeredConceptGeneration bool
	TestingBudget                 *TestingBudget
}

// CreationParams are dependencies and tuning of the creation queue
type CreationParams struct {
	Backend      CreationBackend
	SelectedID   func() string
	Accounts     Accounts
	Messages     MessageStore
	Router       nav.Router
	Dialogs      Dialogs
	Toast        Toaster
	Alerter      Alerter // optional
	OnTabChange  func(tab enums.Tab) bool
	PollInterval time.Duration
	LowBudgetPct float64
	RequestDelay time.Duration // wait before reloading after creatives requested for an existing pipeline
}

// Creation is the queue of AI proposed ad sets
type Creation struct {
	p      CreationParams
	list   *paginate.Manager[api.CreationPipeline, api.ListParams]
	store  *state.Store[CreationState]
	polls  *poller.Manager[api.Task]
	scroll *ScrollTrigger

	mu            sync.Mutex
	session       uint64 // account selection session, bumped by ResetConceptGeneration
	cancelConcept context.CancelFunc
	wg            sync.WaitGroup // background concept generation
	disposed      bool
}

// NewCreation makes the creation queue
func NewCreation(p CreationParams) *Creation {
	if p.LowBudgetPct <= 0 {
		p.LowBudgetPct = DefaultLowBudgetThreshold
	}
	if p.RequestDelay <= 0 {
		p.RequestDelay = time.Second
	}
	if p.PollInterval <= 0 {
		p.PollInterval = poller.DefaultInterval
	}
	return &Creation{
		p:     p,
		list:  paginate.New("creation pipelines", p.Backend.ListCreationPipelines),
		store: state.New(CreationState{}),
		polls: poller.NewManager[api.Task](),
	}
}

// State returns a snapshot of the creation state
func (c *Creation) State() CreationState { return c.store.Get() }

// Store exposes the creation state store
func (c *Creation) Store() *state.Store[CreationState] { return c.store }

// List returns the paginated list
func (c *Creation) List() *paginate.Manager[api.CreationPipeline, api.ListParams] { return c.list }

// Items returns loaded ad sets
func (c *Creation) Items() []api.CreationPipeline { return c.list.Items() }

// IsGeneratingConcept reports whether concept generation is running
func (c *Creation) IsGeneratingConcept() bool { return c.store.Get().IsGeneratingConcept }

// BudgetPercentage is the remaining share of the testing budget, 0 when unknown
func (c *Creation) BudgetPercentage() float64 {
	tb := c.store.Get().TestingBudget
	if tb == nil || tb.MonthlyBudgetAllocation == 0 {
		return 0
	}
	return tb.Remaining / tb.MonthlyBudgetAllocation * 100
}

// IsLowBudget reports remaining testing budget below the threshold
func (c *Creation) IsLowBudget() bool {
	tb := c.store.Get().TestingBudget
	if tb == nil {
		return false
	}
	return c.BudgetPercentage() < c.p.LowBudgetPct && tb.MonthlyBudgetAllocation > 0
}

// Fetch loads the first page. Brand mode lists without platform and account.
func (c *Creation) Fetch(ctx context.Context, brandMode bool) error {
	return c.list.Fetch(ctx, listParams(brandMode, c.p.SelectedID()))
}

// FetchAndMaybeGenerateConcepts loads the list and, for the active creation tab, checks concept generation
// after the data is loaded
func (c *Creation) FetchAndMaybeGenerateConcepts(ctx context.Context, brandMode, accountReady, creationTabActive bool) error {
	if err := c.Fetch(ctx, brandMode); err != nil {
		return err
	}
	if creationTabActive {
		c.CheckAndHandleConceptGeneration(ctx, accountReady, brandMode)
	}
	return nil
}

// SetScrollContainer binds scroll events of the list container, replacing a previous binding
func (c *Creation) SetScrollContainer(trigger *ScrollTrigger) {
	if c.scroll != nil {
		c.scroll.Stop()
	}
	c.scroll = trigger
}

// OnScroll passes scroll event to the bound trigger
func (c *Creation) OnScroll(m ScrollMetrics) {
	if c.scroll != nil {
		c.scroll.OnScroll(m)
	}
}

// FetchTestingBudget loads testing budget of the selected account, failure clears it
func (c *Creation) FetchTestingBudget(ctx context.Context) error {
	accountID := c.p.SelectedID()
	if accountID == "" {
		return nil
	}
	resp, err := c.p.Backend.GetTestingBudget(ctx, accountID)
	if err != nil {
		c.ClearTestingBudget()
		return fmt.Errorf("get testing budget: %w", err)
	}
	c.store.Update(func(s *CreationState) {
		s.TestingBudget = &TestingBudget{
			CampaignID:              resp.CampaignID,
			MonthlyBudget:           resp.MonthlyBudget,
			MonthlyBudgetAllocation: resp.MonthlyBudgetAllocation,
			Remaining:               resp.MonthlyBudgetAllocation - resp.MonthlyBudget,
		}
	})
	return nil
}

// ClearTestingBudget drops the testing budget
func (c *Creation) ClearTestingBudget() {
	c.store.Update(func(s *CreationState) { s.TestingBudget = nil })
}

// Find returns loaded item by id
func (c *Creation) Find(id string) (api.CreationPipeline, bool) {
	for _, item := range c.list.Items() {
		if item.ID == id {
			return item, true
		}
	}
	return api.CreationPipeline{}, false
}

// ApproveItem hands the ad set with selected media jobs to the ad launcher.
// Ad sets with daily budget above the remaining testing budget are not approved,
// the user is sent to the knowledge tab instead.
func (c *Creation) ApproveItem(ctx context.Context, id string, selectedJobIDs []string) error {
	item, ok := c.Find(id)
	if !ok {
		c.p.Toast.Error("Failed to find creation pipeline item")
		return nil
	}
	if item.Flow == nil {
		c.p.Toast.Error("Creation pipeline is missing flow data")
		return nil
	}

	if item.DailyBudget > 0 && !c.budgetSufficient(item.DailyBudget) {
		c.showInsufficientBudget(ctx, item.DailyBudget)
		return nil
	}

	accountID := c.p.SelectedID()
	campaignID, err := c.testingCampaignID(ctx, accountID)
	if err != nil {
		c.p.Toast.Error("Failed to approve creation pipeline. Please try again.")
		return err
	}
	if selectedJobIDs == nil {
		selectedJobIDs = []string{}
	}

	data := map[string]any{
		"creationPipelineData": map[string]any{
			"creation_pipeline_id": id,
			"flow_id":              item.Flow.ID,
			"media_job_ids":        selectedJobIDs,
			"campaign_id":          campaignID,
		},
		"selectedAccountId":  accountID,
		"selectedCampaignId": campaignID,
	}
	c.openAdLauncher(data)
	return nil
}

// BringOwnCreatives opens the ad launcher for user's own creatives
func (c *Creation) BringOwnCreatives(ctx context.Context) error {
	accountID := c.p.SelectedID()
	campaignID, err := c.testingCampaignID(ctx, accountID)
	if err != nil {
		c.p.Toast.Error("Failed to navigate to ad launcher page. Please try again.")
		return err
	}
	c.openAdLauncher(map[string]any{"selectedAccountId": accountID, "selectedCampaignId": campaignID})
	return nil
}

// RejectItem asks for rejection reasons, rejects the ad set and reloads the list
func (c *Creation) RejectItem(ctx context.Context, id, name string) error {
	resp, err := c.p.Dialogs.Show(ctx, rejectDialog(name, "ad-set", creationRejectReasons))
	if errors.Is(err, dialog.ErrDismissed) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reject dialog: %w", err)
	}
	if err := c.p.Backend.RejectCreationPipeline(ctx, id, rejectRequest(resp)); err != nil {
		c.p.Toast.Error("Failed to reject ad set. Please try again.")
		return fmt.Errorf("reject creation pipeline %s: %w", id, err)
	}
	return c.list.Refetch(ctx)
}

// RequestCreatives presents the request creatives dialog, submits the request and reloads the list.
// Requests for an existing pipeline wait a bit before reloading to let the service register them.
func (c *Creation) RequestCreatives(ctx context.Context, req api.CreativesRequest) error {
	resp, err := c.p.Dialogs.Show(ctx, dialog.Request{
		Kind:         dialog.KindRequestCreatives,
		Title:        "Request new creatives",
		Description:  "Describe what you want to see in the next ad sets.",
		ConfirmLabel: "Request",
		CancelLabel:  "Cancel",
		Fields: []dialog.Field{
			{Name: "prompt", Label: "Prompt", Type: "textarea", Value: req.Prompt},
			{Name: "product_id", Label: "Product", Type: "text", Value: req.ProductID},
		},
	})
	if errors.Is(err, dialog.ErrDismissed) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("request creatives dialog: %w", err)
	}

	req.Prompt = resp.Value("prompt")
	if v := resp.Value("product_id"); v != "" {
		req.ProductID = v
	}
	if err := c.p.Backend.RequestCreatives(ctx, req); err != nil {
		c.p.Toast.Error("Failed to request creatives. Please try again.")
		return fmt.Errorf("request creatives: %w", err)
	}
	c.p.Toast.Success("Creatives requested")

	if req.CreationPipelineID != "" {
		select {
		case <-time.After(c.p.RequestDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return c.list.Refetch(ctx)
}

// CheckAndHandleConceptGeneration starts concept generation when the loaded list is empty.
// It runs for ready accounts or in brand mode, at most once per account selection session,
// and must be called after the list fetch completed. Failures are logged only.
func (c *Creation) CheckAndHandleConceptGeneration(ctx context.Context, accountReady, brandMode bool) {
	if run, ok := c.claimConceptGeneration(ctx, accountReady, brandMode); ok {
		run()
	}
}

// StartConceptGeneration is CheckAndHandleConceptGeneration without waiting for the task.
// IsGeneratingConcept is already set when it returns true, Dispose waits for the generation to stop.
func (c *Creation) StartConceptGeneration(ctx context.Context, accountReady, brandMode bool) bool {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return false
	}
	c.wg.Add(1)
	c.mu.Unlock()

	run, ok := c.claimConceptGeneration(ctx, accountReady, brandMode)
	if !ok {
		c.wg.Done()
		return false
	}
	go func() {
		defer c.wg.Done()
		run()
	}()
	return true
}

// claimConceptGeneration marks generation as running for the current session and returns
// the generation itself
func (c *Creation) claimConceptGeneration(ctx context.Context, accountReady, brandMode bool) (run func(), ok bool) {
	if !accountReady && !brandMode {
		return nil, false
	}
	empty := len(c.list.Items()) == 0
	started := c.store.Swap(func(s *CreationState) bool {
		if s.HasTriggeredConceptGeneration || !empty {
			return false
		}
		s.IsGeneratingConcept = true
		s.HasTriggeredConceptGeneration = true
		return true
	})
	if !started {
		return nil, false
	}

	c.mu.Lock()
	session := c.session
	conceptCtx, cancel := context.WithCancel(ctx)
	c.cancelConcept = cancel
	if c.disposed {
		cancel()
	}
	c.mu.Unlock()

	return func() {
		defer cancel()
		if err := c.generateConcepts(conceptCtx, session); err != nil {
			log.Printf("[WARN] failed to generate concepts, %v", err)
			if errors.Is(err, poller.ErrTaskFailed) && c.p.Alerter != nil {
				if e := c.p.Alerter.Alert(ctx, fmt.Sprintf("concept generation failed: %v", err)); e != nil {
					log.Printf("[WARN] failed to send alert, %v", e)
				}
			}
		}
		c.updateSession(session, func(s *CreationState) {
			s.IsGeneratingConcept = false
			s.ConceptGenerationTaskID = ""
		})
	}, true
}

// ResetConceptGeneration cancels in-flight generation and allows a new one, used on account switch
func (c *Creation) ResetConceptGeneration() {
	c.mu.Lock()
	c.session++
	if c.cancelConcept != nil {
		c.cancelConcept()
		c.cancelConcept = nil
	}
	c.mu.Unlock()
	c.polls.CancelAll()

	c.store.Update(func(s *CreationState) {
		s.HasTriggeredConceptGeneration = false
		s.ConceptGenerationTaskID = ""
		s.IsGeneratingConcept = false
	})
}

// Dispose cancels generation polls, waits for background generation and stops the scroll trigger
func (c *Creation) Dispose() {
	c.mu.Lock()
	c.disposed = true
	if c.cancelConcept != nil {
		c.cancelConcept()
	}
	c.mu.Unlock()
	c.polls.CancelAll()
	c.wg.Wait()
	if c.scroll != nil {
		c.scroll.Stop()
	}
	c.list.Reset()
	c.store.Update(func(s *CreationState) {
		s.ConceptGenerationTaskID = ""
		s.IsGeneratingConcept = false
	})
}

func (c *Creation) generateConcepts(ctx context.Context, session uint64) error {
	ref, err := c.p.Backend.GenerateConcept(ctx, api.GenerateConceptRequest{AccountID: c.p.SelectedID()})
	if err != nil {
		return fmt.Errorf("generate concept: %w", err)
	}
	if ref.TaskID == "" {
		log.Printf("[DEBUG] concept generation returned no task, reload the list")
		return c.list.Refetch(ctx)
	}
	taskID := strings.TrimPrefix(ref.TaskID, conceptTaskPrefix)
	if !c.updateSession(session, func(s *CreationState) { s.ConceptGenerationTaskID = taskID }) {
		return fmt.Errorf("account changed, drop concept task %s", taskID)
	}

	if _, err := poller.WaitTask(ctx, c.polls, c.p.Backend, taskID, c.p.PollInterval); err != nil {
		return fmt.Errorf("wait concept task: %w", err)
	}
	log.Printf("[INFO] concept generation task %s completed", taskID)
	return c.list.Refetch(ctx)
}

// updateSession applies fn only if no account switch happened since session started
func (c *Creation) updateSession(session uint64, fn func(s *CreationState)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != session {
		return false
	}
	c.store.Update(fn)
	return true
}

func (c *Creation) budgetSufficient(dailyBudget float64) bool {
	tb := c.store.Get().TestingBudget
	if tb == nil || dailyBudget == 0 {
		return true
	}
	return tb.Remaining >= dailyBudget
}

func (c *Creation) showInsufficientBudget(ctx context.Context, dailyBudget float64) {
	var remaining float64
	if tb := c.store.Get().TestingBudget; tb != nil {
		remaining = tb.Remaining
	}
	_, err := c.p.Dialogs.Show(ctx, dialog.Request{
		Kind:  dialog.KindInsufficientBudget,
		Title: "Insufficient testing budget",
		Description: fmt.Sprintf("This ad set needs $%.2f daily, but only $%.2f of the testing budget is left. "+
			"Adjust the budget rules in the knowledge base.", dailyBudget, remaining),
		ConfirmLabel: "Go to Knowledge Base",
		CancelLabel:  "Cancel",
		Data: map[string]string{
			"remaining": fmt.Sprintf("%.2f", remaining),
			"required":  fmt.Sprintf("%.2f", dailyBudget),
		},
	})
	if err != nil && !errors.Is(err, dialog.ErrDismissed) {
		return
	}
	if c.p.OnTabChange != nil {
		c.p.OnTabChange(enums.TabKnowledge)
	}
}

func (c *Creation) testingCampaignID(ctx context.Context, accountID string) (string, error) {
	if accountID == "" {
		return "", nil
	}
	if err := c.p.Accounts.WaitReady(ctx); err != nil {
		return "", fmt.Errorf("wait accounts: %w", err)
	}
	for _, acc := range c.p.Accounts.Accounts() {
		if acc.AccountID == accountID {
			return acc.TestingCampaignID(), nil
		}
	}
	return "", nil
}

func (c *Creation) openAdLauncher(data map[string]any) {
	id := c.p.Messages.Create(nav.Message{From: "AdMaxCampaign", Data: data})
	c.p.Router.Navigate(AdLaunchPath, url.Values{
		"platform":   {api.PlatformMeta},
		"actionType": {"LAUNCH_NEW_CREATIVES"},
		"messageId":  {id},
	}, false)
}
