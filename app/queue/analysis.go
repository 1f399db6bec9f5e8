package queue

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/dialog"
	"github.com/umputun/admax/app/nav"
	"github.com/umputun/admax/app/paginate"
)

// MetricPath is the ads metric page opened for analysis items
const MetricPath = "/my-ads/metric"

// Analysis is the queue of performance recommendations
type Analysis struct {
	backend  AnalysisBackend
	selected func() string
	messages MessageStore
	router   nav.Router
	dialogs  Dialogs
	toast    Toaster

	list   *paginate.Manager[api.AnalysisPipeline, api.ListParams]
	scroll *ScrollTrigger
}

// AnalysisParams are dependencies of the analysis queue
type AnalysisParams struct {
	Backend    AnalysisBackend
	SelectedID func() string // selected account id, empty in brand mode
	Messages   MessageStore
	Router     nav.Router
	Dialogs    Dialogs
	Toast      Toaster
}

// NewAnalysis makes the analysis queue
func NewAnalysis(p AnalysisParams) *Analysis {
	return &Analysis{
		backend:  p.Backend,
		selected: p.SelectedID,
		messages: p.Messages,
		router:   p.Router,
		dialogs:  p.Dialogs,
		toast:    p.Toast,
		list:     paginate.New("analysis pipelines", p.Backend.ListAnalysisPipelines),
	}
}

// List returns the paginated list
func (a *Analysis) List() *paginate.Manager[api.AnalysisPipeline, api.ListParams] { return a.list }

// Items returns loaded recommendations
func (a *Analysis) Items() []api.AnalysisPipeline { return a.list.Items() }

// Fetch loads the first page. Brand mode lists without platform and account.
func (a *Analysis) Fetch(ctx context.Context, brandMode bool) error {
	return a.list.Fetch(ctx, listParams(brandMode, a.selected()))
}

// SetScrollContainer binds scroll events of the list container, replacing a previous binding
func (a *Analysis) SetScrollContainer(trigger *ScrollTrigger) {
	if a.scroll != nil {
		a.scroll.Stop()
	}
	a.scroll = trigger
}

// OnScroll passes scroll event to the bound trigger
func (a *Analysis) OnScroll(m ScrollMetrics) {
	if a.scroll != nil {
		a.scroll.OnScroll(m)
	}
}

// ApproveItem approves and executes the recommendation, then reloads the list
func (a *Analysis) ApproveItem(ctx context.Context, id string) error {
	if err := a.backend.ApproveAndExecuteAnalysisPipeline(ctx, id); err != nil {
		a.toast.Error("Failed to approve recommendation. Please try again.")
		return fmt.Errorf("approve analysis pipeline %s: %w", id, err)
	}
	return a.list.Refetch(ctx)
}

// RejectItem asks for rejection reasons, rejects the recommendation and reloads the list
func (a *Analysis) RejectItem(ctx context.Context, id, name string) error {
	resp, err := a.dialogs.Show(ctx, rejectDialog(name, "recommendation", analysisRejectReasons))
	if errors.Is(err, dialog.ErrDismissed) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reject dialog: %w", err)
	}
	if err := a.backend.RejectAnalysisPipeline(ctx, id, rejectRequest(resp)); err != nil {
		a.toast.Error("Failed to reject recommendation. Please try again.")
		return fmt.Errorf("reject analysis pipeline %s: %w", id, err)
	}
	return a.list.Refetch(ctx)
}

// Find returns loaded item by id
func (a *Analysis) Find(id string) (api.AnalysisPipeline, bool) {
	for _, item := range a.list.Items() {
		if item.ID == id {
			return item, true
		}
	}
	return api.AnalysisPipeline{}, false
}

// NavigateToAdMetric opens the metric page filtered by the item's ad
func (a *Analysis) NavigateToAdMetric(item api.AnalysisPipeline) {
	filter := map[string]any{
		"specificAdId":  item.AdID,
		"adPlatform":    item.Platform,
		"dataCategory":  "ads_manager",
		"adMetricLevel": api.LevelAd,
		"dateRange":     "all_time",
	}
	if item.AccountID != "" {
		filter["adAccountId"] = item.AccountID
	}
	a.navigateToMetric(filter)
}

// NavigateToCampaignMetric opens the metric page filtered by the item's campaign
func (a *Analysis) NavigateToCampaignMetric(item api.AnalysisPipeline) {
	filter := map[string]any{
		"campaignId":    item.EffectiveCampaignID(),
		"adPlatform":    item.Platform,
		"dataCategory":  "ads_manager",
		"adMetricLevel": api.LevelCampaign,
	}
	if item.AccountID != "" {
		filter["adAccountId"] = item.AccountID
	}
	a.navigateToMetric(filter)
}

func (a *Analysis) navigateToMetric(filter map[string]any) {
	id := a.messages.Create(nav.Message{From: "AdMaxQueue", Data: map[string]any{"filter": filter}})
	log.Printf("[DEBUG] open metric page, message %s", id)
	a.router.Navigate(MetricPath, url.Values{"messageId": {id}}, false)
}

// Dispose stops the scroll trigger and drops in-flight pages
func (a *Analysis) Dispose() {
	if a.scroll != nil {
		a.scroll.Stop()
	}
	a.list.Reset()
}

func listParams(brandMode bool, accountID string) api.ListParams {
	if brandMode {
		return api.ListParams{}
	}
	return api.ListParams{Platform: api.PlatformMeta, AccountID: accountID}
}
