package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/umputun/admax/app/account"
	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/dialog"
	"github.com/umputun/admax/app/enums"
	"github.com/umputun/admax/app/nav"
	"github.com/umputun/admax/app/notify"
	"github.com/umputun/admax/app/persist"
	"github.com/umputun/admax/app/queue/mocks"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	timeout = time.Second
	tick    = time.Millisecond
)

// fixture holds real collaborators of the controllers around the mocked backend
type fixture struct {
	backend  *mocks.BackendMock
	router   *nav.MemoryRouter
	messages *nav.Messages
	dialogs  *dialog.Manager
	toasts   *notify.Service
	persist  *persist.Manager
	accounts *account.Directory
}

func newFixture(t *testing.T, accounts ...api.MetaAccount) *fixture {
	t.Helper()
	toasts, err := notify.NewService(notify.Params{ToastTTL: time.Minute})
	require.NoError(t, err)
	f := &fixture{
		backend:  newBackend(),
		router:   nav.NewMemoryRouter(nav.Location{Path: nav.QueuePath}, 0),
		messages: nav.NewMessages(time.Minute),
		dialogs:  dialog.NewManager(),
		toasts:   toasts,
		persist:  persist.New(persist.NewFileStorage(t.TempDir())),
	}
	f.accounts = account.NewDirectory(listerFunc(func(context.Context) ([]api.MetaAccount, error) {
		return accounts, nil
	}))
	require.NoError(t, f.accounts.Fetch(context.Background()))
	return f
}

// newBackend returns mock with empty responses for every call
func newBackend() *mocks.BackendMock {
	return &mocks.BackendMock{
		ListCreationPipelinesFunc: func(context.Context, api.ListParams, string) (api.Page[api.CreationPipeline], error) {
			return api.Page[api.CreationPipeline]{}, nil
		},
		ListAnalysisPipelinesFunc: func(context.Context, api.ListParams, string) (api.Page[api.AnalysisPipeline], error) {
			return api.Page[api.AnalysisPipeline]{}, nil
		},
		RejectCreationPipelineFunc:            func(context.Context, string, api.RejectRequest) error { return nil },
		RejectAnalysisPipelineFunc:            func(context.Context, string, api.RejectRequest) error { return nil },
		ApproveAndExecuteAnalysisPipelineFunc: func(context.Context, string) error { return nil },
		RequestCreativesFunc:                  func(context.Context, api.CreativesRequest) error { return nil },
		GenerateConceptFunc: func(context.Context, api.GenerateConceptRequest) (api.TaskRef, error) {
			return api.TaskRef{}, nil
		},
		GetTestingBudgetFunc: func(context.Context, string) (api.TestingBudget, error) {
			return api.TestingBudget{}, nil
		},
		GetTaskFunc: func(_ context.Context, id string) (api.Task, error) {
			return api.Task{ID: id, Status: api.TaskSuccess}, nil
		},
		ListKnowledgeRulesFunc:   func(context.Context, string) ([]api.Rule, error) { return []api.Rule{}, nil },
		ApproveKnowledgeRuleFunc: func(context.Context, string) error { return nil },
		DeclineKnowledgeRuleFunc: func(context.Context, string) error { return nil },
		UpdateKnowledgeRuleFunc: func(context.Context, string, api.RuleRequest) (api.Rule, error) {
			return api.Rule{}, nil
		},
		CreateKnowledgeRuleFunc: func(context.Context, api.RuleRequest) (api.Rule, error) { return api.Rule{}, nil },
		GetInsightQuestionsFunc: func(context.Context, string) (api.InsightQuestions, error) {
			return api.InsightQuestions{}, nil
		},
		SubmitInsightFeedbackFunc: func(context.Context, api.InsightFeedback) error { return nil },
		GetBrandSetupFunc:         func(context.Context) (api.BrandSetup, error) { return api.BrandSetup{}, nil },
		GetAccountStatsFunc: func(context.Context, string) (api.AccountStats, error) {
			return api.AccountStats{}, nil
		},
	}
}

type listerFunc func(ctx context.Context) ([]api.MetaAccount, error)

func (f listerFunc) ListMetaAccounts(ctx context.Context) ([]api.MetaAccount, error) { return f(ctx) }

// answer waits for the next open dialog, checks it with fn and resolves it with resp.
// Returned func waits for the answering goroutine.
func (f *fixture) answer(t *testing.T, resp dialog.Response, fn func(req dialog.Request)) (wait func()) {
	t.Helper()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		deadline := time.Now().Add(timeout)
		for time.Now().Before(deadline) {
			if pending := f.dialogs.Pending(); len(pending) > 0 {
				if fn != nil {
					fn(pending[0])
				}
				_ = f.dialogs.Resolve(pending[0].ID, resp)
				return
			}
			time.Sleep(tick)
		}
		t.Error("no dialog shown")
	}()
	return wg.Wait
}

func (f *fixture) toastTexts() []string {
	res := []string{}
	for _, t := range f.toasts.Toasts() {
		res = append(res, t.Text)
	}
	return res
}

// readyAccount is a set up account with a testing campaign
func readyAccount(id string) api.MetaAccount {
	return api.MetaAccount{
		AccountID:       id,
		Name:            "account " + id,
		IsSetupComplete: true,
		SyncStatus:      account.SyncStatusSynced,
		CampaignCount:   3,
		BudgetSettings:  &api.BudgetSettings{Testing: api.CampaignBudget{CampaignIDs: []string{"camp-" + id}}},
		LaunchConfig:    api.LaunchConfig{"page_id": "p1"},
	}
}

type tabGuardFunc func(tab enums.Tab) bool

func (f tabGuardFunc) IsTabEnabled(tab enums.Tab) bool { return f(tab) }
