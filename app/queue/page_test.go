package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/dialog"
	"github.com/umputun/admax/app/enums"
	"github.com/umputun/admax/app/guard"
	"github.com/umputun/admax/app/nav"
)

func newTestPage(f *fixture) *Page {
	return NewPage(PageParams{
		Backend:  f.backend,
		Persist:  f.persist,
		Accounts: f.accounts,
		Router:   f.router,
		Messages: f.messages,
		Dialogs:  f.dialogs,
		Toast:    f.toasts,
		BrandID:  func() string { return "b1" },
		Options:  Options{PollInterval: time.Millisecond, RequestDelay: time.Millisecond, Now: func() time.Time { return testNow }},
	})
}

func TestPage_BootstrapRedirectsToSetup(t *testing.T) {
	f := newFixture(t, api.MetaAccount{AccountID: "a1", SyncStatus: "synced"})
	pg := newTestPage(f)
	defer pg.Dispose()

	require.NoError(t, pg.Bootstrap(context.Background()))
	assert.False(t, pg.State().IsReady)
	assert.Equal(t, nav.SetupPath, f.router.Location().Path)
	assert.Empty(t, f.router.History(), "redirect replaces the url")
	assert.Len(t, f.backend.GetBrandSetupCalls(), 1, "brand setup checked in brand mode")
	assert.Empty(t, f.backend.ListCreationPipelinesCalls(), "no data loaded")
}

func TestPage_BootstrapAccount(t *testing.T) {
	f := newFixture(t, readyAccount("a1"))
	f.persist.SetSelectedAccountID("a1")
	f.persist.SetAnalysisTaskID("stale")
	f.backend.ListCreationPipelinesFunc = creationPage(api.CreationPipeline{ID: "p1"}, api.CreationPipeline{ID: "p2"})
	f.backend.ListAnalysisPipelinesFunc = func(_ context.Context, params api.ListParams, _ string) (api.Page[api.AnalysisPipeline], error) {
		assert.Equal(t, api.ListParams{Platform: "meta", AccountID: "a1"}, params)
		return api.Page[api.AnalysisPipeline]{Results: []api.AnalysisPipeline{{ID: "r1"}}}, nil
	}
	f.backend.GetTestingBudgetFunc = func(context.Context, string) (api.TestingBudget, error) {
		return api.TestingBudget{MonthlyBudget: 100, MonthlyBudgetAllocation: 1000}, nil
	}
	pg := newTestPage(f)
	defer pg.Dispose()

	require.NoError(t, pg.Bootstrap(context.Background()))
	assert.True(t, pg.State().IsReady)
	assert.Empty(t, f.persist.Get().AnalysisTaskID, "analysis task id cleared")
	assert.Empty(t, f.backend.GetBrandSetupCalls(), "account mode doesn't load brand setup")
	assert.Len(t, f.backend.ListKnowledgeRulesCalls(), 1)
	assert.Len(t, f.backend.GetAccountStatsCalls(), 1)
	require.NotNil(t, pg.Creation().State().TestingBudget)
	assert.InDelta(t, 900, pg.Creation().State().TestingBudget.Remaining, 0.001)
	assert.Empty(t, f.backend.GenerateConceptCalls(), "list not empty")
	assert.Equal(t, Counts{Creation: 2, Analysis: 1, Total: 3}, pg.Counts())
	assert.Nil(t, pg.HeaderCTA())
	assert.True(t, pg.IsTabEnabled(enums.TabAnalysis))
	assert.Equal(t, 85.0, pg.AutomationStatus().ApprovalRate)
}

func TestPage_BootstrapSetupCheck(t *testing.T) {
	tbl := []struct {
		name         string
		accounts     []api.MetaAccount
		selected     string
		brand        api.BrandSetup
		wantSelected string
	}{
		{name: "brand complete drops selection", selected: "a1",
			accounts: []api.MetaAccount{{AccountID: "a1"}},
			brand:    api.BrandSetup{IsSetupComplete: true}},
		{name: "complete account selected", accounts: []api.MetaAccount{{AccountID: "a0"}, readyAccount("a2")},
			wantSelected: "a2"},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.accounts...)
			f.persist.SetSelectedAccountID(tt.selected)
			f.backend.GetBrandSetupFunc = func(context.Context) (api.BrandSetup, error) { return tt.brand, nil }
			pg := newTestPage(f)
			defer pg.Dispose()

			// brand setup is fetched only in brand mode, preload it for the selected account case
			if tt.selected != "" {
				pg.BrandSetupQuery().Set(tt.brand)
			}
			require.NoError(t, pg.Bootstrap(context.Background()))
			assert.True(t, pg.State().IsReady)
			assert.Equal(t, tt.wantSelected, pg.SelectedAccountID())
			assert.Equal(t, nav.QueuePath, f.router.Location().Path)
		})
	}
}

func TestPage_WithGuard(t *testing.T) {
	t.Run("confirmed dialog follows call to action", func(t *testing.T) {
		f := newFixture(t)
		f.persist.SetSelectedAccountID("unknown")
		pg := newTestPage(f)
		defer pg.Dispose()

		wait := f.answer(t, dialog.Response{Confirmed: true}, func(req dialog.Request) {
			assert.Equal(t, dialog.KindAlert, req.Kind)
			assert.Equal(t, "Connect Meta Account", req.ConfirmLabel)
		})
		require.NoError(t, pg.ApproveCreationItem(context.Background(), "p1", nil))
		wait()
		assert.Equal(t, "/settings/organization/ad-accounts", f.router.Location().Path)
	})

	t.Run("dismissed dialog stays", func(t *testing.T) {
		f := newFixture(t, api.MetaAccount{AccountID: "a1"})
		f.persist.SetSelectedAccountID("a1")
		pg := newTestPage(f)
		defer pg.Dispose()

		wait := f.answer(t, dialog.Response{}, func(req dialog.Request) {
			assert.Equal(t, "Complete Setup", req.ConfirmLabel, "account without setup")
		})
		require.NoError(t, pg.RequestCreatives(context.Background(), ""))
		wait()
		assert.Equal(t, nav.QueuePath, f.router.Location().Path)
		assert.Empty(t, f.backend.RequestCreativesCalls())
	})

	t.Run("ready account runs action", func(t *testing.T) {
		f := newFixture(t, readyAccount("a1"))
		f.persist.SetSelectedAccountID("a1")
		pg := newTestPage(f)
		defer pg.Dispose()

		var ran bool
		err := pg.WithGuard(context.Background(), guard.ActionStatsBudget, func(context.Context) error {
			ran = true
			return nil
		})
		require.NoError(t, err)
		assert.True(t, ran)
		assert.Empty(t, f.dialogs.Pending())
	})
}

func TestPage_SetActiveTab(t *testing.T) {
	f := newFixture(t, api.MetaAccount{AccountID: "a1"})
	f.persist.SetSelectedAccountID("a1")
	pg := newTestPage(f)
	defer pg.Dispose()

	require.NoError(t, pg.SetActiveTab(context.Background(), enums.TabKnowledge))
	assert.Equal(t, enums.TabKnowledge, pg.ActiveTab())

	wait := f.answer(t, dialog.Response{}, func(req dialog.Request) {
		assert.Equal(t, "Unlock Full AdMax Potential", req.Title)
	})
	require.NoError(t, pg.SetActiveTab(context.Background(), enums.TabAnalysis))
	wait()
	assert.Equal(t, enums.TabKnowledge, pg.ActiveTab(), "analysis refused")
}

func TestPage_AccountSwitchRefreshes(t *testing.T) {
	f := newFixture(t, readyAccount("a1"), readyAccount("a2"))
	f.persist.SetSelectedAccountID("a1")

	var mu sync.Mutex
	var accounts []string
	f.backend.ListCreationPipelinesFunc = func(_ context.Context, params api.ListParams, _ string) (api.Page[api.CreationPipeline], error) {
		mu.Lock()
		accounts = append(accounts, params.AccountID)
		mu.Unlock()
		return api.Page[api.CreationPipeline]{}, nil
	}
	pg := newTestPage(f)
	require.NoError(t, pg.Bootstrap(context.Background()))
	require.Eventually(t, func() bool {
		return len(f.backend.GenerateConceptCalls()) == 1 && !pg.Creation().IsGeneratingConcept()
	}, timeout, tick, "empty list triggers generation")

	pg.SetSelectedAccountID("a2")
	require.Eventually(t, func() bool { return len(f.backend.GenerateConceptCalls()) == 2 }, timeout, tick,
		"account switch resets generation and generates again")
	pg.Dispose()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"a1", "a1", "a2", "a2"}, accounts, "each generation without a task reloads the list")
	assert.Equal(t, "a2", f.backend.GenerateConceptCalls()[1].Req.AccountID)
	assert.Len(t, f.backend.GetTestingBudgetCalls(), 2)
}

func TestPage_BootstrapDoesNotWaitForConceptTask(t *testing.T) {
	f := newFixture(t, readyAccount("a1"))
	f.persist.SetSelectedAccountID("a1")
	f.backend.GenerateConceptFunc = func(context.Context, api.GenerateConceptRequest) (api.TaskRef, error) {
		return api.TaskRef{TaskID: "t-pending"}, nil
	}
	f.backend.GetTaskFunc = func(_ context.Context, id string) (api.Task, error) {
		return api.Task{ID: id, Status: api.TaskPending}, nil
	}
	pg := newTestPage(f)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, pg.Bootstrap(ctx))
	cancel() // request gone after the page rendered
	assert.True(t, pg.State().IsReady)
	assert.True(t, pg.Creation().IsGeneratingConcept(), "generation shown as running")

	require.Eventually(t, func() bool { return len(f.backend.GetTaskCalls()) >= 3 }, timeout, tick,
		"task polled after the bootstrap context is canceled")
	assert.Equal(t, "t-pending", pg.Creation().State().ConceptGenerationTaskID)
	assert.True(t, pg.Creation().IsGeneratingConcept())

	pg.Dispose()
	assert.False(t, pg.Creation().IsGeneratingConcept())
}

func TestPage_AutoSelectsAccount(t *testing.T) {
	f := newFixture(t, readyAccount("a1"))
	f.backend.GetBrandSetupFunc = func(context.Context) (api.BrandSetup, error) {
		return api.BrandSetup{IsSetupComplete: true, BudgetSettings: &api.BudgetSettings{}, LaunchConfig: api.LaunchConfig{}}, nil
	}
	pg := newTestPage(f)
	defer pg.Dispose()

	require.NoError(t, pg.Bootstrap(context.Background()))
	assert.Equal(t, "a1", pg.SelectedAccountID(), "brand complete but available account auto-selected")
}
