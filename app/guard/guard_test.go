package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/enums"
)

func TestEvaluate(t *testing.T) {
	budget := &api.BudgetSettings{}
	launch := api.LaunchConfig{}

	accounts := []api.MetaAccount{
		{AccountID: "ready", BudgetSettings: budget, LaunchConfig: launch},
		{AccountID: "no-template", BudgetSettings: budget},
		{AccountID: "bare"},
	}

	tbl := []struct {
		name     string
		selected string
		brand    *api.BrandSetup
		want     AccountState
	}{
		{name: "brand mode without brand setup", want: AccountState{Status: StatusNoAccount}},
		{name: "brand mode complete", brand: &api.BrandSetup{BudgetSettings: budget, LaunchConfig: launch, IsSetupComplete: true},
			want: AccountState{Status: StatusReady, HasSetupSummary: true, HasTemplateConfig: true}},
		{name: "brand mode not marked complete", brand: &api.BrandSetup{BudgetSettings: budget, LaunchConfig: launch},
			want: AccountState{Status: StatusUnconfigured, HasSetupSummary: true, HasTemplateConfig: true}},
		{name: "brand mode without template", brand: &api.BrandSetup{BudgetSettings: budget, IsSetupComplete: true},
			want: AccountState{Status: StatusUnconfigured, HasSetupSummary: true}},
		{name: "selected account ready", selected: "ready",
			want: AccountState{Status: StatusReady, ActiveAccountID: "ready", HasSetupSummary: true, HasTemplateConfig: true}},
		{name: "selected account without template", selected: "no-template",
			want: AccountState{Status: StatusUnconfigured, ActiveAccountID: "no-template", HasSetupSummary: true}},
		{name: "selected bare account", selected: "bare",
			want: AccountState{Status: StatusUnconfigured, ActiveAccountID: "bare"}},
		{name: "selected account missing", selected: "gone", brand: &api.BrandSetup{IsSetupComplete: true},
			want: AccountState{Status: StatusNoAccount}},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.selected, tt.brand, accounts))
		})
	}
}

func TestCheck_NotReadyAlwaysBlocked(t *testing.T) {
	actions := []Action{ActionRequestCreatives, ActionTestCreatives, ActionApproveCreation, ActionAnalysisTab, ActionStatsBudget}
	for _, status := range []Status{StatusNoAccount, StatusUnconfigured} {
		for _, action := range actions {
			res := Check(AccountState{Status: status}, action)
			assert.False(t, res.CanProceed, "%s/%s", status, action)
			require.NotNil(t, res.Dialog, "%s/%s", status, action)
			assert.NotEmpty(t, res.DisabledTooltip)
		}
	}

	for _, action := range actions {
		res := Check(AccountState{Status: StatusReady}, action)
		assert.True(t, res.CanProceed)
		assert.Nil(t, res.Dialog)
		assert.Equal(t, ReasonOK, res.Reason)
	}
}

func TestCheck_DialogAndTooltip(t *testing.T) {
	res := Check(AccountState{Status: StatusNoAccount}, ActionApproveCreation)
	assert.Equal(t, ReasonNoAccount, res.Reason)
	assert.Equal(t, "bind-account", res.Dialog.ID)
	assert.Equal(t, "/settings/organization/ad-accounts", res.Dialog.CTAHref)
	assert.Equal(t, "Connect a Meta account to publish creatives.", res.DisabledTooltip)

	res = Check(AccountState{Status: StatusUnconfigured}, ActionAnalysisTab)
	assert.Equal(t, ReasonSetupIncomplete, res.Reason)
	assert.Equal(t, "complete-setup", res.Dialog.ID)
	assert.Equal(t, "Complete Setup", res.Dialog.CTALabel)
	assert.Equal(t, "Complete AdMax Setup to unlock Analysis.", res.DisabledTooltip)

	res = Check(AccountState{Status: StatusUnconfigured}, Action("unknown"))
	assert.Equal(t, "Complete AdMax Setup to continue.", res.DisabledTooltip, "default tooltip")

	// dialogs are copies
	res.Dialog.Title = "changed"
	assert.Equal(t, "Unlock Full AdMax Potential", Check(AccountState{Status: StatusUnconfigured}, ActionAnalysisTab).Dialog.Title)
}

func TestCTAAndTabs(t *testing.T) {
	cta := CTA(AccountState{Status: StatusNoAccount})
	require.NotNil(t, cta)
	assert.Equal(t, "Connect Meta", cta.Label)
	cta = CTA(AccountState{Status: StatusUnconfigured})
	require.NotNil(t, cta)
	assert.Equal(t, "Setup with Meta", cta.Label)
	assert.Nil(t, CTA(AccountState{Status: StatusReady}))

	notReady := AccountState{Status: StatusUnconfigured}
	ready := AccountState{Status: StatusReady}
	assert.True(t, IsTabEnabled(notReady, enums.TabCreation))
	assert.True(t, IsTabEnabled(notReady, enums.TabKnowledge))
	assert.False(t, IsTabEnabled(notReady, enums.TabAnalysis))
	assert.True(t, IsTabEnabled(ready, enums.TabAnalysis))

	assert.False(t, ShouldFetchAccountStats(notReady))
	assert.False(t, ShouldFetchTestingBudget(notReady))
	assert.True(t, ShouldFetchTestingBudget(ready))

	assert.True(t, CanDisplayKnowledgeSection(notReady, false))
	assert.False(t, CanDisplayKnowledgeSection(notReady, true))
	assert.True(t, CanDisplayKnowledgeSection(ready, true))
}

type fakeInputs struct {
	selected string
	brand    *api.BrandSetup
	accounts []api.MetaAccount
}

func (f *fakeInputs) SelectedAccountID() string { return f.selected }
func (f *fakeInputs) BrandSetup() *api.BrandSetup { return f.brand }
func (f *fakeInputs) Accounts() []api.MetaAccount { return f.accounts }

func TestGuard_LiveInputs(t *testing.T) {
	in := &fakeInputs{selected: "a1", accounts: []api.MetaAccount{{AccountID: "a1"}}}
	g := New(in)
	assert.Equal(t, StatusUnconfigured, g.State().Status)
	assert.False(t, g.Check(ActionRequestCreatives).CanProceed)
	assert.False(t, g.IsTabEnabled(enums.TabAnalysis))

	in.accounts = []api.MetaAccount{{AccountID: "a1", BudgetSettings: &api.BudgetSettings{}, LaunchConfig: api.LaunchConfig{}}}
	assert.Equal(t, StatusReady, g.State().Status, "re-evaluated on each call")
	assert.True(t, g.Check(ActionRequestCreatives).CanProceed)
	assert.Nil(t, g.HeaderCTA())
	assert.True(t, g.ShouldFetchAccountStats())
	assert.True(t, g.ShouldFetchTestingBudget())
	assert.True(t, g.CanDisplayKnowledgeSection(true))
}
