package web

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/cycle"
	"github.com/umputun/admax/app/enums"
	"github.com/umputun/admax/app/guard"
	"github.com/umputun/admax/app/nav"
	"github.com/umputun/admax/app/queue"
	"github.com/umputun/admax/app/setup"
)

// launchFields are inputs of the template config step, stored in the launch config by name
var launchFields = []string{"website_url", "call_to_action", "primary_text", "headline"}

// QueueView is the queue page model
type QueueView struct {
	Ready             bool
	ActiveTab         enums.Tab
	Tabs              []TabView
	Accounts          []api.MetaAccount
	SelectedAccountID string
	BrandMode         bool
	HeaderCTA         *guard.HeaderCTA
	Counts            queue.Counts
	Cycle             cycle.WeeklyCycle
	Automation        cycle.AutomationStatus
	Stats             *api.AccountStats
	RequestCreatives  guard.Result
	TestCreatives     guard.Result
	ApproveCreation   guard.Result
	Creation          CreationView
	Analysis          AnalysisView
	Knowledge         KnowledgeView
}

// TabView is a queue tab button
type TabView struct {
	Tab     enums.Tab
	Active  bool
	Enabled bool
	Count   int
}

// CreationView is the creation tab model
type CreationView struct {
	Items      []api.CreationPipeline
	Loading    bool
	HasMore    bool
	Generating bool
	Budget     *queue.TestingBudget
	BudgetPct  float64
	LowBudget  bool
}

// AnalysisView is the analysis tab model
type AnalysisView struct {
	Items   []api.AnalysisPipeline
	Loading bool
	HasMore bool
}

// KnowledgeView is the knowledge tab model
type KnowledgeView struct {
	Visible    bool
	Creative   []api.Rule
	Targeting  []api.Rule
	Evaluation []api.Rule
	Insights   *api.InsightQuestions
}

// SetupView is the setup page model
type SetupView struct {
	Ready         bool
	Step          enums.SetupStep
	Steps         []StepView
	AccountFlow   bool
	AccountID     string
	Accounts      []api.MetaAccount
	CanGoBack     bool
	SetupComplete bool
	Products      []api.Product
	Competitors   []api.Tracker
	Analysis      ProgressView
	Questions     string
	Answer        string
	QuestionsBusy bool
	Submitting    bool
	Campaigns     []setup.Campaign
	TotalBudget   int
	LaunchFields  []string
}

// StepView is a wizard step of the progress bar
type StepView struct {
	Step    enums.SetupStep
	Number  int
	Current bool
	Done    bool
}

// ProgressView is the analysis progress
type ProgressView struct {
	Percent int
	Polling bool
	Steps   []ProgressStep
}

// ProgressStep is a label of the analysis progress
type ProgressStep struct {
	Label   string
	Current bool
	Done    bool
}

// HandoffView is the page shown for destinations outside of the console
type HandoffView struct {
	Location string
	Message  *nav.Message
	Expired  bool // message id given but the message is gone
}

func newQueueView(pg *queue.Page) *QueueView {
	creationList := pg.Creation().List().State()
	analysisList := pg.Analysis().List().State()
	creationState := pg.Creation().State()
	counts := pg.Counts()

	res := &QueueView{
		Ready:             pg.State().IsReady,
		ActiveTab:         pg.ActiveTab(),
		Accounts:          pg.Accounts(),
		SelectedAccountID: pg.SelectedAccountID(),
		BrandMode:         pg.IsBrandMode(),
		HeaderCTA:         pg.HeaderCTA(),
		Counts:            counts,
		Cycle:             pg.WeeklyCycle(),
		Automation:        pg.AutomationStatus(),
		RequestCreatives:  pg.GuardResult(guard.ActionRequestCreatives),
		TestCreatives:     pg.GuardResult(guard.ActionTestCreatives),
		ApproveCreation:   pg.GuardResult(guard.ActionApproveCreation),
		Creation: CreationView{
			Items:      creationList.Items,
			Loading:    creationList.IsLoading || creationList.IsFetchingNextPage,
			HasMore:    creationList.HasNextPage,
			Generating: creationState.IsGeneratingConcept,
			Budget:     creationState.TestingBudget,
			BudgetPct:  pg.Creation().BudgetPercentage(),
			LowBudget:  pg.Creation().IsLowBudget(),
		},
		Analysis: AnalysisView{
			Items:   analysisList.Items,
			Loading: analysisList.IsLoading || analysisList.IsFetchingNextPage,
			HasMore: analysisList.HasNextPage,
		},
		Knowledge: KnowledgeView{
			Visible:    pg.Guard().CanDisplayKnowledgeSection(true),
			Creative:   pg.Knowledge().CreativeRules(),
			Targeting:  pg.Knowledge().TargetingRules(),
			Evaluation: pg.Knowledge().EvaluationRules(),
		},
	}
	if stats, ok := pg.AccountStats().Data(); ok {
		res.Stats = &stats
	}
	if insights, ok := pg.Knowledge().Insights().Data(); ok && insights.Questions != "" {
		res.Knowledge.Insights = &insights
	}

	for _, tab := range enums.TabValues() {
		tv := TabView{Tab: tab, Active: tab == res.ActiveTab, Enabled: pg.IsTabEnabled(tab)}
		switch tab {
		case enums.TabCreation:
			tv.Count = counts.Creation
		case enums.TabAnalysis:
			tv.Count = counts.Analysis
		}
		res.Tabs = append(res.Tabs, tv)
	}
	return res
}

func newSetupView(w *setup.Wizard, accounts []api.MetaAccount) *SetupView {
	st := w.State()
	res := &SetupView{
		Ready:         st.IsReady,
		Step:          st.CurrentStep,
		AccountFlow:   w.IsAccountFlow(),
		AccountID:     st.AccountID,
		Accounts:      accounts,
		CanGoBack:     st.CurrentStep != enums.SetupStepConnect,
		SetupComplete: w.IsSetupComplete(),
		Products:      st.SelectedProducts,
		Competitors:   st.SelectedCompetitors,
		Questions:     st.UserInfoQuestions,
		Answer:        st.UserInfoAnswer,
		QuestionsBusy: st.IsUserInfoLoading,
		Submitting:    st.IsSubmittingUserInfo,
		Campaigns:     st.Campaigns,
		TotalBudget:   w.TotalBudget(),
		LaunchFields:  launchFields,
	}

	currentIdx := slices.Index(st.VisibleSteps, st.CurrentStep)
	for i, step := range st.VisibleSteps {
		res.Steps = append(res.Steps, StepView{Step: step, Number: i + 1, Current: i == currentIdx, Done: i < currentIdx})
	}

	an := w.Analyzer().State()
	res.Analysis = ProgressView{Percent: w.AnalysisProgress(), Polling: an.IsPolling}
	for i, step := range w.AnalysisSteps() {
		res.Analysis.Steps = append(res.Analysis.Steps, ProgressStep{
			Label:   step.Label,
			Current: i == an.CurrentStep && !w.IsAllStepsCompleted(),
			Done:    slices.Contains(an.CompletedSteps, i),
		})
	}
	return res
}

// template helper functions

func (s *Server) humanTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Jan 2, 15:04")
}

func money(v float64) string { return fmt.Sprintf("$%.0f", v) }

func percent(v float64) string { return fmt.Sprintf("%.0f%%", v) }

func truncate(str string, n int) string {
	if len(str) <= n {
		return str
	}
	return str[:n] + "..."
}

func stepTitle(step enums.SetupStep) string {
	switch step {
	case enums.SetupStepConnect:
		return "Connect"
	case enums.SetupStepProducts:
		return "Products & Competitors"
	case enums.SetupStepAnalysis:
		return "Analysis"
	case enums.SetupStepQuestions:
		return "About You"
	case enums.SetupStepStructure:
		return "Campaign Structure"
	case enums.SetupStepTemplate:
		return "Template"
	}
	return step.String()
}

func tabTitle(tab enums.Tab) string {
	switch tab {
	case enums.TabCreation:
		return "Creation"
	case enums.TabAnalysis:
		return "Analysis"
	case enums.TabKnowledge:
		return "Knowledge"
	}
	return tab.String()
}

func campaignTitle(ct api.CampaignType) string {
	s := string(ct)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// hasValue reports whether the checkbox option is selected in the dialog field value
func hasValue(value, option string) bool {
	return slices.Contains(strings.Split(value, ","), option)
}
