// Package guard decides whether queue actions are allowed for the current account selection.
// Evaluation is a pure function of the selected account id, brand setup and the account list;
// blocked actions get a dialog offering the remediation path instead of an error.
package guard

import (
	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/enums"
)

// Status is a coarse readiness of the selected account or brand
type Status string

// readiness statuses
const (
	StatusNoAccount    Status = "no-account"
	StatusUnconfigured Status = "account-unconfigured"
	StatusReady        Status = "account-ready"
)

// Action is a guarded queue action
type Action string

// guarded actions
const (
	ActionRequestCreatives Action = "request-creatives"
	ActionTestCreatives    Action = "test-creatives"
	ActionApproveCreation  Action = "approve-creation"
	ActionAnalysisTab      Action = "analysis-tab"
	ActionStatsBudget      Action = "stats-budget"
)

// Reason of the decision
type Reason string

// decision reasons
const (
	ReasonOK              Reason = "ok"
	ReasonNoAccount       Reason = "no-account"
	ReasonSetupIncomplete Reason = "setup-incomplete"
)

// AccountState is the derived readiness, never stored
type AccountState struct {
	Status            Status
	ActiveAccountID   string
	HasSetupSummary   bool
	HasTemplateConfig bool
}

// Dialog describes the remediation offered for a blocked action
type Dialog struct {
	ID          string
	Title       string
	Description string
	CTALabel    string
	CTAHref     string
}

// Result of the action check. Dialog is set whenever CanProceed is false.
type Result struct {
	CanProceed      bool
	Reason          Reason
	Dialog          *Dialog
	DisabledTooltip string
}

// HeaderCTA is the call to action shown in the queue header for not ready states
type HeaderCTA struct {
	Label       string
	Description string
	Href        string
}

var bindAccountDialog = Dialog{
	ID:    "bind-account",
	Title: "Unlock AI-Powered Performance Analysis",
	Description: "Connect your Meta account to unlock real-time campaign insights, automated recommendations, " +
		"and data-driven optimizations that boost your ROAS.",
	CTALabel: "Connect Meta Account",
	CTAHref:  "/settings/organization/ad-accounts",
}

var completeSetupDialog = Dialog{
	ID:    "complete-setup",
	Title: "Unlock Full AdMax Potential",
	Description: "Complete setup to activate AI-powered creative generation, automated performance analysis, " +
		"and intelligent campaign recommendations.",
	CTALabel: "Complete Setup",
	CTAHref:  "/tool/ad-max/setup",
}

var defaultTooltips = map[Reason]string{
	ReasonNoAccount:       "Connect a Meta account to unlock this action.",
	ReasonSetupIncomplete: "Complete AdMax Setup to continue.",
}

var actionTooltips = map[Action]map[Reason]string{
	ActionRequestCreatives: {
		ReasonNoAccount:       "Connect Meta before requesting new creatives.",
		ReasonSetupIncomplete: "Finish AdMax Setup to request creatives.",
	},
	ActionTestCreatives: {
		ReasonNoAccount:       "Bind a Meta account to test your own creatives.",
		ReasonSetupIncomplete: "Complete AdMax Setup to run creative tests.",
	},
	ActionApproveCreation: {
		ReasonNoAccount:       "Connect a Meta account to publish creatives.",
		ReasonSetupIncomplete: "Complete AdMax Setup to publish creatives.",
	},
	ActionAnalysisTab: {
		ReasonNoAccount:       "Connect a Meta account to unlock performance analysis and recommendations.",
		ReasonSetupIncomplete: "Complete AdMax Setup to unlock Analysis.",
	},
	ActionStatsBudget: {
		ReasonNoAccount:       "Connect Meta to view live stats and testing budget.",
		ReasonSetupIncomplete: "Complete Setup to unlock stats and testing budget.",
	},
}

// Evaluate derives account state. Empty selectedAccountID means brand mode, nil brand setup means
// it is not loaded or does not exist.
func Evaluate(selectedAccountID string, brandSetup *api.BrandSetup, accounts []api.MetaAccount) AccountState {
	if selectedAccountID == "" {
		if brandSetup == nil {
			return AccountState{Status: StatusNoAccount}
		}
		res := AccountState{
			HasSetupSummary:   brandSetup.BudgetSettings != nil,
			HasTemplateConfig: brandSetup.LaunchConfig != nil,
			Status:            StatusUnconfigured,
		}
		if res.HasSetupSummary && res.HasTemplateConfig && brandSetup.IsSetupComplete {
			res.Status = StatusReady
		}
		return res
	}

	for _, a := range accounts {
		if a.AccountID != selectedAccountID {
			continue
		}
		res := AccountState{
			ActiveAccountID:   selectedAccountID,
			HasSetupSummary:   a.BudgetSettings != nil,
			HasTemplateConfig: a.LaunchConfig != nil,
			Status:            StatusUnconfigured,
		}
		if res.HasSetupSummary && res.HasTemplateConfig {
			res.Status = StatusReady
		}
		return res
	}
	return AccountState{Status: StatusNoAccount}
}

// Check decides whether the action may proceed in the given state
func Check(st AccountState, action Action) Result {
	var reason Reason
	var dlg Dialog
	switch st.Status {
	case StatusReady:
		return Result{CanProceed: true, Reason: ReasonOK}
	case StatusUnconfigured:
		reason, dlg = ReasonSetupIncomplete, completeSetupDialog
	default:
		reason, dlg = ReasonNoAccount, bindAccountDialog
	}
	return Result{CanProceed: false, Reason: reason, Dialog: &dlg, DisabledTooltip: tooltip(action, reason)}
}

// CTA returns the header call to action, nil when ready
func CTA(st AccountState) *HeaderCTA {
	switch st.Status {
	case StatusNoAccount:
		return &HeaderCTA{Label: "Connect Meta", Description: "Bind a Meta account to unlock AdMax automations.",
			Href: "/settings/organization/ad-accounts"}
	case StatusUnconfigured:
		return &HeaderCTA{Label: "Setup with Meta", Description: "Finish AdMax Setup to enable Queue actions.",
			Href: "/tool/ad-max/setup"}
	default:
		return nil
	}
}

// IsTabEnabled reports whether the queue tab can be opened, analysis requires a ready account
func IsTabEnabled(st AccountState, tab enums.Tab) bool {
	if tab == enums.TabAnalysis {
		return st.Status == StatusReady
	}
	return true
}

// ShouldFetchAccountStats reports whether the stats bar data can be loaded
func ShouldFetchAccountStats(st AccountState) bool { return st.Status == StatusReady }

// ShouldFetchTestingBudget reports whether the testing budget can be loaded
func ShouldFetchTestingBudget(st AccountState) bool { return ShouldFetchAccountStats(st) }

// CanDisplayKnowledgeSection reports whether a knowledge base section is visible
func CanDisplayKnowledgeSection(st AccountState, requiresAccount bool) bool {
	return !requiresAccount || st.Status == StatusReady
}

func tooltip(action Action, reason Reason) string {
	if t, ok := actionTooltips[action][reason]; ok {
		return t
	}
	return defaultTooltips[reason]
}
