package queue

import (
	"context"

	"github.com/umputun/admax/app/account"
	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/dialog"
	"github.com/umputun/admax/app/nav"
)

//go:generate moq -out mocks/backend.go -pkg mocks -skip-ensure -fmt goimports . Backend

// CreationBackend is the remote api used by the creation queue
type CreationBackend interface {
	ListCreationPipelines(ctx context.Context, params api.ListParams, cursor string) (api.Page[api.CreationPipeline], error)
	RejectCreationPipeline(ctx context.Context, id string, req api.RejectRequest) error
	RequestCreatives(ctx context.Context, req api.CreativesRequest) error
	GenerateConcept(ctx context.Context, req api.GenerateConceptRequest) (api.TaskRef, error)
	GetTestingBudget(ctx context.Context, accountID string) (api.TestingBudget, error)
	GetTask(ctx context.Context, taskID string) (api.Task, error)
}

// AnalysisBackend is the remote api used by the analysis queue
type AnalysisBackend interface {
	ListAnalysisPipelines(ctx context.Context, params api.ListParams, cursor string) (api.Page[api.AnalysisPipeline], error)
	ApproveAndExecuteAnalysisPipeline(ctx context.Context, id string) error
	RejectAnalysisPipeline(ctx context.Context, id string, req api.RejectRequest) error
}

// KnowledgeBackend is the remote api used by the knowledge base
type KnowledgeBackend interface {
	ListKnowledgeRules(ctx context.Context, accountID string) ([]api.Rule, error)
	ApproveKnowledgeRule(ctx context.Context, id string) error
	DeclineKnowledgeRule(ctx context.Context, id string) error
	UpdateKnowledgeRule(ctx context.Context, id string, req api.RuleRequest) (api.Rule, error)
	CreateKnowledgeRule(ctx context.Context, req api.RuleRequest) (api.Rule, error)
	GetInsightQuestions(ctx context.Context, accountID string) (api.InsightQuestions, error)
	SubmitInsightFeedback(ctx context.Context, req api.InsightFeedback) error
}

// Backend is the whole remote api of the queue page
type Backend interface {
	CreationBackend
	AnalysisBackend
	KnowledgeBackend
	GetBrandSetup(ctx context.Context) (api.BrandSetup, error)
	GetAccountStats(ctx context.Context, accountID string) (api.AccountStats, error)
}

// Accounts is the ad account directory
type Accounts interface {
	WaitReady(ctx context.Context) error
	Accounts() []api.MetaAccount
	Available() []api.MetaAccount
	BestAvailableID() string
	Subscribe(fn func(account.State)) (unsubscribe func())
}

// Toaster shows toasts
type Toaster interface {
	Success(text string)
	Error(text string)
}

// Dialogs presents dialogs and waits for the answer
type Dialogs interface {
	Show(ctx context.Context, req dialog.Request) (dialog.Response, error)
}

// MessageStore keeps transient hand-off messages
type MessageStore interface {
	Create(msg nav.Message) string
}

// Alerter sends alerts about failed background tasks
type Alerter interface {
	Alert(ctx context.Context, text string) error
}
