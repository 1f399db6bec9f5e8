package setup

import (
	"context"

	"github.com/umputun/admax/app/api"
)

//go:generate moq -out mocks/backend.go -pkg mocks -skip-ensure -fmt goimports . Backend

// TaskBackend starts cold start analysis and reports task status
type TaskBackend interface {
	ColdStart(ctx context.Context, req api.ColdStartRequest) (api.TaskRef, error)
	BrandColdStart(ctx context.Context, req api.ColdStartRequest) (api.TaskRef, error)
	GetTask(ctx context.Context, taskID string) (api.Task, error)
}

// Backend is the remote api used by the setup wizard
type Backend interface {
	TaskBackend
	GetBrandSetup(ctx context.Context) (api.BrandSetup, error)
	SubmitSetup(ctx context.Context, req api.SetupRequest) error
	ListCampaigns(ctx context.Context, accountID string) ([]api.Campaign, error)
	GetProduct(ctx context.Context, productID string) (api.Product, error)
	GetTracker(ctx context.Context, pageID string) (api.Tracker, error)
	GetInsightQuestions(ctx context.Context, accountID string) (api.InsightQuestions, error)
	SubmitInsightFeedback(ctx context.Context, req api.InsightFeedback) error
}

// Accounts is the ad account directory
type Accounts interface {
	Fetch(ctx context.Context) error
	WaitReady(ctx context.Context) error
	Accounts() []api.MetaAccount
	Available() []api.MetaAccount
}

// Toaster shows toasts
type Toaster interface {
	Success(text string)
	Error(text string)
}

// Alerter sends alerts about failed background tasks
type Alerter interface {
	Alert(ctx context.Context, text string) error
}
