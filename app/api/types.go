package api

import (
	"encoding/json"
	"net/url"
	"time"
)

// PlatformMeta is the only ads platform the console works with
const PlatformMeta = "meta"

// TaskState is a state of the remote async task
type TaskState string

// task states reported by the async task endpoint
const (
	TaskPending TaskState = "PENDING"
	TaskStarted TaskState = "STARTED"
	TaskSuccess TaskState = "SUCCESS"
	TaskFailure TaskState = "FAILURE"
	TaskRevoked TaskState = "REVOKED"
)

// Task is a status snapshot of a remote background task
type Task struct {
	ID     string          `json:"task_id"`
	Status TaskState       `json:"status"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Terminal reports whether the task reached a final state
func (t Task) Terminal() bool {
	return t.Status == TaskSuccess || t.Failed()
}

// Failed reports whether the task ended with failure or was revoked
func (t Task) Failed() bool {
	return t.Status == TaskFailure || t.Status == TaskRevoked
}

// TaskRef is returned by endpoints starting background tasks
type TaskRef struct {
	TaskID string `json:"task_id"`
}

// Page is a single page of a cursor-paginated list
type Page[T any] struct {
	Results []T    `json:"results"`
	Next    string `json:"next,omitempty"` // cursor of the next page, empty for the last one
}

// ListParams selects the pipeline list scope. Empty params mean brand scope.
type ListParams struct {
	Platform  string `json:"platform,omitempty"`
	AccountID string `json:"account_id,omitempty"`
}

// Values converts params to query values
func (p ListParams) Values() url.Values {
	res := url.Values{}
	if p.Platform != "" {
		res.Set("platform", p.Platform)
	}
	if p.AccountID != "" {
		res.Set("account_id", p.AccountID)
	}
	return res
}

// CampaignType is a kind of campaign in the account structure
type CampaignType string

// campaign types
const (
	CampaignScale       CampaignType = "scale"
	CampaignRetargeting CampaignType = "retargeting"
	CampaignTesting     CampaignType = "testing"
)

// CampaignBudget is a budget share of one campaign type, Pct is percent multiplied by 100
type CampaignBudget struct {
	Pct         int      `json:"pct"`
	CampaignIDs []string `json:"campaign_ids"`
}

// BudgetSettings splits the monthly budget between campaign types
type BudgetSettings struct {
	Scaling     CampaignBudget `json:"scaling"`
	Retargeting CampaignBudget `json:"retargeting"`
	Testing     CampaignBudget `json:"testing"`
}

// For returns budget of the given campaign type
func (b BudgetSettings) For(t CampaignType) CampaignBudget {
	switch t {
	case CampaignScale:
		return b.Scaling
	case CampaignRetargeting:
		return b.Retargeting
	default:
		return b.Testing
	}
}

// DefaultBudgetSettings is the 50/30/20 split used when nothing is configured yet
func DefaultBudgetSettings() BudgetSettings {
	return BudgetSettings{
		Scaling:     CampaignBudget{Pct: 5000, CampaignIDs: []string{}},
		Retargeting: CampaignBudget{Pct: 3000, CampaignIDs: []string{}},
		Testing:     CampaignBudget{Pct: 2000, CampaignIDs: []string{}},
	}
}

// DefaultMonthlyBudget used when account or brand has no total budget
const DefaultMonthlyBudget = 10000

// LaunchConfig is an opaque ad launch template; presence is what matters for readiness
type LaunchConfig map[string]any

// MetaAccount is a Meta ad account connected to the brand
type MetaAccount struct {
	AccountID                    string          `json:"account_id"`
	Name                         string          `json:"name"`
	IsHidden                     bool            `json:"is_hidden"`
	IsSetupComplete              bool            `json:"is_setup_complete"`
	SyncStatus                   string          `json:"sync_status"` // synced, syncing, failed
	CampaignCount                int             `json:"campaign_count"`
	BudgetSettings               *BudgetSettings `json:"budget_settings"`
	LaunchConfig                 LaunchConfig    `json:"launch_config"`
	TotalMonthlyBudget           float64         `json:"total_monthly_budget"`
	EcommerceProducts            []string        `json:"ecommerce_products"`
	ContentUnderstandingTrackers []string        `json:"content_understanding_trackers"`
}

// TestingCampaignID returns the first linked testing campaign, empty if none
func (a MetaAccount) TestingCampaignID() string {
	if a.BudgetSettings == nil || len(a.BudgetSettings.Testing.CampaignIDs) == 0 {
		return ""
	}
	return a.BudgetSettings.Testing.CampaignIDs[0]
}

// BrandSetup is the brand-level AdMax setup, used when no ad account is selected
type BrandSetup struct {
	BrandID                      string          `json:"brand_id"`
	IsSetupComplete              bool            `json:"is_setup_complete"`
	BudgetSettings               *BudgetSettings `json:"budget_settings"`
	LaunchConfig                 LaunchConfig    `json:"launch_config"`
	TotalMonthlyBudget           float64         `json:"total_monthly_budget"`
	EcommerceProducts            []string        `json:"ecommerce_products"`
	ContentUnderstandingTrackers []string        `json:"content_understanding_trackers"`
}

// SetupRequest submits account or brand setup
type SetupRequest struct {
	Platform           string          `json:"platform"`
	AccountID          string          `json:"account_id,omitempty"`
	BudgetSettings     *BudgetSettings `json:"budget_settings,omitempty"`
	TotalMonthlyBudget float64         `json:"total_monthly_budget,omitempty"`
	LaunchConfig       LaunchConfig    `json:"launch_config,omitempty"`
}

// ReviewStructureDraft keeps campaign structure saved during account setup until template config is submitted
type ReviewStructureDraft struct {
	BudgetSettings     BudgetSettings `json:"budget_settings"`
	TotalMonthlyBudget float64        `json:"total_monthly_budget"`
}

// Flow is a creative generation flow attached to a creation pipeline
type Flow struct {
	ID string `json:"id"`
}

// Targeting of a proposed ad set
type Targeting struct {
	AgeMin   int    `json:"age_min,omitempty"`
	AgeMax   int    `json:"age_max,omitempty"`
	Industry string `json:"industry,omitempty"`
}

// MediaJob is a generated creative of a creation pipeline
type MediaJob struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	URLType string `json:"url_type"`
}

// CreationPipeline is an AI proposed ad set waiting for approval
type CreationPipeline struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	Platform    string     `json:"platform"`
	AccountID   string     `json:"account_id"`
	DailyBudget float64    `json:"daily_budget"`
	Flow        *Flow      `json:"flow"`
	Targeting   *Targeting `json:"targeting,omitempty"`
	CUJob       *MediaJob  `json:"cu_job,omitempty"`
	MediaJobs   []MediaJob `json:"child_media_jobs,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CampaignRef is a short campaign reference
type CampaignRef struct {
	CampaignID string `json:"campaign_id"`
	Name       string `json:"name"`
	StartTime  string `json:"start_time,omitempty"`
}

// AdRef is a short ad reference
type AdRef struct {
	Name            string `json:"name"`
	ActualStartTime string `json:"actual_start_time,omitempty"`
}

// analysis pipeline levels
const (
	LevelAd       = "ad"
	LevelCampaign = "campaign"
)

// AnalysisPipeline is a performance recommendation waiting for approval
type AnalysisPipeline struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Reason          string         `json:"reason"`
	Status          string         `json:"status"`
	Platform        string         `json:"platform"`
	AccountID       string         `json:"account_id"`
	Level           string         `json:"level"`
	ActionType      string         `json:"action_type"`
	ActionDetail    map[string]any `json:"action_detail,omitempty"`
	AdID            string         `json:"ad_id,omitempty"`
	CampaignID      string         `json:"campaign_id,omitempty"`
	MetaAdsCampaign *CampaignRef   `json:"meta_ads_campaign,omitempty"`
	MetaAdsAd       *AdRef         `json:"meta_ads_ad,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// EffectiveCampaignID prefers the linked meta campaign id
func (p AnalysisPipeline) EffectiveCampaignID() string {
	if p.MetaAdsCampaign != nil && p.MetaAdsCampaign.CampaignID != "" {
		return p.MetaAdsCampaign.CampaignID
	}
	return p.CampaignID
}

// RejectRequest rejects a pipeline with reason categories and free-form details
type RejectRequest struct {
	RejectionReason  []string `json:"rejection_reason"`
	RejectionDetails string   `json:"rejection_details"`
}

// RuleType is a knowledge rule kind
type RuleType string

// knowledge rule types
const (
	RuleCreative   RuleType = "creative"
	RuleTargeting  RuleType = "targeting"
	RuleEvaluation RuleType = "evaluation"
)

// RuleStatus is a knowledge rule review status
type RuleStatus string

// knowledge rule statuses
const (
	RulePending  RuleStatus = "pending"
	RuleApproved RuleStatus = "approved"
	RuleDeclined RuleStatus = "declined"
)

// Rule is a learned knowledge base rule
type Rule struct {
	ID           string       `json:"id"`
	Type         RuleType     `json:"type"`
	Status       RuleStatus   `json:"status"`
	Title        string       `json:"title"`
	Content      string       `json:"content"`
	CampaignType CampaignType `json:"campaign_type,omitempty"`
	IsOverride   bool         `json:"is_override,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// RuleRequest creates or updates a knowledge rule
type RuleRequest struct {
	AccountID    string       `json:"account_id,omitempty"`
	Type         RuleType     `json:"type,omitempty"`
	Title        string       `json:"title,omitempty"`
	Content      string       `json:"content,omitempty"`
	CampaignType CampaignType `json:"campaign_type,omitempty"`
	IsOverride   bool         `json:"is_override,omitempty"`
}

// TestingBudget is monthly testing campaign budget and its spend
type TestingBudget struct {
	CampaignID              string  `json:"campaign_id"`
	MonthlyBudget           float64 `json:"monthly_budget"`
	MonthlyBudgetAllocation float64 `json:"monthly_budget_allocation"`
}

// AccountStats is the stats bar summary of an account
type AccountStats struct {
	CampaignInfo           map[string]any `json:"campaign_info,omitempty"`
	RoasInfo               map[string]any `json:"roas_info,omitempty"`
	PipelineAcceptanceRate float64        `json:"pipeline_acceptance_rate"`
}

// ColdStartRequest starts knowledge base analysis for account or brand
type ColdStartRequest struct {
	AccountID            string   `json:"account_id,omitempty"`
	BrandID              string   `json:"brand_id,omitempty"`
	ProductIDs           []string `json:"product_ids,omitempty"`
	CompetitorTrackerIDs []string `json:"competitor_tracker_ids,omitempty"`
}

// GenerateConceptRequest starts concept generation, empty account id means brand scope
type GenerateConceptRequest struct {
	AccountID string `json:"account_id,omitempty"`
}

// CreativesRequest asks the service to produce creatives
type CreativesRequest struct {
	Platform           string `json:"platform,omitempty"`
	AccountID          string `json:"account_id,omitempty"`
	CreationPipelineID string `json:"creation_pipeline_id,omitempty"`
	Prompt             string `json:"prompt,omitempty"`
	ProductID          string `json:"product_id,omitempty"`
}

// InsightQuestions are AI generated questions about account or brand
type InsightQuestions struct {
	SnapshotID string `json:"snapshot_id"`
	Questions  string `json:"questions"`
}

// InsightFeedback is user answer to insight questions or an instruction
type InsightFeedback struct {
	AccountID  string `json:"account_id,omitempty"`
	BrandID    string `json:"brand_id,omitempty"`
	SnapshotID string `json:"snapshot_id"`
	UserAnswer string `json:"user_answer"`
}

// Campaign is an ads platform campaign
type Campaign struct {
	CampaignID string `json:"campaign_id"`
	Name       string `json:"name"`
}

// Product is a library product folder
type Product struct {
	ID           string `json:"id"`
	Product      string `json:"product"`
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// ProductKey returns product id used by cold start, falls back to folder id
func (p Product) ProductKey() string {
	if p.Product != "" {
		return p.Product
	}
	return p.ID
}

// Tracker is a competitor page tracker
type Tracker struct {
	PageID string `json:"page_id"`
	Name   string `json:"name"`
}
