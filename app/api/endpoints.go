package api

import (
	"context"
	"fmt"
	"net/url"
)

// ListCreationPipelines returns a page of creation pipelines awaiting review
func (c *Client) ListCreationPipelines(ctx context.Context, params ListParams, cursor string) (Page[CreationPipeline], error) {
	var res Page[CreationPipeline]
	if err := c.get(ctx, "/admax/creation-pipelines", pageQuery(params, cursor), &res); err != nil {
		return Page[CreationPipeline]{}, fmt.Errorf("list creation pipelines: %w", err)
	}
	return res, nil
}

// RejectCreationPipeline rejects a creation pipeline
func (c *Client) RejectCreationPipeline(ctx context.Context, id string, req RejectRequest) error {
	if err := c.post(ctx, "/admax/creation-pipelines/"+url.PathEscape(id)+"/reject", req, nil); err != nil {
		return fmt.Errorf("reject creation pipeline %s: %w", id, err)
	}
	return nil
}

// RequestCreatives asks the service to generate creatives, optionally for an existing pipeline
func (c *Client) RequestCreatives(ctx context.Context, req CreativesRequest) error {
	if err := c.post(ctx, "/admax/creation-pipelines/request-creatives", req, nil); err != nil {
		return fmt.Errorf("request creatives: %w", err)
	}
	return nil
}

// ListAnalysisPipelines returns a page of analysis recommendations awaiting review
func (c *Client) ListAnalysisPipelines(ctx context.Context, params ListParams, cursor string) (Page[AnalysisPipeline], error) {
	var res Page[AnalysisPipeline]
	if err := c.get(ctx, "/admax/analysis-pipelines", pageQuery(params, cursor), &res); err != nil {
		return Page[AnalysisPipeline]{}, fmt.Errorf("list analysis pipelines: %w", err)
	}
	return res, nil
}

// ApproveAndExecuteAnalysisPipeline approves a recommendation and applies it
func (c *Client) ApproveAndExecuteAnalysisPipeline(ctx context.Context, id string) error {
	if err := c.post(ctx, "/admax/analysis-pipelines/"+url.PathEscape(id)+"/approve-and-execute", struct{}{}, nil); err != nil {
		return fmt.Errorf("approve analysis pipeline %s: %w", id, err)
	}
	return nil
}

// RejectAnalysisPipeline rejects a recommendation
func (c *Client) RejectAnalysisPipeline(ctx context.Context, id string, req RejectRequest) error {
	if err := c.post(ctx, "/admax/analysis-pipelines/"+url.PathEscape(id)+"/reject", req, nil); err != nil {
		return fmt.Errorf("reject analysis pipeline %s: %w", id, err)
	}
	return nil
}

// ListKnowledgeRules returns knowledge rules of the account, or of the brand for empty account id
func (c *Client) ListKnowledgeRules(ctx context.Context, accountID string) ([]Rule, error) {
	query := url.Values{}
	if accountID != "" {
		query.Set("account_id", accountID)
	}
	res := []Rule{}
	if err := c.get(ctx, "/admax/knowledge-rules", query, &res); err != nil {
		return nil, fmt.Errorf("list knowledge rules: %w", err)
	}
	return res, nil
}

// ApproveKnowledgeRule marks rule approved
func (c *Client) ApproveKnowledgeRule(ctx context.Context, id string) error {
	if err := c.post(ctx, "/admax/knowledge-rules/"+url.PathEscape(id)+"/approve", struct{}{}, nil); err != nil {
		return fmt.Errorf("approve rule %s: %w", id, err)
	}
	return nil
}

// DeclineKnowledgeRule marks rule declined
func (c *Client) DeclineKnowledgeRule(ctx context.Context, id string) error {
	if err := c.post(ctx, "/admax/knowledge-rules/"+url.PathEscape(id)+"/decline", struct{}{}, nil); err != nil {
		return fmt.Errorf("decline rule %s: %w", id, err)
	}
	return nil
}

// UpdateKnowledgeRule changes rule content
func (c *Client) UpdateKnowledgeRule(ctx context.Context, id string, req RuleRequest) (Rule, error) {
	var res Rule
	if err := c.patch(ctx, "/admax/knowledge-rules/"+url.PathEscape(id), req, &res); err != nil {
		return Rule{}, fmt.Errorf("update rule %s: %w", id, err)
	}
	return res, nil
}

// CreateKnowledgeRule adds a new rule
func (c *Client) CreateKnowledgeRule(ctx context.Context, req RuleRequest) (Rule, error) {
	var res Rule
	if err := c.post(ctx, "/admax/knowledge-rules", req, &res); err != nil {
		return Rule{}, fmt.Errorf("create rule: %w", err)
	}
	return res, nil
}

// GetBrandSetup returns brand-level setup
func (c *Client) GetBrandSetup(ctx context.Context) (BrandSetup, error) {
	query := url.Values{}
	if c.brandID != "" {
		query.Set("brand_id", c.brandID)
	}
	var res BrandSetup
	if err := c.get(ctx, "/admax/setup/brand", query, &res); err != nil {
		return BrandSetup{}, fmt.Errorf("get brand setup: %w", err)
	}
	return res, nil
}

// SubmitSetup saves account or brand setup
func (c *Client) SubmitSetup(ctx context.Context, req SetupRequest) error {
	if err := c.post(ctx, "/admax/setup", req, nil); err != nil {
		return fmt.Errorf("submit setup: %w", err)
	}
	return nil
}

// GenerateConcept starts concept generation task
func (c *Client) GenerateConcept(ctx context.Context, req GenerateConceptRequest) (TaskRef, error) {
	var res TaskRef
	if err := c.post(ctx, "/admax/setup/generate-concept", req, &res); err != nil {
		return TaskRef{}, fmt.Errorf("generate concept: %w", err)
	}
	return res, nil
}

// GetTestingBudget returns testing campaign budget of the account
func (c *Client) GetTestingBudget(ctx context.Context, accountID string) (TestingBudget, error) {
	query := url.Values{"account_id": {accountID}, "platform": {PlatformMeta}}
	var res TestingBudget
	if err := c.get(ctx, "/admax/setup/testing-budget", query, &res); err != nil {
		return TestingBudget{}, fmt.Errorf("get testing budget: %w", err)
	}
	return res, nil
}

// GetAccountStats returns stats bar data of the account
func (c *Client) GetAccountStats(ctx context.Context, accountID string) (AccountStats, error) {
	query := url.Values{"account_id": {accountID}, "platform": {PlatformMeta}}
	var res AccountStats
	if err := c.get(ctx, "/admax/setup/account-stats", query, &res); err != nil {
		return AccountStats{}, fmt.Errorf("get account stats: %w", err)
	}
	return res, nil
}

// ColdStart starts knowledge base analysis of an account
func (c *Client) ColdStart(ctx context.Context, req ColdStartRequest) (TaskRef, error) {
	var res TaskRef
	if err := c.post(ctx, "/admax/setup/cold-start", req, &res); err != nil {
		return TaskRef{}, fmt.Errorf("cold start: %w", err)
	}
	return res, nil
}

// BrandColdStart starts knowledge base analysis of a brand
func (c *Client) BrandColdStart(ctx context.Context, req ColdStartRequest) (TaskRef, error) {
	var res TaskRef
	if err := c.post(ctx, "/admax/setup/brand-cold-start", req, &res); err != nil {
		return TaskRef{}, fmt.Errorf("brand cold start: %w", err)
	}
	return res, nil
}

// GetTask returns status of an async task
func (c *Client) GetTask(ctx context.Context, taskID string) (Task, error) {
	var res Task
	if err := c.get(ctx, "/async-task/"+url.PathEscape(taskID)+"/status", nil, &res); err != nil {
		return Task{}, fmt.Errorf("get task %s: %w", taskID, err)
	}
	if res.ID == "" {
		res.ID = taskID
	}
	return res, nil
}

// GetInsightQuestions returns questions for the account, or for the brand with empty account id
func (c *Client) GetInsightQuestions(ctx context.Context, accountID string) (InsightQuestions, error) {
	query := url.Values{}
	if accountID != "" {
		query.Set("account_id", accountID)
	}
	var res InsightQuestions
	if err := c.get(ctx, "/admax/campaign-insights/questions", query, &res); err != nil {
		return InsightQuestions{}, fmt.Errorf("get insight questions: %w", err)
	}
	return res, nil
}

// SubmitInsightFeedback sends user answers or instructions
func (c *Client) SubmitInsightFeedback(ctx context.Context, req InsightFeedback) error {
	if err := c.post(ctx, "/admax/campaign-insights/feedback", req, nil); err != nil {
		return fmt.Errorf("submit insight feedback: %w", err)
	}
	return nil
}

// ListMetaAccounts returns Meta ad accounts of the brand
func (c *Client) ListMetaAccounts(ctx context.Context) ([]MetaAccount, error) {
	res := []MetaAccount{}
	if err := c.get(ctx, "/ads/meta/accounts", nil, &res); err != nil {
		return nil, fmt.Errorf("list meta accounts: %w", err)
	}
	return res, nil
}

// ListCampaigns returns campaigns of the ad account
func (c *Client) ListCampaigns(ctx context.Context, accountID string) ([]Campaign, error) {
	query := url.Values{"platform": {PlatformMeta}, "advertiser_id": {accountID}}
	var res Page[Campaign]
	if err := c.get(ctx, "/ads/campaigns", query, &res); err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return res.Results, nil
}

// GetProduct returns library product folder by product id
func (c *Client) GetProduct(ctx context.Context, productID string) (Product, error) {
	var res Product
	if err := c.get(ctx, "/library/products/"+url.PathEscape(productID), nil, &res); err != nil {
		return Product{}, fmt.Errorf("get product %s: %w", productID, err)
	}
	return res, nil
}

// GetTracker returns competitor tracker by page id
func (c *Client) GetTracker(ctx context.Context, pageID string) (Tracker, error) {
	var res Tracker
	if err := c.get(ctx, "/creative-insight/trackers/"+url.PathEscape(pageID), nil, &res); err != nil {
		return Tracker{}, fmt.Errorf("get tracker %s: %w", pageID, err)
	}
	return res, nil
}

func pageQuery(params ListParams, cursor string) url.Values {
	query := params.Values()
	if cursor != "" {
		query.Set("cursor", cursor)
	}
	return query
}
