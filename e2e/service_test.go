//go:build e2e

package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
)

// fakeService serves the AdMax backend endpoints used by the console with canned data
// and records every mutating request
type fakeService struct {
	mu    sync.Mutex
	posts []recordedPost
}

type recordedPost struct {
	Path string
	Body map[string]any
}

func newFakeService() *fakeService { return &fakeService{} }

// postsTo returns recorded requests to the path
func (s *fakeService) postsTo(path string) []recordedPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []recordedPost
	for _, p := range s.posts {
		if p.Path == path {
			res = append(res, p)
		}
	}
	return res
}

func (s *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.record(r)
	}

	switch {
	case r.URL.Path == "/ads/meta/accounts":
		writeJSON(w, []map[string]any{
			{
				"account_id": "act-ready", "name": "Ready Shop", "is_setup_complete": true, "sync_status": "synced",
				"campaign_count": 3, "total_monthly_budget": 10000,
				"budget_settings": map[string]any{
					"testing":     map[string]any{"pct": 50, "campaign_ids": []string{"camp-testing"}},
					"scaling":     map[string]any{"pct": 30, "campaign_ids": []string{}},
					"retargeting": map[string]any{"pct": 20, "campaign_ids": []string{}},
				},
				"launch_config": map[string]any{"page_id": "page-1"},
			},
			{"account_id": "act-new", "name": "New Shop", "sync_status": "synced", "campaign_count": 1},
		})
	case r.URL.Path == "/admax/setup/brand":
		writeJSON(w, map[string]any{"brand_id": "brand-e2e", "is_setup_complete": true})
	case r.URL.Path == "/admax/creation-pipelines" && r.Method == http.MethodGet:
		writeJSON(w, map[string]any{"results": []map[string]any{
			{
				"id": "cp-1", "title": "Summer sale ad set", "reason": "High intent lookalike audience",
				"status": "pending", "daily_budget": 20, "flow": map[string]any{"id": "flow-1"},
				"child_media_jobs": []map[string]any{{"id": "job-1", "url": "/static/app.css", "url_type": "image"}},
			},
		}})
	case r.URL.Path == "/admax/analysis-pipelines" && r.Method == http.MethodGet:
		writeJSON(w, map[string]any{"results": []map[string]any{
			{
				"id": "ap-1", "title": "Pause underperforming ad", "reason": "CTR dropped below 0.3%",
				"status": "pending", "level": "ad", "action_type": "pause", "ad_id": "ad-1", "campaign_id": "camp-testing",
			},
		}})
	case r.URL.Path == "/admax/knowledge-rules" && r.Method == http.MethodGet:
		writeJSON(w, []map[string]any{
			{"id": "rule-1", "type": "creative", "status": "approved", "title": "Bright colors", "content": "Use bright colors"},
			{"id": "rule-2", "type": "targeting", "status": "pending", "title": "Age 25-45", "content": "Target ages 25-45"},
		})
	case r.URL.Path == "/admax/setup/testing-budget":
		writeJSON(w, map[string]any{"campaign_id": "camp-testing", "monthly_budget": 200, "monthly_budget_allocation": 5000})
	case r.URL.Path == "/admax/setup/account-stats":
		writeJSON(w, map[string]any{"pipeline_acceptance_rate": 0.75})
	case r.URL.Path == "/admax/campaign-insights/questions":
		writeJSON(w, map[string]any{"snapshot_id": "snap-1", "questions": "Who are your best customers?"})
	case r.URL.Path == "/ads/campaigns":
		writeJSON(w, map[string]any{"results": []map[string]any{{"campaign_id": "camp-new", "name": "New Shop testing"}}})
	case strings.HasPrefix(r.URL.Path, "/library/products/"):
		id := strings.TrimPrefix(r.URL.Path, "/library/products/")
		writeJSON(w, map[string]any{"id": id, "product": "prod-" + id, "name": "Product " + id})
	case strings.HasPrefix(r.URL.Path, "/creative-insight/trackers/"):
		id := strings.TrimPrefix(r.URL.Path, "/creative-insight/trackers/")
		writeJSON(w, map[string]any{"page_id": id, "name": "Competitor " + id})
	case strings.HasPrefix(r.URL.Path, "/async-task/"):
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/async-task/"), "/status")
		writeJSON(w, map[string]any{"task_id": id, "status": "SUCCESS"})
	case strings.HasSuffix(r.URL.Path, "cold-start") || r.URL.Path == "/admax/setup/generate-concept":
		writeJSON(w, map[string]any{"task_id": "task-e2e"})
	default:
		writeJSON(w, map[string]any{})
	}
}

func (s *fakeService) record(r *http.Request) {
	body := map[string]any{}
	if data, err := io.ReadAll(r.Body); err == nil && len(data) > 0 {
		_ = json.Unmarshal(data, &body)
	}
	s.mu.Lock()
	s.posts = append(s.posts, recordedPost{Path: r.URL.Path, Body: body})
	s.mu.Unlock()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
