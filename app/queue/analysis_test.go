package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/dialog"
)

func newTestAnalysis(f *fixture, selected string) *Analysis {
	return NewAnalysis(AnalysisParams{
		Backend:    f.backend,
		SelectedID: func() string { return selected },
		Messages:   f.messages,
		Router:     f.router,
		Dialogs:    f.dialogs,
		Toast:      f.toasts,
	})
}

func TestAnalysis_FetchParams(t *testing.T) {
	tbl := []struct {
		name      string
		brandMode bool
		selected  string
		want      api.ListParams
	}{
		{"brand mode", true, "", api.ListParams{}},
		{"account mode", false, "a1", api.ListParams{Platform: "meta", AccountID: "a1"}},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.backend.ListAnalysisPipelinesFunc = func(_ context.Context, params api.ListParams, cursor string) (api.Page[api.AnalysisPipeline], error) {
				assert.Equal(t, tt.want, params)
				assert.Empty(t, cursor)
				return api.Page[api.AnalysisPipeline]{Results: []api.AnalysisPipeline{{ID: "r1"}}}, nil
			}
			a := newTestAnalysis(f, tt.selected)
			require.NoError(t, a.Fetch(context.Background(), tt.brandMode))
			assert.Len(t, a.Items(), 1)
		})
	}
}

func TestAnalysis_ApproveItem(t *testing.T) {
	f := newFixture(t)
	a := newTestAnalysis(f, "a1")
	require.NoError(t, a.Fetch(context.Background(), false))

	require.NoError(t, a.ApproveItem(context.Background(), "r1"))
	require.Len(t, f.backend.ApproveAndExecuteAnalysisPipelineCalls(), 1)
	assert.Equal(t, "r1", f.backend.ApproveAndExecuteAnalysisPipelineCalls()[0].ID)
	assert.Len(t, f.backend.ListAnalysisPipelinesCalls(), 2, "refetched after approve")

	f.backend.ApproveAndExecuteAnalysisPipelineFunc = func(context.Context, string) error { return errors.New("boom") }
	err := a.ApproveItem(context.Background(), "r2")
	require.EqualError(t, err, "approve analysis pipeline r2: boom")
	assert.Equal(t, []string{"Failed to approve recommendation. Please try again."}, f.toastTexts())
	assert.Len(t, f.backend.ListAnalysisPipelinesCalls(), 2, "no refetch on failure")
}

func TestAnalysis_RejectItem(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		f := newFixture(t)
		a := newTestAnalysis(f, "a1")
		wait := f.answer(t, dialog.Response{Confirmed: true, Values: map[string][]string{
			"categories": {"timing_not_right", "other"}, "reason": {"not now"},
		}}, func(req dialog.Request) {
			assert.Equal(t, dialog.KindReject, req.Kind)
			assert.Equal(t, "Reject recommendation", req.Title)
			assert.Equal(t, analysisRejectReasons, req.Fields[0].Options)
		})
		require.NoError(t, a.RejectItem(context.Background(), "r1", "Pause ad"))
		wait()

		calls := f.backend.RejectAnalysisPipelineCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, "r1", calls[0].ID)
		assert.Equal(t, api.RejectRequest{RejectionReason: []string{"timing_not_right", "other"}, RejectionDetails: "not now"}, calls[0].Req)
		assert.Len(t, f.backend.ListAnalysisPipelinesCalls(), 1, "refetched")
	})

	t.Run("dismissed", func(t *testing.T) {
		f := newFixture(t)
		a := newTestAnalysis(f, "a1")
		wait := f.answer(t, dialog.Response{}, nil)
		require.NoError(t, a.RejectItem(context.Background(), "r1", "Pause ad"))
		wait()
		assert.Empty(t, f.backend.RejectAnalysisPipelineCalls())
	})

	t.Run("failed", func(t *testing.T) {
		f := newFixture(t)
		f.backend.RejectAnalysisPipelineFunc = func(context.Context, string, api.RejectRequest) error { return errors.New("boom") }
		a := newTestAnalysis(f, "a1")
		wait := f.answer(t, dialog.Response{Confirmed: true}, nil)
		require.Error(t, a.RejectItem(context.Background(), "r1", "Pause ad"))
		wait()
		assert.Equal(t, []string{"Failed to reject recommendation. Please try again."}, f.toastTexts())
		assert.Equal(t, []string{}, f.backend.RejectAnalysisPipelineCalls()[0].Req.RejectionReason)
	})
}

func TestAnalysis_NavigateToMetric(t *testing.T) {
	f := newFixture(t)
	a := newTestAnalysis(f, "a1")

	item := api.AnalysisPipeline{ID: "r1", Platform: "meta", AccountID: "a1", AdID: "ad1", CampaignID: "c0",
		MetaAdsCampaign: &api.CampaignRef{CampaignID: "c1"}}

	a.NavigateToAdMetric(item)
	loc := f.router.Location()
	assert.Equal(t, MetricPath, loc.Path)
	msg, ok := f.messages.Get(loc.Param("messageId"))
	require.True(t, ok)
	assert.Equal(t, "AdMaxQueue", msg.From)
	assert.Equal(t, map[string]any{"specificAdId": "ad1", "adPlatform": "meta", "dataCategory": "ads_manager",
		"adMetricLevel": "ad", "dateRange": "all_time", "adAccountId": "a1"}, msg.Data["filter"])

	item.AccountID = ""
	a.NavigateToCampaignMetric(item)
	msg, ok = f.messages.Get(f.router.Location().Param("messageId"))
	require.True(t, ok)
	assert.Equal(t, map[string]any{"campaignId": "c1", "adPlatform": "meta", "dataCategory": "ads_manager",
		"adMetricLevel": "campaign"}, msg.Data["filter"])
	assert.Len(t, f.router.History(), 2, "metric navigation pushes history")
}
