//go:build e2e

package e2e

import (
	"strings"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_ShowsCreationItems(t *testing.T) {
	page := newPage(t)
	openQueue(t, page)

	text, err := page.Locator("#creation-cp-1").TextContent()
	require.NoError(t, err)
	assert.Contains(t, text, "Summer sale ad set")
	assert.Contains(t, text, "High intent lookalike audience")

	// auto-selected account is the set up one
	selected, err := page.Locator("#account_id").InputValue()
	require.NoError(t, err)
	assert.Equal(t, "act-ready", selected)

	// media job checkbox is preselected
	checked, err := page.Locator("#creation-cp-1 input[name='job_id'][value='job-1']").IsChecked()
	require.NoError(t, err)
	assert.True(t, checked)
}

func TestQueue_HeaderStats(t *testing.T) {
	page := newPage(t)
	openQueue(t, page)

	text, err := page.Locator("#queue-header .stats").TextContent()
	require.NoError(t, err)
	assert.Contains(t, text, "Week")
	assert.Contains(t, text, "Testing budget left")
	assert.Contains(t, text, "$4800 of $5000")
}

func TestQueue_SwitchTabs(t *testing.T) {
	page := newPage(t)
	openQueue(t, page)

	require.NoError(t, page.Locator("#queue-tabs button:has-text('Analysis')").Click())
	waitVisible(t, page, "#analysis-ap-1")
	assert.Contains(t, page.URL(), "tab=analysis")

	text, err := page.Locator("#analysis-ap-1").TextContent()
	require.NoError(t, err)
	assert.Contains(t, text, "Pause underperforming ad")
	visible, err := page.Locator("#analysis-ap-1 button:has-text('Ad metrics')").IsVisible()
	require.NoError(t, err)
	assert.True(t, visible, "ad metric link shown for ad level items")

	require.NoError(t, page.Locator("#queue-tabs button:has-text('Knowledge')").Click())
	waitVisible(t, page, "#rule-rule-1")
	assert.Contains(t, page.URL(), "tab=knowledge")
	visible, err = page.Locator("#rule-rule-2 button:has-text('Approve')").IsVisible()
	require.NoError(t, err)
	assert.True(t, visible, "pending rule can be approved")
}

func TestQueue_TabFromURL(t *testing.T) {
	page := newPage(t)
	_, err := page.Goto(baseURL + "/tool/ad-max/queue?tab=analysis")
	require.NoError(t, err)
	waitVisible(t, page, "#analysis-ap-1")

	active, err := page.Locator("#queue-tabs [data-active-tab]").GetAttribute("data-active-tab")
	require.NoError(t, err)
	assert.Equal(t, "analysis", active)
}

func TestQueue_RejectDialog(t *testing.T) {
	page := newPage(t)
	openQueue(t, page)
	before := len(service.postsTo("/admax/creation-pipelines/cp-1/reject"))

	require.NoError(t, page.Locator("#creation-cp-1 button:has-text('Reject')").Click())
	waitVisible(t, page, ".modal[data-kind='reject']")

	require.NoError(t, page.Locator(".modal[data-kind='reject'] input[value='wrong_targeting']").Check())
	require.NoError(t, page.Locator(".modal[data-kind='reject'] textarea[name='reason']").Fill("not our audience"))
	require.NoError(t, page.Locator(".modal[data-kind='reject'] button[value='confirm']").Click())
	waitHidden(t, page, ".modal[data-kind='reject']")

	require.Eventually(t, func() bool {
		return len(service.postsTo("/admax/creation-pipelines/cp-1/reject")) == before+1
	}, 5*time.Second, 100*time.Millisecond, "reject request should reach the service")
	posts := service.postsTo("/admax/creation-pipelines/cp-1/reject")
	last := posts[len(posts)-1]
	assert.Equal(t, []any{"wrong_targeting"}, last.Body["rejection_reason"])
	assert.Equal(t, "not our audience", last.Body["rejection_details"])
}

func TestQueue_RejectDialogCancel(t *testing.T) {
	page := newPage(t)
	openQueue(t, page)
	before := len(service.postsTo("/admax/creation-pipelines/cp-1/reject"))

	require.NoError(t, page.Locator("#creation-cp-1 button:has-text('Reject')").Click())
	waitVisible(t, page, ".modal[data-kind='reject']")
	require.NoError(t, page.Locator(".modal[data-kind='reject'] button[value='dismiss']").Click())
	waitHidden(t, page, ".modal[data-kind='reject']")

	time.Sleep(300 * time.Millisecond)
	assert.Len(t, service.postsTo("/admax/creation-pipelines/cp-1/reject"), before, "dismissed dialog sends nothing")
}

func TestQueue_ApproveOpensAdLauncher(t *testing.T) {
	page := newPage(t)
	openQueue(t, page)

	require.NoError(t, page.Locator("#creation-cp-1 button[type='submit']:has-text('Approve')").Click())
	require.NoError(t, page.WaitForURL("**/*messageId=*", playwright.PageWaitForURLOptions{Timeout: playwright.Float(5000)}))
	assert.Contains(t, page.URL(), "actionType=LAUNCH_NEW_CREATIVES")

	waitVisible(t, page, "main h2")
	text, err := page.Locator("main").TextContent()
	require.NoError(t, err)
	assert.Contains(t, text, "Passed from AdMaxCampaign")
	assert.Contains(t, text, "cp-1")
	assert.Contains(t, text, "job-1")
}

func TestQueue_AnalysisApprove(t *testing.T) {
	page := newPage(t)
	_, err := page.Goto(baseURL + "/tool/ad-max/queue?tab=analysis")
	require.NoError(t, err)
	waitVisible(t, page, "#analysis-ap-1")
	before := len(service.postsTo("/admax/analysis-pipelines/ap-1/approve-and-execute"))

	require.NoError(t, page.Locator("#analysis-ap-1 button:has-text('Approve')").Click())
	require.Eventually(t, func() bool {
		return len(service.postsTo("/admax/analysis-pipelines/ap-1/approve-and-execute")) == before+1
	}, 5*time.Second, 100*time.Millisecond)
}

func TestQueue_ApproveRule(t *testing.T) {
	page := newPage(t)
	_, err := page.Goto(baseURL + "/tool/ad-max/queue?tab=knowledge")
	require.NoError(t, err)
	waitVisible(t, page, "#rule-rule-2")
	before := len(service.postsTo("/admax/knowledge-rules/rule-2/approve"))

	require.NoError(t, page.Locator("#rule-rule-2 button:has-text('Approve')").Click())
	require.Eventually(t, func() bool {
		return len(service.postsTo("/admax/knowledge-rules/rule-2/approve")) == before+1
	}, 5*time.Second, 100*time.Millisecond)
}

func TestQueue_AddRuleDialog(t *testing.T) {
	page := newPage(t)
	_, err := page.Goto(baseURL + "/tool/ad-max/queue?tab=knowledge")
	require.NoError(t, err)
	waitVisible(t, page, "#rule-rule-1")
	before := len(service.postsTo("/admax/knowledge-rules"))

	require.NoError(t, page.Locator("section.rules:has-text('Evaluation rules') button:has-text('Add')").Click())
	waitVisible(t, page, ".modal[data-kind='add-rule']")
	require.NoError(t, page.Locator(".modal[data-kind='add-rule'] input[name='title']").Fill("ROAS first"))
	require.NoError(t, page.Locator(".modal[data-kind='add-rule'] textarea[name='content']").Fill("Judge ads by ROAS"))
	require.NoError(t, page.Locator(".modal[data-kind='add-rule'] button[value='confirm']").Click())
	waitHidden(t, page, ".modal[data-kind='add-rule']")

	require.Eventually(t, func() bool {
		return len(service.postsTo("/admax/knowledge-rules")) == before+1
	}, 5*time.Second, 100*time.Millisecond)
	posts := service.postsTo("/admax/knowledge-rules")
	last := posts[len(posts)-1]
	assert.Equal(t, "evaluation", last.Body["type"])
	assert.Equal(t, "ROAS first", last.Body["title"])
	assert.True(t, strings.HasPrefix(last.Body["content"].(string), "Judge ads"))
}
