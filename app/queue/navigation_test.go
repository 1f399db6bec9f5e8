package queue

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/admax/app/enums"
	"github.com/umputun/admax/app/nav"
)

func TestTabFromLocation(t *testing.T) {
	tbl := []struct {
		name string
		loc  nav.Location
		want enums.Tab
	}{
		{"no tab", nav.Location{Path: nav.QueuePath}, enums.TabCreation},
		{"analysis", nav.Location{Path: nav.QueuePath, Query: url.Values{"tab": {"analysis"}}}, enums.TabAnalysis},
		{"knowledge", nav.Location{Path: nav.QueuePath, Query: url.Values{"tab": {"knowledge"}}}, enums.TabKnowledge},
		{"unknown tab", nav.Location{Path: nav.QueuePath, Query: url.Values{"tab": {"blah"}}}, enums.TabCreation},
		{"other page", nav.Location{Path: nav.SetupPath, Query: url.Values{"tab": {"analysis"}}}, enums.TabCreation},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TabFromLocation(tt.loc))
		})
	}
}

func TestNavigation_SetActiveTab(t *testing.T) {
	router := nav.NewMemoryRouter(nav.Location{Path: nav.QueuePath}, 0)
	ready := false
	n := NewNavigation(router, tabGuardFunc(func(tab enums.Tab) bool { return tab != enums.TabAnalysis || ready }))
	n.Bootstrap()
	defer n.Dispose()

	assert.Equal(t, enums.TabCreation, n.ActiveTab())
	assert.False(t, n.SetActiveTab(enums.TabAnalysis), "analysis disabled")
	assert.Equal(t, enums.TabCreation, n.ActiveTab())
	assert.Empty(t, router.Location().Param("tab"))

	require.True(t, n.SetActiveTab(enums.TabKnowledge))
	assert.Equal(t, enums.TabKnowledge, n.ActiveTab())
	assert.Equal(t, "knowledge", router.Location().Param("tab"))
	assert.Empty(t, router.History(), "tab change replaces url")

	ready = true
	require.True(t, n.SetActiveTab(enums.TabAnalysis))
	assert.Equal(t, "/tool/ad-max/queue?tab=analysis", router.Location().String())
}

func TestNavigation_FollowsRouter(t *testing.T) {
	router := nav.NewMemoryRouter(nav.Location{Path: nav.QueuePath, Query: url.Values{"tab": {"knowledge"}}}, 0)
	n := NewNavigation(router, tabGuardFunc(func(enums.Tab) bool { return true }))
	n.Bootstrap()
	assert.Equal(t, enums.TabKnowledge, n.ActiveTab(), "initial tab from url")

	var changes []enums.Tab
	unsubscribe := n.Store().Subscribe(func(tab enums.Tab) { changes = append(changes, tab) })
	defer unsubscribe()

	router.Sync(nav.Location{Path: nav.QueuePath, Query: url.Values{"tab": {"analysis"}}})
	assert.Equal(t, enums.TabAnalysis, n.ActiveTab())

	router.Sync(nav.Location{Path: nav.SetupPath})
	assert.Equal(t, enums.TabAnalysis, n.ActiveTab(), "other pages ignored")
	assert.Equal(t, []enums.Tab{enums.TabAnalysis}, changes)

	n.Dispose()
	router.Sync(nav.Location{Path: nav.QueuePath})
	assert.Equal(t, enums.TabAnalysis, n.ActiveTab(), "disposed navigation doesn't follow router")
}
