package nav

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRouter_Navigate(t *testing.T) {
	r := NewMemoryRouter(Location{Path: QueuePath}, 2)
	var seen []string
	unsub := r.Subscribe(func(l Location) { seen = append(seen, l.String()) })

	r.Navigate(QueuePath, url.Values{"tab": {"analysis"}}, true)
	assert.Equal(t, "analysis", r.Location().Param("tab"))
	assert.Empty(t, r.History(), "replace does not push history")

	r.Navigate(SetupPath, nil, false)
	r.Navigate("/my-ads/metric", url.Values{"messageId": {"m1"}}, false)
	r.Navigate(QueuePath, nil, false)
	hist := r.History()
	require.Len(t, hist, 2, "history is bounded")
	assert.Equal(t, SetupPath, hist[0].Path)

	unsub()
	r.Navigate(SetupPath, nil, false)
	assert.Equal(t, []string{
		"/tool/ad-max/queue?tab=analysis",
		"/tool/ad-max/setup",
		"/my-ads/metric?messageId=m1",
		"/tool/ad-max/queue",
	}, seen)
}

func TestMemoryRouter_SyncNotifiesOnChange(t *testing.T) {
	r := NewMemoryRouter(Location{Path: QueuePath, Query: url.Values{"tab": {"creation"}}}, 0)
	calls := 0
	r.Subscribe(func(Location) { calls++ })

	r.Sync(Location{Path: QueuePath, Query: url.Values{"tab": {"creation"}}})
	assert.Equal(t, 0, calls)
	r.Sync(Location{Path: QueuePath, Query: url.Values{"tab": {"knowledge"}}})
	assert.Equal(t, 1, calls)
	assert.Equal(t, "knowledge", r.Location().Param("tab"))
}

func TestMessages(t *testing.T) {
	m := NewMessages(50 * time.Millisecond)
	id := m.Create(Message{From: "AdMaxCampaign", Data: map[string]any{"k": "v"}})
	require.NotEmpty(t, id)

	msg, ok := m.Get(id)
	require.True(t, ok)
	assert.Equal(t, "AdMaxCampaign", msg.From)

	_, ok = m.Get("unknown")
	assert.False(t, ok)

	time.Sleep(60 * time.Millisecond)
	_, ok = m.Get(id)
	assert.False(t, ok, "expired")
}
