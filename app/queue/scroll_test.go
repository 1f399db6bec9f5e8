package queue

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakePager struct {
	canFetch atomic.Bool
	fetches  atomic.Int32
}

func (p *fakePager) CanFetchNextPage() bool { return p.canFetch.Load() }

func (p *fakePager) FetchNextPage(context.Context) error {
	p.fetches.Add(1)
	return nil
}

func TestScrollMetrics_NearBottom(t *testing.T) {
	tbl := []struct {
		m    ScrollMetrics
		want bool
	}{
		{ScrollMetrics{ScrollTop: 0, ClientHeight: 500, ScrollHeight: 2000}, false},
		{ScrollMetrics{ScrollTop: 1399, ClientHeight: 500, ScrollHeight: 2000}, false},
		{ScrollMetrics{ScrollTop: 1400, ClientHeight: 500, ScrollHeight: 2000}, true},
		{ScrollMetrics{ScrollTop: 1500, ClientHeight: 500, ScrollHeight: 2000}, true},
	}
	for _, tt := range tbl {
		assert.Equal(t, tt.want, tt.m.NearBottom(DefaultScrollThreshold), "%+v", tt.m)
	}
}

func TestScrollTrigger(t *testing.T) {
	bottom := ScrollMetrics{ScrollTop: 1500, ClientHeight: 500, ScrollHeight: 2000}
	top := ScrollMetrics{ScrollHeight: 2000, ClientHeight: 500}

	t.Run("debounced", func(t *testing.T) {
		p := &fakePager{}
		p.canFetch.Store(true)
		s := NewScrollTrigger(context.Background(), "test", p, func() bool { return true }, 20*time.Millisecond, 0)
		defer s.Stop()

		for range 5 {
			s.OnScroll(bottom)
		}
		assert.Eventually(t, func() bool { return p.fetches.Load() == 1 }, timeout, tick)
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, int32(1), p.fetches.Load(), "burst of events fetches once")
	})

	t.Run("last event wins", func(t *testing.T) {
		p := &fakePager{}
		p.canFetch.Store(true)
		s := NewScrollTrigger(context.Background(), "test", p, func() bool { return true }, 20*time.Millisecond, 0)
		defer s.Stop()

		s.OnScroll(bottom)
		s.OnScroll(top)
		time.Sleep(60 * time.Millisecond)
		assert.Zero(t, p.fetches.Load())
	})

	t.Run("guards", func(t *testing.T) {
		p := &fakePager{}
		var active atomic.Bool
		s := NewScrollTrigger(context.Background(), "test", p, active.Load, time.Millisecond, 0)
		defer s.Stop()

		p.canFetch.Store(true)
		s.OnScroll(bottom) // inactive tab
		time.Sleep(20 * time.Millisecond)
		active.Store(true)
		p.canFetch.Store(false)
		s.OnScroll(bottom) // no next page or fetch in flight
		time.Sleep(20 * time.Millisecond)
		assert.Zero(t, p.fetches.Load())
	})

	t.Run("stopped", func(t *testing.T) {
		p := &fakePager{}
		p.canFetch.Store(true)
		s := NewScrollTrigger(context.Background(), "test", p, func() bool { return true }, 10*time.Millisecond, 0)
		s.OnScroll(bottom)
		s.Stop()
		s.OnScroll(bottom)
		time.Sleep(30 * time.Millisecond)
		assert.Zero(t, p.fetches.Load())
	})
}
