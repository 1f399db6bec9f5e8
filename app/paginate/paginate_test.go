package paginate

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/admax/app/api"
)

type call struct {
	params api.ListParams
	cursor string
}

// fakeList serves pages "a,b" -> "c,d" -> "e"
type fakeList struct {
	mu    sync.Mutex
	calls []call
	err   error
	gate  chan struct{} // blocks fetch until closed, if set
}

func (f *fakeList) fetch(ctx context.Context, params api.ListParams, cursor string) (api.Page[string], error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{params: params, cursor: cursor})
	gate, err := f.gate, f.err
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if err != nil {
		return api.Page[string]{}, err
	}
	switch cursor {
	case "":
		return api.Page[string]{Results: []string{params.AccountID + "a", params.AccountID + "b"}, Next: "p2"}, nil
	case "p2":
		return api.Page[string]{Results: []string{"c", "d"}, Next: "p3"}, nil
	default:
		return api.Page[string]{Results: []string{"e"}}, nil
	}
}

func (f *fakeList) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func TestManager_FetchAndPages(t *testing.T) {
	f := &fakeList{}
	m := New("test", f.fetch)
	ctx := context.Background()

	require.NoError(t, m.Fetch(ctx, api.ListParams{}))
	st := m.State()
	assert.Equal(t, []string{"a", "b"}, st.Items)
	assert.True(t, st.HasNextPage)
	assert.True(t, st.Loaded)
	assert.False(t, st.IsLoading)
	assert.True(t, m.CanFetchNextPage())

	require.NoError(t, m.FetchNextPage(ctx))
	require.NoError(t, m.FetchNextPage(ctx))
	st = m.State()
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, st.Items, "pages appended in order")
	assert.False(t, st.HasNextPage)
	assert.False(t, m.CanFetchNextPage())

	// no next page, no network call
	require.NoError(t, m.FetchNextPage(ctx))
	assert.Len(t, f.Calls(), 3)
}

func TestManager_FetchWithParamsAndRefetch(t *testing.T) {
	f := &fakeList{}
	m := New("test", f.fetch)
	ctx := context.Background()

	params := api.ListParams{Platform: api.PlatformMeta, AccountID: "x"}
	require.NoError(t, m.Fetch(ctx, params))
	require.NoError(t, m.FetchNextPage(ctx))
	assert.Equal(t, []string{"xa", "xb", "c", "d"}, m.Items())

	var snapshots [][]string
	unsub := m.Store().Subscribe(func(s State[string, api.ListParams]) { snapshots = append(snapshots, s.Items) })
	require.NoError(t, m.Refetch(ctx))
	unsub()
	assert.Equal(t, []string{"xa", "xb"}, m.Items())
	for _, snap := range snapshots {
		assert.NotEqual(t, []string{}, snap, "list never observed empty during refetch")
	}

	calls := f.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, params, calls[2].params)
	assert.Empty(t, calls[2].cursor)
}

func TestManager_FetchError(t *testing.T) {
	f := &fakeList{err: errors.New("boom")}
	m := New("test", f.fetch)
	err := m.Fetch(context.Background(), api.ListParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch test")
	st := m.State()
	assert.False(t, st.IsLoading)
	assert.EqualError(t, st.Err, "boom")
	assert.Empty(t, st.Items)
}

func TestManager_NextPageSkippedWhileInFlight(t *testing.T) {
	f := &fakeList{}
	m := New("test", f.fetch)
	ctx := context.Background()
	require.NoError(t, m.Fetch(ctx, api.ListParams{}))

	gate := make(chan struct{})
	f.mu.Lock()
	f.gate = gate
	f.mu.Unlock()

	done := make(chan error)
	go func() { done <- m.FetchNextPage(ctx) }()
	require.Eventually(t, func() bool { return m.State().IsFetchingNextPage }, timeout, tick)

	assert.False(t, m.CanFetchNextPage())
	require.NoError(t, m.FetchNextPage(ctx), "second call is a no-op")
	close(gate)
	require.NoError(t, <-done)

	assert.Len(t, f.Calls(), 2)
	assert.Equal(t, []string{"a", "b", "c", "d"}, m.Items())
}

func TestManager_StalePageDropped(t *testing.T) {
	f := &fakeList{}
	m := New("test", f.fetch)
	ctx := context.Background()
	require.NoError(t, m.Fetch(ctx, api.ListParams{AccountID: "old"}))

	gate := make(chan struct{})
	f.mu.Lock()
	f.gate = gate
	f.mu.Unlock()
	done := make(chan error)
	go func() { done <- m.FetchNextPage(ctx) }()
	require.Eventually(t, func() bool { return m.State().IsFetchingNextPage }, timeout, tick)

	m.Reset()
	f.mu.Lock()
	f.gate = nil
	f.mu.Unlock()
	close(gate)
	require.NoError(t, <-done)
	assert.Empty(t, m.Items(), "page of the previous list dropped")
	assert.False(t, m.State().IsFetchingNextPage)

	require.NoError(t, m.Fetch(ctx, api.ListParams{AccountID: "new"}))
	assert.Equal(t, []string{"newa", "newb"}, m.Items())
}

// gatedList hands every fetch to the test, which answers it explicitly
type gatedList struct {
	reqs chan gatedCall
}

type gatedCall struct {
	cursor string
	resp   chan api.Page[string]
}

func (g *gatedList) fetch(_ context.Context, _ api.ListParams, cursor string) (api.Page[string], error) {
	c := gatedCall{cursor: cursor, resp: make(chan api.Page[string])}
	g.reqs <- c
	return <-c.resp, nil
}

func TestManager_StalePageKeepsNewerFetchInFlight(t *testing.T) {
	g := &gatedList{reqs: make(chan gatedCall)}
	m := New("test", g.fetch)
	ctx := context.Background()

	run := func(fn func(ctx context.Context) error) chan error {
		done := make(chan error, 1)
		go func() { done <- fn(ctx) }()
		return done
	}

	done := run(func(ctx context.Context) error { return m.Fetch(ctx, api.ListParams{}) })
	first := <-g.reqs
	first.resp <- api.Page[string]{Results: []string{"a", "b"}, Next: "p2"}
	require.NoError(t, <-done)

	stale := run(m.FetchNextPage)
	old := <-g.reqs
	assert.Equal(t, "p2", old.cursor)

	done = run(m.Refetch)
	refetch := <-g.reqs
	refetch.resp <- api.Page[string]{Results: []string{"x", "y"}, Next: "q2"}
	require.NoError(t, <-done)
	assert.Equal(t, []string{"x", "y"}, m.Items())

	fresh := run(m.FetchNextPage)
	next := <-g.reqs
	assert.Equal(t, "q2", next.cursor)
	require.True(t, m.State().IsFetchingNextPage)

	old.resp <- api.Page[string]{Results: []string{"c", "d"}, Next: "p3"}
	require.NoError(t, <-stale)
	st := m.State()
	assert.Equal(t, []string{"x", "y"}, st.Items, "page of the replaced list dropped")
	assert.True(t, st.IsFetchingNextPage, "newer next page still in flight")
	assert.Equal(t, "q2", st.Cursor)

	next.resp <- api.Page[string]{Results: []string{"z"}}
	require.NoError(t, <-fresh)
	st = m.State()
	assert.Equal(t, []string{"x", "y", "z"}, st.Items)
	assert.False(t, st.IsFetchingNextPage)
	assert.False(t, st.HasNextPage)
}
