package persist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/enums"
)

type memStorage struct {
	data    map[string][]byte
	saveErr error
	saves   int
}

func (m *memStorage) Load(key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNoState
	}
	return v, nil
}

func (m *memStorage) Save(key string, data []byte) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = data
	return nil
}

func TestManager_SettersPersist(t *testing.T) {
	storage := &memStorage{}
	m := New(storage)
	assert.Equal(t, State{}, m.Get())

	step := enums.SetupStepStructure
	m.SetSelectedAccountID("acc-1")
	m.SetCurrentSetupStep(&step)
	m.SetSetupBrandID("brand-1")
	m.SetAnalysisTaskID("task-1")
	m.SetReviewStructureDraft(api.ReviewStructureDraft{BudgetSettings: api.DefaultBudgetSettings(), TotalMonthlyBudget: 5000})
	assert.Equal(t, 5, storage.saves)

	// reload from the same storage
	m2 := New(storage)
	st := m2.Get()
	assert.Equal(t, "acc-1", st.SelectedAccountID)
	require.NotNil(t, st.CurrentSetupStep)
	assert.Equal(t, enums.SetupStepStructure, *st.CurrentSetupStep)
	assert.Equal(t, "brand-1", st.SetupBrandID)
	assert.Equal(t, "task-1", st.AnalysisTaskID)
	draft, ok := m2.ReviewStructureDraft()
	require.True(t, ok)
	assert.InDelta(t, 5000.0, draft.TotalMonthlyBudget, 0.001)
	assert.Equal(t, 2000, draft.BudgetSettings.Testing.Pct)
}

func TestManager_ClearSetupStateKeepsAccount(t *testing.T) {
	m := New(&memStorage{})
	step := enums.SetupStepAnalysis
	m.SetSelectedAccountID("acc-1")
	m.SetCurrentSetupStep(&step)
	m.SetSetupBrandID("brand-1")
	m.SetAnalysisTaskID("task-1")
	m.SetReviewStructureDraft(api.ReviewStructureDraft{TotalMonthlyBudget: 1})

	m.ClearSetupState()
	st := m.Get()
	assert.Equal(t, "acc-1", st.SelectedAccountID)
	assert.Nil(t, st.CurrentSetupStep)
	assert.Empty(t, st.SetupBrandID)
	assert.Empty(t, st.AnalysisTaskID)
	_, ok := m.ReviewStructureDraft()
	assert.False(t, ok)
}

func TestManager_ClearReviewStructureDraft(t *testing.T) {
	m := New(&memStorage{})
	m.SetReviewStructureDraft(api.ReviewStructureDraft{TotalMonthlyBudget: 1})
	m.ClearReviewStructureDraft()
	_, ok := m.ReviewStructureDraft()
	assert.False(t, ok)
}

func TestManager_CorruptBlob(t *testing.T) {
	storage := &memStorage{data: map[string][]byte{StateKey: []byte("{not json")}}
	m := New(storage)
	assert.Equal(t, State{}, m.Get())

	storage = &memStorage{data: map[string][]byte{StateKey: []byte(`{"currentSetupStep":"bad-step"}`)}}
	m = New(storage)
	assert.Equal(t, State{}, m.Get(), "unknown step resets state")
}

func TestManager_SaveErrorKeepsMemoryState(t *testing.T) {
	storage := &memStorage{saveErr: errors.New("disk full")}
	m := New(storage)
	m.SetSelectedAccountID("acc-1")
	assert.Equal(t, "acc-1", m.Get().SelectedAccountID)
}

func TestManager_Subscribe(t *testing.T) {
	m := New(&memStorage{})
	var got []string
	unsub := m.Subscribe(func(s State) { got = append(got, s.SelectedAccountID) })
	m.SetSelectedAccountID("a")
	m.SetSelectedAccountID("")
	unsub()
	m.SetSelectedAccountID("b")
	assert.Equal(t, []string{"a", ""}, got)
}

func TestFileStorage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	fs := NewFileStorage(dir)

	_, err := fs.Load("k1")
	assert.ErrorIs(t, err, ErrNoState)

	require.NoError(t, fs.Save("k1", []byte(`{"a":1}`)))
	data, err := fs.Load("k1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))

	info, err := os.Stat(filepath.Join(dir, "k1.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	_, err = os.Stat(filepath.Join(dir, "k1.json.tmp"))
	assert.True(t, os.IsNotExist(err), "temp file renamed")

	m := New(fs)
	m.SetSelectedAccountID("acc-9")
	assert.Equal(t, "acc-9", New(fs).Get().SelectedAccountID)
}

func TestSQLiteStorage(t *testing.T) {
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "admax.db"))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Load(StateKey)
	assert.ErrorIs(t, err, ErrNoState)

	require.NoError(t, s.Save(StateKey, []byte(`{"selectedAccountId":"a1"}`)))
	require.NoError(t, s.Save(StateKey, []byte(`{"selectedAccountId":"a2"}`)))
	data, err := s.Load(StateKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"selectedAccountId":"a2"}`, string(data))

	m := New(s)
	assert.Equal(t, "a2", m.Get().SelectedAccountID)
	m.SetAnalysisTaskID("t1")
	assert.Equal(t, "t1", New(s).Get().AnalysisTaskID)
}
