// Package persist keeps console state which survives restarts: selected ad account,
// setup wizard progress, in-flight analysis task and the campaign structure draft.
// The whole state is stored as one JSON blob under a fixed key.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/enums"
	"github.com/umputun/admax/app/state"
)

// StateKey is the storage key of the persisted state blob
const StateKey = "ad-max-persist-state"

// ErrNoState returned by storage when nothing was saved under the key
var ErrNoState = errors.New("no persisted state")

// Storage is a key-value blob storage
type Storage interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// State is the persisted console state. Empty strings and nil pointers mean "not set".
type State struct {
	SelectedAccountID    string                    `json:"selectedAccountId,omitempty"`
	CurrentSetupStep     *enums.SetupStep          `json:"currentSetupStep,omitempty"`
	SetupBrandID         string                    `json:"setupBrandId,omitempty"`
	AnalysisTaskID       string                    `json:"analysisTaskId,omitempty"`
	ReviewStructureDraft *api.ReviewStructureDraft `json:"reviewStructureDraft,omitempty"`
}

// Manager holds the persisted state, saves it after every mutation
type Manager struct {
	storage Storage
	store   *state.Store[State]
}

// New loads the state from storage. Missing or broken blob results in the initial state.
func New(storage Storage) *Manager {
	res := &Manager{storage: storage, store: state.New(State{})}
	data, err := storage.Load(StateKey)
	switch {
	case errors.Is(err, ErrNoState):
		log.Printf("[DEBUG] no persisted state, using defaults")
	case err != nil:
		log.Printf("[WARN] can't load persisted state, %v", err)
	default:
		var st State
		if err := json.Unmarshal(data, &st); err != nil {
			log.Printf("[WARN] can't parse persisted state, reset to defaults, %v", err)
			break
		}
		res.store.Update(func(s *State) { *s = st })
	}
	return res
}

// Get returns a snapshot of the state
func (m *Manager) Get() State { return m.store.Get() }

// Subscribe calls fn after each change
func (m *Manager) Subscribe(fn func(State)) (unsubscribe func()) { return m.store.Subscribe(fn) }

// Store exposes the underlying store for derived subscriptions
func (m *Manager) Store() *state.Store[State] { return m.store }

// SetSelectedAccountID sets the selected ad account, empty id selects brand mode
func (m *Manager) SetSelectedAccountID(id string) {
	m.update(func(s *State) { s.SelectedAccountID = id })
}

// SetCurrentSetupStep records wizard step, nil clears it
func (m *Manager) SetCurrentSetupStep(step *enums.SetupStep) {
	m.update(func(s *State) {
		if step == nil {
			s.CurrentSetupStep = nil
			return
		}
		st := *step
		s.CurrentSetupStep = &st
	})
}

// SetSetupBrandID records the brand the wizard runs for, empty means account flow
func (m *Manager) SetSetupBrandID(id string) {
	m.update(func(s *State) { s.SetupBrandID = id })
}

// SetAnalysisTaskID records in-flight analysis task, empty clears it
func (m *Manager) SetAnalysisTaskID(id string) {
	m.update(func(s *State) { s.AnalysisTaskID = id })
}

// SetReviewStructureDraft saves campaign structure draft
func (m *Manager) SetReviewStructureDraft(draft api.ReviewStructureDraft) {
	m.update(func(s *State) { s.ReviewStructureDraft = &draft })
}

// ReviewStructureDraft returns saved draft, false if none
func (m *Manager) ReviewStructureDraft() (api.ReviewStructureDraft, bool) {
	st := m.store.Get()
	if st.ReviewStructureDraft == nil {
		return api.ReviewStructureDraft{}, false
	}
	return *st.ReviewStructureDraft, true
}

// ClearReviewStructureDraft drops the draft
func (m *Manager) ClearReviewStructureDraft() {
	m.update(func(s *State) { s.ReviewStructureDraft = nil })
}

// ClearSetupState drops wizard progress, selected account is kept
func (m *Manager) ClearSetupState() {
	m.update(func(s *State) {
		s.CurrentSetupStep = nil
		s.SetupBrandID = ""
		s.AnalysisTaskID = ""
		s.ReviewStructureDraft = nil
	})
}

func (m *Manager) update(fn func(s *State)) {
	m.store.Update(fn)
	if err := m.save(); err != nil {
		log.Printf("[WARN] can't save persisted state, %v", err)
	}
}

func (m *Manager) save() error {
	data, err := json.Marshal(m.store.Get())
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := m.storage.Save(StateKey, data); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}
