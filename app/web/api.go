package web

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/admax/app/cycle"
	"github.com/umputun/admax/app/queue"
	"github.com/umputun/admax/app/setup"
)

// APIStatusResponse is the JSON response for /api/v1/status
type APIStatusResponse struct {
	Page      string           `json:"page"` // mounted page: queue, setup or empty
	Location  string           `json:"location"`
	Queue     *APIQueueStatus  `json:"queue,omitempty"`
	Setup     *APISetupStatus  `json:"setup,omitempty"`
	Dialogs   []APIDialog      `json:"dialogs"`
	Toasts    []APIToast       `json:"toasts"`
	Busy      bool             `json:"busy"`
	Timestamp time.Time        `json:"timestamp"`
}

// APIQueueStatus is the state of the mounted queue page
type APIQueueStatus struct {
	Ready             bool                   `json:"ready"`
	SelectedAccountID string                 `json:"selected_account_id"`
	BrandMode         bool                   `json:"brand_mode"`
	ActiveTab         string                 `json:"active_tab"`
	AccountStatus     string                 `json:"account_status"`
	Counts            queue.Counts           `json:"counts"`
	GeneratingConcept bool                   `json:"generating_concept"`
	LowBudget         bool                   `json:"low_budget"`
	WeeklyCycle       cycle.WeeklyCycle      `json:"weekly_cycle"`
	Automation        cycle.AutomationStatus `json:"automation"`
}

// APISetupStatus is the state of the mounted setup wizard
type APISetupStatus struct {
	Ready            bool             `json:"ready"`
	Step             string           `json:"step"`
	VisibleSteps     []string         `json:"visible_steps"`
	AccountID        string           `json:"account_id"`
	AnalysisProgress int              `json:"analysis_progress"`
	AnalysisPolling  bool             `json:"analysis_polling"`
	SetupComplete    bool             `json:"setup_complete"`
	TotalBudget      int              `json:"total_budget"`
	Campaigns        []setup.Campaign `json:"campaigns"`
}

// APIDialog is an open dialog
type APIDialog struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Title string `json:"title"`
}

// APIToast is an active toast
type APIToast struct {
	ID    string `json:"id"`
	Level string `json:"level"`
	Text  string `json:"text"`
}

// handleAPIStatus returns JSON with the mounted page state, open dialogs and toasts
func (s *Server) handleAPIStatus(w http.ResponseWriter, _ *http.Request) {
	resp := APIStatusResponse{
		Location:  s.router.Location().String(),
		Dialogs:   []APIDialog{},
		Toasts:    []APIToast{},
		Busy:      s.busy(),
		Timestamp: time.Now(),
	}

	if pg, _ := s.pages.currentQueue(); pg != nil {
		resp.Page = "queue"
		resp.Queue = &APIQueueStatus{
			Ready:             pg.State().IsReady,
			SelectedAccountID: pg.SelectedAccountID(),
			BrandMode:         pg.IsBrandMode(),
			ActiveTab:         pg.ActiveTab().String(),
			AccountStatus:     string(pg.Guard().State().Status),
			Counts:            pg.Counts(),
			GeneratingConcept: pg.Creation().IsGeneratingConcept(),
			LowBudget:         pg.Creation().IsLowBudget(),
			WeeklyCycle:       pg.WeeklyCycle(),
			Automation:        pg.AutomationStatus(),
		}
	}

	if wz, _ := s.pages.currentSetup(); wz != nil {
		st := wz.State()
		resp.Page = "setup"
		resp.Setup = &APISetupStatus{
			Ready:            st.IsReady,
			Step:             st.CurrentStep.String(),
			AccountID:        st.AccountID,
			AnalysisProgress: wz.AnalysisProgress(),
			AnalysisPolling:  wz.Analyzer().State().IsPolling,
			SetupComplete:    wz.IsSetupComplete(),
			TotalBudget:      wz.TotalBudget(),
			Campaigns:        st.Campaigns,
		}
		for _, step := range st.VisibleSteps {
			resp.Setup.VisibleSteps = append(resp.Setup.VisibleSteps, step.String())
		}
	}

	for _, d := range s.dialogs.Pending() {
		resp.Dialogs = append(resp.Dialogs, APIDialog{ID: d.ID, Kind: string(d.Kind), Title: d.Title})
	}
	for _, t := range s.toasts.Toasts() {
		resp.Toasts = append(resp.Toasts, APIToast{ID: t.ID, Level: string(t.Level), Text: t.Text})
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// handleAPIMessage returns the hand-off message for the page it was passed to
func (s *Server) handleAPIMessage(w http.ResponseWriter, r *http.Request) {
	msg, ok := s.messages.Get(r.PathValue("id"))
	if !ok {
		s.writeJSONError(w, http.StatusNotFound, "message not found")
		return
	}
	s.writeJSON(w, http.StatusOK, msg)
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[WARN] failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes a JSON error response
func (s *Server) writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("[WARN] failed to encode JSON error response: %v", err)
	}
}
