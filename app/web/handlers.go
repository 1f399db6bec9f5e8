package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/admax/app/dialog"
	"github.com/umputun/admax/app/nav"
	"github.com/umputun/admax/app/queue"
)

// handleQueuePage mounts the queue page and renders it, redirects if the page navigated away on bootstrap
func (s *Server) handleQueuePage(w http.ResponseWriter, r *http.Request) {
	s.router.Sync(nav.Location{Path: nav.QueuePath, Query: r.URL.Query()})
	pg, err := s.pages.mountQueue(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to mount queue page: %v", err)
		http.Error(w, "Failed to load queue", http.StatusInternalServerError)
		return
	}
	if s.leave(w, r, nav.QueuePath) {
		return
	}

	data := s.newTemplateData(r, "queue")
	data.Title = "AdMax Queue"
	data.Queue = newQueueView(pg)
	s.render(w, "queue", "base", data)
}

// handleSetupPage mounts the setup wizard and renders it
func (s *Server) handleSetupPage(w http.ResponseWriter, r *http.Request) {
	s.router.Sync(nav.Location{Path: nav.SetupPath, Query: r.URL.Query()})
	wz, err := s.pages.mountSetup(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to mount setup page: %v", err)
		http.Error(w, "Failed to load setup", http.StatusInternalServerError)
		return
	}
	if s.leave(w, r, nav.SetupPath) {
		return
	}

	data := s.newTemplateData(r, "setup")
	data.Title = "AdMax Setup"
	data.Setup = newSetupView(wz, s.accounts.Available())
	data.Busy = s.busy()
	s.render(w, "setup", "base", data)
}

// handleHandoffPage renders destinations outside of the console with the hand-off message passed to them
// and serves 404 for unknown files, api paths and methods other than GET
func (s *Server) handleHandoffPage(w http.ResponseWriter, r *http.Request) {
	if (r.Method != http.MethodGet && r.Method != http.MethodHead) || path.Ext(r.URL.Path) != "" ||
		r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
		http.NotFound(w, r)
		return
	}
	s.pages.unmount()
	s.router.Sync(nav.Location{Path: r.URL.Path, Query: r.URL.Query()})

	view := &HandoffView{Location: r.URL.RequestURI()}
	if id := r.URL.Query().Get("messageId"); id != "" {
		if msg, ok := s.messages.Get(id); ok {
			view.Message = &msg
		} else {
			view.Expired = true
		}
	}

	data := s.newTemplateData(r, "handoff")
	data.Title = "AdMax"
	data.Handoff = view
	s.render(w, "handoff", "base", data)
}

// handleQueuePartial returns queue fragments for HTMX polling
func (s *Server) handleQueuePartial(w http.ResponseWriter, r *http.Request) {
	s.respondQueue(w, r)
}

// handleSetupPartial returns the setup body for HTMX polling
func (s *Server) handleSetupPartial(w http.ResponseWriter, r *http.Request) {
	s.respondSetup(w, r)
}

// handleOverlaysPartial returns dialogs and toasts. Dialogs are skipped when the browser
// already shows the same ones, so forms being filled are not replaced.
func (s *Server) handleOverlaysPartial(w http.ResponseWriter, r *http.Request) {
	s.respondOverlays(w, r)
}

// handleThemeToggle switches to the next theme and asks the browser to reload
func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	theme := nextTheme(s.getTheme(r))
	http.SetCookie(w, &http.Cookie{
		Name:     "theme",
		Value:    theme.String(),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60, // 1 year
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("HX-Refresh", "true")
	w.WriteHeader(http.StatusOK)
}

// handleToastDismiss closes the toast
func (s *Server) handleToastDismiss(w http.ResponseWriter, r *http.Request) {
	s.toasts.Dismiss(r.PathValue("id"))
	s.respondOverlays(w, r)
}

// handleDialogResolve confirms or dismisses the dialog, form values are passed to the waiting action
func (s *Server) handleDialogResolve(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	var err error
	if r.PostForm.Get("action") == "confirm" {
		values := map[string][]string{}
		for k, v := range r.PostForm {
			if k != "action" {
				values[k] = v
			}
		}
		err = s.dialogs.Resolve(id, dialog.Response{Confirmed: true, Values: values})
	} else {
		err = s.dialogs.Dismiss(id)
	}
	if errors.Is(err, dialog.ErrNotFound) {
		log.Printf("[DEBUG] dialog %s already closed", id)
	}

	s.waitIdle(s.actionWait)
	s.respondCurrent(w, r)
}

// handleQueueScroll passes scroll metrics of a queue list to its scroll trigger
func (s *Server) handleQueueScroll(w http.ResponseWriter, r *http.Request) {
	var req struct {
		List string `json:"list"`
		queue.ScrollMetrics
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid scroll metrics", http.StatusBadRequest)
		return
	}
	pg, _ := s.pages.currentQueue()
	if pg == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	switch req.List {
	case "creation":
		pg.Creation().OnScroll(req.ScrollMetrics)
	case "analysis":
		pg.Analysis().OnScroll(req.ScrollMetrics)
	default:
		http.Error(w, "Unknown list", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// respondCurrent renders fragments of the mounted page
func (s *Server) respondCurrent(w http.ResponseWriter, r *http.Request) {
	if pg, _ := s.pages.currentQueue(); pg != nil {
		s.respondQueue(w, r)
		return
	}
	if wz, _ := s.pages.currentSetup(); wz != nil {
		s.respondSetup(w, r)
		return
	}
	s.respondOverlays(w, r)
}

// respondQueue renders out-of-band queue fragments with overlays
func (s *Server) respondQueue(w http.ResponseWriter, r *http.Request) {
	pg, _ := s.pages.currentQueue()
	if pg == nil {
		s.redirectTo(w, s.router.Location().String())
		return
	}
	if s.leave(w, r, nav.QueuePath) {
		return
	}
	data := s.newTemplateData(r, "queue")
	data.Queue = newQueueView(pg)
	data.IsOOB = true
	data.SkipDialogs = s.dialogsShown(r, data.Dialogs)
	s.render(w, "partials", "queue-oob", data)
}

// respondSetup renders the setup body with overlays
func (s *Server) respondSetup(w http.ResponseWriter, r *http.Request) {
	wz, _ := s.pages.currentSetup()
	if wz == nil {
		s.redirectTo(w, s.router.Location().String())
		return
	}
	if s.leave(w, r, nav.SetupPath) {
		return
	}
	data := s.newTemplateData(r, "setup")
	data.Setup = newSetupView(wz, s.accounts.Available())
	data.Busy = s.busy()
	data.IsOOB = true
	data.SkipDialogs = s.dialogsShown(r, data.Dialogs)
	s.render(w, "partials", "setup-oob", data)
}

func (s *Server) respondOverlays(w http.ResponseWriter, r *http.Request) {
	data := s.newTemplateData(r, "")
	data.IsOOB = true
	data.SkipDialogs = s.dialogsShown(r, data.Dialogs)
	s.render(w, "partials", "overlays-oob", data)
}

// leave redirects the browser when the router moved away from the page, true if redirected.
// Full page requests get http redirect, HTMX requests get HX-Redirect.
func (s *Server) leave(w http.ResponseWriter, r *http.Request, page string) bool {
	loc := s.router.Location()
	if loc.Path == page {
		if isHTMX(r) {
			w.Header().Set("HX-Replace-Url", loc.String())
		}
		return false
	}
	log.Printf("[DEBUG] leave %s for %s", page, loc)
	if isHTMX(r) {
		s.redirectTo(w, loc.String())
		return true
	}
	http.Redirect(w, r, loc.String(), http.StatusFound)
	return true
}

func (s *Server) redirectTo(w http.ResponseWriter, location string) {
	w.Header().Set("HX-Redirect", location)
	w.WriteHeader(http.StatusOK)
}

// dialogsShown reports whether the polling browser already shows exactly the pending dialogs
func (s *Server) dialogsShown(r *http.Request, pending []dialog.Request) bool {
	if r.Method != http.MethodGet || !r.URL.Query().Has("shown") {
		return false
	}
	ids := make([]string, 0, len(pending))
	for _, d := range pending {
		ids = append(ids, d.ID)
	}
	return r.URL.Query().Get("shown") == strings.Join(ids, ",")
}

// busy reports whether any action is still running
func (s *Server) busy() bool { return s.active.Load() > 0 }

// waitIdle waits up to timeout for running actions to finish
func (s *Server) waitIdle(timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for s.busy() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
}

func isHTMX(r *http.Request) bool { return r.Header.Get("HX-Request") == "true" }
