package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/dialog"
	"github.com/umputun/admax/app/enums"
	"github.com/umputun/admax/app/guard"
	"github.com/umputun/admax/app/nav"
	"github.com/umputun/admax/app/queue"
	"github.com/umputun/admax/app/setup"
)

// queueAction is an operation of the mounted queue page
type queueAction func(ctx context.Context, pg *queue.Page, r *http.Request) error

// setupAction is an operation of the mounted setup wizard
type setupAction func(ctx context.Context, wz *setup.Wizard, r *http.Request) error

var queueActions = map[string]queueAction{
	"tab": func(ctx context.Context, pg *queue.Page, r *http.Request) error {
		tab, err := enums.ParseTab(r.FormValue("tab"))
		if err != nil {
			return err
		}
		return pg.SetActiveTab(ctx, tab)
	},
	"account": func(_ context.Context, pg *queue.Page, r *http.Request) error {
		pg.SetSelectedAccountID(r.FormValue("account_id"))
		return nil
	},
	"own-creatives": func(ctx context.Context, pg *queue.Page, _ *http.Request) error {
		return pg.BringOwnCreatives(ctx)
	},
	"request-creatives": func(ctx context.Context, pg *queue.Page, _ *http.Request) error {
		return pg.RequestCreatives(ctx, "")
	},
	"add-rule": func(ctx context.Context, pg *queue.Page, r *http.Request) error {
		return pg.Knowledge().OpenAddRuleDialog(ctx, api.RuleType(r.FormValue("type")))
	},
	"instruct": func(ctx context.Context, pg *queue.Page, r *http.Request) error {
		return pg.Knowledge().OpenInstructDialog(ctx, r.FormValue("snapshot_id"))
	},
	"guard": func(ctx context.Context, pg *queue.Page, r *http.Request) error {
		return pg.PresentGuardDialog(ctx, pg.GuardResult(guard.Action(r.FormValue("action"))))
	},
	"refresh": func(ctx context.Context, pg *queue.Page, _ *http.Request) error {
		pg.Refresh(ctx)
		return nil
	},
}

var queueItemActions = map[string]map[string]func(ctx context.Context, pg *queue.Page, id string, r *http.Request) error{
	"creation": {
		"approve": func(ctx context.Context, pg *queue.Page, id string, r *http.Request) error {
			return pg.ApproveCreationItem(ctx, id, r.Form["job_id"])
		},
		"reject": func(ctx context.Context, pg *queue.Page, id string, _ *http.Request) error {
			item, ok := pg.Creation().Find(id)
			if !ok {
				return errNoItem
			}
			return pg.Creation().RejectItem(ctx, id, item.Title)
		},
		"request": func(ctx context.Context, pg *queue.Page, id string, _ *http.Request) error {
			return pg.RequestCreatives(ctx, id)
		},
	},
	"analysis": {
		"approve": func(ctx context.Context, pg *queue.Page, id string, _ *http.Request) error {
			return pg.Analysis().ApproveItem(ctx, id)
		},
		"reject": func(ctx context.Context, pg *queue.Page, id string, _ *http.Request) error {
			item, ok := pg.Analysis().Find(id)
			if !ok {
				return errNoItem
			}
			return pg.Analysis().RejectItem(ctx, id, item.Title)
		},
		"ad-metric": func(_ context.Context, pg *queue.Page, id string, _ *http.Request) error {
			item, ok := pg.Analysis().Find(id)
			if !ok {
				return errNoItem
			}
			pg.Analysis().NavigateToAdMetric(item)
			return nil
		},
		"campaign-metric": func(_ context.Context, pg *queue.Page, id string, _ *http.Request) error {
			item, ok := pg.Analysis().Find(id)
			if !ok {
				return errNoItem
			}
			pg.Analysis().NavigateToCampaignMetric(item)
			return nil
		},
	},
	"rule": {
		"approve": func(ctx context.Context, pg *queue.Page, id string, _ *http.Request) error {
			return pg.Knowledge().ApproveRule(ctx, id)
		},
		"decline": func(ctx context.Context, pg *queue.Page, id string, _ *http.Request) error {
			return pg.Knowledge().DeclineRule(ctx, id)
		},
		"open": func(ctx context.Context, pg *queue.Page, id string, _ *http.Request) error {
			return pg.Knowledge().OpenRuleDetail(ctx, id)
		},
	},
}

var setupActions = map[string]setupAction{
	"next": func(ctx context.Context, wz *setup.Wizard, _ *http.Request) error { return wz.Next(ctx) },
	"prev": func(ctx context.Context, wz *setup.Wizard, _ *http.Request) error { return wz.Prev(ctx) },
	"select-account": func(ctx context.Context, wz *setup.Wizard, r *http.Request) error {
		return wz.SelectAccount(ctx, r.FormValue("account_id"))
	},
	"add-product": func(ctx context.Context, wz *setup.Wizard, r *http.Request) error {
		return wz.AddProduct(ctx, strings.TrimSpace(r.FormValue("product_id")))
	},
	"remove-product": func(_ context.Context, wz *setup.Wizard, r *http.Request) error {
		wz.RemoveProduct(r.FormValue("id"))
		return nil
	},
	"add-competitor": func(ctx context.Context, wz *setup.Wizard, r *http.Request) error {
		return wz.AddCompetitor(ctx, strings.TrimSpace(r.FormValue("page_id")))
	},
	"remove-competitor": func(_ context.Context, wz *setup.Wizard, r *http.Request) error {
		wz.RemoveCompetitor(r.FormValue("id"))
		return nil
	},
	"skip-analysis": func(ctx context.Context, wz *setup.Wizard, _ *http.Request) error { return wz.SkipAnalysis(ctx) },
	"budget": func(_ context.Context, wz *setup.Wizard, r *http.Request) error {
		v, err := strconv.Atoi(r.FormValue("budget"))
		if err != nil {
			return err
		}
		wz.UpdateCampaignBudget(api.CampaignType(r.FormValue("type")), v)
		return nil
	},
	"percent": func(_ context.Context, wz *setup.Wizard, r *http.Request) error {
		v, err := strconv.Atoi(r.FormValue("percent"))
		if err != nil {
			return err
		}
		wz.UpdateCampaignPercent(api.CampaignType(r.FormValue("type")), v)
		return nil
	},
	"total": func(_ context.Context, wz *setup.Wizard, r *http.Request) error {
		v, err := strconv.Atoi(r.FormValue("total"))
		if err != nil {
			return err
		}
		wz.UpdateTotalBudget(v)
		return nil
	},
	"link": func(_ context.Context, wz *setup.Wizard, r *http.Request) error {
		var link *setup.CampaignLink
		if id := r.FormValue("campaign_id"); id != "" {
			link = &setup.CampaignLink{CampaignID: id, CampaignName: r.FormValue("campaign_name")}
		}
		wz.LinkCampaigns(map[api.CampaignType]*setup.CampaignLink{api.CampaignType(r.FormValue("type")): link})
		return nil
	},
	"save-structure": func(ctx context.Context, wz *setup.Wizard, _ *http.Request) error {
		return wz.SaveCampaignStructure(ctx)
	},
	"template": func(ctx context.Context, wz *setup.Wizard, r *http.Request) error {
		cfg := api.LaunchConfig{}
		for _, name := range launchFields {
			if v := strings.TrimSpace(r.FormValue(name)); v != "" {
				cfg[name] = v
			}
		}
		return wz.SubmitTemplateConfig(ctx, cfg)
	},
	"complete": func(ctx context.Context, wz *setup.Wizard, _ *http.Request) error { return wz.CompleteSetup(ctx) },
	"skip":     func(ctx context.Context, wz *setup.Wizard, _ *http.Request) error { return wz.SkipToQueue(ctx) },
	"answer": func(ctx context.Context, wz *setup.Wizard, r *http.Request) error {
		wz.SetUserInfoAnswer(r.FormValue("answer"))
		return wz.SubmitUserInfoAnswer(ctx)
	},
	"skip-questions": func(ctx context.Context, wz *setup.Wizard, _ *http.Request) error {
		return wz.SkipUserInfoStep(ctx)
	},
	"back-questions": func(ctx context.Context, wz *setup.Wizard, _ *http.Request) error {
		return wz.GoBackFromUserInfoStep(ctx)
	},
	"reload-questions": func(ctx context.Context, wz *setup.Wizard, _ *http.Request) error {
		wz.LoadUserInfoQuestions(ctx, true)
		return nil
	},
}

var errNoItem = errors.New("item not found")

// handleQueueAction runs a page level queue action
func (s *Server) handleQueueAction(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("action")
	action, ok := queueActions[name]
	if !ok && name != "resetup" {
		http.Error(w, "Unknown action", http.StatusNotFound)
		return
	}
	pg, ctx := s.pages.currentQueue()
	if pg == nil {
		s.redirectTo(w, nav.QueuePath)
		return
	}
	if name == "resetup" {
		// setup from scratch, the setup page bootstraps without the persisted progress
		pg.ClearSetupCache()
		s.router.Navigate(nav.SetupPath, nil, false)
		s.respondQueue(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	s.runAction(ctx, "queue "+name, func(ctx context.Context) error { return action(ctx, pg, r) })
	s.respondQueue(w, r)
}

// handleQueueItemAction runs an action on a creation, analysis or rule item
func (s *Server) handleQueueItemAction(w http.ResponseWriter, r *http.Request) {
	kind, id, name := r.PathValue("kind"), r.PathValue("id"), r.PathValue("action")
	action, ok := queueItemActions[kind][name]
	if !ok {
		http.Error(w, "Unknown action", http.StatusNotFound)
		return
	}
	pg, ctx := s.pages.currentQueue()
	if pg == nil {
		s.redirectTo(w, nav.QueuePath)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	s.runAction(ctx, kind+" "+name+" "+id, func(ctx context.Context) error { return action(ctx, pg, id, r) })
	s.respondQueue(w, r)
}

// handleSetupAction runs a setup wizard action
func (s *Server) handleSetupAction(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("action")
	action, ok := setupActions[name]
	if !ok {
		http.Error(w, "Unknown action", http.StatusNotFound)
		return
	}
	wz, ctx := s.pages.currentSetup()
	if wz == nil {
		s.redirectTo(w, nav.SetupPath)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	s.runAction(ctx, "setup "+name, func(ctx context.Context) error { return action(ctx, wz, r) })
	s.respondSetup(w, r)
}

// runAction runs the operation in background with the mount context, so it can outlive the request
// while waiting for a dialog or a remote task. The request waits up to actionWait for quick results.
func (s *Server) runAction(ctx context.Context, name string, fn func(ctx context.Context) error) {
	s.actMu.Lock()
	if s.closed {
		s.actMu.Unlock()
		return
	}
	s.wg.Add(1)
	s.active.Add(1)
	s.actMu.Unlock()

	done := make(chan struct{})
	go func() {
		defer s.wg.Done()
		defer s.active.Add(-1)
		defer close(done)
		err := fn(ctx)
		switch {
		case err == nil:
			log.Printf("[DEBUG] action %s done", name)
		case errors.Is(err, dialog.ErrDismissed), errors.Is(err, context.Canceled):
			log.Printf("[DEBUG] action %s canceled", name)
		default:
			log.Printf("[WARN] action %s failed: %v", name, err)
		}
	}()

	select {
	case <-done:
	case <-time.After(s.actionWait):
		log.Printf("[DEBUG] action %s is still running", name)
	}
}
