package web

import (
	"fmt"

	log "github.com/go-pkgz/lgr"
	"github.com/robfig/cron/v3"
)

// startRefresh schedules periodic refresh, nil scheduler if refresh is disabled
func (s *Server) startRefresh() (*cron.Cron, error) {
	if s.refreshSpec == "" {
		log.Printf("[INFO] periodic refresh disabled")
		return nil, nil
	}
	scheduler := cron.New(cron.WithParser(s.parser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := scheduler.AddFunc(s.refreshSpec, s.refresh); err != nil {
		return nil, fmt.Errorf("failed to schedule refresh %q: %w", s.refreshSpec, err)
	}
	scheduler.Start()
	log.Printf("[INFO] periodic refresh scheduled, %s", s.refreshSpec)
	return scheduler, nil
}

// refresh drops expired toasts and messages, refetches accounts and the lists of the mounted queue page
func (s *Server) refresh() {
	s.toasts.Cleanup()
	s.messages.Cleanup()
	if s.ctx.Err() != nil {
		return
	}

	if err := s.accounts.Fetch(s.ctx); err != nil {
		log.Printf("[WARN] failed to refresh accounts: %v", err)
	}

	pg, ctx := s.pages.currentQueue()
	if pg == nil {
		return
	}
	log.Printf("[DEBUG] refresh queue lists")
	pg.Refresh(ctx)
}
