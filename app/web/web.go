// Package web implements the web console of AdMax: the queue and setup pages rendered with
// html templates and refreshed with HTMX partials, actions, dialogs and a JSON status api.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/robfig/cron/v3"

	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/dialog"
	"github.com/umputun/admax/app/enums"
	"github.com/umputun/admax/app/nav"
	"github.com/umputun/admax/app/notify"
	"github.com/umputun/admax/app/queue"
	"github.com/umputun/admax/app/setup"
)

//go:embed templates/*.html templates/partials/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Router is the console router synced with page requests
type Router interface {
	nav.Router
	Sync(loc nav.Location)
}

// Dialogs keeps dialogs waiting for the user
type Dialogs interface {
	Pending() []dialog.Request
	Resolve(id string, resp dialog.Response) error
	Dismiss(id string) error
	DismissAll()
}

// Toasts keeps short messages shown to the user
type Toasts interface {
	Toasts() []notify.Toast
	Dismiss(id string)
	Cleanup()
}

// Messages keeps hand-off messages for external pages
type Messages interface {
	Get(id string) (nav.Message, bool)
	Cleanup()
}

// Accounts is the ad account directory, refetched by the refresh schedule
type Accounts interface {
	Fetch(ctx context.Context) error
	Available() []api.MetaAccount
}

// Server represents the web console
type Server struct {
	router      Router
	dialogs     Dialogs
	toasts      Toasts
	messages    Messages
	accounts    Accounts
	pages       *mounter
	templates   map[string]*template.Template
	parser      cron.Parser
	refreshSpec string
	pollEvery   time.Duration
	actionWait  time.Duration
	hostname    string
	version     string
	actionLimit float64

	ctx    context.Context // parent of all mounts and actions, canceled by Close
	cancel context.CancelFunc
	actMu  sync.Mutex
	closed bool
	wg     sync.WaitGroup // running actions
	active atomic.Int32
	once   sync.Once
}

// Config holds server configuration
type Config struct {
	Router       Router
	Dialogs      Dialogs
	Toasts       Toasts
	Messages     Messages
	Accounts     Accounts
	NewQueue     func() *queue.Page  // makes the queue page controller on mount
	NewSetup     func() *setup.Wizard // makes the setup wizard on mount
	RefreshSpec  string              // cron spec of the queue refresh, empty disables
	PollInterval time.Duration       // partials polling interval of the browser
	ActionWait   time.Duration       // how long an action request waits for the result before rendering
	ActionLimit  float64             // max action requests per second per client, 0 means 10
	Hostname     string              // hostname to display in UI
	Version      string
}

// TemplateData holds data for templates
type TemplateData struct {
	Title       string
	Page        string // queue, setup or handoff
	Theme       enums.Theme
	Hostname    string
	Version     string
	FullVersion string
	CurrentYear int
	PollEvery   int // milliseconds
	Queue       *QueueView
	Setup       *SetupView
	Handoff     *HandoffView
	Dialogs     []dialog.Request
	Toasts      []notify.Toast
	SkipDialogs bool // browser already shows the pending dialogs
	Busy        bool // an action is still running
	IsOOB       bool
}

// New creates a new web console server
func New(cfg Config) (*Server, error) {
	switch {
	case cfg.Router == nil:
		return nil, errors.New("web server initialization failed: Router is required")
	case cfg.Dialogs == nil:
		return nil, errors.New("web server initialization failed: Dialogs is required")
	case cfg.Toasts == nil:
		return nil, errors.New("web server initialization failed: Toasts is required")
	case cfg.Messages == nil:
		return nil, errors.New("web server initialization failed: Messages is required")
	case cfg.Accounts == nil:
		return nil, errors.New("web server initialization failed: Accounts is required")
	case cfg.NewQueue == nil || cfg.NewSetup == nil:
		return nil, errors.New("web server initialization failed: page factories are required")
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if cfg.RefreshSpec != "" {
		if _, err := parser.Parse(cfg.RefreshSpec); err != nil {
			return nil, fmt.Errorf("web server initialization failed: invalid refresh spec %q: %w", cfg.RefreshSpec, err)
		}
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.ActionWait <= 0 {
		cfg.ActionWait = 300 * time.Millisecond
	}
	if cfg.ActionLimit <= 0 {
		cfg.ActionLimit = 10
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		router:      cfg.Router,
		dialogs:     cfg.Dialogs,
		toasts:      cfg.Toasts,
		messages:    cfg.Messages,
		accounts:    cfg.Accounts,
		parser:      parser,
		refreshSpec: cfg.RefreshSpec,
		pollEvery:   cfg.PollInterval,
		actionWait:  cfg.ActionWait,
		actionLimit: cfg.ActionLimit,
		hostname:    cfg.Hostname,
		version:     cfg.Version,
		ctx:         ctx,
		cancel:      cancel,
	}
	s.pages = newMounter(ctx, cfg.NewQueue, cfg.NewSetup, cfg.Dialogs)

	templates, err := s.parseTemplates()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("web server initialization failed: failed to parse HTML templates: %w", err)
	}
	s.templates = templates
	return s, nil
}

// Run starts the web server and the refresh schedule, blocks until ctx is canceled
func (s *Server) Run(ctx context.Context, address string) error {
	scheduler, err := s.startRefresh()
	if err != nil {
		return fmt.Errorf("web server failed: %w", err)
	}

	server := &http.Server{
		Addr:              address,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		if scheduler != nil {
			<-scheduler.Stop().Done()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] failed to shutdown server: %v", err)
		}
	}()

	log.Printf("[INFO] starting web server on %s", address)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.Close()
		return fmt.Errorf("web server failed: %w", err)
	}
	s.Close()
	return nil
}

// Close cancels running actions, waits for them and unmounts the page
func (s *Server) Close() {
	s.once.Do(func() {
		s.actMu.Lock()
		s.closed = true
		s.actMu.Unlock()
		s.cancel()
		s.wg.Wait()
		s.pages.unmount()
		log.Printf("[DEBUG] web server closed")
	})
}

// routes returns the http.Handler with all routes configured
func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())

	// global middleware - applied to all routes
	router.Use(
		rest.RealIP,
		rest.Recoverer(log.Default()),
		rest.Throttle(1000),
		rest.AppInfo("admax", "umputun", s.version),
		rest.Ping,
		rest.Trace,
		rest.SizeLimit(64*1024), // 64KB max request size
		logger.New(logger.Log(log.Default()), logger.Prefix("[DEBUG]")).Handler,
	)

	csrf := http.NewCrossOriginProtection()
	actionLimiter := tollbooth.NewLimiter(s.actionLimit, nil)
	actionLimiter.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr"})

	// pages
	router.HandleFunc("GET "+nav.QueuePath, s.handleQueuePage)
	router.HandleFunc("GET "+nav.SetupPath, s.handleSetupPage)
	router.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, nav.QueuePath, http.StatusFound)
	})
	router.NotFoundHandler(s.handleHandoffPage) // everything outside the console is handed off

	// HTMX endpoints
	router.Mount("/api").Route(func(api *routegroup.Bundle) {
		api.Use(rest.NoCache, csrf.Handler)

		api.HandleFunc("GET /queue", s.handleQueuePartial)
		api.HandleFunc("GET /setup", s.handleSetupPartial)
		api.HandleFunc("GET /overlays", s.handleOverlaysPartial)
		api.HandleFunc("POST /theme", s.handleThemeToggle)
		api.HandleFunc("POST /toasts/{id}/dismiss", s.handleToastDismiss)
		api.HandleFunc("POST /queue/scroll", s.handleQueueScroll)

		api.Group().Route(func(actions *routegroup.Bundle) {
			actions.Use(tollbooth.HTTPMiddleware(actionLimiter))
			actions.HandleFunc("POST /dialogs/{id}", s.handleDialogResolve)
			actions.HandleFunc("POST /queue/{action}", s.handleQueueAction)
			actions.HandleFunc("POST /queue/{kind}/{id}/{action}", s.handleQueueItemAction)
			actions.HandleFunc("POST /setup/{action}", s.handleSetupAction)
		})
	})

	// JSON API for programmatic access
	router.Mount("/api/v1").Route(func(api *routegroup.Bundle) {
		api.Use(rest.NoCache)
		api.HandleFunc("GET /status", s.handleAPIStatus)
		api.HandleFunc("GET /messages/{id}", s.handleAPIMessage)
	})

	fsys, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Printf("[ERROR] failed to create static file system: %v", err)
		router.Handle("GET /static/", http.FileServer(http.FS(staticFS)))
	} else {
		router.HandleFiles("/static/", http.FS(fsys))
	}

	return router
}

// render renders a template
func (s *Server) render(w http.ResponseWriter, page, tmplName string, data any) {
	tmpl, ok := s.templates[page]
	if !ok {
		log.Printf("[WARN] template %s not found", page)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, tmplName, data); err != nil {
		log.Printf("[WARN] failed to execute template: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[WARN] failed to write response: %v", err)
	}
}

// parseTemplates parses every page with the base layout and partials, and partials alone for HTMX.
// Partial files are named apart from page files, templates of the same set are keyed by file name.
func (s *Server) parseTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)

	funcMap := template.FuncMap{
		"humanTime":  s.humanTime,
		"money":      money,
		"percent":    percent,
		"truncate":   truncate,
		"stepTitle":  stepTitle,
		"tabTitle":   tabTitle,
		"hasValue":   hasValue,
		"campaignTp": campaignTitle,
	}

	for _, page := range []string{"queue", "setup", "handoff"} {
		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(templatesFS,
			"templates/base.html", "templates/"+page+".html", "templates/partials/*.html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", page, err)
		}
		templates[page] = tmpl
	}

	partials, err := template.New("partials").Funcs(funcMap).ParseFS(templatesFS, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse partials: %w", err)
	}
	templates["partials"] = partials
	return templates, nil
}

// newTemplateData creates a TemplateData with common fields populated from request
func (s *Server) newTemplateData(r *http.Request, page string) TemplateData {
	return TemplateData{
		Page:        page,
		Theme:       s.getTheme(r),
		Hostname:    s.hostname,
		Version:     shortVersion(s.version),
		FullVersion: s.version,
		CurrentYear: time.Now().Year(),
		PollEvery:   int(s.pollEvery / time.Millisecond),
		Dialogs:     s.dialogs.Pending(),
		Toasts:      s.toasts.Toasts(),
	}
}

func (s *Server) getTheme(r *http.Request) enums.Theme {
	cookie, err := r.Cookie("theme")
	if err != nil {
		return enums.ThemeAuto
	}
	theme, err := enums.ParseTheme(cookie.Value)
	if err != nil {
		log.Printf("[WARN] invalid theme %q: %v", cookie.Value, err)
		return enums.ThemeAuto
	}
	return theme
}

// nextTheme cycles light -> dark -> auto -> light
func nextTheme(current enums.Theme) enums.Theme {
	switch current {
	case enums.ThemeLight:
		return enums.ThemeDark
	case enums.ThemeDark:
		return enums.ThemeAuto
	default:
		return enums.ThemeLight
	}
}

// shortVersion extracts a short version string from full version,
// for "v1.7.0-abc1234-20241225" returns "v1.7.0"
func shortVersion(fullVer string) string {
	if fullVer == "" || fullVer == "unknown" {
		return fullVer
	}
	if idx := strings.Index(fullVer, "-"); idx > 0 {
		return fullVer[:idx]
	}
	return fullVer
}
