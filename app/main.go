package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/umputun/go-flags"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/umputun/admax/app/account"
	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/config"
	"github.com/umputun/admax/app/cycle"
	"github.com/umputun/admax/app/dialog"
	"github.com/umputun/admax/app/nav"
	"github.com/umputun/admax/app/notify"
	"github.com/umputun/admax/app/persist"
	"github.com/umputun/admax/app/queue"
	"github.com/umputun/admax/app/setup"
	"github.com/umputun/admax/app/web"
)

var opts struct {
	Config string `short:"c" long:"config" env:"ADMAX_CONFIG" description:"tuning config file (yaml), defaults if empty"`
	Schema bool   `long:"schema" description:"print json schema of the config file and exit"`

	API struct {
		URL        string        `long:"url" env:"URL" description:"AdMax service base url"`
		Token      string        `long:"token" env:"TOKEN" description:"service bearer token"`
		BrandID    string        `long:"brand" env:"BRAND" description:"brand id of the console"`
		Timeout    time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"request timeout"`
		Retries    int           `long:"retries" env:"RETRIES" default:"3" description:"attempts of GET requests"`
		RetryDelay time.Duration `long:"retry-delay" env:"RETRY_DELAY" default:"500ms" description:"initial retry delay"`
	} `group:"api" namespace:"api" env-namespace:"ADMAX_API"`

	State struct {
		Type     string `long:"type" env:"TYPE" choice:"file" choice:"sqlite" default:"file" description:"storage of the persisted ui state"`
		Location string `long:"location" env:"LOCATION" default:"var" description:"directory of the file storage"`
		DB       string `long:"db" env:"DB" default:"var/admax.db" description:"sqlite database file"`
	} `group:"state" namespace:"state" env-namespace:"ADMAX_STATE"`

	Web struct {
		Address     string        `long:"address" env:"ADDRESS" default:":8080" description:"listen address"`
		Poll        time.Duration `long:"poll" env:"POLL" default:"2s" description:"browser polling interval"`
		ActionWait  time.Duration `long:"action-wait" env:"ACTION_WAIT" default:"300ms" description:"how long an action request waits for the result"`
		ActionLimit float64       `long:"action-limit" env:"ACTION_LIMIT" default:"10" description:"max action requests per second per client"`
		HostName    string        `long:"host" env:"HOSTNAME" description:"host name shown in ui"`
	} `group:"web" namespace:"web" env-namespace:"ADMAX_WEB"`

	Notify struct {
		Timeout       time.Duration `long:"timeout" env:"TIMEOUT" default:"10s" description:"alert delivery timeout"`
		WebhookURLs   []string      `long:"webhook" env:"WEBHOOK" env-delim:"," description:"webhook url(s) of failure alerts"`
		SlackToken    string        `long:"slack-token" env:"SLACK_TOKEN" description:"slack token"`
		SlackChannels []string      `long:"slack-channel" env:"SLACK_CHANNEL" env-delim:"," description:"slack channel(s)"`
		TelegramToken string        `long:"telegram-token" env:"TELEGRAM_TOKEN" description:"telegram bot token"`
		TelegramChats []string      `long:"telegram-chat" env:"TELEGRAM_CHAT" env-delim:"," description:"telegram chat(s)"`
	} `group:"notify" namespace:"notify" env-namespace:"ADMAX_NOTIFY"`

	Log struct {
		Enabled         bool   `long:"enabled" env:"ENABLED" description:"write logs to file"`
		Filename        string `long:"filename" env:"FILENAME" default:"var/admax.log" description:"log file name"`
		MaxSize         int    `long:"max-size" env:"MAX_SIZE" default:"100" description:"max log file size in megabytes"`
		MaxBackups      int    `long:"max-backups" env:"MAX_BACKUPS" default:"7" description:"max number of old log files"`
		MaxAge          int    `long:"max-age" env:"MAX_AGE" default:"0" description:"max days to keep old log files"`
		EnabledCompress bool   `long:"compress" env:"COMPRESS" description:"compress rotated log files"`
	} `group:"log" namespace:"log" env-namespace:"ADMAX_LOG"`

	Dbg bool `long:"dbg" env:"DEBUG" description:"debug mode"`
}

var revision = "unknown"

func main() {
	fmt.Printf("admax %s\n", revision)

	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(2)
	}
	if opts.Schema {
		if err := printSchema(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "failed to print schema: %v\n", err)
			os.Exit(1)
		}
		return
	}
	setupLogs()

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	signals(cancel) // handle SIGQUIT and SIGTERM

	if err := run(ctx); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

// run wires the console and serves it until ctx is canceled
func run(ctx context.Context) error {
	if opts.API.URL == "" {
		return fmt.Errorf("service url is required, set --api.url or ADMAX_API_URL")
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	epoch, err := cfg.Cycle.EpochTime()
	if err != nil {
		return fmt.Errorf("bad cycle epoch: %w", err)
	}
	planner, err := cycle.NewPlanner(cfg.Cycle.Spec, epoch)
	if err != nil {
		return fmt.Errorf("bad cycle spec: %w", err)
	}

	storage, closeStorage, err := makeStorage()
	if err != nil {
		return err
	}
	defer closeStorage()
	persisted := persist.New(storage)

	client := api.New(api.Params{
		BaseURL:    opts.API.URL,
		Token:      opts.API.Token,
		BrandID:    opts.API.BrandID,
		Timeout:    opts.API.Timeout,
		Retries:    opts.API.Retries,
		RetryDelay: opts.API.RetryDelay,
	})

	notifier, err := notify.NewService(notify.Params{
		ToastTTL:      cfg.UI.ToastTTL,
		Timeout:       opts.Notify.Timeout,
		WebhookURLs:   opts.Notify.WebhookURLs,
		SlackToken:    opts.Notify.SlackToken,
		SlackChannels: opts.Notify.SlackChannels,
		TelegramToken: opts.Notify.TelegramToken,
		TelegramChats: opts.Notify.TelegramChats,
	})
	if err != nil {
		return fmt.Errorf("failed to make notifier: %w", err)
	}
	log.Printf("[INFO] notifier: %s", notifier)

	accounts := account.NewDirectory(client)
	if err := accounts.Fetch(ctx); err != nil {
		log.Printf("[WARN] failed to load ad accounts, %v", err) // refresh schedule retries
	}

	router := nav.NewMemoryRouter(nav.Location{Path: nav.QueuePath}, 100)
	messages := nav.NewMessages(cfg.UI.MessageTTL)
	dialogs := dialog.NewManager()
	brandID := func() string { return opts.API.BrandID }

	srv, err := web.New(web.Config{
		Router:   router,
		Dialogs:  dialogs,
		Toasts:   notifier,
		Messages: messages,
		Accounts: accounts,
		NewQueue: func() *queue.Page {
			return queue.NewPage(queue.PageParams{
				Backend:  client,
				Persist:  persisted,
				Accounts: accounts,
				Router:   router,
				Messages: messages,
				Dialogs:  dialogs,
				Toast:    notifier,
				Alerter:  notifier,
				BrandID:  brandID,
				Options: queue.Options{
					PollInterval:    cfg.Polling.Interval,
					LowBudgetPct:    cfg.Queue.LowBudgetPct,
					RequestDelay:    cfg.Queue.RequestDelay,
					ScrollDebounce:  cfg.Queue.ScrollDebounce,
					ScrollThreshold: cfg.Queue.ScrollThreshold,
					Planner:         planner,
				},
			})
		},
		NewSetup: func() *setup.Wizard {
			return setup.NewWizard(setup.WizardParams{
				Backend:  client,
				Persist:  persisted,
				Accounts: accounts,
				Router:   router,
				Toast:    notifier,
				Alerter:  notifier,
				BrandID:  brandID,
				Options: setup.Options{
					AnalysisDuration: cfg.Analysis.Duration,
					AnalysisTick:     cfg.Analysis.Tick,
					PollInterval:     cfg.Polling.Interval,
				},
			})
		},
		RefreshSpec:  cfg.Refresh.Spec,
		PollInterval: opts.Web.Poll,
		ActionWait:   opts.Web.ActionWait,
		ActionLimit:  opts.Web.ActionLimit,
		Hostname:     makeHostName(),
		Version:      revision,
	})
	if err != nil {
		return fmt.Errorf("failed to make web server: %w", err)
	}
	return srv.Run(ctx, opts.Web.Address)
}

// makeStorage returns storage of the persisted ui state and its close func
func makeStorage() (persist.Storage, func(), error) {
	switch opts.State.Type {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(opts.State.DB), 0o750); err != nil {
			return nil, nil, fmt.Errorf("failed to make state directory: %w", err)
		}
		db, err := persist.NewSQLiteStorage(opts.State.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open state db %s: %w", opts.State.DB, err)
		}
		log.Printf("[INFO] state stored in %s", opts.State.DB)
		return db, func() {
			if err := db.Close(); err != nil {
				log.Printf("[WARN] failed to close state db, %v", err)
			}
		}, nil
	default:
		fs := persist.NewFileStorage(opts.State.Location)
		log.Printf("[INFO] state stored in %s", fs)
		return fs, func() {}, nil
	}
}

// printSchema writes json schema of the config file
func printSchema(w io.Writer) error {
	data, err := config.GenerateSchema().MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func makeHostName() string {
	if opts.Web.HostName != "" {
		return opts.Web.HostName
	}
	host, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return host
}

// setupLogs configures logger and returns its destination, rotated file if logging to file is enabled
func setupLogs() io.Writer {
	var out io.Writer = os.Stdout
	if opts.Log.Enabled {
		out = &lumberjack.Logger{
			Filename:   opts.Log.Filename,
			MaxSize:    opts.Log.MaxSize,
			MaxBackups: opts.Log.MaxBackups,
			MaxAge:     opts.Log.MaxAge,
			Compress:   opts.Log.EnabledCompress,
		}
	}

	if opts.Dbg {
		log.Setup(log.Out(out), log.Err(out), log.Debug, log.Msec, log.CallerFunc, log.CallerPkg, log.CallerFile)
		return out
	}
	log.Setup(log.Out(out), log.Err(out), log.Msec)
	return out
}

func signals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	go func() {
		stacktrace := make([]byte, 8192)
		for sig := range sigChan {
			if sig == syscall.SIGQUIT { // catch SIGQUIT and print stack traces
				length := runtime.Stack(stacktrace, true)
				fmt.Println(string(stacktrace[:length]))
				continue
			}
			log.Printf("[WARN] %s signal, shutting down", sig)
			cancel() // terminate on SIGTERM and SIGINT
		}
	}()
	signal.Notify(sigChan, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
}
