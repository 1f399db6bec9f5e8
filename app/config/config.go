// Package config loads the optional yaml tuning file of the console.
// Every value has a default, the file overrides only what it sets.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

// EpochLayout is the date format of the cycle epoch
const EpochLayout = "2006-01-02"

// Config is the tuning of the console
type Config struct {
	Polling  Polling  `yaml:"polling" jsonschema:"description=remote task polling"`
	Queue    Queue    `yaml:"queue" jsonschema:"description=queue page behavior"`
	Cycle    Cycle    `yaml:"cycle" jsonschema:"description=weekly optimization cycle"`
	Analysis Analysis `yaml:"analysis" jsonschema:"description=setup analysis progress"`
	Refresh  Refresh  `yaml:"refresh" jsonschema:"description=periodic refetch of queue lists"`
	UI       UI       `yaml:"ui" jsonschema:"description=toasts and hand-off messages"`
}

// Polling of remote async tasks
type Polling struct {
	Interval time.Duration `yaml:"interval" jsonschema:"description=delay between task status fetches, e.g. 2s"`
}

// Queue page tuning
type Queue struct {
	ScrollThreshold float64       `yaml:"scroll_threshold" jsonschema:"description=distance from the bottom in px which loads the next page"`
	ScrollDebounce  time.Duration `yaml:"scroll_debounce" jsonschema:"description=debounce of scroll events"`
	LowBudgetPct    float64       `yaml:"low_budget_pct" jsonschema:"description=remaining testing budget percentage shown as low"`
	RequestDelay    time.Duration `yaml:"request_delay" jsonschema:"description=wait before reloading after creatives requested"`
}

// Cycle is the weekly optimization cycle schedule
type Cycle struct {
	Spec  string `yaml:"spec" jsonschema:"description=5-field cron spec of the cycle start"`
	Epoch string `yaml:"epoch,omitempty" jsonschema:"description=date of week 1 start as YYYY-MM-DD"`
}

// Analysis is the fake progress of the setup analysis
type Analysis struct {
	Duration time.Duration `yaml:"duration" jsonschema:"description=time the progress takes to walk all steps"`
	Tick     time.Duration `yaml:"tick" jsonschema:"description=progress update interval"`
}

// Refresh of the queue lists
type Refresh struct {
	Spec string `yaml:"spec" jsonschema:"description=cron spec or descriptor, e.g. @every 1m, empty disables"`
}

// UI timings
type UI struct {
	ToastTTL   time.Duration `yaml:"toast_ttl" jsonschema:"description=how long toasts are shown"`
	MessageTTL time.Duration `yaml:"message_ttl" jsonschema:"description=how long hand-off messages are kept"`
}

// Default returns the config used without a file
func Default() *Config {
	return &Config{
		Polling:  Polling{Interval: 2 * time.Second},
		Queue:    Queue{ScrollThreshold: 100, ScrollDebounce: 100 * time.Millisecond, LowBudgetPct: 30, RequestDelay: time.Second},
		Cycle:    Cycle{Spec: "0 0 * * 1"},
		Analysis: Analysis{Duration: 2 * time.Minute, Tick: time.Second},
		Refresh:  Refresh{Spec: "@every 1m"},
		UI:       UI{ToastTTL: 5 * time.Second, MessageTTL: 10 * time.Minute},
	}
}

// Load reads the file over defaults and verifies the result. Empty file name means defaults.
func Load(fname string) (*Config, error) {
	if fname == "" {
		return Default(), nil
	}
	fh, err := os.Open(fname) //nolint:gosec // config file name comes from cli
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", fname, err)
	}
	defer fh.Close() //nolint:errcheck // read only

	res, err := Parse(fh)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", fname, err)
	}
	log.Printf("[INFO] config loaded from %s", fname)
	return res, nil
}

// Parse decodes yaml over defaults, unknown fields are rejected
func Parse(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	res := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(res); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := Verify(res); err != nil {
		return nil, err
	}
	return res, nil
}

// EpochTime returns the parsed cycle epoch, zero time if not set
func (c Cycle) EpochTime() (time.Time, error) {
	if c.Epoch == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(EpochLayout, c.Epoch, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse epoch %q: %w", c.Epoch, err)
	}
	return t, nil
}
