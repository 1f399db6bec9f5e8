package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/robfig/cron/v3"
)

const (
	// validation limits
	minInterval   = 10 * time.Millisecond
	maxInterval   = 10 * time.Minute
	maxThreshold  = 10000.0
	maxDebounce   = 10 * time.Second
	maxAnalysis   = time.Hour
	minTTL        = time.Second
	maxMessageTTL = 24 * time.Hour
)

//go:generate go run ./internal/schema schema.json

//go:embed schema.json
var embeddedSchemaData []byte

// Verify checks the config values and the embedded schema it was generated from
func Verify(cfg *Config) error {
	var schema map[string]any
	if err := json.Unmarshal(embeddedSchemaData, &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}
	if err := validateFields(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func validateFields(cfg *Config) error {
	if cfg.Polling.Interval < minInterval || cfg.Polling.Interval > maxInterval {
		return fmt.Errorf("polling.interval must be between %v and %v", minInterval, maxInterval)
	}

	if cfg.Queue.ScrollThreshold < 0 || cfg.Queue.ScrollThreshold > maxThreshold {
		return fmt.Errorf("queue.scroll_threshold must be between 0 and %.0f", maxThreshold)
	}
	if cfg.Queue.ScrollDebounce < 0 || cfg.Queue.ScrollDebounce > maxDebounce {
		return fmt.Errorf("queue.scroll_debounce must be between 0 and %v", maxDebounce)
	}
	if cfg.Queue.LowBudgetPct <= 0 || cfg.Queue.LowBudgetPct > 100 {
		return fmt.Errorf("queue.low_budget_pct must be in (0, 100]")
	}
	if cfg.Queue.RequestDelay < 0 || cfg.Queue.RequestDelay > maxInterval {
		return fmt.Errorf("queue.request_delay must be between 0 and %v", maxInterval)
	}

	if _, err := cron.ParseStandard(cfg.Cycle.Spec); err != nil {
		return fmt.Errorf("invalid cycle.spec %q: %w", cfg.Cycle.Spec, err)
	}
	if _, err := cfg.Cycle.EpochTime(); err != nil {
		return fmt.Errorf("invalid cycle.epoch: %w", err)
	}

	if cfg.Analysis.Duration <= 0 || cfg.Analysis.Duration > maxAnalysis {
		return fmt.Errorf("analysis.duration must be between 0 and %v", maxAnalysis)
	}
	if cfg.Analysis.Tick <= 0 || cfg.Analysis.Tick > cfg.Analysis.Duration {
		return fmt.Errorf("analysis.tick must be positive and not exceed analysis.duration")
	}

	if cfg.Refresh.Spec != "" {
		if _, err := cron.ParseStandard(cfg.Refresh.Spec); err != nil {
			return fmt.Errorf("invalid refresh.spec %q: %w", cfg.Refresh.Spec, err)
		}
	}

	if cfg.UI.ToastTTL < minTTL || cfg.UI.ToastTTL > time.Hour {
		return fmt.Errorf("ui.toast_ttl must be between %v and %v", minTTL, time.Hour)
	}
	if cfg.UI.MessageTTL < minTTL || cfg.UI.MessageTTL > maxMessageTTL {
		return fmt.Errorf("ui.message_ttl must be between %v and %v", minTTL, maxMessageTTL)
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct, field names follow yaml tags
func GenerateSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{FieldNameTag: "yaml"}
	return r.Reflect(&Config{})
}
