// Package notify provides user facing toasts and external alerts.
// Toasts are kept for a short time and shown by the web console, alerts are delivered
// to webhook, slack or telegram destinations.
package notify

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	cache "github.com/go-pkgz/expirable-cache/v3"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/notify"
	"github.com/google/uuid"
)

//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports github.com/go-pkgz/notify Notifier

// Level of the toast
type Level string

// toast levels
const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Toast is a short message shown in the console
type Toast struct {
	ID        string
	Level     Level
	Text      string
	CreatedAt time.Time
}

// Params of the service
type Params struct {
	ToastTTL      time.Duration
	Timeout       time.Duration // alert delivery timeout
	WebhookURLs   []string
	SlackToken    string
	SlackChannels []string
	TelegramToken string
	TelegramChats []string
}

// Service records toasts and sends alerts
type Service struct {
	toasts       cache.Cache[string, Toast]
	notifiers    []notify.Notifier
	destinations []string
	timeout      time.Duration
}

// NewService makes service with notifiers for configured destinations
func NewService(p Params) (*Service, error) {
	if p.ToastTTL <= 0 {
		p.ToastTTL = 5 * time.Second
	}
	if p.Timeout <= 0 {
		p.Timeout = 10 * time.Second
	}
	res := &Service{
		toasts:  cache.NewCache[string, Toast]().WithTTL(p.ToastTTL).WithMaxKeys(100),
		timeout: p.Timeout,
	}

	if len(p.WebhookURLs) > 0 {
		res.notifiers = append(res.notifiers, notify.NewWebhook(notify.WebhookParams{Timeout: p.Timeout}))
		res.destinations = append(res.destinations, p.WebhookURLs...)
	}
	if p.SlackToken != "" && len(p.SlackChannels) > 0 {
		res.notifiers = append(res.notifiers, notify.NewSlack(p.SlackToken))
		for _, ch := range p.SlackChannels {
			res.destinations = append(res.destinations, "slack:"+strings.TrimPrefix(ch, "#"))
		}
	}
	if p.TelegramToken != "" && len(p.TelegramChats) > 0 {
		tg, err := notify.NewTelegram(notify.TelegramParams{Token: p.TelegramToken, Timeout: p.Timeout})
		if err != nil {
			return nil, fmt.Errorf("can't make telegram notifier: %w", err)
		}
		res.notifiers = append(res.notifiers, tg)
		for _, chat := range p.TelegramChats {
			res.destinations = append(res.destinations, "telegram:"+chat)
		}
	}
	return res, nil
}

// Success shows a success toast
func (s *Service) Success(text string) { s.add(LevelSuccess, text) }

// Error shows an error toast
func (s *Service) Error(text string) { s.add(LevelError, text) }

// Info shows an informational toast
func (s *Service) Info(text string) { s.add(LevelInfo, text) }

// Toasts returns active toasts, oldest first
func (s *Service) Toasts() []Toast {
	res := []Toast{}
	for _, k := range s.toasts.Keys() {
		if t, ok := s.toasts.Get(k); ok {
			res = append(res, t)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res
}

// Dismiss removes the toast
func (s *Service) Dismiss(id string) { s.toasts.Remove(id) }

// Cleanup drops expired toasts
func (s *Service) Cleanup() { s.toasts.DeleteExpired() }

// Alert sends text to all configured destinations. It does nothing if none configured.
func (s *Service) Alert(ctx context.Context, text string) error {
	if len(s.destinations) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var errs []error
	for _, dest := range s.destinations {
		if err := notify.Send(ctx, s.notifiers, dest, text); err != nil {
			errs = append(errs, fmt.Errorf("send to %s: %w", dest, err))
		}
	}
	return errors.Join(errs...)
}

// String lists notifiers
func (s *Service) String() string {
	names := make([]string, 0, len(s.notifiers))
	for _, n := range s.notifiers {
		names = append(names, n.String())
	}
	return fmt.Sprintf("notify: %d destination(s) via %s", len(s.destinations), strings.Join(names, ", "))
}

func (s *Service) add(level Level, text string) {
	t := Toast{ID: uuid.NewString(), Level: level, Text: text, CreatedAt: time.Now()}
	s.toasts.Add(t.ID, t)
	log.Printf("[DEBUG] toast %s: %s", level, text)
}
