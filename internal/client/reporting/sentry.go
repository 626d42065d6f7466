// Package reporting forwards failures that need a human to Sentry. Without a
// DSN every call is a no-op.
package reporting

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// Reporter captures errors with extra context.
type Reporter interface {
	Capture(err error, extra map[string]any)
	Flush()
}

type nopReporter struct{}

func (nopReporter) Capture(error, map[string]any) {}
func (nopReporter) Flush()                        {}

// Nop discards everything.
func Nop() Reporter { return nopReporter{} }

type sentryReporter struct {
	hub *sentry.Hub
}

// NewSentry initialises the Sentry SDK. An empty dsn yields Nop.
func NewSentry(dsn, environment, release string) (Reporter, error) {
	if dsn == "" {
		return Nop(), nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     release,
	})
	if err != nil {
		return nil, fmt.Errorf("sentry initialization failed: %w", err)
	}

	return &sentryReporter{hub: sentry.CurrentHub()}, nil
}

func (r *sentryReporter) Capture(err error, extra map[string]any) {
	r.hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range extra {
			scope.SetExtra(k, v)
		}
		r.hub.CaptureException(err)
	})
}

// Flush waits for buffered events before the program terminates.
func (r *sentryReporter) Flush() {
	r.hub.Flush(2 * time.Second)
}
