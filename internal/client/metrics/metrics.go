// Package metrics holds the client's Prometheus collectors. They live on a
// private registry so tests can build as many instances as they like.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/beautybook/internal/logging"
)

// Booking outcomes.
const (
	OutcomeSuccess           = "success"
	OutcomeClientFailed      = "client_failed"
	OutcomeAppointmentFailed = "appointment_failed"
	OutcomeInvalid           = "invalid"
	OutcomeFailed            = "failed"
)

type Metrics struct {
	Registry *prometheus.Registry

	RequestDuration    *prometheus.HistogramVec
	BookingSubmissions *prometheus.CounterVec
	AuthAttempts       *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "api_request_duration_seconds",
				Help:    "Duration of calls to the booking API",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2.5, 5},
			},
			[]string{"op", "status"},
		),
		BookingSubmissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "booking_submissions_total",
				Help: "Booking form submissions by outcome",
			},
			[]string{"outcome"},
		),
		AuthAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_attempts_total",
				Help: "Login and registration attempts by outcome",
			},
			[]string{"action", "outcome"},
		),
	}

	m.Registry.MustRegister(m.RequestDuration, m.BookingSubmissions, m.AuthAttempts)
	return m
}

// ObserveRequest records one API call. status 0 means the call never got
// a response. A nil receiver is a no-op.
func (m *Metrics) ObserveRequest(op string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(op, strconv.Itoa(status)).Observe(d.Seconds())
}

func (m *Metrics) Booking(outcome string) {
	if m == nil {
		return
	}
	m.BookingSubmissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Auth(action, outcome string) {
	if m == nil {
		return
	}
	m.AuthAttempts.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string, m *Metrics, logger logging.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	go func() {
		logger.Info(ctx, "metrics listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "metrics server stopped", "error", err)
		}
	}()
}
