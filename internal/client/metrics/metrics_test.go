package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingCounter(t *testing.T) {
	m := New()
	m.Booking(OutcomeSuccess)
	m.Booking(OutcomeSuccess)
	m.Booking(OutcomeAppointmentFailed)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingSubmissions.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingSubmissions.WithLabelValues(OutcomeAppointmentFailed)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BookingSubmissions.WithLabelValues(OutcomeClientFailed)))
}

func TestAuthCounter(t *testing.T) {
	m := New()
	m.Auth("login", OutcomeFailed)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthAttempts.WithLabelValues("login", OutcomeFailed)))
}

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest("list_salons", 200, 30*time.Millisecond)
	m.ObserveRequest("list_salons", 0, time.Second)

	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestDuration))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.Booking(OutcomeSuccess)
		m.Auth("login", OutcomeSuccess)
		m.ObserveRequest("ping", 200, time.Millisecond)
	})
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.Booking(OutcomeInvalid)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `booking_submissions_total{outcome="invalid"} 1`), body)
}
