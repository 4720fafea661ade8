package observability

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "test")

	m.Resolution(OutcomeMatched)
	m.Resolution(OutcomeMatched)
	m.Resolution(OutcomeFallback)
	m.Capture(CaptureDuplicate)
	m.ChatLogFailed()
	m.SetSessionsHeld(3)
	m.SessionEvicted()
	m.ObserveGenerationLatency(150 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Resolutions.WithLabelValues(OutcomeMatched)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resolutions.WithLabelValues(OutcomeFallback)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Captures.WithLabelValues(CaptureDuplicate)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChatLogFailures))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SessionsHeld))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsEvicted))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "test_resolutions_total")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.Resolution(OutcomeError)
	m.Capture(CaptureFailed)
	m.ChatLogFailed()
	m.SetSessionsHeld(1)
	m.SessionEvicted()
	m.ObserveGenerationLatency(time.Second)
	assert.NotNil(t, m.Handler())
}
