package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAndHandler(t *testing.T) {
	m := New()

	m.AppShipped()
	m.AppShipped()
	m.NodeCompleted()
	m.GenerationJob("draft", "completed")
	m.Notification("system")
	m.RequestStarted()
	m.RecordHTTPRequest("GET", "/api/apps", "200", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.appsShipped))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.nodesCompleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generationJobs.WithLabelValues("draft", "completed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "orca_portfolio_apps_shipped_total 2")
	assert.Contains(t, rec.Body.String(), `orca_http_requests_total{method="GET",path="/api/apps",status="200"} 1`)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RequestStarted()
		m.RecordHTTPRequest("GET", "/", "200", time.Millisecond)
		m.AppShipped()
		m.NodeCompleted()
		m.GenerationJob("sector", "failed")
		m.Notification("ai")
	})
}
