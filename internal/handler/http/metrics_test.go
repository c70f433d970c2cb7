package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"tldr-summary/internal/observability/metrics"
)

func TestMetricsMiddleware_RecordsNormalizedRoute(t *testing.T) {
	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/v1/platforms/{slug}/models", "200")
	before := testutil.ToFloat64(counter)

	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/platforms/openai/models", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestMetricsMiddleware_UnmatchedPath(t *testing.T) {
	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/other", "404")
	before := testutil.ToFloat64(counter)

	h := MetricsMiddleware(http.NotFoundHandler())
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/wp-admin/login.php", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestMetricsMiddleware_InFlightReturnsToZero(t *testing.T) {
	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		assert.Equal(t, float64(1), testutil.ToFloat64(httpRequestsInFlight))
		w.WriteHeader(http.StatusNoContent)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, float64(0), testutil.ToFloat64(httpRequestsInFlight))
}
