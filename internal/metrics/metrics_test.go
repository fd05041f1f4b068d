package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/alejandrodnm/rebalancer/internal/metrics"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Get("/v1/positions/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/v1/positions/{id}", "418"))
	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/positions/"+id, nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}
	after := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/v1/positions/{id}", "418"))
	assert.Equal(t, 2.0, after-before)
}

func TestObserveUpstream_StatusLabel(t *testing.T) {
	okBefore := testutil.ToFloat64(metrics.UpstreamRequestsTotal.WithLabelValues("metrics-test", "200"))
	errBefore := testutil.ToFloat64(metrics.UpstreamRequestsTotal.WithLabelValues("metrics-test", "error"))

	metrics.ObserveUpstream("metrics-test", http.StatusOK, 10*time.Millisecond)
	metrics.ObserveUpstream("metrics-test", 0, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.UpstreamRequestsTotal.WithLabelValues("metrics-test", "200"))-okBefore)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.UpstreamRequestsTotal.WithLabelValues("metrics-test", "error"))-errBefore)
}

func TestObserveCache(t *testing.T) {
	before := testutil.ToFloat64(metrics.CacheLookupsTotal.WithLabelValues("metrics-test", "hit"))
	metrics.ObserveCache("metrics-test", true)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookupsTotal.WithLabelValues("metrics-test", "hit"))-before)
}
