package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsInstrumentUsesRoutePattern(t *testing.T) {
	m := NewMetrics()

	r := chi.NewRouter()
	r.Use(m.Instrument)
	r.Get("/api/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/api/tasks/1", "/api/tasks/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	count := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/tasks/{id}", "404"))
	assert.Equal(t, float64(2), count)
}

func TestMetricsHandlerExposesCollectors(t *testing.T) {
	m := NewMetrics()
	m.Instrument(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.True(t, strings.Contains(body, "tasks_api_http_requests_total"))
	assert.Contains(t, body, `route="unmatched"`)
	assert.Contains(t, body, `status="200"`)
}
