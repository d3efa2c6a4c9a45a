package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsHandlerRecordsMetrics(t *testing.T) {
	assert := require.New(t)
	registry := prometheus.NewRegistry()
	metrics, err := NewHTTPMetrics(HTTPMetricsOptions{Registerer: registry})
	assert.Nil(err)

	router := chi.NewRouter()
	router.Use(metrics.Handler)
	router.Post("/register", func(rw http.ResponseWriter, r *http.Request) {
		http.Redirect(rw, r, "/", http.StatusSeeOther)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/register", nil))
	assert.Equal(http.StatusSeeOther, rec.Code)

	labels := prometheus.Labels{"method": http.MethodPost, "route": "/register", "status": "303"}
	assert.Equal(1.0, testutil.ToFloat64(metrics.Requests.With(labels)))
	assert.Equal(0.0, testutil.ToFloat64(metrics.InFlight))
	assert.NotZero(testutil.CollectAndCount(metrics.Duration))
}

func TestHTTPMetricsReusesRegisteredCollectors(t *testing.T) {
	assert := require.New(t)
	registry := prometheus.NewRegistry()

	first, err := NewHTTPMetrics(HTTPMetricsOptions{Registerer: registry})
	assert.Nil(err)
	second, err := NewHTTPMetrics(HTTPMetricsOptions{Registerer: registry})
	assert.Nil(err)
	assert.Same(first.Requests, second.Requests)
}

func TestHTTPMetricsHandlerNoopWhenNil(t *testing.T) {
	router := chi.NewRouter()
	router.Use((*HTTPMetrics)(nil).Handler)
	router.Get("/ping", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
