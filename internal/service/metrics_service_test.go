package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	metrics := NewMetricsService()
	metrics.now = func() time.Time { return fixedNow }

	metrics.ObserveHTTPRequest(http.MethodGet, "/api/v1/analytics/grades", http.StatusOK, 20*time.Millisecond)
	metrics.ObserveHTTPRequest(http.MethodGet, "/api/v1/analytics/grades", http.StatusBadRequest, 40*time.Millisecond)
	metrics.ObserveStoreQuery("grades_by_class", 4*time.Millisecond, nil)
	metrics.ObserveStoreQuery("grades_by_class", 6*time.Millisecond, errors.New("boom"))

	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(2), snapshot.RequestsTotal)
	assert.InDelta(t, 30.0, snapshot.AverageRequestDurationMs, 0.001)
	assert.Equal(t, uint64(2), snapshot.StoreQueryCount)
	assert.InDelta(t, 5.0, snapshot.AverageStoreQueryMs, 0.001)
	assert.Equal(t, uint64(1), snapshot.StoreQueryFailures)
	assert.Equal(t, fixedNow, snapshot.GeneratedAt)
	assert.Greater(t, snapshot.Goroutines, 0)
}

func TestMetricsServiceHandlerExposesCollectors(t *testing.T) {
	metrics := NewMetricsService()
	metrics.ObserveStoreQuery("find_class", time.Millisecond, nil)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "analytics_store_query_duration_seconds"))
	assert.True(t, strings.Contains(body, `query="find_class"`))
}

func TestMetricsServiceNilIsSafe(t *testing.T) {
	var metrics *MetricsService
	metrics.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	metrics.ObserveStoreQuery("noop", time.Millisecond, nil)
	assert.Zero(t, metrics.Snapshot().RequestsTotal)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
