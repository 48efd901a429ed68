package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/sma-analytics-api/internal/dto"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry           *prometheus.Registry
	handler            http.Handler
	requestDuration    *prometheus.HistogramVec
	requestTotal       *prometheus.CounterVec
	storeQueryDuration *prometheus.HistogramVec
	storeQueryFailures *prometheus.CounterVec

	requestCount         uint64
	requestDurationTotal uint64
	storeQueryCount      uint64
	storeQueryTotal      uint64
	storeFailureCount    uint64

	now func() time.Time
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	storeQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "analytics_store_query_duration_seconds",
		Help:    "Duration of record store queries issued by analytics computations",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	storeQueryFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_store_query_failures_total",
		Help: "Record store queries that failed",
	}, []string{"query"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, storeQueryDuration, storeQueryFailures, goroutines)

	return &MetricsService{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		storeQueryDuration: storeQueryDuration,
		storeQueryFailures: storeQueryFailures,
		now:                time.Now,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveStoreQuery records record store query timing, counting failures separately.
func (m *MetricsService) ObserveStoreQuery(label string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.storeQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
	atomic.AddUint64(&m.storeQueryCount, 1)
	atomic.AddUint64(&m.storeQueryTotal, uint64(duration.Nanoseconds()))
	if err != nil {
		m.storeQueryFailures.WithLabelValues(label).Inc()
		atomic.AddUint64(&m.storeFailureCount, 1)
	}
}

// Snapshot returns aggregated metrics suitable for the system endpoint.
func (m *MetricsService) Snapshot() dto.SystemMetrics {
	if m == nil {
		return dto.SystemMetrics{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	queries := atomic.LoadUint64(&m.storeQueryCount)
	queryDuration := atomic.LoadUint64(&m.storeQueryTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	var avgQueryMs float64
	if queries > 0 {
		avgQueryMs = float64(queryDuration) / float64(queries) / float64(time.Millisecond)
	}

	return dto.SystemMetrics{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		StoreQueryCount:          queries,
		AverageStoreQueryMs:      avgQueryMs,
		StoreQueryFailures:       atomic.LoadUint64(&m.storeFailureCount),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              m.now().UTC(),
	}
}
