// Package monitoring handles Prometheus metrics collection for the
// analysis pipeline and the HTTP surface.
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Resolution tiers recorded per resolved food.
const (
	TierZeroCalorie = "zero_calorie"
	TierKnownFood   = "known_food"
	TierExternal    = "external"
	TierHeuristic   = "heuristic"
)

// Clamp kinds recorded when plausibility bounds kick in.
const (
	ClampOutlierRescale = "outlier_rescale"
	ClampFactorCap      = "factor_cap"
	ClampDishCeiling    = "dish_ceiling"
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	logger   *zap.Logger
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	analysesTotal         *prometheus.CounterVec
	lookupTierTotal       *prometheus.CounterVec
	clampAdjustmentsTotal *prometheus.CounterVec
	externalFailuresTotal *prometheus.CounterVec
}

// NewMetricsCollector creates a new metrics collector with its own registry
func NewMetricsCollector(logger *zap.Logger) *MetricsCollector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &MetricsCollector{
		logger:   logger,
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		analysesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meal_analyses_total",
				Help: "Total number of meal analyses by result type",
			},
			[]string{"result_type"},
		),
		lookupTierTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nutrition_lookup_tier_total",
				Help: "Which resolution tier answered each food lookup",
			},
			[]string{"tier"},
		),
		clampAdjustmentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "plausibility_clamp_total",
				Help: "Plausibility adjustments applied to lookup results",
			},
			[]string{"kind"},
		),
		externalFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_call_failures_total",
				Help: "Failed external collaborator calls, by service",
			},
			[]string{"service"},
		),
	}
}

// RecordAnalysis records a completed meal analysis
func (m *MetricsCollector) RecordAnalysis(resultType string) {
	m.analysesTotal.WithLabelValues(resultType).Inc()
}

// RecordLookupTier records which tier resolved a food lookup
func (m *MetricsCollector) RecordLookupTier(tier string) {
	m.lookupTierTotal.WithLabelValues(tier).Inc()
}

// RecordClamp records a plausibility adjustment
func (m *MetricsCollector) RecordClamp(kind string) {
	m.clampAdjustmentsTotal.WithLabelValues(kind).Inc()
}

// RecordExternalFailure records a failed external call
func (m *MetricsCollector) RecordExternalFailure(service string) {
	m.externalFailuresTotal.WithLabelValues(service).Inc()
}

// Handler returns the HTTP handler exposing the registry
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinMiddleware returns middleware that records HTTP metrics
func (m *MetricsCollector) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}
