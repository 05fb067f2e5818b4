package httpapi

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "threat_analyzer_requests_total",
		Help: "Total HTTP requests by method, path, and response status.",
	}, []string{"method", "path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "threat_analyzer_request_duration_seconds",
		Help:    "Request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "threat_analyzer_analyses_total",
		Help: "Total analyses by content type and resulting severity.",
	}, []string{"type", "severity"})

	riskScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "threat_analyzer_risk_score",
		Help:    "Distribution of final risk scores.",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})
)

// PrometheusMiddleware returns a Gin middleware that records per-request metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		requestsTotal.WithLabelValues(method, path, status).Inc()
		requestDuration.WithLabelValues(method, path).Observe(duration)
	}
}

// MetricsHandler returns a Gin handler that serves Prometheus metrics.
func MetricsHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// RecordAnalysis records one completed analysis.
func RecordAnalysis(contentType, severity string, riskScore int) {
	analysesTotal.WithLabelValues(contentType, severity).Inc()
	riskScores.Observe(float64(riskScore))
}
