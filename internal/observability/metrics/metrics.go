// Package metrics exposes prometheus collectors for the HTTP surface and
// the document pipeline.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics tracks request counts and latencies per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "facturae",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests processed, partitioned by route and status.",
		}, []string{"method", "route", "status"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "facturae",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// GinMiddleware records request metrics for every handled route.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// PipelineMetrics tracks document generation outcomes.
type PipelineMetrics struct {
	Generated prometheus.Counter
	Skipped   prometheus.Counter
	Failed    *prometheus.CounterVec
}

func NewPipelineMetrics() *PipelineMetrics {
	return &PipelineMetrics{
		Generated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "facturae",
			Subsystem: "pipeline",
			Name:      "documents_generated_total",
			Help:      "Signed Factura-e documents produced.",
		}),
		Skipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "facturae",
			Subsystem: "pipeline",
			Name:      "documents_skipped_total",
			Help:      "Invoices skipped because a signed document already exists.",
		}),
		Failed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "facturae",
			Subsystem: "pipeline",
			Name:      "documents_failed_total",
			Help:      "Pipeline failures, partitioned by stage.",
		}, []string{"stage"}),
	}
}
