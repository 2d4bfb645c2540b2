// Package metrics exposes Prometheus collectors for the weighing stations.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path and status.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal counts HTTP requests by method, path and status.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// RegistrosTotal counts registered weighing records per station.
	RegistrosTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pesaje_registros_total",
			Help: "Total number of registered weighing records",
		},
		[]string{"estacion"},
	)

	// PesoNetoKilos observes the net weight of each registered record.
	PesoNetoKilos = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pesaje_peso_neto_kilos",
			Help:    "Net weight per registered record in kilograms",
			Buckets: []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		},
	)

	// LotesFinalizadosTotal counts finalization attempts per station and outcome.
	LotesFinalizadosTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pesaje_lotes_finalizados_total",
			Help: "Total number of lot finalization attempts",
		},
		[]string{"estacion", "resultado"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, status).Inc()
	}
}
