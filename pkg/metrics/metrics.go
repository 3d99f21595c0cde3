// Package metrics provides Prometheus metrics for the HTTP surface and the
// ingestion pipeline.
package metrics

import (
	"net/http"
	_ "net/http/pprof" // registers pprof endpoints on the default mux

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magicfolder/mfvault/pkg/configs"
)

var (
	// RequestCounter counts HTTP requests.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint"},
	)

	// RequestDuration observes HTTP request latency.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// IngestTotal counts finalize-ingest outcomes (ingested, duplicate, failed).
	IngestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vault_ingest_total",
			Help: "Total number of finalize-ingest calls by outcome",
		},
		[]string{"outcome"},
	)

	// DuplicateGroupsCreated counts duplicate groups created by reason.
	DuplicateGroupsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vault_duplicate_groups_created_total",
			Help: "Total number of duplicate groups created",
		},
		[]string{"reason"},
	)

	// AuditMismatches counts content hash mismatches found by the audit job.
	AuditMismatches = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vault_hash_audit_mismatches_total",
			Help: "Total number of content hash mismatches detected",
		},
	)

	// AuditChecked counts versions verified by the audit job.
	AuditChecked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vault_hash_audit_checked_total",
			Help: "Total number of versions verified by the hash audit",
		},
	)

	registry = prometheus.NewRegistry()
)

// InitMetrics registers the collectors. A no-op when metrics are disabled.
func InitMetrics(config configs.MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	if config.RuntimeMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	registry.MustRegister(
		RequestCounter,
		RequestDuration,
		IngestTotal,
		DuplicateGroupsCreated,
		AuditMismatches,
		AuditChecked,
	)

	return nil
}

// StartMetricsServer exposes /metrics (and optionally pprof) on the engine.
func StartMetricsServer(config configs.MetricsConfig, engine *gin.Engine) error {
	if !config.Enabled {
		return nil
	}

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	if config.Pprof {
		engine.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	}

	return nil
}

// GetRegistry returns the Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return registry
}
