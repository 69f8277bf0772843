package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	recurringRulesProcessed *prometheus.CounterVec
	recurringBatchDuration  prometheus.Histogram
	receiptsIngested        *prometheus.CounterVec
	ingestionStageDuration  *prometheus.HistogramVec
	extractionFailures      *prometheus.CounterVec
	apiErrors               *prometheus.CounterVec
	circuitBreakerState     *prometheus.GaugeVec
	ledgerWrites            *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		recurringRulesProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recurring_rules_processed_total",
				Help: "Total recurring rules handled by batch runs, by outcome",
			},
			[]string{"outcome"},
		),
		recurringBatchDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "recurring_batch_duration_milliseconds",
				Help:    "Recurring processing batch duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		receiptsIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "receipts_ingested_total",
				Help: "Total receipts run through the ingestion pipeline, by status",
			},
			[]string{"status"},
		),
		ingestionStageDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ingestion_stage_duration_milliseconds",
				Help:    "Duration of individual ingestion pipeline stages in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 14),
			},
			[]string{"stage"},
		),
		extractionFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extraction_failures_total",
				Help: "Total OCR and text generation service failures",
			},
			[]string{"service"},
		),
		apiErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_errors_total",
				Help: "Total API errors by error code",
			},
			[]string{"code"},
		),
		circuitBreakerState: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Circuit breaker state per external service (0=closed, 1=open, 2=half-open)",
			},
			[]string{"service"},
		),
		ledgerWrites: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_writes_total",
				Help: "Total balance-affecting transaction writes, by origin",
			},
			[]string{"origin", "status"},
		),
	}
}

// IncrementCounter increments a named counter with the given tags
func (pm *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "recurring_rules_processed":
		pm.recurringRulesProcessed.With(prometheus.Labels{"outcome": tags["outcome"]}).Inc()
	case "receipts_ingested":
		pm.receiptsIngested.With(prometheus.Labels{"status": tags["status"]}).Inc()
	case "extraction_failures":
		pm.extractionFailures.With(prometheus.Labels{"service": tags["service"]}).Inc()
	case "api_errors":
		pm.apiErrors.With(prometheus.Labels{"code": tags["code"]}).Inc()
	case "ledger_writes":
		pm.ledgerWrites.With(prometheus.Labels{"origin": tags["origin"], "status": tags["status"]}).Inc()
	}
}

// RecordProcessingTime records a duration sample for a named histogram
func (pm *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	ms := float64(duration.Milliseconds())
	switch name {
	case "recurring_batch":
		pm.recurringBatchDuration.Observe(ms)
	case "ingestion_extract":
		pm.ingestionStageDuration.With(prometheus.Labels{"stage": "extract"}).Observe(ms)
	case "ingestion_structure":
		pm.ingestionStageDuration.With(prometheus.Labels{"stage": "structure"}).Observe(ms)
	case "ingestion_persist":
		pm.ingestionStageDuration.With(prometheus.Labels{"stage": "persist"}).Observe(ms)
	}
}

// RecordGauge records a gauge value with the given tags
func (pm *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	if name == "circuit_breaker_state" {
		pm.circuitBreakerState.With(prometheus.Labels{"service": tags["service"]}).Set(value)
	}
}

// NoOpMetrics is a metrics recorder that discards everything, for tests
type NoOpMetrics struct{}

func NewNoOpMetrics() MetricsRecorderInterface {
	return &NoOpMetrics{}
}

func (n *NoOpMetrics) IncrementCounter(name string, tags map[string]string) {}

func (n *NoOpMetrics) RecordProcessingTime(name string, duration time.Duration) {}

func (n *NoOpMetrics) RecordGauge(name string, value float64, tags map[string]string) {}
