package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PipelineCollector exposes Prometheus metrics for batch pipeline runs.
type PipelineCollector struct {
	registry      *prometheus.Registry
	stageDuration *prometheus.HistogramVec
	stageRecords  *prometheus.CounterVec
	stageErrors   *prometheus.CounterVec
	llmRequests   *prometheus.CounterVec
	llmLatency    *prometheus.HistogramVec
}

// NewPipelineCollector constructs a collector with default histograms/counters.
func NewPipelineCollector() (*PipelineCollector, error) {
	registry := prometheus.NewRegistry()

	stageDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "leo",
		Subsystem: "pipeline",
		Name:      "stage_duration_seconds",
		Help:      "Latency distribution for pipeline stages.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
	}, []string{"stage"})

	stageRecords := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "leo",
		Subsystem: "pipeline",
		Name:      "stage_records_total",
		Help:      "Records handled per pipeline stage, by outcome.",
	}, []string{"stage", "outcome"})

	stageErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "leo",
		Subsystem: "pipeline",
		Name:      "stage_errors_total",
		Help:      "Errors encountered per pipeline stage.",
	}, []string{"stage"})

	llmRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "leo",
		Subsystem: "llm",
		Name:      "requests_total",
		Help:      "Total LLM completions requested, by operation and status.",
	}, []string{"operation", "status"})

	llmLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "leo",
		Subsystem: "llm",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution for LLM completions.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	for _, c := range []prometheus.Collector{stageDuration, stageRecords, stageErrors, llmRequests, llmLatency} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return &PipelineCollector{
		registry:      registry,
		stageDuration: stageDuration,
		stageRecords:  stageRecords,
		stageErrors:   stageErrors,
		llmRequests:   llmRequests,
		llmLatency:    llmLatency,
	}, nil
}

// Handler returns an HTTP handler for exposing Prometheus metrics.
func (c *PipelineCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveStage records one stage execution and its wall time.
func (c *PipelineCollector) ObserveStage(stage string, d time.Duration) {
	c.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordProcessed counts records a stage handled successfully.
func (c *PipelineCollector) RecordProcessed(stage string, n int) {
	c.stageRecords.WithLabelValues(stage, "processed").Add(float64(n))
}

// RecordSkipped counts records a stage dropped or filtered out.
func (c *PipelineCollector) RecordSkipped(stage string, n int) {
	c.stageRecords.WithLabelValues(stage, "skipped").Add(float64(n))
}

// RecordError counts one stage error.
func (c *PipelineCollector) RecordError(stage string) {
	c.stageErrors.WithLabelValues(stage).Inc()
}

// ObserveLLMRequest records one LLM completion attempt.
func (c *PipelineCollector) ObserveLLMRequest(operation, status string, d time.Duration) {
	c.llmRequests.WithLabelValues(operation, status).Inc()
	c.llmLatency.WithLabelValues(operation).Observe(d.Seconds())
}
