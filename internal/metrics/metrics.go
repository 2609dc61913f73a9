// Package metrics provides Prometheus metrics for the digest pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "newsmann"

const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
	OutcomeSkipped  = "skipped"
)

var (
	// PipelineRuns counts pipeline runs by variant and final status.
	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Total number of pipeline runs",
		},
		[]string{"variant", "status"},
	)

	// PipelineDuration measures end-to-end run duration.
	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Duration of pipeline runs in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"variant"},
	)

	// StageItems counts per-item outcomes of each stage.
	StageItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_items_total",
			Help:      "Items processed by pipeline stage and outcome",
		},
		[]string{"stage", "outcome"},
	)

	// ModelCalls counts language model calls by client role.
	ModelCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_calls_total",
			Help:      "Total number of language model calls",
		},
		[]string{"client", "outcome"},
	)

	ModelCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_call_duration_seconds",
			Help:      "Duration of language model calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"client"},
	)

	// StoredArticles counts newly inserted articles.
	StoredArticles = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stored_articles_total",
			Help:      "Total number of newly stored articles",
		},
	)
)

func RecordRun(variant, status string, d time.Duration) {
	PipelineRuns.WithLabelValues(variant, status).Inc()
	PipelineDuration.WithLabelValues(variant).Observe(d.Seconds())
}

func RecordStageItem(stage, outcome string) {
	StageItems.WithLabelValues(stage, outcome).Inc()
}

func RecordModelCall(client, outcome string, d time.Duration) {
	ModelCalls.WithLabelValues(client, outcome).Inc()
	if d > 0 {
		ModelCallDuration.WithLabelValues(client).Observe(d.Seconds())
	}
}

func RecordStored(n int) {
	if n > 0 {
		StoredArticles.Add(float64(n))
	}
}
