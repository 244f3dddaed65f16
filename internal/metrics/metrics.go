package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "showcase"

var (
	RenderTierTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_tier_total",
			Help:      "Total renders by the tier that produced the artifact.",
		},
		[]string{"tier"},
	)

	PublishTierTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_tier_total",
			Help:      "Total publishes by the tier that produced the location.",
		},
		[]string{"tier"},
	)

	PipelineRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Total pipeline runs by terminal outcome.",
		},
		[]string{"outcome"},
	)

	PipelineDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "End-to-end pipeline latency (seconds).",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)
)

func init() {
	prometheus.MustRegister(
		RenderTierTotal,
		PublishTierTotal,
		PipelineRunsTotal,
		PipelineDurationSeconds,
	)
}
