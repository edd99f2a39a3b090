package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ProbeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "kafka_monitor",
			Subsystem: "probe",
			Name:      "duration_seconds",
			Help:      "Connectivity probe duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"service"},
	)

	ChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kafka_monitor",
			Subsystem: "checks",
			Name:      "total",
			Help:      "Total number of health checks performed",
		},
		[]string{"service", "outcome"},
	)

	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kafka_monitor",
			Subsystem: "runs",
			Name:      "total",
			Help:      "Total number of evaluation runs",
		},
		[]string{"verdict"},
	)

	LastRunIssues = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "kafka_monitor",
			Subsystem: "runs",
			Name:      "last_issues",
			Help:      "Number of issues found by the most recent run",
		},
	)

	AlertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kafka_monitor",
			Subsystem: "alerts",
			Name:      "total",
			Help:      "Total number of alert delivery attempts",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(ProbeDuration, ChecksTotal, RunsTotal, LastRunIssues, AlertsTotal)
}
