package pipeline

import "github.com/prometheus/client_golang/prometheus"

var (
	entriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chartsync_entries_total",
			Help: "Chart entries processed, by platform and outcome",
		},
		[]string{"platform", "status"},
	)
	entryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chartsync_entry_duration_seconds",
			Help:    "Processing time per chart entry",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(entriesTotal, entryDuration)
}
