package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProbesTotal counts stream probes by outcome ("reachable" or "unreachable")
	ProbesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iptv_probes_total",
		Help: "Total number of stream probes by outcome",
	}, []string{"outcome"})

	// ProbeLatency observes the time to a 200 response for reachable streams
	ProbeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "iptv_probe_latency_seconds",
		Help:    "Time until a reachable stream answered",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	// SourceFetches counts source list fetches by outcome ("fetched", "cached" or "failed")
	SourceFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iptv_source_fetches_total",
		Help: "Total number of source list fetches by outcome",
	}, []string{"outcome"})

	// ChannelsPerGroup holds the size of each playlist group from the last run
	ChannelsPerGroup = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "iptv_playlist_channels",
		Help: "Number of channels per playlist group in the last generated playlist",
	}, []string{"group"})

	LastRunTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "iptv_last_run_timestamp_seconds",
		Help: "Unix time of the last completed aggregation run",
	})

	RunFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "iptv_run_failures_total",
		Help: "Total number of aggregation runs that failed to write the playlist",
	})
)

// RecordProbe counts one probe outcome and, for reachable streams, its latency
func RecordProbe(reachable bool, latency time.Duration) {
	if !reachable {
		ProbesTotal.WithLabelValues("unreachable").Inc()
		return
	}
	ProbesTotal.WithLabelValues("reachable").Inc()
	ProbeLatency.Observe(latency.Seconds())
}

// RecordSourceFetch increments the fetch counter for an outcome
func RecordSourceFetch(outcome string) {
	SourceFetches.WithLabelValues(outcome).Inc()
}

// SetChannelsPerGroup replaces the per-group gauges with counts
func SetChannelsPerGroup(counts map[string]int) {
	ChannelsPerGroup.Reset()
	for group, n := range counts {
		ChannelsPerGroup.WithLabelValues(group).Set(float64(n))
	}
}

// RecordRun stamps a completed run
func RecordRun(at time.Time) {
	LastRunTimestamp.Set(float64(at.Unix()))
}

// RecordRunFailure increments the failed run counter
func RecordRunFailure() {
	RunFailures.Inc()
}
