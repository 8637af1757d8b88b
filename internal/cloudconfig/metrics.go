package cloudconfig

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	reloadResultApplied  = "applied"
	reloadResultRejected = "rejected"
)

var (
	reloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "exopolicy",
			Subsystem: "registry",
			Name:      "reloads_total",
			Help:      "Total number of configuration reloads by result",
		},
		[]string{"result"},
	)

	cloudsLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "exopolicy",
			Subsystem: "registry",
			Name:      "clouds",
			Help:      "Number of clouds in the active snapshot",
		},
	)

	lastAppliedTimestamp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "exopolicy",
			Subsystem: "registry",
			Name:      "last_applied_timestamp_seconds",
			Help:      "Unix time the active snapshot was applied",
		},
	)
)

func init() {
	prometheus.MustRegister(reloadsTotal, cloudsLoaded, lastAppliedTimestamp)
}

func recordReload(result string, s *Snapshot) {
	reloadsTotal.WithLabelValues(result).Inc()
	if s == nil {
		return
	}
	cloudsLoaded.Set(float64(s.Len()))
	lastAppliedTimestamp.Set(float64(s.LoadedAt().Unix()))
}
