package resources

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolveFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pebble_journal",
			Subsystem: "resources",
			Name:      "resolve_failures_total",
			Help:      "Signing-service calls that failed and degraded to an empty result.",
		},
	)

	downloadsSavedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pebble_journal",
			Subsystem: "resources",
			Name:      "downloads_saved_total",
			Help:      "Resource files fetched and written to disk.",
		},
	)

	downloadFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pebble_journal",
			Subsystem: "resources",
			Name:      "download_failures_total",
			Help:      "Individual resource fetches or writes that were skipped.",
		},
	)
)
