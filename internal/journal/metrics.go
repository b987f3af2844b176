package journal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	entriesAddedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pebble_journal",
			Name:      "entries_added_total",
			Help:      "Entries accepted into the journal.",
		},
	)

	entriesRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pebble_journal",
			Name:      "entries_rejected_total",
			Help:      "Payloads rejected during entry validation.",
		},
	)

	evictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pebble_journal",
			Name:      "evictions_total",
			Help:      "Oldest records dropped from a bounded log on overflow.",
		},
		[]string{"log"},
	)
)
