package aggregate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsBySource = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mtlfest_source_events_total",
		Help: "Events contributed by each source across all collections.",
	}, []string{"source"})

	sourceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mtlfest_source_failures_total",
		Help: "Source fetches that failed entirely and contributed nothing.",
	}, []string{"source"})

	eventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mtlfest_events_dropped_total",
		Help: "Events rejected by the validity filter.",
	})

	fallbacksServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mtlfest_fallbacks_served_total",
		Help: "Collections that returned the static fallback list.",
	})
)
