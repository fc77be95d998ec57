// Package metrics exposes Prometheus instrumentation for the recommendation
// engine and the ticket lifecycle.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendationRequests counts ranking runs, labeled by whether the
	// ticket was judged novel.
	RecommendationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "deskhive",
		Subsystem: "recommend",
		Name:      "requests_total",
		Help:      "Recommendation requests served, by novelty verdict.",
	}, []string{"novel"})

	// MaxSimilarity observes the pre-filter best match of each ranking
	// run as a fraction in [0,1].
	MaxSimilarity = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "deskhive",
		Subsystem: "recommend",
		Name:      "max_similarity",
		Help:      "Best similarity score per recommendation request.",
		Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
	})

	// AutoLearnedItems counts knowledge items created from manual
	// resolutions.
	AutoLearnedItems = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "deskhive",
		Subsystem: "knowledge",
		Name:      "auto_learned_total",
		Help:      "Knowledge items auto-learned from manual resolutions.",
	})

	// TicketTransitions counts lifecycle transitions by target status.
	TicketTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "deskhive",
		Subsystem: "tickets",
		Name:      "transitions_total",
		Help:      "Ticket lifecycle transitions, by resulting status.",
	}, []string{"status"})
)
