// Package metrics holds prometheus instrumentation for the HTTP layer and
// the search core.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// SearchFiltersDropped counts token filters dropped by the relaxation
	// loop when the storage layer rejects an intersection as too wide.
	SearchFiltersDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "persondex",
		Name:      "search_filters_dropped_total",
		Help:      "Token filters dropped during query relaxation",
	})

	// SearchIncomplete counts searches whose results may be incomplete
	// because the candidate fetch hit the batch cap.
	SearchIncomplete = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "persondex",
		Name:      "search_incomplete_total",
		Help:      "Searches with possibly incomplete results",
	})

	// TokensTruncated counts records whose token set exceeded the cap.
	TokensTruncated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "persondex",
		Name:      "index_tokens_truncated_total",
		Help:      "Person records with a truncated token set",
	})
)

// RegisterSearchMetrics registers the search core metrics explicitly
// (no init()), so the composition root controls registration.
func RegisterSearchMetrics() {
	prometheus.MustRegister(SearchFiltersDropped, SearchIncomplete, TokensTruncated)
}
