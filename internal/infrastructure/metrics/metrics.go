package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Provider and engine metrics. HTTP request metrics live in the metrics
// middleware.
var (
	// QuoteFetches counts symbol quote lookups by outcome
	// (ok, cache, unknown, unavailable, error).
	QuoteFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tfsa_quote_fetches_total",
			Help: "Total symbol quote lookups by outcome",
		},
		[]string{"outcome"},
	)

	// FXFetches counts exchange rate lookups by outcome (ok, cache, error).
	FXFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tfsa_fx_fetches_total",
			Help: "Total exchange rate lookups by outcome",
		},
		[]string{"outcome"},
	)

	// ValuationCycles counts valuation refresh cycles by result
	// (resolved, partial, stale).
	ValuationCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tfsa_valuation_cycles_total",
			Help: "Total valuation refresh cycles by result",
		},
		[]string{"result"},
	)

	// SummariesComputed counts contribution summary computations.
	SummariesComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tfsa_summaries_computed_total",
		Help: "Total contribution summaries computed",
	})

	// QuoteFanoutSize observes the number of distinct symbols per
	// valuation cycle.
	QuoteFanoutSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tfsa_quote_fanout_size",
		Help:    "Distinct symbols queried per valuation cycle",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
	})
)
