package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// catalogFetches counts snapshot downloads by category and outcome, so cache
// effectiveness and source flakiness show up on the same graph.
var catalogFetches = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "scoopscore",
	Name:      "catalog_fetches_total",
	Help:      "Catalog snapshot fetch attempts, by category and outcome.",
}, []string{"category", "outcome"})
