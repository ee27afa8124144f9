package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request counters for the public API.
var (
	productListRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scoopscore",
		Name:      "product_list_requests_total",
		Help:      "Product list requests served, by category and pricing mode.",
	}, []string{"category", "mode"})

	clickEvents = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "scoopscore",
		Name:      "click_events_total",
		Help:      "Product card clicks recorded for popularity sorting.",
	})

	rateLimitedRequests = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "scoopscore",
		Name:      "rate_limited_requests_total",
		Help:      "Requests rejected by the per-IP rate limiter.",
	})
)
