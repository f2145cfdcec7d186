// Package metrics defines the Prometheus instruments exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tradefair"

var (
	// HTTPRequestDuration observes request latency per route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route and status code.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// ShedAllocations counts allocation attempts by outcome
	// (allocated, domain_full, unknown_domain, error).
	ShedAllocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shed_allocations_total",
			Help:      "Shed allocation attempts by outcome.",
		},
		[]string{"outcome"},
	)

	// PreorderTransitions counts preorder lifecycle events
	// (created, confirmed, cancelled).
	PreorderTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preorder_transitions_total",
			Help:      "Preorder lifecycle transitions.",
		},
		[]string{"transition"},
	)

	// Payments counts payment events by kind and status.
	Payments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_total",
			Help:      "Payment events by kind and resulting status.",
		},
		[]string{"kind", "status"},
	)
)
