package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "guardiao_client",
			Name:      "requests_total",
			Help:      "Backend calls by resource, operation and outcome.",
		},
		[]string{"resource", "op", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "guardiao_client",
			Name:      "request_duration_seconds",
			Help:      "Latency of backend calls, including local precondition failures.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"resource", "op"},
	)
)

func observeRequest(resource, op, outcome string, elapsed time.Duration) {
	requestsTotal.WithLabelValues(resource, op, outcome).Inc()
	requestDuration.WithLabelValues(resource, op).Observe(elapsed.Seconds())
}
