package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hypergate_submissions_total",
		Help: "The total number of order submissions processed",
	}, []string{"status", "side"})

	DelegationGrants = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hypergate_delegation_grants_total",
		Help: "Total agent approvals sent to the exchange",
	})

	LatencyBucket = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hypergate_latency_bucket",
		Help:    "Request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
)
