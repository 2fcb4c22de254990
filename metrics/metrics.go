package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "murmur_registrations_total",
			Help: "Total number of registration attempts that reached the duplicate check",
		},
		[]string{"outcome"},
	)

	Logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "murmur_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"outcome"},
	)

	MessageOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "murmur_message_operations_total",
			Help: "Total number of successful message mutations",
		},
		[]string{"operation"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "murmur_http_request_duration_seconds",
			Help:    "Time taken to serve HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)
