package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "motoclub"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	RidesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rides_created_total",
		Help:      "Rides created by type.",
	}, []string{"type"})

	RidesModerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rides_moderated_total",
		Help:      "Admin moderation decisions by resulting status.",
	}, []string{"status"})

	RideTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ride_lifecycle_transitions_total",
		Help:      "Automatic ride status transitions.",
	}, []string{"to"})

	AchievementsAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "achievements_awarded_total",
		Help:      "Achievements newly granted by name.",
	}, []string{"achievement"})
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
