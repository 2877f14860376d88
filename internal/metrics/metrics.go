// Package metrics exposes Prometheus instrumentation for the recipe site.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flavorconnect_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flavorconnect_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "flavorconnect_http_active_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// Domain
	RecipesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flavorconnect_recipes_created_total",
			Help: "Total number of recipes created",
		},
	)

	RecipesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flavorconnect_recipes_deleted_total",
			Help: "Total number of recipes deleted",
		},
	)

	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flavorconnect_users_registered_total",
			Help: "Total number of user registrations",
		},
	)

	FavoritesToggled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flavorconnect_favorites_toggled_total",
			Help: "Favorite toggles by resulting state",
		},
		[]string{"action"}, // "added", "removed"
	)

	ReviewsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flavorconnect_reviews_submitted_total",
			Help: "Total number of ratings submitted",
		},
	)

	// Images
	ImageProcessingTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flavorconnect_image_processing_total",
			Help: "Recipe image processing runs by outcome",
		},
		[]string{"outcome"}, // "success", "failure"
	)

	ImageProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flavorconnect_image_processing_duration_seconds",
			Help:    "Time spent generating recipe image variants",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)
)

// RecordHTTPRequest records a finished request under its route pattern
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight requests
func TrackActiveRequest(inc bool) {
	if inc {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}

func RecordFavoriteToggle(favorited bool) {
	if favorited {
		FavoritesToggled.WithLabelValues("added").Inc()
	} else {
		FavoritesToggled.WithLabelValues("removed").Inc()
	}
}

func RecordImageProcessing(ok bool, duration time.Duration) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	ImageProcessingTotal.WithLabelValues(outcome).Inc()
	ImageProcessingDuration.Observe(duration.Seconds())
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
