// Kinograph - Movie Recommendation Service
// Copyright 2026 Kinograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kinograph/kinograph

// Package metrics exposes prometheus instrumentation for the API surface,
// the recommendation engine, and the rating store.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation computations by strategy",
		},
		[]string{"strategy"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Recommendation computation time in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"strategy"},
	)

	RecommendationResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_results_returned",
			Help:    "Number of results returned per recommendation call",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"strategy"},
	)

	EngineRebuilds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_rebuilds_total",
			Help: "Total number of recommendation engine rebuilds",
		},
	)

	// Rating store metrics
	RatingUpserts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratings_upserts_total",
			Help: "Total number of rating writes by operation",
		},
		[]string{"operation"}, // "inserted" or "updated"
	)

	RatingStoreSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rating_store_size",
			Help: "Current number of stored ratings",
		},
	)

	// WebSocket metrics
	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of connected websocket clients",
		},
	)

	WebSocketBroadcasts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_broadcasts_total",
			Help: "Total number of events broadcast to websocket clients",
		},
	)
)

// RecordAPIRequest tracks one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRecommendation tracks one recommendation computation.
func RecordRecommendation(strategy string, results int, duration time.Duration) {
	RecommendationRequests.WithLabelValues(strategy).Inc()
	RecommendationDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	RecommendationResults.WithLabelValues(strategy).Observe(float64(results))
}

// RecordRatingUpsert tracks one rating write and the new store size.
func RecordRatingUpsert(inserted bool, storeSize int) {
	op := "updated"
	if inserted {
		op = "inserted"
	}
	RatingUpserts.WithLabelValues(op).Inc()
	RatingStoreSize.Set(float64(storeSize))
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}
