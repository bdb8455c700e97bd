// Kinograph - Movie Recommendation Service
// Copyright 2026 Kinograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kinograph/kinograph

package api

import (
	"net/http"
	"time"

	"github.com/kinograph/kinograph/internal/models"
)

// Version is the service version reported by the health endpoint.
const Version = "1.0.0"

// Health handles health check requests. The service is healthy when the
// catalog is loaded and a recommendation engine has been built.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	engine := h.getEngine()

	status := "healthy"
	if h.catalog == nil || h.catalog.Len() == 0 || engine == nil {
		status = "degraded"
	}

	data := map[string]interface{}{
		"status":        status,
		"version":       Version,
		"catalog_size":  h.catalog.Len(),
		"total_ratings": h.store.Len(),
		"uptime":        time.Since(h.startTime).Seconds(),
	}
	if engine != nil {
		data["known_users"] = engine.Snapshot().NumUsers()
	}
	if h.wsHub != nil {
		data["websocket_clients"] = h.wsHub.GetClientCount()
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 200 OK only if the service is ready to handle traffic.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := h.catalog != nil && h.catalog.Len() > 0 && h.getEngine() != nil

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"catalog_loaded": h.catalog != nil && h.catalog.Len() > 0,
			"engine_built":   h.getEngine() != nil,
			"ready_to_serve": ready,
			"uptime":         time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
