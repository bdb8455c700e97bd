// Kinograph - Movie Recommendation Service
// Copyright 2026 Kinograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kinograph/kinograph

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/kinograph/kinograph/internal/logging"
	"github.com/kinograph/kinograph/internal/metrics"
	"github.com/kinograph/kinograph/internal/models"
	"github.com/kinograph/kinograph/internal/recommend"
)

// UserRatings handles listing one user's ratings. Unknown users yield an
// empty list, not an error.
func (h *Handler) UserRatings(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	userID, err := urlParamInt(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "userID must be a positive integer", nil)
		return
	}

	userRatings := h.store.ForUser(userID)
	respondSuccess(w, map[string]interface{}{
		"user_id": userID,
		"ratings": userRatings,
		"count":   len(userRatings),
	}, started)
}

// RateMovie handles rating submissions. A successful upsert rebuilds the
// recommendation engine and broadcasts a ratings_changed event.
func (h *Handler) RateMovie(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req models.RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON", err)
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error:    apiErr,
		})
		return
	}

	if h.catalog.Get(req.MovieID) == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Movie not found", nil)
		return
	}

	inserted := h.store.Upsert(recommend.Rating{
		UserID: req.UserID,
		ItemID: req.MovieID,
		Score:  req.Rating,
	})
	metrics.RecordRatingUpsert(inserted, h.store.Len())

	if err := h.rebuildEngine(); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to rebuild recommendations", err)
		return
	}

	if h.wsHub != nil {
		h.wsHub.BroadcastRatingChanged(req.UserID, req.MovieID, req.Rating)
	}

	operation := "updated"
	if inserted {
		operation = "inserted"
	}
	logging.Ctx(r.Context()).Info().
		Int("user_id", req.UserID).
		Int("movie_id", req.MovieID).
		Int("rating", req.Rating).
		Str("operation", operation).
		Msg("rating stored")

	respondSuccess(w, models.RateResponse{
		Operation:    operation,
		TotalRatings: h.store.Len(),
	}, started)
}
