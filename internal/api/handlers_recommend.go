// Kinograph - Movie Recommendation Service
// Copyright 2026 Kinograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kinograph/kinograph

package api

import (
	"net/http"
	"time"

	"github.com/kinograph/kinograph/internal/metrics"
	"github.com/kinograph/kinograph/internal/recommend"
)

// Recommendation strategies accepted by the recommendations endpoint.
const (
	StrategyUser    = "user"
	StrategyItem    = "item"
	StrategyContent = "content"
	StrategyHybrid  = "hybrid"
)

// Recommendations handles per-user recommendation requests.
//
// Query parameters:
//   - strategy: user | item | content | hybrid (default hybrid)
//   - limit: result count, clamped by the engine to its configured maximum
//
// Users with no ratings get an empty list with 200, never an error.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	userID, err := urlParamInt(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "userID must be a positive integer", nil)
		return
	}

	strategy := r.URL.Query().Get("strategy")
	if strategy == "" {
		strategy = StrategyHybrid
	}
	limit := getIntParam(r, "limit", 0)

	engine := h.getEngine()

	var results []recommend.Result
	switch strategy {
	case StrategyUser:
		results = engine.UserBased(userID, limit)
	case StrategyItem:
		results = engine.ItemBased(userID, limit)
	case StrategyContent:
		results = engine.ContentBased(userID, limit)
	case StrategyHybrid:
		results = engine.Hybrid(userID, limit)
	default:
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"strategy must be one of: user, item, content, hybrid", nil)
		return
	}

	metrics.RecordRecommendation(strategy, len(results), time.Since(started))

	respondSuccess(w, map[string]interface{}{
		"user_id":         userID,
		"strategy":        strategy,
		"recommendations": results,
		"count":           len(results),
	}, started)
}

// RecommendationSections returns all four strategy lists in one payload,
// sized for the frontend's recommendation tab.
func (h *Handler) RecommendationSections(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	userID, err := urlParamInt(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "userID must be a positive integer", nil)
		return
	}

	sectionLimit := h.config.API.SectionLimit
	limit := getIntParam(r, "limit", sectionLimit)

	engine := h.getEngine()

	sections := map[string][]recommend.Result{
		StrategyHybrid:  engine.Hybrid(userID, limit),
		StrategyUser:    engine.UserBased(userID, limit),
		StrategyItem:    engine.ItemBased(userID, limit),
		StrategyContent: engine.ContentBased(userID, limit),
	}

	for strategy, results := range sections {
		metrics.RecordRecommendation(strategy, len(results), time.Since(started))
	}

	respondSuccess(w, map[string]interface{}{
		"user_id":  userID,
		"sections": sections,
	}, started)
}
