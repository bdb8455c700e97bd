// Kinograph - Movie Recommendation Service
// Copyright 2026 Kinograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kinograph/kinograph

package api

import (
	"net/http"
	"time"

	"github.com/kinograph/kinograph/internal/catalog"
)

// Movies handles catalog listing requests.
//
// Query parameters:
//   - search: case-insensitive substring match on title, plot, and cast
//   - genres: comma-separated list; keeps movies with at least one match
//   - sort: title | year | rating
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	query := catalog.Query{
		Search: r.URL.Query().Get("search"),
		Genres: parseCommaSeparated(r.URL.Query().Get("genres")),
		Sort:   r.URL.Query().Get("sort"),
	}

	items, err := h.catalog.Search(query)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	respondSuccess(w, map[string]interface{}{
		"movies": items,
		"count":  len(items),
	}, started)
}

// MovieByID handles single movie lookups.
func (h *Handler) MovieByID(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	movieID, err := urlParamInt(r, "movieID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "movieID must be a positive integer", nil)
		return
	}

	movie := h.catalog.Get(movieID)
	if movie == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Movie not found", nil)
		return
	}

	respondSuccess(w, movie, started)
}

// Genres handles genre listing requests. Genres are returned sorted and
// deduplicated across the catalog.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	genres := h.catalog.Genres()
	respondSuccess(w, map[string]interface{}{
		"genres": genres,
		"count":  len(genres),
	}, started)
}
