// Kinograph - Movie Recommendation Service
// Copyright 2026 Kinograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kinograph/kinograph

// Package models holds the wire types shared by all HTTP endpoints.
package models

import "time"

// APIResponse is the standard response wrapper for every endpoint.
//
// Status is "success" or "error". Data carries the payload on success;
// Error is populated only on failure.
//
//	{
//	  "status": "success",
//	  "data": {"results": [...], "count": 8},
//	  "metadata": {"timestamp": "2026-08-29T12:00:00Z", "query_time_ms": 3}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries per-response observability fields.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is a structured error payload.
//
// Common codes: VALIDATION_ERROR, NOT_FOUND, RATE_LIMIT_EXCEEDED,
// INTERNAL_ERROR.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RateRequest is the POST /ratings body. Score uses the 1..5 scale.
type RateRequest struct {
	UserID  int `json:"user_id" validate:"required,min=1"`
	MovieID int `json:"movie_id" validate:"required,min=1"`
	Rating  int `json:"rating" validate:"required,min=1,max=5"`
}

// RateResponse reports the outcome of recording a rating.
type RateResponse struct {
	Operation    string `json:"operation"` // "inserted" or "updated"
	TotalRatings int    `json:"total_ratings"`
}

// RatingChangedEvent is broadcast to websocket clients after a rating is
// recorded, so connected UIs can refresh their recommendation lists.
type RatingChangedEvent struct {
	Type      string    `json:"type"` // always "ratings_changed"
	UserID    int       `json:"user_id"`
	MovieID   int       `json:"movie_id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}
