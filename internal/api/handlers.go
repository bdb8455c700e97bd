// Kinograph - Movie Recommendation Service
// Copyright 2026 Kinograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kinograph/kinograph

package api

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kinograph/kinograph/internal/catalog"
	"github.com/kinograph/kinograph/internal/config"
	"github.com/kinograph/kinograph/internal/logging"
	"github.com/kinograph/kinograph/internal/metrics"
	"github.com/kinograph/kinograph/internal/ratings"
	"github.com/kinograph/kinograph/internal/recommend"
	ws "github.com/kinograph/kinograph/internal/websocket"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor, engine lifecycle (this file)
//   - handlers_helpers.go: Shared helper functions
//   - handlers_health.go: Health/monitoring endpoints
//   - handlers_movies.go: Catalog endpoints
//   - handlers_ratings.go: Rating endpoints
//   - handlers_recommend.go: Recommendation endpoints
type Handler struct {
	catalog   *catalog.Catalog
	store     *ratings.Store
	config    *config.Config
	wsHub     *ws.Hub
	startTime time.Time

	// engine is replaced wholesale after every rating change. The mutex
	// only guards the pointer swap; engines themselves are immutable.
	mu     sync.RWMutex
	engine *recommend.Engine
}

// NewHandler creates a new API handler and builds the initial
// recommendation engine from the store's current ratings.
func NewHandler(cat *catalog.Catalog, store *ratings.Store, cfg *config.Config, wsHub *ws.Hub) (*Handler, error) {
	h := &Handler{
		catalog:   cat,
		store:     store,
		config:    cfg,
		wsHub:     wsHub,
		startTime: time.Now(),
	}
	if err := h.rebuildEngine(); err != nil {
		return nil, fmt.Errorf("build recommendation engine: %w", err)
	}
	return h, nil
}

// rebuildEngine constructs a fresh engine over the store's current ratings
// and swaps it in atomically. Called at startup and after every upsert.
func (h *Handler) rebuildEngine() error {
	var cfg *recommend.Config
	if h.config != nil {
		cfg = &h.config.Recommend
	}

	engine, err := recommend.NewEngine(h.catalog.Items(), h.store.All(), cfg, logging.Logger())
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.engine = engine
	h.mu.Unlock()

	metrics.EngineRebuilds.Inc()
	return nil
}

// getEngine returns the current engine under the read lock.
func (h *Handler) getEngine() *recommend.Engine {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.engine
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout against slow clients.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Legitimate browser WebSockets always include Origin. Allowing an
	// empty Origin would bypass CORS entirely.
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	// If config is nil, allow by default (fail open for tests/development)
	if h.config == nil {
		return true
	}

	for _, allowedOrigin := range h.config.Security.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// WebSocket handles WebSocket upgrade requests for the /ws endpoint.
// Connected clients receive ratings_changed notifications.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "WebSocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}
