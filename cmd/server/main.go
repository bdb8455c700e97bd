// Kinograph - Movie Recommendation Service
// Copyright 2026 Kinograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kinograph/kinograph

// Command server runs the Kinograph recommendation API.
//
// Startup order matters: configuration and logging come first, then the
// movie catalog and rating store, then the recommendation engine inside
// the API handler, and finally the supervision tree that owns the
// WebSocket hub and the HTTP server. Shutdown reverses this through
// context cancellation so in-flight requests drain before the process
// exits.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kinograph/kinograph/internal/api"
	"github.com/kinograph/kinograph/internal/catalog"
	"github.com/kinograph/kinograph/internal/config"
	"github.com/kinograph/kinograph/internal/logging"
	"github.com/kinograph/kinograph/internal/ratings"
	"github.com/kinograph/kinograph/internal/supervisor"
	"github.com/kinograph/kinograph/internal/supervisor/services"
	ws "github.com/kinograph/kinograph/internal/websocket"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "kinograph: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logging.Init(cfg.Logging)
	logger := logging.Logger()
	logger.Info().
		Str("version", api.Version).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting Kinograph")

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	store, err := ratings.Load(cfg.Ratings.Path)
	if err != nil {
		return fmt.Errorf("loading ratings: %w", err)
	}
	logger.Info().
		Int("movies", cat.Len()).
		Int("ratings", store.Len()).
		Msg("Seed data loaded")

	wsHub := ws.NewHub()

	handler, err := api.NewHandler(cat, store, cfg, wsHub)
	if err != nil {
		return fmt.Errorf("building API handler: %w", err)
	}

	chiMiddleware := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(handler, chiMiddleware)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("building supervision tree: %w", err)
	}
	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		cancel()
	}()

	logger.Info().Str("addr", cfg.Server.Addr()).Msg("Kinograph listening")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("supervision tree failed: %w", err)
		}
	}

	// Drain remaining supervisor errors so goroutines can exit.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn().Err(err).Msg("Service error during shutdown")
		}
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil {
		for _, svc := range report {
			logger.Warn().
				Str("service", fmt.Sprintf("%v", svc.Service)).
				Msg("Service did not stop cleanly")
		}
	}

	logger.Info().Msg("Application stopped gracefully")
	return nil
}
