// Kinograph - Movie Recommendation Service
// Copyright 2026 Kinograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kinograph/kinograph

// Package services wraps the application's long-running components as
// suture.Service implementations for supervision: the HTTP server
// (HTTPServerService) and the WebSocket hub (WebSocketHubService).
package services
