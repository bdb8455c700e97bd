// Kinograph - Movie Recommendation Service
// Copyright 2026 Kinograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kinograph/kinograph

/*
Package supervisor provides process supervision built on suture/v4.

The SupervisorTree arranges services into two child supervisors under one
root:

	kinograph (root)
	├── messaging-layer — WebSocket hub
	└── api-layer       — HTTP server

Each layer restarts its own failed services with exponential backoff, so a
crash in one layer never takes down the other. Supervisor events are
forwarded to slog via sutureslog, which in turn feeds the zerolog pipeline
through the logging package's slog adapter.

Services are plain suture.Service implementations; see the services
subpackage for the HTTP server and WebSocket hub wrappers.
*/
package supervisor
