// Kinograph - Movie Recommendation Service
// Copyright 2026 Kinograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kinograph/kinograph

/*
Package websocket provides real-time push of rating changes to connected
frontend clients.

It uses the gorilla/websocket library with a hub-client architecture: the Hub
is the central broker holding the set of active clients, and each Client owns
a single connection with separate read and write goroutines.

Message Types:

  - ratings_changed: a rating was inserted or updated and recommendations
    have been rebuilt (user_id, movie_id, rating, timestamp)
  - ping / pong: application-level keepalive for browser clients

Usage:

	hub := websocket.NewHub()
	go hub.RunWithContext(ctx)

	// after a rating upsert
	hub.BroadcastRatingChanged(userID, movieID, score)

The connection upgrade itself happens in internal/api, which wires the /ws
endpoint to NewClient + Start.

Thread Safety:

The Hub guards its client map with a mutex, lifecycle changes flow through
the Register/Unregister channels, and broadcasts iterate clients in monotonic
ID order so delivery is reproducible.
*/
package websocket
