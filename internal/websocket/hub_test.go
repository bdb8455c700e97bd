// Kinograph - Movie Recommendation Service
// Copyright 2026 Kinograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kinograph/kinograph

package websocket

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/kinograph/kinograph/internal/logging"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

// setupHub creates and starts a new hub for testing
func setupHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = hub.RunWithContext(ctx) }()
	time.Sleep(10 * time.Millisecond)
	return hub, cancel
}

// createTestClient creates a mock client for testing
func createTestClient(hub *Hub) *Client {
	return &Client{id: clientIDCounter.Add(1), hub: hub, conn: nil, send: make(chan Message, 256)}
}

// registerClient registers a client and waits for registration to complete
func registerClient(hub *Hub, client *Client) {
	hub.Register <- client
	time.Sleep(20 * time.Millisecond)
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub returned nil")
	}

	checks := []struct {
		name   string
		check  bool
		errMsg string
	}{
		{"clients map", hub.clients != nil, "clients map not initialized"},
		{"broadcast channel", hub.broadcast != nil, "broadcast channel not initialized"},
		{"Register channel", hub.Register != nil, "Register channel not initialized"},
		{"Unregister channel", hub.Unregister != nil, "Unregister channel not initialized"},
		{"empty clients", len(hub.clients) == 0, "clients map should be empty"},
	}

	for _, c := range checks {
		if !c.check {
			t.Error(c.errMsg)
		}
	}
}

func TestHub_GetClientCount(t *testing.T) {
	hub := NewHub()

	if hub.GetClientCount() != 0 {
		t.Errorf("Expected 0 clients initially, got %d", hub.GetClientCount())
	}

	for i := 0; i < 5; i++ {
		hub.clients[createTestClient(hub)] = true
	}

	if hub.GetClientCount() != 5 {
		t.Errorf("Expected 5 clients, got %d", hub.GetClientCount())
	}
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub, cancel := setupHub(t)
	defer cancel()

	client := createTestClient(hub)
	registerClient(hub, client)

	if hub.GetClientCount() != 1 {
		t.Fatalf("Expected 1 client after register, got %d", hub.GetClientCount())
	}

	hub.Unregister <- client
	time.Sleep(20 * time.Millisecond)

	if hub.GetClientCount() != 0 {
		t.Errorf("Expected 0 clients after unregister, got %d", hub.GetClientCount())
	}

	// send channel must be closed on unregister
	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("expected send channel to be closed")
		}
	default:
		t.Error("expected send channel to be closed, but read would block")
	}
}

func TestHub_BroadcastRatingChanged(t *testing.T) {
	hub, cancel := setupHub(t)
	defer cancel()

	client := createTestClient(hub)
	registerClient(hub, client)

	hub.BroadcastRatingChanged(3, 7, 5)

	select {
	case msg := <-client.send:
		if msg.Type != MessageTypeRatingsChanged {
			t.Errorf("Expected message type %q, got %q", MessageTypeRatingsChanged, msg.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast message")
	}
}

func TestHub_BroadcastDelivery_AllClients(t *testing.T) {
	hub, cancel := setupHub(t)
	defer cancel()

	clients := make([]*Client, 3)
	for i := range clients {
		clients[i] = createTestClient(hub)
		registerClient(hub, clients[i])
	}

	hub.BroadcastJSON("test_type", map[string]interface{}{"key": "value"})
	time.Sleep(20 * time.Millisecond)

	for i, client := range clients {
		select {
		case msg := <-client.send:
			if msg.Type != "test_type" {
				t.Errorf("client %d: expected type %q, got %q", i, "test_type", msg.Type)
			}
		default:
			t.Errorf("client %d: no message received", i)
		}
	}
}

func TestHub_BroadcastRemovesFullClients(t *testing.T) {
	hub := NewHub()

	// Client with zero-capacity send channel simulates a stalled consumer.
	stalled := &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message)}
	hub.clients[stalled] = true

	hub.broadcastToClients(Message{Type: "test_type"})

	if hub.GetClientCount() != 0 {
		t.Errorf("Expected stalled client to be removed, got %d clients", hub.GetClientCount())
	}
}

func TestHub_RunWithContext_Shutdown(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- hub.RunWithContext(ctx) }()
	time.Sleep(10 * time.Millisecond)

	client := createTestClient(hub)
	hub.Register <- client
	time.Sleep(20 * time.Millisecond)

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("hub did not stop after context cancellation")
	}

	if hub.GetClientCount() != 0 {
		t.Errorf("Expected all clients closed on shutdown, got %d", hub.GetClientCount())
	}
}

func TestGetShutdownReason(t *testing.T) {
	canceledCtx, cancel := context.WithCancel(context.Background())
	cancel()

	deadlineCtx, cancel2 := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel2()
	<-deadlineCtx.Done()

	tests := []struct {
		name string
		ctx  context.Context
		want ShutdownReason
	}{
		{"canceled", canceledCtx, ShutdownReasonContextCanceled},
		{"deadline", deadlineCtx, ShutdownReasonContextDeadline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getShutdownReason(tt.ctx); got != tt.want {
				t.Errorf("getShutdownReason() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarshalMessage(t *testing.T) {
	msg := Message{Type: MessageTypeRatingsChanged, Data: map[string]int{"movie_id": 4}}

	data, err := MarshalMessage(msg)
	if err != nil {
		t.Fatalf("MarshalMessage failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("MarshalMessage returned empty data")
	}
}

func TestNewClient_MonotonicIDs(t *testing.T) {
	hub := NewHub()

	a := NewClient(hub, nil)
	b := NewClient(hub, nil)

	if a.ID() >= b.ID() {
		t.Errorf("Expected monotonically increasing IDs, got %d then %d", a.ID(), b.ID())
	}
}
