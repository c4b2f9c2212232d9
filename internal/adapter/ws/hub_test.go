package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()
	if hub == nil {
		t.Fatal("expected non-nil hub")
	}
	if hub.ConnectionCount() != 0 {
		t.Fatalf("expected 0 connections, got %d", hub.ConnectionCount())
	}
}

func TestHubBroadcastNoConnections(t *testing.T) {
	hub := NewHub()

	// Broadcast with no connections should not panic.
	hub.Broadcast(context.Background(), Envelope{
		Type:      "test",
		Data:      json.RawMessage(`{"key":"value"}`),
		Timestamp: time.Now(),
	})
}

func TestHubBroadcastEventMarshalError(t *testing.T) {
	hub := NewHub()

	// A channel cannot be marshaled to JSON — should log error, not panic.
	hub.BroadcastEvent(context.Background(), "bad", make(chan int))
}

func TestHubRemoveNonexistent(t *testing.T) {
	hub := NewHub()

	_, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := &conn{ws: nil, cancel: cancel}
	hub.remove(c)
}

// dial connects a test client to the hub and consumes the welcome envelope.
func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, _, err := websocket.Dial(ctx, "ws"+srv.URL[len("http"):], nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = c.Close(websocket.StatusNormalClosure, "") })

	env := readEnvelope(t, c)
	if env.Type != "connected" {
		t.Fatalf("expected welcome envelope, got %s", env.Type)
	}
	return c
}

func readEnvelope(t *testing.T, c *websocket.Conn) Envelope {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, data, err := c.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return env
}

func TestHubPingPong(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	c := dial(t, srv)

	ctx := context.Background()
	if err := c.Write(ctx, websocket.MessageText, []byte(`{"type":"ping"}`)); err != nil {
		t.Fatal(err)
	}

	env := readEnvelope(t, c)
	if env.Type != "pong" {
		t.Fatalf("expected pong, got %s", env.Type)
	}
}

func TestHubSubscribeTaskAck(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	c := dial(t, srv)

	ctx := context.Background()
	if err := c.Write(ctx, websocket.MessageText, []byte(`{"type":"subscribe_task","taskId":"t-42"}`)); err != nil {
		t.Fatal(err)
	}

	env := readEnvelope(t, c)
	if env.Type != "subscribed" {
		t.Fatalf("expected subscribed ack, got %s", env.Type)
	}
	var data map[string]string
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data["taskId"] != "t-42" {
		t.Errorf("expected taskId t-42, got %s", data["taskId"])
	}
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	c1 := dial(t, srv)
	c2 := dial(t, srv)

	waitForConnections(t, hub, 2)

	hub.BroadcastEvent(context.Background(), EventAnalysisComplete, map[string]string{"taskId": "t-1"})

	for _, c := range []*websocket.Conn{c1, c2} {
		env := readEnvelope(t, c)
		if env.Type != EventAnalysisComplete {
			t.Fatalf("expected %s, got %s", EventAnalysisComplete, env.Type)
		}
		var data map[string]string
		_ = json.Unmarshal(env.Data, &data)
		if data["taskId"] != "t-1" {
			t.Errorf("expected taskId t-1, got %s", data["taskId"])
		}
	}
}

func waitForConnections(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ConnectionCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d connections, got %d", want, hub.ConnectionCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
