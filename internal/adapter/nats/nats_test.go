package nats

import (
	"context"
	"os"
	"testing"
	"time"
)

// testConnect connects to NATS or skips the test if NATS_URL is not set.
func testConnect(t *testing.T) *Bus {
	t.Helper()

	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("requires NATS_URL")
	}

	b, err := Connect(url)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() {
		if err := b.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return b
}

func TestBus_PublishSubscribe(t *testing.T) {
	b := testConnect(t)
	subject := "tasks.progress.test." + t.Name()

	received := make(chan []byte, 1)
	cancel, err := b.Subscribe(context.Background(), subject, func(_ string, data []byte) {
		received <- data
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer cancel()

	if err := b.Publish(context.Background(), subject, []byte(`{"ok":true}`)); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case data := <-received:
		if string(data) != `{"ok":true}` {
			t.Errorf("unexpected payload: %s", data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestBus_IsConnected(t *testing.T) {
	b := testConnect(t)
	if !b.IsConnected() {
		t.Error("expected connected bus")
	}
}
