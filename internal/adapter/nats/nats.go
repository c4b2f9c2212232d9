// Package nats implements the event bus port using core NATS pub/sub.
// Delivery is at-most-once, which matches the bus contract: a lost event
// means a missed notification, never a lost task.
package nats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/lexgrid/lexgrid/internal/port/eventbus"
)

// Bus implements eventbus.Bus over a core NATS connection.
type Bus struct {
	nc *nats.Conn
}

// Connect establishes a connection to NATS.
func Connect(url string) (*Bus, error) {
	nc, err := nats.Connect(url,
		nats.Name("lexgrid-orchestrator"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	slog.Info("nats connected", "url", url)
	return &Bus{nc: nc}, nil
}

// Publish sends a message to the given subject.
func (b *Bus) Publish(_ context.Context, subject string, data []byte) error {
	if err := b.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("nats publish %s: %w", subject, err)
	}
	return nil
}

// Subscribe registers a handler for messages on the given subject.
func (b *Bus) Subscribe(_ context.Context, subject string, handler eventbus.Handler) (func(), error) {
	sub, err := b.nc.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("nats subscribe %s: %w", subject, err)
	}

	return func() {
		if err := sub.Unsubscribe(); err != nil {
			slog.Error("nats unsubscribe failed", "subject", subject, "error", err)
		}
	}, nil
}

// IsConnected reports whether the connection is currently up.
func (b *Bus) IsConnected() bool {
	return b.nc.IsConnected()
}

// Close shuts down the NATS connection.
func (b *Bus) Close() error {
	b.nc.Close()
	return nil
}
