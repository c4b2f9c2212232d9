// Package eventbus defines the pub/sub event bus port (interface).
package eventbus

import "context"

// Handler processes a message received from the bus.
type Handler func(subject string, data []byte)

// Bus is the port interface for best-effort publish/subscribe. Delivery is
// at-most-once; a publish error means "no real-time notification", never a
// failed task or orchestration.
type Bus interface {
	// Publish sends a message to the given subject.
	Publish(ctx context.Context, subject string, data []byte) error

	// Subscribe registers a handler for messages on the given subject.
	// The returned function cancels the subscription.
	Subscribe(ctx context.Context, subject string, handler Handler) (cancel func(), err error)

	// IsConnected reports whether the bus is currently connected.
	IsConnected() bool

	// Close shuts down the bus connection.
	Close() error
}

// Subjects carried on the bus.
const (
	SubjectTaskProgress          = "tasks.progress"
	SubjectTaskCompleted         = "tasks.completed"
	SubjectOrchestrationComplete = "orchestrations.completed"
	SubjectAgentMessages         = "agents.messages"
)
