// Package message defines the inter-agent message envelope.
package message

import "time"

// Kind classifies an inter-agent message.
type Kind string

const (
	KindRequest      Kind = "request"
	KindResponse     Kind = "response"
	KindNotification Kind = "notification"
)

// Valid reports whether k is one of the known message kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindRequest, KindResponse, KindNotification:
		return true
	}
	return false
}

// Envelope is a lightweight agent-to-agent message. It is published and
// returned to the sender; this layer keeps no copy. FromAgent and ToAgent are
// soft references — nothing checks that either agent exists.
type Envelope struct {
	ID        string         `json:"id"`
	FromAgent string         `json:"fromAgent"`
	ToAgent   string         `json:"toAgent"`
	Kind      Kind           `json:"kind"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
