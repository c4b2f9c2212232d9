package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lexgrid/lexgrid/internal/domain"
	"github.com/lexgrid/lexgrid/internal/domain/message"
	"github.com/lexgrid/lexgrid/internal/port/eventbus"
)

// MessagingService publishes agent-to-agent messages. Delivery is best effort
// and fire-and-forget: the envelope is stamped, published, and returned to the
// sender. Nothing is stored and no delivery is confirmed.
type MessagingService struct {
	bus eventbus.Bus
}

// NewMessagingService creates a MessagingService over the given bus.
func NewMessagingService(bus eventbus.Bus) *MessagingService {
	return &MessagingService{bus: bus}
}

// SendRequest is the caller-supplied half of an envelope.
type SendRequest struct {
	FromAgent string         `json:"fromAgent"`
	ToAgent   string         `json:"toAgent"`
	Kind      message.Kind   `json:"messageType"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// Send stamps and publishes one inter-agent message. An empty kind defaults
// to notification; an unknown kind is rejected. Sender and recipient ids are
// not checked against the registry.
func (s *MessagingService) Send(ctx context.Context, req SendRequest) (*message.Envelope, error) {
	if req.FromAgent == "" {
		return nil, fmt.Errorf("%w: fromAgent is required", domain.ErrValidation)
	}
	if req.ToAgent == "" {
		return nil, fmt.Errorf("%w: toAgent is required", domain.ErrValidation)
	}

	kind := req.Kind
	if kind == "" {
		kind = message.KindNotification
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown message type %q", domain.ErrValidation, req.Kind)
	}

	env := &message.Envelope{
		ID:        uuid.NewString(),
		FromAgent: req.FromAgent,
		ToAgent:   req.ToAgent,
		Kind:      kind,
		Payload:   req.Payload,
		Timestamp: time.Now().UTC(),
	}

	publishEvent(ctx, s.bus, eventbus.SubjectAgentMessages, env)

	slog.Info("agent message sent",
		"message_id", env.ID, "from", env.FromAgent, "to", env.ToAgent, "kind", env.Kind)
	return env, nil
}
