package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lexgrid/lexgrid/internal/domain"
	"github.com/lexgrid/lexgrid/internal/domain/message"
	"github.com/lexgrid/lexgrid/internal/port/eventbus"
)

func TestSendPublishesEnvelope(t *testing.T) {
	bus := newFakeBus()
	svc := NewMessagingService(bus)

	env, err := svc.Send(context.Background(), SendRequest{
		FromAgent: "supervisor",
		ToAgent:   "legal-analyst",
		Kind:      message.KindRequest,
		Payload:   map[string]any{"caseId": "case-7"},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if env.ID == "" {
		t.Fatal("envelope id not assigned")
	}
	if env.Timestamp.IsZero() {
		t.Fatal("timestamp not stamped")
	}

	var published message.Envelope
	bus.decodeLast(t, eventbus.SubjectAgentMessages, &published)
	if published.ID != env.ID || published.ToAgent != "legal-analyst" || published.Kind != message.KindRequest {
		t.Fatalf("published envelope mismatch: %+v", published)
	}
	if published.Payload["caseId"] != "case-7" {
		t.Fatalf("payload not carried: %v", published.Payload)
	}
}

func TestSendDefaultsToNotification(t *testing.T) {
	svc := NewMessagingService(newFakeBus())

	env, err := svc.Send(context.Background(), SendRequest{
		FromAgent: "risk-assessor",
		ToAgent:   "supervisor",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if env.Kind != message.KindNotification {
		t.Fatalf("kind = %q, want notification", env.Kind)
	}
}

func TestSendValidation(t *testing.T) {
	svc := NewMessagingService(newFakeBus())

	cases := []struct {
		name string
		req  SendRequest
	}{
		{"missing from", SendRequest{ToAgent: "supervisor"}},
		{"missing to", SendRequest{FromAgent: "supervisor"}},
		{"unknown kind", SendRequest{FromAgent: "a", ToAgent: "b", Kind: "broadcast"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Send(context.Background(), tc.req); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("got %v, want ErrValidation", err)
			}
		})
	}
}

func TestSendSurvivesPublishFailure(t *testing.T) {
	bus := newFakeBus()
	bus.pubErr = errors.New("nats: connection closed")
	svc := NewMessagingService(bus)

	env, err := svc.Send(context.Background(), SendRequest{
		FromAgent: "supervisor",
		ToAgent:   "legal-analyst",
		Kind:      message.KindNotification,
	})
	if err != nil {
		t.Fatalf("send must not fail when publish fails: %v", err)
	}
	if env == nil || env.ID == "" {
		t.Fatal("envelope not returned")
	}
}
