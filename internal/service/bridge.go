package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/lexgrid/lexgrid/internal/adapter/ws"
	"github.com/lexgrid/lexgrid/internal/port/broadcast"
	"github.com/lexgrid/lexgrid/internal/port/eventbus"
)

// Bridge forwards bus lifecycle events to connected websocket clients. It is
// a pure relay: payloads cross it untouched, re-wrapped in the client-facing
// envelope under the matching event type.
type Bridge struct {
	bus eventbus.Bus
	out broadcast.Broadcaster
}

// NewBridge creates a Bridge from bus to out.
func NewBridge(bus eventbus.Bus, out broadcast.Broadcaster) *Bridge {
	return &Bridge{bus: bus, out: out}
}

// subjectEvents maps bus subjects to client event types.
var subjectEvents = map[string]string{
	eventbus.SubjectTaskProgress:          ws.EventTaskProgress,
	eventbus.SubjectTaskCompleted:         ws.EventAnalysisComplete,
	eventbus.SubjectOrchestrationComplete: ws.EventOrchestrationComplete,
}

// Start subscribes to every bridged subject and returns a function that
// cancels all subscriptions. A failed subscription is logged and skipped;
// clients then miss that event stream, nothing else breaks.
func (b *Bridge) Start(ctx context.Context) func() {
	if b.bus == nil {
		slog.Warn("event bridge disabled, no bus connection")
		return func() {}
	}

	var cancels []func()
	for subject, eventType := range subjectEvents {
		subject, eventType := subject, eventType
		cancel, err := b.bus.Subscribe(ctx, subject, func(_ string, data []byte) {
			b.out.BroadcastEvent(ctx, eventType, json.RawMessage(data))
		})
		if err != nil {
			slog.Warn("bridge subscribe failed", "subject", subject, "error", err)
			continue
		}
		cancels = append(cancels, cancel)
		slog.Debug("bridge subscribed", "subject", subject, "event_type", eventType)
	}

	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}
