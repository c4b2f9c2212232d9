package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Event type constants for envelopes pushed to clients.
const (
	EventTaskProgress          = "task_progress"
	EventAnalysisComplete      = "analysis_complete"
	EventOrchestrationComplete = "orchestration_complete"
)

// BroadcastEvent marshals a typed payload and broadcasts it to every
// connected client as an {type, data, timestamp} envelope.
func (h *Hub) BroadcastEvent(ctx context.Context, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal ws event payload", "type", eventType, "error", err)
		return
	}

	h.Broadcast(ctx, Envelope{
		Type:      eventType,
		Data:      json.RawMessage(data),
		Timestamp: time.Now().UTC(),
	})
}
