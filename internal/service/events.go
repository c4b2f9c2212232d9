package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/lexgrid/lexgrid/internal/port/eventbus"
)

// TaskProgressEvent is published on tasks.progress when a task changes state.
type TaskProgressEvent struct {
	TaskID  string `json:"taskId"`
	AgentID string `json:"agentId"`
	Status  string `json:"status"`
}

// TaskCompletionEvent is published on tasks.completed when a task reaches a
// terminal state.
type TaskCompletionEvent struct {
	TaskID  string `json:"taskId"`
	AgentID string `json:"agentId"`
	Type    string `json:"type"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// OrchestrationEvent is published on orchestrations.completed.
type OrchestrationEvent struct {
	TaskID         string  `json:"taskId"`
	ProcessingTime float64 `json:"processingTime"`
	AgentCount     int     `json:"agentCount"`
}

// publishEvent marshals payload and publishes it on subject, best effort.
// A nil bus and a publish failure both degrade to a log line; lifecycle
// notification must never block or fail core flow.
func publishEvent(ctx context.Context, bus eventbus.Bus, subject string, payload any) {
	if bus == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal event", "subject", subject, "error", err)
		return
	}

	if err := bus.Publish(ctx, subject, data); err != nil {
		slog.Warn("event publish failed", "subject", subject, "error", err)
	}
}
