// Package task defines the Task domain entity.
package task

import "time"

// Status represents the current state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Task represents one unit of analysis work dispatched to a single agent.
// Input and Result are opaque to the dispatcher; their schema belongs to the
// analysis backend.
type Task struct {
	ID          string         `json:"id"`
	AgentID     string         `json:"agent_id"`
	Type        string         `json:"type"`
	Input       map[string]any `json:"input"`
	Status      Status         `json:"status"`
	Result      map[string]any `json:"result,omitempty"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}

// SubmitRequest holds the fields needed to submit a new task.
type SubmitRequest struct {
	AgentID string         `json:"agentId"`
	Type    string         `json:"type"`
	Input   map[string]any `json:"input"`
}
