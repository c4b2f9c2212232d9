// Package taskstore defines the task store port (interface).
package taskstore

import (
	"context"

	"github.com/lexgrid/lexgrid/internal/domain/task"
)

// TaskStore is the port interface for task records. Tasks are never deleted;
// they remain readable for the process lifetime.
type TaskStore interface {
	// Create stores a new task record.
	Create(ctx context.Context, t task.Task) error

	// Get returns the current snapshot of the task, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*task.Task, error)

	// List returns snapshots of all tasks in insertion order.
	List(ctx context.Context) ([]task.Task, error)

	// Update applies fn to the stored task under the store's own locking and
	// persists the mutated record. Returns domain.ErrNotFound for unknown ids.
	Update(ctx context.Context, id string, fn func(*task.Task)) (*task.Task, error)
}
