// Package registry defines the agent store port (interface).
package registry

import (
	"context"

	"github.com/lexgrid/lexgrid/internal/domain/agent"
)

// AgentStore is the port interface for the agent catalog. Implementations own
// the descriptors; callers always receive snapshots.
type AgentStore interface {
	// Put inserts or fully replaces the entry keyed by d.ID.
	Put(ctx context.Context, d agent.Descriptor) error

	// Get returns the descriptor for id, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*agent.Descriptor, error)

	// List returns a snapshot of all descriptors in insertion order.
	List(ctx context.Context) ([]agent.Descriptor, error)

	// Delete removes the entry for id, or returns domain.ErrNotFound.
	Delete(ctx context.Context, id string) error
}
