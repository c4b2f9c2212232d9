// Package memory implements the agent and task store ports as process-local,
// mutex-guarded maps. Nothing here survives a restart; that tradeoff is part
// of the registry's contract.
package memory

import (
	"context"
	"sync"

	"github.com/lexgrid/lexgrid/internal/domain"
	"github.com/lexgrid/lexgrid/internal/domain/agent"
)

// AgentStore is an in-memory registry.AgentStore.
type AgentStore struct {
	mu     sync.RWMutex
	agents map[string]agent.Descriptor
	order  []string // insertion order for List
}

// NewAgentStore creates an empty in-memory agent store.
func NewAgentStore() *AgentStore {
	return &AgentStore{agents: make(map[string]agent.Descriptor)}
}

// Put inserts or fully replaces the entry keyed by d.ID.
func (s *AgentStore) Put(_ context.Context, d agent.Descriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.agents[d.ID]; !exists {
		s.order = append(s.order, d.ID)
	}
	s.agents[d.ID] = d
	return nil
}

// Get returns a snapshot of the descriptor for id.
func (s *AgentStore) Get(_ context.Context, id string) (*agent.Descriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.agents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

// List returns snapshots of all descriptors in insertion order.
func (s *AgentStore) List(_ context.Context) ([]agent.Descriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]agent.Descriptor, 0, len(s.agents))
	for _, id := range s.order {
		out = append(out, s.agents[id])
	}
	return out, nil
}

// Delete removes the entry for id.
func (s *AgentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.agents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.agents, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
