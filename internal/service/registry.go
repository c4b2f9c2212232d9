package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lexgrid/lexgrid/internal/domain/agent"
	"github.com/lexgrid/lexgrid/internal/port/registry"
)

// RegistryService manages the agent catalog.
type RegistryService struct {
	store registry.AgentStore
}

// NewRegistryService creates a RegistryService over the given store.
func NewRegistryService(store registry.AgentStore) *RegistryService {
	return &RegistryService{store: store}
}

// SeedDefaults installs the fixed default agent set. Existing entries with
// the same ids are replaced.
func (s *RegistryService) SeedDefaults(ctx context.Context, backendURL string) error {
	for _, d := range agent.Defaults(backendURL) {
		if err := s.store.Put(ctx, d); err != nil {
			return fmt.Errorf("seed agent %s: %w", d.ID, err)
		}
	}
	slog.Info("default agents registered", "count", len(agent.Defaults(backendURL)))
	return nil
}

// Register inserts or fully replaces an agent descriptor. A missing id is
// generated; a missing status defaults to online. Capability and tool tags
// are free-form and deliberately unvalidated.
func (s *RegistryService) Register(ctx context.Context, d agent.Descriptor) (*agent.Descriptor, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Status == "" {
		d.Status = agent.StatusOnline
	}

	if err := s.store.Put(ctx, d); err != nil {
		return nil, fmt.Errorf("register agent: %w", err)
	}

	slog.Info("agent registered", "agent_id", d.ID, "name", d.Name)
	return &d, nil
}

// Get returns the descriptor for id.
func (s *RegistryService) Get(ctx context.Context, id string) (*agent.Descriptor, error) {
	return s.store.Get(ctx, id)
}

// List returns all registered agents.
func (s *RegistryService) List(ctx context.Context) ([]agent.Descriptor, error) {
	return s.store.List(ctx)
}

// Deregister removes the agent for id.
func (s *RegistryService) Deregister(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("agent deregistered", "agent_id", id)
	return nil
}
