package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/lexgrid/lexgrid/internal/domain"
	"github.com/lexgrid/lexgrid/internal/domain/agent"
)

func TestAgentStoreRoundTrip(t *testing.T) {
	s := NewAgentStore()
	ctx := context.Background()

	d := agent.Descriptor{ID: "a1", Name: "Agent One", Status: agent.StatusOnline}
	if err := s.Put(ctx, d); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, "a1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Agent One" || got.Status != agent.StatusOnline {
		t.Errorf("round trip mismatch: %+v", got)
	}

	if err := s.Delete(ctx, "a1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, "a1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestAgentStorePutReplaces(t *testing.T) {
	s := NewAgentStore()
	ctx := context.Background()

	_ = s.Put(ctx, agent.Descriptor{ID: "a1", Name: "first", Tools: []string{"rag_search"}})
	_ = s.Put(ctx, agent.Descriptor{ID: "a1", Name: "second"})

	list, _ := s.List(ctx)
	if len(list) != 1 {
		t.Fatalf("expected 1 entry after re-registration, got %d", len(list))
	}

	got, _ := s.Get(ctx, "a1")
	if got.Name != "second" {
		t.Errorf("expected last write to win, got %s", got.Name)
	}
	if len(got.Tools) != 0 {
		t.Error("expected full replace, not field merge")
	}
}

func TestAgentStoreListOrder(t *testing.T) {
	s := NewAgentStore()
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		_ = s.Put(ctx, agent.Descriptor{ID: id})
	}

	list, _ := s.List(ctx)
	want := []string{"c", "a", "b"}
	for i, d := range list {
		if d.ID != want[i] {
			t.Fatalf("expected insertion order %v, got %v", want, list)
		}
	}
}

func TestAgentStoreDeleteUnknown(t *testing.T) {
	s := NewAgentStore()
	if err := s.Delete(context.Background(), "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAgentStoreGetReturnsSnapshot(t *testing.T) {
	s := NewAgentStore()
	ctx := context.Background()

	_ = s.Put(ctx, agent.Descriptor{ID: "a1", Name: "original"})

	got, _ := s.Get(ctx, "a1")
	got.Name = "mutated"

	again, _ := s.Get(ctx, "a1")
	if again.Name != "original" {
		t.Error("Get must return a snapshot, not a live reference")
	}
}
