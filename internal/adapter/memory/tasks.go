package memory

import (
	"context"
	"sync"

	"github.com/lexgrid/lexgrid/internal/domain"
	"github.com/lexgrid/lexgrid/internal/domain/task"
)

// TaskStore is an in-memory taskstore.TaskStore. Tasks are retained for the
// process lifetime; there is no delete.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]task.Task
	order []string
}

// NewTaskStore creates an empty in-memory task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[string]task.Task)}
}

// Create stores a new task record.
func (s *TaskStore) Create(_ context.Context, t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[t.ID]; !exists {
		s.order = append(s.order, t.ID)
	}
	s.tasks[t.ID] = t
	return nil
}

// Get returns a snapshot of the task for id.
func (s *TaskStore) Get(_ context.Context, id string) (*task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

// List returns snapshots of all tasks in insertion order.
func (s *TaskStore) List(_ context.Context) ([]task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]task.Task, 0, len(s.tasks))
	for _, id := range s.order {
		out = append(out, s.tasks[id])
	}
	return out, nil
}

// Update applies fn to the stored task under the store lock and persists the
// result. The mutation and the write are atomic with respect to other callers.
func (s *TaskStore) Update(_ context.Context, id string, fn func(*task.Task)) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	fn(&t)
	s.tasks[id] = t
	return &t, nil
}
