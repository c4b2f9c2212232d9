package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	otelad "github.com/lexgrid/lexgrid/internal/adapter/otel"
	"github.com/lexgrid/lexgrid/internal/domain"
	"github.com/lexgrid/lexgrid/internal/domain/task"
	"github.com/lexgrid/lexgrid/internal/port/analysis"
	"github.com/lexgrid/lexgrid/internal/port/eventbus"
	"github.com/lexgrid/lexgrid/internal/port/registry"
	"github.com/lexgrid/lexgrid/internal/port/taskstore"
)

// TaskService creates tasks and dispatches them to the analysis backend.
// Submit returns immediately; each dispatch runs as a detached job with its
// own context, so a caller hanging up never aborts an accepted task.
type TaskService struct {
	tasks   taskstore.TaskStore
	agents  registry.AgentStore
	backend analysis.Backend
	bus     eventbus.Bus
	metrics *otelad.Metrics

	// wg tracks in-flight dispatches so tests can join on them. There is
	// deliberately no cap on concurrency.
	wg sync.WaitGroup
}

// NewTaskService creates a TaskService with all dependencies. bus and metrics
// may be nil; both degrade to no-ops.
func NewTaskService(tasks taskstore.TaskStore, agents registry.AgentStore, backend analysis.Backend, bus eventbus.Bus, metrics *otelad.Metrics) *TaskService {
	return &TaskService{
		tasks:   tasks,
		agents:  agents,
		backend: backend,
		bus:     bus,
		metrics: metrics,
	}
}

// Submit creates a task in pending state, schedules its dispatch, and returns
// the pending snapshot without waiting. The agent id is validated lazily, at
// dispatch time; callers observe the outcome by polling Get.
func (s *TaskService) Submit(ctx context.Context, req task.SubmitRequest) (*task.Task, error) {
	if req.AgentID == "" {
		return nil, fmt.Errorf("%w: agentId is required", domain.ErrValidation)
	}
	if req.Type == "" {
		return nil, fmt.Errorf("%w: type is required", domain.ErrValidation)
	}

	t := task.Task{
		ID:        uuid.NewString(),
		AgentID:   req.AgentID,
		Type:      req.Type,
		Input:     req.Input,
		Status:    task.StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("store task: %w", err)
	}

	if s.metrics != nil {
		s.metrics.TasksSubmitted.Add(ctx, 1)
	}

	s.wg.Add(1)
	go s.dispatch(context.WithoutCancel(ctx), t.ID)

	slog.Info("task submitted", "task_id", t.ID, "agent_id", t.AgentID, "type", t.Type)
	return &t, nil
}

// Get returns the current snapshot of a task.
func (s *TaskService) Get(ctx context.Context, id string) (*task.Task, error) {
	return s.tasks.Get(ctx, id)
}

// List returns snapshots of all tasks.
func (s *TaskService) List(ctx context.Context) ([]task.Task, error) {
	return s.tasks.List(ctx)
}

// Wait blocks until all in-flight dispatches have finished.
func (s *TaskService) Wait() {
	s.wg.Wait()
}

// dispatch drives one task from pending to a terminal state. It never
// retries; the first failure is final.
func (s *TaskService) dispatch(ctx context.Context, id string) {
	defer s.wg.Done()

	t, err := s.tasks.Update(ctx, id, func(tk *task.Task) {
		tk.Status = task.StatusInProgress
	})
	if err != nil {
		slog.Error("dispatch: task vanished", "task_id", id, "error", err)
		return
	}

	ctx, span := otelad.StartDispatchSpan(ctx, t.ID, t.AgentID, t.Type)
	defer span.End()

	publishEvent(ctx, s.bus, eventbus.SubjectTaskProgress, TaskProgressEvent{
		TaskID:  t.ID,
		AgentID: t.AgentID,
		Status:  string(task.StatusInProgress),
	})

	// Agent resolution happens here, not at submit: a missing agent fails
	// the task without ever touching the backend.
	if _, err := s.agents.Get(ctx, t.AgentID); err != nil {
		s.fail(ctx, t, fmt.Sprintf("agent not found: %s", t.AgentID))
		return
	}

	payload, err := s.backend.Analyze(ctx, analysisRequest(t))
	if err != nil {
		s.fail(ctx, t, err.Error())
		return
	}

	now := time.Now().UTC()
	t, err = s.tasks.Update(ctx, t.ID, func(tk *task.Task) {
		tk.Status = task.StatusCompleted
		tk.Result = payload
		tk.CompletedAt = &now
	})
	if err != nil {
		slog.Error("dispatch: complete update failed", "task_id", id, "error", err)
		return
	}

	if s.metrics != nil {
		s.metrics.TasksCompleted.Add(ctx, 1)
	}

	publishEvent(ctx, s.bus, eventbus.SubjectTaskCompleted, TaskCompletionEvent{
		TaskID:  t.ID,
		AgentID: t.AgentID,
		Type:    t.Type,
		Status:  string(task.StatusCompleted),
	})

	slog.Info("task completed", "task_id", t.ID, "agent_id", t.AgentID)
}

// fail transitions the task to its terminal failed state.
func (s *TaskService) fail(ctx context.Context, t *task.Task, msg string) {
	now := time.Now().UTC()
	updated, err := s.tasks.Update(ctx, t.ID, func(tk *task.Task) {
		tk.Status = task.StatusFailed
		tk.Error = msg
		tk.CompletedAt = &now
	})
	if err != nil {
		slog.Error("dispatch: fail update failed", "task_id", t.ID, "error", err)
		return
	}

	if s.metrics != nil {
		s.metrics.TasksFailed.Add(ctx, 1)
	}

	publishEvent(ctx, s.bus, eventbus.SubjectTaskCompleted, TaskCompletionEvent{
		TaskID:  updated.ID,
		AgentID: updated.AgentID,
		Type:    updated.Type,
		Status:  string(task.StatusFailed),
		Error:   msg,
	})

	slog.Warn("task failed", "task_id", t.ID, "agent_id", t.AgentID, "error", msg)
}

// analysisRequest maps the task's opaque input onto the backend wire shape.
// Only the case reference and free text are lifted out; everything else in
// the input stays with the task record.
func analysisRequest(t *task.Task) analysis.Request {
	req := analysis.Request{AnalysisType: t.Type}
	if caseID, ok := t.Input["case_id"].(string); ok {
		req.CaseID = caseID
	}
	if text, ok := t.Input["input_text"].(string); ok {
		req.InputText = text
	}
	return req
}
