package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	otelad "github.com/lexgrid/lexgrid/internal/adapter/otel"
	"github.com/lexgrid/lexgrid/internal/domain"
	"github.com/lexgrid/lexgrid/internal/domain/orchestration"
	"github.com/lexgrid/lexgrid/internal/domain/routing"
	"github.com/lexgrid/lexgrid/internal/port/analysis"
	"github.com/lexgrid/lexgrid/internal/port/cache"
	"github.com/lexgrid/lexgrid/internal/port/eventbus"
)

// AnalyzeRequest is one orchestrated analysis: case material plus the type
// that decides which agents are consulted.
type AnalyzeRequest struct {
	AnalysisType string `json:"analysisType"`
	CaseID       string `json:"caseId,omitempty"`
	InputText    string `json:"inputText,omitempty"`
}

// SupervisorService fans one analysis request out to every routed agent in
// parallel, aggregates their outcomes into a single result, and caches that
// result for later retrieval. One failing agent never aborts the others.
type SupervisorService struct {
	resolver routing.Resolver
	backend  analysis.Backend
	cache    cache.Cache
	bus      eventbus.Bus
	metrics  *otelad.Metrics
	ttl      time.Duration
}

// NewSupervisorService creates a SupervisorService. cache, bus and metrics may
// be nil; result retention and notification degrade accordingly.
func NewSupervisorService(resolver routing.Resolver, backend analysis.Backend, c cache.Cache, bus eventbus.Bus, metrics *otelad.Metrics, ttl time.Duration) *SupervisorService {
	return &SupervisorService{
		resolver: resolver,
		backend:  backend,
		cache:    c,
		bus:      bus,
		metrics:  metrics,
		ttl:      ttl,
	}
}

// Orchestrate runs one analysis type across its routed agents and blocks until
// every agent has resolved.
func (s *SupervisorService) Orchestrate(ctx context.Context, req AnalyzeRequest) (*orchestration.Result, error) {
	if req.AnalysisType == "" {
		return nil, fmt.Errorf("%w: analysisType is required", domain.ErrValidation)
	}
	if req.CaseID == "" && req.InputText == "" {
		return nil, fmt.Errorf("%w: caseId or inputText is required", domain.ErrValidation)
	}

	agents := s.resolver.Resolve(req.AnalysisType)
	types := make(map[string]string, len(agents))
	for _, id := range agents {
		types[id] = req.AnalysisType
	}
	return s.run(ctx, req, req.AnalysisType, agents, types)
}

// OrchestrateTypes runs several analysis types as one orchestration. The agent
// set is the union of each type's route; an agent claimed by more than one
// type is consulted once, for the first type that routed it.
func (s *SupervisorService) OrchestrateTypes(ctx context.Context, analysisTypes []string, caseID, inputText string) (*orchestration.Result, error) {
	if len(analysisTypes) == 0 {
		return nil, fmt.Errorf("%w: analysisTypes is required", domain.ErrValidation)
	}
	if caseID == "" && inputText == "" {
		return nil, fmt.Errorf("%w: caseId or inputText is required", domain.ErrValidation)
	}

	var agents []string
	types := make(map[string]string)
	for _, at := range analysisTypes {
		for _, id := range s.resolver.Resolve(at) {
			if _, claimed := types[id]; claimed {
				continue
			}
			types[id] = at
			agents = append(agents, id)
		}
	}

	req := AnalyzeRequest{AnalysisType: analysisTypes[0], CaseID: caseID, InputText: inputText}
	return s.run(ctx, req, analysisTypes[0], agents, types)
}

// GetResult returns a previously cached orchestration result.
func (s *SupervisorService) GetResult(ctx context.Context, id string) (*orchestration.Result, error) {
	if s.cache == nil {
		return nil, domain.ErrNotFound
	}

	data, ok, err := s.cache.Get(ctx, resultKey(id))
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if !ok {
		return nil, domain.ErrNotFound
	}

	var res orchestration.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode cached result: %w", err)
	}
	return &res, nil
}

// run is the shared fan-out: one goroutine per agent, each recording either
// the backend payload or a failure slot. The group never short-circuits; a
// failing agent is an entry in the result, not an error from run.
func (s *SupervisorService) run(ctx context.Context, req AnalyzeRequest, primaryType string, agents []string, types map[string]string) (*orchestration.Result, error) {
	taskID := uuid.NewString()
	start := time.Now()

	ctx, span := otelad.StartOrchestrationSpan(ctx, taskID, primaryType, len(agents))
	defer span.End()

	slog.Info("orchestration started",
		"orchestration_id", taskID, "type", primaryType, "agents", len(agents))

	var (
		mu      sync.Mutex
		results = make(map[string]map[string]any, len(agents))
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, agentID := range agents {
		agentID := agentID
		g.Go(func() error {
			payload, err := s.backend.Analyze(gctx, analysis.Request{
				AnalysisType: types[agentID],
				CaseID:       req.CaseID,
				InputText:    req.InputText,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				results[agentID] = orchestration.FailedOutcome(err)
				slog.Warn("agent failed",
					"orchestration_id", taskID, "agent_id", agentID, "error", err)
				if s.metrics != nil {
					s.metrics.OrchestrationAgentFail.Add(gctx, 1)
				}
				return nil
			}
			results[agentID] = payload
			return nil
		})
	}
	_ = g.Wait()

	var tools []string
	for _, agentID := range agents {
		outcome := results[agentID]
		if orchestration.Failed(outcome) {
			continue
		}
		tools = orchestration.MergeTools(tools, orchestration.ToolNames(outcome))
	}

	res := &orchestration.Result{
		TaskID:         taskID,
		AnalysisType:   primaryType,
		Agents:         agents,
		Results:        results,
		Summary:        orchestration.Summarize(primaryType, agents, results),
		ProcessingTime: time.Since(start).Seconds(),
		ToolsUsed:      tools,
	}

	s.store(ctx, res)

	if s.metrics != nil {
		s.metrics.Orchestrations.Add(ctx, 1)
		s.metrics.OrchestrationDuration.Record(ctx, res.ProcessingTime)
	}

	publishEvent(ctx, s.bus, eventbus.SubjectOrchestrationComplete, OrchestrationEvent{
		TaskID:         taskID,
		ProcessingTime: res.ProcessingTime,
		AgentCount:     len(agents),
	})

	slog.Info("orchestration completed",
		"orchestration_id", taskID, "duration_s", res.ProcessingTime)
	return res, nil
}

// store caches the finished result, best effort.
func (s *SupervisorService) store(ctx context.Context, res *orchestration.Result) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(res)
	if err != nil {
		slog.Error("marshal orchestration result", "orchestration_id", res.TaskID, "error", err)
		return
	}
	if err := s.cache.Set(ctx, resultKey(res.TaskID), data, s.ttl); err != nil {
		slog.Warn("cache orchestration result", "orchestration_id", res.TaskID, "error", err)
	}
}

func resultKey(id string) string { return "orchestration:" + id }
