package http

import (
	"net/http"

	"github.com/lexgrid/lexgrid/internal/domain/agent"
	"github.com/lexgrid/lexgrid/internal/domain/task"
	"github.com/lexgrid/lexgrid/internal/port/eventbus"
	"github.com/lexgrid/lexgrid/internal/service"
)

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	Registry   *service.RegistryService
	Tasks      *service.TaskService
	Supervisor *service.SupervisorService
	Messaging  *service.MessagingService

	// Bus is only consulted for health reporting; may be nil.
	Bus        eventbus.Bus
	BackendURL string
}

// ---------------------------------------------------------------------------
// Agents
// ---------------------------------------------------------------------------

// ListAgents returns every registered agent.
func (h *Handlers) ListAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.Registry.List(r.Context())
	if err != nil {
		writeDomainError(w, err, "agents not available")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"agents": agents})
}

// GetAgent returns one agent descriptor.
func (h *Handlers) GetAgent(w http.ResponseWriter, r *http.Request) {
	d, err := h.Registry.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "agent not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// RegisterAgent inserts or replaces an agent descriptor.
func (h *Handlers) RegisterAgent(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[agent.Descriptor](w, r)
	if !ok {
		return
	}

	d, err := h.Registry.Register(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "agent not found")
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// DeregisterAgent removes an agent.
func (h *Handlers) DeregisterAgent(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	if err := h.Registry.Deregister(r.Context(), id); err != nil {
		writeDomainError(w, err, "agent not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "agent deregistered",
		"id":      id,
	})
}

// supervisorConfig is the static description of the coordinating supervisor.
type supervisorConfig struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	ManagedAgents []string `json:"managedAgents"`
	AnalysisTypes []string `json:"analysisTypes"`
}

// GetSupervisorConfig returns the supervisor's static configuration.
func (h *Handlers) GetSupervisorConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, supervisorConfig{
		ID:          agent.IDSupervisor,
		Name:        "Supervisor",
		Description: "Coordinates multi-agent analyses; holds no tools of its own",
		ManagedAgents: []string{
			agent.IDLegalAnalyst,
			agent.IDRiskAssessor,
			agent.IDLoopholeDetector,
			agent.IDPrecedentResearcher,
			agent.IDComplianceChecker,
		},
		AnalysisTypes: []string{
			"full_analysis",
			"risk_assessment",
			"loophole_detection",
			"precedent_search",
			"contract_review",
			"compliance_check",
		},
	})
}

// ---------------------------------------------------------------------------
// Tasks
// ---------------------------------------------------------------------------

// SubmitTask accepts a task and returns its pending snapshot immediately.
func (h *Handlers) SubmitTask(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[task.SubmitRequest](w, r)
	if !ok {
		return
	}

	t, err := h.Tasks.Submit(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "task not created")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// ListTasks returns every task, terminal ones included.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Tasks.List(r.Context())
	if err != nil {
		writeDomainError(w, err, "tasks not available")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

// GetTask returns the current snapshot of one task.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	t, err := h.Tasks.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// ---------------------------------------------------------------------------
// Orchestration
// ---------------------------------------------------------------------------

type orchestrateAgentRequest struct {
	CaseText     string `json:"caseText"`
	AnalysisType string `json:"analysisType"`
	CaseID       string `json:"caseId"`
}

// OrchestrateAnalysis runs one analysis type across its routed agents and
// blocks until the aggregate result is ready.
func (h *Handlers) OrchestrateAnalysis(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[orchestrateAgentRequest](w, r)
	if !ok {
		return
	}

	res, err := h.Supervisor.Orchestrate(r.Context(), service.AnalyzeRequest{
		AnalysisType: req.AnalysisType,
		CaseID:       req.CaseID,
		InputText:    req.CaseText,
	})
	if err != nil {
		writeDomainError(w, err, "orchestration failed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type orchestrateTypesRequest struct {
	CaseText      string   `json:"caseText"`
	AnalysisTypes []string `json:"analysisTypes"`
	CaseID        string   `json:"caseId"`
}

// OrchestrateTypes runs several analysis types as one orchestration over the
// union of their routed agents.
func (h *Handlers) OrchestrateTypes(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[orchestrateTypesRequest](w, r)
	if !ok {
		return
	}

	res, err := h.Supervisor.OrchestrateTypes(r.Context(), req.AnalysisTypes, req.CaseID, req.CaseText)
	if err != nil {
		writeDomainError(w, err, "orchestration failed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetOrchestration returns a cached orchestration result until its TTL lapses.
func (h *Handlers) GetOrchestration(w http.ResponseWriter, r *http.Request) {
	res, err := h.Supervisor.GetResult(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "orchestration result not found or expired")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

// SendMessage publishes one inter-agent message and returns the stamped
// envelope.
func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[service.SendRequest](w, r)
	if !ok {
		return
	}

	env, err := h.Messaging.Send(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "message not sent")
		return
	}
	writeJSON(w, http.StatusCreated, env)
}

// ---------------------------------------------------------------------------
// Health
// ---------------------------------------------------------------------------

// Health reports service liveness plus downstream connectivity.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	natsStatus := "disconnected"
	if h.Bus != nil && h.Bus.IsConnected() {
		natsStatus = "connected"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"nats":    natsStatus,
		"backend": h.BackendURL,
	})
}
