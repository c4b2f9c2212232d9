package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all API routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Route("/api/v1", func(r chi.Router) {
		// Version
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"version":"0.1.0"}`))
		})

		// Agents
		r.Get("/agents", h.ListAgents)
		r.Post("/agents/register", h.RegisterAgent)
		r.Post("/agents/orchestrate", h.OrchestrateAnalysis)
		r.Get("/agents/supervisor/config", h.GetSupervisorConfig)
		r.Get("/agents/{id}", h.GetAgent)
		r.Delete("/agents/{id}", h.DeregisterAgent)

		// Tasks
		r.Post("/tasks", h.SubmitTask)
		r.Get("/tasks", h.ListTasks)
		r.Get("/tasks/{id}", h.GetTask)

		// Orchestration
		r.Post("/orchestrate", h.OrchestrateTypes)
		r.Get("/orchestrations/{id}", h.GetOrchestration)

		// Inter-agent messages
		r.Post("/messages", h.SendMessage)
	})
}
