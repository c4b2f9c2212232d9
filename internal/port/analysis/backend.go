// Package analysis defines the port for the external legal-analysis backend.
// The orchestrator treats that backend as a black box: it accepts an analysis
// request and returns an opaque payload or an error.
package analysis

import "context"

// Request is the body sent to the backend. Exactly one of CaseID or InputText
// is expected to be set; the backend resolves CaseID to stored case text.
type Request struct {
	AnalysisType string `json:"analysis_type"`
	CaseID       string `json:"case_id,omitempty"`
	InputText    string `json:"input_text,omitempty"`
}

// Backend issues one analysis call. The returned payload is opaque; known
// fields (analysis, result, tools_used) are interpreted by the domain layer.
type Backend interface {
	Analyze(ctx context.Context, req Request) (map[string]any, error)
}
