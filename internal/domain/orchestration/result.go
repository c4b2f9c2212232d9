// Package orchestration defines the combined outcome of a multi-agent
// analysis and the pure helpers that assemble it.
package orchestration

// Result is the aggregate outcome of one orchestration: a single request
// fanned out to several agents in parallel. It is constructed once, after
// every per-agent call has resolved, and never mutated afterwards.
type Result struct {
	TaskID         string                    `json:"taskId"`
	AnalysisType   string                    `json:"analysisType"`
	Agents         []string                  `json:"agents"`
	Results        map[string]map[string]any `json:"results"`
	Summary        string                    `json:"summary"`
	ProcessingTime float64                   `json:"processingTime"`
	ToolsUsed      []string                  `json:"toolsUsed"`
}

// FailedOutcome is the results-map slot recorded for an agent whose call
// failed.
func FailedOutcome(err error) map[string]any {
	return map[string]any{
		"error":  err.Error(),
		"status": "failed",
	}
}

// Failed reports whether a results-map slot records a failure.
func Failed(outcome map[string]any) bool {
	s, _ := outcome["status"].(string)
	return s == "failed"
}

// ToolNames extracts the tool names reported in a successful backend payload.
// The backend reports tools_used as a list of {name, ...} objects; anything
// that does not match that shape is ignored.
func ToolNames(payload map[string]any) []string {
	raw, ok := payload["tools_used"].([]any)
	if !ok {
		return nil
	}
	var names []string
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := m["name"].(string); ok && name != "" {
			names = append(names, name)
		}
	}
	return names
}

// MergeTools appends names to the running union, preserving first-seen order
// and dropping duplicates.
func MergeTools(union []string, names []string) []string {
	seen := make(map[string]bool, len(union))
	for _, n := range union {
		seen[n] = true
	}
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			union = append(union, n)
		}
	}
	return union
}
