package orchestration

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Summarize renders the aggregate narrative for an orchestration: a header
// with success/failure counts, one section per successful agent, and a
// trailing Failed Agents section that is omitted when every agent succeeded.
// Agents are rendered in consultation order.
func Summarize(analysisType string, agents []string, results map[string]map[string]any) string {
	var failed []string
	succeeded := 0
	for _, id := range agents {
		if Failed(results[id]) {
			failed = append(failed, id)
		} else {
			succeeded++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", titleCase(analysisType))
	fmt.Fprintf(&b, "%d agents consulted: %d succeeded, %d failed.\n",
		len(agents), succeeded, len(failed))

	for _, id := range agents {
		outcome := results[id]
		if Failed(outcome) {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", id, renderOutcome(outcome))
	}

	if len(failed) > 0 {
		b.WriteString("\n## Failed Agents\n\n")
		for _, id := range failed {
			msg, _ := results[id]["error"].(string)
			fmt.Fprintf(&b, "- %s: %s\n", id, msg)
		}
	}

	return b.String()
}

// renderOutcome returns the agent's reported analysis as text when it already
// is text, otherwise a structured dump of the whole payload.
func renderOutcome(outcome map[string]any) string {
	if s, ok := outcome["analysis"].(string); ok && s != "" {
		return s
	}
	if s, ok := outcome["result"].(string); ok && s != "" {
		return s
	}
	data, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", outcome)
	}
	return string(data)
}

// titleCase turns "risk_assessment" into "Risk Assessment".
func titleCase(analysisType string) string {
	words := strings.Split(analysisType, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
