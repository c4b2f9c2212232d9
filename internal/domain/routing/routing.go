// Package routing maps an analysis type to the ordered set of agents that
// should handle it. This is the single policy point for "which agents handle
// which analysis".
package routing

import "github.com/lexgrid/lexgrid/internal/domain/agent"

// Resolver resolves an analysis type to an ordered list of agent ids.
// Implementations must be pure: deterministic for a given input, no I/O.
type Resolver interface {
	Resolve(analysisType string) []string
}

// Table is the static routing policy. A "full" analysis fans out to the four
// core specialists; narrower types consult one or two agents. Unknown types
// fall back to the general-purpose legal analyst — never an empty set.
type Table struct{}

// NewTable returns the static routing table.
func NewTable() Table { return Table{} }

var routes = map[string][]string{
	"full_analysis": {
		agent.IDLegalAnalyst,
		agent.IDRiskAssessor,
		agent.IDLoopholeDetector,
		agent.IDPrecedentResearcher,
	},
	"risk_assessment":    {agent.IDRiskAssessor, agent.IDLegalAnalyst},
	"loophole_detection": {agent.IDLoopholeDetector},
	"precedent_search":   {agent.IDPrecedentResearcher},
	"contract_review":    {agent.IDLegalAnalyst, agent.IDComplianceChecker},
	"compliance_check":   {agent.IDComplianceChecker},
}

// Resolve returns a copy of the routed agent ids for analysisType.
func (Table) Resolve(analysisType string) []string {
	ids, ok := routes[analysisType]
	if !ok {
		return []string{agent.IDLegalAnalyst}
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
