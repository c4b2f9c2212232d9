// Package agent defines the agent descriptor domain entity.
package agent

// Status represents the current availability of an agent.
type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
	StatusBusy    Status = "busy"
)

// Descriptor describes a registered agent: its identity, what it can do,
// and how to reach its backing implementation. A descriptor with an empty
// Endpoint is a purely coordinating agent.
type Descriptor struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Capabilities []string `json:"capabilities"`
	Tools        []string `json:"tools"`
	Endpoint     string   `json:"endpoint,omitempty"`
	Status       Status   `json:"status"`
}

// Well-known agent ids installed at process start.
const (
	IDLegalAnalyst        = "legal-analyst"
	IDRiskAssessor        = "risk-assessor"
	IDLoopholeDetector    = "loophole-detector"
	IDPrecedentResearcher = "precedent-researcher"
	IDComplianceChecker   = "compliance-checker"
	IDSupervisor          = "supervisor"
)

// Defaults returns the fixed seed set: five tool-bearing specialists plus the
// pure-coordinator supervisor. backendURL is the analysis backend every
// specialist is served by.
func Defaults(backendURL string) []Descriptor {
	return []Descriptor{
		{
			ID:           IDLegalAnalyst,
			Name:         "Legal Analyst",
			Description:  "General-purpose legal case analysis",
			Capabilities: []string{"full_analysis", "contract_review"},
			Tools:        []string{"rag_search", "web_search"},
			Endpoint:     backendURL,
			Status:       StatusOnline,
		},
		{
			ID:           IDRiskAssessor,
			Name:         "Risk Assessor",
			Description:  "Scores litigation and contractual risk",
			Capabilities: []string{"risk_assessment"},
			Tools:        []string{"risk_assessment"},
			Endpoint:     backendURL,
			Status:       StatusOnline,
		},
		{
			ID:           IDLoopholeDetector,
			Name:         "Loophole Detector",
			Description:  "Finds exploitable gaps and ambiguities in legal text",
			Capabilities: []string{"loophole_detection"},
			Tools:        []string{"analyze_loopholes"},
			Endpoint:     backendURL,
			Status:       StatusOnline,
		},
		{
			ID:           IDPrecedentResearcher,
			Name:         "Precedent Researcher",
			Description:  "Retrieves similar precedent cases",
			Capabilities: []string{"precedent_search"},
			Tools:        []string{"rag_search"},
			Endpoint:     backendURL,
			Status:       StatusOnline,
		},
		{
			ID:           IDComplianceChecker,
			Name:         "Compliance Checker",
			Description:  "Checks regulatory and procedural compliance",
			Capabilities: []string{"compliance_check"},
			Tools:        []string{"rag_search", "web_search"},
			Endpoint:     backendURL,
			Status:       StatusOnline,
		},
		{
			ID:           IDSupervisor,
			Name:         "Supervisor",
			Description:  "Coordinates multi-agent analyses; holds no tools of its own",
			Capabilities: []string{"orchestration"},
			Tools:        []string{},
			Status:       StatusOnline,
		},
	}
}
