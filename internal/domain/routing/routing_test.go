package routing

import (
	"testing"

	"github.com/lexgrid/lexgrid/internal/domain/agent"
)

func TestResolveKnownTypes(t *testing.T) {
	tbl := NewTable()

	tests := []struct {
		analysisType string
		want         []string
	}{
		{"full_analysis", []string{
			agent.IDLegalAnalyst, agent.IDRiskAssessor,
			agent.IDLoopholeDetector, agent.IDPrecedentResearcher,
		}},
		{"risk_assessment", []string{agent.IDRiskAssessor, agent.IDLegalAnalyst}},
		{"loophole_detection", []string{agent.IDLoopholeDetector}},
		{"precedent_search", []string{agent.IDPrecedentResearcher}},
		{"contract_review", []string{agent.IDLegalAnalyst, agent.IDComplianceChecker}},
		{"compliance_check", []string{agent.IDComplianceChecker}},
	}

	for _, tt := range tests {
		got := tbl.Resolve(tt.analysisType)
		if len(got) != len(tt.want) {
			t.Fatalf("%s: expected %d agents, got %d", tt.analysisType, len(tt.want), len(got))
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s[%d]: expected %s, got %s", tt.analysisType, i, tt.want[i], got[i])
			}
		}
	}
}

func TestResolveUnknownFallsBack(t *testing.T) {
	tbl := NewTable()

	for _, unknown := range []string{"", "celestial_navigation", "FULL_ANALYSIS"} {
		got := tbl.Resolve(unknown)
		if len(got) != 1 || got[0] != agent.IDLegalAnalyst {
			t.Errorf("Resolve(%q) = %v, expected fallback to %s", unknown, got, agent.IDLegalAnalyst)
		}
	}
}

func TestResolveReturnsCopy(t *testing.T) {
	tbl := NewTable()

	first := tbl.Resolve("full_analysis")
	first[0] = "mutated"

	second := tbl.Resolve("full_analysis")
	if second[0] != agent.IDLegalAnalyst {
		t.Fatal("Resolve returned a shared slice; callers can corrupt the table")
	}
}

func TestResolveDeterministic(t *testing.T) {
	tbl := NewTable()

	a := tbl.Resolve("risk_assessment")
	b := tbl.Resolve("risk_assessment")
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("Resolve is not deterministic")
		}
	}
}
