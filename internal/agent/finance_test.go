package agent

import (
	"testing"

	"github.com/gyeh/rafscope/internal/model"
)

func TestRunFinanceAgent_EmptyFindings(t *testing.T) {
	// Degenerate input: not an error, a zero-impact result.
	impact := RunFinanceAgent(RiskOutput{MemberID: "MBR-1"}, FinanceContext{
		PlanType: model.PlanBronze, MemberMonths: 12, ClaimsCost: 4000, Premium: 5400,
	})
	if impact.RevenueUplift != 0 || impact.TotalRAFUplift != 0 {
		t.Errorf("uplift = %v raf=%v, want zero", impact.RevenueUplift, impact.TotalRAFUplift)
	}
	if impact.MLRDeltaBps != 0 {
		t.Errorf("bps delta = %d, want 0", impact.MLRDeltaBps)
	}
	if impact.ImpactTier != model.ImpactLow {
		t.Errorf("tier = %s, want Low", impact.ImpactTier)
	}
}

func TestRunFinanceAgent_TierThresholds(t *testing.T) {
	tests := []struct {
		uplift float64
		want   model.ImpactTier
	}{
		{1999, model.ImpactLow},
		{2000, model.ImpactMedium},
		{4999, model.ImpactMedium},
		{5000, model.ImpactHigh},
	}
	for _, tt := range tests {
		risk := RiskOutput{Findings: []RiskFinding{{HCC: "DIABETES", RevenueUplift: tt.uplift}}}
		impact := RunFinanceAgent(risk, FinanceContext{Premium: 7200, ClaimsCost: 6000})
		if impact.ImpactTier != tt.want {
			t.Errorf("uplift %v: tier = %s, want %s", tt.uplift, impact.ImpactTier, tt.want)
		}
	}
}

func TestRunFinanceAgent_MLRMath(t *testing.T) {
	risk := RiskOutput{Findings: []RiskFinding{
		{HCC: "DIABETES", RAFUplift: 0.302, RevenueUplift: 3000},
	}}
	impact := RunFinanceAgent(risk, FinanceContext{ClaimsCost: 9000, Premium: 10000})
	if impact.RawMLR != 0.9 {
		t.Errorf("raw MLR = %v, want 0.9", impact.RawMLR)
	}
	// 9000 / 13000 = 0.6923…
	if impact.AdjustedMLR != 0.692 {
		t.Errorf("adjusted MLR = %v, want 0.692", impact.AdjustedMLR)
	}
	if impact.MLRDeltaBps >= 0 {
		t.Errorf("bps delta = %d, want negative (MLR improves)", impact.MLRDeltaBps)
	}
}

func TestRunFinanceAgent_ZeroPremium(t *testing.T) {
	impact := RunFinanceAgent(RiskOutput{Findings: []RiskFinding{{RevenueUplift: 100}}},
		FinanceContext{ClaimsCost: 9000, Premium: 0})
	if impact.RawMLR != 0 {
		t.Errorf("raw MLR with zero premium = %v, want 0", impact.RawMLR)
	}
}
