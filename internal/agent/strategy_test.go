package agent

import (
	"testing"

	"github.com/gyeh/rafscope/internal/model"
	"github.com/gyeh/rafscope/internal/raf"
)

// The two suspect strategies are intentionally different: the dashboard
// heuristic fires on a single claims threshold, the risk agent needs two
// corroborating signals. This pins down a member where they disagree so the
// divergence is never "fixed" by accident.
func TestSuspectStrategiesDiverge(t *testing.T) {
	m := model.Member{
		ID: "MBR-1", Age: 40, Gender: model.GenderMale,
		Plan: model.PlanBronze, RiskScore: 0.3,
	}
	// Four pharmacy claims totaling $2,400: over the dashboard spend
	// threshold, but below the agent's chronic-medication claim count.
	var claims []model.Claim
	for i := 0; i < 4; i++ {
		claims = append(claims, model.Claim{
			ID: "CLM-1", MemberID: m.ID, Type: model.ClaimPharmacy, AllowedAmount: 600,
		})
	}

	var dashboard model.SuspectStrategy = raf.DashboardStrategy{}
	var evidence model.SuspectStrategy = EvidenceStrategy{}

	dTotal, dCodes := dashboard.SuspectWeights(&m, claims)
	if dTotal != 0.302 || len(dCodes) != 1 || dCodes[0] != "DIABETES" {
		t.Errorf("dashboard strategy = (%v, %v), want (0.302, [DIABETES])", dTotal, dCodes)
	}

	eTotal, eCodes := evidence.SuspectWeights(&m, claims)
	if eTotal != 0 || len(eCodes) != 0 {
		t.Errorf("evidence strategy = (%v, %v), want no findings on a single signal", eTotal, eCodes)
	}

	if dashboard.StrategyName() == evidence.StrategyName() {
		t.Error("strategies must be distinctly named")
	}
}
