package simulate

import (
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gyeh/rafscope/internal/dataset"
	"github.com/gyeh/rafscope/internal/model"
	"github.com/gyeh/rafscope/internal/raf"
)

func testSnapshot() *dataset.Snapshot {
	members := []model.Member{
		{ID: "MBR-1", Age: 70, Gender: model.GenderFemale, State: "TX", Plan: model.PlanSilver, RiskScore: 0.8},
		{ID: "MBR-2", Age: 30, Gender: model.GenderMale, State: "CA", Plan: model.PlanBronze, RiskScore: 0.2,
			CodedConditions: []string{"DIABETES"}},
		{ID: "MBR-3", Age: 50, Gender: model.GenderFemale, State: "TX", Plan: model.PlanGold, RiskScore: 0.6},
	}
	var claims []model.Claim
	for i := 0; i < 8; i++ {
		claims = append(claims, model.Claim{ID: "CLM-A", MemberID: "MBR-1", Type: model.ClaimPharmacy, AllowedAmount: 300})
	}
	return dataset.NewSnapshot(members, claims, zerolog.Nop())
}

func TestNormalizeMix(t *testing.T) {
	mix := normalizeMix(model.SimulationRequest{BronzePct: 20, SilverPct: 20, GoldPct: 10})
	if sum := mix.Bronze + mix.Silver + mix.Gold; math.Abs(sum-1.0) > 0.002 {
		t.Errorf("mix sums to %v, want 1.0", sum)
	}
	if mix.Bronze != 0.4 {
		t.Errorf("bronze share = %v, want 0.4", mix.Bronze)
	}

	// Inputs on a different scale normalize identically.
	scaled := normalizeMix(model.SimulationRequest{BronzePct: 200, SilverPct: 200, GoldPct: 100})
	if scaled != mix {
		t.Errorf("scale-invariance violated: %+v vs %+v", scaled, mix)
	}

	// All-zero input falls back to the canonical split.
	zero := normalizeMix(model.SimulationRequest{})
	if zero != defaultMix {
		t.Errorf("zero mix = %+v, want default 40/35/25", zero)
	}
}

func TestRun_BaselineWithoutLevers(t *testing.T) {
	snap := testSnapshot()
	res := Run(snap, model.SimulationRequest{RiskThreshold: 0.7}, zerolog.Nop())

	// No closure and no coding improvement: revenue is pure baseline.
	var baseline float64
	for _, m := range snap.Members() {
		baseline += snap.RAF(m.ID) * raf.BaseRatePMPM * float64(m.Months())
	}
	if math.Abs(res.TotalRiskRevenue-baseline) > 0.01 {
		t.Errorf("revenue %v != baseline %v", res.TotalRiskRevenue, baseline)
	}
	if res.HighRiskCount != 1 {
		t.Errorf("high-risk count = %d, want 1 (only MBR-1 at 0.8)", res.HighRiskCount)
	}
	if res.HighRiskPct != 33.3 {
		t.Errorf("high-risk pct = %v, want 33.3", res.HighRiskPct)
	}
}

func TestRun_ClosureMonotonic(t *testing.T) {
	snap := testSnapshot()
	prev := -1.0
	for _, pct := range []float64{0, 10, 25, 50, 75, 100} {
		res := Run(snap, model.SimulationRequest{RiskThreshold: 0.7, CloseSuspectPct: pct}, zerolog.Nop())
		if res.TotalRiskRevenue < prev {
			t.Errorf("revenue decreased at closure %v%%: %v < %v", pct, res.TotalRiskRevenue, prev)
		}
		prev = res.TotalRiskRevenue
	}
}

func TestRun_CodingBonusOnlyForCodedMembers(t *testing.T) {
	snap := testSnapshot()
	base := Run(snap, model.SimulationRequest{RiskThreshold: 0.7}, zerolog.Nop())
	coded := Run(snap, model.SimulationRequest{RiskThreshold: 0.7, CodingImprovementPct: 50}, zerolog.Nop())

	// Only MBR-2 has a coded condition: 0.05 × 50/100 × 850 × 12.
	wantDelta := codingFlatBonus * 0.5 * raf.BaseRatePMPM * 12
	if got := coded.TotalRiskRevenue - base.TotalRiskRevenue; math.Abs(got-wantDelta) > 0.01 {
		t.Errorf("coding uplift = %v, want %v", got, wantDelta)
	}
}

func TestRun_MLRDisplayCap(t *testing.T) {
	res := Run(testSnapshot(), model.SimulationRequest{RiskThreshold: 0.0}, zerolog.Nop())
	if res.ExpectedMLR > mlrDisplayCap || res.AdjustedMLR > mlrDisplayCap {
		t.Errorf("MLR fields exceed display cap: %v / %v", res.ExpectedMLR, res.AdjustedMLR)
	}
}

func TestRun_EmptyPopulation(t *testing.T) {
	snap := dataset.NewSnapshot(nil, nil, zerolog.Nop())
	res := Run(snap, model.SimulationRequest{}, zerolog.Nop())
	if res.ProjectedCost != 0 || res.TotalRiskRevenue != 0 || res.HighRiskCount != 0 {
		t.Errorf("empty population result: %+v", res)
	}
}
