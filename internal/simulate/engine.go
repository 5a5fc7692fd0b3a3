// Package simulate projects population-level cost, MLR, and risk revenue
// under adjustable policy levers. Pure function over a loaded snapshot.
package simulate

import (
	"github.com/rs/zerolog"

	"github.com/gyeh/rafscope/internal/dataset"
	"github.com/gyeh/rafscope/internal/model"
	"github.com/gyeh/rafscope/internal/raf"
	"github.com/gyeh/rafscope/internal/round"
)

const (
	// memberCostBase is the illustrative per-member baseline cost before
	// plan and risk multipliers.
	memberCostBase = 1200.0
	// highRiskCostMultiplier doubles projected cost for high-risk members.
	highRiskCostMultiplier = 2.0
	// codingFlatBonus is the flat RAF bonus applied by the coding-improvement
	// lever, only for members with at least one coded condition.
	codingFlatBonus = 0.05
	// mlrDisplayCap bounds the returned MLR fields for display sanity. The
	// cap is cosmetic: the bps improvement is computed from uncapped values
	// before the cap is applied.
	mlrDisplayCap = 0.95
)

// Canonical plan mix used when all three inputs are zero.
var defaultMix = model.PlanMix{Bronze: 0.40, Silver: 0.35, Gold: 0.25}

// normalizeMix scales the three plan-mix inputs to proportions summing to 1.
// The mix is display-only population composition; it never re-weights the
// member set.
func normalizeMix(req model.SimulationRequest) model.PlanMix {
	total := req.BronzePct + req.SilverPct + req.GoldPct
	if total <= 0 {
		return defaultMix
	}
	return model.PlanMix{
		Bronze: round.Ratio(req.BronzePct / total),
		Silver: round.Ratio(req.SilverPct / total),
		Gold:   round.Ratio(req.GoldPct / total),
	}
}

// Run projects the population outcome for one request.
func Run(snap *dataset.Snapshot, req model.SimulationRequest, log zerolog.Logger) model.SimulationResult {
	members := snap.Members()

	var (
		projectedCost  float64
		premiumTotal   float64
		baselineRev    float64
		upliftRev      float64
		simulatedRAFs  float64
		highRiskCount  int
	)

	for i := range members {
		m := &members[i]
		months := float64(m.Months())

		highRisk := m.RiskScore >= req.RiskThreshold
		if highRisk {
			highRiskCount++
		}
		cost := memberCostBase * m.Plan.CostMultiplier() * (0.9 + m.RiskScore*0.2)
		if highRisk {
			cost *= highRiskCostMultiplier
		}
		projectedCost += cost

		premiumTotal += m.Plan.PremiumPMPM() * months

		currentRAF := snap.RAF(m.ID)
		baselineRev += currentRAF * raf.BaseRatePMPM * months

		// Closure and coding levers add a linear per-member uplift.
		upliftWeight := snap.SuspectWeight(m.ID) * req.CloseSuspectPct / 100
		if len(m.CodedConditions) > 0 {
			upliftWeight += codingFlatBonus * req.CodingImprovementPct / 100
		}
		upliftRev += upliftWeight * raf.BaseRatePMPM * months
		simulatedRAFs += currentRAF + upliftWeight
	}

	totalRevenue := baselineRev + upliftRev

	// bps improvement from uncapped ratios; the display cap comes after.
	rawMLR, adjustedMLR := 0.0, 0.0
	if premiumTotal > 0 {
		rawMLR = projectedCost / premiumTotal
		adjustedMLR = projectedCost / (premiumTotal + upliftRev)
	}
	improvementBps := round.BasisPoints(rawMLR - adjustedMLR)
	if rawMLR > mlrDisplayCap {
		rawMLR = mlrDisplayCap
	}
	if adjustedMLR > mlrDisplayCap {
		adjustedMLR = mlrDisplayCap
	}

	avgRAF := 0.0
	highRiskPct := 0.0
	if len(members) > 0 {
		avgRAF = simulatedRAFs / float64(len(members))
		highRiskPct = float64(highRiskCount) / float64(len(members)) * 100
	}

	result := model.SimulationResult{
		ProjectedCost:     round.Currency(projectedCost),
		ExpectedMLR:       round.Ratio(rawMLR),
		AdjustedMLR:       round.Ratio(adjustedMLR),
		MLRImprovementBps: improvementBps,
		HighRiskCount:     highRiskCount,
		HighRiskPct:       round.Percent(highRiskPct),
		PlanMix:           normalizeMix(req),
		AvgSimulatedRAF:   round.Ratio(avgRAF),
		TotalRiskRevenue:  round.Currency(totalRevenue),
	}

	log.Debug().
		Float64("projected_cost", result.ProjectedCost).
		Float64("total_risk_revenue", result.TotalRiskRevenue).
		Int("high_risk_count", result.HighRiskCount).
		Msg("simulation complete")
	return result
}
