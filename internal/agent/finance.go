package agent

import (
	"github.com/gyeh/rafscope/internal/model"
	"github.com/gyeh/rafscope/internal/round"
)

// FinanceContext carries the plan/member economics the finance agent needs.
type FinanceContext struct {
	PlanType     model.PlanTier
	MemberMonths int
	ClaimsCost   float64
	Premium      float64
	CurrentRAF   float64
}

// Impact tier thresholds on revenue uplift.
const (
	impactHighUplift   = 5000.0
	impactMediumUplift = 2000.0
)

// RunFinanceAgent translates risk findings into financial impact. The
// orchestrator only invokes it when findings exist; given an empty list it
// returns a degenerate zero-impact result rather than an error.
func RunFinanceAgent(risk RiskOutput, fctx FinanceContext) model.FinancialImpact {
	var rafUplift, revenueUplift float64
	for _, f := range risk.Findings {
		rafUplift += f.RAFUplift
		revenueUplift += f.RevenueUplift
	}

	rawMLR := 0.0
	if fctx.Premium > 0 {
		rawMLR = fctx.ClaimsCost / fctx.Premium
	}
	adjustedMLR := 0.0
	if fctx.Premium+revenueUplift > 0 {
		adjustedMLR = fctx.ClaimsCost / (fctx.Premium + revenueUplift)
	}

	tier := model.ImpactLow
	switch {
	case revenueUplift >= impactHighUplift:
		tier = model.ImpactHigh
	case revenueUplift >= impactMediumUplift:
		tier = model.ImpactMedium
	}

	return model.FinancialImpact{
		TotalRAFUplift: round.Ratio(rafUplift),
		RevenueUplift:  round.Currency(revenueUplift),
		RawMLR:         round.Ratio(rawMLR),
		AdjustedMLR:    round.Ratio(adjustedMLR),
		MLRDeltaBps:    round.BasisPoints(adjustedMLR - rawMLR),
		ImpactTier:     tier,
	}
}
