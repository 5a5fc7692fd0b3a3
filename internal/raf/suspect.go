package raf

import "github.com/gyeh/rafscope/internal/model"

// suspectRule is one single-signal dashboard heuristic: the rule fires on a
// single claims-pattern threshold, independently per condition.
type suspectRule struct {
	code  string
	fires func(m *model.Member, s model.ClaimsSummary) bool
}

// suspectRules is the lightweight strategy behind population-level suspect
// weight totals. It is a separate, weaker strategy than the risk agent's
// ≥2-signal evaluators: this one feeds coarse dashboard KPIs, the agent
// feeds per-member evidence review. Dashboard and member-profile numbers
// are expected to differ; do not unify the two.
var suspectRules = []suspectRule{
	{code: "DIABETES", fires: func(_ *model.Member, s model.ClaimsSummary) bool {
		return s.RxSpend > 2000
	}},
	{code: "CHF", fires: func(_ *model.Member, s model.ClaimsSummary) bool {
		return s.IPSpend > 15000
	}},
	{code: "COPD", fires: func(_ *model.Member, s model.ClaimsSummary) bool {
		return s.OPVisits >= 6
	}},
	{code: "CKD", fires: func(_ *model.Member, s model.ClaimsSummary) bool {
		return s.RxSpend > 3500
	}},
	{code: "HYPERTENSION", fires: func(_ *model.Member, s model.ClaimsSummary) bool {
		return s.MultipleRxPattern()
	}},
}

// SuspectWeights runs the lightweight heuristic for one member and returns
// the total uncoded RAF weight plus the codes that fired. Conditions already
// coded for the member never count.
func SuspectWeights(m *model.Member, claims []model.Claim) (float64, []string) {
	s := model.Summarize(claims)
	var total float64
	var codes []string
	for _, r := range suspectRules {
		if m.HasCondition(r.code) {
			continue
		}
		if r.fires(m, s) {
			total += model.ConditionWeight(r.code)
			codes = append(codes, r.code)
		}
	}
	return total, codes
}

// DashboardStrategy is the lightweight heuristic as a named strategy.
type DashboardStrategy struct{}

var _ model.SuspectStrategy = DashboardStrategy{}

func (DashboardStrategy) StrategyName() string { return "dashboard-single-signal" }

func (DashboardStrategy) SuspectWeights(m *model.Member, claims []model.Claim) (float64, []string) {
	return SuspectWeights(m, claims)
}
