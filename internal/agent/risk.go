// Package agent holds the rule-based inference agents: risk (suspect
// condition evaluation), finance (impact translation), and compliance
// (language/evidence validation). Agents are pure functions over well-formed
// input; "no findings" is an outcome, never an error.
package agent

import (
	"fmt"
	"sort"

	"github.com/gyeh/rafscope/internal/model"
	"github.com/gyeh/rafscope/internal/raf"
	"github.com/gyeh/rafscope/internal/round"
)

// RiskFinding is the risk agent's internal finding representation. The
// orchestrator maps HCC to the public condition-code key so this shape can
// evolve independently of the external contract.
type RiskFinding struct {
	HCC           string   `json:"hcc"`
	Label         string   `json:"label"`
	Confidence    float64  `json:"confidence"`
	Evidence      []string `json:"evidence"`
	RAFUplift     float64  `json:"raf_uplift"`
	RevenueUplift float64  `json:"revenue_uplift"`
}

// RiskOutput is the risk agent's result for one member.
type RiskOutput struct {
	MemberID  string        `json:"member_id"`
	Findings  []RiskFinding `json:"findings"`
	Narrative *string       `json:"narrative"`
}

// signal is one boolean corroborating rule. eval returns whether the signal
// fires and, if so, a human-readable description of the observed evidence.
type signal struct {
	eval func(m *model.Member, s model.ClaimsSummary) (bool, string)
}

// conditionEvaluator holds the fixed rule set for one condition. Evaluators
// are independent and share no state; each produces at most one finding.
type conditionEvaluator struct {
	hcc     string
	signals []signal
}

var conditionEvaluators = []conditionEvaluator{
	{
		hcc: "DIABETES",
		signals: []signal{
			{eval: func(_ *model.Member, s model.ClaimsSummary) (bool, string) {
				return s.RxSpend > 2000, fmt.Sprintf("pharmacy spend $%.0f exceeds $2,000 threshold", s.RxSpend)
			}},
			{eval: func(_ *model.Member, s model.ClaimsSummary) (bool, string) {
				return s.ChronicMedicationPattern(), fmt.Sprintf("chronic medication pattern: %d pharmacy claims in period", s.RxCount)
			}},
			{eval: func(m *model.Member, _ model.ClaimsSummary) (bool, string) {
				return m.RiskScore >= 0.65, fmt.Sprintf("elevated risk score %.2f (threshold 0.65)", m.RiskScore)
			}},
		},
	},
	{
		hcc: "CHF",
		signals: []signal{
			{eval: func(_ *model.Member, s model.ClaimsSummary) (bool, string) {
				return s.IPAdmissions >= 1, fmt.Sprintf("%d inpatient admission(s) in period", s.IPAdmissions)
			}},
			{eval: func(_ *model.Member, s model.ClaimsSummary) (bool, string) {
				return s.HighCostProcedure(), fmt.Sprintf("high-cost utilization: inpatient spend $%.0f, largest claim $%.0f", s.IPSpend, s.MaxSingleClaim)
			}},
			{eval: func(m *model.Member, _ model.ClaimsSummary) (bool, string) {
				return m.RiskScore >= 0.7, fmt.Sprintf("elevated risk score %.2f (threshold 0.70)", m.RiskScore)
			}},
		},
	},
	{
		hcc: "COPD",
		signals: []signal{
			{eval: func(_ *model.Member, s model.ClaimsSummary) (bool, string) {
				return s.OPVisits >= 4, fmt.Sprintf("%d outpatient visits in period", s.OPVisits)
			}},
			{eval: func(_ *model.Member, s model.ClaimsSummary) (bool, string) {
				return s.IPAdmissions >= 1, fmt.Sprintf("%d inpatient admission(s) in period", s.IPAdmissions)
			}},
			{eval: func(_ *model.Member, s model.ClaimsSummary) (bool, string) {
				return s.HighCostProcedure(), fmt.Sprintf("high-cost utilization: inpatient spend $%.0f", s.IPSpend)
			}},
		},
	},
	{
		hcc: "CKD",
		signals: []signal{
			{eval: func(_ *model.Member, s model.ClaimsSummary) (bool, string) {
				return s.RxSpend > 3000, fmt.Sprintf("pharmacy spend $%.0f exceeds $3,000 threshold", s.RxSpend)
			}},
			{eval: func(m *model.Member, _ model.ClaimsSummary) (bool, string) {
				return m.RiskScore >= 0.75, fmt.Sprintf("elevated risk score %.2f (threshold 0.75)", m.RiskScore)
			}},
			{eval: func(_ *model.Member, s model.ClaimsSummary) (bool, string) {
				return s.IPAdmissions >= 1, fmt.Sprintf("%d inpatient admission(s) in period", s.IPAdmissions)
			}},
		},
	},
	{
		hcc: "HYPERTENSION",
		signals: []signal{
			{eval: func(_ *model.Member, s model.ClaimsSummary) (bool, string) {
				return s.MultipleRxPattern(), fmt.Sprintf("multiple-medication pattern: %d pharmacy claims in period", s.RxCount)
			}},
			{eval: func(m *model.Member, _ model.ClaimsSummary) (bool, string) {
				return m.RiskScore >= 0.6, fmt.Sprintf("elevated risk score %.2f (threshold 0.60)", m.RiskScore)
			}},
			{eval: func(m *model.Member, _ model.ClaimsSummary) (bool, string) {
				return m.Age >= 55, fmt.Sprintf("age %d in elevated-prevalence band (55+)", m.Age)
			}},
		},
	},
}

// minSignals is the corroboration floor: fewer than two independent signals
// never produces a finding.
const minSignals = 2

// strengthFactor grows monotonically with the number of corroborating
// signals. Two signals is the baseline.
func strengthFactor(signalCount int) float64 {
	if signalCount >= 3 {
		return 0.86
	}
	return 0.72
}

// completenessFactor discounts confidence when claim volume is thin.
func completenessFactor(s model.ClaimsSummary) float64 {
	switch {
	case s.ClaimCount >= 10:
		return 1.0
	case s.ClaimCount >= 5:
		return 0.92
	default:
		return 0.85
	}
}

// RunRiskAgent evaluates all condition evaluators for one member. Conditions
// already coded for the member are skipped regardless of signal strength.
func RunRiskAgent(m *model.Member, claims []model.Claim) RiskOutput {
	s := model.Summarize(claims)
	out := RiskOutput{MemberID: m.ID}

	for _, ev := range conditionEvaluators {
		if m.HasCondition(ev.hcc) {
			continue
		}
		var evidence []string
		for _, sig := range ev.signals {
			if fired, desc := sig.eval(m, s); fired {
				evidence = append(evidence, desc)
			}
		}
		if len(evidence) < minSignals {
			continue
		}

		cond, _ := model.ConditionByCode(ev.hcc)
		confidence := strengthFactor(len(evidence)) * completenessFactor(s)
		if confidence > model.MaxConfidence {
			confidence = model.MaxConfidence
		}
		out.Findings = append(out.Findings, RiskFinding{
			HCC:           ev.hcc,
			Label:         cond.Label,
			Confidence:    round.Ratio(confidence),
			Evidence:      evidence,
			RAFUplift:     cond.Weight,
			RevenueUplift: round.Currency(cond.Weight * raf.BaseRatePMPM * float64(m.Months())),
		})
	}

	out.Narrative = riskNarrative(m, s, out.Findings)
	return out
}

func riskNarrative(m *model.Member, s model.ClaimsSummary, findings []RiskFinding) *string {
	if len(findings) > 0 {
		n := fmt.Sprintf("Claims patterns for member %s suggest %d condition(s) that may warrant coding review. Candidates are evidence-backed estimates, not diagnoses.",
			m.ID, len(findings))
		return &n
	}
	if m.RiskScore > 0.7 && s.ClaimCount > 5 {
		n := fmt.Sprintf("Member %s shows an elevated risk score with meaningful claim volume, but current evidence is insufficient to surface suspect conditions.", m.ID)
		return &n
	}
	return nil
}

// EvidenceStrategy is the risk agent as a named suspect strategy. It demands
// corroborated evidence, so it fires less often than the dashboard heuristic.
type EvidenceStrategy struct{}

var _ model.SuspectStrategy = EvidenceStrategy{}

func (EvidenceStrategy) StrategyName() string { return "risk-agent-evidence" }

func (EvidenceStrategy) SuspectWeights(m *model.Member, claims []model.Claim) (float64, []string) {
	out := RunRiskAgent(m, claims)
	var total float64
	var codes []string
	for _, f := range out.Findings {
		total += f.RAFUplift
		codes = append(codes, f.HCC)
	}
	return total, codes
}

// RunRiskAgentBatch evaluates the topN members by risk score (descending) to
// bound cost on large populations. topN <= 0 means the whole population.
func RunRiskAgentBatch(members []model.Member, index model.ClaimsIndex, topN int) []RiskOutput {
	ordered := make([]model.Member, len(members))
	copy(ordered, members)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].RiskScore > ordered[j].RiskScore
	})
	if topN > 0 && topN < len(ordered) {
		ordered = ordered[:topN]
	}

	outputs := make([]RiskOutput, 0, len(ordered))
	for i := range ordered {
		outputs = append(outputs, RunRiskAgent(&ordered[i], index[ordered[i].ID]))
	}
	return outputs
}
