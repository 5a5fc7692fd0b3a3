// Package pipeline sequences the inference agents into one orchestrated run
// per member: risk → finance (conditional) → compliance → synthesis.
package pipeline

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gyeh/rafscope/internal/agent"
	"github.com/gyeh/rafscope/internal/model"
	"github.com/gyeh/rafscope/internal/raf"
)

// Stage names the orchestrator's sequential states. Transitions are strictly
// forward: INIT → RISK_EVALUATED → [FINANCE_EVALUATED] →
// COMPLIANCE_EVALUATED → SYNTHESIZED.
type Stage string

const (
	StageInit                Stage = "INIT"
	StageRiskEvaluated       Stage = "RISK_EVALUATED"
	StageFinanceEvaluated    Stage = "FINANCE_EVALUATED"
	StageComplianceEvaluated Stage = "COMPLIANCE_EVALUATED"
	StageSynthesized         Stage = "SYNTHESIZED"
)

// StageError wraps an error with the stage where it occurred.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// reviewConfidenceCap is applied to every finding after a REVIEW_REQUIRED
// compliance verdict. The cap runs after compliance evaluation, never
// before: compliance must see the agent's original confidence.
const reviewConfidenceCap = 0.85

// Orchestrator runs the agent pipeline for individual members.
type Orchestrator struct {
	log zerolog.Logger
}

// New returns an Orchestrator logging per-stage progress to log.
func New(log zerolog.Logger) *Orchestrator {
	return &Orchestrator{log: log}
}

// Run executes the full pipeline for one member and returns the unified
// output. Absence of findings is a normal outcome with a nil financial
// impact, not an error.
func (o *Orchestrator) Run(m *model.Member, claims []model.Claim) (*model.OrchestratedOutput, error) {
	stage := StageInit

	// Risk evaluation runs unconditionally.
	riskOut := agent.RunRiskAgent(m, claims)
	stage = StageRiskEvaluated
	o.log.Debug().
		Str("member", m.ID).
		Str("stage", string(stage)).
		Int("findings", len(riskOut.Findings)).
		Msg("risk agent complete")

	// Finance runs iff the risk agent produced findings.
	var impact *model.FinancialImpact
	if len(riskOut.Findings) > 0 {
		summary := model.Summarize(claims)
		fctx := agent.FinanceContext{
			PlanType:     m.Plan,
			MemberMonths: m.Months(),
			ClaimsCost:   summary.TotalAllowed,
			Premium:      m.Plan.PremiumPMPM() * float64(m.Months()),
			CurrentRAF:   raf.ComputeRAF(m),
		}
		fi := agent.RunFinanceAgent(riskOut, fctx)
		impact = &fi
		stage = StageFinanceEvaluated
		o.log.Debug().
			Str("member", m.ID).
			Str("stage", string(stage)).
			Float64("revenue_uplift", fi.RevenueUplift).
			Msg("finance agent complete")
	}

	// Compliance always runs, with the finance output (or nothing) as context.
	compliance := agent.RunComplianceAgent(riskOut, impact)
	stage = StageComplianceEvaluated
	o.log.Debug().
		Str("member", m.ID).
		Str("stage", string(stage)).
		Str("status", string(compliance.Status)).
		Str("risk_level", string(compliance.RiskLevel)).
		Msg("compliance agent complete")

	// Post-processing: compliance-driven confidence dampening, then mapping
	// of internal findings onto the public output shape.
	findings := make([]model.SuspectFinding, 0, len(riskOut.Findings))
	for _, rf := range riskOut.Findings {
		confidence := dampenConfidence(rf.Confidence, compliance.Status)
		f, err := model.NewSuspectFinding(rf.HCC, rf.Label, confidence, rf.Evidence, rf.RAFUplift, rf.RevenueUplift)
		if err != nil {
			return nil, &StageError{Stage: stage, Err: err}
		}
		findings = append(findings, f)
	}

	out := &model.OrchestratedOutput{
		MemberID:           m.ID,
		SuspectFindings:    findings,
		FinancialImpact:    impact,
		Compliance:         compliance,
		ExecutiveNarrative: synthesizeNarrative(m, findings, impact, riskOut.Narrative),
	}
	stage = StageSynthesized
	o.log.Debug().Str("member", m.ID).Str("stage", string(stage)).Msg("pipeline complete")
	return out, nil
}

// dampenConfidence caps finding confidence once compliance has demanded
// review.
func dampenConfidence(confidence float64, status model.ComplianceStatus) float64 {
	if status == model.ComplianceReviewRequired && confidence > reviewConfidenceCap {
		return reviewConfidenceCap
	}
	return confidence
}

// synthesizeNarrative prefers a finance-aware executive summary, falls back
// to the risk agent's own narrative, and otherwise stays nil.
func synthesizeNarrative(m *model.Member, findings []model.SuspectFinding, impact *model.FinancialImpact, riskNarrative *string) *string {
	if len(findings) > 0 && impact != nil {
		n := fmt.Sprintf("Member %s: %d suspect condition(s) with an estimated risk-adjustment revenue uplift of $%.2f. Recommend targeted coding review before next submission.",
			m.ID, len(findings), impact.RevenueUplift)
		return &n
	}
	return riskNarrative
}
