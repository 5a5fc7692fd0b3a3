package model

import "fmt"

// Named invariants for suspect findings. Confidence strictly below 1
// communicates irreducible uncertainty; two corroborating pieces of
// evidence are the minimum to surface a candidate at all.
const (
	MaxConfidence = 0.99
	MinEvidence   = 2
)

// SuspectFinding is one evidence-backed candidate condition for a member.
// Findings propose review candidates; they never assert a diagnosis.
type SuspectFinding struct {
	ConditionCode string   `json:"condition_code"`
	Label         string   `json:"label"`
	Confidence    float64  `json:"confidence"`
	Evidence      []string `json:"evidence"`
	RAFUplift     float64  `json:"raf_uplift"`
	RevenueUplift float64  `json:"revenue_uplift_estimate"`
}

// NewSuspectFinding constructs a finding, enforcing the confidence and
// evidence invariants at the only place findings are created.
func NewSuspectFinding(code, label string, confidence float64, evidence []string, rafUplift, revenueUplift float64) (SuspectFinding, error) {
	if confidence < 0 || confidence >= 1 {
		return SuspectFinding{}, fmt.Errorf("finding %s: confidence %.4f outside [0,1)", code, confidence)
	}
	if len(evidence) < MinEvidence {
		return SuspectFinding{}, fmt.Errorf("finding %s: %d evidence entries, need at least %d", code, len(evidence), MinEvidence)
	}
	return SuspectFinding{
		ConditionCode: code,
		Label:         label,
		Confidence:    confidence,
		Evidence:      evidence,
		RAFUplift:     rafUplift,
		RevenueUplift: revenueUplift,
	}, nil
}
