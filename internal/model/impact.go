package model

// ImpactTier buckets the plan-level financial impact of closing findings.
type ImpactTier string

const (
	ImpactLow    ImpactTier = "Low"
	ImpactMedium ImpactTier = "Medium"
	ImpactHigh   ImpactTier = "High"
)

// FinancialImpact is the finance agent's translation of risk findings.
type FinancialImpact struct {
	TotalRAFUplift float64    `json:"total_raf_uplift"`
	RevenueUplift  float64    `json:"revenue_uplift"`
	RawMLR         float64    `json:"raw_mlr"`
	AdjustedMLR    float64    `json:"adjusted_mlr"`
	MLRDeltaBps    int        `json:"mlr_delta_bps"`
	ImpactTier     ImpactTier `json:"impact_tier"`
}

// ComplianceStatus is the compliance agent's gate decision.
type ComplianceStatus string

const (
	ComplianceApproved       ComplianceStatus = "APPROVED"
	ComplianceReviewRequired ComplianceStatus = "REVIEW_REQUIRED"
)

// RiskLevel grades compliance exposure.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// ComplianceResult is the compliance agent's verdict on language and evidence.
type ComplianceResult struct {
	Status    ComplianceStatus `json:"status"`
	RiskLevel RiskLevel        `json:"risk_level"`
	Notes     []string         `json:"notes"`
}

// OrchestratedOutput is the unified per-member pipeline result.
// FinancialImpact is nil exactly when no findings were produced.
type OrchestratedOutput struct {
	MemberID           string           `json:"member_id"`
	SuspectFindings    []SuspectFinding `json:"suspect_findings"`
	FinancialImpact    *FinancialImpact `json:"financial_impact"`
	Compliance         ComplianceResult `json:"compliance"`
	ExecutiveNarrative *string          `json:"executive_narrative"`
}
