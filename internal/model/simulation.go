package model

// SimulationRequest carries the adjustable policy levers for a what-if run.
// Plan-mix percentages need not sum to 100; they are normalized.
type SimulationRequest struct {
	RiskThreshold        float64 `json:"risk_threshold"`
	BronzePct            float64 `json:"bronze_pct"`
	SilverPct            float64 `json:"silver_pct"`
	GoldPct              float64 `json:"gold_pct"`
	CloseSuspectPct      float64 `json:"close_suspect_pct"`      // [0,100]
	CodingImprovementPct float64 `json:"coding_improvement_pct"` // [0,50]
}

// PlanMix is the normalized plan composition, proportions summing to 1.
// The mix describes a hypothetical population composition for display; it
// never re-weights the actual member set.
type PlanMix struct {
	Bronze float64 `json:"bronze"`
	Silver float64 `json:"silver"`
	Gold   float64 `json:"gold"`
}

// SimulationResult is the projected population outcome under the request.
type SimulationResult struct {
	ProjectedCost     float64 `json:"projected_cost"`
	ExpectedMLR       float64 `json:"expected_mlr"`
	AdjustedMLR       float64 `json:"adjusted_mlr"`
	MLRImprovementBps int     `json:"mlr_improvement_bps"`
	HighRiskCount     int     `json:"high_risk_count"`
	HighRiskPct       float64 `json:"high_risk_pct"`
	PlanMix           PlanMix `json:"plan_mix"`
	AvgSimulatedRAF   float64 `json:"avg_simulated_raf"`
	TotalRiskRevenue  float64 `json:"total_risk_revenue"`
}
