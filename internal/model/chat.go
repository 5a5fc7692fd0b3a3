package model

// AnalysisCategory is the structured intent class of a free-text question.
type AnalysisCategory string

const (
	CategoryRAFLeakage      AnalysisCategory = "RAF Leakage"
	CategoryRevenueAtRisk   AnalysisCategory = "Revenue at Risk"
	CategoryWhatIfClosure   AnalysisCategory = "What-If Closure"
	CategoryPlanMLR         AnalysisCategory = "Plan MLR"
	CategoryHCCDrivers      AnalysisCategory = "HCC Drivers"
	CategoryStateComparison AnalysisCategory = "State Comparison"
	CategoryGeneral         AnalysisCategory = "General"
)

// ChatIntent is the deterministic interpretation of a question.
// Zero values mean "not extracted"; Percent is nil when absent.
type ChatIntent struct {
	State    string           `json:"state,omitempty"`
	Plan     PlanTier         `json:"plan,omitempty"`
	Category AnalysisCategory `json:"category"`
	Percent  *int             `json:"percent,omitempty"`
}

// ChartPayload is a renderer-agnostic chart series.
type ChartPayload struct {
	Kind   string    `json:"kind"` // "bar", "point"
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// ChatResponse is the answer bundle for one question. Narrative fields may
// be overwritten by the optional enrichment collaborator; chart payloads
// and notes are always the deterministic ones.
type ChatResponse struct {
	Answer            string         `json:"answer"`
	Evidence          []string       `json:"evidence"`
	Rationale         []string       `json:"rationale"`
	RecommendedAction string         `json:"recommended_action"`
	FollowUps         []string       `json:"follow_ups"`
	Charts            []ChartPayload `json:"charts,omitempty"`
	ConfidenceNote    string         `json:"confidence_note"`
	ComplianceNote    string         `json:"compliance_note"`
}
