package model

// Gender is the member's recorded gender.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// PlanTier is the member's benefit plan tier.
type PlanTier string

const (
	PlanBronze PlanTier = "Bronze"
	PlanSilver PlanTier = "Silver"
	PlanGold   PlanTier = "Gold"
)

// AllPlanTiers lists the supported plan tiers in canonical order.
var AllPlanTiers = []PlanTier{PlanBronze, PlanSilver, PlanGold}

// CostMultiplier returns the illustrative per-plan cost multiplier used by
// the what-if simulation. Unknown tiers fall back to Bronze.
func (p PlanTier) CostMultiplier() float64 {
	switch p {
	case PlanSilver:
		return 1.4
	case PlanGold:
		return 2.0
	default:
		return 1.0
	}
}

// PremiumPMPM returns the illustrative per-member-per-month premium for the
// plan tier, used to make MLR math total. Not a real rate schedule.
func (p PlanTier) PremiumPMPM() float64 {
	switch p {
	case PlanSilver:
		return 600
	case PlanGold:
		return 800
	default:
		return 450
	}
}

// Member is one enrolled member's demographic and coding snapshot.
// Immutable once loaded; identity is the member ID.
type Member struct {
	ID               string   `json:"member_id"`
	Age              int      `json:"age"`
	Gender           Gender   `json:"gender"`
	State            string   `json:"state"`
	Plan             PlanTier `json:"plan"`
	RiskScore        float64  `json:"risk_score"`
	ChronicCondition bool     `json:"chronic_condition"`
	CodedConditions  []string `json:"coded_conditions"`
	MemberMonths     int      `json:"member_months"`
}

// Months returns the member's coverage months, defaulting to 12 when unset.
func (m *Member) Months() int {
	if m.MemberMonths <= 0 {
		return 12
	}
	return m.MemberMonths
}

// HasCondition reports whether the given condition code is already coded.
func (m *Member) HasCondition(code string) bool {
	for _, c := range m.CodedConditions {
		if c == code {
			return true
		}
	}
	return false
}
