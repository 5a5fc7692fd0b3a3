package dataset

import (
	"fmt"

	"github.com/gyeh/rafscope/internal/model"
)

// FieldError is one field-level validation failure in an uploaded record.
type FieldError struct {
	Record  string `json:"record"` // "member" or "claim"
	ID      string `json:"id"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s: %s: %s", e.Record, e.ID, e.Field, e.Message)
}

// ValidateMember checks required fields and value ranges. It returns all
// problems found, never panicking or stopping at the first.
func ValidateMember(m *model.Member) []FieldError {
	var errs []FieldError
	add := func(field, msg string) {
		errs = append(errs, FieldError{Record: "member", ID: m.ID, Field: field, Message: msg})
	}

	if m.ID == "" {
		add("member_id", "required")
	}
	if m.Age < 0 {
		add("age", "must be non-negative")
	}
	if m.Gender != model.GenderMale && m.Gender != model.GenderFemale {
		add("gender", fmt.Sprintf("must be M or F, got %q", m.Gender))
	}
	switch m.Plan {
	case model.PlanBronze, model.PlanSilver, model.PlanGold:
	default:
		add("plan", fmt.Sprintf("unknown plan tier %q", m.Plan))
	}
	if m.RiskScore < 0 || m.RiskScore >= 1 {
		add("risk_score", fmt.Sprintf("must be in [0,1), got %v", m.RiskScore))
	}
	seen := make(map[string]bool, len(m.CodedConditions))
	for _, code := range m.CodedConditions {
		if seen[code] {
			add("coded_conditions", fmt.Sprintf("duplicate condition code %s", code))
		}
		seen[code] = true
	}
	return errs
}

// ValidateClaim checks required fields and value ranges for one claim.
// Orphanhood (a member ID matching no loaded member) is not checked here:
// orphans are excluded with a warning at snapshot build, never rejected.
func ValidateClaim(c *model.Claim) []FieldError {
	var errs []FieldError
	add := func(field, msg string) {
		errs = append(errs, FieldError{Record: "claim", ID: c.ID, Field: field, Message: msg})
	}

	if c.ID == "" {
		add("claim_id", "required")
	}
	if c.MemberID == "" {
		add("member_id", "required")
	}
	switch c.Type {
	case model.ClaimInpatient, model.ClaimOutpatient, model.ClaimPharmacy:
	default:
		add("type", fmt.Sprintf("must be IP, OP, or RX, got %q", c.Type))
	}
	if c.AllowedAmount < 0 {
		add("allowed_amount", "must be non-negative")
	}
	if c.ServiceDate.IsZero() {
		add("service_date", "required")
	}
	return errs
}

// ValidateAll validates every record and returns the combined error list.
// An empty list means the upload is analyzable.
func ValidateAll(members []model.Member, claims []model.Claim) []FieldError {
	var errs []FieldError
	for i := range members {
		errs = append(errs, ValidateMember(&members[i])...)
	}
	for i := range claims {
		errs = append(errs, ValidateClaim(&claims[i])...)
	}
	return errs
}
