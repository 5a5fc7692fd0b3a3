package dataset

import (
	"testing"
	"time"

	"github.com/gyeh/rafscope/internal/model"
)

func TestValidateMember(t *testing.T) {
	good := model.Member{ID: "MBR-1", Age: 40, Gender: model.GenderFemale, Plan: model.PlanSilver, RiskScore: 0.5}
	if errs := ValidateMember(&good); len(errs) != 0 {
		t.Errorf("valid member produced errors: %v", errs)
	}

	bad := model.Member{
		Age: -1, Gender: "X", Plan: "Platinum", RiskScore: 1.0,
		CodedConditions: []string{"DIABETES", "DIABETES"},
	}
	errs := ValidateMember(&bad)
	if len(errs) != 6 {
		t.Fatalf("got %d errors, want 6: %v", len(errs), errs)
	}
	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, f := range []string{"member_id", "age", "gender", "plan", "risk_score", "coded_conditions"} {
		if !fields[f] {
			t.Errorf("missing error for field %s", f)
		}
	}
}

func TestValidateClaim(t *testing.T) {
	good := model.Claim{
		ID: "CLM-1", MemberID: "MBR-1", Type: model.ClaimPharmacy,
		ServiceDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), AllowedAmount: 120,
	}
	if errs := ValidateClaim(&good); len(errs) != 0 {
		t.Errorf("valid claim produced errors: %v", errs)
	}

	bad := model.Claim{Type: "DENTAL", AllowedAmount: -5}
	errs := ValidateClaim(&bad)
	if len(errs) != 5 {
		t.Errorf("got %d errors, want 5: %v", len(errs), errs)
	}
}

func TestValidateAll_CollectsEverything(t *testing.T) {
	members := []model.Member{
		{ID: "MBR-1", Age: 40, Gender: model.GenderMale, Plan: model.PlanBronze, RiskScore: 0.2},
		{ID: "MBR-2", Age: 40, Gender: "?", Plan: model.PlanBronze, RiskScore: 0.2},
	}
	claims := []model.Claim{
		{ID: "CLM-1", MemberID: "MBR-1", Type: "BOGUS",
			ServiceDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), AllowedAmount: 10},
	}
	errs := ValidateAll(members, claims)
	if len(errs) != 2 {
		t.Errorf("got %d errors, want 2: %v", len(errs), errs)
	}
}

func TestFieldError_Error(t *testing.T) {
	e := FieldError{Record: "member", ID: "MBR-1", Field: "age", Message: "must be non-negative"}
	want := "member MBR-1: age: must be non-negative"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}
}
