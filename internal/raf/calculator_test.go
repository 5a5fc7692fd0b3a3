package raf

import (
	"testing"

	"github.com/gyeh/rafscope/internal/model"
)

func TestDemographicFactor(t *testing.T) {
	tests := []struct {
		age    int
		gender model.Gender
		want   float64
	}{
		{25, model.GenderMale, 0.30},
		{34, model.GenderFemale, 0.32},
		{35, model.GenderMale, 0.42},
		{50, model.GenderFemale, 0.62},
		{64, model.GenderMale, 0.78},
		{65, model.GenderFemale, 1.22},
		{70, model.GenderFemale, 1.22},
		{90, model.GenderMale, 1.15},
		{40, model.Gender("X"), 0.5},
	}
	for _, tt := range tests {
		if got := DemographicFactor(tt.age, tt.gender); got != tt.want {
			t.Errorf("DemographicFactor(%d, %q) = %v, want %v", tt.age, tt.gender, got, tt.want)
		}
	}
}

func TestComputeRAF_NoCodedConditions(t *testing.T) {
	// 70-year-old female with nothing coded: RAF is the bare 65+/F factor.
	m := &model.Member{ID: "M1", Age: 70, Gender: model.GenderFemale, RiskScore: 0.8}
	if got := ComputeRAF(m); got != 1.22 {
		t.Errorf("ComputeRAF = %v, want 1.22", got)
	}
}

func TestComputeRAF_Clamped(t *testing.T) {
	low := &model.Member{Age: 25, Gender: model.GenderMale} // 0.30 == MinRAF already
	if got := ComputeRAF(low); got < MinRAF || got > MaxRAF {
		t.Errorf("RAF %v outside [%v, %v]", got, MinRAF, MaxRAF)
	}

	// Every condition coded plus the oldest band still stays within range.
	codes := make([]string, 0, len(model.AllConditions))
	for _, c := range model.AllConditions {
		codes = append(codes, c.Code)
	}
	high := &model.Member{Age: 80, Gender: model.GenderFemale, CodedConditions: codes}
	if got := ComputeRAF(high); got < MinRAF || got > MaxRAF {
		t.Errorf("RAF %v outside [%v, %v]", got, MinRAF, MaxRAF)
	}
}

func TestComputeRAF_SumsConditionWeights(t *testing.T) {
	m := &model.Member{Age: 70, Gender: model.GenderFemale, CodedConditions: []string{"DIABETES", "CHF"}}
	want := 1.853 // 1.22 demographic + 0.302 + 0.331, rounded to 3 decimals
	if got := ComputeRAF(m); got != want {
		t.Errorf("ComputeRAF = %v, want %v", got, want)
	}
}

func TestRiskAdjRevenue(t *testing.T) {
	if got := RiskAdjRevenue(1.0, 12); got != 10200.0 {
		t.Errorf("RiskAdjRevenue(1.0, 12) = %v, want 10200", got)
	}
	if got := RiskAdjRevenue(0, 12); got != 0 {
		t.Errorf("RiskAdjRevenue(0, 12) = %v, want 0", got)
	}
}

func TestComputeBreakdown(t *testing.T) {
	m := &model.Member{Age: 58, Gender: model.GenderMale, CodedConditions: []string{"CKD", "UNKNOWN"}}
	b := ComputeBreakdown(m)
	if b.Demographic != 0.78 {
		t.Errorf("demographic = %v", b.Demographic)
	}
	if len(b.Conditions) != 1 || b.Conditions[0].Code != "CKD" {
		t.Errorf("conditions = %+v", b.Conditions)
	}
	if b.Total != ComputeRAF(m) {
		t.Errorf("total %v != ComputeRAF %v", b.Total, ComputeRAF(m))
	}
}

func TestSuspectWeights(t *testing.T) {
	claims := make([]model.Claim, 0, 8)
	for i := 0; i < 8; i++ {
		claims = append(claims, model.Claim{Type: model.ClaimPharmacy, AllowedAmount: 300})
	}
	// 8 RX claims, $2400 spend: DIABETES (spend > 2000) and HYPERTENSION
	// (multiple-rx) fire; CKD needs > 3500.
	m := &model.Member{ID: "M1", Age: 70, Gender: model.GenderFemale}
	weight, codes := SuspectWeights(m, claims)
	want := 0.302 + 0.118
	if weight != want {
		t.Errorf("weight = %v, want %v (codes %v)", weight, want, codes)
	}

	// Already-coded conditions never count.
	coded := &model.Member{ID: "M2", CodedConditions: []string{"DIABETES", "HYPERTENSION"}}
	weight, codes = SuspectWeights(coded, claims)
	if weight != 0 || len(codes) != 0 {
		t.Errorf("coded member: weight=%v codes=%v", weight, codes)
	}
}
