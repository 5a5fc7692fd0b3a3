package dataset

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gyeh/rafscope/internal/model"
)

func TestParquetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	membersPath := filepath.Join(dir, "members.parquet")
	claimsPath := filepath.Join(dir, "claims.parquet")

	members := []model.Member{
		{ID: "MBR-1", Age: 70, Gender: model.GenderFemale, State: "TX", Plan: model.PlanSilver,
			RiskScore: 0.8, ChronicCondition: true, CodedConditions: []string{"DIABETES", "CKD"}, MemberMonths: 10},
		{ID: "MBR-2", Age: 30, Gender: model.GenderMale, State: "CA", Plan: model.PlanBronze, RiskScore: 0.2},
	}
	claims := []model.Claim{
		{ID: "CLM-1", MemberID: "MBR-1", ServiceDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Type: model.ClaimInpatient, AllowedAmount: 18000},
	}

	if err := WriteMembers(membersPath, members); err != nil {
		t.Fatalf("WriteMembers: %v", err)
	}
	if err := WriteClaims(claimsPath, claims); err != nil {
		t.Fatalf("WriteClaims: %v", err)
	}

	gotMembers, err := ReadMembers(membersPath)
	if err != nil {
		t.Fatalf("ReadMembers: %v", err)
	}
	if len(gotMembers) != 2 {
		t.Fatalf("read %d members, want 2", len(gotMembers))
	}
	m := gotMembers[0]
	if m.ID != "MBR-1" || m.Plan != model.PlanSilver || len(m.CodedConditions) != 2 || m.MemberMonths != 10 {
		t.Errorf("member round trip mismatch: %+v", m)
	}
	// Empty coded conditions stay empty, not [""].
	if len(gotMembers[1].CodedConditions) != 0 {
		t.Errorf("expected no coded conditions, got %v", gotMembers[1].CodedConditions)
	}

	gotClaims, err := ReadClaims(claimsPath)
	if err != nil {
		t.Fatalf("ReadClaims: %v", err)
	}
	if len(gotClaims) != 1 {
		t.Fatalf("read %d claims, want 1", len(gotClaims))
	}
	c := gotClaims[0]
	if c.Type != model.ClaimInpatient || c.AllowedAmount != 18000 {
		t.Errorf("claim round trip mismatch: %+v", c)
	}
	if !c.ServiceDate.Equal(claims[0].ServiceDate) {
		t.Errorf("service date = %v, want %v", c.ServiceDate, claims[0].ServiceDate)
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want string // "" means nil expected
	}{
		{"2024-03-15", "2024-03-15"},
		{"03/15/2024", "2024-03-15"},
		{"3/5/2024", "2024-03-05"},
		{"2024/03/15", "2024-03-15"},
		{"2024-03-15T10:30:00Z", "2024-03-15"},
		{"  2024-03-15  ", "2024-03-15"},
		{"", ""},
		{"not a date", ""},
		{"15-03-2024", ""},
	}
	for _, c := range cases {
		got := ParseDate(c.in)
		if c.want == "" {
			if got != nil {
				t.Errorf("ParseDate(%q) = %v, want nil", c.in, got)
			}
			continue
		}
		if got == nil {
			t.Errorf("ParseDate(%q) = nil, want %s", c.in, c.want)
			continue
		}
		if got.Format("2006-01-02") != c.want {
			t.Errorf("ParseDate(%q) = %s, want %s", c.in, got.Format("2006-01-02"), c.want)
		}
	}
}

func TestReadMembers_MissingFile(t *testing.T) {
	if _, err := ReadMembers("/nonexistent/members.parquet"); err == nil {
		t.Error("expected error for missing file")
	}
}
