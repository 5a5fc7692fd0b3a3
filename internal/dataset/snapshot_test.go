package dataset

import (
	"fmt"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gyeh/rafscope/internal/model"
)

func buildTestSnapshot() *Snapshot {
	members := []model.Member{
		{ID: "MBR-1", Age: 70, Gender: model.GenderFemale, State: "TX", Plan: model.PlanSilver, RiskScore: 0.8},
		{ID: "MBR-2", Age: 30, Gender: model.GenderMale, State: "CA", Plan: model.PlanBronze, RiskScore: 0.2,
			CodedConditions: []string{"DIABETES"}},
	}
	claims := []model.Claim{
		{ID: "CLM-1", MemberID: "MBR-1", Type: model.ClaimPharmacy, AllowedAmount: 2500},
		{ID: "CLM-2", MemberID: "MBR-1", Type: model.ClaimOutpatient, AllowedAmount: 200},
		{ID: "CLM-ORPHAN", MemberID: "MBR-MISSING", Type: model.ClaimPharmacy, AllowedAmount: 50},
	}
	return NewSnapshot(members, claims, zerolog.Nop())
}

func TestNewSnapshot_ExcludesOrphans(t *testing.T) {
	snap := buildTestSnapshot()

	if snap.OrphanClaims() != 1 {
		t.Errorf("orphans = %d, want 1", snap.OrphanClaims())
	}
	if snap.ClaimCount() != 2 {
		t.Errorf("claim count = %d, want 2 (orphan excluded)", snap.ClaimCount())
	}
	if got := snap.Claims("MBR-MISSING"); got != nil {
		t.Errorf("orphan member has claims: %v", got)
	}
}

func TestNewSnapshot_PrecomputedCaches(t *testing.T) {
	snap := buildTestSnapshot()

	// 70/F demographic factor with no coded conditions.
	if got := snap.RAF("MBR-1"); got != 1.22 {
		t.Errorf("RAF(MBR-1) = %v, want 1.22", got)
	}
	// 30/M base plus coded DIABETES weight.
	if got, want := snap.RAF("MBR-2"), 0.602; math.Abs(got-want) > 0.0005 {
		t.Errorf("RAF(MBR-2) = %v, want %v", got, want)
	}

	// MBR-1's rx spend 2500 trips the lightweight diabetes rule only.
	if got := snap.SuspectWeight("MBR-1"); got != 0.302 {
		t.Errorf("suspect weight = %v, want 0.302", got)
	}
	codes := snap.SuspectCodes("MBR-1")
	if len(codes) != 1 || codes[0] != "DIABETES" {
		t.Errorf("suspect codes = %v, want [DIABETES]", codes)
	}
	// Already-coded conditions never re-fire.
	if got := snap.SuspectWeight("MBR-2"); got != 0 {
		t.Errorf("suspect weight for coded member = %v, want 0", got)
	}
}

func TestSnapshot_Filter(t *testing.T) {
	snap := buildTestSnapshot()

	if got := snap.Filter("TX", ""); len(got) != 1 || got[0].ID != "MBR-1" {
		t.Errorf("Filter(TX) = %v", got)
	}
	if got := snap.Filter("", model.PlanBronze); len(got) != 1 || got[0].ID != "MBR-2" {
		t.Errorf("Filter(Bronze) = %v", got)
	}
	if got := snap.Filter("TX", model.PlanBronze); len(got) != 0 {
		t.Errorf("Filter(TX,Bronze) = %v, want empty", got)
	}
	if got := snap.Filter("", ""); len(got) != 2 {
		t.Errorf("unfiltered = %d members, want 2", len(got))
	}
}

func TestStore_Swap(t *testing.T) {
	first := buildTestSnapshot()
	store := NewStore(first)

	if store.Current() != first {
		t.Fatal("store does not return the primed snapshot")
	}

	var extra []model.Member
	for i := 0; i < 5; i++ {
		extra = append(extra, model.Member{
			ID: fmt.Sprintf("MBR-N%d", i), Age: 40, Gender: model.GenderMale,
			Plan: model.PlanBronze, RiskScore: 0.1,
		})
	}
	second := NewSnapshot(extra, nil, zerolog.Nop())
	store.Swap(second)

	if store.Current() != second {
		t.Error("swap did not replace the snapshot")
	}
	// The first snapshot stays valid for in-flight readers.
	if first.MemberCount() != 2 {
		t.Error("old snapshot mutated by swap")
	}
}

func TestStore_EmptyUntilFirstLoad(t *testing.T) {
	store := NewStore(nil)
	if store.Current() != nil {
		t.Error("expected nil before first load")
	}
}
