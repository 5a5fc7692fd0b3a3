// mkfixture writes a deterministic synthetic member/claim population as
// parquet files for demos and tests.
// Usage: go run ./cmd/mkfixture --out testdata --members 200 --seed 1
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/gyeh/rafscope/internal/dataset"
	"github.com/gyeh/rafscope/internal/model"
)

var states = []string{"TX", "CA", "FL", "NY", "GA", "IL", "OH"}

func main() {
	out := flag.String("out", "testdata", "output directory")
	nMembers := flag.Int("members", 200, "number of members to generate")
	seed := flag.Int64("seed", 1, "rng seed (fixed seed gives identical files)")
	flag.Parse()

	if err := os.MkdirAll(*out, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	members, claims := generate(rng, *nMembers)

	membersPath := filepath.Join(*out, "members.parquet")
	claimsPath := filepath.Join(*out, "claims.parquet")
	if err := dataset.WriteMembers(membersPath, members); err != nil {
		fmt.Fprintf(os.Stderr, "write members: %v\n", err)
		os.Exit(1)
	}
	if err := dataset.WriteClaims(claimsPath, claims); err != nil {
		fmt.Fprintf(os.Stderr, "write claims: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d members to %s and %d claims to %s\n",
		len(members), membersPath, len(claims), claimsPath)
}

func generate(rng *rand.Rand, n int) ([]model.Member, []model.Claim) {
	members := make([]model.Member, 0, n)
	var claims []model.Claim
	claimSeq := 0

	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		m := model.Member{
			ID:        fmt.Sprintf("MBR-%04d", i+1),
			Age:       20 + rng.Intn(70),
			Gender:    model.GenderMale,
			State:     states[rng.Intn(len(states))],
			Plan:      model.AllPlanTiers[rng.Intn(len(model.AllPlanTiers))],
			RiskScore: rng.Float64() * 0.99,
		}
		if rng.Intn(2) == 0 {
			m.Gender = model.GenderFemale
		}

		// Roughly a third of members carry a coded chronic condition; older,
		// higher-risk members carry more claims.
		if rng.Intn(3) == 0 {
			cond := model.AllConditions[rng.Intn(len(model.AllConditions))]
			m.CodedConditions = []string{cond.Code}
			m.ChronicCondition = true
		}
		members = append(members, m)

		nClaims := rng.Intn(4)
		if m.RiskScore > 0.6 {
			nClaims += 4 + rng.Intn(8)
		}
		for j := 0; j < nClaims; j++ {
			claimSeq++
			c := model.Claim{
				ID:          fmt.Sprintf("CLM-%06d", claimSeq),
				MemberID:    m.ID,
				ServiceDate: epoch.AddDate(0, 0, rng.Intn(365)),
				Type:        model.ClaimPharmacy,
				AllowedAmount: float64(20 + rng.Intn(400)),
			}
			switch rng.Intn(10) {
			case 0:
				c.Type = model.ClaimInpatient
				c.AllowedAmount = float64(5000 + rng.Intn(20000))
			case 1, 2, 3:
				c.Type = model.ClaimOutpatient
				c.AllowedAmount = float64(100 + rng.Intn(900))
			}
			claims = append(claims, c)
		}
	}
	return members, claims
}
