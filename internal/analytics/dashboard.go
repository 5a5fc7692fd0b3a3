// Package analytics builds the read-side aggregate bundles served by the
// API: dashboard KPIs, the population explorer, and the claims lens. All
// functions are pure reads over a snapshot.
package analytics

import (
	"fmt"

	"github.com/gyeh/rafscope/internal/dataset"
	"github.com/gyeh/rafscope/internal/raf"
	"github.com/gyeh/rafscope/internal/round"
)

// Dashboard is the landing-page KPI bundle. Suspect figures here come from
// the lightweight single-signal heuristic, not the full risk agent; the two
// are expected to disagree (coarse KPIs vs. per-member evidence review).
type Dashboard struct {
	MemberCount        int            `json:"member_count"`
	ClaimCount         int            `json:"claim_count"`
	AvgRAF             float64        `json:"avg_raf"`
	TotalRiskRevenue   float64        `json:"total_risk_revenue"`
	SuspectMemberCount int            `json:"suspect_member_count"`
	SuspectMemberPct   float64        `json:"suspect_member_pct"`
	SuspectRevenue     float64        `json:"suspect_revenue"`
	SuspectConditions  map[string]int `json:"suspect_conditions"`
	ExecutiveSummary   string         `json:"executive_summary"`
}

// BuildDashboard aggregates the population KPIs from the snapshot's
// precomputed caches.
func BuildDashboard(snap *dataset.Snapshot) Dashboard {
	d := Dashboard{
		MemberCount:       snap.MemberCount(),
		ClaimCount:        snap.ClaimCount(),
		SuspectConditions: make(map[string]int),
	}

	var rafSum, revenue, suspectRevenue float64
	for _, m := range snap.Members() {
		months := float64(m.Months())
		r := snap.RAF(m.ID)
		rafSum += r
		revenue += r * raf.BaseRatePMPM * months

		weight := snap.SuspectWeight(m.ID)
		if weight > 0 {
			d.SuspectMemberCount++
			suspectRevenue += weight * raf.BaseRatePMPM * months
		}
		for _, code := range snap.SuspectCodes(m.ID) {
			d.SuspectConditions[code]++
		}
	}

	if d.MemberCount > 0 {
		d.AvgRAF = round.Ratio(rafSum / float64(d.MemberCount))
		d.SuspectMemberPct = round.Percent(float64(d.SuspectMemberCount) / float64(d.MemberCount) * 100)
	}
	d.TotalRiskRevenue = round.Currency(revenue)
	d.SuspectRevenue = round.Currency(suspectRevenue)

	d.ExecutiveSummary = fmt.Sprintf(
		"Population of %d members with an average RAF of %.3f and $%.2f in annualized risk revenue. %d members (%.1f%%) carry suspect condition patterns worth an estimated $%.2f if documented and coded.",
		d.MemberCount, d.AvgRAF, d.TotalRiskRevenue,
		d.SuspectMemberCount, d.SuspectMemberPct, d.SuspectRevenue)
	return d
}
