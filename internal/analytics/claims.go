package analytics

import (
	"math"
	"sort"

	"github.com/gyeh/rafscope/internal/dataset"
	"github.com/gyeh/rafscope/internal/model"
	"github.com/gyeh/rafscope/internal/round"
)

// ClaimsBundle is the claims-lens aggregate: spend rollups plus one page of
// claims sorted by allowed amount descending.
type ClaimsBundle struct {
	Total            int                `json:"total"`
	TotalAllowed     float64            `json:"total_allowed"`
	PMPMCost         float64            `json:"pmpm_cost"`
	OutlierThreshold float64            `json:"outlier_threshold"`
	SpendByType      map[string]float64 `json:"spend_by_type"`
	Claims           []model.Claim      `json:"claims"`
	Page             int                `json:"page"`
	PageSize         int                `json:"page_size"`
}

// BuildClaims assembles the claims bundle over all indexed (non-orphan)
// claims. The outlier threshold is the 95th percentile of allowed amounts.
func BuildClaims(snap *dataset.Snapshot, page, pageSize int) ClaimsBundle {
	b := ClaimsBundle{SpendByType: make(map[string]float64)}

	var all []model.Claim
	var totalAllowed float64
	for _, claims := range snap.ClaimsIndex() {
		for _, c := range claims {
			all = append(all, c)
			totalAllowed += c.AllowedAmount
			b.SpendByType[string(c.Type)] += c.AllowedAmount
		}
	}
	b.Total = len(all)
	b.TotalAllowed = round.Currency(totalAllowed)
	for t, v := range b.SpendByType {
		b.SpendByType[t] = round.Currency(v)
	}

	var totalMonths int
	for _, m := range snap.Members() {
		totalMonths += m.Months()
	}
	if totalMonths > 0 {
		b.PMPMCost = round.Currency(totalAllowed / float64(totalMonths))
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].AllowedAmount != all[j].AllowedAmount {
			return all[i].AllowedAmount > all[j].AllowedAmount
		}
		return all[i].ID < all[j].ID
	})
	b.OutlierThreshold = round.Currency(percentile95(all))
	b.Claims, b.Page, b.PageSize = paginate(all, page, pageSize)
	return b
}

// percentile95 expects claims sorted by allowed amount descending.
func percentile95(sorted []model.Claim) float64 {
	if len(sorted) == 0 {
		return 0
	}
	// Index of the 95th percentile from the top of the descending order.
	rank := int(math.Ceil(float64(len(sorted)) * 0.05))
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1].AllowedAmount
}
