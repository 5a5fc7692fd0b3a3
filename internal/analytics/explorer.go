package analytics

import (
	"fmt"
	"sort"

	"github.com/gyeh/rafscope/internal/dataset"
	"github.com/gyeh/rafscope/internal/raf"
	"github.com/gyeh/rafscope/internal/round"
)

// histogramEdges bucket the clamped RAF range [0.3, 3.0].
var histogramEdges = []float64{0.3, 0.6, 0.9, 1.2, 1.5, 2.0, 3.0}

// RAFBucket is one histogram bar.
type RAFBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// MemberRow is one explorer table row.
type MemberRow struct {
	ID              string  `json:"id"`
	Age             int     `json:"age"`
	Gender          string  `json:"gender"`
	State           string  `json:"state"`
	Plan            string  `json:"plan"`
	RAF             float64 `json:"raf"`
	SuspectWeight   float64 `json:"suspect_weight"`
	CodedConditions int     `json:"coded_conditions"`
}

// Explorer is the population-explorer bundle: RAF distribution, coded
// condition prevalence, the revenue-concentration curve, and one page of
// member rows sorted by RAF descending.
type Explorer struct {
	Histogram     []RAFBucket    `json:"histogram"`
	Prevalence    map[string]int `json:"prevalence"`
	Concentration []float64      `json:"concentration"`
	Members       []MemberRow    `json:"members"`
	Total         int            `json:"total"`
	Page          int            `json:"page"`
	PageSize      int            `json:"page_size"`
}

// BuildExplorer assembles the explorer bundle. page is 1-based; out-of-range
// pages return an empty member list, never an error.
func BuildExplorer(snap *dataset.Snapshot, page, pageSize int) Explorer {
	members := snap.Members()
	e := Explorer{
		Histogram:  make([]RAFBucket, len(histogramEdges)-1),
		Prevalence: make(map[string]int),
		Total:      len(members),
	}
	for i := 1; i < len(histogramEdges); i++ {
		e.Histogram[i-1].Label = bucketLabel(histogramEdges[i-1], histogramEdges[i])
	}

	revenues := make([]float64, 0, len(members))
	rows := make([]MemberRow, 0, len(members))
	for _, m := range members {
		r := snap.RAF(m.ID)
		for i := 1; i < len(histogramEdges); i++ {
			if r < histogramEdges[i] || i == len(histogramEdges)-1 {
				e.Histogram[i-1].Count++
				break
			}
		}
		for _, code := range m.CodedConditions {
			e.Prevalence[code]++
		}
		revenues = append(revenues, r*raf.BaseRatePMPM*float64(m.Months()))
		rows = append(rows, MemberRow{
			ID:              m.ID,
			Age:             m.Age,
			Gender:          string(m.Gender),
			State:           m.State,
			Plan:            string(m.Plan),
			RAF:             r,
			SuspectWeight:   round.Ratio(snap.SuspectWeight(m.ID)),
			CodedConditions: len(m.CodedConditions),
		})
	}

	e.Concentration = concentrationCurve(revenues)

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].RAF != rows[j].RAF {
			return rows[i].RAF > rows[j].RAF
		}
		return rows[i].ID < rows[j].ID
	})
	e.Members, e.Page, e.PageSize = paginate(rows, page, pageSize)
	return e
}

func bucketLabel(lo, hi float64) string {
	return fmt.Sprintf("%.1f-%.1f", lo, hi)
}

// concentrationCurve returns the cumulative revenue share held by the top
// 10%, 20%, ... 100% of members.
func concentrationCurve(revenues []float64) []float64 {
	if len(revenues) == 0 {
		return nil
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(revenues)))

	var total float64
	for _, r := range revenues {
		total += r
	}
	if total == 0 {
		return nil
	}

	curve := make([]float64, 10)
	var running float64
	next := 0
	for i, r := range revenues {
		running += r
		for next < 10 && i+1 >= (next+1)*len(revenues)/10 {
			curve[next] = round.Ratio(running / total)
			next++
		}
	}
	return curve
}

// paginate slices one 1-based page out of rows, clamping the page size.
func paginate[T any](rows []T, page, pageSize int) ([]T, int, int) {
	if pageSize <= 0 || pageSize > 500 {
		pageSize = 50
	}
	if page < 1 {
		page = 1
	}
	lo := (page - 1) * pageSize
	if lo >= len(rows) {
		return []T{}, page, pageSize
	}
	hi := lo + pageSize
	if hi > len(rows) {
		hi = len(rows)
	}
	return rows[lo:hi], page, pageSize
}
