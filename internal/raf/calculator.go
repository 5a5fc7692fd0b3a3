// Package raf computes risk-adjustment factors, risk-adjusted revenue, and
// the lightweight single-signal suspect-weight heuristic that powers
// population-level KPIs. All weights and rates are illustrative.
package raf

import (
	"math"

	"github.com/gyeh/rafscope/internal/model"
	"github.com/gyeh/rafscope/internal/round"
)

// BaseRatePMPM is the illustrative per-member-per-month base rate used to
// convert RAF into risk-adjusted revenue.
const BaseRatePMPM = 850.0

// RAF is clamped to this range regardless of coded conditions.
const (
	MinRAF = 0.3
	MaxRAF = 3.0
)

// ageBand maps an age range to a demographic factor per gender.
type ageBand struct {
	maxAge int // inclusive upper bound; last band is open-ended
	male   float64
	female float64
}

var ageBands = []ageBand{
	{maxAge: 34, male: 0.30, female: 0.32},
	{maxAge: 44, male: 0.42, female: 0.45},
	{maxAge: 54, male: 0.58, female: 0.62},
	{maxAge: 64, male: 0.78, female: 0.82},
	{maxAge: math.MaxInt, male: 1.15, female: 1.22},
}

// unknownGenderFactor is used when gender is neither M nor F.
const unknownGenderFactor = 0.5

// DemographicFactor returns the age/gender component of the RAF.
func DemographicFactor(age int, gender model.Gender) float64 {
	for _, b := range ageBands {
		if age <= b.maxAge {
			switch gender {
			case model.GenderMale:
				return b.male
			case model.GenderFemale:
				return b.female
			default:
				return unknownGenderFactor
			}
		}
	}
	return unknownGenderFactor
}

// ComputeRAF returns the member's risk-adjustment factor: demographic factor
// plus the weights of all coded conditions, clamped to [0.3, 3.0] and
// rounded to 3 decimals. Total over any well-formed member.
func ComputeRAF(m *model.Member) float64 {
	score := DemographicFactor(m.Age, m.Gender)
	for _, code := range m.CodedConditions {
		score += model.ConditionWeight(code)
	}
	if score < MinRAF {
		score = MinRAF
	}
	if score > MaxRAF {
		score = MaxRAF
	}
	return round.Ratio(score)
}

// RiskAdjRevenue converts a RAF into period revenue: raf × base rate × months.
func RiskAdjRevenue(raf float64, memberMonths int) float64 {
	return round.Currency(raf * BaseRatePMPM * float64(memberMonths))
}

// Breakdown decomposes a member's RAF into its components for display.
type Breakdown struct {
	Demographic float64           `json:"demographic_factor"`
	Conditions  []model.Condition `json:"coded_conditions"`
	Total       float64           `json:"total_raf"`
}

// ComputeBreakdown returns the demographic and per-condition RAF components.
func ComputeBreakdown(m *model.Member) Breakdown {
	b := Breakdown{
		Demographic: DemographicFactor(m.Age, m.Gender),
		Conditions:  []model.Condition{},
	}
	for _, code := range m.CodedConditions {
		if c, ok := model.ConditionByCode(code); ok {
			b.Conditions = append(b.Conditions, c)
		}
	}
	b.Total = ComputeRAF(m)
	return b
}
