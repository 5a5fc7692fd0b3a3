package model

// Thresholds for the derived claims-pattern booleans.
const (
	chronicMedicationMinRx = 6
	multipleRxMinRx        = 8
	highCostIPSpend        = 15000.0
	highCostSingleClaim    = 10000.0
)

// ClaimsSummary aggregates one member's claims for rule evaluation.
// It is recomputed per invocation and never persisted.
type ClaimsSummary struct {
	RxSpend        float64
	RxCount        int
	IPAdmissions   int
	IPSpend        float64
	OPVisits       int
	TotalAllowed   float64
	ClaimCount     int
	MaxSingleClaim float64
}

// Summarize aggregates a member's claims. Order of claims is irrelevant.
func Summarize(claims []Claim) ClaimsSummary {
	var s ClaimsSummary
	s.ClaimCount = len(claims)
	for _, c := range claims {
		s.TotalAllowed += c.AllowedAmount
		if c.AllowedAmount > s.MaxSingleClaim {
			s.MaxSingleClaim = c.AllowedAmount
		}
		switch c.Type {
		case ClaimPharmacy:
			s.RxCount++
			s.RxSpend += c.AllowedAmount
		case ClaimInpatient:
			s.IPAdmissions++
			s.IPSpend += c.AllowedAmount
		case ClaimOutpatient:
			s.OPVisits++
		}
	}
	return s
}

// ChronicMedicationPattern reports sustained pharmacy use (≥6 RX claims).
func (s ClaimsSummary) ChronicMedicationPattern() bool {
	return s.RxCount >= chronicMedicationMinRx
}

// MultipleRxPattern reports heavy pharmacy use (≥8 RX claims).
func (s ClaimsSummary) MultipleRxPattern() bool {
	return s.RxCount >= multipleRxMinRx
}

// HighCostProcedure reports aggregate inpatient spend above $15k, or any
// single claim above $10k.
func (s ClaimsSummary) HighCostProcedure() bool {
	return s.IPSpend > highCostIPSpend || s.MaxSingleClaim > highCostSingleClaim
}
