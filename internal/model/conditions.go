package model

// Condition is one of the supported chronic-condition categories.
// Weights are illustrative, not calibrated CMS-HCC values.
type Condition struct {
	Code   string  `json:"code"`  // e.g. "DIABETES"
	Label  string  `json:"label"` // e.g. "Diabetes with Chronic Complications"
	Weight float64 `json:"weight"`
}

// AllConditions lists the supported conditions in canonical order.
var AllConditions = []Condition{
	{Code: "DIABETES", Label: "Diabetes with Chronic Complications", Weight: 0.302},
	{Code: "CHF", Label: "Congestive Heart Failure", Weight: 0.331},
	{Code: "COPD", Label: "Chronic Obstructive Pulmonary Disease", Weight: 0.335},
	{Code: "CKD", Label: "Chronic Kidney Disease", Weight: 0.237},
	{Code: "HYPERTENSION", Label: "Hypertension", Weight: 0.118},
}

// ConditionByCode returns the Condition for the given code, or ok=false.
func ConditionByCode(code string) (Condition, bool) {
	for _, c := range AllConditions {
		if c.Code == code {
			return c, true
		}
	}
	return Condition{}, false
}

// ConditionWeight returns the RAF weight for a coded condition, 0 if unknown.
func ConditionWeight(code string) float64 {
	c, ok := ConditionByCode(code)
	if !ok {
		return 0
	}
	return c.Weight
}
