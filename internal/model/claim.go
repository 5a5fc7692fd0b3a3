package model

import "time"

// ClaimType is the claim's service category.
type ClaimType string

const (
	ClaimInpatient  ClaimType = "IP"
	ClaimOutpatient ClaimType = "OP"
	ClaimPharmacy   ClaimType = "RX"
)

// Claim is a single adjudicated claim line.
type Claim struct {
	ID            string    `json:"claim_id"`
	MemberID      string    `json:"member_id"`
	ServiceDate   time.Time `json:"service_date"`
	Type          ClaimType `json:"type"`
	AllowedAmount float64   `json:"allowed_amount"`
}

// ClaimsIndex maps member ID → that member's claims. Claims whose member ID
// matches no loaded member (orphans) are excluded at index build time.
type ClaimsIndex map[string][]Claim
