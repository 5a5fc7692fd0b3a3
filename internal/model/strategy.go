package model

// SuspectStrategy scores uncoded conditions for one member. Two named
// strategies implement it: the single-signal dashboard heuristic and the
// evidence-gated risk agent. They disagree on purpose — the first feeds
// coarse population KPIs, the second per-member review — and must not be
// unified.
type SuspectStrategy interface {
	StrategyName() string
	SuspectWeights(m *Member, claims []Claim) (total float64, codes []string)
}
