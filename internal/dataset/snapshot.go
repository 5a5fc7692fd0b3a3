// Package dataset builds and serves immutable analysis snapshots of the
// member/claim population, plus the parquet and Postgres load paths that
// feed them.
package dataset

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/rafscope/internal/model"
	"github.com/gyeh/rafscope/internal/raf"
)

// Snapshot is one fully-built, read-only view of the population. All derived
// caches (per-member RAF, lightweight suspect weights) are computed at
// construction; nothing is mutated afterwards, so concurrent readers need no
// locking. A new load produces a new Snapshot; the two never interleave.
type Snapshot struct {
	ID       uuid.UUID
	LoadedAt time.Time

	members []model.Member
	byID    map[string]int
	claims  model.ClaimsIndex
	orphans int

	rafByMember     map[string]float64
	suspectWeight   map[string]float64
	suspectCodes    map[string][]string
	totalClaimCount int
}

// NewSnapshot indexes claims by member, drops orphans with a warning, and
// precomputes the per-member derived caches.
func NewSnapshot(members []model.Member, claims []model.Claim, log zerolog.Logger) *Snapshot {
	s := &Snapshot{
		ID:            uuid.New(),
		LoadedAt:      time.Now().UTC(),
		members:       members,
		byID:          make(map[string]int, len(members)),
		claims:        make(model.ClaimsIndex, len(members)),
		rafByMember:   make(map[string]float64, len(members)),
		suspectWeight: make(map[string]float64, len(members)),
		suspectCodes:  make(map[string][]string, len(members)),
	}
	for i := range members {
		s.byID[members[i].ID] = i
	}

	for _, c := range claims {
		if _, ok := s.byID[c.MemberID]; !ok {
			// Orphan claims are excluded from analysis, never an error.
			s.orphans++
			continue
		}
		s.claims[c.MemberID] = append(s.claims[c.MemberID], c)
		s.totalClaimCount++
	}
	if s.orphans > 0 {
		log.Warn().Int("orphan_claims", s.orphans).Msg("claims referencing unknown members excluded")
	}

	for i := range members {
		m := &members[i]
		s.rafByMember[m.ID] = raf.ComputeRAF(m)
		weight, codes := raf.SuspectWeights(m, s.claims[m.ID])
		s.suspectWeight[m.ID] = weight
		s.suspectCodes[m.ID] = codes
	}

	log.Info().
		Str("snapshot_id", s.ID.String()).
		Int("members", len(members)).
		Int("claims", s.totalClaimCount).
		Int("orphans", s.orphans).
		Msg("snapshot built")
	return s
}

// Members returns the member list. Callers must not mutate it.
func (s *Snapshot) Members() []model.Member {
	return s.members
}

// Member returns the member with the given ID.
func (s *Snapshot) Member(id string) (*model.Member, bool) {
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return &s.members[i], true
}

// Claims returns one member's claims (nil for unknown members).
func (s *Snapshot) Claims(memberID string) []model.Claim {
	return s.claims[memberID]
}

// ClaimsIndex returns the full member→claims index.
func (s *Snapshot) ClaimsIndex() model.ClaimsIndex {
	return s.claims
}

// RAF returns the precomputed risk-adjustment factor for a member.
func (s *Snapshot) RAF(memberID string) float64 {
	return s.rafByMember[memberID]
}

// SuspectWeight returns the precomputed lightweight suspect weight total.
func (s *Snapshot) SuspectWeight(memberID string) float64 {
	return s.suspectWeight[memberID]
}

// SuspectCodes returns the condition codes the lightweight heuristic fired
// for a member.
func (s *Snapshot) SuspectCodes(memberID string) []string {
	return s.suspectCodes[memberID]
}

// MemberCount returns the population size.
func (s *Snapshot) MemberCount() int {
	return len(s.members)
}

// ClaimCount returns the number of indexed (non-orphan) claims.
func (s *Snapshot) ClaimCount() int {
	return s.totalClaimCount
}

// OrphanClaims returns how many claims were excluded at build time.
func (s *Snapshot) OrphanClaims() int {
	return s.orphans
}

// Filter returns the members matching the given state and/or plan. Empty
// values match everything.
func (s *Snapshot) Filter(state string, plan model.PlanTier) []model.Member {
	var out []model.Member
	for _, m := range s.members {
		if state != "" && m.State != state {
			continue
		}
		if plan != "" && m.Plan != plan {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Store hands out the current snapshot and swaps in replacements
// atomically. In-flight readers keep the snapshot they started with.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns a Store primed with the given snapshot (may be nil).
func NewStore(s *Snapshot) *Store {
	st := &Store{}
	if s != nil {
		st.current.Store(s)
	}
	return st
}

// Current returns the active snapshot, or nil before the first load.
func (st *Store) Current() *Snapshot {
	return st.current.Load()
}

// Swap atomically replaces the active snapshot. The replacement must be
// fully built before it is swapped in.
func (st *Store) Swap(s *Snapshot) {
	st.current.Store(s)
}
