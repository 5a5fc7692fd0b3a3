package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/rafscope/internal/db"
	"github.com/gyeh/rafscope/internal/model"
	embedsql "github.com/gyeh/rafscope/internal/sql"
)

// memberCopyRow adapts a member to the members table COPY column order.
type memberCopyRow struct {
	m       model.Member
	batchID uuid.UUID
}

func (r memberCopyRow) CopyValues() []any {
	coded := r.m.CodedConditions
	if coded == nil {
		coded = []string{}
	}
	return []any{
		r.m.ID, r.batchID, r.m.Age, string(r.m.Gender), r.m.State,
		string(r.m.Plan), r.m.RiskScore, r.m.ChronicCondition, coded, r.m.Months(),
	}
}

// claimCopyRow adapts a claim to the claims table COPY column order.
type claimCopyRow struct {
	c       model.Claim
	batchID uuid.UUID
}

func (r claimCopyRow) CopyValues() []any {
	return []any{
		r.c.ID, r.batchID, r.c.MemberID, r.c.ServiceDate,
		string(r.c.Type), r.c.AllowedAmount,
	}
}

var memberColumns = []string{
	"member_id", "batch_id", "age", "gender", "state",
	"plan", "risk_score", "chronic_condition", "coded_conditions", "member_months",
}

var claimColumns = []string{
	"claim_id", "batch_id", "member_id", "service_date", "claim_type", "allowed_amount",
}

// LoadResult holds metrics from one bulk load.
type LoadResult struct {
	BatchID       uuid.UUID
	MembersLoaded int64
	ClaimsLoaded  int64
	Duration      time.Duration
}

// StoreBatch bulk-loads a validated dataset into Postgres under a fresh
// batch UUID via the COPY protocol.
func StoreBatch(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, members []model.Member, claims []model.Claim, memberFile, claimFile string) (*LoadResult, error) {
	start := time.Now()
	batchID := uuid.New()

	if _, err := pool.Exec(ctx, embedsql.RegisterLoadBatch,
		batchID, memberFile, claimFile, len(members), len(claims)); err != nil {
		return nil, fmt.Errorf("register load batch: %w", err)
	}

	memberCh := make(chan memberCopyRow, 256)
	go func() {
		defer close(memberCh)
		for _, m := range members {
			select {
			case memberCh <- memberCopyRow{m: m, batchID: batchID}:
			case <-ctx.Done():
				return
			}
		}
	}()
	nMembers, err := pool.CopyFrom(ctx,
		pgx.Identifier{"rafscope", "members"},
		memberColumns,
		db.NewChannelSource(memberCh),
	)
	if err != nil {
		return nil, fmt.Errorf("copy members: %w", err)
	}

	claimCh := make(chan claimCopyRow, 256)
	go func() {
		defer close(claimCh)
		for _, c := range claims {
			select {
			case claimCh <- claimCopyRow{c: c, batchID: batchID}:
			case <-ctx.Done():
				return
			}
		}
	}()
	nClaims, err := pool.CopyFrom(ctx,
		pgx.Identifier{"rafscope", "claims"},
		claimColumns,
		db.NewChannelSource(claimCh),
	)
	if err != nil {
		return nil, fmt.Errorf("copy claims: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Str("batch_id", batchID.String()).
		Int64("members", nMembers).
		Int64("claims", nClaims).
		Str("duration", dur.String()).
		Msg("batch loaded")

	return &LoadResult{
		BatchID:       batchID,
		MembersLoaded: nMembers,
		ClaimsLoaded:  nClaims,
		Duration:      dur,
	}, nil
}

// LatestBatchID returns the most recently loaded batch.
func LatestBatchID(ctx context.Context, pool *pgxpool.Pool) (uuid.UUID, error) {
	var id uuid.UUID
	if err := pool.QueryRow(ctx, embedsql.LatestBatch).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("latest batch: %w", err)
	}
	return id, nil
}

// LoadFromPostgres reads one batch's members and claims back into memory.
func LoadFromPostgres(ctx context.Context, pool *pgxpool.Pool, batchID uuid.UUID) ([]model.Member, []model.Claim, error) {
	rows, err := pool.Query(ctx, embedsql.SelectMembers, batchID)
	if err != nil {
		return nil, nil, fmt.Errorf("select members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		var m model.Member
		var gender, plan string
		if err := rows.Scan(&m.ID, &m.Age, &gender, &m.State, &plan,
			&m.RiskScore, &m.ChronicCondition, &m.CodedConditions, &m.MemberMonths); err != nil {
			return nil, nil, fmt.Errorf("scan member: %w", err)
		}
		m.Gender = model.Gender(gender)
		m.Plan = model.PlanTier(plan)
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate members: %w", err)
	}

	crows, err := pool.Query(ctx, embedsql.SelectClaims, batchID)
	if err != nil {
		return nil, nil, fmt.Errorf("select claims: %w", err)
	}
	defer crows.Close()

	var claims []model.Claim
	for crows.Next() {
		var c model.Claim
		var ctype string
		if err := crows.Scan(&c.ID, &c.MemberID, &c.ServiceDate, &ctype, &c.AllowedAmount); err != nil {
			return nil, nil, fmt.Errorf("scan claim: %w", err)
		}
		c.Type = model.ClaimType(ctype)
		claims = append(claims, c)
	}
	if err := crows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate claims: %w", err)
	}

	return members, claims, nil
}

// DeleteBatch removes one batch and its rows (cleanup for failed loads).
func DeleteBatch(ctx context.Context, pool *pgxpool.Pool, batchID uuid.UUID) error {
	if _, err := pool.Exec(ctx, embedsql.DeleteBatch, batchID); err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}
