package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/rafscope/internal/dataset"
	"github.com/gyeh/rafscope/internal/model"
	"github.com/gyeh/rafscope/internal/narrative"
	"github.com/gyeh/rafscope/internal/pipeline"
	"github.com/gyeh/rafscope/internal/round"
)

const (
	confidenceNote = "Estimates are rule-based projections from claims patterns, not clinical determinations."
	complianceNote = "Suspect findings require clinical documentation review before any submission."

	// defaultClosurePct is assumed when a what-if question names no percentage.
	defaultClosurePct = 50
)

const helpMessage = "I can answer questions about RAF leakage, revenue at risk, " +
	"what-if suspect closure, plan MLR, HCC drivers, and state comparisons. " +
	"Try: \"Where is our RAF leakage concentrated?\""

// Orchestrator answers free-text questions by running the member pipeline
// over the population slice an intent selects, then rendering a
// category-specific narrative and chart payload.
type Orchestrator struct {
	pipe    *pipeline.Orchestrator
	gen     narrative.Generator // nil disables enrichment
	timeout time.Duration
	log     zerolog.Logger
}

// New returns a chat Orchestrator. gen may be nil.
func New(log zerolog.Logger, gen narrative.Generator, timeout time.Duration) *Orchestrator {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Orchestrator{
		pipe:    pipeline.New(log),
		gen:     gen,
		timeout: timeout,
		log:     log,
	}
}

// aggregate holds the population-slice rollup one answer is built from.
type aggregate struct {
	memberCount   int
	withFindings  int
	suspectPct    float64
	findingCounts map[string]int     // condition code → finding count
	revenueByCond map[string]float64 // condition code → uplift total
	revenueAtRisk float64
	claimsCost    float64
	premium       float64
	rawMLR        float64
	adjustedMLR   float64
	mlrDeltaBps   int
}

// Answer interprets the question, aggregates over the matching slice, and
// renders the response. Enrichment failures degrade to the deterministic
// answer.
func (o *Orchestrator) Answer(ctx context.Context, snap *dataset.Snapshot, question string) model.ChatResponse {
	intent := ParseIntent(question)
	o.log.Debug().
		Str("category", string(intent.Category)).
		Str("state", intent.State).
		Str("plan", string(intent.Plan)).
		Msg("question interpreted")

	members := snap.Filter(intent.State, intent.Plan)
	agg := o.aggregateSlice(snap, members)

	resp := o.render(snap, intent, agg)
	resp.ConfidenceNote = confidenceNote
	resp.ComplianceNote = complianceNote

	if o.gen != nil {
		o.enrich(ctx, question, agg, &resp)
	}
	return resp
}

// aggregateSlice runs the full agent pipeline for every member in the slice
// and rolls the outputs up into population figures.
func (o *Orchestrator) aggregateSlice(snap *dataset.Snapshot, members []model.Member) aggregate {
	agg := aggregate{
		memberCount:   len(members),
		findingCounts: make(map[string]int),
		revenueByCond: make(map[string]float64),
	}

	for i := range members {
		m := &members[i]
		claims := snap.Claims(m.ID)
		summary := model.Summarize(claims)
		agg.claimsCost += summary.TotalAllowed
		agg.premium += m.Plan.PremiumPMPM() * float64(m.Months())

		out, err := o.pipe.Run(m, claims)
		if err != nil {
			o.log.Warn().Err(err).Str("member", m.ID).Msg("pipeline failed for member, skipping")
			continue
		}
		if len(out.SuspectFindings) == 0 {
			continue
		}
		agg.withFindings++
		for _, f := range out.SuspectFindings {
			agg.findingCounts[f.ConditionCode]++
			agg.revenueByCond[f.ConditionCode] += f.RevenueUplift
			agg.revenueAtRisk += f.RevenueUplift
		}
	}

	if agg.memberCount > 0 {
		agg.suspectPct = round.Percent(float64(agg.withFindings) / float64(agg.memberCount) * 100)
	}
	if agg.premium > 0 {
		agg.rawMLR = round.Ratio(agg.claimsCost / agg.premium)
		agg.adjustedMLR = round.Ratio(agg.claimsCost / (agg.premium + agg.revenueAtRisk))
	}
	agg.mlrDeltaBps = round.BasisPoints(agg.adjustedMLR - agg.rawMLR)
	agg.revenueAtRisk = round.Currency(agg.revenueAtRisk)
	return agg
}

func (o *Orchestrator) render(snap *dataset.Snapshot, intent model.ChatIntent, agg aggregate) model.ChatResponse {
	scope := describeScope(intent)

	switch intent.Category {
	case model.CategoryRAFLeakage:
		return renderLeakage(scope, agg)
	case model.CategoryRevenueAtRisk:
		return renderRevenueAtRisk(scope, agg)
	case model.CategoryWhatIfClosure:
		return renderWhatIf(scope, intent, agg)
	case model.CategoryPlanMLR:
		return o.renderPlanMLR(snap, intent, agg)
	case model.CategoryHCCDrivers:
		return renderDrivers(scope, agg)
	case model.CategoryStateComparison:
		return o.renderStateComparison(snap, intent, agg)
	default:
		return model.ChatResponse{
			Answer: helpMessage,
			FollowUps: []string{
				"Where is our RAF leakage concentrated?",
				"What happens if we close 50% of suspect HCCs?",
				"Which plans have the worst adjusted MLR?",
			},
		}
	}
}

func describeScope(intent model.ChatIntent) string {
	switch {
	case intent.State != "" && intent.Plan != "":
		return fmt.Sprintf("%s %s members", intent.State, intent.Plan)
	case intent.State != "":
		return fmt.Sprintf("%s members", intent.State)
	case intent.Plan != "":
		return fmt.Sprintf("%s members", intent.Plan)
	default:
		return "all members"
	}
}

// sortedConditions returns condition codes ordered by descending count, ties
// broken by code for stable chart output.
func sortedConditions(counts map[string]int) []string {
	codes := make([]string, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		if counts[codes[i]] != counts[codes[j]] {
			return counts[codes[i]] > counts[codes[j]]
		}
		return codes[i] < codes[j]
	})
	return codes
}

func findingChart(title string, agg aggregate) model.ChartPayload {
	chart := model.ChartPayload{Kind: "bar", Title: title}
	for _, code := range sortedConditions(agg.findingCounts) {
		chart.Labels = append(chart.Labels, code)
		chart.Values = append(chart.Values, float64(agg.findingCounts[code]))
	}
	return chart
}

func renderLeakage(scope string, agg aggregate) model.ChatResponse {
	return model.ChatResponse{
		Answer: fmt.Sprintf("Of %d %s, %d (%.1f%%) show at least one suspect, uncoded condition, representing $%.2f in unrealized risk-adjustment revenue.",
			agg.memberCount, scope, agg.withFindings, agg.suspectPct, agg.revenueAtRisk),
		Evidence: []string{
			fmt.Sprintf("%d members evaluated, %d with suspect findings", agg.memberCount, agg.withFindings),
			fmt.Sprintf("Estimated revenue at risk: $%.2f", agg.revenueAtRisk),
		},
		Rationale: []string{
			"Each member was screened by the rule-based risk agent requiring at least two independent claims signals per condition.",
			"Revenue uplift assumes the suspect condition is documented and coded in the next submission cycle.",
		},
		RecommendedAction: "Prioritize chart review for members with multiple suspect findings.",
		FollowUps: []string{
			"Which HCCs are driving the leakage?",
			"What happens if we close 50% of suspect HCCs?",
		},
		Charts: []model.ChartPayload{findingChart("Suspect findings by condition", agg)},
	}
}

func renderRevenueAtRisk(scope string, agg aggregate) model.ChatResponse {
	chart := model.ChartPayload{Kind: "bar", Title: "Revenue at risk by condition"}
	for _, code := range sortedConditions(agg.findingCounts) {
		chart.Labels = append(chart.Labels, code)
		chart.Values = append(chart.Values, round.Currency(agg.revenueByCond[code]))
	}
	return model.ChatResponse{
		Answer: fmt.Sprintf("An estimated $%.2f of risk-adjustment revenue is at risk across %s from conditions that claims patterns suggest but coding does not capture.",
			agg.revenueAtRisk, scope),
		Evidence: []string{
			fmt.Sprintf("%d suspect members out of %d (%.1f%%)", agg.withFindings, agg.memberCount, agg.suspectPct),
			fmt.Sprintf("Adjusted MLR would move from %.3f to %.3f (%+d bps)", agg.rawMLR, agg.adjustedMLR, agg.mlrDeltaBps),
		},
		Rationale: []string{
			"Revenue at risk sums the per-finding uplift (condition weight × base rate × member months).",
		},
		RecommendedAction: "Target the top revenue-bearing conditions first; they concentrate most of the recoverable amount.",
		FollowUps: []string{
			"What happens if we close 30% of suspect HCCs?",
			"Which plans have the worst adjusted MLR?",
		},
		Charts: []model.ChartPayload{chart},
	}
}

func renderWhatIf(scope string, intent model.ChatIntent, agg aggregate) model.ChatResponse {
	pct := defaultClosurePct
	if intent.Percent != nil {
		pct = *intent.Percent
	}
	captured := round.Currency(agg.revenueAtRisk * float64(pct) / 100)

	return model.ChatResponse{
		Answer: fmt.Sprintf("Closing %d%% of suspect HCCs across %s would capture an estimated $%.2f of the $%.2f currently at risk.",
			pct, scope, captured, agg.revenueAtRisk),
		Evidence: []string{
			fmt.Sprintf("Total revenue at risk: $%.2f", agg.revenueAtRisk),
			fmt.Sprintf("Closure rate applied: %d%%", pct),
		},
		Rationale: []string{
			"The projection scales linearly: each closed finding contributes its full condition-weight uplift.",
		},
		RecommendedAction: "Run the population simulator to see the MLR effect of this closure rate alongside plan-mix changes.",
		FollowUps: []string{
			"What happens if we close 100% of suspect HCCs?",
			"How much revenue is missing from uncoded conditions?",
		},
		Charts: []model.ChartPayload{{
			Kind:   "point",
			Title:  fmt.Sprintf("Revenue captured at %d%% closure", pct),
			Labels: []string{fmt.Sprintf("%d%%", pct)},
			Values: []float64{captured},
		}},
	}
}

// renderPlanMLR recomputes the rollup per plan tier so the comparison uses
// each tier's own premium base.
func (o *Orchestrator) renderPlanMLR(snap *dataset.Snapshot, intent model.ChatIntent, agg aggregate) model.ChatResponse {
	chart := model.ChartPayload{Kind: "bar", Title: "Raw vs adjusted MLR by plan"}
	worstPlan, worstMLR := "", -1.0

	for _, tier := range []model.PlanTier{model.PlanBronze, model.PlanSilver, model.PlanGold} {
		members := snap.Filter(intent.State, tier)
		if len(members) == 0 {
			continue
		}
		planAgg := o.aggregateSlice(snap, members)
		chart.Labels = append(chart.Labels, string(tier)+" raw", string(tier)+" adjusted")
		chart.Values = append(chart.Values, planAgg.rawMLR, planAgg.adjustedMLR)
		if planAgg.adjustedMLR > worstMLR {
			worstPlan, worstMLR = string(tier), planAgg.adjustedMLR
		}
	}

	answer := "No plan-level MLR could be computed for this slice."
	if worstPlan != "" {
		answer = fmt.Sprintf("%s has the worst adjusted MLR at %.3f; full suspect closure moves the overall ratio by %+d bps.",
			worstPlan, worstMLR, agg.mlrDeltaBps)
	}
	return model.ChatResponse{
		Answer: answer,
		Evidence: []string{
			fmt.Sprintf("Population raw MLR %.3f, adjusted %.3f", agg.rawMLR, agg.adjustedMLR),
		},
		Rationale: []string{
			"Adjusted MLR adds the estimated suspect-closure revenue to the premium denominator.",
		},
		RecommendedAction: "Focus closure efforts on the highest-MLR plan where revenue recovery has the largest ratio effect.",
		FollowUps: []string{
			"Where is our RAF leakage concentrated?",
		},
		Charts: []model.ChartPayload{chart},
	}
}

func renderDrivers(scope string, agg aggregate) model.ChatResponse {
	codes := sortedConditions(agg.findingCounts)
	answer := fmt.Sprintf("No suspect HCC drivers were identified across %s.", scope)
	if len(codes) > 0 {
		answer = fmt.Sprintf("%s dominates the suspect findings across %s with %d occurrence(s), worth $%.2f in potential uplift.",
			codes[0], scope, agg.findingCounts[codes[0]], round.Currency(agg.revenueByCond[codes[0]]))
	}
	evidence := make([]string, 0, len(codes))
	for _, code := range codes {
		evidence = append(evidence, fmt.Sprintf("%s: %d finding(s), $%.2f", code, agg.findingCounts[code], round.Currency(agg.revenueByCond[code])))
	}
	return model.ChatResponse{
		Answer:   answer,
		Evidence: evidence,
		Rationale: []string{
			"Drivers are ranked by finding count; revenue weighting may differ because condition weights are unequal.",
		},
		RecommendedAction: "Audit documentation workflows for the dominant condition first.",
		FollowUps: []string{
			"How much revenue is missing from uncoded conditions?",
		},
		Charts: []model.ChartPayload{findingChart("Suspect findings by condition", agg)},
	}
}

// renderStateComparison contrasts the selected state against the rest of the
// population; with no state extracted it explains what it needs.
func (o *Orchestrator) renderStateComparison(snap *dataset.Snapshot, intent model.ChatIntent, agg aggregate) model.ChatResponse {
	if intent.State == "" {
		return model.ChatResponse{
			Answer: "Name a state to compare, for example: \"What is unique about our Texas population?\"",
			FollowUps: []string{
				"What is unique about our Texas population?",
			},
		}
	}

	var rest []model.Member
	for _, m := range snap.Members() {
		if m.State != intent.State {
			rest = append(rest, m)
		}
	}
	restAgg := o.aggregateSlice(snap, rest)

	return model.ChatResponse{
		Answer: fmt.Sprintf("%s members show a %.1f%% suspect rate versus %.1f%% elsewhere, with $%.2f of revenue at risk in-state.",
			intent.State, agg.suspectPct, restAgg.suspectPct, agg.revenueAtRisk),
		Evidence: []string{
			fmt.Sprintf("%s: %d members, %d with findings", intent.State, agg.memberCount, agg.withFindings),
			fmt.Sprintf("Rest of population: %d members, %d with findings", restAgg.memberCount, restAgg.withFindings),
		},
		Rationale: []string{
			"Both slices run through the identical agent pipeline, so differences reflect population mix rather than methodology.",
		},
		RecommendedAction: "Review in-state provider documentation patterns if the suspect rate gap persists.",
		FollowUps: []string{
			fmt.Sprintf("What happens if we close 50%% of suspect HCCs in %s?", intent.State),
		},
		Charts: []model.ChartPayload{{
			Kind:   "bar",
			Title:  "Suspect rate by region",
			Labels: []string{intent.State, "Rest"},
			Values: []float64{agg.suspectPct, restAgg.suspectPct},
		}},
	}
}

// enrich asks the narrative generator to rewrite the prose fields. Charts
// and disclaimer notes always stay deterministic, and any failure leaves the
// response untouched.
func (o *Orchestrator) enrich(ctx context.Context, question string, agg aggregate, resp *model.ChatResponse) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	analysisCtx, err := json.Marshal(struct {
		MemberCount   int      `json:"member_count"`
		WithFindings  int      `json:"members_with_findings"`
		SuspectPct    float64  `json:"suspect_pct"`
		RevenueAtRisk float64  `json:"revenue_at_risk"`
		RawMLR        float64  `json:"raw_mlr"`
		AdjustedMLR   float64  `json:"adjusted_mlr"`
		MLRDeltaBps   int      `json:"mlr_delta_bps"`
		Answer        string   `json:"deterministic_answer"`
		Evidence      []string `json:"deterministic_evidence"`
	}{
		agg.memberCount, agg.withFindings, agg.suspectPct, agg.revenueAtRisk,
		agg.rawMLR, agg.adjustedMLR, agg.mlrDeltaBps, resp.Answer, resp.Evidence,
	})
	if err != nil {
		o.log.Warn().Err(err).Msg("narrative context marshal failed, keeping deterministic answer")
		return
	}

	n, err := o.gen.Generate(ctx, question, string(analysisCtx))
	if err != nil {
		o.log.Warn().Err(err).Msg("narrative enrichment failed, keeping deterministic answer")
		return
	}

	resp.Answer = n.Answer
	if len(n.Evidence) > 0 {
		resp.Evidence = n.Evidence
	}
	if len(n.Rationale) > 0 {
		resp.Rationale = n.Rationale
	}
	if n.RecommendedAction != "" {
		resp.RecommendedAction = n.RecommendedAction
	}
	if len(n.FollowUps) > 0 {
		resp.FollowUps = n.FollowUps
	}
}
