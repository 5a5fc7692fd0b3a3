// Package chat interprets free-text questions and answers them by running the
// agent pipeline over the matching population slice.
package chat

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gyeh/rafscope/internal/model"
)

// stateNames maps spelled-out state names to codes, evaluated in order so a
// question naming several states always resolves to the same one. Tried
// before the two-letter fallback so "texas" works in lower-case questions.
var stateNames = []struct {
	name string
	code string
}{
	{"texas", "TX"},
	{"california", "CA"},
	{"florida", "FL"},
	{"new york", "NY"},
	{"georgia", "GA"},
	{"illinois", "IL"},
	{"ohio", "OH"},
}

var (
	stateCodeRe = regexp.MustCompile(`\b[A-Z]{2}\b`)
	percentRe   = regexp.MustCompile(`(\d+)\s*%`)
)

// categoryRules is evaluated in order; the first matching predicate wins.
// The ordering is load-bearing: a question containing both "leak" and
// "plans" resolves to RAF Leakage because that rule comes first. This is a
// known limitation of keyword routing, kept deliberately simple.
var categoryRules = []struct {
	match    func(q string) bool
	category model.AnalysisCategory
}{
	{containsAny("leak", "leakage"), model.CategoryRAFLeakage},
	{containsAny("missing", "revenue at risk", "revenue-at-risk"), model.CategoryRevenueAtRisk},
	{containsAny("close", "what-if", "what if", "suspect"), model.CategoryWhatIfClosure},
	{containsAny("worst", "adjusted mlr", "adjusted-mlr", "plans"), model.CategoryPlanMLR},
	{func(q string) bool {
		return strings.Contains(q, "hcc") && containsAny("driv", "domin")(q)
	}, model.CategoryHCCDrivers},
	{containsAny("unique", "texas"), model.CategoryStateComparison},
}

func containsAny(subs ...string) func(string) bool {
	return func(q string) bool {
		for _, s := range subs {
			if strings.Contains(q, s) {
				return true
			}
		}
		return false
	}
}

// ParseIntent maps a free-text question to a structured intent with
// deterministic keyword and pattern rules. Unmatched fields stay zero.
func ParseIntent(question string) model.ChatIntent {
	lower := strings.ToLower(question)

	intent := model.ChatIntent{Category: model.CategoryGeneral}
	for _, rule := range categoryRules {
		if rule.match(lower) {
			intent.Category = rule.category
			break
		}
	}

	for _, s := range stateNames {
		if strings.Contains(lower, s.name) {
			intent.State = s.code
			break
		}
	}
	if intent.State == "" {
		// Fallback: any bare two-uppercase-letter token in the original
		// casing. Crude, but spelled-out names cover the common phrasings.
		if m := stateCodeRe.FindString(question); m != "" {
			intent.State = m
		}
	}

	for _, tier := range []model.PlanTier{model.PlanBronze, model.PlanSilver, model.PlanGold} {
		if strings.Contains(lower, strings.ToLower(string(tier))) {
			intent.Plan = tier
			break
		}
	}

	if m := percentRe.FindStringSubmatch(lower); m != nil {
		if pct, err := strconv.Atoi(m[1]); err == nil {
			intent.Percent = &pct
		}
	}

	return intent
}
