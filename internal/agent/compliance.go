package agent

import (
	"fmt"
	"regexp"

	"github.com/gyeh/rafscope/internal/model"
)

// languageCheck pairs a prohibited-language pattern with the issue message
// recorded when it matches. Findings must read as review candidates, never
// as diagnostic statements.
type languageCheck struct {
	pattern *regexp.Regexp
	issue   string
}

var languageChecks = []languageCheck{
	{regexp.MustCompile(`(?i)\bdiagnos(ed|is)\b`), "diagnostic language"},
	{regexp.MustCompile(`(?i)\bconfirmed\b`), "definitive language"},
	{regexp.MustCompile(`(?i)\bhas (diabetes|heart failure|copd|kidney disease|hypertension)\b`), "asserts condition presence"},
	{regexp.MustCompile(`\b[A-TV-Z][0-9]{2}(\.[0-9A-Z]{1,4})?\b`), "clinical-code-shaped token"},
}

// Revenue escalation thresholds, applied whenever findings exist,
// independent of language issues.
const (
	escalateHighUplift   = 25000.0
	escalateMediumUplift = 10000.0
)

var cleanNotes = []string{
	"All findings framed as suspect candidates pending clinical review.",
	"Evidence trails meet the minimum corroboration requirement.",
	"No diagnostic or definitive language detected in narratives.",
}

// scanText returns the issues found in one text fragment.
func scanText(text, where string) []string {
	var issues []string
	for _, c := range languageChecks {
		if c.pattern.MatchString(text) {
			issues = append(issues, fmt.Sprintf("%s in %s: %q", c.issue, where, c.pattern.FindString(text)))
		}
	}
	return issues
}

// RunComplianceAgent validates finding language and evidence sufficiency,
// and grades compliance risk. Any issue forces REVIEW_REQUIRED with risk at
// least MEDIUM; large revenue uplift escalates risk on its own.
func RunComplianceAgent(risk RiskOutput, impact *model.FinancialImpact) model.ComplianceResult {
	var issues []string

	for _, f := range risk.Findings {
		if len(f.Evidence) < model.MinEvidence {
			issues = append(issues, fmt.Sprintf("finding %s: evidence below minimum of %d entries", f.HCC, model.MinEvidence))
		}
		issues = append(issues, scanText(f.Label, "finding "+f.HCC+" label")...)
		for _, ev := range f.Evidence {
			issues = append(issues, scanText(ev, "finding "+f.HCC+" evidence")...)
		}
	}
	if risk.Narrative != nil {
		issues = append(issues, scanText(*risk.Narrative, "narrative")...)
	}

	result := model.ComplianceResult{
		Status:    model.ComplianceApproved,
		RiskLevel: model.RiskLow,
		Notes:     cleanNotes,
	}
	if len(issues) > 0 {
		result.Status = model.ComplianceReviewRequired
		result.RiskLevel = model.RiskMedium
		result.Notes = issues
	}

	// Revenue-based escalation applies as long as findings exist.
	if len(risk.Findings) > 0 && impact != nil {
		switch {
		case impact.RevenueUplift > escalateHighUplift:
			result.RiskLevel = model.RiskHigh
		case impact.RevenueUplift > escalateMediumUplift:
			if result.RiskLevel != model.RiskHigh {
				result.RiskLevel = model.RiskMedium
			}
		}
	}

	return result
}
