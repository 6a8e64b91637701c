// Package report turns raw per-file engine diagnostics into structured,
// filtered violation reports.
package report

import tt "github.com/gnoswap-labs/rulecat/internal/types"

// BuildReports converts the engine output for a batch of files into one
// RuleResult per file that produced at least one diagnostic. Files without
// diagnostics are left out; results keep the input order.
func BuildReports(
	engineName string,
	raw []tt.RawFileResult,
	meta map[string]tt.RuleMeta,
	reviewer Reviewer,
) []tt.RuleResult {
	results := make([]tt.RuleResult, 0, len(raw))
	for _, r := range raw {
		if len(r.Diagnostics) == 0 {
			continue
		}
		results = append(results, ToResult(engineName, r.FilePath, r.Diagnostics, meta, reviewer))
	}
	return results
}

// ToResult normalizes the diagnostics of one file and keeps those accepted
// by reviewer. The result is returned even if every violation is discarded,
// so "fully suppressed" stays distinguishable from "no diagnostics".
func ToResult(
	engineName string,
	fileName string,
	diags []tt.RawDiagnostic,
	meta map[string]tt.RuleMeta,
	reviewer Reviewer,
) tt.RuleResult {
	if reviewer == nil {
		reviewer = AcceptAll
	}
	result := tt.RuleResult{
		Engine:     engineName,
		FileName:   fileName,
		Violations: []tt.Violation{},
	}
	for _, d := range diags {
		v := normalize(d, meta)
		if reviewer.ReviewAndDecide(fileName, &v) {
			result.Violations = append(result.Violations, v)
		}
	}
	return result
}

func normalize(d tt.RawDiagnostic, meta map[string]tt.RuleMeta) tt.Violation {
	category := tt.CategoryProblem
	url := ""
	// pseudo-diagnostics without a rule never have metadata
	if d.RuleID != "" {
		if m, ok := meta[d.RuleID]; ok {
			if m.Category != "" {
				category = m.Category
			}
			url = m.DocsURL
		}
	}
	return tt.Violation{
		Line:     d.Line,
		Column:   d.Column,
		Severity: d.Severity,
		Message:  d.Message,
		RuleName: d.RuleID,
		Category: category,
		URL:      url,
	}
}
