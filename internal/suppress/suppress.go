// Package suppress provides report.Reviewer implementations that filter and
// enrich violations on their way into a report.
package suppress

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	tt "github.com/gnoswap-labs/rulecat/internal/types"
)

// RuleFilter discards violations of ignored rules.
type RuleFilter struct {
	ignored map[string]struct{}
}

// NewRuleFilter creates a filter ignoring the given rules.
func NewRuleFilter(rules ...string) *RuleFilter {
	f := &RuleFilter{ignored: make(map[string]struct{}, len(rules))}
	for _, r := range rules {
		f.Ignore(r)
	}
	return f
}

// Ignore adds a rule to the ignore list.
func (f *RuleFilter) Ignore(rule string) {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return
	}
	if f.ignored == nil {
		f.ignored = make(map[string]struct{})
	}
	f.ignored[rule] = struct{}{}
}

func (f *RuleFilter) ReviewAndDecide(_ string, v *tt.Violation) bool {
	_, ignored := f.ignored[v.RuleName]
	return !ignored
}

// PathFilter discards every violation of files matching one of its glob
// patterns. Patterns use doublestar syntax and are matched against the file
// path relative to Root, and against the path as given.
type PathFilter struct {
	Root     string
	patterns []string
}

// NewPathFilter creates a filter for the given patterns.
func NewPathFilter(root string, patterns ...string) *PathFilter {
	f := &PathFilter{Root: root}
	for _, p := range patterns {
		f.Ignore(p)
	}
	return f
}

// Ignore adds a glob pattern. Invalid patterns are dropped.
func (f *PathFilter) Ignore(pattern string) {
	pattern = filepath.ToSlash(strings.TrimSpace(pattern))
	if pattern == "" || !doublestar.ValidatePattern(pattern) {
		return
	}
	f.patterns = append(f.patterns, pattern)
}

// Match reports whether fileName is excluded.
func (f *PathFilter) Match(fileName string) bool {
	candidates := []string{filepath.ToSlash(fileName)}
	if f.Root != "" {
		if rel, err := filepath.Rel(f.Root, fileName); err == nil && !strings.HasPrefix(rel, "..") {
			candidates = append(candidates, filepath.ToSlash(rel))
		}
	}
	for _, p := range f.patterns {
		for _, c := range candidates {
			if ok, _ := doublestar.Match(p, c); ok {
				return true
			}
		}
	}
	return false
}

func (f *PathFilter) ReviewAndDecide(fileName string, _ *tt.Violation) bool {
	return !f.Match(fileName)
}

// SeverityFilter discards violations below Min.
type SeverityFilter struct {
	Min tt.Severity
}

func (f SeverityFilter) ReviewAndDecide(_ string, v *tt.Violation) bool {
	return v.Severity >= f.Min
}

// SeverityOverride rewrites the severity of violations of the listed rules.
type SeverityOverride map[string]tt.Severity

func (o SeverityOverride) ReviewAndDecide(_ string, v *tt.Violation) bool {
	if sev, ok := o[v.RuleName]; ok {
		v.Severity = sev
	}
	return true
}

// DocURLFiller fills in missing documentation URLs from Template, in which
// "{rule}" is replaced with the rule name. Violations without a rule are
// left alone. It never discards.
type DocURLFiller struct {
	Template string
}

func (f DocURLFiller) ReviewAndDecide(_ string, v *tt.Violation) bool {
	if v.URL == "" && v.RuleName != "" && f.Template != "" {
		v.URL = strings.ReplaceAll(f.Template, "{rule}", v.RuleName)
	}
	return true
}
