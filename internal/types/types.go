package types

import (
	"fmt"
	"strings"
)

// Severity is the engine-defined numeric severity of a diagnostic.
// The scale follows ESLint: 0 = off, 1 = warn, 2 = error.
type Severity int

const (
	SeverityOff Severity = iota
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity converts a severity name ("off", "warn", "error") or its
// numeric form ("0", "1", "2") into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "0":
		return SeverityOff, nil
	case "warn", "warning", "1":
		return SeverityWarn, nil
	case "error", "2":
		return SeverityError, nil
	}
	return SeverityOff, fmt.Errorf("unknown severity %q", s)
}

func (s Severity) MarshalYAML() (any, error) {
	return s.String(), nil
}

func (s *Severity) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := ParseSeverity(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Category is the kind of problem a rule reports.
type Category string

const (
	CategoryProblem    Category = "problem"
	CategorySuggestion Category = "suggestion"
	CategoryLayout     Category = "layout"
)

// RuleMeta carries the metadata the engine publishes for a rule.
type RuleMeta struct {
	Category   Category `json:"type" yaml:"type"`
	DocsURL    string   `json:"url,omitempty" yaml:"url,omitempty"`
	Deprecated bool     `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// Rule is a named check known to the analysis engine.
type Rule struct {
	Name string
	Meta RuleMeta
}

// RawDiagnostic is one message emitted by the engine for one file, before
// normalization. Line and Column are 1-based; zero means absent.
type RawDiagnostic struct {
	Line     int
	Column   int
	Severity Severity
	Message  string
	// RuleID is empty for engine-internal pseudo-diagnostics such as parse errors.
	RuleID string
}

// RawFileResult is the engine output for a single analyzed file.
type RawFileResult struct {
	FilePath    string
	Diagnostics []RawDiagnostic
}

// Violation is the normalized, report-ready form of a diagnostic.
type Violation struct {
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	RuleName string   `json:"ruleName,omitempty"`
	Category Category `json:"category"`
	URL      string   `json:"url"`
}

// RuleResult groups the retained violations for one file.
type RuleResult struct {
	Engine     string      `json:"engine"`
	FileName   string      `json:"fileName"`
	Violations []Violation `json:"violations"`
}
