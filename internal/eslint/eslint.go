// Package eslint reads the output of the ESLint engine: the rule metadata
// dump used to build the catalog, and per-file results in ESLint's JSON
// formatter layout.
package eslint

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gnoswap-labs/rulecat/internal/catalog"
	tt "github.com/gnoswap-labs/rulecat/internal/types"
)

// EngineName is recorded on every RuleResult built from ESLint output.
const EngineName = "eslint"

type ruleMetaJSON struct {
	Type string `json:"type"`
	Docs struct {
		URL string `json:"url"`
	} `json:"docs"`
	Deprecated bool `json:"deprecated"`
}

// ruleJSON accepts both a bare rule.meta object and one wrapped in {"meta": ...}.
type ruleJSON struct {
	ruleMetaJSON
	Meta *ruleMetaJSON `json:"meta"`
}

func (r ruleJSON) meta() tt.RuleMeta {
	m := r.ruleMetaJSON
	if r.Meta != nil {
		m = *r.Meta
	}
	return tt.RuleMeta{
		Category:   tt.Category(m.Type),
		DocsURL:    m.Docs.URL,
		Deprecated: m.Deprecated,
	}
}

// DecodeRules decodes a JSON object mapping rule names to rule metadata.
// Rules keep the order in which they appear in the document.
func DecodeRules(r io.Reader) (*catalog.RuleSet, error) {
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("error decoding rules: %w", err)
	}

	rules := catalog.NewRuleSet()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("error decoding rules: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("error decoding rules: unexpected token %v", tok)
		}
		var rule ruleJSON
		if err := dec.Decode(&rule); err != nil {
			return nil, fmt.Errorf("error decoding rule %q: %w", name, err)
		}
		rules.Set(tt.Rule{Name: name, Meta: rule.meta()})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("error decoding rules: %w", err)
	}
	return rules, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// RuleDump is a catalog.RuleSource backed by a decoded rule metadata dump.
type RuleDump struct {
	rules *catalog.RuleSet
}

// LoadRules reads a rule metadata dump from path.
func LoadRules(path string) (*RuleDump, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening rules file: %w", err)
	}
	defer f.Close()

	rules, err := DecodeRules(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &RuleDump{rules: rules}, nil
}

// NewRuleDump wraps an already decoded rule set.
func NewRuleDump(rules *catalog.RuleSet) *RuleDump {
	return &RuleDump{rules: rules}
}

func (d *RuleDump) Rules() *catalog.RuleSet {
	return d.rules
}

type messageJSON struct {
	RuleID   *string `json:"ruleId"`
	Severity int     `json:"severity"`
	Message  string  `json:"message"`
	Line     *int    `json:"line"`
	Column   *int    `json:"column"`
}

type resultJSON struct {
	FilePath string        `json:"filePath"`
	Messages []messageJSON `json:"messages"`
}

// DecodeResults decodes the output of `eslint --format json`.
// Missing or null positions and rule ids decode as absent.
func DecodeResults(r io.Reader) ([]tt.RawFileResult, error) {
	var raw []resultJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("error decoding results: %w", err)
	}

	results := make([]tt.RawFileResult, 0, len(raw))
	for _, r := range raw {
		diags := make([]tt.RawDiagnostic, 0, len(r.Messages))
		for _, m := range r.Messages {
			diags = append(diags, tt.RawDiagnostic{
				Line:     deref(m.Line),
				Column:   deref(m.Column),
				Severity: tt.Severity(m.Severity),
				Message:  m.Message,
				RuleID:   deref(m.RuleID),
			})
		}
		results = append(results, tt.RawFileResult{FilePath: r.FilePath, Diagnostics: diags})
	}
	return results, nil
}

// LoadResults reads ESLint JSON results from path.
func LoadResults(path string) ([]tt.RawFileResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening results file: %w", err)
	}
	defer f.Close()

	results, err := DecodeResults(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return results, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
