package catalog

import (
	"strings"

	tt "github.com/gnoswap-labs/rulecat/internal/types"
)

// RuleSource is the part of the analysis engine that knows which rules are
// currently loaded.
type RuleSource interface {
	Rules() *RuleSet
}

// Catalog gives access to the rules known to an engine.
type Catalog struct {
	source RuleSource
}

// New creates a catalog backed by the given rule source.
func New(source RuleSource) *Catalog {
	return &Catalog{source: source}
}

// AllRules returns every rule known to the engine, unfiltered.
func (c *Catalog) AllRules() *RuleSet {
	if c.source == nil {
		return NewRuleSet()
	}
	rules := c.source.Rules()
	if rules == nil {
		return NewRuleSet()
	}
	return rules
}

// AllowedRules returns the engine's rules with disallowed ones removed.
func (c *Catalog) AllowedRules() *RuleSet {
	return FilterDisallowed(c.AllRules())
}

// FilterDisallowed returns a copy of rules without the deprecated entries.
// The remaining rules keep their relative order.
func FilterDisallowed(rules *RuleSet) *RuleSet {
	filtered := NewRuleSet()
	for _, r := range rules.Rules() {
		if r.Meta.Deprecated {
			continue
		}
		filtered.Set(r)
	}
	return filtered
}

// Metadata builds the name -> metadata lookup used when normalizing violations.
func Metadata(rules *RuleSet) map[string]tt.RuleMeta {
	meta := make(map[string]tt.RuleMeta, rules.Len())
	for _, r := range rules.Rules() {
		meta[r.Name] = r.Meta
	}
	return meta
}

// CustomConfigOption is the engine option naming a user supplied engine config.
const CustomConfigOption = "eslintrc"

// IsCustomRun reports whether the engine is being run with a user supplied
// configuration rather than the catalog defaults.
func IsCustomRun(options map[string]string) bool {
	return strings.TrimSpace(options[CustomConfigOption]) != ""
}
