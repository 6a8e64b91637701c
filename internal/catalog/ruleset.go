package catalog

import tt "github.com/gnoswap-labs/rulecat/internal/types"

// RuleSet is a mapping from rule name to rule that remembers insertion order.
type RuleSet struct {
	names []string
	rules map[string]tt.Rule
}

// NewRuleSet creates a RuleSet holding the given rules in order. A rule whose
// name was already seen replaces the earlier one but keeps its position.
func NewRuleSet(rules ...tt.Rule) *RuleSet {
	rs := &RuleSet{rules: make(map[string]tt.Rule, len(rules))}
	for _, r := range rules {
		rs.Set(r)
	}
	return rs
}

// Set inserts or replaces a rule.
func (rs *RuleSet) Set(r tt.Rule) {
	if rs.rules == nil {
		rs.rules = make(map[string]tt.Rule)
	}
	if _, ok := rs.rules[r.Name]; !ok {
		rs.names = append(rs.names, r.Name)
	}
	rs.rules[r.Name] = r
}

// Get looks up a rule by name.
func (rs *RuleSet) Get(name string) (tt.Rule, bool) {
	if rs == nil {
		return tt.Rule{}, false
	}
	r, ok := rs.rules[name]
	return r, ok
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.names)
}

// Names returns the rule names in insertion order.
func (rs *RuleSet) Names() []string {
	if rs == nil {
		return nil
	}
	out := make([]string, len(rs.names))
	copy(out, rs.names)
	return out
}

// Rules returns the rules in insertion order.
func (rs *RuleSet) Rules() []tt.Rule {
	if rs == nil {
		return nil
	}
	out := make([]tt.Rule, 0, len(rs.names))
	for _, name := range rs.names {
		out = append(out, rs.rules[name])
	}
	return out
}
