// Package policy resolves the default enablement and default configuration
// of rules from a rule-set definition such as a "recommended" preset.
package policy

import (
	"github.com/gnoswap-labs/rulecat/internal/catalog"
	tt "github.com/gnoswap-labs/rulecat/internal/types"
)

// RuleSetDefinition maps rule names to the configuration a preset gives them.
type RuleSetDefinition map[string]tt.RuleConfigValue

// DefaultStatus tells whether def enables the named rule.
//
// A rule absent from def, or set to null, 0 or "", is StatusUnknown: its
// status may be inherited from another preset or from the engine itself. Only the string "off", as a bare
// value or as the sole element of a sequence, disables a rule. Sequences
// carrying options are always enabled.
func DefaultStatus(def RuleSetDefinition, ruleName string) tt.DefaultStatus {
	value, ok := def[ruleName]
	if !ok || value.IsEmpty() {
		return tt.StatusUnknown
	}
	switch {
	case value.Kind == tt.KindSeverity && !value.Severity.IsNumber:
		return statusOf(value.Severity)
	case value.Kind == tt.KindSequence && value.Len() == 1 && !value.Severity.IsNumber:
		return statusOf(value.Severity)
	default:
		return tt.StatusEnabled
	}
}

func statusOf(sev tt.SeverityValue) tt.DefaultStatus {
	if sev.IsOff() {
		return tt.StatusDisabled
	}
	return tt.StatusEnabled
}

// DefaultConfig returns the configuration def gives the named rule, to be
// used verbatim as the rule's seed configuration. It returns nil when the
// rule is absent, empty or turned off, since an "off" rule has no
// meaningful default options.
func DefaultConfig(def RuleSetDefinition, ruleName string) *tt.RuleConfigValue {
	value, ok := def[ruleName]
	if !ok || value.IsEmpty() {
		return nil
	}
	if (value.Kind == tt.KindSeverity || value.Kind == tt.KindSequence) && value.Severity.IsOff() {
		return nil
	}
	cfg := value.Clone()
	return &cfg
}

// RuleDefault is the resolved default policy of one catalog rule.
type RuleDefault struct {
	Rule   tt.Rule
	Status tt.DefaultStatus
	Config *tt.RuleConfigValue
}

// Resolve computes the default policy of every rule in rules, in catalog order.
func Resolve(rules *catalog.RuleSet, def RuleSetDefinition) []RuleDefault {
	out := make([]RuleDefault, 0, rules.Len())
	for _, r := range rules.Rules() {
		out = append(out, RuleDefault{
			Rule:   r,
			Status: DefaultStatus(def, r.Name),
			Config: DefaultConfig(def, r.Name),
		})
	}
	return out
}
