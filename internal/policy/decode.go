package policy

import (
	"fmt"

	tt "github.com/gnoswap-labs/rulecat/internal/types"
	"gopkg.in/yaml.v3"
)

// DecodeRuleSetDefinition decodes a preset written in YAML or JSON. The
// document is either a plain mapping of rule names to values or an object
// with a "rules" key holding that mapping.
func DecodeRuleSetDefinition(data []byte) (RuleSetDefinition, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error decoding rule-set definition: %w", err)
	}

	rules := doc
	if nested, ok := doc["rules"]; ok {
		m, ok := nested.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("error decoding rule-set definition: \"rules\" is %T, want a mapping", nested)
		}
		rules = m
	}

	def := make(RuleSetDefinition, len(rules))
	for name, raw := range rules {
		def[name] = tt.ParseRuleConfigValue(raw)
	}
	return def, nil
}
