package types

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// DefaultStatus tells whether a rule is on by default in a rule-set definition.
type DefaultStatus int

const (
	// StatusUnknown means the rule is absent from the definition and its
	// status has to come from somewhere else.
	StatusUnknown DefaultStatus = iota
	StatusEnabled
	StatusDisabled
)

func (s DefaultStatus) String() string {
	switch s {
	case StatusEnabled:
		return "enabled"
	case StatusDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// ConfigKind tags the shape of a RuleConfigValue.
type ConfigKind int

const (
	// KindSeverity is a bare severity: "warn", 2, ...
	KindSeverity ConfigKind = iota + 1
	// KindSequence is [severity, option...]; options may be empty.
	KindSequence
	// KindOther is any shape that is neither of the above.
	KindOther
)

// SeverityValue is the severity slot of a rule configuration as written,
// either a string or a number. It is kept verbatim; no normalization to
// the numeric scale happens here.
type SeverityValue struct {
	Text     string
	Number   float64
	IsNumber bool
}

// SeverityText returns a string severity.
func SeverityText(s string) SeverityValue { return SeverityValue{Text: s} }

// SeverityNumber returns a numeric severity.
func SeverityNumber(n float64) SeverityValue { return SeverityValue{Number: n, IsNumber: true} }

// IsOff reports whether the value is the string "off". Numeric zero is not
// treated as off.
func (v SeverityValue) IsOff() bool {
	return !v.IsNumber && v.Text == "off"
}

// Raw returns the value as it appeared in the source document.
func (v SeverityValue) Raw() any {
	if v.IsNumber {
		return v.Number
	}
	return v.Text
}

func (v SeverityValue) String() string {
	if v.IsNumber {
		return fmt.Sprintf("%g", v.Number)
	}
	return v.Text
}

// RuleConfigValue is the value a rule-set definition assigns to a rule.
type RuleConfigValue struct {
	Kind     ConfigKind
	Severity SeverityValue
	// Options holds the elements after the severity of a KindSequence value.
	Options []any
	// Other holds the raw value of a KindOther value.
	Other any
}

// Sev builds a bare-severity value.
func Sev(v SeverityValue) RuleConfigValue {
	return RuleConfigValue{Kind: KindSeverity, Severity: v}
}

// Seq builds a sequence value.
func Seq(v SeverityValue, options ...any) RuleConfigValue {
	return RuleConfigValue{Kind: KindSequence, Severity: v, Options: options}
}

// Len is the number of elements of a sequence value, 0 for other kinds.
func (c RuleConfigValue) Len() int {
	if c.Kind != KindSequence {
		return 0
	}
	return 1 + len(c.Options)
}

// IsEmpty reports whether the value carries no setting at all: null, the
// number 0 or the empty string. Sequences are never empty, even [0].
func (c RuleConfigValue) IsEmpty() bool {
	switch c.Kind {
	case KindSeverity:
		if c.Severity.IsNumber {
			return c.Severity.Number == 0 || math.IsNaN(c.Severity.Number)
		}
		return c.Severity.Text == ""
	case KindSequence:
		return false
	default:
		return c.Other == nil
	}
}

// Raw converts the value back into the heterogeneous form it was parsed from.
func (c RuleConfigValue) Raw() any {
	switch c.Kind {
	case KindSeverity:
		return c.Severity.Raw()
	case KindSequence:
		out := make([]any, 0, c.Len())
		out = append(out, c.Severity.Raw())
		return append(out, c.Options...)
	default:
		return c.Other
	}
}

func (c RuleConfigValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonSafe(c.Raw()))
}

func (c RuleConfigValue) MarshalYAML() (any, error) {
	return c.Raw(), nil
}

// Clone returns a deep copy, so callers can seed configuration without
// aliasing the definition it came from.
func (c RuleConfigValue) Clone() RuleConfigValue {
	out := c
	if c.Options != nil {
		out.Options = make([]any, len(c.Options))
		for i, o := range c.Options {
			out.Options[i] = cloneRaw(o)
		}
	}
	out.Other = cloneRaw(c.Other)
	return out
}

// Equal compares two values structurally.
func (c RuleConfigValue) Equal(o RuleConfigValue) bool {
	return reflect.DeepEqual(c.Raw(), o.Raw()) && c.Kind == o.Kind
}

// ParseRuleConfigValue converts a decoded YAML/JSON value into a
// RuleConfigValue. It never fails: unrecognized shapes become KindOther.
func ParseRuleConfigValue(raw any) RuleConfigValue {
	if sev, ok := parseSeverityValue(raw); ok {
		return Sev(sev)
	}
	if seq, ok := raw.([]any); ok && len(seq) > 0 {
		if sev, ok := parseSeverityValue(seq[0]); ok {
			opts := make([]any, len(seq)-1)
			copy(opts, seq[1:])
			return Seq(sev, opts...)
		}
	}
	return RuleConfigValue{Kind: KindOther, Other: raw}
}

func parseSeverityValue(raw any) (SeverityValue, bool) {
	switch v := raw.(type) {
	case string:
		return SeverityText(v), true
	case int:
		return SeverityNumber(float64(v)), true
	case int64:
		return SeverityNumber(float64(v)), true
	case uint64:
		return SeverityNumber(float64(v)), true
	case float64:
		return SeverityNumber(v), true
	}
	return SeverityValue{}, false
}

func cloneRaw(v any) any {
	switch x := v.(type) {
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = cloneRaw(x[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = cloneRaw(val)
		}
		return out
	case map[any]any:
		out := make(map[any]any, len(x))
		for k, val := range x {
			out[k] = cloneRaw(val)
		}
		return out
	default:
		return v
	}
}

// jsonSafe rewrites maps with non-string keys, as produced by YAML
// documents, into string-keyed maps that encoding/json accepts.
func jsonSafe(v any) any {
	switch x := v.(type) {
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = jsonSafe(x[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = jsonSafe(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[fmt.Sprint(k)] = jsonSafe(val)
		}
		return out
	default:
		return v
	}
}
