package suppress

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	tt "github.com/gnoswap-labs/rulecat/internal/types"
)

// Manager holds line-scoped suppressions and discards violations inside them.
type Manager struct {
	// scopes maps a cleaned file path to its suppression scopes.
	scopes map[string][]scope
}

// scope is a line range of a file where some or all rules are suppressed.
type scope struct {
	rules map[string]struct{}
	start int
	end   int
}

// ParseScopes parses suppression entries of the form
//
//	path[:start[-end]][:rule1,rule2]
//
// A missing line range covers the whole file; a missing rule list covers all rules.
func ParseScopes(entries []string) (*Manager, error) {
	m := &Manager{scopes: make(map[string][]scope, len(entries))}
	for _, e := range entries {
		path, s, err := parseScope(e)
		if err != nil {
			return nil, err
		}
		m.scopes[path] = append(m.scopes[path], s)
	}
	return m, nil
}

func parseScope(entry string) (string, scope, error) {
	s := scope{start: 0, end: -1}
	parts := strings.Split(strings.TrimSpace(entry), ":")
	if parts[0] == "" {
		return "", s, fmt.Errorf("invalid suppression %q: missing path", entry)
	}
	path := filepath.Clean(parts[0])

	switch len(parts) {
	case 1:
	case 2:
		// a lone second part is a line range if it starts with a digit
		if isDigit(parts[1]) {
			if err := s.parseLines(parts[1]); err != nil {
				return "", s, fmt.Errorf("invalid suppression %q: %w", entry, err)
			}
		} else {
			s.rules = parseRuleNames(parts[1])
		}
	case 3:
		if err := s.parseLines(parts[1]); err != nil {
			return "", s, fmt.Errorf("invalid suppression %q: %w", entry, err)
		}
		s.rules = parseRuleNames(parts[2])
	default:
		return "", s, fmt.Errorf("invalid suppression %q: too many fields", entry)
	}
	return path, s, nil
}

func isDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func (s *scope) parseLines(text string) error {
	from, to, found := strings.Cut(text, "-")
	start, err := strconv.Atoi(from)
	if err != nil {
		return fmt.Errorf("bad line %q", from)
	}
	end := start
	if found {
		end, err = strconv.Atoi(to)
		if err != nil {
			return fmt.Errorf("bad line %q", to)
		}
	}
	if end < start {
		return fmt.Errorf("line range %d-%d is reversed", start, end)
	}
	s.start, s.end = start, end
	return nil
}

// parseRuleNames parses a comma separated rule list.
func parseRuleNames(text string) map[string]struct{} {
	rules := make(map[string]struct{})
	for _, rule := range strings.Split(text, ",") {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rules[rule] = struct{}{}
		}
	}
	return rules
}

// IsSuppressed checks if a violation of rule at line of fileName is suppressed.
func (m *Manager) IsSuppressed(fileName string, line int, rule string) bool {
	scopes, exists := m.scopes[filepath.Clean(fileName)]
	if !exists {
		return false
	}
	for _, s := range scopes {
		if s.end >= 0 && (line < s.start || line > s.end) {
			continue
		}
		// an empty rule list applies to all rules
		if len(s.rules) == 0 {
			return true
		}
		if _, ok := s.rules[rule]; ok {
			return true
		}
	}
	return false
}

func (m *Manager) ReviewAndDecide(fileName string, v *tt.Violation) bool {
	return !m.IsSuppressed(fileName, v.Line, v.RuleName)
}
