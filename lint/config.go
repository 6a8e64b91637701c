package lint

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gnoswap-labs/rulecat/internal/eslint"
	"github.com/gnoswap-labs/rulecat/internal/policy"
	"github.com/gnoswap-labs/rulecat/internal/report"
	"github.com/gnoswap-labs/rulecat/internal/suppress"
	tt "github.com/gnoswap-labs/rulecat/internal/types"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when no configuration file is given.
const DefaultConfigPath = ".rulecat.yaml"

// Environment variables overriding the configuration file.
const (
	EnvEngine      = "RULECAT_ENGINE"
	EnvPreset      = "RULECAT_PRESET"
	EnvMinSeverity = "RULECAT_MIN_SEVERITY"
	EnvRoot        = "RULECAT_ROOT"
)

// ConfigRule overrides the reported severity of a rule. "off" drops the
// rule's violations from reports.
type ConfigRule struct {
	Severity tt.Severity `yaml:"severity"`
}

// IgnoreConfig lists rules and path globs whose violations are discarded.
type IgnoreConfig struct {
	Rules []string `yaml:"rules,omitempty"`
	Paths []string `yaml:"paths,omitempty"`
}

// Config represents the overall configuration.
type Config struct {
	Name   string `yaml:"name"`
	Engine string `yaml:"engine"`
	// Preset is the path of the rule-set definition used for default policies.
	Preset string `yaml:"preset,omitempty"`
	// Root is the base for relative path matching.
	Root        string                `yaml:"root,omitempty"`
	MinSeverity tt.Severity           `yaml:"minSeverity"`
	DocsURL     string                `yaml:"docsURL,omitempty"`
	Rules       map[string]ConfigRule `yaml:"rules"`
	Ignore      IgnoreConfig          `yaml:"ignore"`
	// Suppressions are line-scoped, in the form path[:start[-end]][:rule,...].
	Suppressions []string `yaml:"suppressions,omitempty"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Name:        "rulecat",
		Engine:      eslint.EngineName,
		Root:        ".",
		MinSeverity: tt.SeverityOff,
		DocsURL:     "https://eslint.org/docs/latest/rules/{rule}",
		Rules:       map[string]ConfigRule{},
	}
}

// ParseConfigurationFile reads the configuration at path on top of the
// defaults and applies environment overrides. A missing file is not an error.
func ParseConfigurationFile(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		path = DefaultConfigPath
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return config, fmt.Errorf("error reading configuration: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("error parsing configuration %s: %w", path, err)
		}
	}

	if err := applyEnv(&config); err != nil {
		return config, err
	}
	return config, nil
}

func applyEnv(c *Config) error {
	if v := os.Getenv(EnvEngine); v != "" {
		c.Engine = v
	}
	if v := os.Getenv(EnvPreset); v != "" {
		c.Preset = v
	}
	if v := os.Getenv(EnvRoot); v != "" {
		c.Root = v
	}
	if v := os.Getenv(EnvMinSeverity); v != "" {
		sev, err := tt.ParseSeverity(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMinSeverity, err)
		}
		c.MinSeverity = sev
	}
	return nil
}

// WriteConfigurationFile writes c as YAML to path.
func WriteConfigurationFile(path string, c Config) error {
	d, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, d, 0o644)
}

// LoadPreset reads the rule-set definition at path.
func LoadPreset(path string) (policy.RuleSetDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading preset: %w", err)
	}
	def, err := policy.DecodeRuleSetDefinition(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// NewReviewer assembles the reviewer chain described by c. Filters run
// before the enrichment steps, so discarded violations are not touched.
func NewReviewer(c Config) (report.Reviewer, error) {
	ruleFilter := suppress.NewRuleFilter(c.Ignore.Rules...)
	overrides := suppress.SeverityOverride{}
	for name, rule := range c.Rules {
		if rule.Severity == tt.SeverityOff {
			ruleFilter.Ignore(name)
			continue
		}
		overrides[name] = rule.Severity
	}

	scopes, err := suppress.ParseScopes(c.Suppressions)
	if err != nil {
		return nil, err
	}

	return report.Chain(
		suppress.NewPathFilter(c.Root, c.Ignore.Paths...),
		ruleFilter,
		scopes,
		overrides,
		suppress.SeverityFilter{Min: c.MinSeverity},
		suppress.DocURLFiller{Template: c.DocsURL},
	), nil
}

// SplitList splits a comma separated flag value, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
