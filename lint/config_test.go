package lint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnoswap-labs/rulecat/internal/report"
	tt "github.com/gnoswap-labs/rulecat/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `name: web
engine: eslint
preset: recommended.yaml
root: /repo
minSeverity: warn
docsURL: https://docs.example/{rule}
rules:
  no-console:
    severity: "off"
  quotes:
    severity: warn
ignore:
  rules: [no-debugger]
  paths: ["dist/**"]
suppressions:
  - src/legacy.js:1-50:no-eval
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseConfigurationFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "rulecat.yaml", sampleConfig)

	cfg, err := ParseConfigurationFile(path)
	require.NoError(t, err)

	assert.Equal(t, "web", cfg.Name)
	assert.Equal(t, "recommended.yaml", cfg.Preset)
	assert.Equal(t, "/repo", cfg.Root)
	assert.Equal(t, tt.SeverityWarn, cfg.MinSeverity)
	assert.Equal(t, tt.SeverityOff, cfg.Rules["no-console"].Severity)
	assert.Equal(t, tt.SeverityWarn, cfg.Rules["quotes"].Severity)
	assert.Equal(t, []string{"no-debugger"}, cfg.Ignore.Rules)
	assert.Equal(t, []string{"dist/**"}, cfg.Ignore.Paths)
	assert.Equal(t, []string{"src/legacy.js:1-50:no-eval"}, cfg.Suppressions)
}

func TestParseConfigurationFile_MissingUsesDefaults(t *testing.T) {
	cfg, err := ParseConfigurationFile(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfigurationFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	_, err := ParseConfigurationFile(writeFile(t, dir, "bad.yaml", "rules: [oops"))
	assert.Error(t, err)

	_, err = ParseConfigurationFile(writeFile(t, dir, "sev.yaml", "minSeverity: loud\n"))
	assert.Error(t, err)
}

func TestParseConfigurationFile_EnvOverrides(t *testing.T) {
	t.Setenv(EnvEngine, "eslint-ts")
	t.Setenv(EnvPreset, "/presets/all.json")
	t.Setenv(EnvRoot, "/src")
	t.Setenv(EnvMinSeverity, "error")

	cfg, err := ParseConfigurationFile(writeFile(t, t.TempDir(), "c.yaml", sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "eslint-ts", cfg.Engine)
	assert.Equal(t, "/presets/all.json", cfg.Preset)
	assert.Equal(t, "/src", cfg.Root)
	assert.Equal(t, tt.SeverityError, cfg.MinSeverity)

	t.Setenv(EnvMinSeverity, "loud")
	_, err = ParseConfigurationFile(writeFile(t, t.TempDir(), "c.yaml", sampleConfig))
	assert.ErrorContains(t, err, EnvMinSeverity)
}

func TestWriteConfigurationFile_RoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ".rulecat.yaml")
	want := DefaultConfig()
	want.Rules["quotes"] = ConfigRule{Severity: tt.SeverityWarn}

	require.NoError(t, WriteConfigurationFile(path, want))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "severity: warn")
}

func TestLoadPreset(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "recommended.json", `{"rules": {"no-eval": "error", "no-debugger": ["off"]}}`)

	def, err := LoadPreset(path)
	require.NoError(t, err)
	assert.Len(t, def, 2)

	_, err = LoadPreset(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
	_, err = LoadPreset(writeFile(t, dir, "bad.json", `{"rules": 3}`))
	assert.Error(t, err)
}

func TestNewReviewer(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.Root = "/repo"
	cfg.MinSeverity = tt.SeverityWarn
	cfg.DocsURL = "https://docs.example/{rule}"
	cfg.Rules = map[string]ConfigRule{
		"no-console": {Severity: tt.SeverityOff},
		"quotes":     {Severity: tt.SeverityWarn},
	}
	cfg.Ignore = IgnoreConfig{Rules: []string{"no-debugger"}, Paths: []string{"dist/**"}}
	cfg.Suppressions = []string{"/repo/src/legacy.js:1-50:no-eval"}

	rv, err := NewReviewer(cfg)
	require.NoError(t, err)

	raw := []tt.RawFileResult{
		{FilePath: "/repo/dist/bundle.js", Diagnostics: []tt.RawDiagnostic{{Line: 1, Severity: 2, RuleID: "no-eval"}}},
		{FilePath: "/repo/src/legacy.js", Diagnostics: []tt.RawDiagnostic{
			{Line: 10, Severity: 2, RuleID: "no-eval"},
			{Line: 60, Severity: 2, RuleID: "no-eval"},
			{Line: 11, Severity: 2, RuleID: "no-console"},
			{Line: 12, Severity: 2, RuleID: "no-debugger"},
			{Line: 13, Severity: 2, RuleID: "quotes"},
		}},
	}
	meta := map[string]tt.RuleMeta{"no-eval": {Category: tt.CategorySuggestion, DocsURL: "https://eslint/no-eval"}}

	results := report.BuildReports("eslint", raw, meta, rv)

	require.Len(t, results, 2)
	assert.Empty(t, results[0].Violations)
	assert.Equal(t, []tt.Violation{
		{Line: 60, Severity: tt.SeverityError, RuleName: "no-eval", Category: tt.CategorySuggestion, URL: "https://eslint/no-eval"},
		{Line: 13, Severity: tt.SeverityWarn, RuleName: "quotes", Category: tt.CategoryProblem, URL: "https://docs.example/quotes"},
	}, results[1].Violations)
}

func TestNewReviewer_BadSuppression(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.Suppressions = []string{":1"}
	_, err := NewReviewer(cfg)
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,b ,"))
	assert.Nil(t, SplitList(""))
}
