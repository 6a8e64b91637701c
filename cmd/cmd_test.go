package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	tt "github.com/gnoswap-labs/rulecat/internal/types"
	"github.com/gnoswap-labs/rulecat/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	color.NoColor = true
	lint.ProgressOutput = io.Discard
}

const testRules = `{
  "no-unused-vars": {"type": "problem", "docs": {"url": "https://x/no-unused-vars"}},
  "indent-legacy": {"type": "layout", "deprecated": true},
  "no-debugger": {"type": "problem"},
  "eqeqeq": {"type": "suggestion", "docs": {"url": "https://x/eqeqeq"}}
}`

const testPreset = `rules:
  no-unused-vars: [warn, {args: none}]
  no-debugger: "off"
`

const testResults = `[
  {"filePath": "/repo/src/a.js", "messages": [
    {"ruleId": "no-unused-vars", "severity": 2, "message": "no-unused-vars", "line": 10, "column": 2},
    {"ruleId": "no-eval", "severity": 1, "message": "eval", "line": null, "column": null}
  ]},
  {"filePath": "/repo/src/clean.js", "messages": []},
  {"filePath": "/repo/vendor/lib.js", "messages": [
    {"ruleId": "eqeqeq", "severity": 2, "message": "Expected '==='", "line": 1, "column": 5}
  ]}
]`

type fixture struct {
	dir     string
	rules   string
	preset  string
	results string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:     dir,
		rules:   filepath.Join(dir, "rules.json"),
		preset:  filepath.Join(dir, "recommended.yaml"),
		results: filepath.Join(dir, "results", "eslint.json"),
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(f.results), 0o755))
	require.NoError(t, os.WriteFile(f.rules, []byte(testRules), 0o644))
	require.NoError(t, os.WriteFile(f.preset, []byte(testPreset), 0o644))
	require.NoError(t, os.WriteFile(f.results, []byte(testResults), 0o644))
	return f
}

func TestRunRules_JSON(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	cfg := lint.DefaultConfig()
	cfg.Preset = f.preset

	var buf bytes.Buffer
	require.NoError(t, runRules(&buf, cfg, rulesOptions{RulesPath: f.rules, JSON: true}))

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 3)

	assert.Equal(t, "no-unused-vars", entries[0]["name"])
	assert.Equal(t, "enabled", entries[0]["defaultStatus"])
	assert.Equal(t, []any{"warn", map[string]any{"args": "none"}}, entries[0]["defaultConfig"])

	assert.Equal(t, "no-debugger", entries[1]["name"])
	assert.Equal(t, "disabled", entries[1]["defaultStatus"])
	assert.Nil(t, entries[1]["defaultConfig"])

	assert.Equal(t, "eqeqeq", entries[2]["name"])
	assert.Equal(t, "unknown", entries[2]["defaultStatus"])
}

func TestRunRules_AllTable(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	var buf bytes.Buffer
	require.NoError(t, runRules(&buf, lint.DefaultConfig(), rulesOptions{RulesPath: f.rules, PresetPath: f.preset, All: true}))

	out := buf.String()
	assert.Contains(t, out, "indent-legacy")
	assert.Contains(t, out, "no-debugger")
}

func TestRunRules_Errors(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	var buf bytes.Buffer
	assert.Error(t, runRules(&buf, lint.DefaultConfig(), rulesOptions{RulesPath: filepath.Join(f.dir, "missing.json")}))
	assert.Error(t, runRules(&buf, lint.DefaultConfig(), rulesOptions{RulesPath: f.rules, PresetPath: filepath.Join(f.dir, "missing.yaml")}))
}

func TestRunReport_JSON(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	cfg := lint.DefaultConfig()
	cfg.Root = "/repo"
	cfg.DocsURL = ""
	require.NoError(t, applyReportFlags(&cfg, reportOptions{IgnorePaths: "vendor/**"}))

	var buf bytes.Buffer
	kept, err := runReport(context.Background(), zap.NewNop(), lint.ESLintLoader, cfg, reportOptions{RulesPath: f.rules, JSON: true}, []string{f.results}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, kept)

	var results []tt.RuleResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, []tt.Violation{
		{Line: 10, Column: 2, Severity: 2, Message: "no-unused-vars", RuleName: "no-unused-vars", Category: "problem", URL: "https://x/no-unused-vars"},
		{Line: 0, Column: 0, Severity: 1, Message: "eval", RuleName: "no-eval", Category: "problem", URL: ""},
	}, results[0].Violations)
	assert.Equal(t, "eslint", results[0].Engine)
	assert.Equal(t, "/repo/vendor/lib.js", results[1].FileName)
	assert.Empty(t, results[1].Violations)
}

func TestRunReport_TextToFile(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	cfg := lint.DefaultConfig()
	require.NoError(t, applyReportFlags(&cfg, reportOptions{IgnoreRules: "no-eval, eqeqeq", MinSeverity: "error"}))
	out := filepath.Join(f.dir, "report.txt")

	kept, err := runReport(context.Background(), nil, lint.ESLintLoader, cfg, reportOptions{OutPath: out}, []string{filepath.Dir(f.results)}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1, kept)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "error: no-unused-vars [problem]")
	assert.Contains(t, string(data), "docs: https://eslint.org/docs/latest/rules/no-unused-vars")
	assert.Contains(t, string(data), "/repo/vendor/lib.js: all violations suppressed")
}

func TestRunReport_Errors(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	cfg := lint.DefaultConfig()

	_, err := runReport(context.Background(), nil, lint.ESLintLoader, cfg, reportOptions{RulesPath: filepath.Join(f.dir, "nope.json")}, []string{f.results}, io.Discard)
	assert.Error(t, err)

	_, err = runReport(context.Background(), nil, lint.ESLintLoader, cfg, reportOptions{}, []string{filepath.Join(f.dir, "nope.json")}, io.Discard)
	assert.Error(t, err)

	bad := cfg
	bad.Suppressions = []string{":3"}
	_, err = runReport(context.Background(), nil, lint.ESLintLoader, bad, reportOptions{}, []string{f.results}, io.Discard)
	assert.Error(t, err)
}

func TestApplyReportFlags_BadSeverity(t *testing.T) {
	t.Parallel()
	cfg := lint.DefaultConfig()
	assert.Error(t, applyReportFlags(&cfg, reportOptions{MinSeverity: "loud"}))
}

func TestInitConfigurationFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "custom.yaml")

	got, err := initConfigurationFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	cfg, err := lint.ParseConfigurationFile(path)
	require.NoError(t, err)
	assert.Equal(t, "rulecat", cfg.Name)
	assert.Equal(t, "eslint", cfg.Engine)
}

func TestReportExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		kept int
		err  error
		want int
	}{
		{"clean", 0, nil, 0},
		{"violations kept", 2, nil, 1},
		{"build error", 0, errors.New("boom"), 1},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, reportExitCode(tc.kept, tc.err))
		})
	}
}

func TestExecute_ReportExitCode(t *testing.T) {
	f := newFixture(t)
	configPath := filepath.Join(f.dir, "none.yaml")
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		reportOpts = reportOptions{}
		cfgFile = ""
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)

	rootCmd.SetArgs([]string{"report", "--config", configPath, "--rules", f.rules, "--json", f.results})
	assert.Equal(t, 1, Execute())
	assert.Contains(t, out.String(), "no-unused-vars")

	out.Reset()
	rootCmd.SetArgs([]string{"report", "--config", configPath, "--ignore", "no-unused-vars,no-eval,eqeqeq", f.results})
	assert.Equal(t, 0, Execute())

	rootCmd.SetArgs([]string{"report", "--config", configPath})
	assert.Equal(t, 1, Execute())
}
