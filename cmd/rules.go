package cmd

import (
	"encoding/json"
	"io"

	"github.com/gnoswap-labs/rulecat/formatter"
	"github.com/gnoswap-labs/rulecat/internal/catalog"
	"github.com/gnoswap-labs/rulecat/internal/eslint"
	"github.com/gnoswap-labs/rulecat/internal/policy"
	tt "github.com/gnoswap-labs/rulecat/internal/types"
	"github.com/gnoswap-labs/rulecat/lint"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rulesOptions struct {
	RulesPath  string
	PresetPath string
	All        bool
	JSON       bool
}

var rulesOpts rulesOptions

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rule catalog with default status and configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := lint.ParseConfigurationFile(cfgFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		if err := runRules(cmd.OutOrStdout(), cfg, rulesOpts); err != nil {
			logger.Fatal("Failed to list rules", zap.Error(err))
		}
	},
}

func init() {
	rulesCmd.Flags().StringVar(&rulesOpts.RulesPath, "rules", "", "Rule metadata dump (JSON)")
	rulesCmd.Flags().StringVar(&rulesOpts.PresetPath, "preset", "", "Recommended rule-set definition (overrides config)")
	rulesCmd.Flags().BoolVar(&rulesOpts.All, "all", false, "Include deprecated rules")
	rulesCmd.Flags().BoolVar(&rulesOpts.JSON, "json", false, "Output in JSON format")
	_ = rulesCmd.MarkFlagRequired("rules")
}

// ruleEntry is the JSON form of a catalog rule and its default policy.
type ruleEntry struct {
	Name          string              `json:"name"`
	Category      tt.Category         `json:"category"`
	URL           string              `json:"url"`
	Deprecated    bool                `json:"deprecated,omitempty"`
	DefaultStatus string              `json:"defaultStatus"`
	DefaultConfig *tt.RuleConfigValue `json:"defaultConfig"`
}

func runRules(w io.Writer, cfg lint.Config, opts rulesOptions) error {
	dump, err := eslint.LoadRules(opts.RulesPath)
	if err != nil {
		return err
	}

	cat := catalog.New(dump)
	rules := cat.AllowedRules()
	if opts.All {
		rules = cat.AllRules()
	}

	preset := opts.PresetPath
	if preset == "" {
		preset = cfg.Preset
	}
	var def policy.RuleSetDefinition
	if preset != "" {
		def, err = lint.LoadPreset(preset)
		if err != nil {
			return err
		}
	}

	defaults := policy.Resolve(rules, def)
	if !opts.JSON {
		return formatter.WriteRuleTable(w, defaults)
	}

	entries := make([]ruleEntry, 0, len(defaults))
	for _, d := range defaults {
		entries = append(entries, ruleEntry{
			Name:          d.Rule.Name,
			Category:      d.Rule.Meta.Category,
			URL:           d.Rule.Meta.DocsURL,
			Deprecated:    d.Rule.Meta.Deprecated,
			DefaultStatus: d.Status.String(),
			DefaultConfig: d.Config,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
