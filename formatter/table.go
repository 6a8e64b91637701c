package formatter

import (
	"encoding/json"
	"io"

	"github.com/gnoswap-labs/rulecat/internal/policy"
	"github.com/olekukonko/tablewriter"
)

// WriteRuleTable renders the default policy of catalog rules as a table.
func WriteRuleTable(w io.Writer, defaults []policy.RuleDefault) error {
	table := tablewriter.NewWriter(w)
	table.Header("Rule", "Category", "Default", "Config", "Deprecated", "Docs")
	for _, d := range defaults {
		deprecated := ""
		if d.Rule.Meta.Deprecated {
			deprecated = "yes"
		}
		row := []string{
			d.Rule.Name,
			string(d.Rule.Meta.Category),
			d.Status.String(),
			configString(d),
			deprecated,
			d.Rule.Meta.DocsURL,
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func configString(d policy.RuleDefault) string {
	if d.Config == nil {
		return "-"
	}
	b, err := json.Marshal(d.Config)
	if err != nil {
		return "?"
	}
	return string(b)
}
