package formatter

import (
	"encoding/json"
	"io"

	tt "github.com/gnoswap-labs/rulecat/internal/types"
)

// WriteJSON writes results as an indented JSON array.
func WriteJSON(w io.Writer, results []tt.RuleResult) error {
	if results == nil {
		results = []tt.RuleResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
