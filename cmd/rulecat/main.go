package main

import (
	"os"

	"github.com/gnoswap-labs/rulecat/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
