package main

import (
	"os"

	"github.com/mfrandev/risk-assessment-engine/cmd/riskctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
