// Package cmd implements the riskctl command-line tool: a local
// runner for historical VaR, Monte-Carlo VaR, and Black-Scholes
// Greeks over a CSV-loaded portfolio, plus a serve subcommand that
// exposes the same analytics over HTTP.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "riskctl",
	Short: "Portfolio market-risk analytics: historical VaR, Monte-Carlo VaR, Greeks",
	Long: `riskctl computes market-risk figures for an equity/option book:

  - Historical VaR/ES by full revaluation over a shock matrix
  - Monte-Carlo VaR/ES via a correlated log-normal factor model
  - Black-Scholes Greeks per contract, per position, and portfolio totals

Market data and the portfolio are loaded from CSV files given by the
--market and --portfolio flags.`,
}

// Execute runs the root command; callers invoke this from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
}
