package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfrandev/risk-assessment-engine/internal/greeks"
	"github.com/mfrandev/risk-assessment-engine/internal/report"
)

var (
	greeksMarketPath    string
	greeksPortfolioPath string
	greeksSpotOverride  float64
	greeksUseOverride   bool
)

var greeksCmd = &cobra.Command{
	Use:   "greeks",
	Short: "Price the portfolio and report Black-Scholes Greeks",
	Long: `greeks prices every option in the portfolio under Black-Scholes and
reports Delta, Gamma, Vega, Theta, and Rho per contract, per position,
and as portfolio totals.`,
	RunE: runGreeks,
}

func init() {
	rootCmd.AddCommand(greeksCmd)

	greeksCmd.Flags().StringVarP(&greeksMarketPath, "market", "m", "", "path to market closes CSV (required)")
	greeksCmd.Flags().StringVarP(&greeksPortfolioPath, "portfolio", "p", "", "path to portfolio CSV (required)")
	greeksCmd.Flags().Float64Var(&greeksSpotOverride, "spot", 0, "override every option's underlying spot")

	greeksCmd.MarkFlagRequired("market")
	greeksCmd.MarkFlagRequired("portfolio")
}

func runGreeks(cmd *cobra.Command, args []string) error {
	greeksUseOverride = cmd.Flags().Changed("spot")

	loaded, err := loadFromCSV(greeksMarketPath, greeksPortfolioPath)
	if err != nil {
		return err
	}

	var override *float64
	if greeksUseOverride {
		override = &greeksSpotOverride
	}

	res := greeks.Compute(loaded.Book, override)
	fmt.Print(report.PortfolioReport(loaded.Book, res, loaded.Universe))
	return nil
}
