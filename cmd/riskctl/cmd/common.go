package cmd

import (
	"fmt"

	"github.com/mfrandev/risk-assessment-engine/internal/instrument"
	"github.com/mfrandev/risk-assessment-engine/internal/loaders/csvdata"
	"github.com/mfrandev/risk-assessment-engine/internal/universe"
)

// loadedBook is the result of loading market and portfolio data from
// CSV files, the inputs every analytic command shares.
type loadedBook struct {
	Book    *instrument.SoA
	Closes  csvdata.Closes
	Shocks  []float64
	Alpha   float64
	Universe *universe.Universe
}

// loadFromCSV loads market closes and a portfolio from local CSV
// files and derives the historical shock matrix from the closes.
func loadFromCSV(marketPath, portfolioPath string) (loadedBook, error) {
	closes, err := csvdata.LoadCloses(marketPath)
	if err != nil {
		return loadedBook{}, fmt.Errorf("load market closes: %w", err)
	}

	shocks, err := csvdata.ComputeShocks(closes.Prices, closes.T, closes.N)
	if err != nil {
		return loadedBook{}, fmt.Errorf("compute shocks: %w", err)
	}

	rows, err := csvdata.LoadPortfolio(portfolioPath, closes.N)
	if err != nil {
		return loadedBook{}, fmt.Errorf("load portfolio: %w", err)
	}

	return loadedBook{
		Book:     instrument.ToSoA(rows),
		Closes:   closes,
		Shocks:   shocks,
		Universe: universe.Default(),
	}, nil
}
