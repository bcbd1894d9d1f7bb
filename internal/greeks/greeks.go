// Package greeks aggregates per-contract and per-position option
// sensitivities across a book, plus portfolio totals.
package greeks

import (
	"github.com/mfrandev/risk-assessment-engine/internal/blackscholes"
	"github.com/mfrandev/risk-assessment-engine/internal/instrument"
)

// Result holds three views of a book's Greeks: one Greeks struct per
// contract, one scaled by position quantity, and the portfolio total.
type Result struct {
	PerContract []blackscholes.Greeks
	PerPosition []blackscholes.Greeks
	Totals      blackscholes.Greeks
}

// Compute returns per-contract, per-position, and aggregated Greeks
// for instruments. spotOverride, if non-nil, replaces every option's
// underlying spot; otherwise an option uses its own underlying_price
// if positive, else its current_price. Equities are delta-one:
// (current_price, 1, 0, 0, 0, 0).
func Compute(instruments *instrument.SoA, spotOverride *float64) Result {
	n := instruments.Size()
	res := Result{
		PerContract: make([]blackscholes.Greeks, n),
		PerPosition: make([]blackscholes.Greeks, n),
	}

	for i := 0; i < n; i++ {
		var g blackscholes.Greeks

		if instruments.Kind[i] == instrument.Option {
			spot := resolveSpot(spotOverride, instruments.UnderlyingPrice[i], instruments.CurrentPrice[i])
			g = blackscholes.Compute(
				instruments.IsCall[i],
				spot,
				instruments.Strike[i],
				instruments.Rate[i],
				instruments.ImpliedVol[i],
				instruments.TimeToMaturity[i],
			)
		} else {
			g = blackscholes.Greeks{Price: instruments.CurrentPrice[i], Delta: 1}
		}

		res.PerContract[i] = g

		qty := instruments.Qty[i]
		pos := scale(g, qty)
		res.PerPosition[i] = pos

		res.Totals.Price += pos.Price
		res.Totals.Delta += pos.Delta
		res.Totals.Gamma += pos.Gamma
		res.Totals.Vega += pos.Vega
		res.Totals.Theta += pos.Theta
		res.Totals.Rho += pos.Rho
	}

	return res
}

func resolveSpot(override *float64, underlyingPrice, currentPrice float64) float64 {
	if override != nil {
		return *override
	}
	if underlyingPrice > 0 {
		return underlyingPrice
	}
	return currentPrice
}

func scale(g blackscholes.Greeks, qty float64) blackscholes.Greeks {
	return blackscholes.Greeks{
		Price: g.Price * qty,
		Delta: g.Delta * qty,
		Gamma: g.Gamma * qty,
		Vega:  g.Vega * qty,
		Theta: g.Theta * qty,
		Rho:   g.Rho * qty,
	}
}
