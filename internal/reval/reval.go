// Package reval implements the revaluation kernel shared by the
// historical and Monte-Carlo VaR paths: mapping a factor-shock vector
// to a portfolio P&L.
//
// Per instrument i: an equity's shocked price is
// current_price_i * (1 + shocks[id_i]); an option's underlying is
// shocked the same way and repriced through Black-Scholes with the
// instrument's own (floored) vol and time to maturity. An option
// never applies a second, independent shock to its own implied vol:
// the single factor shock drives the underlying, and Black-Scholes
// repricing does the rest.
package reval

import (
	"math"

	"github.com/mfrandev/risk-assessment-engine/internal/blackscholes"
	"github.com/mfrandev/risk-assessment-engine/internal/instrument"
	"github.com/mfrandev/risk-assessment-engine/internal/rkerr"
)

const (
	minVol = 1e-8
	op     = "reval.Revalue"
)

// Revalue returns V_shocked - V_today for instruments under the given
// per-factor arithmetic shock vector. shocks must hold an entry for
// every factor index any instrument references (len(shocks) greater
// than the largest such index); Revalue fails with rkerr.OutOfRange
// otherwise.
//
// Revalue does not mutate instruments or shocks and is safe to call
// concurrently with distinct shock vectors.
func Revalue(instruments *instrument.SoA, shocks []float64) (float64, error) {
	u := len(shocks)
	n := instruments.Size()

	var deltaV float64
	for i := 0; i < n; i++ {
		// Equities are canonicalized at load time so UnderlyingIndex == ID;
		// this is the single factor index each instrument references.
		factorIdx := int(instruments.UnderlyingIndex[i])
		if factorIdx >= u || factorIdx < 0 {
			return 0, rkerr.Newf(op, rkerr.OutOfRange,
				"instrument %d references factor index %d, universe size %d",
				instruments.ID[i], factorIdx, u)
		}

		qty := instruments.Qty[i]
		priceToday := instruments.CurrentPrice[i]
		appliedShock := shocks[factorIdx]

		var priceShocked float64
		if instruments.Kind[i] == instrument.Option {
			underlyingShocked := instruments.UnderlyingPrice[i] * (1 + appliedShock)
			sigmaUsed := math.Max(instruments.ImpliedVol[i], minVol)
			tauUsed := math.Max(instruments.TimeToMaturity[i], 0)
			priceShocked = blackscholes.Price(
				instruments.IsCall[i],
				underlyingShocked,
				instruments.Strike[i],
				instruments.Rate[i],
				sigmaUsed,
				tauUsed,
			)
		} else {
			priceShocked = priceToday * (1 + appliedShock)
		}

		deltaV += qty * (priceShocked - priceToday)
	}

	return deltaV, nil
}

// ShockFromLogReturn converts a Monte-Carlo per-factor log-return g
// into the arithmetic shock Revalue expects: s = expm1(g).
func ShockFromLogReturn(g float64) float64 {
	return math.Expm1(g)
}
