// Package blackscholes implements the closed-form European option
// pricing kernel and its Greeks.
//
// Units are raw: Δ in shares, ν per 1.00 volatility move, Θ per year,
// ρ per 1.00 rate move. Per-day Θ and per-1% ν/ρ scaling belong to the
// reporting layer (internal/report), never here.
//
// The kernel never returns an error. Degenerate inputs (vanishing time
// or volatility, non-positive spot or strike) are absorbed by floors
// and an intrinsic-value branch.
package blackscholes

import "math"

const (
	minTime = 1e-8
	minVol  = 1e-8

	invSqrt2Pi = 0.39894228040143267794
)

// Greeks holds an option's price and sensitivities.
type Greeks struct {
	Price float64
	Delta float64
	Gamma float64
	Vega  float64
	Theta float64
	Rho   float64
}

// normalCDF is the standard normal CDF, computed via the complementary
// error function: Φ(x) = ½·erfc(−x/√2).
func normalCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

func normalPDF(x float64) float64 {
	return invSqrt2Pi * math.Exp(-0.5*x*x)
}

// safeTimeToMaturity floors τ away from zero to avoid division by zero
// in d1/d2.
func safeTimeToMaturity(tau float64) float64 {
	return math.Max(tau, minTime)
}

// Intrinsic returns the option's intrinsic value: max(S-K, 0) for a
// call, max(K-S, 0) for a put.
func Intrinsic(isCall bool, spot, strike float64) float64 {
	if isCall {
		return math.Max(0, spot-strike)
	}
	return math.Max(0, strike-spot)
}

// Price returns the Black-Scholes price of a European option.
func Price(isCall bool, spot, strike, rate, vol, tau float64) float64 {
	if spot <= 0 || strike <= 0 {
		return 0
	}

	t := safeTimeToMaturity(tau)
	v := math.Max(vol, minVol)

	if tau <= minTime || vol <= minVol {
		return Intrinsic(isCall, spot, strike)
	}

	sqrtT := math.Sqrt(t)
	d1 := (math.Log(spot/strike) + (rate+0.5*v*v)*t) / (v * sqrtT)
	d2 := d1 - v*sqrtT
	disc := math.Exp(-rate * t)

	if isCall {
		return spot*normalCDF(d1) - strike*disc*normalCDF(d2)
	}
	return strike*disc*normalCDF(-d2) - spot*normalCDF(-d1)
}

// Compute returns the full price + Greeks for a European option.
//
// When spot or strike is non-positive, price and every Greek are 0.
// When τ or σ is at or below its floor, price is the intrinsic value,
// Δ is ±1/0 by moneyness, and Γ/ν/Θ/ρ are 0 — this branch exists to
// avoid division by zero in d1 and gives well-defined limits for
// expired or deterministic options.
func Compute(isCall bool, spot, strike, rate, vol, tau float64) Greeks {
	if spot <= 0 || strike <= 0 {
		return Greeks{}
	}

	t := safeTimeToMaturity(tau)
	v := math.Max(vol, minVol)

	if tau <= minTime || vol <= minVol {
		price := Intrinsic(isCall, spot, strike)
		var delta float64
		if isCall {
			if spot > strike {
				delta = 1
			}
		} else {
			if spot < strike {
				delta = -1
			}
		}
		return Greeks{Price: price, Delta: delta}
	}

	sqrtT := math.Sqrt(t)
	d1 := (math.Log(spot/strike) + (rate+0.5*v*v)*t) / (v * sqrtT)
	d2 := d1 - v*sqrtT
	pdfD1 := normalPDF(d1)
	disc := math.Exp(-rate * t)

	var g Greeks
	if isCall {
		nd1 := normalCDF(d1)
		nd2 := normalCDF(d2)
		g.Price = spot*nd1 - strike*disc*nd2
		g.Delta = nd1
		g.Theta = -(spot*pdfD1*v)/(2*sqrtT) - rate*strike*disc*nd2
		g.Rho = strike * t * disc * nd2
	} else {
		nd1 := normalCDF(-d1)
		nd2 := normalCDF(-d2)
		g.Price = strike*disc*nd2 - spot*nd1
		g.Delta = -nd1
		g.Theta = -(spot*pdfD1*v)/(2*sqrtT) + rate*strike*disc*nd2
		g.Rho = -strike * t * disc * nd2
	}

	g.Gamma = pdfD1 / (spot * v * sqrtT)
	g.Vega = spot * pdfD1 * sqrtT

	return g
}

// Call is a convenience wrapper over Compute for calls.
func Call(spot, strike, rate, vol, tau float64) Greeks {
	return Compute(true, spot, strike, rate, vol, tau)
}

// Put is a convenience wrapper over Compute for puts.
func Put(spot, strike, rate, vol, tau float64) Greeks {
	return Compute(false, spot, strike, rate, vol, tau)
}
