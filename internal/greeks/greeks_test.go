package greeks

import (
	"math"
	"testing"

	"github.com/mfrandev/risk-assessment-engine/internal/blackscholes"
	"github.com/mfrandev/risk-assessment-engine/internal/instrument"
)

func approxEqual(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %v, want %v", name, got, want)
	}
}

func TestComputeEquityIsDeltaOne(t *testing.T) {
	book := instrument.ToSoA([]instrument.Instrument{
		{ID: 0, Kind: instrument.Equity, Qty: 100, CurrentPrice: 50},
	})
	res := Compute(book, nil)

	approxEqual(t, "per-contract price", res.PerContract[0].Price, 50, 1e-9)
	approxEqual(t, "per-contract delta", res.PerContract[0].Delta, 1, 1e-9)
	if res.PerContract[0].Gamma != 0 || res.PerContract[0].Vega != 0 ||
		res.PerContract[0].Theta != 0 || res.PerContract[0].Rho != 0 {
		t.Errorf("equity greeks beyond delta should be zero, got %+v", res.PerContract[0])
	}
	approxEqual(t, "per-position price", res.PerPosition[0].Price, 5000, 1e-9)
	approxEqual(t, "per-position delta", res.PerPosition[0].Delta, 100, 1e-9)
}

func TestComputeOptionMatchesBlackScholes(t *testing.T) {
	book := instrument.ToSoA([]instrument.Instrument{
		{ID: 1, Kind: instrument.Option, IsCall: true, Qty: 10,
			UnderlyingPrice: 50, UnderlyingIndex: 0, Strike: 55,
			TimeToMaturity: 0.5, ImpliedVol: 0.30, Rate: 0.01},
	})
	res := Compute(book, nil)

	want := blackscholes.Call(50, 55, 0.01, 0.30, 0.5)
	approxEqual(t, "price", res.PerContract[0].Price, want.Price, 1e-9)
	approxEqual(t, "delta", res.PerContract[0].Delta, want.Delta, 1e-9)
	approxEqual(t, "gamma", res.PerContract[0].Gamma, want.Gamma, 1e-9)
	approxEqual(t, "vega", res.PerContract[0].Vega, want.Vega, 1e-9)
	approxEqual(t, "theta", res.PerContract[0].Theta, want.Theta, 1e-9)
	approxEqual(t, "rho", res.PerContract[0].Rho, want.Rho, 1e-9)

	approxEqual(t, "position price", res.PerPosition[0].Price, want.Price*10, 1e-9)
}

func TestComputeOptionFallsBackToCurrentPriceWhenUnderlyingMissing(t *testing.T) {
	book := instrument.ToSoA([]instrument.Instrument{
		{ID: 1, Kind: instrument.Option, IsCall: true, Qty: 1,
			CurrentPrice: 5, UnderlyingPrice: 0, UnderlyingIndex: 0, Strike: 55,
			TimeToMaturity: 0.5, ImpliedVol: 0.30, Rate: 0.01},
	})
	res := Compute(book, nil)
	want := blackscholes.Call(5, 55, 0.01, 0.30, 0.5)
	approxEqual(t, "price", res.PerContract[0].Price, want.Price, 1e-9)
}

func TestComputeSpotOverrideAppliesToAllOptions(t *testing.T) {
	book := instrument.ToSoA([]instrument.Instrument{
		{ID: 1, Kind: instrument.Option, IsCall: true, Qty: 1,
			UnderlyingPrice: 50, UnderlyingIndex: 0, Strike: 55,
			TimeToMaturity: 0.5, ImpliedVol: 0.30, Rate: 0.01},
	})
	override := 60.0
	res := Compute(book, &override)
	want := blackscholes.Call(60, 55, 0.01, 0.30, 0.5)
	approxEqual(t, "price", res.PerContract[0].Price, want.Price, 1e-9)
}

func TestComputeTotalsAccumulatePerPosition(t *testing.T) {
	book := instrument.ToSoA([]instrument.Instrument{
		{ID: 0, Kind: instrument.Equity, Qty: 100, CurrentPrice: 50},
		{ID: 1, Kind: instrument.Option, IsCall: true, Qty: 10,
			UnderlyingPrice: 50, UnderlyingIndex: 0, Strike: 55,
			TimeToMaturity: 0.5, ImpliedVol: 0.30, Rate: 0.01},
	})
	res := Compute(book, nil)

	var wantPrice, wantDelta float64
	for _, p := range res.PerPosition {
		wantPrice += p.Price
		wantDelta += p.Delta
	}
	approxEqual(t, "totals price", res.Totals.Price, wantPrice, 1e-9)
	approxEqual(t, "totals delta", res.Totals.Delta, wantDelta, 1e-9)
}
