package report

import (
	"strings"
	"testing"

	"github.com/mfrandev/risk-assessment-engine/internal/blackscholes"
	"github.com/mfrandev/risk-assessment-engine/internal/greeks"
	"github.com/mfrandev/risk-assessment-engine/internal/hvar"
	"github.com/mfrandev/risk-assessment-engine/internal/instrument"
	"github.com/mfrandev/risk-assessment-engine/internal/mcvar"
	"github.com/mfrandev/risk-assessment-engine/internal/universe"
)

func TestScaleAppliesPerDayAndPerPercentConventions(t *testing.T) {
	raw := blackscholes.Greeks{Theta: -252, Vega: 1000, Rho: 500}
	scaled := Scale(raw)
	if scaled.Theta != -1 {
		t.Errorf("theta per day = %v, want -1", scaled.Theta)
	}
	if scaled.Vega != 10 {
		t.Errorf("vega per 1%% = %v, want 10", scaled.Vega)
	}
	if scaled.Rho != 5 {
		t.Errorf("rho per 1%% = %v, want 5", scaled.Rho)
	}
}

func TestMoneyRoundsToTwoDecimals(t *testing.T) {
	if got := Money(123.456); got != "123.46" {
		t.Errorf("Money(123.456) = %s, want 123.46", got)
	}
}

func TestInstrumentLabelUsesUniverseSymbolForEquity(t *testing.T) {
	u := universe.New([]string{"AAPL", "MSFT"})
	inst := instrument.Instrument{ID: 1, Kind: instrument.Equity}
	if got := InstrumentLabel(inst, u); got != "MSFT" {
		t.Errorf("label = %s, want MSFT", got)
	}
}

func TestInstrumentLabelUsesCallPutForOptions(t *testing.T) {
	call := instrument.Instrument{ID: 2, Kind: instrument.Option, IsCall: true}
	put := instrument.Instrument{ID: 3, Kind: instrument.Option, IsCall: false}
	if got := InstrumentLabel(call, nil); got != "Call" {
		t.Errorf("label = %s, want Call", got)
	}
	if got := InstrumentLabel(put, nil); got != "Put" {
		t.Errorf("label = %s, want Put", got)
	}
}

func TestPortfolioReportIncludesEveryInstrument(t *testing.T) {
	book := instrument.ToSoA([]instrument.Instrument{
		{ID: 0, Kind: instrument.Equity, Qty: 100, CurrentPrice: 50},
		{ID: 1, Kind: instrument.Option, IsCall: true, Qty: 10,
			UnderlyingPrice: 50, UnderlyingIndex: 0, Strike: 55,
			TimeToMaturity: 0.5, ImpliedVol: 0.30, Rate: 0.01},
	})
	g := greeks.Compute(book, nil)
	u := universe.New([]string{"AAPL"})

	out := PortfolioReport(book, g, u)
	if !strings.Contains(out, "Instrument 0 (AAPL)") {
		t.Errorf("report missing equity row: %s", out)
	}
	if !strings.Contains(out, "Instrument 1 (Call)") {
		t.Errorf("report missing option row: %s", out)
	}
	if !strings.Contains(out, "Portfolio totals") {
		t.Errorf("report missing totals section: %s", out)
	}
}

func TestRiskSummaryIncludesBothEngines(t *testing.T) {
	out := RiskSummary(0.99, hvar.Result{VaR: 10, ES: 12}, mcvar.Result{VaR: 11, ES: 13})
	if !strings.Contains(out, "Historical") || !strings.Contains(out, "Monte Carlo") {
		t.Errorf("summary missing a section: %s", out)
	}
	if !strings.Contains(out, "$10.00") {
		t.Errorf("summary missing formatted hvar: %s", out)
	}
}
