// Package report formats computed risk figures for human consumption:
// per-contract and per-position Greeks, portfolio totals, and VaR/ES
// summaries, applying the reporting-layer scaling conventions that
// the numerical core itself never applies (per-day Θ, per-1% ν/ρ).
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mfrandev/risk-assessment-engine/internal/blackscholes"
	"github.com/mfrandev/risk-assessment-engine/internal/greeks"
	"github.com/mfrandev/risk-assessment-engine/internal/hvar"
	"github.com/mfrandev/risk-assessment-engine/internal/instrument"
	"github.com/mfrandev/risk-assessment-engine/internal/mcvar"
	"github.com/mfrandev/risk-assessment-engine/internal/universe"
)

const daysPerYear = 252.0

// ScaledGreeks is a Greeks view with Θ quoted per day and ν/ρ quoted
// per 1% move, the conventions external consumers expect.
type ScaledGreeks struct {
	Price float64
	Delta float64
	Gamma float64
	Vega  float64 // per 1% vol
	Theta float64 // per day
	Rho   float64 // per 1% rate
}

// Scale converts a raw Greeks struct into its reporting-layer view.
func Scale(g blackscholes.Greeks) ScaledGreeks {
	return ScaledGreeks{
		Price: g.Price,
		Delta: g.Delta,
		Gamma: g.Gamma,
		Vega:  g.Vega / 100,
		Theta: g.Theta / daysPerYear,
		Rho:   g.Rho / 100,
	}
}

// Money rounds a dollar figure to 2dp via decimal.Decimal, the one
// place floats cross into a money-formatted string.
func Money(v float64) string {
	return decimal.NewFromFloat(v).Round(2).StringFixed(2)
}

// InstrumentLabel mirrors the CLI summary's row label: the option
// leg's Call/Put tag, or the underlying's ticker for an equity.
func InstrumentLabel(inst instrument.Instrument, u *universe.Universe) string {
	if inst.Kind == instrument.Option {
		if inst.IsCall {
			return "Call"
		}
		return "Put"
	}
	if u != nil {
		if sym := u.Symbol(int(inst.ID)); sym != "" {
			return sym
		}
	}
	return fmt.Sprintf("instrument-%d", inst.ID)
}

// PortfolioReport renders the itemized Greeks table and portfolio
// totals, the Go analogue of the CLI's "Portfolio" / "totals" sections.
func PortfolioReport(book *instrument.SoA, g greeks.Result, u *universe.Universe) string {
	var b strings.Builder
	b.WriteString("==================== Portfolio ====================\n")

	var portfolioValue float64
	for i := 0; i < book.Size(); i++ {
		inst := book.Get(i)
		label := InstrumentLabel(inst, u)
		pc := Scale(g.PerContract[i])
		pos := Scale(g.PerPosition[i])

		fmt.Fprintf(&b, "Instrument %d (%s)\n", inst.ID, label)
		fmt.Fprintf(&b, "  Price:    %.4f (per contract)\n", pc.Price)
		fmt.Fprintf(&b, "  Position: %.4f (%v units)\n", pos.Price, inst.Qty)
		fmt.Fprintf(&b, "  Greeks per contract: Δ=%.4f shares, Γ=%.4f 1/$^2, ν=%.4f $ per 1%% vol, Θ=%.4f $ per day, ρ=%.4f $ per 1%% rate\n",
			pc.Delta, pc.Gamma, pc.Vega, pc.Theta, pc.Rho)
		fmt.Fprintf(&b, "  Greeks for position: Δ=%.4f shares, Γ=%.4f 1/$^2, ν=%.4f $ per 1%% vol, Θ=%.4f $ per day, ρ=%.4f $ per 1%% rate\n",
			pos.Delta, pos.Gamma, pos.Vega, pos.Theta, pos.Rho)

		portfolioValue += pos.Price
	}

	totals := Scale(g.Totals)
	b.WriteString("\nPortfolio totals\n")
	fmt.Fprintf(&b, "  Market value: %s\n", Money(portfolioValue))
	fmt.Fprintf(&b, "  Δ: %.4f shares\n", totals.Delta)
	fmt.Fprintf(&b, "  Γ: %.4f 1/$^2\n", totals.Gamma)
	fmt.Fprintf(&b, "  ν: %.4f $ per 1%% vol\n", totals.Vega)
	fmt.Fprintf(&b, "  Θ: %.4f $ per day\n", totals.Theta)
	fmt.Fprintf(&b, "  ρ: %.4f $ per 1%% rate\n", totals.Rho)

	return b.String()
}

// RiskSummary renders the historical and Monte-Carlo VaR/ES sections.
func RiskSummary(alpha float64, h hvar.Result, mc mcvar.Result) string {
	var b strings.Builder
	pct := alpha * 100
	fmt.Fprintf(&b, "\n==================== Historical ====================\n")
	fmt.Fprintf(&b, "%.0f%% one-day HVaR: $%s\n", pct, Money(h.VaR))
	fmt.Fprintf(&b, "%.0f%% one-day HVaR (ES): $%s\n", pct, Money(h.ES))
	fmt.Fprintf(&b, "==================== Monte Carlo ====================\n")
	fmt.Fprintf(&b, "%.0f%% one-day MCVaR: $%s\n", pct, Money(mc.VaR))
	fmt.Fprintf(&b, "%.0f%% one-day MCVaR (ES): $%s\n", pct, Money(mc.ES))
	return b.String()
}
