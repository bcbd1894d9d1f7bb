// Package hvar implements full-revaluation historical VaR and Expected
// Shortfall: it iterates the revaluation kernel over the rows of a
// historical shock matrix, producing a P&L sample, then extracts VaR
// and ES from it.
package hvar

import (
	"log/slog"

	"github.com/mfrandev/risk-assessment-engine/internal/instrument"
	"github.com/mfrandev/risk-assessment-engine/internal/quantile"
	"github.com/mfrandev/risk-assessment-engine/internal/reval"
	"github.com/mfrandev/risk-assessment-engine/internal/rkerr"
)

const op = "hvar.Compute"

// Result holds the risk figures from a VaR computation. VaR and ES are
// reported as positive losses.
type Result struct {
	VaR  float64
	ES   float64
	PnL  []float64 // the P&L sample, one entry per scenario
}

// Options configures a Compute call. Trace turns on a per-scenario
// debug log; it is off by default because at realistic scenario
// counts it would be prohibitively noisy.
type Options struct {
	Trace bool
}

// Compute runs historical VaR/ES over instruments using a flattened
// T x U shock matrix (row t occupying shocksFlat[t*u : (t+1)*u]).
//
// Pre-checks: T >= 1, U > 0, len(shocksFlat) == T*U, alpha in (0,1).
func Compute(instruments *instrument.SoA, shocksFlat []float64, t, u int, alpha float64, opts Options) (Result, error) {
	if t < 1 {
		return Result{}, rkerr.Newf(op, rkerr.InvalidArgument, "scenario count T must be >= 1, got %d", t)
	}
	if u <= 0 {
		return Result{}, rkerr.Newf(op, rkerr.InvalidArgument, "universe size U must be positive, got %d", u)
	}
	if len(shocksFlat) != t*u {
		return Result{}, rkerr.Newf(op, rkerr.InvalidArgument,
			"shock matrix has %d elements, want T*U = %d*%d = %d", len(shocksFlat), t, u, t*u)
	}
	if !(alpha > 0 && alpha < 1) {
		return Result{}, rkerr.Newf(op, rkerr.InvalidArgument, "alpha must be in (0,1), got %v", alpha)
	}

	pnl := make([]float64, t)
	for scenario := 0; scenario < t; scenario++ {
		row := shocksFlat[scenario*u : (scenario+1)*u]
		v, err := reval.Revalue(instruments, row)
		if err != nil {
			return Result{}, rkerr.New(op, errKind(err), err)
		}
		pnl[scenario] = v

		if opts.Trace {
			slog.Debug("hvar scenario revalued", "scenario", scenario, "pnl", v)
		}
	}

	qLower := clamp01(1 - alpha)
	cp := append([]float64(nil), pnl...)
	v, err := quantile.Select(cp, qLower)
	if err != nil {
		return Result{}, rkerr.New(op, errKind(err), err)
	}

	varLoss := -v
	es := expectedShortfall(pnl, v, varLoss)

	return Result{VaR: varLoss, ES: es, PnL: pnl}, nil
}

// expectedShortfall is the mean loss over scenarios at or below the
// quantile v, falling back to the VaR figure when that set is empty.
func expectedShortfall(pnl []float64, v, varLoss float64) float64 {
	var sum float64
	var n int
	for _, p := range pnl {
		if p <= v {
			sum += p
			n++
		}
	}
	if n == 0 {
		return varLoss
	}
	return -(sum / float64(n))
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func errKind(err error) rkerr.Kind {
	if rkerr.OfKind(err, rkerr.OutOfRange) {
		return rkerr.OutOfRange
	}
	return rkerr.InvalidArgument
}
