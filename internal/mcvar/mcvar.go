// Package mcvar implements Monte-Carlo VaR/ES: a log-normal factor
// model driven by correlated Gaussian shocks, revalued through the
// same kernel as the historical path, and distributed across a
// worker pool.
package mcvar

import (
	"context"
	"math/rand"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/mfrandev/risk-assessment-engine/internal/covariance"
	"github.com/mfrandev/risk-assessment-engine/internal/instrument"
	"github.com/mfrandev/risk-assessment-engine/internal/quantile"
	"github.com/mfrandev/risk-assessment-engine/internal/reval"
	"github.com/mfrandev/risk-assessment-engine/internal/rkerr"
)

const op = "mcvar.Compute"

// Result holds the risk figures from a Monte-Carlo computation. VaR
// and ES are reported as positive losses, matching hvar.Result.
type Result struct {
	VaR float64
	ES  float64
	PnL []float64 // length paths, indexed by path id
}

// Params bundles the inputs to Compute beyond the instrument book.
type Params struct {
	Mu      []float64 // length U, per-factor drift rate
	Sigma   []float64 // U x U covariance matrix, row-major
	Horizon float64
	Alpha   float64
	Paths   int
	Seed    int64
	// Threads is the worker-pool width. Zero or negative means
	// runtime.GOMAXPROCS(0); Threads=1 forces the single-thread
	// variant for strict cross-machine determinism.
	Threads int
}

// Compute runs the Monte-Carlo VaR/ES engine over instruments with a
// factor-return model N(mu*horizon, Sigma*horizon).
//
// Pre-checks: len(Mu) == U == universe size implied by Sigma's
// dimension; alpha in (0,1); paths > 0; horizon > 0.
func Compute(instruments *instrument.SoA, p Params) (Result, error) {
	u := len(p.Mu)
	if u == 0 {
		return Result{}, rkerr.New(op, rkerr.InvalidArgument, errEmptyUniverse)
	}
	if len(p.Sigma) != u*u {
		return Result{}, rkerr.Newf(op, rkerr.UniverseMismatch,
			"sigma has %d elements, want U*U = %d*%d = %d", len(p.Sigma), u, u, u*u)
	}
	if !(p.Alpha > 0 && p.Alpha < 1) {
		return Result{}, rkerr.Newf(op, rkerr.InvalidArgument, "alpha must be in (0,1), got %v", p.Alpha)
	}
	if p.Paths <= 0 {
		return Result{}, rkerr.Newf(op, rkerr.InvalidArgument, "paths must be positive, got %d", p.Paths)
	}
	if p.Horizon <= 0 {
		return Result{}, rkerr.Newf(op, rkerr.InvalidArgument, "horizon must be positive, got %v", p.Horizon)
	}

	drift := make([]float64, u)
	for i, m := range p.Mu {
		drift[i] = m * p.Horizon
	}
	sigmaScaled := make([]float64, u*u)
	for i, s := range p.Sigma {
		sigmaScaled[i] = s * p.Horizon
	}

	l, err := covariance.Factorize(sigmaScaled, u, covariance.Tolerant)
	if err != nil {
		return Result{}, rkerr.New(op, rkerr.KindOf(err, rkerr.NotPositiveDefinite), err)
	}

	workers := p.Threads
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > p.Paths {
		workers = p.Paths
	}

	pnl := make([]float64, p.Paths)
	var counter atomic.Int64

	g, ctx := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		workerID := w
		g.Go(func() error {
			rng := rand.New(rand.NewSource(p.Seed + int64(workerID)))
			z := make([]float64, u)
			gReturn := make([]float64, u)
			shocks := make([]float64, u)

			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				path := counter.Add(1) - 1
				if path >= int64(p.Paths) {
					return nil
				}

				for i := 0; i < u; i++ {
					z[i] = rng.NormFloat64()
				}
				for i := 0; i < u; i++ {
					sum := drift[i]
					for k := 0; k <= i; k++ {
						sum += l[i*u+k] * z[k]
					}
					gReturn[i] = sum
				}
				for i := 0; i < u; i++ {
					shocks[i] = reval.ShockFromLogReturn(gReturn[i])
				}

				v, revErr := reval.Revalue(instruments, shocks)
				if revErr != nil {
					return rkerr.New(op, rkerr.KindOf(revErr, rkerr.OutOfRange), revErr)
				}
				pnl[path] = v
			}
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	qLower := clamp01(1 - p.Alpha)
	cp := append([]float64(nil), pnl...)
	v, err := quantile.Select(cp, qLower)
	if err != nil {
		return Result{}, rkerr.New(op, rkerr.InvalidArgument, err)
	}

	varLoss := -v
	es := expectedShortfall(pnl, v, varLoss)

	return Result{VaR: varLoss, ES: es, PnL: pnl}, nil
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
