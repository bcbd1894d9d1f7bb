// Package moments estimates the sample mean and covariance of a
// historical shock matrix, supplying the drift and covariance inputs
// the Monte-Carlo engine needs.
package moments

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/mfrandev/risk-assessment-engine/internal/rkerr"
)

const op = "moments.Estimate"

// Result holds the estimated first and second moments of a factor
// return sample: Mu has length factors, Sigma is factors x factors
// row-major, matching mcvar.Params' expected shapes.
type Result struct {
	Mu    []float64
	Sigma []float64
}

// Estimate computes the sample mean and covariance of shocksFlat, a
// row-major scenarios x factors matrix (row t occupying
// shocksFlat[t*factors : (t+1)*factors]).
//
// The covariance uses the unbiased (n-1) estimator and is the
// zero matrix when scenarios <= 1, matching the degenerate-sample
// convention of the historical estimator this replaces.
func Estimate(shocksFlat []float64, scenarios, factors int) (Result, error) {
	if scenarios <= 0 || factors <= 0 {
		return Result{}, rkerr.Newf(op, rkerr.InvalidArgument,
			"scenarios and factors must be positive, got scenarios=%d factors=%d", scenarios, factors)
	}
	if len(shocksFlat) != scenarios*factors {
		return Result{}, rkerr.Newf(op, rkerr.InvalidArgument,
			"shock matrix has %d elements, want scenarios*factors = %d*%d = %d",
			len(shocksFlat), scenarios, factors, scenarios*factors)
	}

	data := mat.NewDense(scenarios, factors, shocksFlat)

	mu := make([]float64, factors)
	for j := 0; j < factors; j++ {
		mu[j] = stat.Mean(mat.Col(nil, j, data), nil)
	}

	sigma := make([]float64, factors*factors)
	if scenarios > 1 {
		var cov mat.SymDense
		stat.CovarianceMatrix(&cov, data, nil)
		for i := 0; i < factors; i++ {
			for j := 0; j < factors; j++ {
				sigma[i*factors+j] = cov.At(i, j)
			}
		}
	}

	return Result{Mu: mu, Sigma: sigma}, nil
}
