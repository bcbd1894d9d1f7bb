// Package covariance factorizes a covariance matrix into a
// lower-triangular square root L (L·Lᵀ = Σ) via the classical
// Banachiewicz Cholesky recursion, for turning i.i.d. standard normals
// into correlated Monte-Carlo factor shocks.
package covariance

import (
	"math"

	"github.com/mfrandev/risk-assessment-engine/internal/rkerr"
)

const (
	// eps is the PSD tolerance: diagonal candidates within ±eps of zero
	// are treated as exactly zero (tolerant mode); below -eps they fail
	// even in tolerant mode.
	eps = 1e-12
	op  = "covariance.Factorize"
)

// Mode selects how Factorize handles a non-positive diagonal candidate.
type Mode int

const (
	// Tolerant zeroes out near-zero or negative-within-tolerance
	// diagonal candidates instead of failing, admitting
	// positive-semi-definite inputs. This is the default: it keeps the
	// Monte-Carlo engine usable when Σ is a sample covariance from a
	// small scenario count and has degenerate eigen-directions.
	Tolerant Mode = iota
	// Strict fails outright on any non-positive diagonal candidate.
	// Used for validation paths that must reject a non-PSD input
	// rather than silently zero a direction.
	Strict
)

// Factorize computes the lower-triangular L such that L·Lᵀ = sigma,
// where sigma is a row-major dim x dim symmetric matrix.
//
// Tolerant mode (default): a diagonal candidate s with s < -eps fails
// with rkerr.NotPositiveDefinite; -eps <= s <= eps sets L[i][i] = 0
// (treated as a zero eigen-direction); off-diagonal entries divided by
// a zeroed L[j][j] are themselves set to 0 rather than producing NaN.
//
// Strict mode: any diagonal candidate s <= 0 fails with
// rkerr.NotPositiveDefinite.
func Factorize(sigma []float64, dim int, mode Mode) ([]float64, error) {
	if dim <= 0 {
		return nil, rkerr.Newf(op, rkerr.InvalidArgument, "dim must be positive, got %d", dim)
	}
	if len(sigma) != dim*dim {
		return nil, rkerr.Newf(op, rkerr.InvalidArgument,
			"sigma has %d elements, want dim*dim = %d", len(sigma), dim*dim)
	}

	l := make([]float64, dim*dim)

	for i := 0; i < dim; i++ {
		for j := 0; j <= i; j++ {
			sum := sigma[i*dim+j]
			for k := 0; k < j; k++ {
				sum -= l[i*dim+k] * l[j*dim+k]
			}

			if i == j {
				switch mode {
				case Strict:
					if sum <= 0 {
						return nil, rkerr.Newf(op, rkerr.NotPositiveDefinite,
							"diagonal candidate %.3e at index %d is not positive", sum, i)
					}
					l[i*dim+i] = math.Sqrt(sum)
				default: // Tolerant
					if sum < -eps {
						return nil, rkerr.Newf(op, rkerr.NotPositiveDefinite,
							"diagonal candidate %.3e at index %d is below -eps", sum, i)
					}
					if sum <= eps {
						l[i*dim+i] = 0
					} else {
						l[i*dim+i] = math.Sqrt(sum)
					}
				}
				continue
			}

			diag := l[j*dim+j]
			if mode == Tolerant && math.Abs(diag) <= eps {
				l[i*dim+j] = 0
			} else {
				l[i*dim+j] = sum / diag
			}
		}
	}

	return l, nil
}
