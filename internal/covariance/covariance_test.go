package covariance

import (
	"math"
	"testing"

	"github.com/mfrandev/risk-assessment-engine/internal/rkerr"
)

func reconstruct(l []float64, dim int) []float64 {
	out := make([]float64, dim*dim)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			var sum float64
			for k := 0; k < dim; k++ {
				sum += l[i*dim+k] * l[j*dim+k]
			}
			out[i*dim+j] = sum
		}
	}
	return out
}

func approxMatrix(t *testing.T, got, want []float64, dim int, tol float64) {
	t.Helper()
	for i := 0; i < dim*dim; i++ {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("element %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFactorizeIdentity(t *testing.T) {
	sigma := []float64{1, 0, 0, 1}
	l, err := Factorize(sigma, 2, Tolerant)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	approxMatrix(t, reconstruct(l, 2), sigma, 2, 1e-12)
}

func TestFactorizeCorrelated(t *testing.T) {
	// A valid 2x2 covariance matrix with correlation 0.5.
	sigma := []float64{
		4, 1,
		1, 1,
	}
	l, err := Factorize(sigma, 2, Tolerant)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	approxMatrix(t, reconstruct(l, 2), sigma, 2, 1e-9)
}

func TestFactorizeToleratesZeroEigenDirection(t *testing.T) {
	// Rank-deficient PSD matrix: second factor is a deterministic
	// multiple of the first (perfect correlation), a common artifact
	// of small-sample covariance estimates.
	sigma := []float64{
		1, 1,
		1, 1,
	}
	l, err := Factorize(sigma, 2, Tolerant)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l[1*2+1] != 0 {
		t.Errorf("degenerate direction should be zeroed, got L[1][1]=%v", l[3])
	}
	approxMatrix(t, reconstruct(l, 2), sigma, 2, 1e-9)
}

func TestFactorizeTolerantFailsBelowNegativeEps(t *testing.T) {
	sigma := []float64{
		-1, 0,
		0, 1,
	}
	_, err := Factorize(sigma, 2, Tolerant)
	if !rkerr.OfKind(err, rkerr.NotPositiveDefinite) {
		t.Fatalf("expected NotPositiveDefinite, got %v", err)
	}
}

func TestFactorizeStrictFailsOnZeroDiagonal(t *testing.T) {
	sigma := []float64{
		1, 1,
		1, 1,
	}
	_, err := Factorize(sigma, 2, Strict)
	if !rkerr.OfKind(err, rkerr.NotPositiveDefinite) {
		t.Fatalf("expected NotPositiveDefinite in strict mode, got %v", err)
	}
}

func TestFactorizeRejectsShapeMismatch(t *testing.T) {
	_, err := Factorize([]float64{1, 2, 3}, 2, Tolerant)
	if !rkerr.OfKind(err, rkerr.InvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestFactorizeZeroMatrix(t *testing.T) {
	sigma := make([]float64, 9)
	l, err := Factorize(sigma, 3, Tolerant)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, v := range l {
		if v != 0 {
			t.Fatalf("expected all-zero L for zero covariance, got %v", l)
		}
	}
}
