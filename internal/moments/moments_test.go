package moments

import (
	"math"
	"testing"

	"github.com/mfrandev/risk-assessment-engine/internal/rkerr"
)

func approxEqual(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %v, want %v", name, got, want)
	}
}

func TestEstimateMeanTwoFactors(t *testing.T) {
	// scenario rows: (2,4), (4,8), (6,12) -> means (4, 8)
	shocks := []float64{2, 4, 4, 8, 6, 12}
	res, err := Estimate(shocks, 3, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	approxEqual(t, "mu[0]", res.Mu[0], 4, 1e-9)
	approxEqual(t, "mu[1]", res.Mu[1], 8, 1e-9)
}

func TestEstimateCovarianceMatchesHandComputation(t *testing.T) {
	// factor 1 is exactly 2x factor 0, so covariance is perfectly
	// correlated: Sigma = [[var0, 2*var0], [2*var0, 4*var0]].
	shocks := []float64{2, 4, 4, 8, 6, 12}
	res, err := Estimate(shocks, 3, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// sample variance of (2,4,6) with n-1 denominator = 4
	wantVar0 := 4.0
	approxEqual(t, "sigma[0][0]", res.Sigma[0], wantVar0, 1e-9)
	approxEqual(t, "sigma[0][1]", res.Sigma[1], 2*wantVar0, 1e-9)
	approxEqual(t, "sigma[1][1]", res.Sigma[3], 4*wantVar0, 1e-9)
}

func TestEstimateSingleScenarioYieldsZeroCovariance(t *testing.T) {
	res, err := Estimate([]float64{1, 2}, 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, v := range res.Sigma {
		if v != 0 {
			t.Fatalf("expected zero covariance for a single scenario, got %v", res.Sigma)
		}
	}
	approxEqual(t, "mu[0]", res.Mu[0], 1, 1e-9)
}

func TestEstimateRejectsShapeMismatch(t *testing.T) {
	_, err := Estimate([]float64{1, 2, 3}, 2, 2)
	if !rkerr.OfKind(err, rkerr.InvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestEstimateRejectsNonPositiveDimensions(t *testing.T) {
	_, err := Estimate(nil, 0, 0)
	if !rkerr.OfKind(err, rkerr.InvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}
