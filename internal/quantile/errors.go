package quantile

import "errors"

var (
	// errEmptySample is returned when Select is called on an empty slice.
	errEmptySample = errors.New("quantile: sample must be non-empty")
	// errNonFiniteQ is returned when q is NaN or infinite.
	errNonFiniteQ = errors.New("quantile: q must be finite")
)
