package csvdata

import (
	"errors"
	"strconv"
)

var (
	errNoDataRows         = errors.New("no data rows found in closes CSV")
	errZeroDimension      = errors.New("compute shocks requires positive dimension")
	errTooFewObservations = errors.New("compute shocks requires at least two observations")
	errNonPositiveBase    = errors.New("encountered non-positive base price while computing shocks")
	errNonFinite          = errors.New("value is not finite")

	errFieldCount                 = errors.New("unexpected field count in portfolio row")
	errInvalidID                  = errors.New("invalid or out-of-range id")
	errInvalidType                = errors.New("invalid type, must be 0 (equity) or 1 (option)")
	errInvalidIsCall              = errors.New("invalid is_call")
	errInvalidQty                 = errors.New("invalid qty")
	errInvalidCurrentPrice        = errors.New("invalid or non-positive current_price")
	errInvalidUnderlyingPrice     = errors.New("invalid or non-positive underlying_price")
	errInvalidUnderlyingIndex     = errors.New("invalid underlying_index")
	errEquityUnderlyingMismatch   = errors.New("equity underlying_index must equal id")
	errUnderlyingIndexOutOfBounds = errors.New("underlying_index out of bounds")
	errInvalidStrike              = errors.New("invalid or non-positive strike")
	errInvalidTTM                 = errors.New("invalid time_to_maturity")
	errInvalidImpliedVol          = errors.New("invalid implied_vol")
	errInvalidRate                = errors.New("invalid rate")
)

func parseFloat(token string) (float64, error) {
	return strconv.ParseFloat(token, 64)
}

func parseRequiredUint32(token string) (uint32, error) {
	if token == "" {
		return 0, errNonFinite
	}
	v, err := strconv.ParseUint(token, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// parseOptionalUint32 parses token as a uint32; if token is empty and
// required is false, it returns def instead of erroring. If required
// is true, an empty token is an error.
func parseOptionalUint32(token string, required bool, def uint32) (uint32, error) {
	if token == "" {
		if required {
			return 0, errNonFinite
		}
		return def, nil
	}
	return parseRequiredUint32(token)
}

func parseRequiredFinite(token string) (float64, error) {
	if token == "" {
		return 0, errNonFinite
	}
	return parseFinite(token)
}

// parseOptionalFinite parses token as a finite float64; if token is
// empty and required is false, it returns def instead of erroring.
func parseOptionalFinite(token string, required bool, def float64) (float64, error) {
	if token == "" {
		if required {
			return 0, errNonFinite
		}
		return def, nil
	}
	return parseFinite(token)
}
