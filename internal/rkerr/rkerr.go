// Package rkerr defines the error taxonomy shared by every core risk
// package: InvalidArgument, OutOfRange, NotPositiveDefinite, and
// UniverseMismatch. Every core package returns one of these rather than
// panicking; the Black-Scholes kernel is the sole exception and never
// returns an error at all.
package rkerr

import (
	"errors"
	"fmt"
)

// Kind classifies a risk engine error.
type Kind int

const (
	// InvalidArgument covers shape mismatches, empty samples, an alpha
	// or horizon out of range, a non-finite quantile, or a non-positive
	// path count.
	InvalidArgument Kind = iota
	// OutOfRange means an instrument referenced a factor index beyond
	// the universe size.
	OutOfRange
	// NotPositiveDefinite means a covariance matrix failed PSD
	// validation: a diagonal candidate below -eps (tolerant mode) or
	// not positive (strict mode).
	NotPositiveDefinite
	// UniverseMismatch means a vector or matrix dimension disagreed
	// with the factor universe size.
	UniverseMismatch
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid_argument"
	case OutOfRange:
		return "out_of_range"
	case NotPositiveDefinite:
		return "not_positive_definite"
	case UniverseMismatch:
		return "universe_mismatch"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by core packages. Op names
// the failing operation (e.g. "hvar.Compute"); Err is the underlying
// sentinel or wrapped cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a *Error with the same Kind, so callers
// can do errors.Is(err, &rkerr.Error{Kind: rkerr.OutOfRange}).
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// New constructs an *Error for the given op, kind, and optional wrapped cause.
func New(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Newf constructs an *Error from a formatted message.
func Newf(op string, kind Kind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// OfKind reports whether err is an *Error of the given kind.
func OfKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns err's Kind if it is an *Error, else fallback. Useful
// for re-wrapping an error from a lower-level package under a new Op
// without losing its original classification.
func KindOf(err error, fallback Kind) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return fallback
}
