package mathops

import "errors"

// Sentinel errors. Every failure returned by this package wraps one of
// these so callers can classify it with errors.Is.
var (
	ErrEmptyInput         = errors.New("empty input")
	ErrDimensionMismatch  = errors.New("dimension mismatch")
	ErrNotSquare          = errors.New("matrix is not square")
	ErrInsufficientPoints = errors.New("insufficient data points")
	ErrInvalidArgument    = errors.New("invalid argument")
)
