// Package mathops provides the numerical operations exposed as MCP tools.
//
// All functions are pure: they never mutate their inputs, keep no state and
// perform no I/O. A Vector is a slice of float64; a Matrix is a slice of
// equal-length rows.
//
// # Operations
//
//   - Describe: mean, median, mode, population variance and standard deviation
//   - Multiply, MultiplyVector, Dot, Transpose, Determinant
//   - IntegrateSimpson: composite Simpson's rule over an odd number of samples
//   - Differentiate: forward/central/backward finite differences
//   - PolynomialFit: least squares via the normal equations
//
// # Error Handling
//
// Precondition failures are returned as errors wrapping one of the package
// sentinels (ErrEmptyInput, ErrDimensionMismatch, ErrNotSquare,
// ErrInsufficientPoints, ErrInvalidArgument). No function returns a default
// or zero result in place of an error.
//
// Numerical trouble is not an error. A singular least-squares system yields
// NaN or infinite coefficients, and Determinant has factorial cost; bounding
// input size is the caller's job.
//
// # JSON Adapters
//
// VectorFromValue, MatrixFromValue and the ToValue methods translate between
// these types and jsonvalue trees. Decoding accepts ints and floats, rejects
// ragged matrices, and encoding always produces floats.
package mathops
