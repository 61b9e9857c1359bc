package mathops

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PolynomialFit returns least-squares coefficients c[0..degree] such that
// y ≈ c[0] + c[1]x + ... + c[degree]x^degree.
//
// The fit builds the Vandermonde design matrix A, forms the normal equations
// AᵀA·c = Aᵀy and solves them by Gaussian elimination with partial
// pivoting. A singular or badly conditioned system is not reported as an
// error: the affected coefficients come back as NaN or ±Inf.
func PolynomialFit(x, y []float64, degree int) (Vector, error) {
	if degree < 0 {
		return nil, fmt.Errorf("degree must be non-negative, got %d: %w", degree, ErrInvalidArgument)
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("x and y must have the same length (%d vs %d): %w",
			len(x), len(y), ErrDimensionMismatch)
	}
	if len(x) <= degree {
		return nil, fmt.Errorf("insufficient data points for polynomial fit: degree %d needs at least %d, got %d: %w",
			degree, degree+1, len(x), ErrInsufficientPoints)
	}

	terms := degree + 1
	design := NewMatrix(len(x), terms)
	for i, xi := range x {
		for j := 0; j < terms; j++ {
			design[i][j] = math.Pow(xi, float64(j))
		}
	}

	at := Transpose(design)
	ata, err := Multiply(at, design)
	if err != nil {
		return nil, err
	}
	aty, err := MultiplyVector(at, y)
	if err != nil {
		return nil, err
	}
	return solve(ata, aty), nil
}

// solve runs Gaussian elimination with partial pivoting on the square
// system a·x = b. Zero pivots are skipped during elimination and surface as
// non-finite entries during back substitution.
func solve(a Matrix, b Vector) Vector {
	n := len(b)
	aug := NewMatrix(n, n+1)
	for i := 0; i < n; i++ {
		copy(aug[i], a[i])
		aug[i][n] = b[i]
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(aug[r][col]) > math.Abs(aug[pivot][col]) {
				pivot = r
			}
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		if aug[col][col] == 0 {
			continue
		}
		for r := col + 1; r < n; r++ {
			factor := aug[r][col] / aug[col][col]
			for c := col; c <= n; c++ {
				aug[r][c] -= factor * aug[col][c]
			}
		}
	}

	out := make(Vector, n)
	for i := n - 1; i >= 0; i-- {
		sum := aug[i][n]
		for j := i + 1; j < n; j++ {
			sum -= aug[i][j] * out[j]
		}
		out[i] = sum / aug[i][i]
	}
	return out
}

// Equation renders coefficients as a human-readable polynomial, highest
// power first, e.g. "y = 2.000000x + 1.000000".
func Equation(coeffs []float64) string {
	var sb strings.Builder
	sb.WriteString("y = ")
	for i := len(coeffs) - 1; i >= 0; i-- {
		c := coeffs[i]
		if i == len(coeffs)-1 {
			sb.WriteString(formatCoefficient(c))
		} else {
			if c >= 0 {
				sb.WriteString(" + ")
			} else {
				sb.WriteString(" - ")
			}
			sb.WriteString(formatCoefficient(math.Abs(c)))
		}

		switch {
		case i > 1:
			sb.WriteString("x^")
			sb.WriteString(strconv.Itoa(i))
		case i == 1:
			sb.WriteString("x")
		}
	}
	return sb.String()
}

func formatCoefficient(c float64) string {
	return strconv.FormatFloat(c, 'f', 6, 64)
}

// FitResult is the outcome of a polynomial fit.
type FitResult struct {
	Coefficients Vector `json:"coefficients"`
	Degree       int    `json:"degree"`
	Equation     string `json:"equation"`
}

// Fit runs PolynomialFit and packages the coefficients with their equation.
func Fit(x, y []float64, degree int) (*FitResult, error) {
	coeffs, err := PolynomialFit(x, y, degree)
	if err != nil {
		return nil, err
	}
	return &FitResult{
		Coefficients: coeffs,
		Degree:       degree,
		Equation:     Equation(coeffs),
	}, nil
}
