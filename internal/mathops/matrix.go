package mathops

import "fmt"

// Vector is an ordered sequence of values.
type Vector []float64

// Matrix is a row-major sequence of equal-length rows.
type Matrix []Vector

// NewMatrix returns a zero-filled rows x cols matrix.
func NewMatrix(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make(Vector, cols)
	}
	return m
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return len(m) }

// Cols returns the length of the first row, or 0 for an empty matrix.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// IsSquare reports whether m is non-empty with as many columns as rows.
func (m Matrix) IsSquare() bool {
	return len(m) > 0 && m.Cols() == len(m)
}

// Multiply returns the product a x b.
func Multiply(a, b Matrix) (Matrix, error) {
	if len(a) == 0 || len(b) == 0 || a.Cols() != b.Rows() {
		return nil, fmt.Errorf("invalid matrix dimensions for multiplication: %dx%d by %dx%d: %w",
			a.Rows(), a.Cols(), b.Rows(), b.Cols(), ErrDimensionMismatch)
	}

	rows, cols, inner := a.Rows(), b.Cols(), a.Cols()
	out := NewMatrix(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var sum float64
			for k := 0; k < inner; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out, nil
}

// MultiplyVector returns the product m x v.
func MultiplyVector(m Matrix, v Vector) (Vector, error) {
	if len(m) == 0 || m.Cols() != len(v) {
		return nil, fmt.Errorf("invalid dimensions for matrix-vector multiplication: %dx%d by %d: %w",
			m.Rows(), m.Cols(), len(v), ErrDimensionMismatch)
	}

	out := make(Vector, len(m))
	for i, row := range m {
		var sum float64
		for j, x := range v {
			sum += row[j] * x
		}
		out[i] = sum
	}
	return out, nil
}

// Dot returns the sum of pairwise products of a and b.
func Dot(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vectors must have same size for dot product (%d vs %d): %w",
			len(a), len(b), ErrDimensionMismatch)
	}

	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum, nil
}

// Transpose swaps rows and columns. An empty matrix transposes to an empty
// matrix.
func Transpose(m Matrix) Matrix {
	if len(m) == 0 {
		return Matrix{}
	}

	out := NewMatrix(m.Cols(), m.Rows())
	for i, row := range m {
		for j, x := range row {
			out[j][i] = x
		}
	}
	return out
}

// Determinant computes det(m).
//
// Sizes 1 and 2 use closed forms. Larger matrices use recursive cofactor
// expansion along the first row, which costs O(n!) time; callers are
// responsible for bounding n.
func Determinant(m Matrix) (float64, error) {
	if !m.IsSquare() {
		return 0, fmt.Errorf("matrix must be square for determinant, got %dx%d: %w",
			m.Rows(), m.Cols(), ErrNotSquare)
	}
	return cofactor(m), nil
}

func cofactor(m Matrix) float64 {
	n := len(m)
	switch n {
	case 1:
		return m[0][0]
	case 2:
		return m[0][0]*m[1][1] - m[0][1]*m[1][0]
	}

	var det float64
	for j := 0; j < n; j++ {
		minor := NewMatrix(n-1, n-1)
		for r := 1; r < n; r++ {
			mc := 0
			for c := 0; c < n; c++ {
				if c == j {
					continue
				}
				minor[r-1][mc] = m[r][c]
				mc++
			}
		}

		sign := 1.0
		if j%2 == 1 {
			sign = -1.0
		}
		det += sign * m[0][j] * cofactor(minor)
	}
	return det
}
