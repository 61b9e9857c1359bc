package mathops

import (
	"fmt"

	"github.com/ironsheep/math-analysis-mcp/internal/jsonvalue"
)

// VectorFromValue decodes an array of numbers. Ints and floats are both
// accepted.
func VectorFromValue(v jsonvalue.Value) (Vector, error) {
	if !v.IsArray() {
		return nil, fmt.Errorf("expected array for vector, got %s: %w", v.Kind(), ErrInvalidArgument)
	}

	out := make(Vector, 0, v.Len())
	for i, item := range v.Items() {
		n, ok := item.Number()
		if !ok {
			return nil, fmt.Errorf("expected numeric value in vector at index %d, got %s: %w",
				i, item.Kind(), ErrInvalidArgument)
		}
		out = append(out, n)
	}
	return out, nil
}

// MatrixFromValue decodes an array of equal-length numeric arrays.
func MatrixFromValue(v jsonvalue.Value) (Matrix, error) {
	if !v.IsArray() {
		return nil, fmt.Errorf("expected array for matrix, got %s: %w", v.Kind(), ErrInvalidArgument)
	}

	out := make(Matrix, 0, v.Len())
	for i, rowVal := range v.Items() {
		if !rowVal.IsArray() {
			return nil, fmt.Errorf("expected array for matrix row %d, got %s: %w",
				i, rowVal.Kind(), ErrInvalidArgument)
		}
		row, err := VectorFromValue(rowVal)
		if err != nil {
			return nil, fmt.Errorf("matrix row %d: %w", i, err)
		}
		if i > 0 && len(row) != len(out[0]) {
			return nil, fmt.Errorf("matrix row %d has %d columns, expected %d: %w",
				i, len(row), len(out[0]), ErrDimensionMismatch)
		}
		out = append(out, row)
	}
	return out, nil
}

// VectorToValue encodes v as an array of floats.
func VectorToValue(v Vector) jsonvalue.Value {
	return jsonvalue.FromFloats(v)
}

// MatrixToValue encodes m as an array of float arrays.
func MatrixToValue(m Matrix) jsonvalue.Value {
	out := jsonvalue.Array()
	for _, row := range m {
		out.Append(jsonvalue.FromFloats(row))
	}
	return out
}

// ToValue encodes the statistics as an object.
func (s *Statistics) ToValue() jsonvalue.Value {
	out := jsonvalue.Object()
	out.Set("mean", jsonvalue.Float(s.Mean))
	out.Set("median", jsonvalue.Float(s.Median))
	out.Set("mode", jsonvalue.Float(s.Mode))
	out.Set("standard_deviation", jsonvalue.Float(s.StandardDeviation))
	out.Set("variance", jsonvalue.Float(s.Variance))
	out.Set("minimum", jsonvalue.Float(s.Minimum))
	out.Set("maximum", jsonvalue.Float(s.Maximum))
	out.Set("range", jsonvalue.Float(s.Range))
	out.Set("count", jsonvalue.Int(int64(s.Count)))
	return out
}

// ToValue encodes the fit as {coefficients, degree, equation}.
func (r *FitResult) ToValue() jsonvalue.Value {
	out := jsonvalue.Object()
	out.Set("coefficients", VectorToValue(r.Coefficients))
	out.Set("degree", jsonvalue.Int(int64(r.Degree)))
	out.Set("equation", jsonvalue.String(r.Equation))
	return out
}

// ToValue encodes the derivative as {derivative, step_size, points}.
func (r *DerivativeResult) ToValue() jsonvalue.Value {
	out := jsonvalue.Object()
	out.Set("derivative", VectorToValue(r.Derivative))
	out.Set("step_size", jsonvalue.Float(r.StepSize))
	out.Set("points", jsonvalue.Int(int64(r.Points)))
	return out
}

// ToValue encodes the integral as {integral, step_size, points}.
func (r *IntegralResult) ToValue() jsonvalue.Value {
	out := jsonvalue.Object()
	out.Set("integral", jsonvalue.Float(r.Integral))
	out.Set("step_size", jsonvalue.Float(r.StepSize))
	out.Set("points", jsonvalue.Int(int64(r.Points)))
	return out
}
