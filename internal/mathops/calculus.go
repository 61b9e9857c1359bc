package mathops

import "fmt"

// IntegrateSimpson applies composite Simpson's rule to equally spaced
// samples y with spacing h.
//
// The sample count must be odd and at least 3. Even-length input is
// rejected rather than trimmed or padded.
func IntegrateSimpson(y []float64, h float64) (float64, error) {
	if len(y) < 3 || len(y)%2 == 0 {
		return 0, fmt.Errorf("simpson's rule requires an odd number of points >= 3, got %d: %w",
			len(y), ErrInsufficientPoints)
	}

	last := len(y) - 1
	sum := y[0] + y[last]
	for i := 1; i < last; i++ {
		if i%2 == 1 {
			sum += 4 * y[i]
		} else {
			sum += 2 * y[i]
		}
	}
	return sum * h / 3, nil
}

// Differentiate estimates dy/dx for equally spaced samples: forward
// difference at the first point, backward difference at the last, central
// difference everywhere else.
func Differentiate(y []float64, h float64) (Vector, error) {
	if len(y) < 2 {
		return nil, fmt.Errorf("need at least 2 points for differentiation, got %d: %w",
			len(y), ErrInsufficientPoints)
	}
	if h == 0 {
		return nil, fmt.Errorf("step size must be non-zero: %w", ErrInvalidArgument)
	}

	last := len(y) - 1
	out := make(Vector, len(y))
	out[0] = (y[1] - y[0]) / h
	for i := 1; i < last; i++ {
		out[i] = (y[i+1] - y[i-1]) / (2 * h)
	}
	out[last] = (y[last] - y[last-1]) / h
	return out, nil
}

// DerivativeResult is the outcome of a numerical differentiation.
type DerivativeResult struct {
	Derivative Vector  `json:"derivative"`
	StepSize   float64 `json:"step_size"`
	Points     int     `json:"points"`
}

// Derive runs Differentiate and records the inputs alongside the result.
func Derive(y []float64, h float64) (*DerivativeResult, error) {
	d, err := Differentiate(y, h)
	if err != nil {
		return nil, err
	}
	return &DerivativeResult{Derivative: d, StepSize: h, Points: len(y)}, nil
}

// IntegralResult is the outcome of a Simpson integration.
type IntegralResult struct {
	Integral float64 `json:"integral"`
	StepSize float64 `json:"step_size"`
	Points   int     `json:"points"`
}

// Integrate runs IntegrateSimpson and records the inputs alongside the result.
func Integrate(y []float64, h float64) (*IntegralResult, error) {
	area, err := IntegrateSimpson(y, h)
	if err != nil {
		return nil, err
	}
	return &IntegralResult{Integral: area, StepSize: h, Points: len(y)}, nil
}
