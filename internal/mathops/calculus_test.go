package mathops

import (
	"errors"
	"math"
	"testing"
)

func TestIntegrateSimpson(t *testing.T) {
	tests := []struct {
		name string
		y    []float64
		h    float64
		want float64
	}{
		// x^2 on [0,2] sampled at 0, 1, 2
		{"quadratic exact", []float64{0, 1, 4}, 1, 8.0 / 3.0},
		// constant 3 over [0,4]
		{"constant", []float64{3, 3, 3, 3, 3}, 1, 12},
		// x^3 on [0,1] with h=0.25; Simpson is exact for cubics
		{"cubic exact", []float64{0, 0.015625, 0.125, 0.421875, 1}, 0.25, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IntegrateSimpson(tt.y, tt.h)
			if err != nil {
				t.Fatalf("IntegrateSimpson failed: %v", err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntegrateSimpson_RejectsBadCounts(t *testing.T) {
	for _, y := range [][]float64{nil, {1}, {1, 2}, {1, 2, 3, 4}} {
		if _, err := IntegrateSimpson(y, 1); !errors.Is(err, ErrInsufficientPoints) {
			t.Errorf("len %d: expected ErrInsufficientPoints, got %v", len(y), err)
		}
	}
}

func TestDifferentiate(t *testing.T) {
	// y = x^2 at x = 0..4
	got, err := Differentiate([]float64{0, 1, 4, 9, 16}, 1)
	if err != nil {
		t.Fatalf("Differentiate failed: %v", err)
	}
	want := Vector{1, 2, 4, 6, 7}
	if len(got) != len(want) {
		t.Fatalf("length: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDifferentiate_TwoPoints(t *testing.T) {
	got, err := Differentiate([]float64{1, 2}, 0.5)
	if err != nil {
		t.Fatalf("Differentiate failed: %v", err)
	}
	if got[0] != 2 || got[1] != 2 {
		t.Errorf("got %v, want [2 2]", got)
	}
}

func TestDifferentiate_Errors(t *testing.T) {
	if _, err := Differentiate([]float64{1}, 1); !errors.Is(err, ErrInsufficientPoints) {
		t.Errorf("single point: expected ErrInsufficientPoints, got %v", err)
	}
	if _, err := Differentiate([]float64{1, 2, 3}, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero step: expected ErrInvalidArgument, got %v", err)
	}
}

func TestDerive(t *testing.T) {
	res, err := Derive([]float64{0, 2, 4}, 2)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if res.Points != 3 || res.StepSize != 2 {
		t.Errorf("got points=%d step=%v, want 3 and 2", res.Points, res.StepSize)
	}
	for i, d := range res.Derivative {
		if math.Abs(d-1) > tolerance {
			t.Errorf("index %d: got %v, want 1", i, d)
		}
	}
}
