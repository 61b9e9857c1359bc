package mathops

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestDescribe(t *testing.T) {
	stats, err := Describe([]float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"mean", stats.Mean, 2.5},
		{"median", stats.Median, 2.5},
		{"variance", stats.Variance, 1.25},
		{"std dev", stats.StandardDeviation, math.Sqrt(1.25)},
		{"minimum", stats.Minimum, 1},
		{"maximum", stats.Maximum, 4},
		{"range", stats.Range, 3},
		{"mode", stats.Mode, 1},
	}
	for _, c := range checks {
		if !almostEqual(c.got, c.want) {
			t.Errorf("%s: got %v, want %v", c.name, c.got, c.want)
		}
	}
	if stats.Count != 4 {
		t.Errorf("Count: got %d, want 4", stats.Count)
	}
	if math.Abs(stats.StandardDeviation-1.118) > 0.001 {
		t.Errorf("StandardDeviation: got %.4f, want ~1.118", stats.StandardDeviation)
	}
}

func TestDescribe_Median(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want float64
	}{
		{"single", []float64{7}, 7},
		{"odd unsorted", []float64{9, 1, 5}, 5},
		{"even unsorted", []float64{10, 2, 4, 8}, 6},
		{"negative", []float64{-3, -1, -2}, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := Describe(tt.data)
			if err != nil {
				t.Fatalf("Describe failed: %v", err)
			}
			if !almostEqual(stats.Median, tt.want) {
				t.Errorf("Median: got %v, want %v", stats.Median, tt.want)
			}
		})
	}
}

func TestDescribe_Mode(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want float64
	}{
		{"clear winner", []float64{3, 1, 3, 2, 3}, 3},
		{"tie picks smallest", []float64{5, 2, 5, 2, 9}, 2},
		{"all distinct picks smallest", []float64{4, 8, 1}, 1},
		{"floats", []float64{0.5, 0.25, 0.5}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := Describe(tt.data)
			if err != nil {
				t.Fatalf("Describe failed: %v", err)
			}
			if stats.Mode != tt.want {
				t.Errorf("Mode: got %v, want %v", stats.Mode, tt.want)
			}
		})
	}
}

func TestDescribe_Empty(t *testing.T) {
	stats, err := Describe(nil)
	if err == nil {
		t.Fatalf("expected error for empty dataset, got %+v", stats)
	}
	if stats != nil {
		t.Errorf("expected nil statistics, got %+v", stats)
	}
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("error should wrap ErrEmptyInput, got %v", err)
	}
}

func TestDescribe_DoesNotMutateInput(t *testing.T) {
	data := []float64{3, 1, 2}
	if _, err := Describe(data); err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if data[0] != 3 || data[1] != 1 || data[2] != 2 {
		t.Errorf("input was reordered: %v", data)
	}
}
