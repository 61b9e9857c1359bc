package mathops

import (
	"fmt"
	"math"
	"sort"
)

// Statistics summarizes a one-dimensional dataset.
type Statistics struct {
	Mean              float64 `json:"mean"`
	Median            float64 `json:"median"`
	Mode              float64 `json:"mode"`
	StandardDeviation float64 `json:"standard_deviation"`
	Variance          float64 `json:"variance"`
	Minimum           float64 `json:"minimum"`
	Maximum           float64 `json:"maximum"`
	Range             float64 `json:"range"`
	Count             int     `json:"count"`
}

// Describe computes descriptive statistics for data.
//
// Variance is the population variance (divided by N, not N-1). The median of
// an even-sized dataset is the mean of the two central values. The mode is
// the most frequent value; when several values share the highest frequency
// the smallest of them wins.
//
// # Errors
//
// Returns an error wrapping ErrEmptyInput when data has no elements.
func Describe(data []float64) (*Statistics, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot calculate statistics for empty dataset: %w", ErrEmptyInput)
	}

	n := float64(len(data))

	var sum float64
	for _, v := range data {
		sum += v
	}
	mean := sum / n

	var sq float64
	for _, v := range data {
		d := v - mean
		sq += d * d
	}
	variance := sq / n

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	var median float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}

	lo, hi := sorted[0], sorted[len(sorted)-1]

	return &Statistics{
		Mean:              mean,
		Median:            median,
		Mode:              mode(sorted),
		StandardDeviation: math.Sqrt(variance),
		Variance:          variance,
		Minimum:           lo,
		Maximum:           hi,
		Range:             hi - lo,
		Count:             len(data),
	}, nil
}

// mode expects ascending input, so the first run reaching the highest count
// is also the smallest candidate.
func mode(sorted []float64) float64 {
	best, bestCount := sorted[0], 0
	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		if j-i > bestCount {
			best, bestCount = sorted[i], j-i
		}
		if j == i {
			// NaN never equals itself
			j++
		}
		i = j
	}
	return best
}
