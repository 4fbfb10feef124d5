// SPDX-License-Identifier: MIT

// Package matrix - pairwise distances from observation vectors.
//
// Purpose:
//   - Turn n observations of equal dimension into an n×n distance matrix
//     that satisfies ValidateDistance by construction.
//
// Determinism:
//   - Fixed i<j loop; each pair computed once and mirrored.

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// Metric computes the distance between two equal-length vectors.
type Metric func(a, b []float64) float64

// Metric names accepted by MetricByName.
const (
	MetricEuclidean = "euclidean"
	MetricManhattan = "manhattan"
	MetricChebyshev = "chebyshev"
)

// Euclidean is the L2 distance.
func Euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return math.Sqrt(sum)
}

// Manhattan is the L1 (city-block) distance.
func Manhattan(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}

	return sum
}

// Chebyshev is the L∞ distance.
func Chebyshev(a, b []float64) float64 {
	var best float64
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > best {
			best = d
		}
	}

	return best
}

// MetricByName resolves a metric; "" selects Euclidean.
func MetricByName(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", MetricEuclidean:
		return Euclidean, nil
	case MetricManhattan:
		return Manhattan, nil
	case MetricChebyshev:
		return Chebyshev, nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownMetric)
	}
}

// Pairwise builds the n×n distance matrix of points under metric.
//
// Errors:
//   - ErrInvalidDimensions for no points or zero-length vectors.
//   - ErrDimensionMismatch when vectors differ in length.
//   - ErrNaNInf when an input coordinate or a computed distance is not finite.
//
// Complexity: O(n²·dim).
func Pairwise(points [][]float64, metric Metric) (*Dense, error) {
	n := len(points)
	if n == 0 || len(points[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	if metric == nil {
		metric = Euclidean
	}
	dim := len(points[0])
	for i, p := range points {
		if len(p) != dim {
			return nil, fmt.Errorf("Pairwise: point %d has dim %d, want %d: %w", i, len(p), dim, ErrDimensionMismatch)
		}
		for _, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("Pairwise: point %d: %w", i, ErrNaNInf)
			}
		}
	}

	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	var (
		i, j int
		d    float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d = metric(points[i], points[j])
			if err = m.Set(i, j, d); err != nil {
				return nil, err
			}
			m.data[j*n+i] = d
		}
	}

	return m, nil
}
