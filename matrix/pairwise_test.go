package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/agglom/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMetrics checks each metric on a 3-4-5 triangle.
func TestMetrics(t *testing.T) {
	a, b := []float64{0, 0}, []float64{3, 4}
	assert.Equal(t, 5.0, matrix.Euclidean(a, b))
	assert.Equal(t, 7.0, matrix.Manhattan(a, b))
	assert.Equal(t, 4.0, matrix.Chebyshev(a, b))
}

// TestMetricByName resolves names and rejects unknown ones.
func TestMetricByName(t *testing.T) {
	for _, name := range []string{"", "euclidean", "Manhattan", "chebyshev"} {
		m, err := matrix.MetricByName(name)
		require.NoError(t, err, name)
		require.NotNil(t, m)
	}
	_, err := matrix.MetricByName("cosine")
	require.ErrorIs(t, err, matrix.ErrUnknownMetric)
}

// TestPairwise builds a valid distance matrix.
func TestPairwise(t *testing.T) {
	pts := [][]float64{{0, 0}, {3, 4}, {6, 8}}
	m, err := matrix.Pairwise(pts, nil)
	require.NoError(t, err)
	require.Equal(t, "[0, 5, 10]\n[5, 0, 5]\n[10, 5, 0]\n", m.String())

	_, err = matrix.ValidateDistance(m, matrix.DefaultEpsilon)
	require.NoError(t, err)
}

// TestPairwise_Errors covers empty, ragged and non-finite inputs.
func TestPairwise_Errors(t *testing.T) {
	_, err := matrix.Pairwise(nil, matrix.Euclidean)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.Pairwise([][]float64{{1, 2}, {1}}, matrix.Euclidean)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Pairwise([][]float64{{1, math.Inf(1)}, {1, 2}}, matrix.Euclidean)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}
