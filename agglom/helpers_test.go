package agglom_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/agglom/matrix"
	"github.com/stretchr/testify/require"
)

// seedDet keeps random matrices reproducible across runs.
const seedDet = 7

// mustDense builds a Dense from literal rows or fails the test.
func mustDense(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

// example3 is the 3-leaf worked example.
func example3(t testing.TB) *matrix.Dense {
	return mustDense(t, [][]float64{
		{0, 2, 4},
		{2, 0, 6},
		{4, 6, 0},
	})
}

// wiki5 is the 5S rRNA UPGMA example (a..e).
func wiki5(t testing.TB) *matrix.Dense {
	return mustDense(t, [][]float64{
		{0, 17, 21, 31, 23},
		{17, 0, 30, 34, 21},
		{21, 30, 0, 28, 39},
		{31, 34, 28, 0, 43},
		{23, 21, 39, 43, 0},
	})
}

// wiki5Ultrametric is the ultrametric UPGMA fits to wiki5.
func wiki5Ultrametric(t testing.TB) *matrix.Dense {
	return mustDense(t, [][]float64{
		{0, 17, 33, 33, 22},
		{17, 0, 33, 33, 22},
		{33, 33, 0, 28, 33},
		{33, 33, 28, 0, 33},
		{22, 22, 33, 33, 0},
	})
}

// randDistance builds an n×n Euclidean distance matrix over random 3-D points.
func randDistance(t testing.TB, n int, rng *rand.Rand) *matrix.Dense {
	t.Helper()
	pts := make([][]float64, n)
	for i := range pts {
		pts[i] = []float64{rng.Float64(), rng.Float64(), rng.Float64()}
	}
	m, err := matrix.Pairwise(pts, matrix.Euclidean)
	require.NoError(t, err)

	return m
}
