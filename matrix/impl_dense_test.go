// Package matrix_test contains unit tests for the Dense implementation
// of the Matrix interface in the matrix package.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/agglom/matrix"
	"github.com/stretchr/testify/require"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)                      // zero rows
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions) // expect ErrInvalidDimensions

	_, err = matrix.NewDense(5, 0)                       // zero columns
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions) // expect ErrInvalidDimensions
}

// TestRowsCols verifies that Rows() and Cols() return correct dimension values.
func TestRowsCols(t *testing.T) {
	m, err := matrix.NewDense(3, 4)
	require.NoError(t, err)

	require.Equal(t, 3, m.Rows())
	require.Equal(t, 4, m.Cols())
	r, c := m.Shape()
	require.Equal(t, [2]int{3, 4}, [2]int{r, c})
}

// TestAtSetOutOfBounds ensures At() and Set() return ErrOutOfRange on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	require.ErrorIs(t, m.Set(2, 0, 1.23), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 4.56), matrix.ErrOutOfRange)
}

// TestSetRejectsNaNInf checks the default finite-only policy.
func TestSetRejectsNaNInf(t *testing.T) {
	m, err := matrix.NewDense(1, 1)
	require.NoError(t, err)

	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Set(0, 0, math.Inf(-1)), matrix.ErrNaNInf)
}

// TestCloneIndependence ensures Clone() returns a deep copy that does not share storage.
func TestCloneIndependence(t *testing.T) {
	m, err := matrix.NewDenseFrom([][]float64{{1, 0}, {0, 2}})
	require.NoError(t, err)

	clone := m.Clone()
	require.NoError(t, clone.Set(0, 0, 3.0)) // modify the clone only

	orig, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, orig) // original unchanged

	cv, err := clone.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 3.0, cv)
}

// TestNewDenseFrom covers the happy path and ragged input.
func TestNewDenseFrom(t *testing.T) {
	m, err := matrix.NewDenseFrom([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	require.Equal(t, "[1, 2, 3]\n[4, 5, 6]\n", m.String())

	_, err = matrix.NewDenseFrom([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewDenseFrom(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDenseFrom([][]float64{{1, math.NaN()}})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

// TestNewSymmetric expands a packed upper triangle.
func TestNewSymmetric(t *testing.T) {
	m, err := matrix.NewSymmetric(3, []float64{2, 4, 6})
	require.NoError(t, err)
	require.Equal(t, "[0, 2, 4]\n[2, 0, 6]\n[4, 6, 0]\n", m.String())

	one, err := matrix.NewSymmetric(1, nil)
	require.NoError(t, err)
	require.Equal(t, 1, one.Rows())

	_, err = matrix.NewSymmetric(3, []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewSymmetric(0, nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestToSlicesIndependent ensures the slice copy does not alias the matrix.
func TestToSlicesIndependent(t *testing.T) {
	m, err := matrix.NewSymmetric(3, []float64{2, 4, 6})
	require.NoError(t, err)

	s, err := matrix.ToSlices(m)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0, 2, 4}, {2, 0, 6}, {4, 6, 0}}, s)

	s[0][1] = 99
	v, err := m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 2.0, v)

	// Appending to one row must not spill into the next.
	s[0] = append(s[0], 7)
	require.Equal(t, 2.0, s[1][0])

	_, err = matrix.ToSlices(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
