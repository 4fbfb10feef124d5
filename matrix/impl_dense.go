// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// AI-Hints:
//   - Use NewDenseFrom for literal matrices in tests and readers.
//   - Use NewSymmetric when the input is a packed upper triangle (n(n-1)/2 values).
//   - ToSlices hands out an independent [][]float64 copy for algorithms that index directly.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); ToSlices: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt  = "At"  // method tag used in error wrappers
	ctxSet = "Set" // method tag used in error wrappers
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
//   - Stable, human-friendly messages; preserves sentinel via %w.
//
// Complexity: O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables NaN/Inf rejection in Set (policy default from options.go).
type Dense struct {
	r, c           int       // row and column counts (>0)
	data           []float64 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Errors:
//   - ErrInvalidDimensions when rows<=0 or cols<=0.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	// Validate shape.
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols), // make() zero-fills deterministically
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewDenseFrom copies a rectangular [][]float64 into a new Dense.
//
// Implementation:
//   - Stage 1: validate non-empty and rectangular (every row has len(rows[0])).
//   - Stage 2: allocate and copy row by row through Set (numeric policy applies).
//
// Errors:
//   - ErrInvalidDimensions for empty input, ErrDimensionMismatch for ragged rows,
//     ErrNaNInf for non-finite cells.
//
// Complexity: O(r*c).
func NewDenseFrom(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	c := len(rows[0])
	for i := range rows {
		if len(rows[i]) != c {
			return nil, fmt.Errorf("NewDenseFrom: row %d has %d cols, want %d: %w", i, len(rows[i]), c, ErrDimensionMismatch)
		}
	}
	m, err := NewDense(len(rows), c)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		for j, v := range rows[i] {
			if err = m.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// NewSymmetric expands a packed strict upper triangle into an n×n symmetric
// matrix with zero diagonal.
//
// Layout of upper (row-major, i<j):
//
//	d01 d02 ... d0(n-1) d12 ... d1(n-1) ... d(n-2)(n-1)
//
// Errors:
//   - ErrInvalidDimensions when n<=0.
//   - ErrDimensionMismatch when len(upper) != n(n-1)/2.
//   - ErrNaNInf for non-finite values.
//
// Complexity: O(n²).
func NewSymmetric(n int, upper []float64) (*Dense, error) {
	if n <= 0 {
		return nil, ErrInvalidDimensions
	}
	if want := n * (n - 1) / 2; len(upper) != want {
		return nil, fmt.Errorf("NewSymmetric: got %d values, want %d: %w", len(upper), want, ErrDimensionMismatch)
	}
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	var (
		i, j int
		k    int // cursor into upper
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if err = m.Set(i, j, upper[k]); err != nil {
				return nil, err
			}
			m.data[j*n+i] = upper[k] // mirror; Set above already validated the value
			k++
		}
	}

	return m, nil
}

// Rows returns the row count. No side effects.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Public methods (At/Set) wrap the sentinel with coordinates and method name.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for invalid numbers when the policy is on.
//
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	// Numeric policy: optional finite-only enforcement.
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy (new buffer, same numeric policy).
// Complexity: O(r*c).
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{
		r:              m.r,
		c:              m.c,
		data:           cp,
		validateNaNInf: m.validateNaNInf, // preserve guard policy
	}
}

// ToSlices returns an independent [][]float64 copy of m backed by one buffer.
// Complexity: O(r*c).
func (m *Dense) ToSlices() [][]float64 {
	buf := make([]float64, len(m.data))
	copy(buf, m.data)
	out := make([][]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = buf[i*m.c : (i+1)*m.c : (i+1)*m.c]
	}

	return out
}

// String renders rows as "[a, b]\n" lines for diagnostics. Not for hot paths.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			sb.WriteString(fmt.Sprintf("%g", m.data[i*m.c+j]))
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}

// ToSlices copies any Matrix into [][]float64, taking the flat fast path for *Dense.
//
// Errors: ErrNilMatrix for nil input; At errors bubble unchanged.
// Complexity: O(r*c).
func ToSlices(m Matrix) ([][]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	if d, ok := m.(*Dense); ok {
		return d.ToSlices(), nil
	}
	r, c := m.Rows(), m.Cols()
	out := make([][]float64, r)
	var err error
	for i := 0; i < r; i++ {
		out[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			if out[i][j], err = m.At(i, j); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
