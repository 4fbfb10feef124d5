// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All functions return these sentinels (possibly wrapped with %w context);
// tests MUST check them via errors.Is.

package matrix

import "errors"

// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape -> NaN/Inf -> diagonal -> negativity -> symmetry.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible lengths, e.g. ragged rows
	// or a packed triangle whose length is not n(n-1)/2.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrAsymmetry signals that |a_ij - a_ji| exceeded the configured epsilon.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNonZeroDiagonal signals a diagonal entry farther than eps from zero.
	ErrNonZeroDiagonal = errors.New("matrix: diagonal not zero within eps")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNegativeDistance signals a negative off-diagonal distance.
	ErrNegativeDistance = errors.New("matrix: negative distance")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrUnknownMetric indicates that MetricByName received an unregistered name.
	ErrUnknownMetric = errors.New("matrix: unknown metric")
)
