// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for distance-matrix validation.
//  - Keep algorithms minimal by delegating shape/nil/symmetry checks here.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry check runs O(n²) on the upper triangle only.
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → Square → values),
//    matching the error priority documented in errors.go.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil, non-empty and square (Rows == Cols).
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquare", err)
	}
	if m.Rows() <= 0 {
		return validatorErrorf("ValidateSquare", ErrInvalidDimensions)
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateSymmetric checks |a_ij - a_ji| <= eps on the upper triangle.
// Assumes m is square (caller ensures); eps<0 is treated as 0.
// Complexity: O(n²).
func ValidateSymmetric(m Matrix, eps float64) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSymmetric", err)
	}
	if eps < 0 {
		eps = 0
	}
	n := m.Rows()
	var (
		i, j     int
		aij, aji float64
		err      error
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if aij, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateSymmetric", err)
			}
			if aji, err = m.At(j, i); err != nil {
				return validatorErrorf("ValidateSymmetric", err)
			}
			if math.Abs(aij-aji) > eps {
				return fmt.Errorf("ValidateSymmetric(%d,%d): %w", i, j, ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidateDistance enforces the full distance-matrix contract:
//   - non-nil, square, n >= 1,
//   - every entry finite,
//   - |a_ii| <= eps,
//   - a_ij >= 0 off the diagonal,
//   - |a_ij - a_ji| <= eps.
//
// Returns n (matrix order) on success.
// Complexity: O(n²).
func ValidateDistance(m Matrix, eps float64) (int, error) {
	// Stage 1: shape.
	if err := ValidateSquare(m); err != nil {
		return 0, validatorErrorf("ValidateDistance", err)
	}
	n := m.Rows()

	// Stage 2: values (finite, diagonal, negativity) in one pass.
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return 0, validatorErrorf("ValidateDistance", err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, fmt.Errorf("ValidateDistance(%d,%d): %w", i, j, ErrNaNInf)
			}
			if i == j {
				if math.Abs(v) > eps {
					return 0, fmt.Errorf("ValidateDistance(%d,%d): %w", i, j, ErrNonZeroDiagonal)
				}
				continue
			}
			if v < 0 {
				return 0, fmt.Errorf("ValidateDistance(%d,%d): %w", i, j, ErrNegativeDistance)
			}
		}
	}

	// Stage 3: symmetry.
	if err = ValidateSymmetric(m, eps); err != nil {
		return 0, validatorErrorf("ValidateDistance", err)
	}

	return n, nil
}
