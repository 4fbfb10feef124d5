// Package matrix stores and validates pairwise distance matrices.
//
// The matrix package provides:
//
//   - Matrix, a small interface over a mutable 2-D float64 array
//     (Rows, Cols, At, Set, Clone) with bounds-checked, error-returning access.
//   - Dense, a row-major implementation with an optional finite-only policy.
//   - NewSymmetric, which expands a packed strict upper triangle into an n×n matrix.
//   - Pairwise, which turns observation vectors into a distance matrix
//     under Euclidean, Manhattan or Chebyshev metrics.
//   - Validators (ValidateDistance and friends) enforcing the contract every
//     agglomeration run relies on: square, finite, zero diagonal, non-negative,
//     symmetric within an epsilon.
//
// All user-triggered failures are reported with sentinel errors (errors.go)
// and matched with errors.Is; nothing here panics on user input.
package matrix
