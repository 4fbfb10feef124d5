// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults (single source of truth).
//
// Notes:
//   - validateNaNInf controls whether Set()/ingestion rejects NaN/Inf at all.
//     It is a per-instance flag on Dense, preserved by Clone.
//   - DefaultEpsilon is the structural tolerance used by ValidateDistance
//     for symmetry and zero-diagonal checks. Callers pass their own eps to
//     the validators; this constant only documents the recommended value.
package matrix

// Numeric policy.
const (
	// DefaultEpsilon defines the non-negative tolerance used by structural checks.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on Set.
	DefaultValidateNaNInf = true
)
