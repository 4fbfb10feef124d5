package linkage

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompleteLinkage indicates that one or more formula fields are nil.
	ErrIncompleteLinkage = errors.New("linkage: formula set is incomplete")

	// ErrUnknownLinkage indicates that ByName received an unregistered name.
	ErrUnknownLinkage = errors.New("linkage: unknown linkage name")
)

// Distances is the read-only view of the working distance matrix that the
// driver lends to formulas for the duration of one call.
type Distances interface {
	// Dist returns the current distance between clusters i and j.
	Dist(i, j int) float64
}

// Square is a plain [][]float64 distance view. Handy for tests and for
// callers evaluating formulas outside of a driver.
type Square [][]float64

// Dist implements Distances.
func (s Square) Dist(i, j int) float64 { return s[i][j] }

// PreminFunc adjusts driver-owned per-cluster scratch (aux) before the
// minimum-pair search. active lists the live cluster slots in ascending order.
type PreminFunc func(d Distances, active []int, aux []float64)

// SelectFunc scores the candidate pair (i, j); the driver merges the minimum.
type SelectFunc func(d Distances, aux []float64, i, j int) float64

// BranchFunc returns the branch length from cluster i up to its merge with j.
type BranchFunc func(d Distances, aux []float64, i, j int) float64

// UpdateFunc returns the distance from untouched cluster k to the cluster
// formed by merging i (sizeI members) and j (sizeJ members).
type UpdateFunc func(d Distances, k, i, j, sizeI, sizeJ int) float64

// RootSplitFunc splits the final merge into the two root branch lengths.
type RootSplitFunc func(d Distances, i, j, sizeI, sizeJ int) (bi, bj float64)

// Linkage is the formula set consumed by the agglomeration driver.
//
// Fields:
//   - Name      — stable identifier ("upgma", "nj", ...), used in cache keys and logs.
//   - Premin    — per-round adjustment; a no-op for every linkage except NJ.
//   - Select    — pair score; the driver merges the pair with the minimum.
//   - Branch    — child→parent branch length; called as Branch(i,j) and Branch(j,i).
//   - Update    — merged-cluster distance to each remaining k.
//   - RootSplit — root branch lengths for the last two clusters.
//   - Ultrametric — true when merge heights never decrease (all but NJ).
type Linkage struct {
	Name        string
	Premin      PreminFunc
	Select      SelectFunc
	Branch      BranchFunc
	Update      UpdateFunc
	RootSplit   RootSplitFunc
	Ultrametric bool
}

// Validate reports ErrIncompleteLinkage when any formula is missing.
// Complexity: O(1).
func (l Linkage) Validate() error {
	switch {
	case l.Premin == nil:
		return fmt.Errorf("%q Premin: %w", l.Name, ErrIncompleteLinkage)
	case l.Select == nil:
		return fmt.Errorf("%q Select: %w", l.Name, ErrIncompleteLinkage)
	case l.Branch == nil:
		return fmt.Errorf("%q Branch: %w", l.Name, ErrIncompleteLinkage)
	case l.Update == nil:
		return fmt.Errorf("%q Update: %w", l.Name, ErrIncompleteLinkage)
	case l.RootSplit == nil:
		return fmt.Errorf("%q RootSplit: %w", l.Name, ErrIncompleteLinkage)
	}

	return nil
}

// NoPremin is the Premin used by linkages that need no adjustment.
func NoPremin(Distances, []int, []float64) {}

// rawSelect scores a pair by its current distance.
func rawSelect(d Distances, _ []float64, i, j int) float64 { return d.Dist(i, j) }

// halfBranch places the merge point halfway between i and j.
func halfBranch(d Distances, _ []float64, i, j int) float64 { return 0.5 * d.Dist(i, j) }

// halfRootSplit gives both root children half of d[i][j].
func halfRootSplit(d Distances, i, j, _, _ int) (float64, float64) {
	h := 0.5 * d.Dist(i, j)

	return h, h
}
