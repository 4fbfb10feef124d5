package agglom

import (
	"fmt"
	"math"

	"github.com/katalvlaran/agglom/linkage"
	"github.com/katalvlaran/agglom/matrix"
)

// Build runs nearest-pair agglomeration of dist under link and returns the
// finished tree. dist is copied; the caller's matrix is never mutated.
//
// Algorithm Outline:
//  1. Validate link (all formulas present) and dist (matrix.ValidateDistance).
//  2. Copy dist into a working [][]float64; every leaf is an active cluster.
//  3. While m > 2 clusters are active:
//     Premin(work, active, aux);
//     (i, j) = argmin Select over active pairs, skipping the outgroup;
//     join i and j under a new node with edge lengths from Branch(i,j), Branch(j,i);
//     work[i][k] = work[k][i] = Update(work, k, i, j, |i|, |j|) for the other k;
//     slot i becomes the merged cluster, slot j is retired.
//  4. Join the last two clusters under the root with RootSplit.
//  5. Fill Depth (top-down) and Height (bottom-up).
//
// Tie-breaking: the first minimum in ascending (i, j) slot order wins.
//
// Errors:
//   - ErrNilLinkage (wrapping linkage.ErrIncompleteLinkage).
//   - matrix sentinels from ValidateDistance (ErrNonSquare, ErrAsymmetry, ...).
//   - ErrBadLabels, ErrOutgroupRange.
//
// Complexity: O(n³) time, O(n²) memory.
func Build(dist matrix.Matrix, link linkage.Linkage, opts ...Option) (*Tree, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// Stage 1: validation.
	if err := link.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNilLinkage, err)
	}
	n, err := matrix.ValidateDistance(dist, cfg.Epsilon)
	if err != nil {
		return nil, fmt.Errorf("agglom: %w", err)
	}
	if err = validateLabels(cfg.Labels, n); err != nil {
		return nil, err
	}
	if cfg.Outgroup != NoNode && (cfg.Outgroup < 0 || cfg.Outgroup >= n) {
		return nil, fmt.Errorf("outgroup %d with %d leaves: %w", cfg.Outgroup, n, ErrOutgroupRange)
	}

	// Stage 2: working state.
	work, err := matrix.ToSlices(dist)
	if err != nil {
		return nil, fmt.Errorf("agglom: %w", err)
	}
	t := newTree(link.Name, n, cfg.Labels)
	if n == 1 {
		return t, nil
	}

	b := &builder{
		t:      t,
		link:   link,
		cfg:    cfg,
		d:      linkage.Square(work),
		active: make([]int, n),
		node:   make([]int, n),
		size:   make([]int, n),
		aux:    make([]float64, n),
		next:   n,
	}
	for i := 0; i < n; i++ {
		b.active[i] = i // ascending slot order
		b.node[i] = i   // slot i holds leaf i
		b.size[i] = 1
	}

	// Stage 3: agglomerate down to two clusters.
	for len(b.active) > 2 {
		b.round()
	}

	// Stage 4: root join.
	b.rootJoin()

	// Stage 5: depths and heights.
	t.finalize()

	return t, nil
}

// builder carries the mutable state of one Build call.
type builder struct {
	t      *Tree
	link   linkage.Linkage
	cfg    Options
	d      linkage.Square // working distances, indexed by slot
	active []int          // live slots, ascending
	node   []int          // slot -> current node id
	size   []int          // slot -> leaves in cluster
	aux    []float64      // Premin scratch, indexed by slot
	next   int            // next internal node id
}

// round performs one Premin → search → join → update cycle.
func (b *builder) round() {
	b.link.Premin(b.d, b.active, b.aux)

	// Minimum-pair search over active slots (a < c in active order).
	var (
		best   float64
		found  bool
		ai, ci int
		s      float64
	)
	m := len(b.active)
	for a := 0; a < m; a++ {
		if b.isOutgroup(b.active[a]) {
			continue
		}
		for c := a + 1; c < m; c++ {
			if b.isOutgroup(b.active[c]) {
				continue
			}
			s = b.link.Select(b.d, b.aux, b.active[a], b.active[c])
			if !found || s < best {
				best, ai, ci, found = s, a, c, true
			}
		}
	}
	i, j := b.active[ai], b.active[ci]

	li := b.link.Branch(b.d, b.aux, i, j)
	lj := b.link.Branch(b.d, b.aux, j, i)
	b.join(i, j, li, lj)

	// Distance update from every other active cluster to the merged one.
	var v float64
	for _, k := range b.active {
		if k == i || k == j {
			continue
		}
		v = b.link.Update(b.d, k, i, j, b.size[i], b.size[j])
		b.d[i][k], b.d[k][i] = v, v
	}

	// Slot i now stands for the merged cluster; retire j.
	b.size[i] += b.size[j]
	b.node[i] = b.next - 1
	b.active = append(b.active[:ci], b.active[ci+1:]...)
}

// rootJoin merges the last two active clusters under the root.
func (b *builder) rootJoin() {
	i, j := b.active[0], b.active[1]
	bi, bj := b.link.RootSplit(b.d, i, j, b.size[i], b.size[j])
	if b.link.Ultrametric {
		// A held-back outgroup can sit closer than the ingroup's own
		// height; the root never drops below either child.
		h := max(bi, bj, b.t.Nodes[b.node[i]].Height, b.t.Nodes[b.node[j]].Height)
		bi, bj = h, h
	}
	b.join(i, j, bi, bj)
	b.t.Root = b.next - 1
	b.active = b.active[:0]
}

// join creates the parent of slots i and j. li/lj are linkage outputs: node
// heights for ultrametric linkages, edge lengths otherwise.
func (b *builder) join(i, j int, li, lj float64) {
	left, right := b.node[i], b.node[j]
	t := b.t

	if b.link.Ultrametric {
		li -= t.Nodes[left].Height
		lj -= t.Nodes[right].Height
	}
	if b.cfg.ClampNegative {
		li = math.Max(li, 0)
		lj = math.Max(lj, 0)
	}

	id := b.next
	b.next++
	t.Nodes[id] = Node{
		ID:     id,
		Parent: NoNode,
		Left:   left,
		Right:  right,
		Size:   b.size[i] + b.size[j],
		// Provisional height so later ultrametric joins can subtract it;
		// finalize recomputes it from edge lengths.
		Height: math.Max(t.Nodes[left].Height+li, t.Nodes[right].Height+lj),
	}
	t.Nodes[left].Parent, t.Nodes[left].Branch = id, li
	t.Nodes[right].Parent, t.Nodes[right].Branch = id, lj

	mg := Merge{
		Step:        len(t.Merges),
		Node:        id,
		Left:        left,
		Right:       right,
		Distance:    b.d[i][j],
		BranchLeft:  li,
		BranchRight: lj,
		Size:        b.size[i] + b.size[j],
	}
	t.Merges = append(t.Merges, mg)
	if b.cfg.Observer != nil {
		b.cfg.Observer(mg)
	}
}

// isOutgroup reports whether slot still holds the held-back outgroup leaf.
// The outgroup is never merged before the root, so its slot keeps node==leaf.
func (b *builder) isOutgroup(slot int) bool {
	return b.cfg.Outgroup != NoNode && slot == b.cfg.Outgroup
}

// validateLabels enforces len==n, non-empty and unique labels (nil is allowed).
func validateLabels(labels []string, n int) error {
	if labels == nil {
		return nil
	}
	if len(labels) != n {
		return fmt.Errorf("got %d labels for %d leaves: %w", len(labels), n, ErrBadLabels)
	}
	seen := make(map[string]struct{}, n)
	for i, l := range labels {
		if l == "" {
			return fmt.Errorf("label %d is empty: %w", i, ErrBadLabels)
		}
		if _, ok := seen[l]; ok {
			return fmt.Errorf("label %q repeated: %w", l, ErrBadLabels)
		}
		seen[l] = struct{}{}
	}

	return nil
}

// ---------- Convenience constructors: build the whole tree on construction ----------

// UPGMA builds the UPGMA tree of dist.
func UPGMA(dist matrix.Matrix, opts ...Option) (*Tree, error) {
	return Build(dist, linkage.UPGMA(), opts...)
}

// WPGMA builds the WPGMA tree of dist.
func WPGMA(dist matrix.Matrix, opts ...Option) (*Tree, error) {
	return Build(dist, linkage.WPGMA(), opts...)
}

// Single builds the single-linkage tree of dist.
func Single(dist matrix.Matrix, opts ...Option) (*Tree, error) {
	return Build(dist, linkage.Single(), opts...)
}

// Complete builds the complete-linkage tree of dist.
func Complete(dist matrix.Matrix, opts ...Option) (*Tree, error) {
	return Build(dist, linkage.Complete(), opts...)
}

// NeighborJoining builds the neighbor-joining tree of dist.
func NeighborJoining(dist matrix.Matrix, opts ...Option) (*Tree, error) {
	return Build(dist, linkage.NeighborJoining(), opts...)
}
