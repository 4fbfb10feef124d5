package agglom

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/katalvlaran/agglom/matrix"
)

// newTree allocates 2n−1 nodes with leaves 0..n-1 initialised.
func newTree(name string, n int, labels []string) *Tree {
	t := &Tree{
		Linkage: name,
		Leaves:  n,
		Root:    0,
		Nodes:   make([]Node, 2*n-1),
		Merges:  make([]Merge, 0, n-1),
	}
	for i := 0; i < n; i++ {
		t.Nodes[i] = Node{ID: i, Parent: NoNode, Left: NoNode, Right: NoNode, Size: 1}
		if labels != nil {
			t.Nodes[i].Label = labels[i]
		}
	}

	return t
}

// finalize recomputes Height bottom-up and Depth top-down.
// Relies on parent ids exceeding child ids.
func (t *Tree) finalize() {
	var (
		id int
		nd *Node
	)
	for id = 0; id < len(t.Nodes); id++ {
		nd = &t.Nodes[id]
		if nd.IsLeaf() {
			nd.Height = 0
			continue
		}
		l, r := &t.Nodes[nd.Left], &t.Nodes[nd.Right]
		nd.Height = math.Max(l.Height+l.Branch, r.Height+r.Branch)
	}
	for id = len(t.Nodes) - 1; id >= 0; id-- {
		nd = &t.Nodes[id]
		if nd.Parent == NoNode {
			nd.Depth, nd.Branch = 0, 0
			continue
		}
		nd.Depth = t.Nodes[nd.Parent].Depth + nd.Branch
	}
}

// Validate checks the structural invariants of a tree that did not come
// from Build (decoded snapshots, hand-built values):
//   - 2n−1 nodes, Root is the last id, Nodes[i].ID == i;
//   - ids below Leaves have no children, the others have two distinct
//     children with smaller ids that name them as Parent;
//   - every non-root node has a parent with a larger id; the root has none.
//
// A tree that passes is safe for every query method.
// Complexity: O(n).
func (t *Tree) Validate() error {
	n := t.Leaves
	if n <= 0 || len(t.Nodes) != 2*n-1 || t.Root != len(t.Nodes)-1 {
		return fmt.Errorf("%d leaves, %d nodes, root %d: %w", n, len(t.Nodes), t.Root, ErrMalformedTree)
	}
	total := len(t.Nodes)
	for id, nd := range t.Nodes {
		if nd.ID != id {
			return fmt.Errorf("node %d carries id %d: %w", id, nd.ID, ErrMalformedTree)
		}
		if id < n {
			if !nd.IsLeaf() {
				return fmt.Errorf("leaf %d has children: %w", id, ErrMalformedTree)
			}
		} else {
			if nd.Left < 0 || nd.Left >= id || nd.Right < 0 || nd.Right >= id || nd.Left == nd.Right {
				return fmt.Errorf("node %d children (%d, %d): %w", id, nd.Left, nd.Right, ErrMalformedTree)
			}
			if t.Nodes[nd.Left].Parent != id || t.Nodes[nd.Right].Parent != id {
				return fmt.Errorf("node %d children disown it: %w", id, ErrMalformedTree)
			}
		}
		if id == t.Root {
			if nd.Parent != NoNode {
				return fmt.Errorf("root %d has parent %d: %w", id, nd.Parent, ErrMalformedTree)
			}
			continue
		}
		if nd.Parent <= id || nd.Parent >= total {
			return fmt.Errorf("node %d parent %d: %w", id, nd.Parent, ErrMalformedTree)
		}
		if p := t.Nodes[nd.Parent]; p.Left != id && p.Right != id {
			return fmt.Errorf("node %d not a child of its parent %d: %w", id, nd.Parent, ErrMalformedTree)
		}
	}

	return nil
}

// Len returns the number of nodes (2n−1).
func (t *Tree) Len() int { return len(t.Nodes) }

// IsLeaf reports whether id is a leaf id.
func (t *Tree) IsLeaf(id int) bool { return id >= 0 && id < t.Leaves }

// Name returns the label of leaf id, or its index when unlabelled.
func (t *Tree) Name(id int) string {
	if id >= 0 && id < len(t.Nodes) && t.Nodes[id].Label != "" {
		return t.Nodes[id].Label
	}

	return strconv.Itoa(id)
}

// Labels returns the display name of every leaf in id order.
func (t *Tree) Labels() []string {
	out := make([]string, t.Leaves)
	for i := range out {
		out[i] = t.Name(i)
	}

	return out
}

// MaxDepth returns the largest root-to-leaf path length.
func (t *Tree) MaxDepth() float64 {
	var best float64
	for i := 0; i < t.Leaves; i++ {
		best = math.Max(best, t.Nodes[i].Depth)
	}

	return best
}

// checkNode validates id against the node range.
func (t *Tree) checkNode(id int) error {
	if len(t.Nodes) == 0 {
		return ErrEmptyTree
	}
	if id < 0 || id >= len(t.Nodes) {
		return fmt.Errorf("node %d of %d: %w", id, len(t.Nodes), ErrNodeRange)
	}

	return nil
}

// CommonAncestor returns the deepest node that has both a and b below it
// (a node is its own ancestor).
// Complexity: O(depth).
func (t *Tree) CommonAncestor(a, b int) (int, error) {
	if err := t.checkNode(a); err != nil {
		return NoNode, err
	}
	if err := t.checkNode(b); err != nil {
		return NoNode, err
	}
	// Parent ids exceed child ids: climb whichever side is lower until they meet.
	for a != b {
		if a < b {
			a = t.Nodes[a].Parent
		} else {
			b = t.Nodes[b].Parent
		}
	}

	return a, nil
}

// PathLength returns the patristic distance between nodes a and b
// (sum of edge lengths on the path through their common ancestor).
func (t *Tree) PathLength(a, b int) (float64, error) {
	lca, err := t.CommonAncestor(a, b)
	if err != nil {
		return 0, err
	}

	return t.Nodes[a].Depth + t.Nodes[b].Depth - 2*t.Nodes[lca].Depth, nil
}

// Cophenetic returns the n×n matrix whose (a, b) entry is twice the height of
// the common ancestor of leaves a and b. For ultrametric trees this is the
// fitted ultrametric; UPGMA on an ultrametric input reproduces the input.
// Complexity: O(n²·depth).
func (t *Tree) Cophenetic() (*matrix.Dense, error) {
	if t.Leaves == 0 {
		return nil, ErrEmptyTree
	}
	out, err := matrix.NewDense(t.Leaves, t.Leaves)
	if err != nil {
		return nil, err
	}
	var lca int
	for a := 0; a < t.Leaves; a++ {
		for b := a + 1; b < t.Leaves; b++ {
			if lca, err = t.CommonAncestor(a, b); err != nil {
				return nil, err
			}
			v := 2 * t.Nodes[lca].Height
			if err = out.Set(a, b, v); err != nil {
				return nil, err
			}
			if err = out.Set(b, a, v); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// LeafOrder returns leaf ids in left-to-right drawing order.
func (t *Tree) LeafOrder() []int {
	if len(t.Nodes) == 0 {
		return nil
	}
	out := make([]int, 0, t.Leaves)
	stack := []int{t.Root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nd := t.Nodes[id]
		if nd.IsLeaf() {
			out = append(out, id)
			continue
		}
		stack = append(stack, nd.Right, nd.Left) // Left pops first
	}

	return out
}

// Cut undoes the last k−1 merges and returns a cluster label per leaf.
// Labels are 0..k-1, numbered by each cluster's smallest leaf id.
//
// Errors: ErrEmptyTree, ErrBadCut for k outside [1, n].
func (t *Tree) Cut(k int) ([]int, error) {
	if t.Leaves == 0 {
		return nil, ErrEmptyTree
	}
	if k < 1 || k > t.Leaves {
		return nil, fmt.Errorf("k=%d with %d leaves: %w", k, t.Leaves, ErrBadCut)
	}
	// Internal nodes with id >= limit are undone; internal ids are creation-ordered.
	limit := len(t.Nodes) - (k - 1)

	return t.assign(func(id int) bool { return id < limit }), nil
}

// CutHeight returns a cluster label per leaf for the maximal subtrees whose
// Height does not exceed h. Labels follow Cut's numbering.
//
// The cut is a horizontal line through the dendrogram, so it is meant for
// ultrametric trees (UPGMA, WPGMA, single, complete). Additive trees are
// cut on their longest-path heights, which stay monotone while branches are
// non-negative; build neighbor joining trees WithClampNegative(true) to
// guarantee that.
//
// Errors: ErrEmptyTree, ErrBadCut when some node sits below one of its
// children (negative branch lengths).
func (t *Tree) CutHeight(h float64) ([]int, error) {
	if t.Leaves == 0 {
		return nil, ErrEmptyTree
	}
	for id := t.Leaves; id < len(t.Nodes); id++ {
		nd := t.Nodes[id]
		if nd.Height < t.Nodes[nd.Left].Height || nd.Height < t.Nodes[nd.Right].Height {
			return nil, fmt.Errorf("node %d below its children, heights not monotone: %w", id, ErrBadCut)
		}
	}

	return t.assign(func(id int) bool { return t.Nodes[id].Height <= h }), nil
}

// assign labels every leaf by its highest ancestor satisfying keep.
// keep must hold for all leaves and be monotone: false above any false.
func (t *Tree) assign(keep func(id int) bool) []int {
	top := make([]int, t.Leaves)
	for leaf := 0; leaf < t.Leaves; leaf++ {
		cur := leaf
		for p := t.Nodes[cur].Parent; p != NoNode && keep(p); p = t.Nodes[cur].Parent {
			cur = p
		}
		top[leaf] = cur
	}

	// Renumber cluster roots by their smallest leaf (leaves scanned ascending).
	ids := make(map[int]int)
	out := make([]int, t.Leaves)
	for leaf, r := range top {
		lbl, ok := ids[r]
		if !ok {
			lbl = len(ids)
			ids[r] = lbl
		}
		out[leaf] = lbl
	}

	return out
}

// Groups converts per-leaf labels into member lists ordered by label,
// members ascending.
func Groups(labels []int) [][]int {
	var k int
	for _, l := range labels {
		if l+1 > k {
			k = l + 1
		}
	}
	out := make([][]int, k)
	for leaf, l := range labels {
		out[l] = append(out[l], leaf)
	}
	for _, g := range out {
		sort.Ints(g)
	}

	return out
}
