package agglom

import "errors"

var (
	// ErrNilLinkage indicates an incomplete formula set was passed to Build.
	ErrNilLinkage = errors.New("agglom: linkage is incomplete")

	// ErrBadLabels indicates labels whose count differs from n, or that are empty or duplicated.
	ErrBadLabels = errors.New("agglom: labels must be n unique non-empty strings")

	// ErrOutgroupRange indicates an outgroup leaf outside [0, n).
	ErrOutgroupRange = errors.New("agglom: outgroup leaf out of range")

	// ErrEmptyTree indicates a query on a tree without nodes.
	ErrEmptyTree = errors.New("agglom: tree is empty")

	// ErrBadCut indicates a cluster count outside [1, n].
	ErrBadCut = errors.New("agglom: cut must produce between 1 and n clusters")

	// ErrNodeRange indicates a node id outside the tree.
	ErrNodeRange = errors.New("agglom: node id out of range")

	// ErrNewickSyntax indicates malformed Newick text.
	ErrNewickSyntax = errors.New("agglom: malformed newick")

	// ErrMalformedTree indicates a tree whose node links do not form a rooted binary dendrogram.
	ErrMalformedTree = errors.New("agglom: malformed tree")

	// ErrNotBinary indicates a Newick tree with a node of degree other than 0 or 2.
	ErrNotBinary = errors.New("agglom: newick tree is not binary")
)

// NoNode marks an absent parent or child.
const NoNode = -1

// Node is one vertex of the dendrogram.
//
// Leaves carry ids 0..n-1 (matching matrix indices); internal nodes are
// numbered n..2n-2 in creation order, so every parent id exceeds its
// children's ids and the root has the largest id.
type Node struct {
	ID     int     `json:"id" msgpack:"id"`
	Parent int     `json:"parent" msgpack:"parent"`
	Left   int     `json:"left" msgpack:"left"`
	Right  int     `json:"right" msgpack:"right"`
	Branch float64 `json:"branch" msgpack:"branch"` // edge length up to Parent (0 for the root)
	Depth  float64 `json:"depth" msgpack:"depth"`   // path length from the root
	Height float64 `json:"height" msgpack:"height"` // longest path down to a leaf
	Size   int     `json:"size" msgpack:"size"`     // number of leaves below
	Label  string  `json:"label,omitempty" msgpack:"label,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (n Node) IsLeaf() bool { return n.Left == NoNode && n.Right == NoNode }

// Merge records one join performed by the driver.
//
// Fields:
//   - Step        — 0-based join index; the root join is the last step.
//   - Node        — id of the created node.
//   - Left, Right — ids of the joined children.
//   - Distance    — working distance d[i][j] between the joined clusters.
//   - BranchLeft, BranchRight — edge lengths assigned to the children.
//   - Size        — leaves under the new node.
type Merge struct {
	Step        int     `json:"step" msgpack:"step"`
	Node        int     `json:"node" msgpack:"node"`
	Left        int     `json:"left" msgpack:"left"`
	Right       int     `json:"right" msgpack:"right"`
	Distance    float64 `json:"distance" msgpack:"distance"`
	BranchLeft  float64 `json:"branch_left" msgpack:"branch_left"`
	BranchRight float64 `json:"branch_right" msgpack:"branch_right"`
	Size        int     `json:"size" msgpack:"size"`
}

// Observer is notified once per merge, in order, from the building goroutine.
type Observer func(m Merge)

// Tree is a rooted binary dendrogram over n leaves (2n−1 nodes).
type Tree struct {
	Linkage string  `json:"linkage" msgpack:"linkage"`
	Leaves  int     `json:"leaves" msgpack:"leaves"`
	Root    int     `json:"root" msgpack:"root"`
	Nodes   []Node  `json:"nodes" msgpack:"nodes"`
	Merges  []Merge `json:"merges" msgpack:"merges"`
}
