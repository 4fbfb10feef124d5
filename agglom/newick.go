package agglom

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultNewickPrecision is the number of decimals Newick() prints.
const DefaultNewickPrecision = 5

// newickSpecial lists characters that force a label to be quoted.
const newickSpecial = "()[]':;, \t\n"

// Newick renders the tree in Newick format with DefaultNewickPrecision decimals.
//
//	((A:1.00000,B:1.00000):1.50000,C:2.50000);
func (t *Tree) Newick() string { return t.NewickPrecision(DefaultNewickPrecision) }

// NewickPrecision renders the tree with prec decimals; prec < 0 selects the
// shortest representation that round-trips.
func (t *Tree) NewickPrecision(prec int) string {
	if len(t.Nodes) == 0 {
		return ";"
	}
	var sb strings.Builder
	t.writeNewick(&sb, t.Root, prec)
	sb.WriteByte(';')

	return sb.String()
}

// writeNewick emits the subtree at id. Recursion depth is the tree depth.
func (t *Tree) writeNewick(sb *strings.Builder, id, prec int) {
	nd := t.Nodes[id]
	if nd.IsLeaf() {
		sb.WriteString(quoteLabel(t.Name(id)))
	} else {
		sb.WriteByte('(')
		t.writeNewick(sb, nd.Left, prec)
		sb.WriteByte(',')
		t.writeNewick(sb, nd.Right, prec)
		sb.WriteByte(')')
	}
	if nd.Parent != NoNode {
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatFloat(nd.Branch, 'f', prec, 64))
	}
}

// quoteLabel single-quotes labels containing Newick metacharacters.
func quoteLabel(s string) string {
	if !strings.ContainsAny(s, newickSpecial) {
		return s
	}

	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// ParseNewick reads a rooted binary Newick tree. Leaves get ids 0..n-1 in
// order of appearance and keep their labels; internal nodes are numbered in
// post-order, so the parent-after-children invariant holds. Missing branch
// lengths read as 0. Merges are reconstructed in post-order with
// Distance = 2·Height of the joined node.
//
// Errors: ErrNewickSyntax, ErrNotBinary, ErrBadLabels (duplicate leaf names).
func ParseNewick(s string) (*Tree, error) {
	p := &newickParser{src: strings.TrimSpace(s)}
	root, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != ';' {
		return nil, p.errorf("expected ';'")
	}
	p.pos++
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("trailing data")
	}

	// Count leaves first so leaf ids come before internal ids.
	n := root.countLeaves()
	labels := make([]string, 0, n)
	root.collectLabels(&labels)
	if err = validateLabels(labels, n); err != nil {
		return nil, err
	}

	t := newTree("", n, labels)
	nextLeaf, nextInner := 0, n
	t.Root = root.assign(t, &nextLeaf, &nextInner)
	t.finalize()

	return t, nil
}

// pnode is the parse-time tree.
type pnode struct {
	label    string
	branch   float64
	children []*pnode
}

func (n *pnode) countLeaves() int {
	if len(n.children) == 0 {
		return 1
	}
	var c int
	for _, ch := range n.children {
		c += ch.countLeaves()
	}

	return c
}

func (n *pnode) collectLabels(out *[]string) {
	if len(n.children) == 0 {
		*out = append(*out, n.label)
		return
	}
	for _, ch := range n.children {
		ch.collectLabels(out)
	}
}

// assign numbers nodes (leaves in appearance order, internals post-order),
// fills t.Nodes and appends Merges.
func (n *pnode) assign(t *Tree, nextLeaf, nextInner *int) int {
	if len(n.children) == 0 {
		id := *nextLeaf
		*nextLeaf++
		t.Nodes[id].Branch = n.branch

		return id
	}
	l := n.children[0].assign(t, nextLeaf, nextInner)
	r := n.children[1].assign(t, nextLeaf, nextInner)
	id := *nextInner
	*nextInner++
	left, right := &t.Nodes[l], &t.Nodes[r]
	left.Parent, right.Parent = id, id
	t.Nodes[id] = Node{
		ID:     id,
		Parent: NoNode,
		Left:   l,
		Right:  r,
		Branch: n.branch,
		Size:   left.Size + right.Size,
		Height: max(left.Height+left.Branch, right.Height+right.Branch),
	}
	t.Merges = append(t.Merges, Merge{
		Step:        len(t.Merges),
		Node:        id,
		Left:        l,
		Right:       r,
		Distance:    2 * t.Nodes[id].Height,
		BranchLeft:  left.Branch,
		BranchRight: right.Branch,
		Size:        t.Nodes[id].Size,
	})

	return id
}

type newickParser struct {
	src string
	pos int
}

func (p *newickParser) errorf(format string, args ...any) error {
	return fmt.Errorf("offset %d: %s: %w", p.pos, fmt.Sprintf(format, args...), ErrNewickSyntax)
}

func (p *newickParser) skipSpace() {
	for p.pos < len(p.src) && strings.IndexByte(" \t\r\n", p.src[p.pos]) >= 0 {
		p.pos++
	}
}

// parseNode reads: ( node , node ) label? (:length)?  |  label (:length)?
func (p *newickParser) parseNode() (*pnode, error) {
	p.skipSpace()
	nd := &pnode{}
	if p.pos < len(p.src) && p.src[p.pos] == '(' {
		p.pos++
		for {
			ch, err := p.parseNode()
			if err != nil {
				return nil, err
			}
			nd.children = append(nd.children, ch)
			p.skipSpace()
			if p.pos >= len(p.src) {
				return nil, p.errorf("unterminated group")
			}
			if p.src[p.pos] == ',' {
				p.pos++
				continue
			}
			if p.src[p.pos] == ')' {
				p.pos++
				break
			}
			return nil, p.errorf("unexpected %q", p.src[p.pos])
		}
		if len(nd.children) != 2 {
			return nil, fmt.Errorf("offset %d: %d children: %w", p.pos, len(nd.children), ErrNotBinary)
		}
	}

	label, err := p.parseLabel()
	if err != nil {
		return nil, err
	}
	nd.label = label
	if len(nd.children) == 0 && label == "" {
		return nil, p.errorf("leaf without label")
	}

	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == ':' {
		p.pos++
		p.skipSpace()
		start := p.pos
		for p.pos < len(p.src) && strings.IndexByte("0123456789+-.eE", p.src[p.pos]) >= 0 {
			p.pos++
		}
		if nd.branch, err = strconv.ParseFloat(p.src[start:p.pos], 64); err != nil {
			return nil, p.errorf("bad branch length %q", p.src[start:p.pos])
		}
	}

	return nd, nil
}

// parseLabel reads a quoted or bare label; it may be empty.
func (p *newickParser) parseLabel() (string, error) {
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '\'' {
		p.pos++
		var sb strings.Builder
		for {
			if p.pos >= len(p.src) {
				return "", p.errorf("unterminated quoted label")
			}
			c := p.src[p.pos]
			p.pos++
			if c == '\'' {
				if p.pos < len(p.src) && p.src[p.pos] == '\'' {
					sb.WriteByte('\'')
					p.pos++
					continue
				}
				return sb.String(), nil
			}
			sb.WriteByte(c)
		}
	}
	start := p.pos
	for p.pos < len(p.src) && !strings.ContainsRune(newickSpecial, rune(p.src[p.pos])) {
		p.pos++
	}

	return p.src[start:p.pos], nil
}
