package store

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/katalvlaran/agglom/agglom"
)

func TestDecode_RejectsMalformedTree(t *testing.T) {
	// Two leaves whose root points past the node table.
	bad := agglom.Tree{
		Linkage: "upgma",
		Leaves:  2,
		Root:    2,
		Nodes: []agglom.Node{
			{ID: 0, Parent: 2, Left: agglom.NoNode, Right: agglom.NoNode, Size: 1},
			{ID: 1, Parent: 2, Left: agglom.NoNode, Right: agglom.NoNode, Size: 1},
			{ID: 2, Parent: agglom.NoNode, Left: 0, Right: 99, Size: 2},
		},
	}
	b, err := msgpack.Marshal(&bad)
	require.NoError(t, err)

	_, err = decode(b)
	require.ErrorIs(t, err, agglom.ErrMalformedTree)

	bad.Nodes[2].Right = 1
	b, err = msgpack.Marshal(&bad)
	require.NoError(t, err)
	got, err := decode(b)
	require.NoError(t, err)
	require.Equal(t, 2, got.Nodes[got.Root].Size)
}
