package codec_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/agglom/agglom"
	"github.com/katalvlaran/agglom/codec"
	"github.com/katalvlaran/agglom/matrix"
)

func buildTree(t *testing.T) *agglom.Tree {
	t.Helper()
	m, err := matrix.NewDenseFrom(want3)
	require.NoError(t, err)
	tr, err := agglom.UPGMA(m, agglom.WithLabels([]string{"A", "B", "C"}))
	require.NoError(t, err)

	return tr
}

func TestWriteNewick(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, codec.WriteNewick(&sb, buildTree(t), 1))
	assert.Equal(t, "((A:1.0,B:1.0):1.5,C:2.5);\n", sb.String())

	require.ErrorIs(t, codec.WriteNewick(&sb, nil, 1), codec.ErrNilTree)
}

func TestTreeRoundTrip(t *testing.T) {
	orig := buildTree(t)
	for _, f := range []codec.Format{codec.FormatMsgpack, codec.FormatJSON} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, codec.Write(&buf, orig, f, -1))

			got, err := codec.ReadTree(&buf, f)
			require.NoError(t, err)
			assert.Equal(t, orig.Nodes, got.Nodes)
			assert.Equal(t, orig.Merges, got.Merges)
			assert.Equal(t, orig.Newick(), got.Newick())
		})
	}
}

func TestReadTree_Newick(t *testing.T) {
	got, err := codec.ReadTree(strings.NewReader("((A:1,B:1):1.5,C:2.5);\n"), codec.FormatNewick)
	require.NoError(t, err)
	assert.Equal(t, buildTree(t).Newick(), got.Newick())
}

func TestReadTree_Malformed(t *testing.T) {
	_, err := codec.ReadMsgpack(bytes.NewReader([]byte{0xc1}))
	require.ErrorIs(t, err, codec.ErrMalformed)

	_, err = codec.ReadTreeJSON(strings.NewReader(`{"leaves":3,"root":0,"nodes":[]}`))
	require.ErrorIs(t, err, codec.ErrMalformed)

	// Two leaves, root child out of range.
	_, err = codec.ReadTreeJSON(strings.NewReader(`{"linkage":"upgma","leaves":2,"root":2,"nodes":[
		{"id":0,"parent":2,"left":-1,"right":-1,"size":1},
		{"id":1,"parent":2,"left":-1,"right":-1,"size":1},
		{"id":2,"parent":-1,"left":0,"right":99,"size":2}]}`))
	require.ErrorIs(t, err, codec.ErrMalformed)
	require.ErrorIs(t, err, agglom.ErrMalformedTree)

	_, err = codec.ReadTree(strings.NewReader(""), codec.FormatCSV)
	require.ErrorIs(t, err, codec.ErrUnknownFormat)
	require.ErrorIs(t, codec.Write(&bytes.Buffer{}, buildTree(t), codec.FormatYAML, 0), codec.ErrUnknownFormat)
}
