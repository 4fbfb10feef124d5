package codec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/agglom/codec"
	"github.com/katalvlaran/agglom/matrix"
)

// want3 is the reference 3-taxon matrix used across readers.
var want3 = [][]float64{
	{0, 2, 4},
	{2, 0, 6},
	{4, 6, 0},
}

func assertMatrix(t *testing.T, want [][]float64, m *matrix.Dense) {
	t.Helper()
	require.NotNil(t, m)
	assert.Equal(t, want, m.ToSlices())
}

func TestReadPhylip_Square(t *testing.T) {
	src := `3
A 0 2 4

B 2 0 6
C 4 6 0
`
	in, err := codec.ReadPhylip(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, in.Labels)
	assertMatrix(t, want3, in.Matrix)
}

func TestReadPhylip_LowerTriangular(t *testing.T) {
	src := "  3\nA\nB 2\nC 4 6\n"
	in, err := codec.ReadPhylip(strings.NewReader(src))
	require.NoError(t, err)
	assertMatrix(t, want3, in.Matrix)
}

func TestReadPhylip_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":       "",
		"bad count":   "x\nA 0\n",
		"zero count":  "0\n",
		"short row":   "3\nA 0 2\n",
		"bad value":   "2\nA 0 x\nB 1 0\n",
		"extra row":   "1\nA 0\nB 0\n",
		"missing row": "2\nA 0 1\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := codec.ReadPhylip(strings.NewReader(src))
			require.ErrorIs(t, err, codec.ErrMalformed)
		})
	}
}

func TestWritePhylip_RoundTrip(t *testing.T) {
	m, err := matrix.NewDenseFrom(want3)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, codec.WritePhylip(&sb, []string{"A", "", "C"}, m))
	assert.Equal(t, "3\nA 0 2 4\nt1 2 0 6\nC 4 6 0\n", sb.String())

	in, err := codec.ReadPhylip(strings.NewReader(sb.String()))
	require.NoError(t, err)
	assertMatrix(t, want3, in.Matrix)
}

func TestReadCSV_Header(t *testing.T) {
	src := ",A,B,C\nA,0,2,4\nB,2,0,6\nC,4,6,0\n"
	in, err := codec.ReadCSV(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, in.Labels)
	assertMatrix(t, want3, in.Matrix)
}

func TestReadCSV_NamedCorner(t *testing.T) {
	src := "taxon,A,B,C\nA,0,2,4\nB,2,0,6\nC,4,6,0\n"
	in, err := codec.ReadCSV(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, in.Labels)
	assertMatrix(t, want3, in.Matrix)
}

func TestReadCSV_HeaderOnlyAndPlain(t *testing.T) {
	in, err := codec.ReadCSV(strings.NewReader("x, y, z\n0,2,4\n2,0,6\n4,6,0\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, in.Labels)
	assertMatrix(t, want3, in.Matrix)

	in, err = codec.ReadCSV(strings.NewReader("# comment\n0,2,4\n2,0,6\n4,6,0\n"))
	require.NoError(t, err)
	assert.Nil(t, in.Labels)
	assertMatrix(t, want3, in.Matrix)
}

func TestReadCSV_RowLabels(t *testing.T) {
	in, err := codec.ReadCSV(strings.NewReader("p,0,2,4\nq,2,0,6\nr,4,6,0\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "q", "r"}, in.Labels)
	assertMatrix(t, want3, in.Matrix)
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := codec.ReadCSV(strings.NewReader(""))
	require.ErrorIs(t, err, codec.ErrMalformed)

	_, err = codec.ReadCSV(strings.NewReader("a,b\n0,1\n1,0\n2,2\n"))
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	_, err = codec.ReadCSV(strings.NewReader("a,b,c\n0,1\n1,0\n"))
	require.ErrorIs(t, err, codec.ErrMalformed)

	_, err = codec.ReadCSV(strings.NewReader("0,1\n1,0,3\n"))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	m, err := matrix.NewDenseFrom(want3)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, codec.WriteCSV(&sb, []string{"A", "B", "C"}, m))
	in, err := codec.ReadCSV(strings.NewReader(sb.String()))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, in.Labels)
	assertMatrix(t, want3, in.Matrix)

	require.ErrorIs(t, codec.WriteCSV(&sb, []string{"A"}, m), matrix.ErrDimensionMismatch)
}

func TestReadJSON_Payloads(t *testing.T) {
	cases := map[string]string{
		"distances": `{"labels":["A","B","C"],"distances":[[0,2,4],[2,0,6],[4,6,0]]}`,
		"upper":     `{"labels":["A","B","C"],"upper":[2,4,6]}`,
		"upper n":   `{"upper":[2,4,6]}`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			in, err := codec.ReadJSON(strings.NewReader(src))
			require.NoError(t, err)
			assertMatrix(t, want3, in.Matrix)
		})
	}
}

func TestReadYAML_Points(t *testing.T) {
	src := `
labels: [p, q, r]
points:
  - [0, 0]
  - [3, 4]
  - [6, 8]
metric: manhattan
`
	in, err := codec.ReadYAML(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "q", "r"}, in.Labels)
	assertMatrix(t, [][]float64{{0, 7, 14}, {7, 0, 7}, {14, 7, 0}}, in.Matrix)
}

func TestReadDocument_Errors(t *testing.T) {
	_, err := codec.ReadJSON(strings.NewReader(`{"labels":["a"]}`))
	require.ErrorIs(t, err, codec.ErrMalformed)

	_, err = codec.ReadJSON(strings.NewReader(`{"upper":[1],"points":[[0],[1]]}`))
	require.ErrorIs(t, err, codec.ErrMalformed)

	_, err = codec.ReadJSON(strings.NewReader(`{"upper":[1,2]}`))
	require.ErrorIs(t, err, codec.ErrMalformed)

	_, err = codec.ReadJSON(strings.NewReader(`{"labels":["a","b","c"],"distances":[[0,1],[1,0]]}`))
	require.ErrorIs(t, err, codec.ErrMalformed)

	_, err = codec.ReadJSON(strings.NewReader(`{"bogus":1}`))
	require.ErrorIs(t, err, codec.ErrMalformed)

	_, err = codec.ReadYAML(strings.NewReader("points: [[0], [1]]\nmetric: cosine\n"))
	require.ErrorIs(t, err, matrix.ErrUnknownMetric)
}

func TestRead_Dispatch(t *testing.T) {
	in, err := codec.ReadBytes([]byte("2\na 0 1\nb 1 0\n"), codec.FormatPhylip)
	require.NoError(t, err)
	assert.Equal(t, 2, in.Matrix.Rows())

	_, err = codec.Read(strings.NewReader(""), codec.FormatNewick)
	require.ErrorIs(t, err, codec.ErrUnknownFormat)
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]codec.Format{
		"x.phy":       codec.FormatPhylip,
		"dir/x.DIST":  codec.FormatPhylip,
		"x.csv":       codec.FormatCSV,
		"x.json":      codec.FormatJSON,
		"x.yml":       codec.FormatYAML,
		"x.nwk":       codec.FormatNewick,
		"out.msgpack": codec.FormatMsgpack,
	}
	for path, want := range cases {
		got, err := codec.FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := codec.FormatFromPath("x.txt")
	require.ErrorIs(t, err, codec.ErrUnknownFormat)
}
