package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/agglom/matrix"
)

const tagPhylip = "phylip"

// ReadPhylip decodes a PHYLIP distance matrix.
//
// Layout:
//
//	5
//	a   0 17 21 31 23
//	b  17  0 30 34 21
//	...
//
// Row i may instead carry only its i lower-triangular values; the matrix is
// mirrored. Blank lines are ignored. Labels must be unique (checked later by
// agglom.Build); values must parse as floats.
//
// Complexity: O(n²).
func ReadPhylip(r io.Reader) (*Input, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var (
		line int
		n    = -1
		rows [][]float64
		lbls []string
	)
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if n < 0 {
			v, err := strconv.Atoi(fields[0])
			if err != nil || v <= 0 {
				return nil, malformedf(tagPhylip, line, "bad taxon count %q", fields[0])
			}
			n = v
			rows = make([][]float64, 0, n)
			lbls = make([]string, 0, n)
			continue
		}
		i := len(rows)
		if i >= n {
			return nil, malformedf(tagPhylip, line, "more than %d rows", n)
		}
		vals := fields[1:]
		if len(vals) != n && len(vals) != i {
			return nil, malformedf(tagPhylip, line, "row %d has %d values, want %d or %d", i, len(vals), n, i)
		}
		row := make([]float64, n)
		for j, s := range vals {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, malformedf(tagPhylip, line, "bad value %q", s)
			}
			row[j] = v
		}
		rows = append(rows, row)
		lbls = append(lbls, fields[0])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", tagPhylip, err)
	}
	if n < 0 {
		return nil, malformedf(tagPhylip, line, "empty input")
	}
	if len(rows) != n {
		return nil, malformedf(tagPhylip, line, "got %d rows, want %d", len(rows), n)
	}

	// Mirror lower-triangular input: a row shorter than n left zeros above the diagonal.
	if isLowerTriangular(rows) {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				rows[i][j] = rows[j][i]
			}
		}
	}

	m, err := matrix.NewDenseFrom(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tagPhylip, err)
	}

	return &Input{Labels: lbls, Matrix: m}, nil
}

// isLowerTriangular reports whether every entry above the diagonal is zero.
func isLowerTriangular(rows [][]float64) bool {
	for i := range rows {
		for j := i + 1; j < len(rows[i]); j++ {
			if rows[i][j] != 0 {
				return false
			}
		}
	}

	return true
}

// WritePhylip encodes m in square PHYLIP layout. Missing labels become
// "t<index>".
func WritePhylip(w io.Writer, labels []string, m matrix.Matrix) error {
	if err := matrix.ValidateSquare(m); err != nil {
		return fmt.Errorf("%s: %w", tagPhylip, err)
	}
	n := m.Rows()
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", n)
	for i := 0; i < n; i++ {
		name := "t" + strconv.Itoa(i)
		if i < len(labels) && labels[i] != "" {
			name = labels[i]
		}
		bw.WriteString(name)
		for j := 0; j < n; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return fmt.Errorf("%s: %w", tagPhylip, err)
			}
			bw.WriteByte(' ')
			bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}
