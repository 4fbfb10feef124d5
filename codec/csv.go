package codec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/agglom/matrix"
)

const tagCSV = "csv"

// ReadCSV decodes a square numeric grid.
//
// A first record containing any non-numeric cell is a header; its cells name
// the taxa. A header one cell wider than the matrix starts with a corner cell
// above the row-label column, which is dropped when it is empty or the rows
// are labelled ("taxon,a,b,c"). A data row whose first
// cell is non-numeric carries its own label; row labels are used only when
// there is no header. Surrounding whitespace in cells is ignored.
//
// Complexity: O(n²).
func ReadCSV(r io.Reader) (*Input, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var (
		header  []string
		rowLbls []string
		rows    [][]float64
		line    int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %w", tagCSV, ErrMalformed, err)
		}
		line++
		if line == 1 && !allNumeric(rec) && !numericTail(rec) {
			header = trimCells(rec)
			continue
		}

		cells := trimCells(rec)
		label := ""
		if len(cells) > 0 {
			if _, perr := strconv.ParseFloat(cells[0], 64); perr != nil {
				label, cells = cells[0], cells[1:]
			}
		}
		row := make([]float64, len(cells))
		for j, s := range cells {
			v, perr := strconv.ParseFloat(s, 64)
			if perr != nil {
				return nil, malformedf(tagCSV, line, "bad value %q", s)
			}
			row[j] = v
		}
		rows = append(rows, row)
		rowLbls = append(rowLbls, label)
	}
	if len(rows) == 0 {
		return nil, malformedf(tagCSV, line, "no data rows")
	}

	m, err := matrix.NewDenseFrom(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tagCSV, err)
	}
	if err = matrix.ValidateSquare(m); err != nil {
		return nil, fmt.Errorf("%s: %w", tagCSV, err)
	}

	in := &Input{Matrix: m}
	switch {
	case header != nil:
		if len(header) == m.Rows()+1 && (header[0] == "" || anyNonEmpty(rowLbls)) {
			header = header[1:]
		}
		if len(header) != m.Rows() {
			return nil, malformedf(tagCSV, 1, "header has %d labels, want %d", len(header), m.Rows())
		}
		in.Labels = header
	case anyNonEmpty(rowLbls):
		in.Labels = rowLbls
	}

	return in, nil
}

// numericTail reports whether rec is "label, v1, v2, ..." with numeric values,
// i.e. a labelled data row rather than a header.
func numericTail(rec []string) bool {
	return len(rec) > 1 && allNumeric(rec[1:]) && strings.TrimSpace(rec[0]) != ""
}

func allNumeric(rec []string) bool {
	for _, s := range rec {
		if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return false
		}
	}

	return true
}

func trimCells(rec []string) []string {
	out := make([]string, len(rec))
	for i, s := range rec {
		out[i] = strings.TrimSpace(s)
	}

	return out
}

func anyNonEmpty(ss []string) bool {
	for _, s := range ss {
		if s != "" {
			return true
		}
	}

	return false
}

// WriteCSV encodes m as a CSV grid with a header row when labels are given.
func WriteCSV(w io.Writer, labels []string, m matrix.Matrix) error {
	rows, err := matrix.ToSlices(m)
	if err != nil {
		return fmt.Errorf("%s: %w", tagCSV, err)
	}
	if len(labels) > 0 && len(labels) != len(rows) {
		return fmt.Errorf("%s: %d labels for %d rows: %w", tagCSV, len(labels), len(rows), matrix.ErrDimensionMismatch)
	}
	cw := csv.NewWriter(w)
	if len(labels) > 0 {
		if err = cw.Write(append([]string{""}, labels...)); err != nil {
			return err
		}
	}
	rec := make([]string, 0, m.Cols()+1)
	for i, row := range rows {
		rec = rec[:0]
		if len(labels) > 0 {
			rec = append(rec, labels[i])
		}
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err = cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}
