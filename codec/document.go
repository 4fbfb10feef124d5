package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/agglom/matrix"
)

// Document is the structured (JSON / YAML) matrix input.
//
// Exactly one of Distances, Upper or Points must be set:
//
//	labels: [a, b, c]
//	distances: [[0, 2, 4], [2, 0, 6], [4, 6, 0]]
//
//	labels: [a, b, c]
//	upper: [2, 4, 6]            # d01 d02 d12
//
//	labels: [a, b, c]
//	points: [[0, 0], [3, 4], [6, 8]]
//	metric: manhattan           # euclidean (default) | manhattan | chebyshev
type Document struct {
	Labels    []string    `json:"labels,omitempty" yaml:"labels,omitempty"`
	Distances [][]float64 `json:"distances,omitempty" yaml:"distances,omitempty"`
	Upper     []float64   `json:"upper,omitempty" yaml:"upper,omitempty"`
	Points    [][]float64 `json:"points,omitempty" yaml:"points,omitempty"`
	Metric    string      `json:"metric,omitempty" yaml:"metric,omitempty"`
}

// Input materialises the document into a distance matrix.
//
// Errors: ErrMalformed when zero or several payloads are set, when an upper
// triangle has no valid n, or when labels disagree with n; matrix errors
// (ErrDimensionMismatch, ErrNaNInf, ErrUnknownMetric) are wrapped.
func (doc Document) Input() (*Input, error) {
	set := 0
	for _, ok := range []bool{len(doc.Distances) > 0, len(doc.Upper) > 0, len(doc.Points) > 0} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("document: want exactly one of distances, upper, points (got %d): %w", set, ErrMalformed)
	}

	var (
		m   *matrix.Dense
		err error
	)
	switch {
	case len(doc.Distances) > 0:
		m, err = matrix.NewDenseFrom(doc.Distances)
	case len(doc.Upper) > 0:
		n := len(doc.Labels)
		if n == 0 {
			n = triangleSide(len(doc.Upper))
		}
		if n <= 0 {
			return nil, fmt.Errorf("document: %d upper values is not n(n-1)/2: %w", len(doc.Upper), ErrMalformed)
		}
		m, err = matrix.NewSymmetric(n, doc.Upper)
	default:
		var metric matrix.Metric
		if metric, err = matrix.MetricByName(doc.Metric); err != nil {
			return nil, fmt.Errorf("document: %w", err)
		}
		m, err = matrix.Pairwise(doc.Points, metric)
	}
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}

	if len(doc.Labels) > 0 && len(doc.Labels) != m.Rows() {
		return nil, fmt.Errorf("document: %d labels for %d taxa: %w", len(doc.Labels), m.Rows(), ErrMalformed)
	}

	return &Input{Labels: doc.Labels, Matrix: m}, nil
}

// triangleSide returns n with n(n-1)/2 == k, or -1.
func triangleSide(k int) int {
	n := int(math.Round((1 + math.Sqrt(1+8*float64(k))) / 2))
	if n*(n-1)/2 != k || n < 2 {
		return -1
	}

	return n
}

// ReadJSON decodes a JSON Document. Unknown fields are rejected.
func ReadJSON(r io.Reader) (*Input, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("json: %w: %w", ErrMalformed, err)
	}

	return doc.Input()
}

// ReadYAML decodes a YAML Document. Unknown fields are rejected.
func ReadYAML(r io.Reader) (*Input, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("yaml: %w: %w", ErrMalformed, err)
	}

	return doc.Input()
}

// Read decodes a matrix in the named format.
func Read(r io.Reader, format Format) (*Input, error) {
	switch format {
	case FormatPhylip:
		return ReadPhylip(r)
	case FormatCSV:
		return ReadCSV(r)
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	default:
		return nil, fmt.Errorf("read %q: %w", format, ErrUnknownFormat)
	}
}

// ReadBytes is Read over an in-memory buffer.
func ReadBytes(b []byte, format Format) (*Input, error) {
	return Read(bytes.NewReader(b), format)
}
