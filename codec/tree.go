package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/katalvlaran/agglom/agglom"
)

// ErrNilTree indicates a nil tree passed to a writer.
var ErrNilTree = errors.New("codec: nil tree")

// WriteNewick writes t.NewickPrecision(prec) followed by a newline.
func WriteNewick(w io.Writer, t *agglom.Tree, prec int) error {
	if t == nil {
		return ErrNilTree
	}
	_, err := io.WriteString(w, t.NewickPrecision(prec)+"\n")

	return err
}

// WriteJSON writes the tree as indented JSON.
func WriteJSON(w io.Writer, t *agglom.Tree) error {
	if t == nil {
		return ErrNilTree
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(t)
}

// WriteMsgpack writes the tree as a msgpack snapshot.
func WriteMsgpack(w io.Writer, t *agglom.Tree) error {
	if t == nil {
		return ErrNilTree
	}

	return msgpack.NewEncoder(w).Encode(t)
}

// ReadMsgpack restores a tree written by WriteMsgpack.
func ReadMsgpack(r io.Reader) (*agglom.Tree, error) {
	var t agglom.Tree
	if err := msgpack.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("msgpack: %w: %w", ErrMalformed, err)
	}
	if err := checkTree(&t); err != nil {
		return nil, err
	}

	return &t, nil
}

// ReadTreeJSON restores a tree written by WriteJSON.
func ReadTreeJSON(r io.Reader) (*agglom.Tree, error) {
	var t agglom.Tree
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("json: %w: %w", ErrMalformed, err)
	}
	if err := checkTree(&t); err != nil {
		return nil, err
	}

	return &t, nil
}

// checkTree rejects snapshots whose links cannot be a binary dendrogram.
func checkTree(t *agglom.Tree) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("tree: %w: %w", ErrMalformed, err)
	}

	return nil
}

// Write encodes t in the named tree format. prec applies to Newick only.
func Write(w io.Writer, t *agglom.Tree, format Format, prec int) error {
	switch format {
	case FormatNewick:
		return WriteNewick(w, t, prec)
	case FormatJSON:
		return WriteJSON(w, t)
	case FormatMsgpack:
		return WriteMsgpack(w, t)
	default:
		return fmt.Errorf("write %q: %w", format, ErrUnknownFormat)
	}
}

// ReadTree decodes a tree in the named format.
func ReadTree(r io.Reader, format Format) (*agglom.Tree, error) {
	switch format {
	case FormatNewick:
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}

		return agglom.ParseNewick(string(b))
	case FormatJSON:
		return ReadTreeJSON(r)
	case FormatMsgpack:
		return ReadMsgpack(r)
	default:
		return nil, fmt.Errorf("read tree %q: %w", format, ErrUnknownFormat)
	}
}
