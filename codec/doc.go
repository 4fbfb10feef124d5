// Package codec reads distance matrices and writes (or reads back) trees.
//
// Matrix inputs (Read, ReadPhylip, ReadCSV, ReadJSON, ReadYAML):
//
//	phylip — first line n, then one row per taxon: "label d1 d2 ... dn".
//	         Lower-triangular rows ("label d1 .. d(i-1)") are accepted and mirrored.
//	csv    — square numeric grid; an optional header row and/or a leading
//	         label column name the taxa.
//	json / yaml — a Document: labels plus exactly one of
//	         distances (n×n), upper (packed strict upper triangle) or
//	         points (+ metric) from which distances are computed.
//
// Tree outputs (Write, WriteNewick, WriteJSON, WriteMsgpack):
//
//	newick  — agglom.Tree.Newick() plus a trailing newline.
//	json    — the Tree struct (nodes and merges).
//	msgpack — compact binary snapshot; ReadMsgpack restores it.
//
// Readers never validate distance semantics beyond what the matrix
// constructors enforce (finite values, shape); agglom.Build does the rest.
package codec
