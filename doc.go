// Package agglom is a toolkit for agglomerative (bottom-up) hierarchical
// clustering and distance-based phylogeny: give it an n×n distance matrix,
// get back a rooted binary tree.
//
// 🚀 What is in the box?
//
//	• Linkage formula sets: UPGMA, WPGMA, single, complete, neighbor joining
//	• One generic driver that runs any formula set (bring your own, too)
//	• Trees with heights, depths, cophenetic matrices, cuts and Newick I/O
//	• Readers for PHYLIP, CSV, JSON and YAML matrices
//	• A fingerprint-keyed tree cache on badger, and the agglom CLI
//
// ✨ Why agglom?
//
//   - Deterministic – first-minimum tie-breaking, stable node numbering
//   - Honest errors – sentinel errors everywhere, no panics on user input
//   - Pluggable – a Linkage is just five functions
//
// Layout:
//
//	linkage/  — formula sets (Premin, Select, Branch, Update, RootSplit)
//	matrix/   — Dense storage, distance validators, pairwise metrics
//	agglom/   — the driver (Build) and the Tree it returns
//	codec/    — matrix readers, tree writers
//	store/    — tree cache keyed by an input fingerprint
//	cmd/agglom — command-line front end
//
// Quick ASCII example (UPGMA over AB=2, AC=4, BC=6):
//
//	        ┌── A   1.0
//	   ┌────┤
//	   │    └── B   1.0
//	───┤ 1.5
//	   └─────────── C   2.5
//
//	go get github.com/katalvlaran/agglom/agglom
package agglom
