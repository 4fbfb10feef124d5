// Package linkage defines the formula sets that parameterize distance-matrix
// agglomeration (UPGMA, WPGMA, single, complete, neighbor joining).
//
// 🚀 What is a linkage?
//
//	An agglomerative driver repeatedly picks the "closest" pair of active
//	clusters, joins them under a new node and rewrites the distances from
//	every other cluster to the merged one. The linkage decides:
//	  • which pair is closest          (Select)
//	  • how long the two new branches are (Branch)
//	  • the merged-cluster distances   (Update)
//	  • how the last pair splits the root (RootSplit)
//	  • an optional per-round adjustment before the search (Premin)
//
// ✨ Design:
//   - A Linkage is a plain struct of function values, not an interface
//     hierarchy: pass it by value, swap one field to experiment.
//   - Formulas are pure and total: no validation, no allocation, no state.
//     The driver owns the working matrix and the aux vector; formulas only read.
//   - RootSplit returns both branch lengths instead of writing through pointers.
//
// ⚙️ Usage:
//
//	d := linkage.Square{{0, 2, 4}, {2, 0, 6}, {4, 6, 0}}
//	up := linkage.UPGMA()
//	up.Update(d, 2, 0, 1, 1, 1) // 5.0
//
// The driver lives in package agglom.
package linkage
