// Package agglom builds phylogenetic trees (dendrograms) from distance
// matrices by generic nearest-pair agglomeration.
//
// 🚀 What does it do?
//
//	Start with n singleton clusters and an n×n distance matrix. Repeatedly:
//	  1. let the linkage adjust its per-round scratch (Premin),
//	  2. pick the active pair (i, j) with the minimum Select score,
//	  3. join them under a new node with lengths from Branch,
//	  4. rewrite d[i][k] for every other active k with Update,
//	  5. retire j; i now stands for the merged cluster.
//	When two clusters remain, RootSplit sizes the two root branches.
//
// ✨ Key features:
//   - any linkage.Linkage plugs in: UPGMA, WPGMA, single, complete, NJ
//   - deterministic tie-breaking (first pair in ascending slot order wins)
//   - outgroup forcing: one leaf is held back and joined at the root
//   - Tree queries: common ancestor, patristic path length, cophenetic
//     matrix, leaf order, flat cuts by count or height
//   - Newick export and parsing
//   - Observer hook, called once per merge, for logging and metrics
//
// ⚙️ Usage:
//
//	d, _ := matrix.NewSymmetric(3, []float64{2, 4, 6})
//	t, err := agglom.UPGMA(d, agglom.WithLabels([]string{"A", "B", "C"}))
//	if err != nil {
//	  // handle matrix.ErrAsymmetry, agglom.ErrBadLabels, ...
//	}
//	fmt.Println(t.Newick()) // ((A:1.00000,B:1.00000):1.50000,C:2.50000);
//
// Ultrametric vs additive linkages:
//
//	For ultrametric linkages (UPGMA & co.) Branch(i,j) is the height of the
//	new node above the leaves; the driver subtracts the child's own height
//	to obtain the edge length. For additive linkages (NJ) Branch is the edge
//	length itself.
//
// Complexity:
//
//	Time   = O(n³) (n−2 rounds, each an O(m²) pair scan)
//	Memory = O(n²) working copy; the input matrix is never mutated.
package agglom
