package linkage

// NameNeighborJoining identifies the neighbor-joining formula set.
const NameNeighborJoining = "nj"

// rootSplitTiny keeps the NJ root split finite when both clusters are singletons.
const rootSplitTiny = 1e-15

// NeighborJoining returns the Saitou–Nei neighbor-joining formula set.
//
// Per round, with m active clusters:
//
//	Premin:  aux[i] = Σ_k d[i][k] / (m−2)          (net divergence, 0 if m ≤ 2)
//	Select:  d[i][j] − aux[i] − aux[j]
//	Branch:  (d[i][j] + aux[i] − aux[j]) / 2
//	Update:  (d[i][k] + d[j][k] − d[i][j]) / 2
//	RootSplit: d[i][j] shared in proportion (nj−1) : (ni−1)
//
// NJ trees are additive, not ultrametric; branch lengths may come out
// negative on noisy data.
func NeighborJoining() Linkage {
	return Linkage{
		Name:        NameNeighborJoining,
		Premin:      njPremin,
		Select:      njSelect,
		Branch:      njBranch,
		Update:      njUpdate,
		RootSplit:   njRootSplit,
		Ultrametric: false,
	}
}

func njPremin(d Distances, active []int, aux []float64) {
	m := len(active)
	if m <= 2 {
		for _, i := range active {
			aux[i] = 0
		}
		return
	}
	denom := float64(m - 2)
	for _, i := range active {
		var sum float64
		for _, k := range active {
			if k != i {
				sum += d.Dist(i, k)
			}
		}
		aux[i] = sum / denom
	}
}

func njSelect(d Distances, aux []float64, i, j int) float64 {
	return d.Dist(i, j) - aux[i] - aux[j]
}

func njBranch(d Distances, aux []float64, i, j int) float64 {
	return 0.5 * (d.Dist(i, j) + aux[i] - aux[j])
}

func njUpdate(d Distances, k, i, j, _, _ int) float64 {
	return 0.5 * (d.Dist(i, k) + d.Dist(j, k) - d.Dist(i, j))
}

func njRootSplit(d Distances, i, j, sizeI, sizeJ int) (float64, float64) {
	dij := d.Dist(i, j)
	den := float64(sizeI+sizeJ-2) + 2*rootSplitTiny

	return dij * (float64(sizeJ-1) + rootSplitTiny) / den,
		dij * (float64(sizeI-1) + rootSplitTiny) / den
}
