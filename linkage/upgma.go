package linkage

// NameUPGMA identifies the UPGMA formula set.
const NameUPGMA = "upgma"

// UPGMA returns the unweighted pair-group method with arithmetic mean.
//
//	Select(d,i,j)            = d[i][j]
//	Branch(d,i,j)            = d[i][j] / 2
//	Update(d,k,i,j,ni,nj)    = (ni·d[i][k] + nj·d[j][k]) / (ni+nj)
//	RootSplit(d,i,j,ni,nj)   = (d[i][j]/2, d[i][j]/2)
//	Premin                   = no-op
//
// The merged distance is the population-weighted mean, so every original
// element counts once regardless of merge order. Sizes are positive by
// driver contract; ni+nj is not guarded.
func UPGMA() Linkage {
	return Linkage{
		Name:        NameUPGMA,
		Premin:      NoPremin,
		Select:      UPGMASelect,
		Branch:      UPGMABranch,
		Update:      UPGMAUpdate,
		RootSplit:   UPGMARootSplit,
		Ultrametric: true,
	}
}

// UPGMASelect returns d[i][j] unchanged.
func UPGMASelect(d Distances, aux []float64, i, j int) float64 {
	return rawSelect(d, aux, i, j)
}

// UPGMABranch returns half the distance between i and j.
func UPGMABranch(d Distances, aux []float64, i, j int) float64 {
	return halfBranch(d, aux, i, j)
}

// UPGMAUpdate returns the size-weighted mean of d[i][k] and d[j][k].
func UPGMAUpdate(d Distances, k, i, j, sizeI, sizeJ int) float64 {
	ni, nj := float64(sizeI), float64(sizeJ)

	return (ni*d.Dist(i, k) + nj*d.Dist(j, k)) / (ni + nj)
}

// UPGMARootSplit gives both root children half of d[i][j].
func UPGMARootSplit(d Distances, i, j, sizeI, sizeJ int) (float64, float64) {
	return halfRootSplit(d, i, j, sizeI, sizeJ)
}
