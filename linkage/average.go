package linkage

import "math"

// Names of the averaging and extreme-value linkages.
const (
	NameWPGMA    = "wpgma"
	NameSingle   = "single"
	NameComplete = "complete"
)

// WPGMA returns the weighted pair-group method: like UPGMA, but the merged
// distance is the plain mean of the two parents, ignoring cluster sizes.
//
//	Update(d,k,i,j,·,·) = (d[i][k] + d[j][k]) / 2
func WPGMA() Linkage {
	return Linkage{
		Name:        NameWPGMA,
		Premin:      NoPremin,
		Select:      rawSelect,
		Branch:      halfBranch,
		Update:      wpgmaUpdate,
		RootSplit:   halfRootSplit,
		Ultrametric: true,
	}
}

// Single returns single (nearest-neighbour) linkage.
//
//	Update(d,k,i,j,·,·) = min(d[i][k], d[j][k])
func Single() Linkage {
	return Linkage{
		Name:        NameSingle,
		Premin:      NoPremin,
		Select:      rawSelect,
		Branch:      halfBranch,
		Update:      singleUpdate,
		RootSplit:   halfRootSplit,
		Ultrametric: true,
	}
}

// Complete returns complete (farthest-neighbour) linkage.
//
//	Update(d,k,i,j,·,·) = max(d[i][k], d[j][k])
func Complete() Linkage {
	return Linkage{
		Name:        NameComplete,
		Premin:      NoPremin,
		Select:      rawSelect,
		Branch:      halfBranch,
		Update:      completeUpdate,
		RootSplit:   halfRootSplit,
		Ultrametric: true,
	}
}

func wpgmaUpdate(d Distances, k, i, j, _, _ int) float64 {
	return 0.5 * (d.Dist(i, k) + d.Dist(j, k))
}

func singleUpdate(d Distances, k, i, j, _, _ int) float64 {
	return math.Min(d.Dist(i, k), d.Dist(j, k))
}

func completeUpdate(d Distances, k, i, j, _, _ int) float64 {
	return math.Max(d.Dist(i, k), d.Dist(j, k))
}
