package linkage_test

import (
	"fmt"

	"github.com/katalvlaran/agglom/linkage"
)

// ExampleUPGMA evaluates the four UPGMA formulas on a 3×3 matrix, merging
// clusters 0 and 1 and measuring the merged cluster against 2.
func ExampleUPGMA() {
	d := linkage.Square{
		{0, 2, 4},
		{2, 0, 6},
		{4, 6, 0},
	}
	up := linkage.UPGMA()

	bi, bj := up.RootSplit(d, 0, 1, 1, 1)
	fmt.Println("select:", up.Select(d, nil, 0, 1))
	fmt.Println("branch:", up.Branch(d, nil, 0, 1))
	fmt.Println("update:", up.Update(d, 2, 0, 1, 1, 1))
	fmt.Println("root:", bi, bj)
	// Output:
	// select: 2
	// branch: 1
	// update: 5
	// root: 1 1
}
