package agglom_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/agglom/agglom"
	"github.com/katalvlaran/agglom/linkage"
)

// benchmarkBuild measures one full agglomeration of an n-point instance.
// The input is built once, outside the timer.
func benchmarkBuild(b *testing.B, n int, link linkage.Linkage) {
	rng := rand.New(rand.NewSource(seedDet))
	d := randDistance(b, n, rng)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := agglom.Build(d, link); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUPGMA_n64(b *testing.B)  { benchmarkBuild(b, 64, linkage.UPGMA()) }
func BenchmarkUPGMA_n256(b *testing.B) { benchmarkBuild(b, 256, linkage.UPGMA()) }
func BenchmarkNJ_n64(b *testing.B)     { benchmarkBuild(b, 64, linkage.NeighborJoining()) }
func BenchmarkNJ_n256(b *testing.B)    { benchmarkBuild(b, 256, linkage.NeighborJoining()) }
