// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/agglom/matrix"
)

func benchPoints(n, dim int) [][]float64 {
	rng := rand.New(rand.NewSource(1))
	pts := make([][]float64, n)
	for i := range pts {
		pts[i] = make([]float64, dim)
		for j := range pts[i] {
			pts[i][j] = rng.Float64()
		}
	}

	return pts
}

func BenchmarkPairwise_n256_d16(b *testing.B) {
	pts := benchPoints(256, 16)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := matrix.Pairwise(pts, matrix.Euclidean); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValidateDistance_n256(b *testing.B) {
	d, err := matrix.Pairwise(benchPoints(256, 4), matrix.Euclidean)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = matrix.ValidateDistance(d, matrix.DefaultEpsilon); err != nil {
			b.Fatal(err)
		}
	}
}
