// Copyright 2026 The go-spectral Authors. SPDX-License-Identifier: Apache-2.0

package gram

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ajroetker/go-spectral/spectral"
	"github.com/ajroetker/go-spectral/spectral/workerpool"
)

// randCSR builds a random n×p CSR matrix with the given nonzero density and
// returns it together with its dense equivalent.
func randCSR[T spectral.Floats](rng *rand.Rand, n, p int, density float64) (values []T, colIndices, rowPtr []int32, dense []T) {
	dense = make([]T, n*p)
	rowPtr = make([]int32, n+1)

	for i := range n {
		for j := range p {
			if rng.Float64() < density {
				v := T(rng.Float64()*2 - 1)
				dense[i*p+j] = v
				values = append(values, v)
				colIndices = append(colIndices, int32(j))
			}
		}
		rowPtr[i+1] = int32(len(values))
	}
	return values, colIndices, rowPtr, dense
}

func TestSparseXXTMatchesDense(t *testing.T) {
	rng := rand.New(rand.NewSource(20))

	cases := []struct {
		n, p    int
		density float64
	}{
		{5, 8, 0.5},
		{30, 50, 0.1},
		{64, 16, 0.3},
		{100, 200, 0.02},
	}

	for _, tc := range cases {
		values, cols, rowPtr, dense := randCSR[float64](rng, tc.n, tc.p, tc.density)

		d := SparseXXT(values, cols, rowPtr, tc.n, tc.p, nil)
		want := gramReference(dense, tc.n, tc.p, true)

		for i := range tc.n {
			for j := range tc.n {
				got := d[i*tc.n+j]
				switch {
				case j < i:
					if math.Abs(got-want[i*tc.n+j]) > 1e-10 {
						t.Fatalf("n=%d p=%d: d[%d,%d] = %v, want %v",
							tc.n, tc.p, i, j, got, want[i*tc.n+j])
					}
				default:
					// Diagonal and strict upper stay zero by contract.
					if got != 0 {
						t.Fatalf("n=%d p=%d: d[%d,%d] = %v, want 0", tc.n, tc.p, i, j, got)
					}
				}
			}
		}
	}
}

func TestSparseXXTFloat32(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	n, p := 25, 40

	values, cols, rowPtr, dense := randCSR[float32](rng, n, p, 0.2)

	d := SparseXXT(values, cols, rowPtr, n, p, nil)
	want := gramReference(dense, n, p, true)

	for i := range n {
		for j := range i {
			if math.Abs(float64(d[i*n+j]-want[i*n+j])) > 1e-4 {
				t.Fatalf("d[%d,%d] = %v, want %v", i, j, d[i*n+j], want[i*n+j])
			}
		}
	}
}

func TestSparseXXTParallelMatchesSequential(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	rng := rand.New(rand.NewSource(22))
	n, p := 120, 300

	values, cols, rowPtr, _ := randCSR[float64](rng, n, p, 0.05)

	seq := SparseXXT(values, cols, rowPtr, n, p, nil)
	par := SparseXXT(values, cols, rowPtr, n, p, pool)

	for i := range seq {
		if seq[i] != par[i] {
			t.Fatalf("parallel[%d] = %v, sequential = %v", i, par[i], seq[i])
		}
	}
}

func TestSparseXXTEmptyRows(t *testing.T) {
	// Rows with no nonzeros contribute zero dot products everywhere.
	n, p := 4, 6
	values := []float64{1, 2}
	cols := []int32{0, 0}
	rowPtr := []int32{0, 1, 1, 1, 2}

	d := SparseXXT(values, cols, rowPtr, n, p, nil)

	// Only rows 0 and 3 overlap (both have column 0): D[3,0] = 1*2.
	for i := range n {
		for j := range n {
			want := 0.0
			if i == 3 && j == 0 {
				want = 2
			}
			if d[i*n+j] != want {
				t.Errorf("d[%d,%d] = %v, want %v", i, j, d[i*n+j], want)
			}
		}
	}
}

func TestSparseXXTTinyMatrix(t *testing.T) {
	// n < 2 has no strictly-lower entries at all.
	d := SparseXXT([]float64{3}, []int32{0}, []int32{0, 1}, 1, 2, nil)
	if len(d) != 1 || d[0] != 0 {
		t.Errorf("1×1 sparse gram = %v, want [0]", d)
	}
}

func BenchmarkSparseXXT(b *testing.B) {
	rng := rand.New(rand.NewSource(23))
	n, p := 500, 1000
	values, cols, rowPtr, _ := randCSR[float64](rng, n, p, 0.01)

	b.ResetTimer()
	for b.Loop() {
		SparseXXT(values, cols, rowPtr, n, p, nil)
	}
}

func BenchmarkSparseXXTParallel(b *testing.B) {
	pool := workerpool.New(0)
	defer pool.Close()

	rng := rand.New(rand.NewSource(24))
	n, p := 500, 1000
	values, cols, rowPtr, _ := randCSR[float64](rng, n, p, 0.01)

	b.ResetTimer()
	for b.Loop() {
		SparseXXT(values, cols, rowPtr, n, p, pool)
	}
}
