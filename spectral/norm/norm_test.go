// Copyright 2026 The go-spectral Authors. SPDX-License-Identifier: Apache-2.0

package norm

import (
	"math"
	"math/rand"
	"testing"
)

func TestRowSumSquares(t *testing.T) {
	// 2x3: rows (1,2,3) and (0,-4,3).
	x := []float64{1, 2, 3, 0, -4, 3}

	s := RowSumSquares(x, 2, 3, false)
	if s[0] != 14 || s[1] != 25 {
		t.Fatalf("sums = %v, want [14 25]", s)
	}

	norms := RowSumSquares(x, 2, 3, true)
	if math.Abs(norms[0]-math.Sqrt(14)) > 1e-12 || norms[1] != 5 {
		t.Fatalf("norms = %v, want [sqrt(14) 5]", norms)
	}
}

func TestNormalizeIsSqrtOfSums(t *testing.T) {
	rng := rand.New(rand.NewSource(30))
	n, p := 17, 9
	x := make([]float64, n*p)
	for i := range x {
		x[i] = rng.Float64()*2 - 1
	}

	sums := RowSumSquares(x, n, p, false)
	norms := RowSumSquares(x, n, p, true)

	for i := range n {
		if norms[i] != math.Sqrt(sums[i]) {
			t.Errorf("norms[%d] = %v, want sqrt(%v)", i, norms[i], sums[i])
		}
	}
}

func TestRowSumSquaresSparseMatchesDense(t *testing.T) {
	// Sparse representation of the same logical matrix must agree with the
	// dense reduction.
	rng := rand.New(rand.NewSource(31))
	n, p := 23, 31

	dense := make([]float64, n*p)
	var values []float64
	rowPtr := make([]int32, n+1)

	for i := range n {
		for j := range p {
			if rng.Float64() < 0.2 {
				v := rng.Float64()*2 - 1
				dense[i*p+j] = v
				values = append(values, v)
			}
		}
		rowPtr[i+1] = int32(len(values))
	}

	for _, normalize := range []bool{false, true} {
		want := RowSumSquares(dense, n, p, normalize)
		got := RowSumSquaresSparse(values, rowPtr, normalize)

		if len(got) != n {
			t.Fatalf("sparse result length %d, want %d", len(got), n)
		}
		for i := range n {
			if math.Abs(got[i]-want[i]) > 1e-12 {
				t.Errorf("normalize=%v: got[%d] = %v, want %v", normalize, i, got[i], want[i])
			}
		}
	}
}

func TestRowSumSquaresFloat32(t *testing.T) {
	x := []float32{3, 4, 0, 0}
	norms := RowSumSquares(x, 2, 2, true)
	if norms[0] != 5 || norms[1] != 0 {
		t.Fatalf("norms = %v, want [5 0]", norms)
	}
}

func TestGramTrace(t *testing.T) {
	rng := rand.New(rand.NewSource(32))
	n, p := 11, 7
	x := make([]float64, n*p)
	for i := range x {
		x[i] = rng.Float64()*2 - 1
	}

	// trace(XᵀX) is the total sum of squares, i.e. the sum over row sums.
	sums := RowSumSquares(x, n, p, false)
	var want float64
	for _, s := range sums {
		want += s
	}

	if got := GramTrace(x, n, p); math.Abs(got-want) > 1e-10 {
		t.Fatalf("GramTrace = %v, want %v", got, want)
	}
}
