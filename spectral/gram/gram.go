// Copyright 2026 go-spectral Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package gram computes symmetric matrix products by materializing only the
// lower triangular half, halving floating-point work and memory traffic
// versus a full product. The upper half is filled by ReflectLowerToUpper
// when the full symmetric matrix is needed downstream; Gram product plus
// reflection is a deliberate two-step contract, not an omission.
//
// Sparse input uses compressed-row (CSR) form: values and column indices in
// parallel arrays, row boundaries in rowPtr (length rows+1). Column indices
// must be sorted ascending within each row; malformed input produces
// undefined numeric output, not an error.
package gram

import "github.com/ajroetker/go-spectral/spectral"

// XTX computes G = Xᵀ·X for an n×p matrix X, returning a p×p matrix with
// only the lower triangle (including the diagonal) populated. The strict
// upper triangle is left at zero.
//
// Built as a sum of symmetric rank-1 updates: each row of X is read once,
// contiguously, and its outer product with itself folded into the lower
// triangle. Work is O(n·p²/2) instead of the O(n·p²) of a full product.
func XTX[T spectral.Floats](x []T, n, p int) []T {
	if len(x) < n*p {
		panic("gram: X slice too short")
	}

	g := make([]T, p*p)
	for k := range n {
		row := x[k*p : (k+1)*p]
		for i, v := range row {
			gi := g[i*p : i*p+i+1]
			for j := range gi {
				gi[j] += v * row[j]
			}
		}
	}
	return g
}

// XXT computes G = X·Xᵀ for an n×p matrix X, returning an n×n matrix with
// only the lower triangle (including the diagonal) populated. The strict
// upper triangle is left at zero.
//
// The transposed variant of XTX: each output entry is a dot product of two
// contiguous rows of X, so the traversal streams rows from cache. Work is
// O(p·n²/2).
func XXT[T spectral.Floats](x []T, n, p int) []T {
	if len(x) < n*p {
		panic("gram: X slice too short")
	}

	g := make([]T, n*n)
	for i := range n {
		ri := x[i*p : (i+1)*p]
		gi := g[i*n:]
		for j := 0; j <= i; j++ {
			rj := x[j*p : (j+1)*p]
			var s T
			for t, v := range ri {
				s += v * rj[t]
			}
			gi[j] = s
		}
	}
	return g
}
