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

// Package norm provides per-row sum-of-squares reductions over dense and
// CSR matrices, and the Gram trace shortcut.
package norm

import (
	"math"

	"github.com/ajroetker/go-spectral/spectral"
)

// RowSumSquares computes the sum of squared entries of each row of an n×p
// matrix. If normalize is set, every entry of the result is square-rooted
// after all rows have accumulated, yielding Euclidean row norms.
func RowSumSquares[T spectral.Floats](x []T, n, p int, normalize bool) []T {
	if len(x) < n*p {
		panic("norm: X slice too short")
	}

	s := make([]T, n)
	for i := range n {
		row := x[i*p : (i+1)*p]
		var acc T
		for _, v := range row {
			acc += v * v
		}
		s[i] = acc
	}

	if normalize {
		sqrtInPlace(s)
	}
	return s
}

// RowSumSquaresSparse is RowSumSquares restricted to the stored nonzeros of
// a CSR matrix. Cost is O(nnz). The row count is rowPtr's length minus one.
func RowSumSquaresSparse[T spectral.Floats](values []T, rowPtr []int32, normalize bool) []T {
	n := len(rowPtr) - 1
	s := make([]T, n)

	for i := range n {
		var acc T
		for _, v := range values[rowPtr[i]:rowPtr[i+1]] {
			acc += v * v
		}
		s[i] = acc
	}

	if normalize {
		sqrtInPlace(s)
	}
	return s
}

// GramTrace computes trace(Xᵀ·X) = Σ x²  without forming the Gram matrix.
// Since trace(XᵀX) equals the sum of its eigenvalues, this gives truncated
// decompositions the denominator for variance-explained ratios at O(n·p)
// cost instead of a full product.
func GramTrace[T spectral.Floats](x []T, n, p int) T {
	var s T
	for _, v := range x[:n*p] {
		s += v * v
	}
	return s
}

func sqrtInPlace[T spectral.Floats](s []T) {
	for i, v := range s {
		s[i] = T(math.Sqrt(float64(v)))
	}
}
