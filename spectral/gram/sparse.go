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

package gram

import (
	"github.com/ajroetker/go-spectral/spectral"
	"github.com/ajroetker/go-spectral/spectral/workerpool"
)

// sparseBatchRows is how many outer-loop rows a worker grabs at a time in
// the parallel sparse kernel. Small, because work per row is skewed: row k
// pairs against all rows j > k.
const sparseBatchRows = 8

// SparseXXT computes D = X·Xᵀ for an n×p CSR matrix, returning an n×n dense
// matrix populated only in the strictly-lower triangle. The diagonal is
// deliberately left at zero: callers needing true self dot-products (the row
// sum-of-squares) must add them separately, e.g. from norm.RowSumSquaresSparse.
//
// Per outer row k, the sparse entries of row k are scattered into a dense
// scratch vector of length p; every subsequent row j > k is then gathered
// against the scratch, accumulating its dot product into D[j,k]. The O(p)
// scatter is paid once per k and each inner iteration costs O(nnz_j), for an
// overall cost near O(n·nnz) instead of O(n²·p).
//
// With a non-nil pool the outer loop is distributed across workers. Each
// worker owns a private scratch vector; scratch state is read-after-scatter
// within one k and must never be shared across concurrent k's. Writes target
// column k of D, disjoint per k, so no further synchronization is needed.
func SparseXXT[T spectral.Floats](values []T, colIndices, rowPtr []int32, n, p int, pool *workerpool.Pool) []T {
	d := make([]T, n*n)
	if n < 2 {
		return d
	}

	if pool == nil {
		scratch := make([]T, p)
		sparseXXTRange(values, colIndices, rowPtr, n, d, scratch, 0, n-1)
		return d
	}

	pool.ParallelForBalanced(n-1, sparseBatchRows, func(start, end int) {
		scratch := make([]T, p)
		sparseXXTRange(values, colIndices, rowPtr, n, d, scratch, start, end)
	})
	return d
}

// sparseXXTRange processes outer rows [kStart, kEnd). scratch must be zeroed
// on entry and is returned zeroed: after each k the scattered entries are
// cleared individually, which costs O(nnz_k) instead of O(p).
func sparseXXTRange[T spectral.Floats](values []T, colIndices, rowPtr []int32, n int, d, scratch []T, kStart, kEnd int) {
	for k := kStart; k < kEnd; k++ {
		l, r := rowPtr[k], rowPtr[k+1]

		for idx := l; idx < r; idx++ {
			scratch[colIndices[idx]] = values[idx]
		}

		for j := k + 1; j < n; j++ {
			jl, jr := rowPtr[j], rowPtr[j+1]
			var s T
			for idx := jl; idx < jr; idx++ {
				if v := scratch[colIndices[idx]]; v != 0 {
					s += v * values[idx]
				}
			}
			d[j*n+k] = s
		}

		for idx := l; idx < r; idx++ {
			scratch[colIndices[idx]] = 0
		}
	}
}
