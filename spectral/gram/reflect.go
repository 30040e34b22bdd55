// Copyright 2026 The go-spectral Authors. SPDX-License-Identifier: Apache-2.0

package gram

import (
	"github.com/ajroetker/go-spectral/spectral"
	"github.com/ajroetker/go-spectral/spectral/workerpool"
)

// reflectBatchRows is the work-stealing batch for the parallel reflection.
// Row i copies i elements, so work per row grows linearly; small batches
// keep the load balanced.
const reflectBatchRows = 16

// ReflectLowerToUpper mirrors the populated strict lower triangle of an n×n
// matrix onto its upper triangle: X[j,i] = X[i,j] for all j < i. Used to
// complete the half-matrices produced by XTX, XXT and SparseXXT.
//
// Traversal is by source row i: the row prefix X[i, :i] is read once,
// contiguously, and scattered into column i (one strided write per element).
// This is markedly cheaper than a naive double loop that re-reads strided
// memory on every step.
//
// The caller must invoke this exactly once per matrix: whatever the upper
// triangle held before the call is destroyed, and no later call can restore
// it. With a non-nil pool the outer loop is split across workers; distinct
// source rows write distinct target columns, so iterations are independent.
func ReflectLowerToUpper[T spectral.Floats](x []T, n int, pool *workerpool.Pool) {
	if len(x) < n*n {
		panic("gram: matrix slice too short")
	}

	if pool == nil {
		reflectRange(x, n, 1, n)
		return
	}

	// Index space [0, n-1) maps to source rows [1, n).
	pool.ParallelForBalanced(n-1, reflectBatchRows, func(start, end int) {
		reflectRange(x, n, start+1, end+1)
	})
}

// reflectRange mirrors source rows [iStart, iEnd) into their columns.
func reflectRange[T spectral.Floats](x []T, n, iStart, iEnd int) {
	for i := iStart; i < iEnd; i++ {
		xi := x[i*n : i*n+i]
		for j, v := range xi {
			x[j*n+i] = v
		}
	}
}
