// Copyright 2026 The go-spectral Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"github.com/ajroetker/go-spectral/spectral"
	"github.com/ajroetker/go-spectral/spectral/workerpool"
)

// MinParallelOps is the minimum m*n*k before ParallelMatMul fans out.
// Below this the spawn and barrier overhead outweighs the work.
const MinParallelOps = 64 * 64 * 64

// ParallelMatMul computes C = A * B with the M dimension split into row
// strips processed by the pool. Strips write disjoint rows of C, so no
// synchronization is needed beyond the final barrier.
//
// A nil pool, or a product below MinParallelOps, runs the sequential kernel.
func ParallelMatMul[T spectral.Floats](pool *workerpool.Pool, a, b, c []T, m, n, k int) {
	if pool == nil || m*n*k < MinParallelOps {
		MatMul(a, b, c, m, n, k)
		return
	}

	strip := defaultParams.Strip
	numStrips := (m + strip - 1) / strip

	pool.ParallelFor(numStrips, func(start, end int) {
		for s := start; s < end; s++ {
			rowStart := s * strip
			rowEnd := min(rowStart+strip, m)
			stripM := rowEnd - rowStart

			aStrip := a[rowStart*k : rowEnd*k]
			cStrip := c[rowStart*n : rowEnd*n]
			MatMul(aStrip, b, cStrip, stripM, n, k)
		}
	})
}
