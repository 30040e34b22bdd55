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

// Package matmul provides a cache-blocked general matrix product. It is the
// evaluation engine behind the chain package's triple products and the
// reference product the Gram kernels are tested against.
//
// All matrices are flat row-major slices with explicit dimensions.
package matmul

import "github.com/ajroetker/go-spectral/spectral"

// MatMul computes C = A * B.
//
//   - A is M x K (row-major)
//   - B is K x N (row-major)
//   - C is M x N (row-major), fully overwritten
//
// The loop nest is i-p-j with K-dimension tiling: the innermost j loop
// streams one row of B against one scalar of A, so B rows are read
// contiguously and C rows accumulate in cache. Tiling the p loop keeps the
// touched B panel resident across consecutive i iterations.
func MatMul[T spectral.Floats](a, b, c []T, m, n, k int) {
	if len(a) < m*k {
		panic("matmul: A slice too short")
	}
	if len(b) < k*n {
		panic("matmul: B slice too short")
	}
	if len(c) < m*n {
		panic("matmul: C slice too short")
	}

	for i := range c[:m*n] {
		c[i] = 0
	}

	block := defaultParams.Block
	for p0 := 0; p0 < k; p0 += block {
		pEnd := min(p0+block, k)
		for i := range m {
			ci := c[i*n : (i+1)*n]
			for p := p0; p < pEnd; p++ {
				aip := a[i*k+p]
				bp := b[p*n : (p+1)*n]
				for j, bpj := range bp {
					ci[j] += aip * bpj
				}
			}
		}
	}
}
