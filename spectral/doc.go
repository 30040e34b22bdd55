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

// Package spectral provides the shared element-type constraint and
// precision-keyed constants for the decomposition kernel packages.
//
// All kernels operate on flat row-major slices with explicit dimensions:
// an n×p matrix X is a []T of length n*p with X[i*p+j] addressing row i,
// column j. Sparse matrices use compressed-row (CSR) form: parallel
// values/column-index arrays plus a row-pointer array of length rows+1.
//
// Subpackages:
//
//   - budget: memory admission checks before allocating large outputs
//   - gram: symmetric rank-update products and triangular reflection
//   - norm: per-row sum-of-squares reductions
//   - spectrum: rank truncation and deterministic sign conventions
//   - chain: optimal triple-product ordering
//   - matmul: cache-blocked GEMM used by chain and by tests
//   - workerpool: the concurrency strategy passed to parallel kernels
package spectral

// Floats is the constraint for supported matrix element types.
// Upstream callers are expected to have already coerced inputs to one of
// these two types; no other precision is supported.
type Floats interface {
	~float32 | ~float64
}
