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

// Package chain evaluates the triple matrix product A·B·C in whichever
// association is cheaper. Both orders are numerically equivalent; only the
// flop count differs, and for skewed shapes (tall-thin times short-wide) the
// difference spans orders of magnitude.
package chain

import (
	"github.com/ajroetker/go-spectral/spectral"
	"github.com/ajroetker/go-spectral/spectral/matmul"
	"github.com/ajroetker/go-spectral/spectral/workerpool"
)

// Order is the chosen association for a triple product.
type Order int

const (
	// Forward evaluates (A·B)·C.
	Forward Order = iota
	// Backward evaluates A·(B·C).
	Backward
)

func (o Order) String() string {
	if o == Backward {
		return "A·(B·C)"
	}
	return "(A·B)·C"
}

// ChooseOrder picks the cheaper association for shapes A(n,p), B(p,k),
// C(k,d). Flop counts:
//
//	forward  (A·B)·C: p·k·n + k·d·n = k·n·(p+d)
//	backward A·(B·C): p·d·n + k·d·p = p·d·(n+k)
//
// Ties break toward Forward. Vector operands are matrices with a trailing
// dimension of 1.
func ChooseOrder(n, p, k, d int) Order {
	forward := k * n * (p + d)
	backward := p * d * (n + k)
	if forward <= backward {
		return Forward
	}
	return Backward
}

// FastDot computes A·B·C for A(n,p), B(p,k), C(k,d), returning a new n×d
// matrix. The association comes from ChooseOrder; the products run on the
// blocked kernel, parallelized over pool when one is supplied (nil pool is
// sequential).
func FastDot[T spectral.Floats](pool *workerpool.Pool, a, b, c []T, n, p, k, d int) []T {
	out := make([]T, n*d)

	if ChooseOrder(n, p, k, d) == Forward {
		ab := make([]T, n*k)
		matmul.ParallelMatMul(pool, a, b, ab, n, k, p)
		matmul.ParallelMatMul(pool, ab, c, out, n, d, k)
		return out
	}

	bc := make([]T, p*d)
	matmul.ParallelMatMul(pool, b, c, bc, p, d, k)
	matmul.ParallelMatMul(pool, a, bc, out, n, d, p)
	return out
}
