// Copyright 2026 The go-spectral Authors. SPDX-License-Identifier: Apache-2.0

package spectrum

import (
	"math"

	"github.com/ajroetker/go-spectral/spectral"
)

// FlipSVDSign enforces a canonical sign per SVD component, in place. An SVD
// is sign-ambiguous — (U, S, VT) and (-U, S, -VT) decompose the same matrix
// — so without a convention, repeated decompositions of equivalent inputs
// differ by arbitrary sign flips.
//
// With uDecision (the sklearn default), the canonical sign of component c is
// the sign of the largest-magnitude entry in column c of U; otherwise it is
// the sign of the largest-magnitude entry in row c of VT. Column c of U and
// row c of VT are both multiplied by that sign.
//
// U is n×k, VT is k×p, both row-major. The caller grants exclusive access to
// both buffers for the duration of the call; they are mutated directly.
func FlipSVDSign[T spectral.Floats](u, vt []T, n, k, p int, uDecision bool) {
	for c := range k {
		var sign T
		if uDecision {
			sign = pivotSign(u, c, k, n)
		} else {
			sign = rowPivotSign(vt[c*p : (c+1)*p])
		}
		if sign == 1 {
			continue
		}

		for r := range n {
			u[r*k+c] = -u[r*k+c]
		}
		row := vt[c*p : (c+1)*p]
		for j := range row {
			row[j] = -row[j]
		}
	}
}

// FlipEigenSign enforces a canonical sign per eigenvector, in place: each
// column of the n×k matrix v is multiplied by the sign of its
// largest-magnitude entry. Mirrors FlipSVDSign with uDecision set, since an
// eigendecomposition has no VT to co-flip.
func FlipEigenSign[T spectral.Floats](v []T, n, k int) {
	for c := range k {
		if pivotSign(v, c, k, n) == 1 {
			continue
		}
		for r := range n {
			v[r*k+c] = -v[r*k+c]
		}
	}
}

// pivotSign returns the sign of the largest-magnitude entry of column c in
// an n×k row-major matrix. A zero pivot (all-zero column) counts as
// positive, so flipping never zeroes data.
func pivotSign[T spectral.Floats](m []T, c, k, n int) T {
	var pivot T
	best := -1.0
	for r := range n {
		v := m[r*k+c]
		if a := math.Abs(float64(v)); a > best {
			best = a
			pivot = v
		}
	}
	if pivot < 0 {
		return -1
	}
	return 1
}

// rowPivotSign returns the sign of the largest-magnitude entry of a
// contiguous row.
func rowPivotSign[T spectral.Floats](row []T) T {
	var pivot T
	best := -1.0
	for _, v := range row {
		if a := math.Abs(float64(v)); a > best {
			best = a
			pivot = v
		}
	}
	if pivot < 0 {
		return -1
	}
	return 1
}
