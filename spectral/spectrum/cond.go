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

// Package spectrum conditions the output of SVD and eigendecomposition
// solvers: it truncates components indistinguishable from numerical noise
// and enforces a deterministic sign convention so repeated decompositions of
// equivalent inputs produce identical results.
//
// Truncation thresholds follow the precision of the element type: a spectral
// value survives when it exceeds factor·eps·lead, where lead is the dominant
// value, eps the machine epsilon, and factor 1e3 for float32 or 1e6 for
// float64 (double precision resolves components much closer to eps).
package spectrum

import (
	"math"

	"github.com/ajroetker/go-spectral/spectral"
)

// CondSVD truncates an SVD (U n×k, S k, VT k×p) to its numerical rank and
// rewrites the surviving singular values in ridge-regularized-inverse form.
//
// S must be sorted descending; the threshold derives from S[0]. Values at or
// below the threshold are dropped together with their U columns and VT rows.
//
// The returned sOut does NOT hold singular values: each surviving entry is
//
//	s / (s² + ridgeAlpha)
//
// which for ridgeAlpha = 0 is 1/s — the form consumed directly when solving
// regularized least-squares systems. Callers wanting raw singular values
// must keep their own copy of S.
//
// All three outputs are freshly allocated; the inputs are never modified and
// share no memory with the results.
func CondSVD[T spectral.Floats](u, s, vt []T, n, p int, ridgeAlpha T) (uOut, sOut, vtOut []T, rank int) {
	k := len(s)
	if k == 0 {
		return []T{}, []T{}, []T{}, 0
	}

	threshold := spectral.ConditionThreshold[T](float64(s[0]))
	for rank < k && float64(s[rank]) > threshold {
		rank++
	}

	sOut = make([]T, rank)
	for i := range sOut {
		v := s[i]
		sOut[i] = v / (v*v + ridgeAlpha)
	}

	uOut = truncateColumns(u, n, k, rank)
	vtOut = make([]T, rank*p)
	copy(vtOut, vt[:rank*p])
	return uOut, sOut, vtOut, rank
}

// CondEigen truncates an eigendecomposition (values k, vectors n×k) to the
// components whose magnitude exceeds the noise threshold. Unlike CondSVD the
// surviving eigenvalues are returned untransformed.
//
// Precondition: the eigenvalue of maximal absolute magnitude sits at one of
// the two ends of values (the layout produced by LAPACK-style solvers in
// either sort direction). If an upstream solver violates this the threshold
// is wrong and truncation silently miscounts the rank.
//
// Eigenvalues may survive non-contiguously; both outputs are compacted,
// freshly allocated copies.
func CondEigen[T spectral.Floats](values, vectors []T, n int) (valsOut, vecsOut []T) {
	k := len(values)
	if k == 0 {
		return []T{}, []T{}
	}

	lead := math.Abs(float64(values[0]))
	if last := math.Abs(float64(values[k-1])); last > lead {
		lead = last
	}
	threshold := spectral.ConditionThreshold[T](lead)

	keep := make([]int, 0, k)
	for i, v := range values {
		if math.Abs(float64(v)) > threshold {
			keep = append(keep, i)
		}
	}

	valsOut = make([]T, len(keep))
	vecsOut = make([]T, n*len(keep))
	for o, i := range keep {
		valsOut[o] = values[i]
		for r := range n {
			vecsOut[r*len(keep)+o] = vectors[r*k+i]
		}
	}
	return valsOut, vecsOut
}

// truncateColumns copies the first rank columns of an n×k row-major matrix
// into a new n×rank matrix.
func truncateColumns[T spectral.Floats](m []T, n, k, rank int) []T {
	out := make([]T, n*rank)
	for r := range n {
		copy(out[r*rank:(r+1)*rank], m[r*k:r*k+rank])
	}
	return out
}
