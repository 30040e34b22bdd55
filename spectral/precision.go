// Copyright 2026 The go-spectral Authors. SPDX-License-Identifier: Apache-2.0

package spectral

import (
	"math"
	"unsafe"
)

// Precision-dependent constants, resolved at instantiation time via type
// switch rather than runtime tag inspection. Each supported element type has
// a fixed machine epsilon and a condition factor reflecting the relative
// accuracy achievable at that precision.

const (
	// conditionFactor32 scales the truncation threshold for float32 spectra.
	conditionFactor32 = 1e3
	// conditionFactor64 scales the truncation threshold for float64 spectra.
	// Larger than the float32 factor because double precision resolves
	// spectral components much closer to machine epsilon.
	conditionFactor64 = 1e6
)

// Eps returns the machine epsilon for element type T: the difference between
// 1 and the least representable value greater than 1. Discriminates on byte
// width so defined types (~float32, ~float64) resolve like their underlying
// type.
func Eps[T Floats]() float64 {
	if ElementSize[T]() == 4 {
		return float64(math.Nextafter32(1, 2) - 1)
	}
	return math.Nextafter(1, 2) - 1
}

// ConditionFactor returns the precision-dependent multiplier applied to
// machine epsilon when deriving a numerical-rank truncation threshold.
func ConditionFactor[T Floats]() float64 {
	if ElementSize[T]() == 4 {
		return conditionFactor32
	}
	return conditionFactor64
}

// ElementSize returns the byte width of element type T (4 or 8).
func ElementSize[T Floats]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// ConditionThreshold derives the truncation threshold for a spectrum whose
// dominant (largest-magnitude) value is lead:
//
//	threshold = ConditionFactor[T] * Eps[T] * lead
//
// Spectral components at or below this threshold are indistinguishable from
// numerical noise at precision T.
func ConditionThreshold[T Floats](lead float64) float64 {
	return ConditionFactor[T]() * Eps[T]() * lead
}
