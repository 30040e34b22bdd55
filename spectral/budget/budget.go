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

// Package budget estimates the memory footprint of pending decomposition
// outputs and checks them against available system memory before anything
// large is allocated.
//
// Estimates are heuristic: they cover the dominant output arrays and ignore
// transient copies. The free-memory probe and the later allocation are not
// atomic; the window between check and use is an accepted limitation, not a
// bug. Most checks are advisory (Fits); AdmitGram is the one hard-enforced
// entry point and fails with ErrInsufficientMemory. Callers that need hard
// enforcement use AdmitGram, everyone else decides on the boolean. The
// asymmetry is deliberate.
package budget

import (
	"errors"
	"fmt"

	"github.com/elastic/gosigar"

	"github.com/ajroetker/go-spectral/spectral"
)

// safetyMargin reserves headroom for other consumers of system memory.
const safetyMargin = 0.95

// ErrInsufficientMemory is returned by AdmitGram when the estimated
// footprint of a pending operation exceeds available memory headroom.
// Never retried automatically; retry is a caller decision.
var ErrInsufficientMemory = errors.New("insufficient memory for pending operation")

// Available returns the usable system memory headroom: free memory scaled by
// the safety margin. Prefers the kernel's reclaimable-cache-adjusted figure
// when the platform reports one.
func Available() (uint64, error) {
	mem := gosigar.Mem{}
	if err := mem.Get(); err != nil {
		return 0, fmt.Errorf("budget: reading system memory: %w", err)
	}

	free := mem.ActualFree
	if free == 0 {
		free = mem.Free
	}
	return uint64(float64(free) * safetyMargin), nil
}

// EstimateGram predicts the footprint of a symmetric Gram product of an
// n×p matrix with element type T: whichever of XᵀX (p×p) or XXᵀ (n×n) is
// smaller, min(n,p)² elements.
func EstimateGram[T spectral.Floats](n, p int) uint64 {
	s := min(n, p)
	return uint64(s) * uint64(s) * uint64(spectral.ElementSize[T]())
}

// EstimateXTX predicts the footprint of XᵀX alone (p×p) for an n×p matrix.
func EstimateXTX[T spectral.Floats](p int) uint64 {
	return uint64(p) * uint64(p) * uint64(spectral.ElementSize[T]())
}

// EstimateSpectrum predicts the footprint of a full decomposition output of
// an n×p matrix:
//
//	X = U·S·VT, U(n,p), S(p), VT(p,p) => (np + p + p²) elements
//
// with n and p swapped so p is always the larger dimension.
func EstimateSpectrum[T spectral.Floats](n, p int) uint64 {
	if n > p {
		n, p = p, n
	}
	elems := uint64(n)*uint64(p) + uint64(p) + uint64(p)*uint64(p)
	return elems * uint64(spectral.ElementSize[T]())
}

// Fits reports whether an estimated footprint fits in available headroom.
// Advisory only: acting on the answer is the caller's decision. If the
// free-memory probe fails, Fits answers false rather than guessing.
func Fits(estimate uint64) bool {
	avail, err := Available()
	if err != nil {
		return false
	}
	return estimate < avail
}

// AdmitGram is the hard-enforced admission check for a pending Gram product
// of an n×p matrix with element type T. It fails with a wrapped
// ErrInsufficientMemory when the estimate does not fit.
func AdmitGram[T spectral.Floats](n, p int) error {
	est := EstimateGram[T](n, p)
	avail, err := Available()
	if err != nil {
		return err
	}
	if est >= avail {
		return fmt.Errorf("gram product of %d×%d matrix needs %d bytes, %d available: %w",
			n, p, est, avail, ErrInsufficientMemory)
	}
	return nil
}
