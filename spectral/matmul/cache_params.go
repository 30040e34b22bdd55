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

package matmul

import "golang.org/x/sys/cpu"

// CacheParams holds blocking parameters for the tiled kernels.
//
//   - Block: square output-tile edge, sized so one A strip plus one B panel
//     stay resident in L1/L2 during the K loop.
//   - Strip: rows per work unit when an outer loop is split across workers.
type CacheParams struct {
	Block int
	Strip int
}

// Blocking parameters per CPU family. Conservative estimates that work well
// across most cores in each family; detection keys off feature flags as a
// proxy for the cache hierarchy that ships with them.

// paramsAVX512 assumes 32KB+ L1d, 1MB L2 (Skylake-X and later).
func paramsAVX512() CacheParams {
	return CacheParams{Block: 512, Strip: 64}
}

// paramsAVX2 assumes 32KB L1d, 256KB L2 (Haswell and later).
func paramsAVX2() CacheParams {
	return CacheParams{Block: 256, Strip: 64}
}

// paramsNEON assumes 32-64KB L1d, 256KB-1MB L2 (Cortex-A76 and later,
// Apple M series).
func paramsNEON() CacheParams {
	return CacheParams{Block: 256, Strip: 64}
}

// paramsFallback is safe for any cache hierarchy.
func paramsFallback() CacheParams {
	return CacheParams{Block: 128, Strip: 32}
}

// DetectCacheParams picks blocking parameters from CPU feature flags.
func DetectCacheParams() CacheParams {
	switch {
	case cpu.X86.HasAVX512F:
		return paramsAVX512()
	case cpu.X86.HasAVX2:
		return paramsAVX2()
	case cpu.ARM64.HasASIMD:
		return paramsNEON()
	default:
		return paramsFallback()
	}
}

// defaultParams is detected once at init and used by every kernel in this
// module unless the caller overrides per call.
var defaultParams = DetectCacheParams()

// DefaultCacheParams returns the parameters detected for this CPU.
func DefaultCacheParams() CacheParams {
	return defaultParams
}
