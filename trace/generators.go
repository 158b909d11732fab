package trace

import (
	"math"
	"math/rand/v2"
)

// Sequential produces strided, mostly-sequential accesses from a
// block-aligned base. The effective stride is max(userStride,
// block_size/4); about 1 in 4 accesses is a write.
func Sequential(base uint32, count int, hint GeometryHint, userStride int) []Access {
	stride := hint.BlockSizeBytes / 4
	if userStride > stride {
		stride = userStride
	}
	if stride <= 0 {
		stride = 1
	}

	addr := blockAlign(base, hint.BlockSizeBytes)
	out := make([]Access, count)
	for i := 0; i < count; i++ {
		out[i] = Access{Address: addr, IsWrite: i%4 == 3}
		addr += uint32(stride)
	}
	return out
}

// Random produces block-aligned addresses sampled uniformly inside the
// calibrated working-set range; about 30% of accesses are writes.
func Random(base uint32, count int, hint GeometryHint, stress StressLevel, rng *rand.Rand) []Access {
	span := workingSetBytes(hint, stress)
	if span <= 0 {
		span = hint.BlockSizeBytes
	}

	out := make([]Access, count)
	for i := 0; i < count; i++ {
		offset := rng.Uint64N(uint64(span))
		addr := blockAlign(base+uint32(offset), hint.BlockSizeBytes)
		out[i] = Access{Address: addr, IsWrite: rng.Float64() < 0.30}
	}
	return out
}

// stridedMultiplier returns the stress-dependent stride multiplier used
// by Strided (spec.md §4.6).
func stridedMultiplier(s StressLevel) float64 {
	switch s {
	case Light:
		return 0.25
	case Moderate:
		return 0.5
	case Heavy:
		return 1.0
	default:
		return 2.0
	}
}

// Strided walks addr by a stride of set_bytes * stress multiplier, where
// set_bytes = num_sets * block_size; this targets conflict misses in a
// specific set-index stride. Read-only.
func Strided(base uint32, count int, hint GeometryHint, stress StressLevel) []Access {
	setBytes := hint.NumSets * hint.BlockSizeBytes
	stride := uint32(float64(setBytes) * stridedMultiplier(stress))
	if stride == 0 {
		stride = uint32(hint.BlockSizeBytes)
	}

	addr := blockAlign(base, hint.BlockSizeBytes)
	out := make([]Access, count)
	for i := 0; i < count; i++ {
		out[i] = Access{Address: addr, IsWrite: false}
		addr += stride
	}
	return out
}

// hotColdRatios returns the (hot, cold) fraction of the working set used
// by Temporal, scaling from 0.7/0.3 at Light down to 0.2/5.0 at Extreme
// (spec.md §4.6; the intermediate levels are this implementation's
// resolution of an otherwise-unspecified interpolation, recorded in
// DESIGN.md).
func hotColdRatios(s StressLevel) (hot, cold float64) {
	switch s {
	case Light:
		return 0.7, 0.3
	case Moderate:
		return 0.5, 0.8
	case Heavy:
		return 0.35, 2.0
	default:
		return 0.2, 5.0
	}
}

// Temporal produces a hot/cold access pattern: a small hot set is
// accessed with a frequency gradient (lower indices accessed more
// often), then the cold set is scanned once, repeating until count
// accesses are produced. This distinguishes LRU (recency-only) from LFU
// (frequency-aware) eviction.
func Temporal(base uint32, count int, hint GeometryHint, stress StressLevel) []Access {
	ws := workingSetBytes(hint, stress)
	hotRatio, coldRatio := hotColdRatios(stress)
	hotBytes := int(float64(ws) * hotRatio)
	coldBytes := int(float64(ws) * coldRatio)

	hotBlocks := blockCount(hotBytes, hint.BlockSizeBytes)
	coldBlocks := blockCount(coldBytes, hint.BlockSizeBytes)
	if hotBlocks == 0 {
		hotBlocks = 1
	}
	if coldBlocks == 0 {
		coldBlocks = 1
	}
	coldBase := base + uint32(hotBlocks*hint.BlockSizeBytes)

	out := make([]Access, 0, count)
	for len(out) < count {
		for j := 0; j < hotBlocks && len(out) < count; j++ {
			freq := hotBlocks - j // lower index -> higher frequency
			addr := blockAlign(base+uint32(j*hint.BlockSizeBytes), hint.BlockSizeBytes)
			for f := 0; f < freq && len(out) < count; f++ {
				out = append(out, Access{Address: addr})
			}
		}
		for j := 0; j < coldBlocks && len(out) < count; j++ {
			addr := blockAlign(coldBase+uint32(j*hint.BlockSizeBytes), hint.BlockSizeBytes)
			out = append(out, Access{Address: addr})
		}
	}
	return out
}

// blockCount returns ceil(bytes/blockSize), at least 1 for any positive
// bytes.
func blockCount(bytes, blockSize int) int {
	if blockSize <= 0 {
		return 0
	}
	n := bytes / blockSize
	if bytes%blockSize != 0 {
		n++
	}
	return n
}

// WorkingSet cycles block-aligned over a fixed window equal to the
// calibrated working-set size; about 1 in 8 accesses is a write.
func WorkingSet(base uint32, count int, hint GeometryHint, stress StressLevel) []Access {
	ws := workingSetBytes(hint, stress)
	blocks := blockCount(ws, hint.BlockSizeBytes)
	if blocks == 0 {
		blocks = 1
	}

	out := make([]Access, count)
	for i := 0; i < count; i++ {
		j := i % blocks
		addr := blockAlign(base+uint32(j*hint.BlockSizeBytes), hint.BlockSizeBytes)
		out[i] = Access{Address: addr, IsWrite: i%8 == 7}
	}
	return out
}

// thrashingMultiplier returns the stress-dependent multiple of L1 size
// Thrashing cycles over (spec.md §4.6).
func thrashingMultiplier(s StressLevel) float64 {
	switch s {
	case Light:
		return 1.3
	case Moderate:
		return 2.0
	case Heavy:
		return 4.0
	default:
		return 10.0
	}
}

// Thrashing cycles block-aligned, read-only, over L1_size*k, k scaling
// with stress level, to force repeated evictions before reuse.
func Thrashing(base uint32, count int, hint GeometryHint, stress StressLevel) []Access {
	span := int(float64(hint.L1SizeBytes) * thrashingMultiplier(stress))
	blocks := blockCount(span, hint.BlockSizeBytes)
	if blocks == 0 {
		blocks = 1
	}

	out := make([]Access, count)
	for i := 0; i < count; i++ {
		j := i % blocks
		out[i] = Access{Address: blockAlign(base+uint32(j*hint.BlockSizeBytes), hint.BlockSizeBytes)}
	}
	return out
}

// lruKillerExtraBlocks is the number of tags beyond the target
// associativity LRUKiller cycles through, to guarantee it overruns any
// cache at or below the associativity target.
const lruKillerExtraBlocks = 2

// lruKillerStrideBig is the address stride LRUKiller uses; at 1MiB, any
// cache no larger than 1MiB maps every generated address to the same
// set.
const lruKillerStrideBig uint32 = 1 << 20

// lruKillerAssociativityTarget returns the associativity LRUKiller is
// calibrated to defeat (spec.md §4.6).
func lruKillerAssociativityTarget(s StressLevel) int {
	switch s {
	case Light:
		return 2
	case Moderate:
		return 4
	case Heavy:
		return 8
	default:
		return 16
	}
}

// LRUKiller cycles through associativity_target+extra_blocks distinct
// tags, all spaced lruKillerStrideBig apart, to thrash any cache at or
// below the target associativity; under LRU, FIFO and LFU every access
// misses, while RANDOM eviction can occasionally keep a block until reuse.
func LRUKiller(base uint32, count int, stress StressLevel) []Access {
	distinctTags := lruKillerAssociativityTarget(stress) + lruKillerExtraBlocks

	out := make([]Access, count)
	for i := 0; i < count; i++ {
		j := uint32(i % distinctTags)
		out[i] = Access{Address: base + j*lruKillerStrideBig}
	}
	return out
}

// Zipfian samples N block-aligned items from a normalized 1/i^skew
// distribution via inverse-CDF sampling; about 1 in 5 accesses is a
// write.
func Zipfian(base uint32, count, n int, skew float64, hint GeometryHint, rng *rand.Rand) []Access {
	if n <= 0 {
		n = 1
	}
	cdf := zipfCDF(n, skew)

	out := make([]Access, count)
	for i := 0; i < count; i++ {
		item := inverseCDFSample(cdf, rng.Float64())
		addr := blockAlign(base+uint32(item*hint.BlockSizeBytes), hint.BlockSizeBytes)
		out[i] = Access{Address: addr, IsWrite: rng.Float64() < 0.20}
	}
	return out
}

// zipfCDF builds the normalized cumulative distribution for n items
// under a 1/i^skew law (1-indexed internally, 0-indexed in the result).
func zipfCDF(n int, skew float64) []float64 {
	weights := make([]float64, n)
	var total float64
	for i := 0; i < n; i++ {
		w := 1.0 / math.Pow(float64(i+1), skew)
		weights[i] = w
		total += w
	}
	cdf := make([]float64, n)
	running := 0.0
	for i, w := range weights {
		running += w / total
		cdf[i] = running
	}
	return cdf
}

// inverseCDFSample returns the smallest index i such that cdf[i] >= u.
func inverseCDFSample(cdf []float64, u float64) int {
	for i, c := range cdf {
		if u <= c {
			return i
		}
	}
	return len(cdf) - 1
}

// ScanReuse produces a forward scan over S blocks followed by a reverse
// reuse of the last R blocks, with S and R scaling with stress level.
func ScanReuse(base uint32, count int, hint GeometryHint, stress StressLevel) []Access {
	ws := workingSetBytes(hint, stress)
	s := blockCount(ws, hint.BlockSizeBytes)
	if s == 0 {
		s = 1
	}
	r := s / 4
	if r == 0 {
		r = 1
	}

	out := make([]Access, 0, count)
	for len(out) < count {
		for j := 0; j < s && len(out) < count; j++ {
			out = append(out, Access{Address: blockAlign(base+uint32(j*hint.BlockSizeBytes), hint.BlockSizeBytes)})
		}
		for j := 0; j < r && len(out) < count; j++ {
			idx := s - 1 - j
			out = append(out, Access{Address: blockAlign(base+uint32(idx*hint.BlockSizeBytes), hint.BlockSizeBytes)})
		}
	}
	return out
}
