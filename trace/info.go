package trace

// GeneratorInfo documents a generator's intent. It is a documentation
// contract, not computed semantics (spec.md §4.6): nothing in the
// engine consults it at runtime, but a listing tool can present it to a
// user choosing among generators.
type GeneratorInfo struct {
	Name        string
	Description string
	Tests       string
	Expected    string
	Tunings     string
}

// Generators lists the documentation entries for every required trace
// pattern generator, in the order spec.md §4.6 lists them.
var Generators = []GeneratorInfo{
	{
		Name:        "Sequential",
		Description: "Strides forward from a block-aligned base address.",
		Tests:       "Spatial locality and prefetch-friendly access.",
		Expected:    "High hit rate once the working set fits in cache; misses cluster at cold start.",
		Tunings:     "Stride is max(user_stride, block_size/4); about 25% of accesses are writes.",
	},
	{
		Name:        "Random",
		Description: "Uniformly samples block-aligned addresses across a calibrated working set.",
		Tests:       "Behavior under low spatial and temporal locality.",
		Expected:    "Hit rate tracks cache_size/working_set_size; insensitive to replacement policy.",
		Tunings:     "Working-set bytes scale 0.5x/1.5x/3x/8x of L1 size by stress level; about 30% writes.",
	},
	{
		Name:        "Strided",
		Description: "Strides by a multiple of the full set-index span, to land repeatedly on the same sets.",
		Tests:       "Conflict misses independent of cache capacity.",
		Expected:    "High miss rate even when cache_size greatly exceeds the working set, if associativity is low.",
		Tunings:     "Stride = num_sets*block_size*stress_multiplier (0.25/0.5/1.0/2.0); read-only.",
	},
	{
		Name:        "Temporal",
		Description: "Alternates a frequency-weighted hot set with a single pass over a cold set.",
		Tests:       "Recency-only (LRU) vs frequency-aware (LFU) eviction.",
		Expected:    "LFU retains the hot set and outperforms LRU as the cold set grows relative to it.",
		Tunings:     "Hot/cold byte ratios of working-set size range from 0.7/0.3 (Light) to 0.2/5.0 (Extreme).",
	},
	{
		Name:        "WorkingSet",
		Description: "Cycles over a fixed window sized to the calibrated working set.",
		Tests:       "Capacity misses as a function of working-set-to-cache-size ratio.",
		Expected:    "Near-100% hit rate once warm if the window fits in cache, near-0% otherwise.",
		Tunings:     "Window size follows the same 0.5x/1.5x/3x/8x ratios as Random; about 12.5% writes.",
	},
	{
		Name:        "Thrashing",
		Description: "Cycles over a window sized as a multiple of L1 size, chosen to exceed cache capacity.",
		Tests:       "Sustained capacity-miss pressure at a magnitude independent of set count.",
		Expected:    "Consistently low hit rate regardless of replacement policy.",
		Tunings:     "Window = L1_size * k, k in {1.3, 2.0, 4.0, 10.0} by stress level; read-only.",
	},
	{
		Name:        "LRUKiller",
		Description: "Cycles through distinct tags spaced one mebibyte apart, all mapping to the same set.",
		Tests:       "Whether a replacement policy can be defeated by a pathological conflict pattern.",
		Expected:    "100% miss rate under LRU, FIFO and LFU for any cache of at most 1 MiB whose associativity is at or below the stress level's target; RANDOM eviction can still score occasional hits.",
		Tunings:     "Distinct tags = associativity_target + 2, target in {2,4,8,16} by stress level.",
	},
	{
		Name:        "Zipfian",
		Description: "Samples block-aligned addresses from a skewed 1/i^skew popularity distribution.",
		Tests:       "Cache behavior under realistic, power-law-skewed popularity.",
		Expected:    "Hit rate well above Random's for the same cache size, due to a small hot head.",
		Tunings:     "Skew and item count are caller-supplied; about 20% writes.",
	},
	{
		Name:        "ScanReuse",
		Description: "Forward-scans a window of blocks, then reverse-walks the tail of that window.",
		Tests:       "Scan resistance: whether a one-pass scan evicts data that will be reused immediately after.",
		Expected:    "Policies that protect recently-reused data (LFU, scan-aware LRU variants) outperform plain FIFO.",
		Tunings:     "Scan length S follows the working-set ratio; reuse length R = S/4.",
	},
}
