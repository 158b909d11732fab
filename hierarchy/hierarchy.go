// Package hierarchy routes accesses through up to two independent cache
// levels and a main-memory model, and aggregates hit/miss/latency
// statistics across the whole path (spec.md §4.4).
package hierarchy

import (
	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/memory"
)

// Fixed per-level hit latencies (spec.md §4.4).
const (
	L1HitCycles uint64 = 1
	L2HitCycles uint64 = 10
)

// defaultBlockSize is used for the memory transfer when neither level is
// enabled (spec.md §4.4).
const defaultBlockSize = 64

// Stage identifies one point on an access's data path. Unlike
// cache.Level, it also covers a trip to main memory; the data path is a
// small fixed-capacity sequence over these three values, never a
// heterogeneous list (spec.md §9).
type Stage int

const (
	// StageL1 is a visit to the L1 cache.
	StageL1 Stage = iota
	// StageL2 is a visit to the L2 cache.
	StageL2
	// StageMemory is a visit to main memory.
	StageMemory
)

// String returns the human-readable stage name.
func (s Stage) String() string {
	switch s {
	case StageL1:
		return "L1"
	case StageL2:
		return "L2"
	case StageMemory:
		return "Memory"
	default:
		return "Unknown"
	}
}

// EnabledLevels selects which cache levels participate in a hierarchy.
type EnabledLevels struct {
	L1 bool
	L2 bool
}

// Config holds a full two-level hierarchy's configuration.
type Config struct {
	L1      cache.Config
	L2      cache.Config
	Enabled EnabledLevels
}

// AccessResult is the outcome of routing one access through the
// hierarchy.
type AccessResult struct {
	L1                 *cache.AccessResult
	L2                 *cache.AccessResult
	Memory             *memory.AccessResult
	TotalLatencyCycles uint64
	DataPath           []Stage
}

// CombinedStats aggregates hit/miss counts across every enabled level.
type CombinedStats struct {
	Hits          uint64
	Misses        uint64
	TotalAccesses uint64
}

// HitRate returns Hits/TotalAccesses, or 0 when TotalAccesses is 0.
func (s CombinedStats) HitRate() float64 {
	if s.TotalAccesses == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.TotalAccesses)
}

// Hierarchy owns up to two cache levels and a main-memory model, and
// routes accesses through them per spec.md §4.4's state machine.
type Hierarchy struct {
	config    Config
	l1        *cache.Cache
	l2        *cache.Cache
	mem       *memory.Memory
	combined  CombinedStats
	blockSize int
}

// New builds a Hierarchy. At least one of Enabled.L1/Enabled.L2 need not
// be true: when neither is enabled, every access goes directly to
// memory. Returns an error if an enabled level's Config is invalid.
func New(config Config, memConfig memory.Config) (*Hierarchy, error) {
	return NewSeeded(config, memConfig, 0, 0)
}

// NewSeeded builds a Hierarchy whose enabled levels' RANDOM-policy
// victim selection is driven by a seeded, non-global PRNG (spec.md §5).
// Both levels share the same seed pair; since they're independent caches
// this does not correlate their victim sequences in any way that
// matters to determinism.
func NewSeeded(config Config, memConfig memory.Config, seed1, seed2 uint64) (*Hierarchy, error) {
	h := &Hierarchy{config: config, mem: memory.New(memConfig)}

	if config.Enabled.L1 {
		l1, err := cache.NewSeeded(config.L1, seed1, seed2)
		if err != nil {
			return nil, err
		}
		h.l1 = l1
	}
	if config.Enabled.L2 {
		l2, err := cache.NewSeeded(config.L2, seed1, seed2)
		if err != nil {
			return nil, err
		}
		h.l2 = l2
	}

	switch {
	case config.Enabled.L1:
		h.blockSize = config.L1.BlockSizeBytes
	case config.Enabled.L2:
		h.blockSize = config.L2.BlockSizeBytes
	default:
		h.blockSize = defaultBlockSize
	}

	return h, nil
}

// L1 returns the L1 cache, or nil if not enabled.
func (h *Hierarchy) L1() *cache.Cache { return h.l1 }

// L2 returns the L2 cache, or nil if not enabled.
func (h *Hierarchy) L2() *cache.Cache { return h.l2 }

// Memory returns the hierarchy's main-memory model.
func (h *Hierarchy) Memory() *memory.Memory { return h.mem }

// CombinedStats returns a snapshot of the aggregated hit/miss counters.
func (h *Hierarchy) CombinedStats() CombinedStats { return h.combined }

// MemoryStats returns a snapshot of the memory model's statistics.
func (h *Hierarchy) MemoryStats() memory.Stats { return h.mem.Stats() }

// MemoryRegions returns a copy of the memory model's 16 heat-map regions.
func (h *Hierarchy) MemoryRegions() [memory.NumRegions]memory.Region { return h.mem.Regions() }

// Reset restores every enabled level and the memory model to their
// construction-time state, and zeroes the combined stats.
func (h *Hierarchy) Reset() {
	if h.l1 != nil {
		h.l1.Reset()
	}
	if h.l2 != nil {
		h.l2.Reset()
	}
	h.mem.Reset()
	h.combined = CombinedStats{}
}

// Access routes one address through L1 -> L2 -> Memory, per spec.md
// §4.4's state machine, accumulating latency and the data path along the
// way.
func (h *Hierarchy) Access(address uint32, isWrite bool) AccessResult {
	var result AccessResult
	h.combined.TotalAccesses++

	if h.l1 != nil {
		result.DataPath = append(result.DataPath, StageL1)
		r := h.l1.Access(address, isWrite)
		r.Level = cache.L1
		result.TotalLatencyCycles += L1HitCycles
		if r.Hit {
			result.L1 = &r
			h.combined.Hits++
			return result
		}
		result.L1 = &r
	}

	if h.l2 != nil {
		result.DataPath = append(result.DataPath, StageL2)
		r := h.l2.Access(address, isWrite)
		r.Level = cache.L2
		result.TotalLatencyCycles += L2HitCycles
		if r.Hit {
			result.L2 = &r
			h.combined.Hits++
			return result
		}
		result.L2 = &r
	}

	result.DataPath = append(result.DataPath, StageMemory)
	if result.L1 != nil {
		result.L1.MemoryAccessed = true
	}
	if result.L2 != nil {
		result.L2.MemoryAccessed = true
	}

	memResult := h.mem.Access(uint64(address), isWrite, h.blockSize)
	result.Memory = &memResult
	result.TotalLatencyCycles += memResult.LatencyCycles
	h.combined.Misses++

	return result
}
