// Package optimizer sweeps a cartesian product of candidate cache
// configurations against a fixed trace and scores each one, replaying a
// fresh, independent engine per candidate (spec.md §4.7). Candidates are
// embarrassingly parallel: each worker owns its own cache/hierarchy,
// its own memory model, and its own random source, so results are
// reproducible regardless of how many workers run concurrently
// (spec.md §5).
package optimizer

import (
	"context"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/hierarchy"
	"github.com/sarchlab/cachesim/memory"
	"github.com/sarchlab/cachesim/trace"
)

// SingleLevelSweepConfig describes the cartesian product of candidate
// single-level cache configurations to evaluate, and the timing
// constants used to score them.
type SingleLevelSweepConfig struct {
	CacheSizesBytes []int
	BlockSizesBytes []int
	Associativities []int
	Policies        []cache.ReplacementPolicy
	WritePolicy     cache.WritePolicy

	HitTimeCycles       float64
	MemoryPenaltyCycles float64

	// Seed1/Seed2 seed every candidate's RANDOM-policy PRNG identically;
	// determinism across runs follows from every candidate starting from
	// the same seed and replaying the same trace.
	Seed1, Seed2 uint64
}

// OptimizationResult is one scored candidate from a single-level sweep.
type OptimizationResult struct {
	Config cache.Config
	Stats  cache.Stats
	AMAT   float64
	Score  float64
}

// costFactor implements spec.md §4.7's cost penalty: log2(total_size_kb)
// scaled by 0.1 for a single level or 0.05 across two.
func costFactor(totalSizeKB float64, multiLevel bool) float64 {
	if totalSizeKB <= 0 {
		return 0
	}
	k := 0.1
	if multiLevel {
		k = 0.05
	}
	return math.Log2(totalSizeKB) * k
}

// singleLevelCandidates expands cfg's cartesian product, filtering out
// any combination where cache_size/block_size < associativity (spec.md
// §4.7); cache.NewSeeded filters the remaining geometry invariants.
func singleLevelCandidates(cfg SingleLevelSweepConfig) []cache.Config {
	var candidates []cache.Config
	for _, size := range cfg.CacheSizesBytes {
		for _, block := range cfg.BlockSizesBytes {
			if block <= 0 || size/block == 0 {
				continue
			}
			for _, assoc := range cfg.Associativities {
				if assoc <= 0 || size/block < assoc {
					continue
				}
				for _, policy := range cfg.Policies {
					candidates = append(candidates, cache.Config{
						CacheSizeBytes:    size,
						BlockSizeBytes:    block,
						Associativity:     assoc,
						ReplacementPolicy: policy,
						WritePolicy:       cfg.WritePolicy,
					})
				}
			}
		}
	}
	return candidates
}

// RunSingleLevelSweep evaluates every candidate in cfg's space against
// accesses, replaying a fresh cache per candidate, and returns all
// results sorted by score descending. Candidates that fail construction
// (an invalid geometry) are skipped silently, never entering the result
// list (spec.md §7).
func RunSingleLevelSweep(ctx context.Context, accesses []trace.Access, cfg SingleLevelSweepConfig) ([]OptimizationResult, error) {
	candidates := singleLevelCandidates(cfg)
	if len(candidates) == 0 {
		return nil, ErrNoValidConfigurations
	}

	slots := make([]*OptimizationResult, len(candidates))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, candidate := range candidates {
		i, candidate := i, candidate
		group.Go(func() error {
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			default:
			}

			c, err := cache.NewSeeded(candidate, cfg.Seed1, cfg.Seed2)
			if err != nil {
				return nil
			}
			for _, a := range accesses {
				c.Access(a.Address, a.IsWrite)
			}

			amat := c.CalculateAMAT(cfg.HitTimeCycles, cfg.MemoryPenaltyCycles)
			totalKB := float64(candidate.CacheSizeBytes) / 1024
			score := (1 / amat) * (1 / (1 + costFactor(totalKB, false)))

			slots[i] = &OptimizationResult{Config: candidate, Stats: c.Stats(), AMAT: amat, Score: score}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	out := collectResults(slots)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

func collectResults(slots []*OptimizationResult) []OptimizationResult {
	out := make([]OptimizationResult, 0, len(slots))
	for _, s := range slots {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}

// LevelVariant is one candidate shape for a single level of a two-level
// hierarchy sweep.
type LevelVariant struct {
	CacheSizeBytes int
	BlockSizeBytes int
	Associativity  int
	Policy         cache.ReplacementPolicy
	WritePolicy    cache.WritePolicy
}

func (v LevelVariant) toConfig() cache.Config {
	return cache.Config{
		CacheSizeBytes:    v.CacheSizeBytes,
		BlockSizeBytes:    v.BlockSizeBytes,
		Associativity:     v.Associativity,
		ReplacementPolicy: v.Policy,
		WritePolicy:       v.WritePolicy,
	}
}

// MultiLevelSweepConfig describes the cartesian product of L1/L2
// variants to evaluate as two-level hierarchies.
type MultiLevelSweepConfig struct {
	L1Variants   []LevelVariant
	L2Variants   []LevelVariant
	MemoryConfig memory.Config

	L1HitTimeCycles float64
	L2HitTimeCycles float64

	Seed1, Seed2 uint64
}

// MultiLevelOptimizationResult is one scored candidate from a
// multi-level sweep.
type MultiLevelOptimizationResult struct {
	L1Config      cache.Config
	L2Config      cache.Config
	CombinedStats hierarchy.CombinedStats
	AMAT          float64
	Score         float64
}

// multiLevelCandidates expands cfg's cartesian product of L1/L2 shapes,
// enforcing l2_size > l1_size strictly (spec.md §4.7).
func multiLevelCandidates(cfg MultiLevelSweepConfig) []hierarchy.Config {
	var out []hierarchy.Config
	for _, l1 := range cfg.L1Variants {
		if l1.Associativity <= 0 || l1.BlockSizeBytes <= 0 || l1.CacheSizeBytes/l1.BlockSizeBytes < l1.Associativity {
			continue
		}
		for _, l2 := range cfg.L2Variants {
			if l2.Associativity <= 0 || l2.BlockSizeBytes <= 0 || l2.CacheSizeBytes/l2.BlockSizeBytes < l2.Associativity {
				continue
			}
			if l2.CacheSizeBytes <= l1.CacheSizeBytes {
				continue
			}
			out = append(out, hierarchy.Config{
				L1:      l1.toConfig(),
				L2:      l2.toConfig(),
				Enabled: hierarchy.EnabledLevels{L1: true, L2: true},
			})
		}
	}
	return out
}

// RunMultiLevelSweep evaluates every candidate two-level hierarchy in
// cfg's space against accesses, replaying a fresh hierarchy per
// candidate, and returns all results sorted by score descending.
func RunMultiLevelSweep(ctx context.Context, accesses []trace.Access, cfg MultiLevelSweepConfig) ([]MultiLevelOptimizationResult, error) {
	candidates := multiLevelCandidates(cfg)
	if len(candidates) == 0 {
		return nil, ErrNoValidConfigurations
	}

	slots := make([]*MultiLevelOptimizationResult, len(candidates))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, candidate := range candidates {
		i, candidate := i, candidate
		group.Go(func() error {
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			default:
			}

			h, err := hierarchy.NewSeeded(candidate, cfg.MemoryConfig, cfg.Seed1, cfg.Seed2)
			if err != nil {
				return nil
			}
			for _, a := range accesses {
				h.Access(a.Address, a.IsWrite)
			}

			amat := h.CalculateAMAT(cfg.L1HitTimeCycles, cfg.L2HitTimeCycles)
			totalKB := float64(candidate.L1.CacheSizeBytes+candidate.L2.CacheSizeBytes) / 1024
			score := (1 / amat) * (1 / (1 + costFactor(totalKB, true)))

			slots[i] = &MultiLevelOptimizationResult{
				L1Config:      candidate.L1,
				L2Config:      candidate.L2,
				CombinedStats: h.CombinedStats(),
				AMAT:          amat,
				Score:         score,
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	out := make([]MultiLevelOptimizationResult, 0, len(slots))
	for _, s := range slots {
		if s != nil {
			out = append(out, *s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}
