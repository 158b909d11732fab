// Package main provides the entry point for cachesim.
// cachesim replays a plain-text access trace through a one- or
// two-level cache hierarchy and reports hit/miss/AMAT statistics.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/hierarchy"
	"github.com/sarchlab/cachesim/memory"
	"github.com/sarchlab/cachesim/trace"
)

var (
	l1Size   = flag.Int("l1-size", 32*1024, "L1 cache size in bytes")
	l1Block  = flag.Int("l1-block", 64, "L1 block size in bytes")
	l1Assoc  = flag.Int("l1-assoc", 8, "L1 associativity")
	l1Policy = flag.String("l1-policy", "LRU", "L1 replacement policy: LRU, FIFO, LFU, RANDOM")

	l2Enabled = flag.Bool("l2", false, "Enable L2 cache")
	l2Size    = flag.Int("l2-size", 256*1024, "L2 cache size in bytes")
	l2Block   = flag.Int("l2-block", 64, "L2 block size in bytes")
	l2Assoc   = flag.Int("l2-assoc", 8, "L2 associativity")
	l2Policy  = flag.String("l2-policy", "LRU", "L2 replacement policy: LRU, FIFO, LFU, RANDOM")

	memLatency = flag.Uint64("mem-latency", 100, "Main memory latency in cycles")
	memBus     = flag.Int("mem-bus-bits", 64, "Main memory bus width in bits")
	memBurst   = flag.Int("mem-burst", 8, "Main memory burst length")

	seed1 = flag.Uint64("seed1", 1, "First half of the RANDOM-policy PRNG seed")
	seed2 = flag.Uint64("seed2", 2, "Second half of the RANDOM-policy PRNG seed")

	verbose = flag.Bool("v", false, "Print per-access results")
)

func parsePolicy(name string) (cache.ReplacementPolicy, error) {
	switch name {
	case "LRU":
		return cache.LRU, nil
	case "FIFO":
		return cache.FIFO, nil
	case "LFU":
		return cache.LFU, nil
	case "RANDOM":
		return cache.RANDOM, nil
	default:
		return 0, fmt.Errorf("unknown replacement policy %q", name)
	}
}

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: cachesim [options] <trace-file>\n\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	l1PolicyVal, err := parsePolicy(*l1Policy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	l2PolicyVal, err := parsePolicy(*l2Policy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	hierConfig := hierarchy.Config{
		L1: cache.Config{
			CacheSizeBytes:    *l1Size,
			BlockSizeBytes:    *l1Block,
			Associativity:     *l1Assoc,
			ReplacementPolicy: l1PolicyVal,
		},
		L2: cache.Config{
			CacheSizeBytes:    *l2Size,
			BlockSizeBytes:    *l2Block,
			Associativity:     *l2Assoc,
			ReplacementPolicy: l2PolicyVal,
		},
		Enabled: hierarchy.EnabledLevels{L1: true, L2: *l2Enabled},
	}

	memConfig := memory.Config{
		SizeMB:        4096,
		LatencyCycles: *memLatency,
		BusWidthBits:  *memBus,
		FrequencyMHz:  1600,
		MemoryType:    memory.DDR4,
		BurstLength:   *memBurst,
	}

	h, err := hierarchy.NewSeeded(hierConfig, memConfig, *seed1, *seed2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building hierarchy: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening trace: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	parsed, err := trace.Parse(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading trace: %v\n", err)
		os.Exit(1)
	}
	if parsed.Skipped > 0 {
		fmt.Fprintf(os.Stderr, "Warning: skipped %d malformed trace line(s)\n", parsed.Skipped)
	}

	var totalLatency uint64
	for i, a := range parsed.Accesses {
		r := h.Access(a.Address, a.IsWrite)
		totalLatency += r.TotalLatencyCycles
		if *verbose {
			fmt.Printf("#%d addr=0x%08X write=%v path=%v latency=%d\n", i, a.Address, a.IsWrite, r.DataPath, r.TotalLatencyCycles)
		}
	}

	stats := h.CombinedStats()
	fmt.Printf("accesses: %d\n", stats.TotalAccesses)
	fmt.Printf("combined hit rate: %.4f\n", stats.HitRate())
	fmt.Printf("total latency cycles: %d\n", totalLatency)
	fmt.Printf("AMAT: %.4f\n", h.CalculateAMAT(1, 10))
	if h.L1() != nil {
		fmt.Printf("L1: hits=%d misses=%d writebacks=%d\n", h.L1().Stats().Hits, h.L1().Stats().Misses, h.L1().Stats().Writebacks)
	}
	if h.L2() != nil {
		fmt.Printf("L2: hits=%d misses=%d writebacks=%d\n", h.L2().Stats().Hits, h.L2().Stats().Misses, h.L2().Stats().Writebacks)
	}
}
