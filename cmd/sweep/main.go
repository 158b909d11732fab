// Package main provides the entry point for sweep.
// sweep runs a cartesian-product parameter search over candidate
// single-level cache configurations against a fixed trace, and prints
// the results ranked by score.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/optimizer"
	"github.com/sarchlab/cachesim/trace"
)

var (
	sizes    = flag.String("sizes", "1024,2048,4096,8192", "Comma-separated candidate cache sizes in bytes")
	blocks   = flag.String("blocks", "16,32,64", "Comma-separated candidate block sizes in bytes")
	assocs   = flag.String("assocs", "1,2,4,8", "Comma-separated candidate associativities")
	policies = flag.String("policies", "LRU,FIFO,LFU,RANDOM", "Comma-separated candidate replacement policies")

	hitTime    = flag.Float64("hit-time", 1, "L1 hit time in cycles, used for AMAT")
	memPenalty = flag.Float64("mem-penalty", 100, "Memory access penalty in cycles, used for AMAT")

	seed1 = flag.Uint64("seed1", 1, "First half of the RANDOM-policy PRNG seed")
	seed2 = flag.Uint64("seed2", 2, "Second half of the RANDOM-policy PRNG seed")

	top = flag.Int("top", 10, "Number of top-scoring results to print (0 prints all)")
)

func parseInts(csv string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(csv, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", field, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func parsePolicies(csv string) ([]cache.ReplacementPolicy, error) {
	var out []cache.ReplacementPolicy
	for _, field := range strings.Split(csv, ",") {
		field = strings.TrimSpace(strings.ToUpper(field))
		switch field {
		case "":
			continue
		case "LRU":
			out = append(out, cache.LRU)
		case "FIFO":
			out = append(out, cache.FIFO)
		case "LFU":
			out = append(out, cache.LFU)
		case "RANDOM":
			out = append(out, cache.RANDOM)
		default:
			return nil, fmt.Errorf("unknown replacement policy %q", field)
		}
	}
	return out, nil
}

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: sweep [options] <trace-file>\n\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	sizeList, err := parseInts(*sizes)
	if err != nil {
		fatal(err)
	}
	blockList, err := parseInts(*blocks)
	if err != nil {
		fatal(err)
	}
	assocList, err := parseInts(*assocs)
	if err != nil {
		fatal(err)
	}
	policyList, err := parsePolicies(*policies)
	if err != nil {
		fatal(err)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fatal(err)
	}
	defer f.Close()

	parsed, err := trace.Parse(f)
	if err != nil {
		fatal(err)
	}
	if parsed.Skipped > 0 {
		fmt.Fprintf(os.Stderr, "Warning: skipped %d malformed trace line(s)\n", parsed.Skipped)
	}

	cfg := optimizer.SingleLevelSweepConfig{
		CacheSizesBytes:     sizeList,
		BlockSizesBytes:     blockList,
		Associativities:     assocList,
		Policies:            policyList,
		HitTimeCycles:       *hitTime,
		MemoryPenaltyCycles: *memPenalty,
		Seed1:               *seed1,
		Seed2:               *seed2,
	}

	results, err := optimizer.RunSingleLevelSweep(context.Background(), parsed.Accesses, cfg)
	if err != nil {
		fatal(err)
	}

	limit := len(results)
	if *top > 0 && *top < limit {
		limit = *top
	}
	for i := 0; i < limit; i++ {
		r := results[i]
		fmt.Printf("%2d. size=%-6d block=%-4d assoc=%-3d policy=%-7s AMAT=%.4f score=%.6f\n",
			i+1, r.Config.CacheSizeBytes, r.Config.BlockSizeBytes, r.Config.Associativity,
			r.Config.ReplacementPolicy, r.AMAT, r.Score)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
