// Package main provides the entry point for compare.
// compare replays one trace through a list of named hierarchy
// configurations loaded from a JSON file and reports per-configuration
// statistics plus the winner on each metric.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/comparison"
	"github.com/sarchlab/cachesim/hierarchy"
	"github.com/sarchlab/cachesim/memory"
	"github.com/sarchlab/cachesim/trace"
)

var (
	configsPath = flag.String("configs", "", "Path to a JSON file listing named hierarchy configurations")
	hitTimeL1   = flag.Float64("l1-hit-time", 1, "L1 hit time in cycles, used for AMAT")
	hitTimeL2   = flag.Float64("l2-hit-time", 10, "L2 hit time in cycles, used for AMAT")
)

// namedConfigFile mirrors comparison.NamedConfig with JSON tags, since
// hierarchy.Config itself carries no tags (it is never serialized by
// the core, only constructed programmatically).
type namedConfigFile struct {
	Name string `json:"name"`
	L1   struct {
		CacheSizeBytes    int    `json:"cache_size_bytes"`
		BlockSizeBytes    int    `json:"block_size_bytes"`
		Associativity     int    `json:"associativity"`
		ReplacementPolicy string `json:"replacement_policy"`
	} `json:"l1"`
	L2 struct {
		CacheSizeBytes    int    `json:"cache_size_bytes"`
		BlockSizeBytes    int    `json:"block_size_bytes"`
		Associativity     int    `json:"associativity"`
		ReplacementPolicy string `json:"replacement_policy"`
	} `json:"l2"`
	L2Enabled bool `json:"l2_enabled"`
}

func main() {
	flag.Parse()

	if flag.NArg() < 1 || *configsPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: compare -configs <configs.json> <trace-file>\n\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	configs, err := loadConfigs(*configsPath)
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

	memConfig := memory.DefaultConfig()

	results, winners, err := comparison.Run(parsed.Accesses, configs, memConfig, *hitTimeL1, *hitTimeL2)
	if err != nil {
		fatal(err)
	}
	if len(results) == 0 {
		fmt.Println("no trace loaded or no configurations given")
		return
	}

	for i, r := range results {
		marker := " "
		if i == winners.HighestCombinedHitRate || i == winners.LowestAMAT || i == winners.LowestTotalCycles {
			marker = "*"
		}
		fmt.Printf("%s %-20s hitRate=%.4f AMAT=%.4f cycles=%d\n", marker, r.Name, r.CombinedHitRate, r.AMAT, r.TotalLatencyCycles)
	}
	fmt.Printf("\nwinner (hit rate): %s\n", results[winners.HighestCombinedHitRate].Name)
	fmt.Printf("winner (AMAT):     %s\n", results[winners.LowestAMAT].Name)
	fmt.Printf("winner (cycles):   %s\n", results[winners.LowestTotalCycles].Name)
}

func loadConfigs(path string) ([]comparison.NamedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configs file: %w", err)
	}

	var raw []namedConfigFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing configs file: %w", err)
	}

	out := make([]comparison.NamedConfig, len(raw))
	for i, r := range raw {
		l1Policy, err := parsePolicyName(r.L1.ReplacementPolicy)
		if err != nil {
			return nil, err
		}
		l2Policy, err := parsePolicyName(r.L2.ReplacementPolicy)
		if err != nil {
			return nil, err
		}

		out[i] = comparison.NamedConfig{
			Name: r.Name,
			Config: hierarchy.Config{
				L1:      cacheConfigFrom(r.L1.CacheSizeBytes, r.L1.BlockSizeBytes, r.L1.Associativity, l1Policy),
				L2:      cacheConfigFrom(r.L2.CacheSizeBytes, r.L2.BlockSizeBytes, r.L2.Associativity, l2Policy),
				Enabled: hierarchy.EnabledLevels{L1: true, L2: r.L2Enabled},
			},
		}
	}
	return out, nil
}

func cacheConfigFrom(sizeBytes, blockBytes, assoc int, policy cache.ReplacementPolicy) cache.Config {
	return cache.Config{
		CacheSizeBytes:    sizeBytes,
		BlockSizeBytes:    blockBytes,
		Associativity:     assoc,
		ReplacementPolicy: policy,
	}
}

func parsePolicyName(name string) (cache.ReplacementPolicy, error) {
	switch strings.ToUpper(name) {
	case "", "LRU":
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

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
