// Package main provides the entry point for gentrace.
// gentrace emits a cache-aware synthetic access trace in the plain-text
// format cachesim, sweep, and compare all read, or lists the available
// generator patterns with their documentation contract.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/sarchlab/cachesim/trace"
)

var (
	list = flag.Bool("list", false, "List available generator patterns and exit")

	pattern = flag.String("pattern", "sequential", "Generator pattern to use")
	count   = flag.Int("count", 1000, "Number of accesses to generate")
	base    = flag.Uint64("base", 0, "Base address")
	stress  = flag.String("stress", "Moderate", "Stress level: Light, Moderate, Heavy, Extreme")

	l1Size   = flag.Int("l1-size", 32*1024, "L1 size in bytes, used to calibrate working-set sizing")
	blockSz  = flag.Int("block", 64, "Block size in bytes")
	numSets  = flag.Int("sets", 64, "Number of sets, used by the Strided pattern")
	assoc    = flag.Int("assoc", 8, "Associativity hint")
	stride   = flag.Int("stride", 0, "User-specified stride, used by Sequential")
	zipfN    = flag.Int("zipf-n", 256, "Number of distinct items, used by Zipfian")
	zipfSkew = flag.Float64("zipf-skew", 1.0, "Skew parameter, used by Zipfian")

	seed1 = flag.Uint64("seed1", 1, "First half of the PRNG seed, used by Random and Zipfian")
	seed2 = flag.Uint64("seed2", 2, "Second half of the PRNG seed, used by Random and Zipfian")
)

func parseStress(name string) (trace.StressLevel, error) {
	switch strings.ToUpper(name) {
	case "LIGHT":
		return trace.Light, nil
	case "MODERATE":
		return trace.Moderate, nil
	case "HEAVY":
		return trace.Heavy, nil
	case "EXTREME":
		return trace.Extreme, nil
	default:
		return 0, fmt.Errorf("unknown stress level %q", name)
	}
}

func main() {
	flag.Parse()

	if *list {
		for _, g := range trace.Generators {
			fmt.Printf("%s\n  description: %s\n  tests:       %s\n  expected:    %s\n  tunings:     %s\n\n",
				g.Name, g.Description, g.Tests, g.Expected, g.Tunings)
		}
		return
	}

	stressLevel, err := parseStress(*stress)
	if err != nil {
		fatal(err)
	}

	hint := trace.GeometryHint{
		L1SizeBytes:    *l1Size,
		BlockSizeBytes: *blockSz,
		NumSets:        *numSets,
		Associativity:  *assoc,
	}
	rng := rand.New(rand.NewPCG(*seed1, *seed2))

	var accesses []trace.Access
	switch strings.ToLower(*pattern) {
	case "sequential":
		accesses = trace.Sequential(uint32(*base), *count, hint, *stride)
	case "random":
		accesses = trace.Random(uint32(*base), *count, hint, stressLevel, rng)
	case "strided":
		accesses = trace.Strided(uint32(*base), *count, hint, stressLevel)
	case "temporal":
		accesses = trace.Temporal(uint32(*base), *count, hint, stressLevel)
	case "workingset":
		accesses = trace.WorkingSet(uint32(*base), *count, hint, stressLevel)
	case "thrashing":
		accesses = trace.Thrashing(uint32(*base), *count, hint, stressLevel)
	case "lrukiller":
		accesses = trace.LRUKiller(uint32(*base), *count, stressLevel)
	case "zipfian":
		accesses = trace.Zipfian(uint32(*base), *count, *zipfN, *zipfSkew, hint, rng)
	case "scanreuse":
		accesses = trace.ScanReuse(uint32(*base), *count, hint, stressLevel)
	default:
		fatal(fmt.Errorf("unknown pattern %q; run with -list to see available patterns", *pattern))
	}

	for _, a := range accesses {
		dir := "R"
		if a.IsWrite {
			dir = "W"
		}
		fmt.Printf("%s 0x%08X\n", dir, a.Address)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
