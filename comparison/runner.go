// Package comparison runs one trace through a list of named hierarchy
// configurations and reports, per configuration, hit/miss/AMAT/latency
// statistics plus which configuration wins on each metric (spec.md
// §4.9).
package comparison

import (
	"github.com/sarchlab/cachesim/hierarchy"
	"github.com/sarchlab/cachesim/memory"
	"github.com/sarchlab/cachesim/trace"
)

// NamedConfig pairs a human-readable label with the hierarchy shape it
// names.
type NamedConfig struct {
	Name   string
	Config hierarchy.Config
}

// Result is one named configuration's outcome after replaying a trace.
type Result struct {
	Name               string
	CombinedStats      hierarchy.CombinedStats
	CombinedHitRate    float64
	AMAT               float64
	TotalLatencyCycles uint64
}

// Winners names, by index into the Results slice returned alongside it,
// which configuration wins each metric. Ties are broken by the lowest
// index in the input list (spec.md §4.9).
type Winners struct {
	HighestCombinedHitRate int
	LowestAMAT             int
	LowestTotalCycles      int
}

// Run replays accesses through every named configuration in configs,
// each against its own fresh Hierarchy sharing memConfig, and reports
// per-configuration results plus the winners across metrics. An empty
// configs or accesses list yields an empty Results slice, not an error
// (spec.md §7: "no trace loaded" is an empty result set).
func Run(accesses []trace.Access, configs []NamedConfig, memConfig memory.Config, l1HitCycles, l2HitCycles float64) ([]Result, Winners, error) {
	if len(configs) == 0 || len(accesses) == 0 {
		return nil, Winners{}, nil
	}

	results := make([]Result, len(configs))
	for i, named := range configs {
		h, err := hierarchy.New(named.Config, memConfig)
		if err != nil {
			return nil, Winners{}, err
		}

		var totalLatency uint64
		for _, a := range accesses {
			r := h.Access(a.Address, a.IsWrite)
			totalLatency += r.TotalLatencyCycles
		}

		results[i] = Result{
			Name:               named.Name,
			CombinedStats:      h.CombinedStats(),
			CombinedHitRate:    combinedHitRate(h),
			AMAT:               h.CalculateAMAT(l1HitCycles, l2HitCycles),
			TotalLatencyCycles: totalLatency,
		}
	}

	return results, winners(results), nil
}

// combinedHitRate applies spec.md §4.9's inclusion-exclusion formula:
// L1_hit_rate + (1-L1_hit_rate)*L2_hit_rate when L2 is enabled, else
// L1's own hit rate (or L2's alone, or 0 if neither level exists).
func combinedHitRate(h *hierarchy.Hierarchy) float64 {
	l1 := h.L1()
	l2 := h.L2()

	switch {
	case l1 != nil && l2 != nil:
		l1Rate := l1.Stats().HitRate()
		l2Rate := l2.Stats().HitRate()
		return l1Rate + (1-l1Rate)*l2Rate
	case l1 != nil:
		return l1.Stats().HitRate()
	case l2 != nil:
		return l2.Stats().HitRate()
	default:
		return 0
	}
}

// winners finds, for each metric, the lowest-index result that attains
// the best value; ties keep the earlier index by construction of the
// strict-improvement scan.
func winners(results []Result) Winners {
	w := Winners{}
	for i := 1; i < len(results); i++ {
		if results[i].CombinedHitRate > results[w.HighestCombinedHitRate].CombinedHitRate {
			w.HighestCombinedHitRate = i
		}
		if results[i].AMAT < results[w.LowestAMAT].AMAT {
			w.LowestAMAT = i
		}
		if results[i].TotalLatencyCycles < results[w.LowestTotalCycles].TotalLatencyCycles {
			w.LowestTotalCycles = i
		}
	}
	return w
}
