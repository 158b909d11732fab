package memory

// NumRegions is the fixed number of heat-map regions every Memory keeps
// (spec.md §3).
const NumRegions = 16

// Region is one slice of the observed address range, with its own access
// counters. Region boundaries are recomputed on every access to track the
// min/max addresses seen so far (spec.md §4.5 step 2); only the snapshot
// taken right after an access is authoritative (spec.md §9).
type Region struct {
	StartAddress   uint64
	EndAddress     uint64
	AccessCount    uint64
	ReadCount      uint64
	WriteCount     uint64
	LastAccessTime uint64
}
