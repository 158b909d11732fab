package memory

// historyCapacity bounds the rolling access-history buffer (spec.md §4.5
// step 8); the oldest entry is evicted first once full.
const historyCapacity = 1000

// AccessResult reports the outcome of one main-memory access.
type AccessResult struct {
	WrappedAddress   uint64
	IsWrite          bool
	RegionIndex      int
	BytesTransferred uint64
	LatencyCycles    uint64
}

// Stats holds aggregate main-memory performance figures.
type Stats struct {
	TotalReads              uint64
	TotalWrites             uint64
	TotalAccesses           uint64
	BytesTransferred        uint64
	AverageLatency          float64
	BandwidthUtilizationPct float64
	PeakBandwidthMBs        float64
	EffectiveBandwidthMBs   float64
}

// Memory is a scalar-latency main-memory model with a dynamic 16-region
// address heat map and a bounded access history.
type Memory struct {
	config      Config
	sizeBytes   uint64
	regions     [NumRegions]Region
	minSeen     uint64
	maxSeen     uint64
	seenAny     bool
	cycle       uint64
	totalCycles uint64
	stats       Stats
	history     []AccessResult
}

// New builds a Memory model from config. config is assumed already
// validated via Config.Validate; New itself never fails, matching
// spec.md §7's "MemoryOutOfRange is impossible by construction".
func New(config Config) *Memory {
	m := &Memory{config: config}
	m.sizeBytes = uint64(config.SizeMB) * 1024 * 1024
	m.stats.PeakBandwidthMBs = m.peakBandwidth()
	return m
}

// Config returns the memory's configuration.
func (m *Memory) Config() Config { return m.config }

// Stats returns a snapshot of the memory's statistics.
func (m *Memory) Stats() Stats { return m.stats }

// Regions returns a copy of the 16 heat-map regions.
func (m *Memory) Regions() [NumRegions]Region { return m.regions }

// History returns a copy of the bounded access-history buffer,
// oldest-first.
func (m *Memory) History() []AccessResult {
	out := make([]AccessResult, len(m.history))
	copy(out, m.history)
	return out
}

func ceilDiv(a, b uint64) uint64 {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

// Access simulates one main-memory access for addr, wrapping it into the
// physical address space, updating the heat map, and returning the
// access's cost. blockSize is the transfer unit requested by the caller
// (spec.md §4.5).
func (m *Memory) Access(addr uint64, isWrite bool, blockSize int) AccessResult {
	m.cycle++

	wrapped := addr % m.sizeBytes
	if !m.seenAny {
		m.minSeen, m.maxSeen = wrapped, wrapped
		m.seenAny = true
	} else {
		if wrapped < m.minSeen {
			m.minSeen = wrapped
		}
		if wrapped > m.maxSeen {
			m.maxSeen = wrapped
		}
	}

	regionSize := ceilDiv(m.maxSeen-m.minSeen+1, NumRegions)
	if regionSize == 0 {
		regionSize = 1
	}
	for i := 0; i < NumRegions; i++ {
		start := m.minSeen + uint64(i)*regionSize
		m.regions[i].StartAddress = start
		m.regions[i].EndAddress = start + regionSize - 1
	}

	regionIdx := int((wrapped - m.minSeen) / regionSize)
	if regionIdx >= NumRegions {
		regionIdx = NumRegions - 1
	}

	region := &m.regions[regionIdx]
	region.AccessCount++
	if isWrite {
		region.WriteCount++
		m.stats.TotalWrites++
	} else {
		region.ReadCount++
		m.stats.TotalReads++
	}
	region.LastAccessTime = m.cycle

	busBytes := uint64(m.config.BusWidthBits) / 8
	transfer := busBytes * uint64(m.config.BurstLength)
	if uint64(blockSize) > transfer {
		transfer = uint64(blockSize)
	}
	latency := m.config.LatencyCycles + ceilDiv(transfer, busBytes)

	m.stats.TotalAccesses++
	m.stats.BytesTransferred += transfer
	m.totalCycles += latency

	// Welford-style single-pass running mean over memory accesses only
	// (spec.md §9's resolution of the "average latency formula" open
	// question).
	n := float64(m.stats.TotalAccesses)
	m.stats.AverageLatency += (float64(latency) - m.stats.AverageLatency) / n

	m.stats.PeakBandwidthMBs = m.peakBandwidth()
	if m.totalCycles > 0 {
		m.stats.EffectiveBandwidthMBs = (float64(m.stats.BytesTransferred) / float64(m.totalCycles)) * m.config.FrequencyMHz
	}
	if m.stats.PeakBandwidthMBs > 0 {
		m.stats.BandwidthUtilizationPct = 100 * m.stats.EffectiveBandwidthMBs / m.stats.PeakBandwidthMBs
	}

	result := AccessResult{
		WrappedAddress:   wrapped,
		IsWrite:          isWrite,
		RegionIndex:      regionIdx,
		BytesTransferred: transfer,
		LatencyCycles:    latency,
	}
	m.pushHistory(result)
	return result
}

// pushHistory appends r to the bounded history ring, evicting the oldest
// entry once at capacity.
func (m *Memory) pushHistory(r AccessResult) {
	if len(m.history) >= historyCapacity {
		m.history = append(m.history[1:], r)
		return
	}
	m.history = append(m.history, r)
}

// peakBandwidth computes (bus_width_bits * frequency_mhz * k) / 8000,
// k=2 for DDR* memory types, else 1 (spec.md §4.5 step 7).
func (m *Memory) peakBandwidth() float64 {
	k := 1.0
	if m.config.MemoryType.isDDR() {
		k = 2.0
	}
	return (float64(m.config.BusWidthBits) * m.config.FrequencyMHz * k) / 8000
}

// Reset clears all statistics and history, zero-initializes region
// boundaries and counters, and recomputes peak bandwidth, so a fresh,
// unaccessed memory reports empty regions.
func (m *Memory) Reset() {
	m.cycle = 0
	m.totalCycles = 0
	m.minSeen, m.maxSeen = 0, 0
	m.seenAny = false
	m.regions = [NumRegions]Region{}
	m.stats = Stats{PeakBandwidthMBs: m.peakBandwidth()}
	m.history = nil
}
