// Package cache implements a single configurable cache level: address
// decomposition, block/set storage, pluggable replacement policies, and
// hit/miss/writeback accounting. It never stores or transfers data
// payloads — only the address-level metadata an access-stream simulator
// needs (see spec.md §3's Access{address, is_write} data model).
package cache

import "math/rand/v2"

// Level identifies which level of a hierarchy produced an AccessResult.
type Level int

const (
	// LevelNone is the zero value, meaning "not yet assigned a level"
	// (used by a standalone Cache outside a Hierarchy).
	LevelNone Level = iota
	// L1 identifies the first cache level.
	L1
	// L2 identifies the second cache level.
	L2
)

// String returns the human-readable level name.
func (l Level) String() string {
	switch l {
	case L1:
		return "L1"
	case L2:
		return "L2"
	default:
		return "None"
	}
}

// AccessResult reports the outcome of one cache access at one level.
type AccessResult struct {
	Hit            bool
	SetIndex       uint32
	WayIndex       int
	Tag            uint32
	Evicted        bool
	EvictedTag     uint32
	Level          Level
	MemoryAccessed bool
}

// Stats holds cache performance counters. HitRate is derived, never
// cached, to avoid staleness after a partial update.
type Stats struct {
	Hits          uint64
	Misses        uint64
	TotalAccesses uint64
	Writebacks    uint64
}

// HitRate returns Hits/TotalAccesses, or 0 when TotalAccesses is 0.
func (s Stats) HitRate() float64 {
	if s.TotalAccesses == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.TotalAccesses)
}

// MissRate returns 1-HitRate. A cache with zero accesses is defined to
// have a miss rate of 1 (spec.md §4.8).
func (s Stats) MissRate() float64 {
	if s.TotalAccesses == 0 {
		return 1
	}
	return 1 - s.HitRate()
}

// Cache is a single, fully self-contained cache level.
type Cache struct {
	config   Config
	geometry Geometry
	sets     []Set
	stats    Stats
	counter  uint64
	rng      *rand.Rand
}

// New builds a Cache from config, validating its geometry invariants.
// Returns ErrConfigInvalid if the geometry is not constructible, or
// ErrUnknownPolicy for a replacement policy outside the known set.
func New(config Config) (*Cache, error) {
	return NewSeeded(config, 0, 0)
}

// NewSeeded builds a Cache whose RANDOM-policy victim selection is driven
// by a seeded, non-global PRNG (spec.md §5's "never a process-wide,
// uncontrolled source"). seed1/seed2 are the two halves of a PCG seed;
// pass any fixed pair for reproducible test runs.
func NewSeeded(config Config, seed1, seed2 uint64) (*Cache, error) {
	geometry, err := deriveGeometry(config)
	if err != nil {
		return nil, err
	}

	sets := make([]Set, geometry.NumSets)
	for i := range sets {
		sets[i] = newSet(config.Associativity)
	}

	return &Cache{
		config:   config,
		geometry: geometry,
		sets:     sets,
		rng:      rand.New(rand.NewPCG(seed1, seed2)),
	}, nil
}

// Config returns the cache's configuration.
func (c *Cache) Config() Config { return c.config }

// Geometry returns the cache's derived geometry.
func (c *Cache) Geometry() Geometry { return c.geometry }

// Stats returns a snapshot of the cache's statistics.
func (c *Cache) Stats() Stats { return c.stats }

// Sets returns a deep copy of every set, for visualization or testing.
func (c *Cache) Sets() []Set {
	out := make([]Set, len(c.sets))
	for i := range c.sets {
		out[i] = c.sets[i].clone()
	}
	return out
}

// Reset zeroes the access counter and stats, and returns every block to
// the fresh-block state, without reallocating any storage.
func (c *Cache) Reset() {
	c.counter = 0
	c.stats = Stats{}
	for i := range c.sets {
		c.sets[i].reset()
	}
}

// Access performs one cache lookup, installing or evicting as needed.
// Access never fails; it is total over every 32-bit address.
func (c *Cache) Access(address uint32, isWrite bool) AccessResult {
	c.counter++
	c.stats.TotalAccesses++

	tag, index, _ := c.geometry.Decompose(address)
	set := c.sets[index]

	if way := set.findTag(tag); way >= 0 {
		c.stats.Hits++
		block := &set.Blocks[way]
		onHit(block, c.config.ReplacementPolicy, c.counter)
		if isWrite && c.config.WritePolicy == WriteBack {
			block.Dirty = true
		}
		return AccessResult{
			Hit:      true,
			SetIndex: index,
			WayIndex: way,
			Tag:      tag,
		}
	}

	c.stats.Misses++
	return c.installMiss(set, index, tag, isWrite)
}

// installMiss selects a victim in set, evicts it if valid, installs the
// new block, and returns the miss result.
func (c *Cache) installMiss(set Set, index, tag uint32, isWrite bool) AccessResult {
	result := AccessResult{Hit: false, SetIndex: index, Tag: tag}

	way := set.findFreeWay()
	if way < 0 {
		way = pickVictim(set, c.config.ReplacementPolicy, c.rng)
	}

	victim := &set.Blocks[way]
	if victim.Valid {
		result.Evicted = true
		result.EvictedTag = victim.Tag
		if victim.Dirty {
			c.stats.Writebacks++
		}
	}

	install(victim, tag, c.counter, isWrite, c.config.WritePolicy)
	result.WayIndex = way
	return result
}
