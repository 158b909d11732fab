package cache

import "math/rand/v2"

// pickVictim returns the way index to evict from a full set (every way
// valid) under the given policy. Ties are broken by lowest way index in
// every policy but RANDOM. Callers must only call this when the set has no
// free way; use Set.findFreeWay first.
func pickVictim(s Set, policy ReplacementPolicy, rng *rand.Rand) int {
	switch policy {
	case LRU:
		return indexOfMin(s, func(b Block) uint64 { return b.LastAccessTime })
	case FIFO:
		return indexOfMin(s, func(b Block) uint64 { return b.InsertionTime })
	case LFU:
		return lfuVictim(s)
	case RANDOM:
		return rng.IntN(len(s.Blocks))
	default:
		return indexOfMin(s, func(b Block) uint64 { return b.LastAccessTime })
	}
}

// indexOfMin returns the lowest index whose key(block) is minimal,
// breaking ties by lowest index (the natural result of scanning
// left-to-right and only replacing on strict improvement).
func indexOfMin(s Set, key func(Block) uint64) int {
	best := 0
	bestKey := key(s.Blocks[0])
	for i := 1; i < len(s.Blocks); i++ {
		k := key(s.Blocks[i])
		if k < bestKey {
			best = i
			bestKey = k
		}
	}
	return best
}

// lfuVictim implements LFU's two-level tie-break: fewest accesses, then
// oldest last-access time, then lowest way index.
func lfuVictim(s Set) int {
	best := 0
	for i := 1; i < len(s.Blocks); i++ {
		b, cur := s.Blocks[i], s.Blocks[best]
		if b.AccessCount < cur.AccessCount {
			best = i
			continue
		}
		if b.AccessCount == cur.AccessCount && b.LastAccessTime < cur.LastAccessTime {
			best = i
		}
	}
	return best
}

// onHit applies the policy-specific bookkeeping update for a way that was
// just accessed and found valid with a matching tag.
func onHit(b *Block, policy ReplacementPolicy, now uint64) {
	switch policy {
	case LRU:
		b.LastAccessTime = now
	case LFU:
		b.AccessCount++
		b.LastAccessTime = now
	case FIFO, RANDOM:
		// no timestamp updates
	}
}

// install overwrites a victim block (valid or not) with a freshly-fetched
// block for tag, per spec.md §4.2's install semantics: insertion_time and
// last_access_time are stamped to now, access_count resets to 1 (the
// installing access itself), and dirty is set only for a write-back write.
func install(b *Block, tag uint32, now uint64, isWrite bool, writePolicy WritePolicy) {
	b.Valid = true
	b.Tag = tag
	b.InsertionTime = now
	b.LastAccessTime = now
	b.AccessCount = 1
	b.Dirty = isWrite && writePolicy == WriteBack
}
