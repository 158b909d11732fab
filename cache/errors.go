package cache

import "errors"

// ErrConfigInvalid is returned by New when a CacheConfig violates the
// geometry invariants: sizes not a power of two, the block size larger
// than the cache, or associativity that does not evenly divide the number
// of blocks into a power-of-two set count.
var ErrConfigInvalid = errors.New("cache: invalid configuration")

// ErrUnknownPolicy is returned when a ReplacementPolicy value outside the
// known set (LRU, FIFO, LFU, RANDOM) is used to build a cache.
var ErrUnknownPolicy = errors.New("cache: unknown replacement policy")
