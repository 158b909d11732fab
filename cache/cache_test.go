package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/cache"
)

var _ = Describe("Cache", func() {
	Describe("direct-mapped conflict", func() {
		// 64B, 1 way, 16B blocks -> 4 sets. 0x000 and 0x040 both map
		// to set 0 with distinct tags.
		It("misses on every access and keeps only the last tag", func() {
			c, err := cache.New(cache.Config{
				CacheSizeBytes: 64,
				BlockSizeBytes: 16,
				Associativity:  1,
			})
			Expect(err).NotTo(HaveOccurred())

			r1 := c.Access(0x000, false)
			r2 := c.Access(0x040, false)
			r3 := c.Access(0x000, false)

			Expect(r1.Hit).To(BeFalse())
			Expect(r2.Hit).To(BeFalse())
			Expect(r3.Hit).To(BeFalse())

			sets := c.Sets()
			block := sets[0].Blocks[0]
			Expect(block.Valid).To(BeTrue())
			tag, _, _ := c.Geometry().Decompose(0x000)
			Expect(block.Tag).To(Equal(tag))

			Expect(c.Stats().Writebacks).To(Equal(uint64(0)))
		})
	})

	Describe("LRU retains the hot block", func() {
		// 128B, 2 ways, 16B blocks -> 4 sets; all addresses in set 0.
		It("evicts the least recently used way, not the most recent hit", func() {
			c, _ := cache.New(cache.Config{
				CacheSizeBytes:    128,
				BlockSizeBytes:    16,
				Associativity:     2,
				ReplacementPolicy: cache.LRU,
			})

			c.Access(0x00, false) // miss, way 0
			c.Access(0x40, false) // miss, way 1
			r3 := c.Access(0x00, false) // hit
			r4 := c.Access(0x80, false) // miss, evicts 0x40

			Expect(r3.Hit).To(BeTrue())
			Expect(r4.Hit).To(BeFalse())
			Expect(r4.Evicted).To(BeTrue())

			tag40, _, _ := c.Geometry().Decompose(0x40)
			Expect(r4.EvictedTag).To(Equal(tag40))

			Expect(c.Stats().HitRate()).To(Equal(0.25))
		})
	})

	Describe("FIFO vs LRU divergence", func() {
		baseConfig := func(policy cache.ReplacementPolicy) cache.Config {
			return cache.Config{
				CacheSizeBytes:    128,
				BlockSizeBytes:    16,
				Associativity:     2,
				ReplacementPolicy: policy,
			}
		}

		It("FIFO evicts the first-inserted block even after it was re-hit", func() {
			c, _ := cache.New(baseConfig(cache.FIFO))

			c.Access(0x00, false)
			c.Access(0x40, false)
			c.Access(0x00, false) // hit; FIFO does not touch insertion_time
			r4 := c.Access(0x80, false)

			tag00, _, _ := c.Geometry().Decompose(0x00)
			Expect(r4.EvictedTag).To(Equal(tag00))
		})

		It("LRU evicts the least recently touched block instead", func() {
			c, _ := cache.New(baseConfig(cache.LRU))

			c.Access(0x00, false)
			c.Access(0x40, false)
			c.Access(0x00, false) // hit; refreshes 0x00's recency
			r4 := c.Access(0x80, false)

			tag40, _, _ := c.Geometry().Decompose(0x40)
			Expect(r4.EvictedTag).To(Equal(tag40))
		})
	})

	Describe("LFU protects the frequently accessed block", func() {
		It("evicts the less-frequently-used block over the hot one", func() {
			c, _ := cache.New(cache.Config{
				CacheSizeBytes:    128,
				BlockSizeBytes:    16,
				Associativity:     2,
				ReplacementPolicy: cache.LFU,
			})

			for i := 0; i < 5; i++ {
				c.Access(0x00, false)
			}
			c.Access(0x40, false)
			r := c.Access(0x80, false)

			tag40, _, _ := c.Geometry().Decompose(0x40)
			Expect(r.EvictedTag).To(Equal(tag40))
		})
	})

	Describe("write-back dirty eviction", func() {
		// 32B, 1 way, 16B blocks -> 2 sets, write-back.
		It("counts a writeback only when the evicted block was valid and dirty", func() {
			c, _ := cache.New(cache.Config{
				CacheSizeBytes: 32,
				BlockSizeBytes: 16,
				Associativity:  1,
				WritePolicy:    cache.WriteBack,
			})

			r1 := c.Access(0x00, true) // write miss, installs dirty in set 0
			Expect(r1.Hit).To(BeFalse())

			r2 := c.Access(0x20, false) // maps to set 0, evicts the dirty block
			Expect(r2.Hit).To(BeFalse())
			Expect(r2.Evicted).To(BeTrue())

			Expect(c.Stats().Writebacks).To(Equal(uint64(1)))
		})

		It("never marks a block dirty under write-through", func() {
			c, _ := cache.New(cache.Config{
				CacheSizeBytes: 32,
				BlockSizeBytes: 16,
				Associativity:  1,
				WritePolicy:    cache.WriteThrough,
			})

			c.Access(0x00, true)
			sets := c.Sets()
			Expect(sets[0].Blocks[0].Dirty).To(BeFalse())

			c.Access(0x20, true) // evicts set 0's only block
			Expect(c.Stats().Writebacks).To(Equal(uint64(0)))
		})
	})

	Describe("counting invariants", func() {
		It("keeps hits+misses == total accesses for an arbitrary stream", func() {
			c, _ := cache.New(cache.Config{
				CacheSizeBytes: 256,
				BlockSizeBytes: 16,
				Associativity:  2,
			})

			addrs := []uint32{0x00, 0x10, 0x20, 0x00, 0x30, 0x40, 0x10, 0x50}
			for _, a := range addrs {
				c.Access(a, false)
			}

			stats := c.Stats()
			Expect(stats.Hits + stats.Misses).To(Equal(stats.TotalAccesses))
			Expect(stats.TotalAccesses).To(Equal(uint64(len(addrs))))
		})

		It("never reports duplicate valid tags within a set", func() {
			c, _ := cache.New(cache.Config{
				CacheSizeBytes: 64,
				BlockSizeBytes: 16,
				Associativity:  4,
			})

			for _, a := range []uint32{0x00, 0x10, 0x20, 0x30, 0x40, 0x50} {
				c.Access(a, false)
			}

			for _, set := range c.Sets() {
				seen := map[uint32]bool{}
				for _, b := range set.Blocks {
					if !b.Valid {
						continue
					}
					Expect(seen[b.Tag]).To(BeFalse())
					seen[b.Tag] = true
				}
			}
		})
	})

	Describe("empty and single-access traces", func() {
		It("reports a zero, not NaN, hit rate with no accesses", func() {
			c, _ := cache.New(cache.Config{CacheSizeBytes: 64, BlockSizeBytes: 16, Associativity: 1})
			Expect(c.Stats().HitRate()).To(Equal(0.0))
		})

		It("reports one miss and a zero hit rate after a single access", func() {
			c, _ := cache.New(cache.Config{CacheSizeBytes: 64, BlockSizeBytes: 16, Associativity: 1})
			c.Access(0x00, false)
			Expect(c.Stats().Misses).To(Equal(uint64(1)))
			Expect(c.Stats().HitRate()).To(Equal(0.0))
		})
	})

	Describe("Reset", func() {
		It("restores construction-time behavior regardless of history", func() {
			cfg := cache.Config{CacheSizeBytes: 64, BlockSizeBytes: 16, Associativity: 2}
			c, _ := cache.New(cfg)

			for _, a := range []uint32{0x00, 0x10, 0x20, 0x00} {
				c.Access(a, false)
			}
			c.Reset()

			fresh, _ := cache.New(cfg)
			rReset := c.Access(0x00, false)
			rFresh := fresh.Access(0x00, false)

			Expect(rReset).To(Equal(rFresh))
			Expect(c.Stats()).To(Equal(fresh.Stats()))
		})
	})

	Describe("RANDOM policy", func() {
		It("is reproducible for a given seed", func() {
			cfg := cache.Config{
				CacheSizeBytes:    64,
				BlockSizeBytes:    16,
				Associativity:     4,
				ReplacementPolicy: cache.RANDOM,
			}
			c1, _ := cache.NewSeeded(cfg, 1, 2)
			c2, _ := cache.NewSeeded(cfg, 1, 2)

			addrs := []uint32{0x00, 0x10, 0x20, 0x30, 0x40, 0x50, 0x60}
			var got1, got2 []cache.AccessResult
			for _, a := range addrs {
				got1 = append(got1, c1.Access(a, false))
				got2 = append(got2, c2.Access(a, false))
			}
			Expect(got1).To(Equal(got2))
		})
	})
})
