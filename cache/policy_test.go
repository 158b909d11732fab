package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/cache"
)

var _ = Describe("Replacement policy selection", func() {
	newFullSet := func(policy cache.ReplacementPolicy) *cache.Cache {
		c, _ := cache.New(cache.Config{
			CacheSizeBytes:    64,
			BlockSizeBytes:    16,
			Associativity:     4,
			ReplacementPolicy: policy,
		})
		// Four distinct tags, installed via misses in way order 0..3.
		for i := 0; i < 4; i++ {
			c.Access(uint32(i)<<6, false)
		}
		return c
	}

	It("LRU evicts the oldest-touched way", func() {
		c := newFullSet(cache.LRU)
		r := c.Access(4<<6, false)
		Expect(r.WayIndex).To(Equal(0))
	})

	It("FIFO evicts the first-installed way", func() {
		c := newFullSet(cache.FIFO)
		r := c.Access(4<<6, false)
		Expect(r.WayIndex).To(Equal(0))
	})

	It("LFU evicts the least-frequently-used way", func() {
		c := newFullSet(cache.LFU)
		r := c.Access(4<<6, false)
		Expect(r.WayIndex).To(Equal(0))
	})

	It("installs access_count=1, not 0, on a fresh block", func() {
		c, _ := cache.New(cache.Config{
			CacheSizeBytes: 64,
			BlockSizeBytes: 16,
			Associativity:  1,
		})
		c.Access(0x00, false)
		Expect(c.Sets()[0].Blocks[0].AccessCount).To(Equal(uint64(1)))
	})

	It("leaves FIFO insertion_time untouched across repeated hits", func() {
		c, _ := cache.New(cache.Config{
			CacheSizeBytes:    64,
			BlockSizeBytes:    16,
			Associativity:     1,
			ReplacementPolicy: cache.FIFO,
		})
		c.Access(0x00, false)
		inserted := c.Sets()[0].Blocks[0].InsertionTime
		c.Access(0x00, false)
		c.Access(0x00, false)
		Expect(c.Sets()[0].Blocks[0].InsertionTime).To(Equal(inserted))
	})
})
