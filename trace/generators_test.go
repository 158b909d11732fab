package trace_test

import (
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/trace"
)

var _ = Describe("Generators", func() {
	hint := trace.GeometryHint{
		L1SizeBytes:    1024,
		BlockSizeBytes: 16,
		NumSets:        16,
		Associativity:  4,
	}

	Describe("Sequential", func() {
		It("strides by at least block_size/4 and block-aligns the base", func() {
			out := trace.Sequential(0x07, 20, hint, 0)
			Expect(out).To(HaveLen(20))
			Expect(out[0].Address % 16).To(Equal(uint32(0)))
			Expect(out[1].Address - out[0].Address).To(BeNumerically(">=", uint32(4)))
		})

		It("honors a larger user stride", func() {
			out := trace.Sequential(0x00, 3, hint, 64)
			Expect(out[1].Address - out[0].Address).To(Equal(uint32(64)))
		})

		It("writes about one in four accesses", func() {
			out := trace.Sequential(0, 100, hint, 0)
			writes := 0
			for _, a := range out {
				if a.IsWrite {
					writes++
				}
			}
			Expect(writes).To(Equal(25))
		})
	})

	Describe("Random", func() {
		It("stays within the calibrated working-set range and is block-aligned", func() {
			rng := rand.New(rand.NewPCG(1, 2))
			out := trace.Random(0x1000, 200, hint, trace.Moderate, rng)
			span := uint32(1.5 * 1024)
			for _, a := range out {
				Expect(a.Address % 16).To(Equal(uint32(0)))
				Expect(a.Address).To(BeNumerically(">=", uint32(0x1000)))
				Expect(a.Address).To(BeNumerically("<", 0x1000+span+16))
			}
		})

		It("is reproducible under a fixed seed", func() {
			a := trace.Random(0, 50, hint, trace.Heavy, rand.New(rand.NewPCG(9, 9)))
			b := trace.Random(0, 50, hint, trace.Heavy, rand.New(rand.NewPCG(9, 9)))
			Expect(a).To(Equal(b))
		})
	})

	Describe("Strided", func() {
		It("never writes", func() {
			out := trace.Strided(0, 30, hint, trace.Light)
			for _, a := range out {
				Expect(a.IsWrite).To(BeFalse())
			}
		})

		It("uses a stride proportional to num_sets*block_size", func() {
			out := trace.Strided(0, 3, hint, trace.Heavy)
			setBytes := uint32(hint.NumSets * hint.BlockSizeBytes)
			Expect(out[1].Address - out[0].Address).To(Equal(setBytes))
		})
	})

	Describe("Temporal", func() {
		It("produces exactly count accesses and stays block-aligned", func() {
			out := trace.Temporal(0, 77, hint, trace.Moderate)
			Expect(out).To(HaveLen(77))
			for _, a := range out {
				Expect(a.Address % 16).To(Equal(uint32(0)))
			}
		})

		It("accesses the lowest hot index more often than the highest", func() {
			out := trace.Temporal(0, 500, hint, trace.Light)
			counts := map[uint32]int{}
			for _, a := range out {
				counts[a.Address]++
			}
			// the first hot block address is `0`; it should be among the
			// most frequently accessed addresses.
			max := 0
			for _, c := range counts {
				if c > max {
					max = c
				}
			}
			Expect(counts[0]).To(Equal(max))
		})
	})

	Describe("WorkingSet", func() {
		It("cycles over a bounded window", func() {
			out := trace.WorkingSet(0, 200, hint, trace.Light)
			distinct := map[uint32]bool{}
			for _, a := range out {
				distinct[a.Address] = true
			}
			ws := int(0.5 * 1024)
			Expect(len(distinct)).To(BeNumerically("<=", ws/hint.BlockSizeBytes))
		})
	})

	Describe("Thrashing", func() {
		It("is read-only and cycles over L1_size*k", func() {
			out := trace.Thrashing(0, 100, hint, trace.Extreme)
			for _, a := range out {
				Expect(a.IsWrite).To(BeFalse())
			}
			distinct := map[uint32]bool{}
			for _, a := range out {
				distinct[a.Address] = true
			}
			Expect(len(distinct)).To(BeNumerically(">", hint.L1SizeBytes/hint.BlockSizeBytes))
		})
	})

	Describe("LRUKiller", func() {
		It("spaces addresses 1 MiB apart and cycles through a fixed tag count", func() {
			out := trace.LRUKiller(0, 10, trace.Light)
			Expect(out[1].Address - out[0].Address).To(Equal(uint32(1) << 20))

			distinct := map[uint32]bool{}
			for _, a := range out {
				distinct[a.Address] = true
			}
			Expect(len(distinct)).To(Equal(4)) // target 2 + extra 2
		})
	})

	Describe("Zipfian", func() {
		It("favors low-index items under skew", func() {
			rng := rand.New(rand.NewPCG(3, 4))
			out := trace.Zipfian(0, 2000, 10, 1.5, hint, rng)
			counts := map[uint32]int{}
			for _, a := range out {
				counts[a.Address]++
			}
			Expect(counts[0]).To(BeNumerically(">", counts[uint32(9*hint.BlockSizeBytes)]))
		})

		It("is reproducible under a fixed seed", func() {
			a := trace.Zipfian(0, 100, 8, 1.0, hint, rand.New(rand.NewPCG(5, 5)))
			b := trace.Zipfian(0, 100, 8, 1.0, hint, rand.New(rand.NewPCG(5, 5)))
			Expect(a).To(Equal(b))
		})
	})

	Describe("ScanReuse", func() {
		It("scans forward then reuses the tail in reverse", func() {
			out := trace.ScanReuse(0, 12, hint, trace.Light)
			Expect(out).NotTo(BeEmpty())
			for _, a := range out {
				Expect(a.Address % 16).To(Equal(uint32(0)))
			}
		})
	})
})
