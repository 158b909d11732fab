package trace_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/trace"
)

var _ = Describe("Parse", func() {
	It("parses bare hex addresses as reads", func() {
		result, err := trace.Parse(strings.NewReader("0x10\nFF\n20\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Accesses).To(Equal([]trace.Access{
			{Address: 0x10},
			{Address: 0xFF},
			{Address: 0x20},
		}))
		Expect(result.Skipped).To(Equal(0))
	})

	It("parses R/W prefixed lines, case-insensitively", func() {
		result, err := trace.Parse(strings.NewReader("R 0x10\nw 0x20\nW 0X30\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Accesses).To(Equal([]trace.Access{
			{Address: 0x10, IsWrite: false},
			{Address: 0x20, IsWrite: true},
			{Address: 0x30, IsWrite: true},
		}))
	})

	It("skips blank lines and comments", func() {
		result, err := trace.Parse(strings.NewReader("\n  \n# a comment\n0x10\n   # indented comment\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Accesses).To(Equal([]trace.Access{{Address: 0x10}}))
		Expect(result.Skipped).To(Equal(0))
	})

	It("counts malformed lines as skipped without raising an error", func() {
		result, err := trace.Parse(strings.NewReader("not-hex\nR\nX 0x10\nR W 0x10\n0x10\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Accesses).To(Equal([]trace.Access{{Address: 0x10}}))
		Expect(result.Skipped).To(Equal(4))
	})

	It("trims surrounding whitespace", func() {
		result, err := trace.Parse(strings.NewReader("   0x10   \n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Accesses).To(Equal([]trace.Access{{Address: 0x10}}))
	})
})
