package congestion

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Windowed Filter", func() {
	var f WindowedFilter[uint64]

	BeforeEach(func() {
		f = NewWindowedFilter[uint64](1000)
	})

	It("is empty after creation", func() {
		Expect(f.Empty()).To(BeTrue())
		_, ok := f.Max()
		Expect(ok).To(BeFalse())
	})

	It("tracks the maximum of the samples", func() {
		f.Update(3, 1)
		f.Update(2, 2)
		v, ok := f.Max()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(uint64(3)))
		f.Update(5, 3)
		v, _ = f.Max()
		Expect(v).To(Equal(uint64(5)))
	})

	It("drops tail entries superseded by a larger sample", func() {
		f.Update(5, 1)
		f.Update(2, 2)
		f.Update(3, 3) // supersedes the 2
		f.Update(4, 4) // supersedes the 3
		v, _ := f.Max()
		Expect(v).To(Equal(uint64(5)))
		f.Update(6, 5)
		v, _ = f.Max()
		Expect(v).To(Equal(uint64(6)))
	})

	It("refreshes the time of an equal-valued sample", func() {
		f.Update(5, 100)
		f.Update(5, 900)
		// If the second update refreshed the entry, it survives an
		// expiry that would have dropped the first one.
		f.Expire(500)
		v, ok := f.Max()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(uint64(5)))
	})

	It("expires samples older than the lifetime", func() {
		f.Update(5, 0)
		f.Update(3, 500)
		f.Update(4, 900) // pops the 3
		f.Expire(1100 - 1000)
		v, ok := f.Max()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(uint64(4)))
	})

	It("expires samples on update", func() {
		f.Update(5, 0)
		f.Update(4, 500)
		f.Update(3, 1200) // the 5 is now past its lifetime
		v, _ := f.Max()
		Expect(v).To(Equal(uint64(4)))
	})

	It("evicts the oldest entry at capacity", func() {
		f.Update(10, 1)
		f.Update(9, 2)
		f.Update(8, 3)
		f.Update(7, 4)
		v, _ := f.Max()
		Expect(v).To(Equal(uint64(9)))
	})

	It("can empty out entirely through expiry", func() {
		f.Update(5, 0)
		f.Expire(1)
		Expect(f.Empty()).To(BeTrue())
	})

	It("resets", func() {
		f.Update(5, 1)
		f.Update(4, 2)
		f.Reset()
		Expect(f.Empty()).To(BeTrue())
		f.Update(2, 3)
		v, _ := f.Max()
		Expect(v).To(Equal(uint64(2)))
	})

	It("keeps values strictly decreasing and times strictly increasing", func() {
		f.Update(9, 1)
		f.Update(12, 2)
		f.Update(7, 3)
		f.Update(7, 4)
		f.Update(3, 5)
		for i := 1; i < f.size; i++ {
			prev := f.entries[(f.head+i-1)%windowedFilterCapacity]
			cur := f.entries[(f.head+i)%windowedFilterCapacity]
			Expect(cur.value).To(BeNumerically("<", prev.value))
			Expect(cur.time).To(BeNumerically(">", prev.time))
		}
	})
})
