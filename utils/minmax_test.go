package utils

import (
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Min / Max", func() {
	It("returns the maximum", func() {
		Expect(Max(5, 7)).To(Equal(7))
		Expect(Max(7, 5)).To(Equal(7))
		Expect(Max(uint64(5), uint64(7))).To(Equal(uint64(7)))
	})

	It("returns the minimum", func() {
		Expect(Min(5, 7)).To(Equal(5))
		Expect(Min(7, 5)).To(Equal(5))
		Expect(Min(int64(-2), int64(1))).To(Equal(int64(-2)))
	})

	It("returns the maximum duration", func() {
		Expect(MaxDuration(time.Second, time.Hour)).To(Equal(time.Hour))
	})

	It("returns the minimum duration", func() {
		Expect(MinDuration(time.Second, time.Hour)).To(Equal(time.Second))
	})

	It("returns the absolute duration", func() {
		Expect(AbsDuration(time.Second)).To(Equal(time.Second))
		Expect(AbsDuration(-time.Second)).To(Equal(time.Second))
		Expect(AbsDuration(0)).To(BeZero())
	})
})
