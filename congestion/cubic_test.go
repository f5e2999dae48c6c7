package congestion

import (
	"time"

	"github.com/ubc-systopia/quic-cc/protocol"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Cubic", func() {
	const mss protocol.ByteCount = 1200

	var (
		c     Cubic
		start time.Time
	)

	BeforeEach(func() {
		c = NewCubic(mss)
		start = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	})

	It("reduces the window by beta on loss", func() {
		Expect(c.CongestionWindowAfterPacketLoss(100000)).To(Equal(protocol.ByteCount(70000)))
		Expect(c.WindowMax()).To(Equal(protocol.ByteCount(100000)))
	})

	It("dampens the window maximum when losses come in below the previous one", func() {
		c.CongestionWindowAfterPacketLoss(100000)
		// The next loss happens at a smaller window.
		c.CongestionWindowAfterPacketLoss(80000)
		Expect(c.WindowMax()).To(Equal(protocol.ByteCount(80000 * 17 / 20)))
	})

	It("keeps the full window maximum when losses come in above the previous one", func() {
		c.CongestionWindowAfterPacketLoss(100000)
		c.CongestionWindowAfterPacketLoss(120000)
		Expect(c.WindowMax()).To(Equal(protocol.ByteCount(120000)))
	})

	It("grows back towards the window maximum over time", func() {
		reduced := c.CongestionWindowAfterPacketLoss(100000)
		cwnd := reduced
		rtt := 50 * time.Millisecond
		eventTime := start
		for i := 0; i < 2000; i++ {
			eventTime = eventTime.Add(rtt / 10)
			cwnd = c.CongestionWindowAfterAck(mss, cwnd, rtt, eventTime)
		}
		Expect(cwnd).To(BeNumerically(">", reduced))
		Expect(cwnd).To(BeNumerically(">=", c.WindowMax()))
	})

	It("never shrinks the window on an ack", func() {
		cwnd := c.CongestionWindowAfterPacketLoss(100000)
		next := c.CongestionWindowAfterAck(mss, cwnd, 50*time.Millisecond, start)
		Expect(next).To(BeNumerically(">=", cwnd))
	})

	It("limits the growth to one datagram per ack", func() {
		cwnd := c.CongestionWindowAfterPacketLoss(100000)
		c.CongestionWindowAfterAck(mss, cwnd, 50*time.Millisecond, start)
		// A long gap must not translate into a window burst.
		next := c.CongestionWindowAfterAck(mss, cwnd, 50*time.Millisecond, start.Add(10*time.Second))
		Expect(next).To(BeNumerically("<=", cwnd+mss))
	})

	It("resets all history", func() {
		c.CongestionWindowAfterPacketLoss(100000)
		c.Reset()
		Expect(c.WindowMax()).To(BeZero())
	})
})
