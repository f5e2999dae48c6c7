package congestion

import (
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ubc-systopia/quic-cc/protocol"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// driveRandomEvents feeds a controller a long, randomized but causally valid
// event sequence and checks the structural invariants after every event.
func driveRandomEvents(algorithm Algorithm, seed int64) error {
	const mss protocol.ByteCount = 1200
	rng := rand.New(rand.NewSource(seed))
	c := New(Settings{
		Algorithm:       algorithm,
		MaxDatagramSize: mss,
	})

	var (
		pnSent      protocol.PacketNumber
		pnAcked     protocol.PacketNumber
		outstanding protocol.ByteCount
		totalAcked  protocol.ByteCount
	)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	minWindow := protocol.MinCongestionWindowPackets * mss

	check := func(op string) error {
		if cwnd := c.GetCongestionWindow(); cwnd < minWindow {
			return fmt.Errorf("after %s: congestion window %d below minimum %d", op, cwnd, minWindow)
		}
		if inflight := c.GetBytesInFlight(); inflight != outstanding {
			return fmt.Errorf("after %s: bytes in flight %d, expected %d", op, inflight, outstanding)
		}
		if c.GetBytesInFlightMax() < c.GetBytesInFlight() {
			return fmt.Errorf("after %s: high-water mark below bytes in flight", op)
		}
		return nil
	}

	for i := 0; i < 500; i++ {
		numPackets := 1 + rng.Intn(10)
		bytes := protocol.ByteCount(numPackets) * mss
		for j := 0; j < numPackets; j++ {
			c.OnDataSent(mss)
			pnSent++
		}
		outstanding += bytes
		if err := check("send"); err != nil {
			return err
		}

		now = now.Add(time.Duration(1+rng.Intn(100)) * time.Millisecond)
		switch rng.Intn(10) {
		case 0: // lose the whole flight
			persistent := rng.Intn(20) == 0
			c.OnDataLost(&LossEvent{
				LargestPacketNumberLost: pnSent - 1,
				LargestSentPacketNumber: pnSent - 1,
				NumRetransmittableBytes: bytes,
				PersistentCongestion:    persistent,
			})
			outstanding -= bytes
			pnAcked = pnSent
			if err := check("loss"); err != nil {
				return err
			}
			if rng.Intn(4) == 0 {
				c.OnSpuriousCongestionEvent()
				if err := check("spurious"); err != nil {
					return err
				}
			}
		case 1: // invalidate the whole flight
			c.OnDataInvalidated(bytes)
			outstanding -= bytes
			pnAcked = pnSent
			if err := check("invalidate"); err != nil {
				return err
			}
		default: // ack the whole flight
			totalAcked += bytes
			pnAcked = pnSent
			rtt := time.Duration(10+rng.Intn(90)) * time.Millisecond
			c.OnDataAcknowledged(&AckEvent{
				TimeNow:                           now,
				LargestAck:                        pnAcked - 1,
				LargestSentPacketNumber:           pnSent - 1,
				NumTotalAckedRetransmittableBytes: totalAcked,
				NumRetransmittableBytes:           bytes,
				SmoothedRTT:                       rtt,
				MinRTT:                            rtt,
				MinRTTValid:                       true,
				AdjustedAckTime:                   now,
			})
			outstanding -= bytes
			if err := check("ack"); err != nil {
				return err
			}
		}
	}
	return nil
}

var _ = Describe("Invariants", func() {
	It("hold for both algorithms under randomized event storms", func() {
		var g errgroup.Group
		for seed := int64(1); seed <= 4; seed++ {
			seed := seed
			g.Go(func() error {
				if err := driveRandomEvents(AlgorithmCubic, seed); err != nil {
					return fmt.Errorf("cubic: %w", err)
				}
				return nil
			})
			g.Go(func() error {
				if err := driveRandomEvents(AlgorithmBBR, seed); err != nil {
					return fmt.Errorf("bbr: %w", err)
				}
				return nil
			})
		}
		Expect(g.Wait()).To(Succeed())
	})
})
