package congestion

import (
	"time"

	"github.com/ubc-systopia/quic-cc/protocol"
)

// An AckEvent is the digested view of an ACK frame, produced by the loss
// detector and the RTT estimator. It carries everything the congestion
// controller needs; the controller never inspects packets itself.
type AckEvent struct {
	// TimeNow is the (monotonic) time the ACK was processed.
	TimeNow time.Time
	// LargestAck is the largest packet number newly acknowledged.
	LargestAck protocol.PacketNumber
	// LargestSentPacketNumber is the largest packet number sent so far.
	LargestSentPacketNumber protocol.PacketNumber
	// NumTotalAckedRetransmittableBytes is the number of retransmittable
	// bytes acked over the connection's lifetime, including this event.
	NumTotalAckedRetransmittableBytes protocol.ByteCount
	// NumRetransmittableBytes is the number of retransmittable bytes acked
	// by this event.
	NumRetransmittableBytes protocol.ByteCount
	// SmoothedRTT is the connection's current smoothed RTT.
	SmoothedRTT time.Duration
	// MinRTT is the smallest RTT sample of the packets just acked.
	// Only valid if MinRTTValid is set.
	MinRTT time.Duration
	// AdjustedAckTime is the receive time of the ACK minus the peer's
	// reported ack delay.
	AdjustedAckTime time.Time
	// IsImplicit is set for acks synthesized by the loss detector (e.g. on
	// key discard). Implicit acks only adjust the in-flight accounting.
	IsImplicit bool
	// HasLoss is set if the same ACK also caused packets to be declared lost.
	HasLoss bool
	// IsLargestAckedPacketAppLimited is set if the largest acked packet was
	// sent while the sender was application limited.
	IsLargestAckedPacketAppLimited bool
	// MinRTTValid says whether MinRTT carries a usable sample.
	MinRTTValid bool
}

// A LossEvent reports packets declared lost by the loss detector.
type LossEvent struct {
	// LargestPacketNumberLost is the largest packet number declared lost.
	LargestPacketNumberLost protocol.PacketNumber
	// LargestSentPacketNumber is the largest packet number sent so far.
	LargestSentPacketNumber protocol.PacketNumber
	// NumRetransmittableBytes is the number of retransmittable bytes lost.
	NumRetransmittableBytes protocol.ByteCount
	// PersistentCongestion is set when the loss pattern indicates a
	// sustained outage (RFC 9002, section 7.6).
	PersistentCongestion bool
}
