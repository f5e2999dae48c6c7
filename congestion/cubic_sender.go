package congestion

import (
	"time"

	"github.com/ubc-systopia/quic-cc/logging"
	"github.com/ubc-systopia/quic-cc/protocol"
	"github.com/ubc-systopia/quic-cc/utils"
)

// slowStartPacingGain is the pacing aggressiveness while in slow start.
const slowStartPacingGain = 1.25

type cubicSender struct {
	tracer logging.ConnectionTracer

	cubic Cubic

	inflight inflightTracker

	congestionWindow        protocol.ByteCount
	initialCongestionWindow protocol.ByteCount
	slowStartThreshold      protocol.ByteCount
	minCongestionWindow     protocol.ByteCount
	maxCongestionWindow     protocol.ByteCount
	maxDatagramSize         protocol.ByteCount

	pacingEnabled bool
	smoothedRTT   time.Duration

	// Largest packet outstanding when the last cutback occurred. Losses up
	// to this number belong to the same congestion event.
	recoveryEndPacketNumber protocol.PacketNumber
	inRecovery              bool
	inPersistentCongestion  bool
	hasHadCongestionEvent   bool

	// Window state before the last cutback, so a spurious loss can be
	// rolled back.
	priorValid              bool
	priorCongestionWindow   protocol.ByteCount
	priorSlowStartThreshold protocol.ByteCount
	priorCubic              Cubic

	lastState logging.CongestionState
}

var _ Controller = &cubicSender{}

func newCubicSender(settings Settings) *cubicSender {
	c := &cubicSender{
		tracer:                  settings.Tracer,
		cubic:                   NewCubic(settings.MaxDatagramSize),
		initialCongestionWindow: protocol.ByteCount(settings.InitialWindowPackets) * settings.MaxDatagramSize,
		minCongestionWindow:     protocol.MinCongestionWindowPackets * settings.MaxDatagramSize,
		maxCongestionWindow:     protocol.MaxCongestionWindowPackets * settings.MaxDatagramSize,
		maxDatagramSize:         settings.MaxDatagramSize,
		pacingEnabled:           settings.PacingEnabled,
		recoveryEndPacketNumber: protocol.InvalidPacketNumber,
		lastState:               logging.CongestionStateSlowStart,
	}
	c.congestionWindow = c.initialCongestionWindow
	c.slowStartThreshold = protocol.MaxByteCount
	if c.tracer != nil {
		c.tracer.UpdatedCongestionState(logging.CongestionStateSlowStart)
	}
	return c
}

func (c *cubicSender) Name() string { return AlgorithmCubic.String() }

func (c *cubicSender) InSlowStart() bool {
	return c.congestionWindow < c.slowStartThreshold
}

func (c *cubicSender) CanSend() bool {
	return c.inflight.bytes < c.congestionWindow || c.inflight.exemptions > 0
}

func (c *cubicSender) GetSendAllowance(timeSinceLastSend time.Duration, timeSinceLastSendValid bool) protocol.ByteCount {
	if c.inflight.bytes >= c.congestionWindow {
		return 0
	}
	if !c.pacingEnabled ||
		c.congestionWindow < protocol.PacingBurstPackets*c.maxDatagramSize ||
		c.smoothedRTT == 0 {
		// No pacing, or the window is too small to be worth pacing:
		// allow a full burst.
		return c.congestionWindow - c.inflight.bytes
	}
	if !timeSinceLastSendValid {
		return 0
	}
	gain := 1.0
	if c.InSlowStart() {
		gain = slowStartPacingGain
	}
	rate := gain * float64(c.congestionWindow) / c.smoothedRTT.Seconds()
	allowance := protocol.ByteCount(rate * timeSinceLastSend.Seconds())
	return utils.Min(allowance, c.congestionWindow-c.inflight.bytes)
}

func (c *cubicSender) OnDataSent(bytes protocol.ByteCount) {
	c.inflight.onSent(bytes)
}

func (c *cubicSender) OnDataInvalidated(bytes protocol.ByteCount) bool {
	wasBlocked := !c.CanSend()
	c.inflight.remove(bytes)
	return wasBlocked && c.CanSend()
}

func (c *cubicSender) OnDataAcknowledged(ack *AckEvent) bool {
	wasBlocked := !c.CanSend()
	c.inflight.remove(ack.NumRetransmittableBytes)
	if ack.SmoothedRTT > 0 {
		c.smoothedRTT = ack.SmoothedRTT
	}
	if ack.IsImplicit {
		return wasBlocked && c.CanSend()
	}
	if c.inRecovery {
		if ack.LargestAck < c.recoveryEndPacketNumber {
			// Still recovering: no window growth.
			return wasBlocked && c.CanSend()
		}
		c.inRecovery = false
	}
	if c.inPersistentCongestion {
		// First ack after the collapse; grow from the minimum window again.
		c.inPersistentCongestion = false
	}
	if c.InSlowStart() {
		c.maybeTraceStateChange(logging.CongestionStateSlowStart)
		c.congestionWindow = utils.Min(
			c.congestionWindow+ack.NumRetransmittableBytes,
			c.slowStartThreshold,
		)
	} else {
		c.maybeTraceStateChange(logging.CongestionStateCongestionAvoidance)
		c.congestionWindow = utils.Min(
			c.cubic.CongestionWindowAfterAck(ack.NumRetransmittableBytes, c.congestionWindow, ack.SmoothedRTT, ack.TimeNow),
			c.maxCongestionWindow,
		)
	}
	return wasBlocked && c.CanSend()
}

func (c *cubicSender) OnDataLost(loss *LossEvent) {
	c.inflight.remove(loss.NumRetransmittableBytes)
	// Losses of packets sent before the last cutback belong to the same
	// congestion event and don't reduce the window again.
	if !c.hasHadCongestionEvent || loss.LargestPacketNumberLost > c.recoveryEndPacketNumber {
		c.onCongestionEvent(loss.LargestSentPacketNumber)
	}
	if loss.PersistentCongestion {
		c.congestionWindow = c.minCongestionWindow
		c.slowStartThreshold = utils.Max(c.slowStartThreshold, c.minCongestionWindow)
		c.inPersistentCongestion = true
	}
}

func (c *cubicSender) onCongestionEvent(largestSentPacketNumber protocol.PacketNumber) {
	c.priorValid = true
	c.priorCongestionWindow = c.congestionWindow
	c.priorSlowStartThreshold = c.slowStartThreshold
	c.priorCubic = c.cubic

	c.hasHadCongestionEvent = true
	c.congestionWindow = utils.Max(
		c.cubic.CongestionWindowAfterPacketLoss(c.congestionWindow),
		c.minCongestionWindow,
	)
	c.slowStartThreshold = c.congestionWindow
	c.recoveryEndPacketNumber = largestSentPacketNumber
	c.inRecovery = true
	c.maybeTraceStateChange(logging.CongestionStateRecovery)
}

func (c *cubicSender) OnSpuriousCongestionEvent() bool {
	wasBlocked := !c.CanSend()
	if !c.priorValid {
		c.inRecovery = false
		return wasBlocked && c.CanSend()
	}
	c.congestionWindow = c.priorCongestionWindow
	c.slowStartThreshold = utils.Max(c.slowStartThreshold, c.priorSlowStartThreshold)
	c.cubic = c.priorCubic
	c.priorValid = false
	c.inRecovery = false
	c.inPersistentCongestion = false
	if c.InSlowStart() {
		c.maybeTraceStateChange(logging.CongestionStateSlowStart)
	} else {
		c.maybeTraceStateChange(logging.CongestionStateCongestionAvoidance)
	}
	return wasBlocked && c.CanSend()
}

func (c *cubicSender) SetExemption(numPackets uint8) {
	c.inflight.addExemptions(numPackets)
}

func (c *cubicSender) Reset(fullReset bool) {
	c.congestionWindow = c.initialCongestionWindow
	c.slowStartThreshold = protocol.MaxByteCount
	c.inRecovery = false
	c.recoveryEndPacketNumber = protocol.InvalidPacketNumber
	c.priorValid = false
	c.smoothedRTT = 0
	c.inflight.reset(fullReset)
	if fullReset {
		c.cubic.Reset()
		c.inPersistentCongestion = false
		c.hasHadCongestionEvent = false
	} else {
		c.cubic.OnApplicationLimited()
	}
	c.maybeTraceStateChange(logging.CongestionStateSlowStart)
}

// SetAppLimited is a no-op: CUBIC doesn't use delivery-rate samples.
func (c *cubicSender) SetAppLimited() {}

func (c *cubicSender) IsAppLimited() bool { return false }

func (c *cubicSender) GetCongestionWindow() protocol.ByteCount { return c.congestionWindow }
func (c *cubicSender) GetBytesInFlight() protocol.ByteCount    { return c.inflight.bytes }
func (c *cubicSender) GetBytesInFlightMax() protocol.ByteCount { return c.inflight.max }
func (c *cubicSender) GetExemptions() uint8                    { return c.inflight.exemptions }

func (c *cubicSender) LogOutFlowStatus() {
	ssthresh := c.slowStartThreshold
	if ssthresh == protocol.MaxByteCount {
		// Not reduced yet; don't report the sentinel.
		ssthresh = 0
	}
	status := logging.OutFlowStatus{
		Algorithm:          c.Name(),
		State:              c.lastState,
		CongestionWindow:   c.congestionWindow,
		BytesInFlight:      c.inflight.bytes,
		BytesInFlightMax:   c.inflight.max,
		SlowStartThreshold: ssthresh,
		InRecovery:         c.inRecovery,
		Exemptions:         c.inflight.exemptions,
	}
	utils.Debugf("congestion: %s cwnd=%d inflight=%d ssthresh=%d recovery=%t",
		status.Algorithm, status.CongestionWindow, status.BytesInFlight, status.SlowStartThreshold, status.InRecovery)
	if c.tracer != nil {
		c.tracer.UpdatedMetrics(status)
	}
}

func (c *cubicSender) maybeTraceStateChange(state logging.CongestionState) {
	if state == c.lastState {
		return
	}
	c.lastState = state
	if c.tracer != nil {
		c.tracer.UpdatedCongestionState(state)
	}
}
