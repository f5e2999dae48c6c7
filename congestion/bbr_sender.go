package congestion

import (
	"time"

	"github.com/ubc-systopia/quic-cc/logging"
	"github.com/ubc-systopia/quic-cc/protocol"
	"github.com/ubc-systopia/quic-cc/utils"
)

type bbrState uint8

const (
	// bbrStateStartup probes for bandwidth with an aggressive gain.
	bbrStateStartup bbrState = iota
	// bbrStateDrain empties the queue built up during startup.
	bbrStateDrain
	// bbrStateProbeBw is the steady state, cycling the pacing gain.
	bbrStateProbeBw
	// bbrStateProbeRtt shrinks the window to refresh the min RTT estimate.
	bbrStateProbeRtt
)

type bbrRecoveryState uint8

const (
	bbrRecoveryNone bbrRecoveryState = iota
	// bbrRecoveryConservation holds the recovery window at the in-flight level.
	bbrRecoveryConservation
	// bbrRecoveryGrowth grows the recovery window by the acked bytes.
	bbrRecoveryGrowth
)

// Gains are Q8 fixed point: the real gain is value / bbrGainUnit. Integer
// gains keep the controller reproducible across platforms.
const (
	bbrGainUnit uint32 = 256
	// bbrHighGain is 2/ln(2) ~= 2.885, the startup growth gain.
	bbrHighGain uint32 = 739
	// bbrDrainGain is 1/2.885, the inverse of the startup gain.
	bbrDrainGain uint32 = 89
	// bbrProbeBwCwndGain provides headroom for ack aggregation in steady state.
	bbrProbeBwCwndGain uint32 = 512
)

// bbrPacingGainCycle is the pacing gain sequence of ProbeBw: one probing
// phase, one draining phase, six cruising phases, one round trip each.
var bbrPacingGainCycle = [8]uint32{320, 192, 256, 256, 256, 256, 256, 256}

const (
	// bbrBandwidthFilterLen is the bandwidth filter window, in round trips.
	bbrBandwidthFilterLen = 10
	// bbrMinRttFilterLen is how long a min RTT sample stays valid.
	bbrMinRttFilterLen = 10 * time.Second
	// bbrProbeRttDuration is the minimum time spent at the reduced window
	// during ProbeRtt.
	bbrProbeRttDuration = 200 * time.Millisecond
	// bbrMinPipeCwndPackets is the floor of the congestion window, in packets.
	bbrMinPipeCwndPackets = 4
	// bbrStartupGrowthTarget is the per-round bandwidth growth (Q8) below
	// which a startup round counts as not growing.
	bbrStartupGrowthTarget uint32 = 320
	// bbrStartupSlowGrowthRoundLimit is the number of consecutive
	// non-growing rounds after which the bottleneck counts as found.
	bbrStartupSlowGrowthRoundLimit = 3
	// bbrMaxSendQuantum bounds the transmission aggregate size.
	bbrMaxSendQuantum protocol.ByteCount = 64 * 1024
)

type bbrSender struct {
	clock  Clock
	tracer logging.ConnectionTracer

	inflight inflightTracker

	congestionWindow        protocol.ByteCount
	initialCongestionWindow protocol.ByteCount
	recoveryWindow          protocol.ByteCount
	maxCongestionWindow     protocol.ByteCount
	maxDatagramSize         protocol.ByteCount
	sendQuantum             protocol.ByteCount

	pacingEnabled bool

	state         bbrState
	recoveryState bbrRecoveryState

	cwndGain         uint32
	pacingGain       uint32
	pacingCycleIndex int
	cycleStart       time.Time

	roundTripCounter    uint64
	endOfRoundTrip      protocol.PacketNumber
	endOfRoundTripValid bool

	endOfRecovery      protocol.PacketNumber
	endOfRecoveryValid bool

	// Bandwidth model: max filter over delivery-rate samples, windowed by
	// round trips.
	bandwidthFilter      WindowedFilter[Bandwidth]
	lastAdjustedAckTime  time.Time
	lastTotalAckedBytes  protocol.ByteCount
	hasBandwidthSample   bool
	appLimited           bool
	appLimitedExitTarget protocol.PacketNumber

	// Ack aggregation model: max filter over the excess of acked bytes
	// above the expected delivery, windowed by round trips.
	maxAckHeightFilter           WindowedFilter[protocol.ByteCount]
	ackAggregationStartTime      time.Time
	ackAggregationStartTimeValid bool
	aggregatedAckBytes           protocol.ByteCount

	minRtt               time.Duration
	minRttTimestamp      time.Time
	minRttTimestampValid bool

	btlbwFound                    bool
	lastEstimatedStartupBandwidth Bandwidth
	slowStartupRoundCounter       uint8

	probeRttRound        uint64
	probeRttRoundValid   bool
	probeRttEndTime      time.Time
	probeRttEndTimeValid bool

	exitingQuiescence bool

	largestSentPacketNumber protocol.PacketNumber

	lastState logging.CongestionState
}

var _ Controller = &bbrSender{}

func newBBRSender(settings Settings) *bbrSender {
	b := &bbrSender{
		clock:                   settings.Clock,
		tracer:                  settings.Tracer,
		initialCongestionWindow: protocol.ByteCount(settings.InitialWindowPackets) * settings.MaxDatagramSize,
		maxCongestionWindow:     protocol.MaxCongestionWindowPackets * settings.MaxDatagramSize,
		maxDatagramSize:         settings.MaxDatagramSize,
		pacingEnabled:           settings.PacingEnabled,
		bandwidthFilter:         NewWindowedFilter[Bandwidth](bbrBandwidthFilterLen),
		maxAckHeightFilter:      NewWindowedFilter[protocol.ByteCount](bbrBandwidthFilterLen),
		endOfRoundTrip:          protocol.InvalidPacketNumber,
		endOfRecovery:           protocol.InvalidPacketNumber,
		appLimitedExitTarget:    protocol.InvalidPacketNumber,
		largestSentPacketNumber: protocol.InvalidPacketNumber,
		lastState:               logging.CongestionStateStartup,
	}
	b.congestionWindow = b.initialCongestionWindow
	b.sendQuantum = b.maxDatagramSize
	b.enterStartup()
	if b.tracer != nil {
		b.tracer.UpdatedCongestionState(logging.CongestionStateStartup)
	}
	return b
}

func (b *bbrSender) Name() string { return AlgorithmBBR.String() }

func (b *bbrSender) minPipeCwnd() protocol.ByteCount {
	return bbrMinPipeCwndPackets * b.maxDatagramSize
}

// effectiveCongestionWindow is the window the send path sees: during loss
// recovery it is additionally capped by the recovery window.
func (b *bbrSender) effectiveCongestionWindow() protocol.ByteCount {
	if b.recoveryState != bbrRecoveryNone {
		return utils.Min(b.congestionWindow, b.recoveryWindow)
	}
	return b.congestionWindow
}

func (b *bbrSender) CanSend() bool {
	return b.inflight.bytes < b.effectiveCongestionWindow() || b.inflight.exemptions > 0
}

func (b *bbrSender) GetSendAllowance(timeSinceLastSend time.Duration, timeSinceLastSendValid bool) protocol.ByteCount {
	cwnd := b.effectiveCongestionWindow()
	if b.inflight.bytes >= cwnd {
		return 0
	}
	bw, hasBw := b.bandwidthFilter.Max()
	if !b.pacingEnabled || !hasBw ||
		cwnd < protocol.PacingBurstPackets*b.maxDatagramSize {
		return cwnd - b.inflight.bytes
	}
	if !timeSinceLastSendValid {
		return 0
	}
	rate := Bandwidth(uint64(bw) * uint64(b.pacingGain) / uint64(bbrGainUnit))
	allowance := bytesFromBandwidth(rate, timeSinceLastSend)
	return utils.Min(allowance, cwnd-b.inflight.bytes)
}

func (b *bbrSender) OnDataSent(bytes protocol.ByteCount) {
	if b.inflight.bytes == 0 && bytes > 0 {
		b.exitingQuiescence = true
	}
	b.inflight.onSent(bytes)
}

func (b *bbrSender) OnDataInvalidated(bytes protocol.ByteCount) bool {
	wasBlocked := !b.CanSend()
	b.inflight.remove(bytes)
	return wasBlocked && b.CanSend()
}

func (b *bbrSender) OnDataAcknowledged(ack *AckEvent) bool {
	wasBlocked := !b.CanSend()
	b.inflight.remove(ack.NumRetransmittableBytes)
	b.largestSentPacketNumber = utils.Max(b.largestSentPacketNumber, ack.LargestSentPacketNumber)
	if ack.IsImplicit {
		return wasBlocked && b.CanSend()
	}

	newRoundTrip := false
	if !b.endOfRoundTripValid || ack.LargestAck >= b.endOfRoundTrip {
		b.roundTripCounter++
		b.endOfRoundTrip = ack.LargestSentPacketNumber
		b.endOfRoundTripValid = true
		newRoundTrip = true
	}

	rttSampleExpired := false
	if ack.MinRTTValid {
		rttSampleExpired = b.minRttTimestampValid &&
			ack.TimeNow.Sub(b.minRttTimestamp) > bbrMinRttFilterLen
		if !b.minRttTimestampValid || rttSampleExpired || ack.MinRTT < b.minRtt {
			b.minRtt = ack.MinRTT
			b.minRttTimestamp = ack.TimeNow
			b.minRttTimestampValid = true
		}
	}

	b.updateBandwidth(ack)
	b.updateAckAggregation(ack)
	b.advanceStateMachine(ack, newRoundTrip, rttSampleExpired)
	b.updateGains()
	b.updateCongestionWindow(ack.NumRetransmittableBytes)
	b.updateRecoveryWindow(ack, newRoundTrip)

	if b.appLimited && ack.LargestAck >= b.appLimitedExitTarget {
		b.appLimited = false
	}
	b.exitingQuiescence = false
	b.updateSendQuantum()
	return wasBlocked && b.CanSend()
}

// updateBandwidth feeds a delivery-rate sample into the bandwidth filter.
// The sample is the growth of the total acked byte count over the growth of
// the adjusted ack time.
func (b *bbrSender) updateBandwidth(ack *AckEvent) {
	if ack.NumRetransmittableBytes == 0 {
		return
	}
	if b.hasBandwidthSample {
		elapsed := ack.AdjustedAckTime.Sub(b.lastAdjustedAckTime)
		ackedDelta := ack.NumTotalAckedRetransmittableBytes - b.lastTotalAckedBytes
		if elapsed > 0 && ackedDelta > 0 {
			sample := BandwidthFromDelta(ackedDelta, elapsed)
			max, hasMax := b.bandwidthFilter.Max()
			limited := b.appLimited || ack.IsLargestAckedPacketAppLimited
			// App-limited samples underestimate the path and must
			// not depress the filter, but a sample that raises the
			// max is believable regardless.
			if !limited || !hasMax || sample > max {
				b.bandwidthFilter.Update(sample, b.roundTripCounter)
			}
		}
	}
	b.lastAdjustedAckTime = ack.AdjustedAckTime
	b.lastTotalAckedBytes = ack.NumTotalAckedRetransmittableBytes
	b.hasBandwidthSample = true
}

// updateAckAggregation measures how far the acked bytes run ahead of the
// bandwidth model within an aggregation epoch, and records the excess.
func (b *bbrSender) updateAckAggregation(ack *AckEvent) {
	bw, ok := b.bandwidthFilter.Max()
	if !ok {
		return
	}
	if !b.ackAggregationStartTimeValid {
		b.ackAggregationStartTime = ack.TimeNow
		b.ackAggregationStartTimeValid = true
		b.aggregatedAckBytes = ack.NumRetransmittableBytes
		return
	}
	expected := bytesFromBandwidth(bw, ack.TimeNow.Sub(b.ackAggregationStartTime))
	b.aggregatedAckBytes += ack.NumRetransmittableBytes
	if b.aggregatedAckBytes > expected {
		b.maxAckHeightFilter.Update(b.aggregatedAckBytes-expected, b.roundTripCounter)
		return
	}
	// Delivery caught up; start a new aggregation epoch at this ack.
	b.ackAggregationStartTime = ack.TimeNow
	b.aggregatedAckBytes = ack.NumRetransmittableBytes
}

func (b *bbrSender) advanceStateMachine(ack *AckEvent, newRoundTrip, rttSampleExpired bool) {
	switch b.state {
	case bbrStateStartup:
		b.detectBottleneckBandwidth(newRoundTrip)
		if b.btlbwFound {
			b.enterDrain()
		}
	case bbrStateDrain:
		if bdp, ok := b.bandwidthDelayProduct(); ok && b.inflight.bytes <= bdp {
			b.enterProbeBw(ack.TimeNow)
		}
	case bbrStateProbeBw:
		b.updateGainCycle(ack)
	}

	if b.state != bbrStateProbeRtt && rttSampleExpired {
		b.enterProbeRtt()
	}
	if b.state == bbrStateProbeRtt {
		b.handleProbeRtt(ack)
	}
}

// detectBottleneckBandwidth implements the startup exit condition: the
// bottleneck is considered found after three consecutive rounds in which the
// bandwidth estimate grew by less than 25%.
func (b *bbrSender) detectBottleneckBandwidth(newRoundTrip bool) {
	if !newRoundTrip || b.appLimited {
		return
	}
	bw, ok := b.bandwidthFilter.Max()
	if !ok {
		return
	}
	target := Bandwidth(uint64(b.lastEstimatedStartupBandwidth) * uint64(bbrStartupGrowthTarget) / uint64(bbrGainUnit))
	if bw >= target {
		b.lastEstimatedStartupBandwidth = bw
		b.slowStartupRoundCounter = 0
		return
	}
	b.slowStartupRoundCounter++
	if b.slowStartupRoundCounter >= bbrStartupSlowGrowthRoundLimit {
		b.btlbwFound = true
	}
}

func (b *bbrSender) enterStartup() {
	b.state = bbrStateStartup
	b.pacingGain = bbrHighGain
	b.cwndGain = bbrHighGain
	b.maybeTraceStateChange(logging.CongestionStateStartup)
}

func (b *bbrSender) enterDrain() {
	b.state = bbrStateDrain
	b.pacingGain = bbrDrainGain
	b.cwndGain = bbrHighGain
	b.maybeTraceStateChange(logging.CongestionStateDrain)
}

func (b *bbrSender) enterProbeBw(now time.Time) {
	b.state = bbrStateProbeBw
	b.cwndGain = bbrProbeBwCwndGain
	b.pacingCycleIndex = 0
	b.pacingGain = bbrPacingGainCycle[0]
	b.cycleStart = now
	b.maybeTraceStateChange(logging.CongestionStateProbeBw)
}

func (b *bbrSender) enterProbeRtt() {
	b.state = bbrStateProbeRtt
	b.pacingGain = bbrGainUnit
	b.cwndGain = bbrGainUnit
	b.probeRttEndTimeValid = false
	b.probeRttRoundValid = false
	b.maybeTraceStateChange(logging.CongestionStateProbeRtt)
}

// updateGainCycle advances the ProbeBw pacing gain cycle. A phase lasts one
// min RTT; the probing phase additionally waits for the queue to build, and
// the draining phase ends as soon as the queue is drained.
func (b *bbrSender) updateGainCycle(ack *AckEvent) {
	if !b.minRttTimestampValid {
		return
	}
	gain := bbrPacingGainCycle[b.pacingCycleIndex]
	elapsed := ack.TimeNow.Sub(b.cycleStart)
	advance := elapsed > b.minRtt
	if advance && gain > bbrGainUnit {
		// Keep probing until inflight reaches the inflated target.
		advance = b.inflight.bytes >= b.targetCongestionWindow(gain) ||
			ack.HasLoss
	}
	if gain < bbrGainUnit &&
		b.inflight.bytes <= b.targetCongestionWindow(bbrGainUnit) {
		advance = true
	}
	if !advance {
		return
	}
	b.pacingCycleIndex = (b.pacingCycleIndex + 1) % len(bbrPacingGainCycle)
	b.pacingGain = bbrPacingGainCycle[b.pacingCycleIndex]
	b.cycleStart = ack.TimeNow
}

func (b *bbrSender) handleProbeRtt(ack *AckEvent) {
	if !b.probeRttEndTimeValid {
		// Wait for inflight to drain to the floor before starting the
		// probe timer.
		if b.inflight.bytes <= b.minPipeCwnd()+b.maxDatagramSize {
			b.probeRttEndTime = ack.TimeNow.Add(bbrProbeRttDuration)
			b.probeRttEndTimeValid = true
			b.probeRttRound = b.roundTripCounter
			b.probeRttRoundValid = true
		}
		return
	}
	roundPassed := b.probeRttRoundValid && b.roundTripCounter > b.probeRttRound
	if roundPassed && !ack.TimeNow.Before(b.probeRttEndTime) {
		// The probe is complete; the current estimate is fresh again.
		b.minRttTimestamp = ack.TimeNow
		b.minRttTimestampValid = true
		if b.btlbwFound {
			b.enterProbeBw(ack.TimeNow)
		} else {
			b.enterStartup()
		}
	}
}

// updateGains keeps the gains consistent with the current state. The enter*
// transitions already set them; this recomputes them every ack so that a
// ProbeBw cycle update can't leave a stale pacing gain behind.
func (b *bbrSender) updateGains() {
	switch b.state {
	case bbrStateStartup:
		b.pacingGain = bbrHighGain
		b.cwndGain = bbrHighGain
	case bbrStateDrain:
		b.pacingGain = bbrDrainGain
		b.cwndGain = bbrHighGain
	case bbrStateProbeBw:
		b.pacingGain = bbrPacingGainCycle[b.pacingCycleIndex]
		b.cwndGain = bbrProbeBwCwndGain
	case bbrStateProbeRtt:
		b.pacingGain = bbrGainUnit
		b.cwndGain = bbrGainUnit
	}
}

func (b *bbrSender) bandwidthDelayProduct() (protocol.ByteCount, bool) {
	bw, ok := b.bandwidthFilter.Max()
	if !ok || !b.minRttTimestampValid || b.minRtt <= 0 {
		return 0, false
	}
	bdp := bytesFromBandwidth(bw, b.minRtt)
	// Round up to a whole datagram.
	rem := bdp % b.maxDatagramSize
	if rem != 0 {
		bdp += b.maxDatagramSize - rem
	}
	return bdp, true
}

// targetCongestionWindow is the BDP scaled by the given gain, plus headroom
// for the measured ack aggregation.
func (b *bbrSender) targetCongestionWindow(gain uint32) protocol.ByteCount {
	bdp, ok := b.bandwidthDelayProduct()
	if !ok {
		return b.initialCongestionWindow
	}
	target := protocol.ByteCount(uint64(bdp) * uint64(gain) / uint64(bbrGainUnit))
	if height, ok := b.maxAckHeightFilter.Max(); ok {
		target += height
	}
	return utils.Max(target, b.minPipeCwnd())
}

func (b *bbrSender) updateCongestionWindow(ackedBytes protocol.ByteCount) {
	if b.state == bbrStateProbeRtt {
		b.congestionWindow = b.minPipeCwnd()
		return
	}
	target := b.targetCongestionWindow(b.cwndGain)
	if b.state == bbrStateStartup {
		// The window only grows while probing for bandwidth.
		b.congestionWindow = utils.Max(b.congestionWindow, utils.Min(target, b.congestionWindow+ackedBytes))
		return
	}
	b.congestionWindow = utils.Min(utils.Max(target, b.minPipeCwnd()), b.maxCongestionWindow)
}

func (b *bbrSender) updateRecoveryWindow(ack *AckEvent, newRoundTrip bool) {
	if b.recoveryState == bbrRecoveryNone {
		return
	}
	if b.endOfRecoveryValid && ack.LargestAck >= b.endOfRecovery {
		b.recoveryState = bbrRecoveryNone
		b.endOfRecoveryValid = false
		b.recoveryWindow = 0
		b.maybeTraceStateChange(b.stateForTracer())
		return
	}
	if newRoundTrip && b.recoveryState == bbrRecoveryConservation {
		b.recoveryState = bbrRecoveryGrowth
	}
	switch b.recoveryState {
	case bbrRecoveryConservation:
		b.recoveryWindow = utils.Max(b.recoveryWindow, b.inflight.bytes+ack.NumRetransmittableBytes)
	case bbrRecoveryGrowth:
		b.recoveryWindow += ack.NumRetransmittableBytes
	}
	b.recoveryWindow = utils.Max(b.recoveryWindow, b.minPipeCwnd())
}

func (b *bbrSender) OnDataLost(loss *LossEvent) {
	b.inflight.remove(loss.NumRetransmittableBytes)
	b.largestSentPacketNumber = utils.Max(b.largestSentPacketNumber, loss.LargestSentPacketNumber)
	if loss.PersistentCongestion {
		// Sustained outage: the model is stale. Restart the search for
		// the bottleneck from a minimal window.
		b.recoveryState = bbrRecoveryNone
		b.endOfRecoveryValid = false
		b.recoveryWindow = 0
		b.bandwidthFilter.Reset()
		b.maxAckHeightFilter.Reset()
		b.hasBandwidthSample = false
		b.ackAggregationStartTimeValid = false
		b.btlbwFound = false
		b.lastEstimatedStartupBandwidth = 0
		b.slowStartupRoundCounter = 0
		b.congestionWindow = b.minPipeCwnd()
		b.enterStartup()
		return
	}
	if b.recoveryState == bbrRecoveryNone {
		b.recoveryState = bbrRecoveryConservation
		b.endOfRecovery = loss.LargestSentPacketNumber
		b.endOfRecoveryValid = true
		b.recoveryWindow = utils.Max(b.inflight.bytes, b.minPipeCwnd())
		b.maybeTraceStateChange(logging.CongestionStateRecovery)
	}
}

func (b *bbrSender) OnSpuriousCongestionEvent() bool {
	wasBlocked := !b.CanSend()
	// The bandwidth model is unaffected; only the recovery clamp is lifted.
	b.recoveryState = bbrRecoveryNone
	b.endOfRecoveryValid = false
	b.recoveryWindow = 0
	b.maybeTraceStateChange(b.stateForTracer())
	return wasBlocked && b.CanSend()
}

func (b *bbrSender) SetExemption(numPackets uint8) {
	b.inflight.addExemptions(numPackets)
}

func (b *bbrSender) Reset(fullReset bool) {
	b.inflight.reset(fullReset)
	b.congestionWindow = b.initialCongestionWindow
	b.recoveryWindow = 0
	b.recoveryState = bbrRecoveryNone
	b.endOfRecoveryValid = false
	b.endOfRoundTripValid = false
	b.roundTripCounter = 0
	b.bandwidthFilter.Reset()
	b.maxAckHeightFilter.Reset()
	b.hasBandwidthSample = false
	b.ackAggregationStartTimeValid = false
	b.aggregatedAckBytes = 0
	b.appLimited = false
	b.btlbwFound = false
	b.lastEstimatedStartupBandwidth = 0
	b.slowStartupRoundCounter = 0
	b.probeRttEndTimeValid = false
	b.probeRttRoundValid = false
	b.exitingQuiescence = false
	b.sendQuantum = b.maxDatagramSize
	b.cycleStart = b.clock.Now()
	if fullReset {
		b.minRttTimestampValid = false
		b.minRtt = 0
		b.largestSentPacketNumber = protocol.InvalidPacketNumber
	}
	b.enterStartup()
}

func (b *bbrSender) SetAppLimited() {
	if b.largestSentPacketNumber == protocol.InvalidPacketNumber {
		return
	}
	b.appLimited = true
	b.appLimitedExitTarget = b.largestSentPacketNumber
	b.maybeTraceStateChange(logging.CongestionStateApplicationLimited)
}

func (b *bbrSender) IsAppLimited() bool { return b.appLimited }

func (b *bbrSender) GetCongestionWindow() protocol.ByteCount { return b.effectiveCongestionWindow() }
func (b *bbrSender) GetBytesInFlight() protocol.ByteCount    { return b.inflight.bytes }
func (b *bbrSender) GetBytesInFlightMax() protocol.ByteCount { return b.inflight.max }
func (b *bbrSender) GetExemptions() uint8                    { return b.inflight.exemptions }

// SendQuantum returns the maximum size of a transmission aggregate: enough
// to amortize per-burst costs, bounded so a burst stays schedulable.
func (b *bbrSender) SendQuantum() protocol.ByteCount { return b.sendQuantum }

func (b *bbrSender) updateSendQuantum() {
	bw, ok := b.bandwidthFilter.Max()
	if !ok {
		b.sendQuantum = b.maxDatagramSize
		return
	}
	rate := Bandwidth(uint64(bw) * uint64(b.pacingGain) / uint64(bbrGainUnit))
	quantum := bytesFromBandwidth(rate, time.Millisecond)
	b.sendQuantum = utils.Min(utils.Max(quantum, b.maxDatagramSize), bbrMaxSendQuantum)
}

func (b *bbrSender) LogOutFlowStatus() {
	var bw uint64
	if estimate, ok := b.bandwidthFilter.Max(); ok {
		bw = uint64(estimate)
	}
	status := logging.OutFlowStatus{
		Algorithm:         b.Name(),
		State:             b.stateForTracer(),
		CongestionWindow:  b.effectiveCongestionWindow(),
		BytesInFlight:     b.inflight.bytes,
		BytesInFlightMax:  b.inflight.max,
		BandwidthEstimate: bw,
		MinRTT:            b.minRtt,
		InRecovery:        b.recoveryState != bbrRecoveryNone,
		Exemptions:        b.inflight.exemptions,
	}
	utils.Debugf("congestion: %s state=%s cwnd=%d inflight=%d btlbw=%d minrtt=%s recovery=%t",
		status.Algorithm, status.State, status.CongestionWindow, status.BytesInFlight,
		status.BandwidthEstimate, status.MinRTT, status.InRecovery)
	if b.tracer != nil {
		b.tracer.UpdatedMetrics(status)
	}
}

func (b *bbrSender) stateForTracer() logging.CongestionState {
	switch b.state {
	case bbrStateStartup:
		return logging.CongestionStateStartup
	case bbrStateDrain:
		return logging.CongestionStateDrain
	case bbrStateProbeBw:
		return logging.CongestionStateProbeBw
	default:
		return logging.CongestionStateProbeRtt
	}
}

func (b *bbrSender) maybeTraceStateChange(state logging.CongestionState) {
	if state == b.lastState {
		return
	}
	b.lastState = state
	if b.tracer != nil {
		b.tracer.UpdatedCongestionState(state)
	}
}
