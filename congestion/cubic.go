package congestion

import (
	"math"
	"time"

	"github.com/ubc-systopia/quic-cc/protocol"
)

const (
	// betaNumerator over betaDenominator is the multiplicative window
	// decrease factor 0.7 (RFC 9438). Window reductions use integer
	// arithmetic so they are exact and reproducible.
	betaNumerator   = 7
	betaDenominator = 10
	// fastConvergence* form the factor 0.85 = (1 + beta) / 2 that dampens
	// the window maximum when the current loss happened below the previous
	// one, freeing capacity faster for new flows.
	fastConvergenceNumerator   = 17
	fastConvergenceDenominator = 20
	// cubicC is the cubic growth constant, in MSS per second cubed.
	cubicC = 0.4
	// aimdGain is the additive-increase gain of the TCP-friendly window
	// estimate: 3 * (1 - beta) / (1 + beta).
	aimdGain = 3 * (1 - 0.7) / (1 + 0.7)
)

// Cubic implements the window growth function of RFC 9438: a cubic curve
// anchored at the window reached before the last congestion event, plus the
// TCP-friendly AIMD estimate that keeps the flow competitive with Reno on
// short-RTT paths.
type Cubic struct {
	maxDatagramSize protocol.ByteCount

	// Start of the current congestion avoidance cycle.
	epoch time.Time
	// Time of the last window update, to discount idle periods.
	lastUpdateTime time.Time
	// Window size just before the last reduction, lowered by the fast
	// convergence factor when that loss came in below windowLastMax.
	windowMax protocol.ByteCount
	// Window size before the reduction prior to that one.
	windowLastMax protocol.ByteCount
	// The window the cubic function starts from at the epoch.
	originPoint protocol.ByteCount
	// Time offset (seconds) at which the curve regains originPoint.
	k float64

	// TCP-friendly window estimate.
	aimdWindow protocol.ByteCount
}

// NewCubic returns a new Cubic for the given datagram size.
func NewCubic(maxDatagramSize protocol.ByteCount) Cubic {
	return Cubic{maxDatagramSize: maxDatagramSize}
}

// Reset clears all state, including the window history.
func (c *Cubic) Reset() {
	c.epoch = time.Time{}
	c.lastUpdateTime = time.Time{}
	c.windowMax = 0
	c.windowLastMax = 0
	c.originPoint = 0
	c.k = 0
	c.aimdWindow = 0
}

// OnApplicationLimited invalidates the current epoch. The curve restarts from
// the current window on the next ack, so an idle period doesn't translate
// into a window burst.
func (c *Cubic) OnApplicationLimited() {
	c.epoch = time.Time{}
}

// CongestionWindowAfterPacketLoss computes the reduced window after a
// congestion event and records the window maximum for the next cycle.
func (c *Cubic) CongestionWindowAfterPacketLoss(currentWindow protocol.ByteCount) protocol.ByteCount {
	if currentWindow < c.windowLastMax {
		// Loss below the previous maximum: another flow is competing
		// for the bottleneck, release capacity faster.
		c.windowLastMax = currentWindow
		c.windowMax = currentWindow * fastConvergenceNumerator / fastConvergenceDenominator
	} else {
		c.windowLastMax = currentWindow
		c.windowMax = currentWindow
	}
	c.epoch = time.Time{}
	return currentWindow * betaNumerator / betaDenominator
}

// CongestionWindowAfterAck computes the window after ackedBytes were newly
// acknowledged during congestion avoidance. It returns the larger of the
// cubic target and the TCP-friendly estimate, limited to at most one datagram
// above currentWindow and never below currentWindow.
func (c *Cubic) CongestionWindowAfterAck(
	ackedBytes protocol.ByteCount,
	currentWindow protocol.ByteCount,
	smoothedRTT time.Duration,
	eventTime time.Time,
) protocol.ByteCount {
	if c.epoch.IsZero() {
		c.epoch = eventTime
		c.lastUpdateTime = eventTime
		if currentWindow < c.windowMax {
			c.k = math.Cbrt(float64(c.windowMax-currentWindow) / (cubicC * float64(c.maxDatagramSize)))
			c.originPoint = c.windowMax
		} else {
			c.k = 0
			c.originPoint = currentWindow
		}
		c.aimdWindow = currentWindow
	} else if idle := eventTime.Sub(c.lastUpdateTime); idle > smoothedRTT && smoothedRTT > 0 {
		// Shift the epoch over idle gaps so the curve doesn't credit
		// time in which nothing was sent.
		c.epoch = c.epoch.Add(idle - smoothedRTT)
	}
	c.lastUpdateTime = eventTime

	// TCP-friendly estimate: roughly aimdGain segments per window of acked data.
	c.aimdWindow += protocol.ByteCount(aimdGain * float64(c.maxDatagramSize) * float64(ackedBytes) / float64(c.aimdWindow))

	t := eventTime.Sub(c.epoch).Seconds()
	d := t - c.k
	target := c.originPoint + protocol.ByteCount(cubicC*float64(c.maxDatagramSize)*d*d*d)

	if target < c.aimdWindow {
		target = c.aimdWindow
	}
	// Pace the growth: at most one datagram per ack.
	if target > currentWindow+c.maxDatagramSize {
		target = currentWindow + c.maxDatagramSize
	}
	if target < currentWindow {
		target = currentWindow
	}
	return target
}

// WindowMax returns the window size recorded at the last congestion event.
func (c *Cubic) WindowMax() protocol.ByteCount {
	return c.windowMax
}
