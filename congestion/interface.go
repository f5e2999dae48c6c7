// Package congestion implements the congestion control core of a QUIC sender:
// a CUBIC and a BBR controller behind a single interface, driven exclusively
// by send / ack / loss events and consulted by the send loop for allowances.
package congestion

import (
	"time"

	"github.com/ubc-systopia/quic-cc/logging"
	"github.com/ubc-systopia/quic-cc/protocol"
)

// Algorithm selects the congestion control algorithm used for a connection.
type Algorithm uint8

const (
	// AlgorithmCubic is loss-based congestion control (RFC 9438)
	AlgorithmCubic Algorithm = iota
	// AlgorithmBBR is model-based congestion control (BBR v1)
	AlgorithmBBR
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmCubic:
		return "cubic"
	case AlgorithmBBR:
		return "bbr"
	default:
		return "unknown"
	}
}

// Settings configures a congestion controller at creation time.
type Settings struct {
	Algorithm Algorithm
	// InitialWindowPackets is the initial congestion window in packets.
	// Defaults to protocol.InitialCongestionWindowPackets.
	InitialWindowPackets int
	// MaxDatagramSize is the maximum QUIC packet size on this path.
	// Fixed for the lifetime of the controller.
	MaxDatagramSize protocol.ByteCount
	PacingEnabled   bool
	// Clock is used where no event time is available (e.g. on Reset).
	// Defaults to DefaultClock.
	Clock Clock
	// Tracer receives state transitions and metric updates. May be nil.
	Tracer logging.ConnectionTracer
}

// A Controller decides how many bytes may be placed on the wire and how to
// react to acknowledgements and loss. One instance exists per connection.
//
// The caller serializes all calls: the controller takes no locks and never
// blocks. Events must be delivered in causal order with respect to the packet
// numbers they reference, and OnSpuriousCongestionEvent must follow the
// OnDataLost it rescinds.
type Controller interface {
	// CanSend says whether any byte may be sent right now.
	CanSend() bool
	// GetSendAllowance returns the number of bytes that may be sent
	// immediately. timeSinceLastSend is used to refill the pacing budget;
	// if it is not valid and pacing applies, the allowance is zero.
	GetSendAllowance(timeSinceLastSend time.Duration, timeSinceLastSendValid bool) protocol.ByteCount
	// OnDataSent is called when retransmittable data is sent.
	OnDataSent(bytes protocol.ByteCount)
	// OnDataInvalidated is called when in-flight data is neither acked nor
	// lost (e.g. discarded with its packet number space). It reports
	// whether sending was unblocked.
	OnDataInvalidated(bytes protocol.ByteCount) bool
	// OnDataAcknowledged is called for every processed ACK. It reports
	// whether sending was unblocked.
	OnDataAcknowledged(ack *AckEvent) bool
	// OnDataLost is called when packets are declared lost.
	OnDataLost(loss *LossEvent)
	// OnSpuriousCongestionEvent rolls back the response to the most recent
	// loss event, all of whose packets turned out to be acked after all.
	// It reports whether sending was unblocked.
	OnSpuriousCongestionEvent() bool
	// SetExemption allows the next numPackets packets to bypass the
	// congestion window, e.g. for loss probes.
	SetExemption(numPackets uint8)
	// Reset returns the controller to its post-creation state. A full
	// reset also clears the in-flight accounting and all history.
	Reset(fullReset bool)
	// SetAppLimited marks the current delivery-rate samples as application
	// limited. Only meaningful for model-based algorithms.
	SetAppLimited()
	IsAppLimited() bool
	GetCongestionWindow() protocol.ByteCount
	GetBytesInFlight() protocol.ByteCount
	GetBytesInFlightMax() protocol.ByteCount
	GetExemptions() uint8
	// LogOutFlowStatus emits a telemetry snapshot of the flow state.
	LogOutFlowStatus()
	Name() string
}
