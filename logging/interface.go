// Package logging defines the interface the congestion controller uses to
// report its state to a tracer.
package logging

import (
	"time"

	"github.com/ubc-systopia/quic-cc/protocol"
)

// An OutFlowStatus is a snapshot of the send side of a connection's flow state.
type OutFlowStatus struct {
	// Algorithm is the name of the congestion control algorithm.
	Algorithm string
	// State is the current phase of the algorithm.
	State CongestionState
	CongestionWindow protocol.ByteCount
	BytesInFlight    protocol.ByteCount
	BytesInFlightMax protocol.ByteCount
	// SlowStartThreshold is only meaningful for loss-based algorithms.
	SlowStartThreshold protocol.ByteCount
	// BandwidthEstimate is the bottleneck bandwidth estimate in bits per
	// second. Zero if the algorithm doesn't model bandwidth.
	BandwidthEstimate uint64
	// MinRTT is the algorithm's minimum RTT estimate. Zero if unknown.
	MinRTT     time.Duration
	InRecovery bool
	Exemptions uint8
}

// A ConnectionTracer records congestion controller events of a single connection.
// All methods are called from the connection's serialized context and must not block.
type ConnectionTracer interface {
	UpdatedCongestionState(CongestionState)
	UpdatedMetrics(OutFlowStatus)
}
