package congestion

import "github.com/ubc-systopia/quic-cc/protocol"

// New creates the congestion controller selected by the settings. All state
// is allocated here; the controller performs no allocations afterwards.
func New(settings Settings) Controller {
	if settings.Clock == nil {
		settings.Clock = DefaultClock{}
	}
	if settings.InitialWindowPackets <= 0 {
		settings.InitialWindowPackets = protocol.InitialCongestionWindowPackets
	}
	if settings.MaxDatagramSize <= 0 {
		settings.MaxDatagramSize = protocol.DefaultMaxDatagramSize
	}
	switch settings.Algorithm {
	case AlgorithmBBR:
		return newBBRSender(settings)
	default:
		return newCubicSender(settings)
	}
}
