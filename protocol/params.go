package protocol

// DefaultMaxDatagramSize is the default maximum packet size used on a path
// before the real value is learned from the handshake.
const DefaultMaxDatagramSize ByteCount = 1200

// InitialCongestionWindowPackets is the initial congestion window in packets.
const InitialCongestionWindowPackets = 10

// MinCongestionWindowPackets is the minimum congestion window in packets.
// The congestion window never drops below 2 full-sized packets.
const MinCongestionWindowPackets = 2

// MaxCongestionWindowPackets is the maximum congestion window in packets.
const MaxCongestionWindowPackets = 10000

// PacingBurstPackets is the congestion window size (in packets) below which
// packets are sent as an unpaced burst.
const PacingBurstPackets = 8

// MaxCongestionExemptions is the maximum number of packets that may be queued
// to bypass the congestion window.
const MaxCongestionExemptions = 255
