package logging

// CongestionState is the state of the congestion controller, as reported to a
// ConnectionTracer. Loss-based and model-based algorithms report from the same
// set; an algorithm only ever uses the subset that applies to it.
type CongestionState uint8

const (
	// CongestionStateSlowStart is the slow start phase of CUBIC
	CongestionStateSlowStart CongestionState = iota
	// CongestionStateCongestionAvoidance is the congestion avoidance phase of CUBIC
	CongestionStateCongestionAvoidance
	// CongestionStateRecovery is the recovery phase after a congestion event
	CongestionStateRecovery
	// CongestionStateApplicationLimited means the sender is application limited
	CongestionStateApplicationLimited
	// CongestionStateStartup is the bandwidth probing phase of BBR
	CongestionStateStartup
	// CongestionStateDrain is the queue draining phase of BBR
	CongestionStateDrain
	// CongestionStateProbeBw is the steady state of BBR
	CongestionStateProbeBw
	// CongestionStateProbeRtt is the RTT probing phase of BBR
	CongestionStateProbeRtt
)

func (s CongestionState) String() string {
	switch s {
	case CongestionStateSlowStart:
		return "slow_start"
	case CongestionStateCongestionAvoidance:
		return "congestion_avoidance"
	case CongestionStateRecovery:
		return "recovery"
	case CongestionStateApplicationLimited:
		return "application_limited"
	case CongestionStateStartup:
		return "startup"
	case CongestionStateDrain:
		return "drain"
	case CongestionStateProbeBw:
		return "probe_bw"
	case CongestionStateProbeRtt:
		return "probe_rtt"
	default:
		return "unknown"
	}
}
