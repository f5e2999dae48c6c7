package congestion

import (
	"github.com/ubc-systopia/quic-cc/protocol"
	"github.com/ubc-systopia/quic-cc/utils"
)

// inflightTracker is the bookkeeping shared by all congestion controllers:
// bytes in flight, the high-water mark, and the exemption counter.
type inflightTracker struct {
	bytes      protocol.ByteCount
	max        protocol.ByteCount
	exemptions uint8
}

func (t *inflightTracker) onSent(bytes protocol.ByteCount) {
	t.bytes += bytes
	t.max = utils.Max(t.max, t.bytes)
	if t.exemptions > 0 {
		t.exemptions--
	}
}

// remove subtracts acked, lost or invalidated bytes. The count saturates at
// zero; going below is a caller bug.
func (t *inflightTracker) remove(bytes protocol.ByteCount) {
	if bytes > t.bytes {
		utils.Debugf("congestion: BytesInFlight underflow: removing %d of %d", bytes, t.bytes)
		t.bytes = 0
		return
	}
	t.bytes -= bytes
}

func (t *inflightTracker) addExemptions(numPackets uint8) {
	if numPackets > protocol.MaxCongestionExemptions-t.exemptions {
		t.exemptions = protocol.MaxCongestionExemptions
		return
	}
	t.exemptions += numPackets
}

func (t *inflightTracker) reset(fullReset bool) {
	if fullReset {
		t.bytes = 0
		t.max = 0
	}
	t.exemptions = 0
}
