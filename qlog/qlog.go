// Package qlog serializes congestion controller telemetry to qlog-style
// newline-delimited JSON records.
package qlog

import (
	"io"
	"time"

	"github.com/francoispqt/gojay"

	"github.com/ubc-systopia/quic-cc/congestion"
	"github.com/ubc-systopia/quic-cc/logging"
	"github.com/ubc-systopia/quic-cc/utils"
)

type connectionTracer struct {
	w             io.Writer
	clock         congestion.Clock
	referenceTime time.Time
}

// NewConnectionTracer returns a ConnectionTracer writing one JSON event per
// line. Event times are relative to the tracer's creation.
func NewConnectionTracer(w io.Writer, clock congestion.Clock) logging.ConnectionTracer {
	if clock == nil {
		clock = congestion.DefaultClock{}
	}
	return &connectionTracer{
		w:             w,
		clock:         clock,
		referenceTime: clock.Now(),
	}
}

func (t *connectionTracer) UpdatedCongestionState(state logging.CongestionState) {
	t.export(event{
		RelativeTime: t.clock.Now().Sub(t.referenceTime),
		Name:         "recovery:congestion_state_updated",
		Data:         congestionStateUpdated{state: state},
	})
}

func (t *connectionTracer) UpdatedMetrics(status logging.OutFlowStatus) {
	t.export(event{
		RelativeTime: t.clock.Now().Sub(t.referenceTime),
		Name:         "recovery:metrics_updated",
		Data:         metricsUpdated(status),
	})
}

func (t *connectionTracer) export(ev event) {
	enc := gojay.NewEncoder(t.w)
	if err := enc.EncodeObject(ev); err != nil {
		utils.Errorf("qlog: failed to encode event: %s", err)
		return
	}
	if _, err := io.WriteString(t.w, "\n"); err != nil {
		utils.Errorf("qlog: failed to write event: %s", err)
	}
}

type event struct {
	RelativeTime time.Duration
	Name         string
	Data         gojay.MarshalerJSONObject
}

var _ gojay.MarshalerJSONObject = event{}

func (e event) IsNil() bool { return false }
func (e event) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Float64Key("time", milliseconds(e.RelativeTime))
	enc.StringKey("name", e.Name)
	enc.ObjectKey("data", e.Data)
}

type congestionStateUpdated struct {
	state logging.CongestionState
}

var _ gojay.MarshalerJSONObject = congestionStateUpdated{}

func (u congestionStateUpdated) IsNil() bool { return false }
func (u congestionStateUpdated) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("new", u.state.String())
}

type metricsUpdated logging.OutFlowStatus

var _ gojay.MarshalerJSONObject = metricsUpdated{}

func (m metricsUpdated) IsNil() bool { return false }
func (m metricsUpdated) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("congestion_control", m.Algorithm)
	enc.StringKey("state", m.State.String())
	enc.Int64Key("congestion_window", int64(m.CongestionWindow))
	enc.Int64Key("bytes_in_flight", int64(m.BytesInFlight))
	enc.Int64KeyOmitEmpty("bytes_in_flight_max", int64(m.BytesInFlightMax))
	enc.Int64KeyOmitEmpty("ssthresh", int64(m.SlowStartThreshold))
	enc.Uint64KeyOmitEmpty("bandwidth", m.BandwidthEstimate)
	enc.Float64KeyOmitEmpty("min_rtt", milliseconds(m.MinRTT))
	enc.BoolKeyOmitEmpty("in_recovery", m.InRecovery)
	enc.Uint64KeyOmitEmpty("exemptions", uint64(m.Exemptions))
}

func milliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
