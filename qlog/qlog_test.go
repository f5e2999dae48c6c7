package qlog

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/ubc-systopia/quic-cc/logging"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Tracer", func() {
	var (
		buf    *bytes.Buffer
		tracer logging.ConnectionTracer
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		tracer = NewConnectionTracer(buf, nil)
	})

	decode := func() map[string]interface{} {
		var m map[string]interface{}
		ExpectWithOffset(1, json.Valid(buf.Bytes())).To(BeTrue())
		ExpectWithOffset(1, json.Unmarshal(buf.Bytes(), &m)).To(Succeed())
		return m
	}

	It("encodes a state update", func() {
		tracer.UpdatedCongestionState(logging.CongestionStateDrain)
		m := decode()
		Expect(m["name"]).To(Equal("recovery:congestion_state_updated"))
		data := m["data"].(map[string]interface{})
		Expect(data["new"]).To(Equal("drain"))
	})

	It("encodes a metrics update", func() {
		tracer.UpdatedMetrics(logging.OutFlowStatus{
			Algorithm:          "cubic",
			State:              logging.CongestionStateCongestionAvoidance,
			CongestionWindow:   24000,
			BytesInFlight:      12000,
			BytesInFlightMax:   13200,
			SlowStartThreshold: 70000,
			InRecovery:         true,
			Exemptions:         2,
		})
		m := decode()
		Expect(m["name"]).To(Equal("recovery:metrics_updated"))
		data := m["data"].(map[string]interface{})
		Expect(data["congestion_control"]).To(Equal("cubic"))
		Expect(data["state"]).To(Equal("congestion_avoidance"))
		Expect(data["congestion_window"]).To(BeEquivalentTo(24000))
		Expect(data["bytes_in_flight"]).To(BeEquivalentTo(12000))
		Expect(data["bytes_in_flight_max"]).To(BeEquivalentTo(13200))
		Expect(data["ssthresh"]).To(BeEquivalentTo(70000))
		Expect(data["in_recovery"]).To(Equal(true))
		Expect(data["exemptions"]).To(BeEquivalentTo(2))
	})

	It("encodes a BBR metrics update", func() {
		tracer.UpdatedMetrics(logging.OutFlowStatus{
			Algorithm:         "bbr",
			State:             logging.CongestionStateProbeBw,
			CongestionWindow:  48000,
			BytesInFlight:     24000,
			BandwidthEstimate: 1920000,
			MinRTT:            50 * time.Millisecond,
		})
		data := decode()["data"].(map[string]interface{})
		Expect(data["congestion_control"]).To(Equal("bbr"))
		Expect(data["state"]).To(Equal("probe_bw"))
		Expect(data["bandwidth"]).To(BeEquivalentTo(1920000))
		Expect(data["min_rtt"]).To(BeEquivalentTo(50))
	})

	It("omits empty optional fields", func() {
		tracer.UpdatedMetrics(logging.OutFlowStatus{
			Algorithm:        "cubic",
			CongestionWindow: 12000,
		})
		data := decode()["data"].(map[string]interface{})
		Expect(data).ToNot(HaveKey("ssthresh"))
		Expect(data).ToNot(HaveKey("bandwidth"))
		Expect(data).ToNot(HaveKey("in_recovery"))
	})

	It("writes one event per line", func() {
		tracer.UpdatedCongestionState(logging.CongestionStateStartup)
		tracer.UpdatedCongestionState(logging.CongestionStateDrain)
		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte{'\n'})
		Expect(lines).To(HaveLen(2))
		for _, line := range lines {
			Expect(json.Valid(line)).To(BeTrue())
		}
	})
})
