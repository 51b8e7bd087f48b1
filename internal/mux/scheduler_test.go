package mux

import "testing"

func TestSIScheduler_PATPMTDue_FirstTimeAlwaysDue(t *testing.T) {
	t.Parallel()
	s := newSIScheduler(&Config{MuxRate: VBRMuxRate})
	if !s.patPmtDue(lastEmission{}, 0, 0, false, false) {
		t.Error("PAT/PMT should be due before the first emission")
	}
}

func TestSIScheduler_PATPMTDue_ForcedOnKeyFrame(t *testing.T) {
	t.Parallel()
	cfg := &Config{MuxRate: VBRMuxRate, Flags: FlagPATPMTAtFrames}
	s := newSIScheduler(cfg)
	last := lastEmission{everSent: true, packetCount: 0, lastDTS: 0}
	if !s.patPmtDue(last, 1000, 0, true, false) {
		t.Error("PAT/PMT should be forced ahead of a video key frame when FlagPATPMTAtFrames is set")
	}
	if s.patPmtDue(last, 1000, 0, false, false) {
		t.Error("PAT/PMT should not be forced on a non-key-frame packet")
	}
}

func TestSIScheduler_PATPMTDue_ForcedOnKeyTransition(t *testing.T) {
	t.Parallel()
	s := newSIScheduler(&Config{MuxRate: VBRMuxRate})
	last := lastEmission{everSent: true, packetCount: 0, lastDTS: 0}
	if !s.patPmtDue(last, 1000, 0, false, true) {
		t.Error("PAT/PMT should be forced on a key frame following a non-key frame")
	}
}

func TestSIScheduler_SDTDue_ElapsedTime(t *testing.T) {
	t.Parallel()
	s := newSIScheduler(&Config{MuxRate: VBRMuxRate, SDTPeriodSeconds: 1.0})
	last := lastEmission{everSent: true, lastDTS: 0}
	if s.sdtDue(last, 0, 89999) {
		t.Error("should not be due before 1 second of DTS elapsed")
	}
	if !s.sdtDue(last, 0, 90000) {
		t.Error("should be due at exactly 1 second of DTS elapsed")
	}
}

func TestSIScheduler_PacketPeriod_S5(t *testing.T) {
	t.Parallel()
	// spec.md S5: CBR mux_rate=1,000,000 B/s, pcr_period=20ms =>
	// pcr_packet_period = 1,000,000 * 20 / (188*8*1000) = 13.
	if got := packetPeriod(1_000_000, 20); got != 13 {
		t.Errorf("packetPeriod(1_000_000, 20) = %d, want 13", got)
	}
}

func TestSIScheduler_DefaultPacketPeriods_CBR(t *testing.T) {
	t.Parallel()
	s := newSIScheduler(&Config{MuxRate: 1_000_000})
	if s.patPeriod != packetPeriod(1_000_000, defaultPATPeriodMS) {
		t.Errorf("patPeriod = %d", s.patPeriod)
	}
	if s.nitPeriod != packetPeriod(1_000_000, defaultNITPeriodMS) {
		t.Errorf("nitPeriod = %d", s.nitPeriod)
	}
}

func TestSIScheduler_VBRFixedPeriods(t *testing.T) {
	t.Parallel()
	s := newSIScheduler(&Config{MuxRate: VBRMuxRate})
	if s.patPeriod != vbrPATPacketPeriod {
		t.Errorf("VBR patPeriod = %d, want %d", s.patPeriod, vbrPATPacketPeriod)
	}
	if s.sdtPeriod != vbrTableOtherPeriod || s.nitPeriod != vbrTableOtherPeriod {
		t.Error("VBR SDT/NIT periods should share vbrTableOtherPeriod")
	}
}

func TestMarkSent(t *testing.T) {
	t.Parallel()
	var last lastEmission
	markSent(&last, 42, 1000)
	if !last.everSent || last.packetCount != 42 || last.lastDTS != 1000 {
		t.Errorf("markSent produced %+v", last)
	}
}
