package mux

// siScheduler decides when PAT/PMT/SDT/NIT/TOT/EIT must be (re)sent,
// following spec.md §4.5: a packet-count trigger derived from
// mux_rate * retrans_ms / (188*8*1000) (or a fixed VBR packet count),
// a DTS-elapsed trigger that takes over once a user period in seconds
// is configured, and a forced trigger ahead of video key frames.
type siScheduler struct {
	cfg *Config

	patPeriod int
	sdtPeriod int
	nitPeriod int
	totPeriod int
	eitPeriod int
}

// Default retransmission periods in milliseconds (spec.md §4.5).
const (
	defaultPATPeriodMS = 100
	defaultSDTPeriodMS = 500
	defaultNITPeriodMS = 50
	defaultTOTPeriodMS = 100
	defaultEITPeriodMS = 500
)

// VBR mode replaces the mux_rate-derived packet periods with fixed
// packet counts (spec.md §4.5).
const (
	vbrPATPacketPeriod  = 40
	vbrTableOtherPeriod = 200 // SDT, NIT, TOT, EIT share this VBR period
)

func newSIScheduler(cfg *Config) *siScheduler {
	s := &siScheduler{cfg: cfg}
	if cfg.IsVBR() {
		s.patPeriod = vbrPATPacketPeriod
		s.sdtPeriod = vbrTableOtherPeriod
		s.nitPeriod = vbrTableOtherPeriod
		s.totPeriod = vbrTableOtherPeriod
		s.eitPeriod = vbrTableOtherPeriod
		return s
	}
	s.patPeriod = packetPeriod(cfg.MuxRate, defaultPATPeriodMS)
	s.sdtPeriod = packetPeriod(cfg.MuxRate, defaultSDTPeriodMS)
	s.nitPeriod = packetPeriod(cfg.MuxRate, defaultNITPeriodMS)
	s.totPeriod = packetPeriod(cfg.MuxRate, defaultTOTPeriodMS)
	s.eitPeriod = packetPeriod(cfg.MuxRate, defaultEITPeriodMS)
	return s
}

// packetPeriod implements spec.md §4.5's
// mux_rate * retrans_ms / (188*8*1000) formula (S5 expects 13 for a
// 1,000,000 B/s mux_rate at a 20ms PCR period).
func packetPeriod(muxRate int64, periodMS int) int {
	v := (muxRate * int64(periodMS)) / (tsPacketSize * 8 * 1000)
	if v < 1 {
		v = 1
	}
	return int(v)
}

// due reports whether a table is due for retransmission: always true
// before its first emission or when force fires; otherwise the
// packet-count trigger applies unless a user period in seconds is
// configured, which switches to a DTS-elapsed trigger instead (spec.md
// §4.5: "User-provided period in seconds disables the packet-count
// trigger").
func (s *siScheduler) due(last lastEmission, tellPackets int64, period int, userPeriodSeconds float64, dts int64, force bool) bool {
	if !last.everSent || force {
		return true
	}
	if userPeriodSeconds > 0 {
		return float64(dts-last.lastDTS) >= userPeriodSeconds*90000
	}
	if period <= 0 {
		return false
	}
	return tellPackets-int64(last.packetCount) >= int64(period)
}

// patPmtDue reports whether PAT/PMT are due: the shared packet-count/
// DTS gate, forced ahead of every video key frame when
// FlagPATPMTAtFrames is set, forced on every key frame that follows a
// non-key frame (spec.md §4.5's prev_payload_key == 0 rule), and
// forced whenever FlagReemitHeaders is set.
func (s *siScheduler) patPmtDue(last lastEmission, tell int64, dts int64, nextIsKeyFrame, keyTransition bool) bool {
	force := keyTransition ||
		s.cfg.Flags.has(FlagReemitHeaders) ||
		(s.cfg.Flags.has(FlagPATPMTAtFrames) && nextIsKeyFrame)
	return s.due(last, tell/tsPacketSize, s.patPeriod, s.cfg.PATPeriodSeconds, dts, force)
}

// sdtDue, nitDue, totDue and eitDue each gate their own table
// independently; all four share the sdt_period user-seconds override
// since spec.md exposes a single knob for the low-frequency group.
func (s *siScheduler) sdtDue(last lastEmission, tell, dts int64) bool {
	return s.due(last, tell/tsPacketSize, s.sdtPeriod, s.cfg.SDTPeriodSeconds, dts, false)
}

func (s *siScheduler) nitDue(last lastEmission, tell, dts int64) bool {
	return s.due(last, tell/tsPacketSize, s.nitPeriod, s.cfg.SDTPeriodSeconds, dts, false)
}

func (s *siScheduler) totDue(last lastEmission, tell, dts int64) bool {
	return s.due(last, tell/tsPacketSize, s.totPeriod, s.cfg.SDTPeriodSeconds, dts, false)
}

func (s *siScheduler) eitDue(last lastEmission, tell, dts int64) bool {
	return s.due(last, tell/tsPacketSize, s.eitPeriod, s.cfg.SDTPeriodSeconds, dts, false)
}

// markSent updates last to reflect an emission at the given packet
// count and DTS.
func markSent(last *lastEmission, packetCount int, dts int64) {
	last.everSent = true
	last.packetCount = packetCount
	last.lastDTS = dts
}
