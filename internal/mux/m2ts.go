package mux

// m2tsAC3SubstreamID is the Blu-ray PES extension sub_stream_id for
// the primary AC-3 audio track (spec.md §4.7, Blu-ray compatibility).
const m2tsAC3SubstreamID = 0x71

// m2tsAC3Extension prepends the Blu-ray private_stream_1 extension
// header (sub_stream_id + 3 reserved bytes) ahead of an AC-3 access
// unit, used when the AC-3 PES carries M2TS stream_id 0xFD.
func m2tsAC3Extension(payload []byte) []byte {
	out := make([]byte, 4+len(payload))
	out[0] = m2tsAC3SubstreamID
	copy(out[4:], payload)
	return out
}

// m2tsSink wraps a Sink with the Blu-ray M2TS 4-byte TP_extra_header
// ahead of every 188-byte TS cell written through it (spec.md §4.7,
// invariant 2). Tell() still reports the underlying 188-byte TS
// stream offset: the CBR/VBR get_pcr() formulas are defined against
// that stream, not the 192-byte M2TS framing, so wrapping must not
// perturb PCR math.
type m2tsSink struct {
	Sink
	muxRate     int64
	firstPCR    int64
	prefixBytes int64
}

func newM2TSSink(sink Sink, muxRate, firstPCR int64) *m2tsSink {
	return &m2tsSink{Sink: sink, muxRate: muxRate, firstPCR: firstPCR}
}

func (s *m2tsSink) Write(cell []byte) (int, error) {
	if len(cell) != tsPacketSize {
		return s.Sink.Write(cell)
	}
	pcr := computeCBRPCR(s.Tell(), s.muxRate, s.firstPCR)
	prefix := m2tsPrefix(pcr)
	if _, err := s.Sink.Write(prefix[:]); err != nil {
		return 0, err
	}
	s.prefixBytes += int64(len(prefix))
	return s.Sink.Write(cell)
}

// Tell reports the bytes written through s, not counting the prefixes.
func (s *m2tsSink) Tell() int64 {
	return s.Sink.Tell() - s.prefixBytes
}
