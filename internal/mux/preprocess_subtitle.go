package mux

// preprocessSubtitle wraps a DVB or Teletext subtitle payload in its
// PES private_stream_1 data_identifier framing (spec.md §4.8).
func preprocessSubtitle(kind MediaKind, payload []byte) []byte {
	if kind == MediaSubtitleTeletext {
		out := make([]byte, 0, len(payload)+2)
		out = append(out, 0x10, 0x00)
		return append(out, payload...)
	}
	out := make([]byte, 0, len(payload)+3)
	out = append(out, 0x20, 0x00)
	out = append(out, payload...)
	return append(out, 0xFF)
}
