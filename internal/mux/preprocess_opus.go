package mux

// opusControlHeaderLen is the length of the Opus-in-MPEG-TS control
// header, carrying the trim-start sample count ahead of each access
// unit (spec.md §4.4 Opus handling, following the same framing rule
// described in the DVB extension descriptor's channel mapping section).
const opusControlHeaderLen = 2

// preprocessOpus prefixes an Opus access unit with its control header
// and advances the stream's queued-sample accounting used by the Stream
// Manager's 5,760-sample flush threshold.
func preprocessOpus(st *stream, payload []byte, sampleCount int) []byte {
	st.opusPending.queuedSamples += sampleCount

	out := make([]byte, opusControlHeaderLen+len(payload))
	copy(out[opusControlHeaderLen:], payload)

	trim := st.opusPending.trimStart
	out[0] = byte(trim >> 8)
	out[1] = byte(trim)
	return out
}
