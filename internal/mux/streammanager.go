package mux

// opusFlushThresholdSamples is the Opus packet accumulation limit before
// a forced flush (spec.md §4.4): 5,760 samples at 48kHz is the largest
// single Opus frame duration (120ms).
const opusFlushThresholdSamples = 5760

// shouldFlushImmediately reports whether a freshly appended access unit
// must be flushed as its own PES packet rather than accumulated with
// subsequent packets, per spec.md §4.4's Stream Manager policy: video,
// subtitle and oversize-audio payloads flush immediately; small audio
// payloads accumulate up to the configured PES payload size or an Opus
// sample-count threshold.
func shouldFlushImmediately(st *stream, cfg *Config) bool {
	switch {
	case st.kind.IsVideo(), st.kind.IsSubtitle():
		return true
	case len(st.pending) >= cfg.PESPayloadSize:
		return true
	case st.kind == MediaAudioOpus && st.opusPending.queuedSamples >= opusFlushThresholdSamples:
		return true
	default:
		return false
	}
}

// appendPending merges pkt into st's pending PES payload, adopting its
// timestamps when this is the first access unit in the accumulation
// window, and returns whether the accumulation must now flush.
func appendPending(st *stream, cfg *Config, pkt Packet) bool {
	if len(st.pending) == 0 {
		st.payloadPTS = pkt.PTS
		st.payloadDTS = pkt.DTS
		st.payloadKey = pkt.KeyFrame
		if pkt.StreamIDOverride != 0 {
			st.streamIDOverr = pkt.StreamIDOverride
		}
	}
	st.pending = append(st.pending, pkt.Data...)
	return shouldFlushImmediately(st, cfg)
}

// shiftTimestamp applies the configured max_delay shift to a PTS/DTS
// value so stream-relative timelines line up after buffering, per
// spec.md §4.4.
func shiftTimestamp(ts, maxDelay int64) int64 {
	if ts == NoTimestamp {
		return NoTimestamp
	}
	return ts + maxDelay
}

// resetPending clears a stream's accumulation state after a flush.
func resetPending(st *stream) {
	st.pending = st.pending[:0]
	st.opusPending = opusState{}
}
