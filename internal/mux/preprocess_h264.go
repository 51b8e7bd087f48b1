package mux

// preprocessH264 prefixes the stream's extradata (SPS/PPS) ahead of the
// first key frame of the stream. The access unit itself is passed through
// unchanged: no AUD is inserted and start codes are not checked.
func preprocessH264(st *stream, data []byte, keyFrame bool) []byte {
	if !keyFrame || st.h264SeenSPSPPS || len(st.extradata) == 0 {
		return data
	}
	st.h264SeenSPSPPS = true
	out := make([]byte, 0, len(st.extradata)+len(data))
	out = append(out, st.extradata...)
	out = append(out, data...)
	return out
}
