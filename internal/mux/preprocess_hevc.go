package mux

// preprocessHEVC mirrors preprocessH264 for HEVC access units: VPS/SPS/PPS
// extradata is emitted once ahead of the first key frame so a decoder
// tuning in mid-stream can still parse the elementary stream.
func preprocessHEVC(st *stream, data []byte, keyFrame bool) []byte {
	if !keyFrame || st.h264SeenSPSPPS || len(st.extradata) == 0 {
		return data
	}
	st.h264SeenSPSPPS = true
	out := make([]byte, 0, len(st.extradata)+len(data))
	out = append(out, st.extradata...)
	out = append(out, data...)
	return out
}
