package mux

// adtsHeaderLen is the fixed length of an ADTS header without CRC.
const adtsHeaderLen = 7

var aacSampleRateTable = [...]int{
	96000, 88200, 64000, 48000, 44100, 32000,
	24000, 22050, 16000, 12000, 11025, 8000, 7350,
}

// preprocessAAC prefixes a raw AAC access unit with an ADTS header when
// the muxer is not configured for LATM framing (spec.md §4.1 stream-type
// note: AAC defaults to ADTS, 0x11/LATM is opt-in via FlagAACLATM).
func preprocessAAC(flags Flags, profileObjectType, sampleRate, channels int, payload []byte) []byte {
	if flags.has(FlagAACLATM) {
		return payload
	}

	freqIdx := 4 // default 44.1kHz
	for i, rate := range aacSampleRateTable {
		if rate == sampleRate {
			freqIdx = i
			break
		}
	}

	frameLen := adtsHeaderLen + len(payload)
	out := make([]byte, frameLen)
	out[0] = 0xFF
	out[1] = 0xF1 // MPEG-4, no CRC
	out[2] = byte((profileObjectType-1)<<6) | byte(freqIdx<<2) | byte((channels>>2)&0x01)
	out[3] = byte((channels&0x03)<<6) | byte(frameLen>>11)
	out[4] = byte(frameLen >> 3)
	out[5] = byte(frameLen<<5) | 0x1F
	out[6] = 0xFC
	copy(out[adtsHeaderLen:], payload)
	return out
}
