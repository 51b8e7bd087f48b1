package mux

import "testing"

func TestEncodePCR_RoundTrip(t *testing.T) {
	t.Parallel()
	pcr := int64(27_000_000) * 10 // 10 seconds of 27MHz ticks
	base, ext := encodePCR(pcr)
	got := int64(base)*300 + int64(ext)
	if got != pcr {
		t.Errorf("encodePCR round trip = %d, want %d", got, pcr)
	}
}

func TestComputeVBRPCR(t *testing.T) {
	t.Parallel()
	got := computeVBRPCR(90000, 0) // 1 second of 90kHz DTS, no delay
	want := int64(90000) * 300
	if got != want {
		t.Errorf("computeVBRPCR = %d, want %d", got, want)
	}
}

func TestComputeCBRPCR(t *testing.T) {
	t.Parallel()
	// The CBR formula rescales tell()+11 bytes by 8*pcrTimeBase/mux_rate,
	// so after mux_rate bytes the PCR is 8*pcrTimeBase plus the 11-byte
	// offset's share (11*8*pcrTimeBase/mux_rate = 2,376 ticks here).
	muxRate := int64(1_000_000)
	got := computeCBRPCR(muxRate, muxRate, 0)
	want := int64(8*pcrTimeBase) + 11*8*pcrTimeBase/muxRate
	diff := got - want
	if diff < -1000 || diff > 1000 {
		t.Errorf("computeCBRPCR = %d, want close to %d", got, want)
	}
}

func TestRescale(t *testing.T) {
	t.Parallel()
	if got := rescale(100, 10, 5); got != 200 {
		t.Errorf("rescale(100,10,5) = %d, want 200", got)
	}
	if got := rescale(0, 10, 5); got != 0 {
		t.Errorf("rescale(0,...) = %d, want 0", got)
	}
}

func TestM2TSPrefix(t *testing.T) {
	t.Parallel()
	pcr := int64(1) << 35
	prefix := m2tsPrefix(pcr)
	var v uint32
	for _, b := range prefix {
		v = v<<8 | uint32(b)
	}
	if v != uint32(pcr%(1<<30)) {
		t.Errorf("m2tsPrefix = %#x, want %#x", v, uint32(pcr%(1<<30)))
	}
}
