package mux

import "testing"

func TestConfig_WithDefaults(t *testing.T) {
	t.Parallel()
	cfg := Config{}
	out := cfg.withDefaults()
	if out.PESPayloadSize != defaultPESPayloadSize {
		t.Errorf("PESPayloadSize = %d, want %d", out.PESPayloadSize, defaultPESPayloadSize)
	}
	if out.PMTStartPID != 0x1000 {
		t.Errorf("PMTStartPID = %#x, want 0x1000", out.PMTStartPID)
	}
	if out.NowFunc == nil {
		t.Error("NowFunc should default to a non-nil func")
	}
}

func TestConfig_IsVBR(t *testing.T) {
	t.Parallel()
	cases := []struct {
		rate int64
		want bool
	}{
		{0, true},
		{VBRMuxRate, true},
		{1_000_000, false},
	}
	for _, c := range cases {
		cfg := Config{MuxRate: c.rate}
		if got := cfg.IsVBR(); got != c.want {
			t.Errorf("IsVBR(rate=%d) = %v, want %v", c.rate, got, c.want)
		}
	}
}
