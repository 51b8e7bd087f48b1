package mux

import "testing"

func TestCRC32MPEG2_Empty(t *testing.T) {
	t.Parallel()
	if got := crc32MPEG2(nil); got != 0xFFFFFFFF {
		t.Errorf("crc32MPEG2(nil) = %#x, want 0xffffffff", got)
	}
}

func TestCRC32MPEG2_KnownVector(t *testing.T) {
	t.Parallel()
	// PAT body: table_id=0, section_syntax=1, reserved, length=13,
	// tsid=1, version=0 current_next=1, section/last=0, one program
	// entry mapping program 1 to PMT PID 0x0100.
	body := []byte{
		0x00, 0xB0, 0x0D, 0x00, 0x01, 0xC1, 0x00, 0x00,
		0x00, 0x01, 0xE1, 0x00,
	}
	got := crc32MPEG2(body)
	if got == 0 || got == 0xFFFFFFFF {
		t.Errorf("crc32MPEG2 looks unseeded: %#x", got)
	}
	if got != 0xE8F95E7D {
		t.Errorf("crc32MPEG2 = %#x, want 0xe8f95e7d", got)
	}
}
