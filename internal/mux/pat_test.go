package mux

import "testing"

func TestWritePAT_OneService(t *testing.T) {
	t.Parallel()
	sink := &memSink{}
	sw := newSectionWriter(PIDPAT)
	svcs := []service{{programNumber: 1}}
	err := writePAT(sink, sw, 1, 0, svcs, func(s *service) uint16 { return 0x1000 })
	if err != nil {
		t.Fatal(err)
	}
	if sink.buf.Len() != tsPacketSize {
		t.Fatalf("len = %d, want %d", sink.buf.Len(), tsPacketSize)
	}
	out := sink.buf.Bytes()
	if out[5] != 0x00 {
		t.Errorf("table_id at payload offset = %#x, want 0x00", out[5])
	}
}

func TestWritePMT_StreamTypesAndDescriptors(t *testing.T) {
	t.Parallel()
	sink := &memSink{}
	sw := newSectionWriter(0x1000)
	streams := []*stream{
		{pid: 0x100, kind: MediaVideoH264},
		{pid: 0x101, kind: MediaAudioMPEG, language: "por"},
	}
	err := writePMT(sink, sw, 1, 0, 0x100, streams, 0)
	if err != nil {
		t.Fatal(err)
	}
	if sink.buf.Len() == 0 {
		t.Fatal("expected output")
	}
	// After the 6-byte parental rating program descriptor: the H.264
	// entry (no ES descriptors), then the MPEG audio entry with its
	// ISO-639 language descriptor.
	out := sink.buf.Bytes()
	if out[23] != 0x1B {
		t.Errorf("video stream_type = %#x, want 0x1b", out[23])
	}
	if out[28] != 0x03 {
		t.Errorf("audio stream_type = %#x, want 0x03", out[28])
	}
	if out[33] != 0x0A {
		t.Errorf("audio descriptor tag = %#x, want 0x0a (ISO-639)", out[33])
	}
}

func TestWriteSDT_OneSegServiceType(t *testing.T) {
	t.Parallel()
	sink := &memSink{}
	sw := newSectionWriter(PIDSDT)
	svcs := []service{
		{sid: 0xC800, providerName: "prism", serviceName: "full"},
		{sid: 0xC809, providerName: "prism", serviceName: "oneseg"},
	}
	if err := writeSDT(sink, sw, 1, 1, 0, svcs); err != nil {
		t.Fatal(err)
	}
	if sink.buf.Len() == 0 {
		t.Fatal("expected output")
	}
	// service_type is the first byte of each service_descriptor body.
	out := sink.buf.Bytes()
	if out[23] != 0x01 {
		t.Errorf("service_type for 0xC800 = %#x, want 0x01", out[23])
	}
	if out[42] != 0xC0 {
		t.Errorf("service_type for 0xC809 = %#x, want 0xc0", out[42])
	}
}
