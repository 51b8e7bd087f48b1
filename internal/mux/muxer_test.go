package mux

import (
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		TransportStreamID: 1,
		OriginalNetworkID: 1,
		ServiceID:         1,
		MuxRate:           VBRMuxRate,
		NowFunc:           func() time.Time { return time.Unix(1_700_000_000, 0) },
	}
}

func TestNewMuxer_DefaultProfile(t *testing.T) {
	t.Parallel()
	sink := &memSink{}
	m, err := NewMuxer(nil, sink, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(m.services) != 1 {
		t.Fatalf("len(services) = %d, want 1", len(m.services))
	}
}

func TestMuxer_AddStreamAssignsPCRCarrier(t *testing.T) {
	t.Parallel()
	sink := &memSink{}
	m, err := NewMuxer(nil, sink, testConfig())
	if err != nil {
		t.Fatal(err)
	}

	videoIdx, err := m.AddStream(StreamDesc{Kind: MediaVideoH264})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.AddStream(StreamDesc{Kind: MediaAudioMPEG}); err != nil {
		t.Fatal(err)
	}

	svc := m.services[0]
	if svc.pcrPID != m.streams[videoIdx].pid {
		t.Errorf("pcrPID = %#x, want video pid %#x", svc.pcrPID, m.streams[videoIdx].pid)
	}
}

func TestMuxer_AddPacketFlushesVideoImmediately(t *testing.T) {
	t.Parallel()
	sink := &memSink{}
	m, err := NewMuxer(nil, sink, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	videoIdx, err := m.AddStream(StreamDesc{Kind: MediaVideoH264})
	if err != nil {
		t.Fatal(err)
	}

	err = m.AddPacket(Packet{
		StreamIndex: videoIdx,
		Data:        []byte{0x00, 0x00, 0x00, 0x01, 0x65, 0xAA, 0xBB},
		PTS:         90000,
		DTS:         90000,
		KeyFrame:    true,
	})
	if err != nil {
		t.Fatal(err)
	}

	if sink.buf.Len() == 0 {
		t.Fatal("expected output bytes after a key-frame packet")
	}
	if sink.buf.Len()%tsPacketSize != 0 {
		t.Errorf("output length %d not a multiple of %d", sink.buf.Len(), tsPacketSize)
	}

	out := sink.buf.Bytes()
	if out[0] != syncByte {
		t.Errorf("first byte = %#x, want sync byte", out[0])
	}
}

func TestMuxer_Close_FlushesPending(t *testing.T) {
	t.Parallel()
	sink := &memSink{}
	m, err := NewMuxer(nil, sink, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	audioIdx, err := m.AddStream(StreamDesc{Kind: MediaAudioMPEG})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.AddPacket(Packet{StreamIndex: audioIdx, Data: []byte{0x01, 0x02}, PTS: 0, DTS: 0}); err != nil {
		t.Fatal(err)
	}
	before := sink.buf.Len()
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if sink.buf.Len() <= before {
		t.Error("Close did not flush pending audio payload")
	}
}

func TestMuxer_AddPacket_InvalidStreamIndex(t *testing.T) {
	t.Parallel()
	sink := &memSink{}
	m, err := NewMuxer(nil, sink, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	err = m.AddPacket(Packet{StreamIndex: 99})
	if err == nil {
		t.Error("expected error for out-of-range stream index")
	}
}
