package mux

import "testing"

func TestShouldFlushImmediately_Video(t *testing.T) {
	t.Parallel()
	st := &stream{kind: MediaVideoH264}
	cfg := &Config{PESPayloadSize: 1000}
	if !shouldFlushImmediately(st, cfg) {
		t.Error("video should always flush immediately")
	}
}

func TestShouldFlushImmediately_SmallAudioAccumulates(t *testing.T) {
	t.Parallel()
	st := &stream{kind: MediaAudioAAC, pending: []byte{1, 2, 3}}
	cfg := &Config{PESPayloadSize: 1000}
	if shouldFlushImmediately(st, cfg) {
		t.Error("small audio payload should accumulate, not flush")
	}
}

func TestShouldFlushImmediately_OpusThreshold(t *testing.T) {
	t.Parallel()
	st := &stream{kind: MediaAudioOpus}
	st.opusPending.queuedSamples = opusFlushThresholdSamples
	cfg := &Config{PESPayloadSize: 1_000_000}
	if !shouldFlushImmediately(st, cfg) {
		t.Error("opus stream at sample threshold should flush")
	}
}

func TestAppendPending_AdoptsTimestampsOnFirstAppend(t *testing.T) {
	t.Parallel()
	st := &stream{kind: MediaAudioAAC}
	cfg := &Config{PESPayloadSize: 1000}
	appendPending(st, cfg, Packet{Data: []byte{1, 2}, PTS: 100, DTS: 90})
	if st.payloadPTS != 100 || st.payloadDTS != 90 {
		t.Errorf("payload timestamps = (%d,%d), want (100,90)", st.payloadPTS, st.payloadDTS)
	}
	appendPending(st, cfg, Packet{Data: []byte{3, 4}, PTS: 200, DTS: 190})
	if st.payloadPTS != 100 {
		t.Error("second append should not overwrite the accumulation's first timestamp")
	}
}

func TestShiftTimestamp_NoTimestampPassesThrough(t *testing.T) {
	t.Parallel()
	if got := shiftTimestamp(NoTimestamp, 1000); got != NoTimestamp {
		t.Errorf("shiftTimestamp(NoTimestamp, ...) = %d, want %d", got, NoTimestamp)
	}
}
