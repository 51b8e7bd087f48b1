package mux

import "io"

// Sink is the byte sink the muxer writes its output to: a sequentially
// written byte stream that can also report a running byte count, used for
// CBR PCR calculation and SI table scheduling. It replaces the "global write_packet callback +
// opaque" pattern with a small local interface, the same style as
// internal/demux's StatsRecorder.
type Sink interface {
	io.Writer
	// Tell returns the number of bytes written so far.
	Tell() int64
}

// CountingSink adapts any io.Writer into a Sink by tracking a running byte
// count locally. Use it when the underlying writer (a net.Conn, an SRT
// socket, a pipe) has no notion of its own write offset.
type CountingSink struct {
	w io.Writer
	n int64
}

// NewCountingSink wraps w, counting bytes written through it.
func NewCountingSink(w io.Writer) *CountingSink {
	return &CountingSink{w: w}
}

func (s *CountingSink) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	s.n += int64(n)
	return n, err
}

// Tell returns the number of bytes written so far.
func (s *CountingSink) Tell() int64 {
	return s.n
}
