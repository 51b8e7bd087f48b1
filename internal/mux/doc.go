// Package mux implements an MPEG-2 Transport Stream muxer for the ISDB-Tb
// (Brazilian ARIB/SBTVD) broadcast profile, with DVB System-B and Blu-ray
// (M2TS) compatibility.
//
// The package fragments elementary streams into PES packets and then into
// 188-byte TS cells with correct adaptation-field, PCR, and continuity
// counter discipline, and periodically (re)emits PAT, PMT, SDT, NIT, TOT,
// and EIT sections. It is the encode-side counterpart of
// [github.com/zsiec/isdbmux/internal/mpegts], which only parses.
//
// The central type is [Muxer]: construct one with [NewMuxer], feed it
// elementary stream packets with [Muxer.AddPacket], and call [Muxer.Close]
// to flush pending payloads. Output is written to the [Sink] supplied at
// construction time; the package performs no I/O of its own beyond that
// interface.
package mux
