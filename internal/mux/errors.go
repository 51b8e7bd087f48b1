package mux

import "errors"

// Sentinel errors classifying mux failures. Callers use errors.Is against
// these; wrapped context is added with fmt.Errorf("mux: ...: %w", ...).
var (
	// ErrInvalidLength is returned when a section, descriptor loop, or
	// table would overflow the 1,020-byte section limit.
	ErrInvalidLength = errors.New("mux: section exceeds 1020-byte limit")

	// ErrInvalidInput is returned for a first packet on a stream without a
	// PTS, an out-of-range service or stream index, an unknown transmission
	// profile, or a non-positive PES payload size. PIDs are assigned
	// sequentially by AddStream and are not range-checked, and H.264/HEVC
	// start codes are not checked.
	ErrInvalidInput = errors.New("mux: invalid input")

	// ErrUnsupportedFormat classifies an elementary stream format the
	// muxer cannot carry. No function in this package returns it: AAC
	// framing and Opus packet length are not checked.
	ErrUnsupportedFormat = errors.New("mux: unsupported elementary stream format")

	// ErrResourceExhausted classifies allocation or preprocessor start-up
	// failures. No function in this package returns it.
	ErrResourceExhausted = errors.New("mux: resource exhausted")
)
