package mux

import "time"

// TransmissionProfile selects the ISDB-Tb service topology (spec.md §4.6).
type TransmissionProfile int

// Supported transmission profiles.
const (
	// ProfileDefault creates a single service using the supplied ServiceID.
	ProfileDefault TransmissionProfile = 0
	// Profile1 creates one full-seg service plus one one-seg service.
	Profile1 TransmissionProfile = 1
	// Profile2 creates four SD services plus one one-seg service.
	Profile2 TransmissionProfile = 2
	// Profile3 creates two HD services plus one one-seg service.
	Profile3 TransmissionProfile = 3
)

// VBRMuxRate is the mux_rate sentinel selecting variable bitrate output
// (no null-packet stuffing, no CBR PCR pacing).
const VBRMuxRate = 1

const defaultPESPayloadSize = (16-1)*184 + 170 // 2,930, per spec.md §6

// Config holds the caller-populated settings for a Muxer. It is a plain
// struct, not a builder or an env-parsed record — option parsing lives in
// the surrounding application, not in this core package.
type Config struct {
	TransportStreamID  uint16
	OriginalNetworkID  uint16
	ServiceID          uint16 // used only by ProfileDefault
	TablesVersion      uint8  // 0..31
	MuxRate            int64  // bytes/s; VBRMuxRate (1) selects VBR
	FirstPCR           int64  // 27MHz ticks
	Flags              Flags
	M2TSMode           bool
	CopyTS             bool
	OmitVideoPESLength bool
	PESPayloadSize     int
	PCRPeriodMS        int // default 20ms
	PATPeriodSeconds   float64
	SDTPeriodSeconds   float64
	MaxDelay           int64 // 90kHz ticks; caller-provided DTS/PTS shift window

	PMTStartPID uint16 // default 0x1000
	StartPID    uint16 // default 0x0100

	ProviderName string
	ServiceName  string

	// NowFunc resolves "current time" for TOT emission. Defaults to
	// time.Now when nil (spec.md §9 Open Question: TOT time is an input,
	// not hard-coded).
	NowFunc func() time.Time

	Topology TopologyConfig
}

// TopologyConfig parameterizes the Service Topology Builder (spec.md §4.6).
type TopologyConfig struct {
	Profile         TransmissionProfile
	AreaCode        uint8
	GuardInterval   uint8
	TransmissionMode uint8
	PhysicalChannel uint8
	VirtualChannel  uint8
	FinalNbServices int
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.PESPayloadSize <= 0 {
		out.PESPayloadSize = defaultPESPayloadSize
	}
	if out.PCRPeriodMS <= 0 {
		out.PCRPeriodMS = 20
	}
	if out.PMTStartPID == 0 {
		out.PMTStartPID = 0x1000
	}
	if out.StartPID == 0 {
		out.StartPID = 0x0100
	}
	if out.TransportStreamID == 0 {
		out.TransportStreamID = 1
	}
	if out.OriginalNetworkID == 0 {
		out.OriginalNetworkID = 1
	}
	if out.ServiceID == 0 {
		out.ServiceID = 1
	}
	if out.ProviderName == "" {
		out.ProviderName = "prism"
	}
	if out.ServiceName == "" {
		out.ServiceName = "prism-mux"
	}
	if out.NowFunc == nil {
		out.NowFunc = time.Now
	}
	return out
}

// IsVBR reports whether the configured mux rate selects variable bitrate
// output.
func (c *Config) IsVBR() bool {
	return c.MuxRate == VBRMuxRate || c.MuxRate == 0
}
