package mux

// Fixed PIDs per spec.
const (
	PIDPAT  uint16 = 0x0000
	PIDNIT  uint16 = 0x0010
	PIDSDT  uint16 = 0x0011
	PIDEIT  uint16 = 0x0012
	PIDTOT  uint16 = 0x0014
	PIDNull uint16 = 0x1FFF

	pcrPIDUnassigned uint16 = 0x1FFF
)

// Flags is a bitset of muxer-wide behavior switches.
type Flags uint32

// Muxer-wide flags.
const (
	// FlagReemitHeaders forces PAT/PMT to be resent at the next opportunity.
	FlagReemitHeaders Flags = 1 << iota
	// FlagAACLATM selects the LATM AAC stream type (0x11) over plain ADTS (0x0F).
	FlagAACLATM
	// FlagPATPMTAtFrames forces a PAT/PMT emission ahead of every video key frame.
	FlagPATPMTAtFrames
	// FlagSystemB selects DVB (System-B) stream-type and descriptor choices
	// for AC-3/EAC-3 (PRIVATE_DATA plus the AC-3/E-AC-3 descriptors)
	// instead of the System-A stream types.
	FlagSystemB
)

func (f Flags) has(bit Flags) bool { return f&bit != 0 }

// MediaKind classifies an elementary stream for stream-type mapping,
// descriptor selection, and PES stream_id assignment.
type MediaKind int

// Supported elementary stream media kinds.
const (
	MediaVideoH264 MediaKind = iota
	MediaVideoHEVC
	MediaVideoMPEG2
	MediaVideoMPEG4
	MediaVideoAVS
	MediaVideoDirac
	MediaVideoVC1
	MediaAudioMPEG
	MediaAudioAAC
	MediaAudioAC3
	MediaAudioEAC3
	MediaAudioDTS
	MediaAudioTrueHD
	MediaAudioOpus
	MediaAudioS302M
	MediaSubtitleDVB
	MediaSubtitleTeletext
	MediaDataKLV
)

// IsVideo reports whether kind is a video media kind.
func (k MediaKind) IsVideo() bool {
	switch k {
	case MediaVideoH264, MediaVideoHEVC, MediaVideoMPEG2, MediaVideoMPEG4,
		MediaVideoAVS, MediaVideoDirac, MediaVideoVC1:
		return true
	}
	return false
}

// IsAudio reports whether kind is an audio media kind.
func (k MediaKind) IsAudio() bool {
	switch k {
	case MediaAudioMPEG, MediaAudioAAC, MediaAudioAC3, MediaAudioEAC3,
		MediaAudioDTS, MediaAudioTrueHD, MediaAudioOpus, MediaAudioS302M:
		return true
	}
	return false
}

// IsSubtitle reports whether kind is a subtitle media kind.
func (k MediaKind) IsSubtitle() bool {
	return k == MediaSubtitleDVB || k == MediaSubtitleTeletext
}

// Packet is one caller-submitted elementary stream access unit, tagged
// with timing and flags, routed through the Stream Manager.
type Packet struct {
	StreamIndex int
	Data        []byte
	PTS         int64 // 90kHz clock; -1 means absent
	DTS         int64 // 90kHz clock; -1 means absent
	KeyFrame    bool
	// StreamIDOverride, when non-zero, overrides the default PES stream_id
	// (used for DATA streams per spec.md §4.3).
	StreamIDOverride byte
}

// NoTimestamp marks an absent PTS/DTS.
const NoTimestamp int64 = -1

// service is the Go-native representation of spec.md's Service.
type service struct {
	sid         uint16
	pmt         *sectionWriter
	pcrPID      uint16
	pcrPacketCount  int
	pcrPacketPeriod int
	pcrCC           uint8
	pcrSeen         bool
	lastPCRDTS      int64
	providerName    string
	serviceName     string
	oneSeg          bool
	programNumber   uint16

	streamIdx []int // indices into Muxer.streams belonging to this service

	lastPAT, lastSDT, lastNIT, lastTOT, lastEIT lastEmission
}

// lastEmission tracks a table's retransmission state.
type lastEmission struct {
	packetCount int
	lastDTS     int64
	everSent    bool
}

// stream is the Go-native representation of spec.md's Stream.
type stream struct {
	serviceIdx int // index into Muxer.services
	pid        uint16
	cc         uint8
	kind       MediaKind

	pending        []byte
	payloadPTS     int64
	payloadDTS     int64
	payloadKey     bool
	firstPTSSeen   bool
	prevPayloadKey bool

	language      string // comma-separated ISO-639 codes
	disposition   string // "clean_effects" | "hearing_impaired" | "visually_impaired" | ""
	extradata     []byte
	streamIDOverr byte

	// Codec-specific preprocessor state.
	h264SeenSPSPPS bool
	opusPending    opusState
}

// opusState tracks Opus control-header trim/queue accounting (spec.md §4.4).
type opusState struct {
	trimStart      int
	queuedSamples   int
	skipSamplesSet  bool
}
