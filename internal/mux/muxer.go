package mux

import (
	"fmt"
	"log/slog"
)

// StreamDesc describes one elementary stream to add to the Muxer before
// any packets arrive (spec.md §4.2, the Stream type).
type StreamDesc struct {
	ServiceIndex     int
	Kind             MediaKind
	Language         string
	Disposition      string
	Extradata        []byte
	StreamIDOverride byte
}

// Muxer assembles elementary-stream access units into an MPEG-TS
// program, writing PAT/PMT/SDT/NIT/TOT/EIT and PES cells through a Sink.
// It holds no internal mutex or channel: concurrency, if any, belongs to
// the caller (spec.md §5), the same way internal/mpegts.Demuxer leaves
// its own concurrency to callers driving NextData.
type Muxer struct {
	log *slog.Logger
	cfg Config

	services []service
	streams  []*stream

	scheduler *siScheduler
	pacer     *cbrPacer

	sink     Sink
	patPMTCC uint8

	version uint8

	sdtSW, nitSW, totSW *sectionWriter
	eitSW               map[uint16]*sectionWriter
}

// NewMuxer creates a Muxer writing to sink, with services laid out per
// cfg.Topology. If log is nil, slog.Default() is used.
func NewMuxer(log *slog.Logger, sink Sink, cfg Config) (*Muxer, error) {
	if log == nil {
		log = slog.Default()
	}
	cfg = cfg.withDefaults()

	if err := validatePESPayloadSize(cfg.PESPayloadSize); err != nil {
		return nil, err
	}

	services, err := buildTopology(&cfg)
	if err != nil {
		return nil, fmt.Errorf("mux: building topology: %w", err)
	}

	if cfg.M2TSMode {
		sink = newM2TSSink(sink, cfg.MuxRate, cfg.FirstPCR)
	}

	m := &Muxer{
		log:       log.With("component", "mux"),
		cfg:       cfg,
		services:  services,
		scheduler: newSIScheduler(&cfg),
		pacer:     newCBRPacer(&cfg),
		sink:      sink,
		version:   cfg.TablesVersion & 0x1F,
		eitSW:     make(map[uint16]*sectionWriter),
		sdtSW:     newSectionWriter(PIDSDT),
		nitSW:     newSectionWriter(PIDNIT),
		totSW:     newSectionWriter(PIDTOT),
	}

	pcrPeriod := 0
	if !cfg.IsVBR() {
		pcrPeriod = packetPeriod(cfg.MuxRate, cfg.PCRPeriodMS)
	}
	for i := range m.services {
		m.services[i].pmt = newSectionWriter(cfg.PMTStartPID + uint16(i))
		m.services[i].pcrPacketPeriod = pcrPeriod
		m.eitSW[m.services[i].sid] = newSectionWriter(PIDEIT)
	}

	m.log.Info("muxer initialized",
		"services", len(services),
		"profile", cfg.Topology.Profile,
		"vbr", cfg.IsVBR())
	return m, nil
}

// AddStream registers an elementary stream and returns its index for use
// in subsequent Packet.StreamIndex values.
func (m *Muxer) AddStream(desc StreamDesc) (int, error) {
	if desc.ServiceIndex < 0 || desc.ServiceIndex >= len(m.services) {
		return 0, fmt.Errorf("%w: service index %d", ErrInvalidInput, desc.ServiceIndex)
	}
	idx := len(m.streams)
	pid := m.cfg.StartPID + uint16(idx)

	st := &stream{
		serviceIdx:    desc.ServiceIndex,
		pid:           pid,
		kind:          desc.Kind,
		language:      desc.Language,
		disposition:   desc.Disposition,
		extradata:     desc.Extradata,
		streamIDOverr: desc.StreamIDOverride,
	}
	m.streams = append(m.streams, st)

	svc := &m.services[desc.ServiceIndex]
	svc.streamIdx = append(svc.streamIdx, idx)
	if svc.pcrPID == pcrPIDUnassigned {
		svc.pcrPID = pid
	} else if desc.Kind.IsVideo() {
		for _, si := range svc.streamIdx {
			if m.streams[si].kind.IsVideo() {
				svc.pcrPID = m.streams[si].pid
				break
			}
		}
	}
	return idx, nil
}

// AddPacket submits one access unit for muxing. It may flush zero or
// more PES packets immediately and, when due, precede them with
// PAT/PMT/SDT/NIT/TOT/EIT cells.
func (m *Muxer) AddPacket(pkt Packet) error {
	if pkt.StreamIndex < 0 || pkt.StreamIndex >= len(m.streams) {
		return fmt.Errorf("%w: stream index %d", ErrInvalidInput, pkt.StreamIndex)
	}
	st := m.streams[pkt.StreamIndex]
	svc := &m.services[st.serviceIdx]

	if !st.firstPTSSeen {
		if pkt.PTS == NoTimestamp {
			return fmt.Errorf("%w: first packet on stream %d has no PTS", ErrInvalidInput, pkt.StreamIndex)
		}
		st.firstPTSSeen = true
	}

	pkt.Data = m.preprocess(st, pkt)
	pkt.PTS = shiftTimestamp(pkt.PTS, m.cfg.MaxDelay)
	pkt.DTS = shiftTimestamp(pkt.DTS, m.cfg.MaxDelay)

	if err := m.maybeInjectPCR(svc, pkt.DTS); err != nil {
		return err
	}

	keyTransition := st.kind.IsVideo() && pkt.KeyFrame && !st.prevPayloadKey

	flush := appendPending(st, &m.cfg, pkt)
	if !flush {
		st.prevPayloadKey = pkt.KeyFrame
		return nil
	}

	if err := m.maybeEmitTables(svc, st, pkt.KeyFrame, keyTransition, pkt.DTS); err != nil {
		return err
	}

	if err := m.flushStream(st, svc); err != nil {
		return err
	}
	st.prevPayloadKey = pkt.KeyFrame
	return nil
}

func (m *Muxer) preprocess(st *stream, pkt Packet) []byte {
	switch st.kind {
	case MediaVideoH264:
		return preprocessH264(st, pkt.Data, pkt.KeyFrame)
	case MediaVideoHEVC:
		return preprocessHEVC(st, pkt.Data, pkt.KeyFrame)
	case MediaAudioOpus:
		return preprocessOpus(st, pkt.Data, 0)
	case MediaSubtitleDVB, MediaSubtitleTeletext:
		return preprocessSubtitle(st.kind, pkt.Data)
	default:
		return pkt.Data
	}
}

func (m *Muxer) flushStream(st *stream, svc *service) error {
	streamID := defaultStreamID(st.kind, m.cfg.M2TSMode)
	if st.streamIDOverr != 0 {
		streamID = st.streamIDOverr
	}

	payload := st.pending
	if m.cfg.M2TSMode && st.kind == MediaAudioAC3 {
		payload = m2tsAC3Extension(payload)
	}

	carriesPCR := svc.pcrPID == st.pid && (st.payloadKey || m.pcrDue(svc))
	var pcr *int64
	if carriesPCR {
		v := m.currentPCR(st.payloadDTS)
		pcr = &v
	}

	header := buildPESHeader(pesHeaderOpts{
		streamID:      streamID,
		pts:           st.payloadPTS,
		dts:           st.payloadDTS,
		payloadLen:    len(payload),
		omitLength:    m.cfg.OmitVideoPESLength && st.kind.IsVideo(),
		randomAccess:  st.payloadKey,
		dataAlignment: true,
	})

	cells, err := writePESCells(m.sink, st, header, payload, pcr, st.payloadKey)
	resetPending(st)
	if err != nil {
		return err
	}

	if svc.pcrPID == st.pid {
		if carriesPCR {
			markPCRSent(svc, st.payloadDTS)
		} else {
			svc.pcrPacketCount += cells
		}
	}

	return m.pacer.padTo(m.sink, m.cbrTargetBytes(st.payloadDTS))
}

// cbrTargetBytes returns the output byte offset the mux should have
// reached by dts at the configured mux_rate, used to stuff null
// packets and hold a constant bitrate (spec.md §4.4/§4.5). It is a
// no-op signal (0) in VBR mode or absent a timestamp.
func (m *Muxer) cbrTargetBytes(dts int64) int64 {
	if dts == NoTimestamp || m.cfg.IsVBR() {
		return 0
	}
	return rescale(dts, m.cfg.MuxRate, 90000)
}

func (m *Muxer) currentPCR(dts int64) int64 {
	if m.cfg.IsVBR() {
		return computeVBRPCR(dts, m.cfg.MaxDelay)
	}
	return computeCBRPCR(m.sink.Tell(), m.cfg.MuxRate, m.cfg.FirstPCR)
}

// maybeEmitTables checks the SI scheduler and writes any due PSI/SI
// sections ahead of the next PES flush for st. Each table is gated
// independently against its own retransmission period (spec.md §4.5).
func (m *Muxer) maybeEmitTables(svc *service, st *stream, keyFrame, keyTransition bool, dts int64) error {
	if m.scheduler.patPmtDue(svc.lastPAT, m.sink.Tell(), dts, keyFrame && st.kind.IsVideo(), keyTransition) {
		if err := m.emitPAT(); err != nil {
			return err
		}
		if err := m.emitAllPMT(); err != nil {
			return err
		}
		for i := range m.services {
			markSent(&m.services[i].lastPAT, m.pktCount(), dts)
		}
	}

	if m.scheduler.sdtDue(svc.lastSDT, m.sink.Tell(), dts) {
		if err := writeSDT(m.sink, m.sdtSW, m.cfg.TransportStreamID, m.cfg.OriginalNetworkID, m.version, m.services); err != nil {
			return err
		}
		for i := range m.services {
			markSent(&m.services[i].lastSDT, m.pktCount(), dts)
		}
	}

	if m.scheduler.nitDue(svc.lastNIT, m.sink.Tell(), dts) {
		if err := writeNIT(m.sink, m.nitSW, m.cfg.TransportStreamID, m.cfg.OriginalNetworkID, m.version, m.cfg.ServiceName, m.services, m.cfg.Topology); err != nil {
			return err
		}
		for i := range m.services {
			markSent(&m.services[i].lastNIT, m.pktCount(), dts)
		}
	}

	if m.scheduler.totDue(svc.lastTOT, m.sink.Tell(), dts) {
		if err := writeTOT(m.sink, m.totSW, m.cfg.NowFunc(), m.cfg.Topology.AreaCode); err != nil {
			return err
		}
		for i := range m.services {
			markSent(&m.services[i].lastTOT, m.pktCount(), dts)
		}
	}

	if m.scheduler.eitDue(svc.lastEIT, m.sink.Tell(), dts) {
		if err := m.emitEIT(svc); err != nil {
			return err
		}
		for i := range m.services {
			markSent(&m.services[i].lastEIT, m.pktCount(), dts)
		}
	}
	return nil
}

func (m *Muxer) emitPAT() error {
	sw := newSectionWriter(PIDPAT)
	sw.cc = m.patPMTCC
	err := writePAT(m.sink, sw, m.cfg.TransportStreamID, m.version, m.services, func(s *service) uint16 { return s.pmt.pid })
	m.patPMTCC = sw.cc
	return err
}

func (m *Muxer) emitAllPMT() error {
	for i := range m.services {
		svc := &m.services[i]
		streams := make([]*stream, 0, len(svc.streamIdx))
		for _, si := range svc.streamIdx {
			streams = append(streams, m.streams[si])
		}
		if err := writePMT(m.sink, svc.pmt, svc.sid, m.version, svc.pcrPID, streams, m.cfg.Flags); err != nil {
			return err
		}
	}
	return nil
}

func (m *Muxer) emitEIT(current *service) error {
	for i := range m.services {
		svc := &m.services[i]
		sw := m.eitSW[svc.sid]
		if err := writeEIT(m.sink, sw, m.cfg.TransportStreamID, m.cfg.OriginalNetworkID, m.version, svc,
			m.cfg.NowFunc(), 0, m.cfg.ServiceName, ""); err != nil {
			return err
		}
	}
	return nil
}

func (m *Muxer) pktCount() int {
	return int(m.sink.Tell() / tsPacketSize)
}

// Close flushes any stream still holding a pending partial PES payload.
// The Muxer performs no other teardown: the Sink's lifecycle belongs to
// its owner.
func (m *Muxer) Close() error {
	for i := range m.streams {
		st := m.streams[i]
		if len(st.pending) == 0 {
			continue
		}
		svc := &m.services[st.serviceIdx]
		if err := m.flushStream(st, svc); err != nil {
			return err
		}
	}
	m.log.Info("muxer closed", "services", len(m.services), "streams", len(m.streams))
	return nil
}
