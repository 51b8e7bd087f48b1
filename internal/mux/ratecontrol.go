package mux

// nullPacket returns one stuffing TS cell on PIDNull with an incrementing
// continuity counter, used by CBR pacing to hold the configured mux_rate
// when no real payload is ready.
func nullPacket(cc *uint8) []byte {
	cell := make([]byte, tsPacketSize)
	cell[0] = syncByte
	cell[1] = byte(PIDNull >> 8) & 0x1F
	cell[2] = byte(PIDNull & 0xFF)
	cell[3] = 0x10 | (*cc & 0x0F)
	*cc = (*cc + 1) & 0x0F
	for i := 4; i < len(cell); i++ {
		cell[i] = 0xFF
	}
	return cell
}

// pcrOnlyPacket returns a PCR-only adaptation-field cell (no payload) on
// pid, used when a PCR deadline arrives with no pending payload cell to
// carry it.
func pcrOnlyPacket(pid uint16, cc *uint8, pcr int64) []byte {
	cell := make([]byte, tsPacketSize)
	cell[0] = syncByte
	cell[1] = byte(pid>>8) & 0x1F
	cell[2] = byte(pid)
	cell[3] = 0x20 | (*cc & 0x0F) // adaptation field only, no payload
	*cc = (*cc + 1) & 0x0F

	cell[4] = 183
	cell[5] = 0x10
	writePCRField(cell[6:12], pcr)
	for i := 12; i < len(cell); i++ {
		cell[i] = 0xFF
	}
	return cell
}

// cbrPacer tracks the byte budget that keeps CBR output at Config.MuxRate,
// stuffing null packets between real emissions.
type cbrPacer struct {
	muxRate    int64
	nullCC     uint8
	active     bool
}

func newCBRPacer(cfg *Config) *cbrPacer {
	return &cbrPacer{muxRate: cfg.MuxRate, active: cfg.MuxRate != VBRMuxRate && cfg.MuxRate != 0}
}

// padTo emits null packets to sink until sink.Tell() reaches at least
// targetBytes. It is a no-op in VBR mode.
func (p *cbrPacer) padTo(sink Sink, targetBytes int64) error {
	if !p.active {
		return nil
	}
	for sink.Tell() < targetBytes {
		if _, err := sink.Write(nullPacket(&p.nullCC)); err != nil {
			return err
		}
	}
	return nil
}
