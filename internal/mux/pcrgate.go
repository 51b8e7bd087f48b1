package mux

// pcrDue reports whether svc's PCR-carrying stream must attach a PCR
// to its next cell: always true before the first PCR, or once
// pcr_packet_count has reached pcr_packet_period (spec.md §4.5, rule
// (a)). VBR mode has no fixed packet period — the PCR period instead
// tracks access-unit duration — so every PES on the PCR PID carries
// one.
func (m *Muxer) pcrDue(svc *service) bool {
	if !svc.pcrSeen {
		return true
	}
	if svc.pcrPacketPeriod <= 0 {
		return true
	}
	return svc.pcrPacketCount >= svc.pcrPacketPeriod
}

// markPCRSent records that a PCR was just emitted on svc's PCR PID,
// resetting the packet-count gate.
func markPCRSent(svc *service, dts int64) {
	svc.pcrSeen = true
	svc.pcrPacketCount = 0
	svc.lastPCRDTS = dts
}

// maybeInjectPCR emits a standalone PCR-only cell ahead of the next
// PES flush when the gap since the last PCR sent on svc's PCR PID
// exceeds the configured max muxing delay (spec.md §4.5: "if dts -
// current_pcr > max_delay, inject a PCR-only or null packet"),
// keeping the decoder's STC fed during a quiet stretch on that PID.
func (m *Muxer) maybeInjectPCR(svc *service, dts int64) error {
	if dts == NoTimestamp || svc.pcrPID == pcrPIDUnassigned || !svc.pcrSeen {
		return nil
	}
	if dts-svc.lastPCRDTS <= m.cfg.MaxDelay {
		return nil
	}
	pcr := m.currentPCR(dts)
	cell := pcrOnlyPacket(svc.pcrPID, &svc.pcrCC, pcr)
	if _, err := m.sink.Write(cell); err != nil {
		return err
	}
	markPCRSent(svc, dts)
	return nil
}
