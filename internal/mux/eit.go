package mux

import "time"

// writeEIT emits one Event Information Table section for a single
// service's present/following schedule (spec.md §4.1, table TID=0x4E).
// table_id_extension is the service's sid, per DESIGN.md decision 4.
func writeEIT(sink Sink, sw *sectionWriter, tsid, onid uint16, version uint8, svc *service, start time.Time, duration time.Duration, eventName, eventText string) error {
	b := newBump(64)
	b.writeByte(0x4E)
	lengthPos := b.len()
	b.writeUint16(0)
	b.writeUint16(svc.sid)
	b.writeByte(0xC0 | (version&0x1F)<<1 | 0x01)
	b.writeByte(0) // section_number
	b.writeByte(0) // last_section_number
	b.writeUint16(tsid)
	b.writeUint16(onid)
	b.writeByte(0) // segment_last_section_number (present/following segment)
	b.writeByte(0x4E) // last_table_id

	b.writeUint16(0) // event_id
	writeMJDBCDTime(b, start)
	writeBCDDuration(b, duration)

	const runningStatus = 4
	const freeCA = 0

	descLoop := newBump(48)
	shortEventDescriptor(descLoop, "por", eventName, eventText)
	parentalRatingDescriptor(descLoop, "BRA", 0x00)
	if !svc.oneSeg {
		componentDescriptor(descLoop, 0x01, 0x01, "por", "")
		audioComponentDescriptor(descLoop, 0x01, "por", false)
		contentDescriptor(descLoop, 0x0, 0x0)
	}
	descBytes, err := descLoop.bytes()
	if err != nil {
		return err
	}
	b.writeUint16(uint16(runningStatus)<<13 | uint16(freeCA)<<12 | uint16(len(descBytes)))
	b.writeBytes(descBytes)

	body, err := b.bytes()
	if err != nil {
		return err
	}
	patchSectionLength(body, lengthPos)
	return sw.writeSection(sink, body)
}

// writeBCDDuration encodes duration as a 3-byte BCD hour/minute/second
// triplet, per spec.md's EIT duration field.
func writeBCDDuration(b *bump, d time.Duration) {
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	b.writeByte(toBCD(uint8(h)))
	b.writeByte(toBCD(uint8(m)))
	b.writeByte(toBCD(uint8(s)))
}
