package mux

// writePAT emits the Program Association Table: one `{program_number,
// pmt_pid}` entry per service (spec.md §4.1, table TID=0x00).
func writePAT(sink Sink, sw *sectionWriter, tsid uint16, version uint8, services []service, pmtPID func(*service) uint16) error {
	b := newBump(16 + len(services)*4)
	b.writeByte(0x00) // table_id
	lengthPos := b.len()
	b.writeUint16(0) // section_length placeholder
	b.writeUint16(tsid)
	b.writeByte(0xC0 | (version&0x1F)<<1 | 0x01) // reserved | version | current_next
	b.writeByte(0) // section_number
	b.writeByte(0) // last_section_number

	for i := range services {
		b.writeUint16(services[i].programNumber)
		b.writeUint16(0xE000 | pmtPID(&services[i]))
	}

	body, err := b.bytes()
	if err != nil {
		return err
	}
	patchSectionLength(body, lengthPos)
	return sw.writeSection(sink, body)
}

// patchSectionLength fills in the 12-bit section_length field (reserved
// bits 0b1011 in the high nibble) spanning from just after the two length
// bytes to the end of body, excluding the trailing CRC which is appended
// by writeSection.
func patchSectionLength(body []byte, lengthPos int) {
	sectionLength := len(body) - lengthPos - 2 + 4 // +4 for the CRC appended later
	body[lengthPos] = 0xB0 | byte(sectionLength>>8)&0x0F
	body[lengthPos+1] = byte(sectionLength)
}
