package mux

// writeSDT emits the Service Description Table: one service_descriptor
// entry per service (spec.md §4.1, table TID=0x42).
func writeSDT(sink Sink, sw *sectionWriter, tsid, onid uint16, version uint8, services []service) error {
	b := newBump(16 + len(services)*32)
	b.writeByte(0x42)
	lengthPos := b.len()
	b.writeUint16(0)
	b.writeUint16(tsid)
	b.writeByte(0xC0 | (version&0x1F)<<1 | 0x01)
	b.writeByte(0)
	b.writeByte(0)
	b.writeUint16(onid)
	b.writeByte(0xFF)

	for i := range services {
		svc := &services[i]
		b.writeUint16(svc.sid)
		b.writeByte(0xFC)

		descLoop := newBump(32)
		serviceType := byte(0x01)
		if isOneSeg(svc.sid) {
			serviceType = 0xC0
		}
		serviceDescriptor(descLoop, serviceType, svc.providerName, svc.serviceName)
		descBytes, err := descLoop.bytes()
		if err != nil {
			return err
		}

		const runningStatus = 4
		const freeCA = 0
		b.writeUint16(uint16(runningStatus)<<13 | uint16(freeCA)<<12 | uint16(len(descBytes)))
		b.writeBytes(descBytes)
	}

	body, err := b.bytes()
	if err != nil {
		return err
	}
	patchSectionLength(body, lengthPos)
	return sw.writeSection(sink, body)
}
