package mux

// writeNIT emits the Network Information Table: network-wide descriptors
// followed by a single transport_stream_loop entry describing this
// multiplex's services (spec.md §4.1, table TID=0x40).
func writeNIT(sink Sink, sw *sectionWriter, tsid, onid uint16, version uint8, networkName string, services []service, topo TopologyConfig) error {
	b := newBump(64 + len(services)*8)
	b.writeByte(0x40)
	lengthPos := b.len()
	b.writeUint16(0)
	b.writeUint16(onid)
	b.writeByte(0xC0 | (version&0x1F)<<1 | 0x01)
	b.writeByte(0)
	b.writeByte(0)

	netDesc := newBump(32)
	networkNameDescriptor(netDesc, networkName)
	systemManagementDescriptor(netDesc)
	netDescBytes, err := netDesc.bytes()
	if err != nil {
		return err
	}
	b.writeUint16(0xF000 | uint16(len(netDescBytes)))
	b.writeBytes(netDescBytes)

	tsLoop := newBump(64 + len(services)*8)
	tsLoop.writeUint16(tsid)
	tsLoop.writeUint16(onid)

	tsDesc := newBump(64 + len(services)*8)
	tsInformationDescriptor(tsDesc, topo.VirtualChannel, networkName)

	sids := make([]uint16, len(services))
	var oneSegSids []uint16
	for i := range services {
		sids[i] = services[i].sid
		if isOneSeg(services[i].sid) {
			oneSegSids = append(oneSegSids, services[i].sid)
		}
	}
	serviceListDescriptor(tsDesc, sids)
	if len(oneSegSids) > 0 {
		partialReceptionDescriptor(tsDesc, oneSegSids)
	}
	terrestrialDeliverySystemDescriptor(tsDesc, topo.AreaCode, topo.GuardInterval, topo.TransmissionMode, topo.PhysicalChannel)

	tsDescBytes, err := tsDesc.bytes()
	if err != nil {
		return err
	}
	tsLoop.writeUint16(0xF000 | uint16(len(tsDescBytes)))
	tsLoop.writeBytes(tsDescBytes)

	tsLoopBytes, err := tsLoop.bytes()
	if err != nil {
		return err
	}
	b.writeUint16(0xF000 | uint16(len(tsLoopBytes)))
	b.writeBytes(tsLoopBytes)

	body, err := b.bytes()
	if err != nil {
		return err
	}
	patchSectionLength(body, lengthPos)
	return sw.writeSection(sink, body)
}
