package mux

import "fmt"

// defaultStreamID returns the PES stream_id for a media kind absent an
// override (spec.md §4.3). In M2TS mode, AC-3 uses the Blu-ray
// extension stream_id 0xFD with a sub_stream_id in the payload
// (m2tsAC3Extension) instead of DVB's private_stream_1.
func defaultStreamID(kind MediaKind, m2ts bool) byte {
	switch {
	case kind == MediaAudioAC3 && m2ts:
		return 0xFD
	case kind.IsVideo():
		return 0xE0
	case kind == MediaAudioMPEG || kind == MediaAudioAAC:
		return 0xC0
	case kind.IsSubtitle():
		return 0xBD // private_stream_1
	default:
		return 0xBD
	}
}

// writePTSDTS appends the 5-byte marker-bit-laced PTS (or PTS+DTS) field.
// prefix selects the leading 4-bit pattern: 0x2 for PTS-only, 0x3 for
// PTS+DTS's PTS half, 0x1 for PTS+DTS's DTS half.
func writePTSDTS(b *bump, prefix byte, ts int64) {
	v := uint64(ts) & 0x1FFFFFFFF
	b.writeByte(prefix<<4 | byte(v>>29)&0x0E | 0x01)
	b.writeUint16(uint16(v>>14)&0xFFFE | 0x0001)
	b.writeUint16(uint16(v<<1)&0xFFFE | 0x0001)
}

// pesHeaderOpts parameterizes buildPESHeader, which builds a complete PES
// packet header (spec.md §4.3): the start code, stream_id,
// PES_packet_length, flags, and optional PTS/DTS.
type pesHeaderOpts struct {
	streamID       byte
	pts, dts       int64
	payloadLen     int
	omitLength     bool
	randomAccess   bool
	dataAlignment  bool
}

func buildPESHeader(opts pesHeaderOpts) []byte {
	b := newBump(32)
	b.writeByte(0x00)
	b.writeByte(0x00)
	b.writeByte(0x01)
	b.writeByte(opts.streamID)

	hasPTS := opts.pts != NoTimestamp
	hasDTS := opts.dts != NoTimestamp && opts.dts != opts.pts

	flagsByte2 := byte(0x80)
	if opts.dataAlignment {
		flagsByte2 |= 0x04
	}

	flagsByte3 := byte(0)
	headerDataLen := 0
	switch {
	case hasPTS && hasDTS:
		flagsByte3 = 0xC0
		headerDataLen = 10
	case hasPTS:
		flagsByte3 = 0x80
		headerDataLen = 5
	}

	pesLength := 3 + headerDataLen + opts.payloadLen
	if opts.omitLength || pesLength > 0xFFFF {
		pesLength = 0
	}
	b.writeUint16(uint16(pesLength))
	b.writeByte(flagsByte2)
	b.writeByte(flagsByte3)
	b.writeByte(byte(headerDataLen))

	switch {
	case hasPTS && hasDTS:
		writePTSDTS(b, 0x3, opts.pts)
		writePTSDTS(b, 0x1, opts.dts)
	case hasPTS:
		writePTSDTS(b, 0x2, opts.pts)
	}

	out, _ := b.bytes()
	return out
}

// adaptationField builds an adaptation field. When pcr is non-nil it
// carries a PCR; stuffingLen pads the field out to an exact byte count
// (used to align a payload to the end of a TS cell).
func adaptationField(randomAccess bool, pcr *int64, stuffingLen int) []byte {
	flags := byte(0x00)
	if randomAccess {
		flags |= 0x40
	}
	size := 1 // flags byte
	if pcr != nil {
		flags |= 0x10
		size += 6
	}
	if stuffingLen > 0 {
		size += stuffingLen
	}

	out := make([]byte, 1+size)
	out[0] = byte(size)
	out[1] = flags
	off := 2
	if pcr != nil {
		writePCRField(out[off:off+6], *pcr)
		off += 6
	}
	for i := off; i < len(out); i++ {
		out[i] = 0xFF
	}
	return out
}

// writePESCells segments a PES packet (header + payload) into TS cells
// carrying st.pid, inserting a PCR-bearing adaptation field on the first
// cell when pcr is non-nil, and padding the final cell with an
// adaptation-field stuffing region rather than 0xFF filler bytes so the
// payload never straddles a short final cell incorrectly. It returns the
// number of TS cells written, used by the caller to advance the PCR
// packet-period counter (spec.md §4.5).
func writePESCells(sink Sink, st *stream, header, payload []byte, pcr *int64, randomAccess bool) (int, error) {
	data := make([]byte, 0, len(header)+len(payload))
	data = append(data, header...)
	data = append(data, payload...)

	offset := 0
	first := true
	cells := 0
	for first || offset < len(data) {
		cell := make([]byte, tsPacketSize)
		cell[0] = syncByte

		pusi := byte(0)
		if first {
			pusi = 0x40
		}
		cell[1] = pusi | byte(st.pid>>8)&0x1F
		cell[2] = byte(st.pid)

		remaining := len(data) - offset
		var af []byte
		afc := byte(0x01)
		if first && pcr != nil {
			af = adaptationField(randomAccess, pcr, 0)
			afc = 0x03
		} else if first && randomAccess {
			af = adaptationField(true, nil, 0)
			afc = 0x03
		}

		bodyCap := tsPacketSize - 4 - len(af)
		if remaining < bodyCap {
			stuffing := bodyCap - remaining
			if af == nil {
				af = adaptationField(false, nil, stuffing-2)
				if stuffing == 1 {
					af = []byte{0x00}
				}
			} else {
				af = adaptationFieldWithStuffing(af, stuffing)
			}
			afc = 0x03
			bodyCap = tsPacketSize - 4 - len(af)
		}

		cell[3] = afc<<4 | (st.cc & 0x0F)
		st.cc = (st.cc + 1) & 0x0F

		pos := 4
		if len(af) > 0 {
			copy(cell[pos:], af)
			pos += len(af)
		}
		n := copy(cell[pos:], data[offset:])
		offset += n

		if _, err := sink.Write(cell); err != nil {
			return cells, err
		}
		cells++
		first = false
	}
	return cells, nil
}

// adaptationFieldWithStuffing grows an existing adaptation field (already
// carrying PCR and/or random_access flags) by extra stuffing bytes.
func adaptationFieldWithStuffing(af []byte, extra int) []byte {
	if extra <= 0 {
		return af
	}
	out := make([]byte, len(af)+extra)
	copy(out, af)
	out[0] = byte(int(af[0]) + extra)
	for i := len(af); i < len(out); i++ {
		out[i] = 0xFF
	}
	return out
}

// validatePESPayloadSize rejects a configured PES payload size that is
// not positive.
func validatePESPayloadSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: PES payload size must be positive", ErrInvalidInput)
	}
	return nil
}
