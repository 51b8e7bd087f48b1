package mux

// streamType maps a MediaKind to its PMT stream_type byte (spec.md §4.1).
func streamType(kind MediaKind, flags Flags) byte {
	switch kind {
	case MediaVideoMPEG2:
		return 0x02
	case MediaVideoMPEG4:
		return 0x10
	case MediaVideoH264:
		return 0x1B
	case MediaVideoHEVC:
		return 0x24
	case MediaVideoAVS:
		return 0x42
	case MediaVideoDirac:
		return 0xD1
	case MediaVideoVC1:
		return 0xEA
	case MediaAudioMPEG:
		return 0x03
	case MediaAudioAAC:
		if flags.has(FlagAACLATM) {
			return 0x11
		}
		return 0x0F
	case MediaAudioAC3:
		if flags.has(FlagSystemB) {
			return 0x06
		}
		return 0x81
	case MediaAudioEAC3:
		if flags.has(FlagSystemB) {
			return 0x06
		}
		return 0x7A
	case MediaAudioDTS:
		return 0x8A
	case MediaAudioTrueHD:
		return 0x83
	case MediaAudioOpus, MediaAudioS302M, MediaDataKLV:
		return 0x06
	default:
		return 0x06
	}
}

// writeESDescriptors appends the per-media-type PMT es_info descriptors
// for st (spec.md §4.1 "Descriptor emission by media type").
func writeESDescriptors(b *bump, st *stream, flags Flags) {
	switch {
	case st.kind.IsAudio():
		writeAudioDescriptors(b, st, flags)
	case st.kind.IsSubtitle():
		writeSubtitleDescriptors(b, st)
	case st.kind.IsVideo():
		writeVideoDescriptors(b, st)
	case st.kind == MediaDataKLV:
		registrationDescriptor(b, "KLVA")
	}
}

func writeAudioDescriptors(b *bump, st *stream, flags Flags) {
	if flags.has(FlagSystemB) {
		switch st.kind {
		case MediaAudioAC3:
			ac3Descriptor(b)
		case MediaAudioEAC3:
			eac3Descriptor(b)
		}
	}
	switch st.kind {
	case MediaAudioS302M:
		registrationDescriptor(b, "BSSD")
	case MediaAudioOpus:
		registrationDescriptor(b, "Opus")
		writeOpusExtension(b, st)
	}
	for _, lang := range splitLanguages(st.language) {
		iso639LanguageDescriptor(b, lang, audioTypeFor(st.disposition))
	}
}

func audioTypeFor(disposition string) byte {
	switch disposition {
	case "clean_effects":
		return 0x01
	case "hearing_impaired":
		return 0x02
	case "visually_impaired":
		return 0x03
	default:
		return 0x00
	}
}

func splitLanguages(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}

func writeSubtitleDescriptors(b *bump, st *stream) {
	if st.kind == MediaSubtitleTeletext {
		dvbTeletextDescriptor(b, defaultLanguage(st.language), 0x02, 1, 1)
		return
	}
	compositionPage, ancillaryPage := byte(1), byte(1)
	subtitlingType := byte(0x10)
	if len(st.extradata) >= 2 {
		subtitlingType = 0x20
	}
	dvbSubtitleDescriptor(b, defaultLanguage(st.language), subtitlingType, compositionPage, ancillaryPage)
}

func defaultLanguage(language string) string {
	langs := splitLanguages(language)
	if len(langs) == 0 {
		return "und"
	}
	return langs[0]
}

func writeVideoDescriptors(b *bump, st *stream) {
	switch st.kind {
	case MediaVideoDirac:
		registrationDescriptor(b, "drac")
	case MediaVideoVC1:
		registrationDescriptor(b, "VC-1")
	}
}

// writeOpusExtension computes the Opus DVB extension channel-config byte
// from the stream's OpusHead extradata (spec.md §4.1's Table A/B rule).
func writeOpusExtension(b *bump, st *stream) {
	channels, family, ok := parseOpusHead(st.extradata)
	if !ok {
		opusDVBExtensionDescriptor(b, 0xFF)
		return
	}
	switch {
	case family == 0 && channels <= 2:
		opusDVBExtensionDescriptor(b, byte(channels))
	case family == 1 && channels <= 8:
		if code := opusChannelConfigCode(channels, true); code != 0 {
			opusDVBExtensionDescriptor(b, code)
			return
		}
		opusDVBExtensionDescriptor(b, 0xFF)
	default:
		opusDVBExtensionDescriptor(b, 0xFF)
	}
}

// parseOpusHead extracts channel count (byte 9) and channel mapping
// family (byte 18) from an OggOpus ID header / OpusHead extradata blob.
func parseOpusHead(extradata []byte) (channels int, family byte, ok bool) {
	if len(extradata) < 19 {
		return 0, 0, false
	}
	return int(extradata[9]), extradata[18], true
}

// writePMT emits a Program Map Table for one service.
func writePMT(sink Sink, sw *sectionWriter, sid uint16, version uint8, pcrPID uint16, streams []*stream, flags Flags) error {
	b := newBump(32 + len(streams)*16)
	b.writeByte(0x02) // table_id
	lengthPos := b.len()
	b.writeUint16(0)
	b.writeUint16(sid)
	b.writeByte(0xC0 | (version&0x1F)<<1 | 0x01)
	b.writeByte(0)
	b.writeByte(0)
	b.writeUint16(0xE000 | pcrPID)

	progInfo := newBump(8)
	parentalRatingDescriptor(progInfo, "BRA", 0x00)
	progInfoBytes, err := progInfo.bytes()
	if err != nil {
		return err
	}
	b.writeUint16(0xF000 | uint16(len(progInfoBytes)))
	b.writeBytes(progInfoBytes)

	for _, st := range streams {
		b.writeByte(streamType(st.kind, flags))
		b.writeUint16(0xE000 | st.pid)

		esInfo := newBump(32)
		writeESDescriptors(esInfo, st, flags)
		esInfoBytes, eerr := esInfo.bytes()
		if eerr != nil {
			return eerr
		}
		b.writeUint16(0xF000 | uint16(len(esInfoBytes)))
		b.writeBytes(esInfoBytes)
	}

	body, err := b.bytes()
	if err != nil {
		return err
	}
	patchSectionLength(body, lengthPos)
	return sw.writeSection(sink, body)
}
