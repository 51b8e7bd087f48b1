package mux

// This file builds the MPEG-2/DVB/ARIB descriptors referenced by
// spec.md's PMT, SDT, NIT and EIT layouts (§4.1-§4.6). Each function
// appends a complete `tag | length | payload` descriptor to b.

func parentalRatingDescriptor(b *bump, country string, rating byte) {
	b.writeByte(0x55)
	b.writeByte(4)
	b.writeString(pad3(country))
	b.writeByte(rating)
}

func pad3(s string) string {
	if len(s) >= 3 {
		return s[:3]
	}
	for len(s) < 3 {
		s += " "
	}
	return s
}

func networkNameDescriptor(b *bump, name string) {
	b.writeByte(0x40)
	b.writeByte(byte(len(name)))
	b.writeString(name)
}

func systemManagementDescriptor(b *bump) {
	b.writeByte(0xFE)
	b.writeByte(2)
	b.writeByte(0x03)
	b.writeByte(0x01)
}

func tsInformationDescriptor(b *bump, remoteControlKey uint8, tsName string) {
	b.writeByte(0xCD)
	b.writeByte(byte(2 + len(tsName)))
	b.writeByte(remoteControlKey)
	b.writeByte(byte(len(tsName))<<2 | 0x02)
	b.writeString(tsName)
}

func serviceListDescriptor(b *bump, sids []uint16) {
	b.writeByte(0x41)
	b.writeByte(byte(len(sids) * 3))
	for _, sid := range sids {
		b.writeUint16(sid)
		b.writeByte(0x01) // service_type: digital TV
	}
}

func partialReceptionDescriptor(b *bump, sids []uint16) {
	b.writeByte(0xFB)
	b.writeByte(byte(len(sids) * 2))
	for _, sid := range sids {
		b.writeUint16(sid)
	}
}

// terrestrialDeliverySystemDescriptor encodes the ISDB-Tb frequency and
// transmission parameters (spec.md §4.6). frequency is expressed in
// 7-kHz units as `((473 + 6*(physicalChannel-14) + 1/7) * 7)`.
func terrestrialDeliverySystemDescriptor(b *bump, areaCode, guardInterval, transmissionMode, physicalChannel uint8) {
	b.writeByte(0xFA)
	b.writeByte(4)

	freqMHzTimes7 := int((473+6*(int(physicalChannel)-14))*7) + 1
	b.writeUint16(uint16(freqMHzTimes7))

	b.writeByte(areaCode<<4 | guardInterval<<2 | transmissionMode)
	b.writeByte(0xFF)
}

// serviceDescriptor builds the SDT service_descriptor (tag 0x48).
// serviceType is 0xC0 for one-seg services, 0x01 otherwise.
func serviceDescriptor(b *bump, serviceType byte, providerName, serviceName string) {
	body := newBump(2 + 1 + len(providerName) + 1 + len(serviceName))
	body.writeByte(serviceType)
	body.writeLen8String(providerName)
	body.writeLen8String(serviceName)
	payload, err := body.bytes()
	if err != nil {
		b.err = err
		return
	}
	b.writeByte(0x48)
	b.writeByte(byte(len(payload)))
	b.writeBytes(payload)
}

func shortEventDescriptor(b *bump, language, eventName, text string) {
	payload := newBump(3 + 1 + len(eventName) + 1 + len(text))
	payload.writeString(pad3(language))
	payload.writeLen8String(eventName)
	payload.writeLen8String(text)
	body, err := payload.bytes()
	if err != nil {
		b.err = err
		return
	}
	b.writeByte(0x4D)
	b.writeByte(byte(len(body)))
	b.writeBytes(body)
}

func componentDescriptor(b *bump, streamContent, componentType byte, language, text string) {
	payload := newBump(6 + len(text))
	payload.writeByte(0xF0 | (streamContent & 0x0F))
	payload.writeByte(componentType)
	payload.writeByte(0x00) // component_tag
	payload.writeString(pad3(language))
	payload.writeString(text)
	body, err := payload.bytes()
	if err != nil {
		b.err = err
		return
	}
	b.writeByte(0x50)
	b.writeByte(byte(len(body)))
	b.writeBytes(body)
}

func audioComponentDescriptor(b *bump, componentType byte, language string, dualMono bool) {
	payload := newBump(9)
	payload.writeByte(0xF0 | 0x01) // stream_content: audio
	payload.writeByte(componentType)
	payload.writeByte(0x00) // component_tag
	payload.writeByte(0xFF) // stream_type: ADTS AAC (placeholder, refined per kind by caller)
	payload.writeByte(0x00) // simulcast_group_tag
	mainComponent := byte(0x80)
	if dualMono {
		mainComponent |= 0x02
	}
	payload.writeByte(mainComponent | 0x3F)
	payload.writeString(pad3(language))
	if dualMono {
		payload.writeString(pad3(language))
	}
	body, err := payload.bytes()
	if err != nil {
		b.err = err
		return
	}
	b.writeByte(0xC4)
	b.writeByte(byte(len(body)))
	b.writeBytes(body)
}

func contentDescriptor(b *bump, genre, subGenre byte) {
	b.writeByte(0x54)
	b.writeByte(2)
	b.writeByte(genre<<4 | subGenre&0x0F)
	b.writeByte(0x00)
}

// iso639LanguageDescriptor encodes the audio-type descriptor used for
// non-ISDB audio elementary streams.
func iso639LanguageDescriptor(b *bump, language string, audioType byte) {
	b.writeByte(0x0A)
	b.writeByte(4)
	b.writeString(pad3(language))
	b.writeByte(audioType)
}

func registrationDescriptor(b *bump, formatID string) {
	b.writeByte(0x05)
	b.writeByte(byte(len(formatID)))
	b.writeString(formatID)
}

// ac3Descriptor and eac3Descriptor emit the minimal DVB AC-3/Enhanced
// AC-3 descriptors (tags 0x6A / 0x7A). They are only reached when
// FlagSystemB is set, where the stream is carried as PRIVATE_DATA (0x06)
// and these descriptors identify the codec.
func ac3Descriptor(b *bump) {
	b.writeByte(0x6A)
	b.writeByte(1)
	b.writeByte(0x00)
}

func eac3Descriptor(b *bump) {
	b.writeByte(0x7A)
	b.writeByte(1)
	b.writeByte(0x00)
}

// opusDVBExtensionDescriptor implements the DVB extension descriptor
// (tag 0x7F, extension 0x80) used for Opus in MPEG-TS, carrying the
// channel-configuration byte derived from the stream's channel count
// and whether a Vorbis-style channel mapping table is present.
func opusDVBExtensionDescriptor(b *bump, channelConfigCode byte) {
	payload := newBump(2)
	payload.writeByte(0x80) // DVB extension descriptor tag extension: user_defined (Opus)
	payload.writeByte(channelConfigCode)
	body, err := payload.bytes()
	if err != nil {
		b.err = err
		return
	}
	b.writeByte(0x7F)
	b.writeByte(byte(len(body)))
	b.writeBytes(body)
}

// opusChannelConfigCode maps a channel count and "uses Vorbis mapping
// family 1 table" flag to the DVB Opus extension's channel_config_code,
// per the ETSI TS 102 366 Opus-in-DVB mapping table.
func opusChannelConfigCode(channels int, vorbisMapping bool) byte {
	switch {
	case channels == 1:
		return 0x01
	case channels == 2 && !vorbisMapping:
		return 0x02
	case channels == 2 && vorbisMapping:
		return 0x03
	case channels == 3:
		return 0x04
	case channels == 4:
		return 0x05
	case channels == 5:
		return 0x06
	case channels == 6:
		return 0x07
	case channels == 8:
		return 0x09
	default:
		return 0x00 // explicit mapping required, channel_config_code reserved
	}
}

func dvbSubtitleDescriptor(b *bump, language string, subtitlingType, compositionPage, ancillaryPage byte) {
	b.writeByte(0x59)
	b.writeByte(8)
	b.writeString(pad3(language))
	b.writeByte(subtitlingType)
	b.writeByte(byte(compositionPage >> 8))
	b.writeByte(compositionPage)
	b.writeByte(byte(ancillaryPage >> 8))
	b.writeByte(ancillaryPage)
}

func dvbTeletextDescriptor(b *bump, language string, teletextType, magazineNumber, pageNumber byte) {
	b.writeByte(0x56)
	b.writeByte(5)
	b.writeString(pad3(language))
	b.writeByte(teletextType<<3 | magazineNumber&0x07)
	b.writeByte(pageNumber)
}
