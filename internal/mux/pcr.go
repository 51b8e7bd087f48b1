package mux

// pcrTimeBase is the 27MHz PCR clock, per spec.md §4.7.
const pcrTimeBase = 27_000_000

// computeCBRPCR implements the CBR get_pcr() formula:
// rescale(tell()+11, 8*pcrTimeBase, mux_rate) + first_pcr.
func computeCBRPCR(tell int64, muxRate int64, firstPCR int64) int64 {
	return rescale(tell+11, 8*pcrTimeBase, muxRate) + firstPCR
}

// computeVBRPCR implements the VBR formula: (dts-delay)*300, converting a
// 90kHz timestamp to 27MHz units.
func computeVBRPCR(dts, delay int64) int64 {
	return (dts - delay) * 300
}

// rescale computes a*b/c using 128-bit-safe integer arithmetic via
// big.Int-free split multiplication, avoiding overflow for the large
// byte-count * clock-rate products get_pcr() produces.
func rescale(a, b, c int64) int64 {
	if c == 0 {
		return 0
	}
	hi, lo := mul64(a, b)
	q, _ := divmod128(hi, lo, c)
	return q
}

func mul64(a, b int64) (hi, lo uint64) {
	ua, ub := uint64(a), uint64(b)
	aLo, aHi := ua&0xFFFFFFFF, ua>>32
	bLo, bHi := ub&0xFFFFFFFF, ub>>32

	t0 := aLo * bLo
	t1 := aLo*bHi + aHi*bLo
	t2 := aHi * bHi

	lo = t0 + (t1 << 32)
	carry := uint64(0)
	if lo < t0 {
		carry = 1
	}
	hi = t2 + (t1 >> 32) + carry
	return hi, lo
}

// divmod128 divides the 128-bit value (hi:lo) by c, returning quotient
// and remainder. c is assumed to fit in 63 bits (mux rates and PCR
// extents never approach 2^63).
func divmod128(hi, lo uint64, c int64) (q, r int64) {
	uc := uint64(c)
	rem := uint64(0)
	var quotient uint64
	for i := 63; i >= 0; i-- {
		rem <<= 1
		bit := (hi >> uint(i)) & 1
		rem |= bit
		if rem >= uc {
			rem -= uc
			quotient |= 1 << uint(i)
		}
	}
	_ = quotient // hi consumed; fall through to lo using same remainder
	quotientLo := uint64(0)
	for i := 63; i >= 0; i-- {
		rem <<= 1
		bit := (lo >> uint(i)) & 1
		rem |= bit
		if rem >= uc {
			rem -= uc
			quotientLo |= 1 << uint(i)
		}
	}
	return int64(quotientLo), int64(rem)
}

// encodePCR splits a 27MHz PCR value into its 33-bit base (90kHz) and
// 9-bit extension components.
func encodePCR(pcr int64) (base uint64, ext uint16) {
	base = uint64(pcr/300) & 0x1FFFFFFFF
	ext = uint16(pcr%300) & 0x1FF
	return base, ext
}

// writePCRField appends the 6-byte PCR encoding used by the adaptation
// field of PES cells and PCR-only cells.
func writePCRField(buf []byte, pcr int64) {
	base, ext := encodePCR(pcr)
	buf[0] = byte(base >> 25)
	buf[1] = byte(base >> 17)
	buf[2] = byte(base >> 9)
	buf[3] = byte(base >> 1)
	buf[4] = byte(base<<7)&0x80 | 0x7E | byte(ext>>8)
	buf[5] = byte(ext)
}

// m2tsPrefix computes the 4-byte TP_extra_header preceding each TS cell
// in M2TS mode: get_pcr() mod 2^30, big-endian (DESIGN.md decision 6).
func m2tsPrefix(pcr int64) [4]byte {
	v := uint32(pcr % (1 << 30))
	return [4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}
