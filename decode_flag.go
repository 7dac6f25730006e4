package lz77

// decodeFlagStream decodes a flag-byte stream into d using conv (ConventionMSB or ConventionLSB).
// A set flag bit is a back-reference, a clear bit a literal.
func decodeFlagStream(d *decoder, conv Convention) {
	lsb := conv == ConventionLSB

	for !d.full() {
		flagByte, err := d.in.ReadByte()
		if err != nil {
			return
		}

		for bit := 0; bit < FlagBits && !d.full(); bit++ {
			var isRef bool
			if lsb {
				isRef = (flagByte>>bit)&1 == 1
			} else {
				isRef = flagByte&(0x80>>bit) != 0
			}

			if !isRef {
				b, err := d.in.ReadByte()
				if err != nil {
					return
				}
				d.literal(b)
				continue
			}

			b0, err := d.in.ReadByte()
			if err != nil {
				return
			}
			b1, err := d.in.ReadByte()
			if err != nil {
				d.incomplete = true
				return
			}

			offset, length := flagReference(b0, b1, lsb)
			copyBackRef(d, offset, length)
		}
	}
}

// flagReference unpacks a two-byte flag-variant back-reference.
func flagReference(b0, b1 byte, lsb bool) (offset, length int) {
	if lsb {
		// [offset_lo:8] [offset_hi:4 | len:4], offset unbiased.
		offset = int(b0) | int(b1&0xF0)<<4
		length = int(b1&0x0F) + FlagMinMatch
		return offset, length
	}

	// Big-endian [len:4 | offset:12], offset biased by one.
	info := uint16(b0)<<8 | uint16(b1)
	length = int((info>>12)&0xF) + FlagMinMatch
	offset = int(info&0xFFF) + 1

	return offset, length
}
