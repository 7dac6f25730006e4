package lz77

// decodeTokenStream decodes a token-byte stream into d.
// Tokens with the high bit clear are literals; otherwise
// [1 | len:5 | offset_hi:2] [offset_lo:8] with length biased by 3 and offset by 1.
func decodeTokenStream(d *decoder) {
	for !d.full() {
		token, err := d.in.ReadByte()
		if err != nil {
			return
		}

		if token&tokenRefBit == 0 {
			d.literal(token)
			continue
		}

		next, err := d.in.ReadByte()
		if err != nil {
			d.incomplete = true
			return
		}

		length := int(token&tokenLenMask)>>2 + TokenMinMatch
		offset := (int(token&tokenOffMask)<<8 | int(next)) + 1
		copyBackRef(d, offset, length)
	}
}
