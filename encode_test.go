package lz77

import (
	"encoding/binary"
	"fmt"
)

// Test-only encoders. The format is decode-only in production; these produce fixtures.

// longestMatch finds the longest earlier match for src[i:] within maxOff bytes back.
// Overlapping matches are allowed since the decoder re-reads its own output.
func longestMatch(src []byte, i, maxOff, maxLen int) (offset, length int) {
	for off := 1; off <= maxOff && off <= i; off++ {
		n := 0
		for n < maxLen && i+n < len(src) && src[i+n-off] == src[i+n] {
			n++
		}

		if n > length {
			length = n
			offset = off
			if length == maxLen {
				break
			}
		}
	}

	return offset, length
}

// encodeFlag encodes src as a flag-variant token stream (no header).
// searchLimit 0 emits literals only.
func encodeFlag(src []byte, conv Convention, searchLimit int) []byte {
	maxOff := min(searchLimit, FlagWindowSize)
	if conv == ConventionLSB {
		// Unbiased 12-bit offset cannot address 4096.
		maxOff = min(maxOff, FlagWindowSize-1)
	}

	out := make([]byte, 0, len(src)+len(src)/8+1)
	flagPos := -1
	bit := FlagBits

	for i := 0; i < len(src); {
		if bit == FlagBits {
			flagPos = len(out)
			out = append(out, 0)
			bit = 0
		}

		offset, length := longestMatch(src, i, maxOff, FlagMaxMatch)
		if length >= FlagMinMatch {
			if conv == ConventionLSB {
				out[flagPos] |= 1 << bit
				out = append(out, byte(offset), byte(offset>>8)<<4|byte(length-FlagMinMatch))
			} else {
				out[flagPos] |= 0x80 >> bit
				info := uint16(length-FlagMinMatch)<<12 | uint16(offset-1)
				out = append(out, byte(info>>8), byte(info))
			}
			i += length
		} else {
			out = append(out, src[i])
			i++
		}

		bit++
	}

	return out
}

// encodeToken encodes 7-bit src as a token-variant stream (no header).
// Bytes with the high bit set are only representable inside back-references.
func encodeToken(src []byte, searchLimit int) ([]byte, error) {
	maxOff := min(searchLimit, TokenWindowSize)
	out := make([]byte, 0, len(src))

	for i := 0; i < len(src); {
		offset, length := longestMatch(src, i, maxOff, TokenMaxMatch)
		if length >= TokenMinMatch {
			enc := offset - 1
			out = append(out, tokenRefBit|byte(length-TokenMinMatch)<<2|byte(enc>>8), byte(enc))
			i += length
			continue
		}

		if src[i]&tokenRefBit != 0 {
			return nil, fmt.Errorf("byte 0x%02x at %d is not a literal", src[i], i)
		}
		out = append(out, src[i])
		i++
	}

	return out, nil
}

// shortFlagHeader builds an 8-byte flag-variant header.
func shortFlagHeader(size int) []byte {
	h := make([]byte, ShortHeaderSize)
	copy(h, Magic)
	binary.LittleEndian.PutUint32(h[4:], uint32(size))

	return h
}

// longFlagHeader builds a 16-byte flag-variant header for a payload of payloadLen bytes.
func longFlagHeader(payloadLen, size int, flags uint32) []byte {
	h := make([]byte, LongHeaderSize)
	copy(h, Magic)
	binary.LittleEndian.PutUint32(h[4:], uint32(payloadLen+LongHeaderSize))
	binary.LittleEndian.PutUint32(h[8:], uint32(size))
	binary.LittleEndian.PutUint32(h[12:], flags)

	return h
}

// tokenHeader builds a 16-byte token-variant header.
func tokenHeader(size int, aux1, aux2 uint32) []byte {
	h := make([]byte, LongHeaderSize)
	copy(h, Magic)
	binary.LittleEndian.PutUint32(h[4:], uint32(size))
	binary.LittleEndian.PutUint32(h[8:], aux1)
	binary.LittleEndian.PutUint32(h[12:], aux2)

	return h
}

// join concatenates byte slices into a new slice.
func join(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}

	return out
}
