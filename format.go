package lz77

// Container header constants.
const (
	Magic           = "LZ77" // ASCII marker at offset 0 of every compressed stream.
	MagicSize       = 4      // Bytes occupied by Magic.
	ShortHeaderSize = 8      // Magic + decompressed size.
	LongHeaderSize  = 16     // Magic + three 32-bit words.
)

// Flag-byte (variant A) format constants.
const (
	FlagBits       = 8    // Operations described by one flag byte.
	FlagWindowSize = 4096 // Largest addressable back-reference distance (12-bit offset).
	FlagMinMatch   = 3    // Nibble 0 encodes a 3-byte copy.
	FlagMaxMatch   = 18   // Nibble 15 encodes an 18-byte copy.

	flagExpansion = 9 // Output/input ratio bound, 144/17 rounded up.
)

// Token-byte (variant B) format constants.
const (
	TokenWindowSize = 1024 // Largest addressable back-reference distance (10-bit offset).
	TokenMinMatch   = 3    // Length field 0 encodes a 3-byte copy.
	TokenMaxMatch   = 34   // Length field 31 encodes a 34-byte copy.

	tokenRefBit  = 0x80 // High bit marks a back-reference token.
	tokenLenMask = 0x7C // Five length bits.
	tokenOffMask = 0x03 // Two high offset bits; the low eight follow in the next byte.
)

// Filler is appended for each byte of a back-reference that points before the start of output.
const Filler = 0x00
