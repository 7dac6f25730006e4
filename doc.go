/*
Package lz77 decodes the "LZ77" compressed streams found in game asset containers.

Every stream starts with the ASCII magic "LZ77" and a little-endian decompressed size.
Two token encodings exist and the header does not say which one follows, so the caller
passes a Variant (usually derived from the file extension or container type):

VariantFlag (textures, fonts, sprite sheets): one flag byte per 8 operations; a set bit is
a 2-byte back-reference (12-bit offset, length 3..18), a clear bit a literal. The header is
either 8 bytes (magic, size) or 16 bytes (magic, compressed size, size, flags); ReadHeader
picks the plausible one unless Options.Layout forces it. Two bit orders are in the wild
(see Convention); by default both are tried and the one with fewer window underruns wins.

VariantToken (model data): a byte with the high bit clear is a literal, otherwise it starts
a back-reference [1 | len:5 | offset_hi:2] [offset_lo:8] (10-bit offset, length 3..34).
The header is 16 bytes: magic, size and two opaque words reported in Diagnostics.

Decoding never fails after the header: back-references before the start of output write
Filler, truncated tokens stop the decode, and the output is padded or truncated to the
declared size. Diagnostics tells the caller what happened. Each call owns all of its state,
so any number of calls may run concurrently.

# Examples

Decompress a texture:

	out, diag, err := lz77.Decompress(data, lz77.VariantFlag, nil)
	if err != nil {
		return err // bad magic or truncated header
	}
	if diag.SizeMismatch {
		log.Printf("short stream: %s", diag)
	}

Decompress model data with a size cap:

	opts := lz77.StrictSizeOptions(64 << 20)
	out, diag, err := lz77.Decompress(data, lz77.VariantToken, opts)

Decompress from a stream:

	out, diag, err := lz77.DecompressFromReader(f, lz77.VariantFlag, nil)
*/
package lz77
