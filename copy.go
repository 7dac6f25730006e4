// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/lz77

package lz77

// decoder holds the state of one decode call. It is never shared between calls.
type decoder struct {
	in         sliceByteReader
	out        []byte // Decoded bytes; len(out) is the write position.
	limit      int    // Declared decompressed size.
	backRefs   int
	underruns  int
	incomplete bool
}

// newDecoder returns a decoder over payload producing at most limit bytes.
// The output reservation is capped by what payload can expand to, so a
// hostile size field alone does not reserve memory the stream cannot fill.
func newDecoder(payload []byte, limit int) *decoder {
	return &decoder{
		in:    sliceByteReader{data: payload},
		out:   make([]byte, 0, min(limit, maxExpansion(len(payload)))),
		limit: limit,
	}
}

// maxExpansion bounds the output of n payload bytes in either variant:
// a 2-byte token reference yields at most TokenMaxMatch bytes.
func maxExpansion(n int) int {
	return (n/2+1)*TokenMaxMatch + n
}

// full reports whether the declared size has been reached.
func (d *decoder) full() bool {
	return len(d.out) >= d.limit
}

// literal appends one input byte to the output.
func (d *decoder) literal(b byte) {
	d.out = append(d.out, b)
}

// copyBackRef appends up to length bytes read offset bytes behind the write position,
// stopping at the declared size. The source is re-evaluated for every byte, so a
// reference shorter than its length repeats the trailing offset bytes (offset 1 is RLE).
// Bytes whose source lies before the start of output (or offset <= 0) become Filler;
// such a reference counts as one window underrun. It never fails.
func copyBackRef(d *decoder, offset, length int) {
	d.backRefs++

	n := min(length, d.limit-len(d.out))
	if n <= 0 {
		return
	}

	// Whole source already written and not overlapping the destination.
	if offset >= n && offset <= len(d.out) {
		src := len(d.out) - offset
		d.out = append(d.out, d.out[src:src+n]...)
		return
	}

	underrun := false
	for range n {
		src := len(d.out) - offset
		if offset <= 0 || src < 0 {
			d.out = append(d.out, Filler)
			underrun = true
			continue
		}

		d.out = append(d.out, d.out[src])
	}

	if underrun {
		d.underruns++
	}
}
