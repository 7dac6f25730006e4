package lz77

import "io"

// sliceByteReader reads compressed input from a byte slice.
type sliceByteReader struct {
	data []byte // The compressed token stream.
	pos  int    // Bytes consumed so far.
}

// ReadByte reads a byte from the slice.
func (r *sliceByteReader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}

	b := r.data[r.pos]
	r.pos++

	return b, nil
}

// remaining returns the number of unread bytes.
func (r *sliceByteReader) remaining() int {
	return len(r.data) - r.pos
}
