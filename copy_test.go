package lz77

import (
	"bytes"
	"testing"
)

// decoderWith returns a decoder whose output already holds prefix.
func decoderWith(prefix string, limit int) *decoder {
	d := newDecoder(nil, limit)
	d.out = append(d.out, prefix...)

	return d
}

func TestCopyBackRef(t *testing.T) {
	t.Run("non-overlapping", func(t *testing.T) {
		d := decoderWith("abcdefgh", 16)
		copyBackRef(d, 8, 4)
		if got, want := string(d.out), "abcdefghabcd"; got != want {
			t.Fatalf("got %q want %q", got, want)
		}
		if d.underruns != 0 || d.backRefs != 1 {
			t.Fatalf("underruns=%d refs=%d", d.underruns, d.backRefs)
		}
	})

	t.Run("overlapping", func(t *testing.T) {
		d := decoderWith("ABC", 8)
		copyBackRef(d, 3, 5)
		if got, want := string(d.out), "ABCABCAB"; got != want {
			t.Fatalf("got %q want %q", got, want)
		}
	})

	t.Run("rle", func(t *testing.T) {
		d := decoderWith("b", 64)
		copyBackRef(d, 1, 18)
		if want := bytes.Repeat([]byte("b"), 19); !bytes.Equal(d.out, want) {
			t.Fatalf("got %q", d.out)
		}
	})

	t.Run("stops-at-limit", func(t *testing.T) {
		d := decoderWith("xy", 5)
		copyBackRef(d, 2, 18)
		if got, want := string(d.out), "xyxyx"; got != want {
			t.Fatalf("got %q want %q", got, want)
		}

		copyBackRef(d, 1, 3)
		if len(d.out) != 5 || d.backRefs != 2 {
			t.Fatalf("full buffer must not grow: len=%d refs=%d", len(d.out), d.backRefs)
		}
	})

	t.Run("underrun-fills", func(t *testing.T) {
		d := decoderWith("", 8)
		copyBackRef(d, 4, 3)
		if !bytes.Equal(d.out, []byte{Filler, Filler, Filler}) {
			t.Fatalf("got %v", d.out)
		}
		if d.underruns != 1 {
			t.Fatalf("underruns=%d want 1", d.underruns)
		}
	})

	t.Run("underrun-then-valid", func(t *testing.T) {
		// Offset 2 with one byte written: the first byte underruns, later bytes land
		// inside the window that the copy itself has grown.
		d := decoderWith("A", 8)
		copyBackRef(d, 2, 4)
		if want := []byte{'A', Filler, 'A', Filler, 'A'}; !bytes.Equal(d.out, want) {
			t.Fatalf("got %v want %v", d.out, want)
		}
		if d.underruns != 1 {
			t.Fatalf("underruns=%d want 1", d.underruns)
		}
	})

	t.Run("zero-offset", func(t *testing.T) {
		d := decoderWith("abc", 8)
		copyBackRef(d, 0, 3)
		if want := []byte{'a', 'b', 'c', 0, 0, 0}; !bytes.Equal(d.out, want) {
			t.Fatalf("got %v want %v", d.out, want)
		}
		if d.underruns != 1 {
			t.Fatalf("underruns=%d want 1", d.underruns)
		}
	})
}

func TestNewDecoderReservation(t *testing.T) {
	// A size word of 0xFFFFFFFF over a 3-byte payload must not reserve 4 GiB.
	payload := []byte{'z', 0xFC, 0x00}
	d := newDecoder(payload, 1<<32-1)
	if c := cap(d.out); c > maxExpansion(len(payload)) {
		t.Fatalf("reserved %d bytes for a %d-byte payload", c, len(payload))
	}

	decodeTokenStream(d)
	if want := bytes.Repeat([]byte("z"), 35); !bytes.Equal(d.out, want) {
		t.Fatalf("got %q want %q", d.out, want)
	}

	small := newDecoder(make([]byte, 64), 10)
	if cap(small.out) != 10 {
		t.Fatalf("cap=%d want declared size 10", cap(small.out))
	}
}
