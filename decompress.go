package lz77

import (
	"fmt"
	"io"
	"math"
)

// Decompress decodes src as variant v into a new buffer of exactly Header.DecompressedSize bytes.
// Options nil means DefaultOptions (auto layout, auto convention, no limits).
//
// Only header problems are returned as errors (they wrap ErrHeader), plus ErrUnknownVariant.
// Window underruns, trailing input, incomplete tokens and size mismatches are reported in
// Diagnostics next to a best-effort buffer padded with zeros or truncated to the declared size.
//
// The returned buffer is always as long as the header declares, up to 4 GiB, however short
// the input. Set Options.MaxDecompressedSize (see StrictSizeOptions) for untrusted input.
func Decompress(src []byte, v Variant, opts *Options) ([]byte, Diagnostics, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	h, err := ReadHeader(src, v, opts)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	if uint64(h.DecompressedSize) > math.MaxInt {
		return nil, Diagnostics{}, fmt.Errorf("%w: declared=%d", ErrSizeLimit, h.DecompressedSize)
	}

	payload := src[h.Size:]
	limit := int(h.DecompressedSize)

	var (
		d    *decoder
		conv Convention
	)

	switch v {
	case VariantToken:
		d = newDecoder(payload, limit)
		decodeTokenStream(d)

	case VariantFlag:
		conv = opts.Convention
		if conv == ConventionFromFlags {
			conv = conventionFromFlags(h)
		}

		switch conv {
		case ConventionMSB, ConventionLSB:
			d = newDecoder(payload, limit)
			decodeFlagStream(d, conv)
		default:
			d, conv = decodeFlagAuto(payload, limit)
		}

	default:
		return nil, Diagnostics{}, fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
	}

	diag := Diagnostics{
		Header:          h,
		Convention:      conv,
		BytesConsumed:   h.Size + d.in.pos,
		TrailingBytes:   d.in.remaining(),
		BackReferences:  d.backRefs,
		WindowUnderruns: d.underruns,
		Produced:        len(d.out),
		SizeMismatch:    len(d.out) != limit,
		IncompleteToken: d.incomplete,
	}

	return padTo(d.out, limit), diag, nil
}

// DecompressFromReader reads the full stream then calls Decompress. No decoding logic of its own.
// If opts.MaxInputSize > 0 and more bytes are available, returns ErrInputTooLarge.
func DecompressFromReader(r io.Reader, v Variant, opts *Options) ([]byte, Diagnostics, error) {
	if r == nil {
		return nil, Diagnostics{}, ErrNilReader
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	if opts.MaxInputSize > 0 {
		r = io.LimitReader(r, int64(opts.MaxInputSize)+1)
	}

	src, err := io.ReadAll(r)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	if opts.MaxInputSize > 0 && len(src) > opts.MaxInputSize {
		return nil, Diagnostics{}, fmt.Errorf("%w: max=%d", ErrInputTooLarge, opts.MaxInputSize)
	}

	return Decompress(src, v, opts)
}

// decodeFlagAuto decodes payload with both bit orders and keeps the better result:
// fewer window underruns, then reaching the declared size, then MSB.
func decodeFlagAuto(payload []byte, limit int) (*decoder, Convention) {
	msb := newDecoder(payload, limit)
	decodeFlagStream(msb, ConventionMSB)
	if msb.underruns == 0 && msb.full() {
		return msb, ConventionMSB
	}

	lsb := newDecoder(payload, limit)
	decodeFlagStream(lsb, ConventionLSB)

	switch {
	case lsb.underruns < msb.underruns:
		return lsb, ConventionLSB
	case lsb.underruns == msb.underruns && lsb.full() && !msb.full():
		return lsb, ConventionLSB
	default:
		return msb, ConventionMSB
	}
}

// conventionFromFlags maps bit 0 of the long header flags word to a bit order.
func conventionFromFlags(h Header) Convention {
	if h.Layout != LayoutLong {
		return ConventionAuto
	}
	if h.Flags&1 == 1 {
		return ConventionLSB
	}

	return ConventionMSB
}

// padTo returns out resized to exactly n bytes, zero-filling any tail.
func padTo(out []byte, n int) []byte {
	if len(out) >= n {
		return out[:n]
	}

	return append(out, make([]byte, n-len(out))...)
}
