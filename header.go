// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/lz77

package lz77

import (
	"encoding/binary"
	"fmt"
)

// Header is the parsed preamble of a compressed stream.
type Header struct {
	Variant          Variant
	Layout           Layout // LayoutShort or LayoutLong; always LayoutLong for VariantToken.
	Size             int    // Header bytes preceding the token stream.
	CompressedSize   uint32 // Flag variant, long layout only.
	DecompressedSize uint32
	Flags            uint32 // Flag variant, long layout only.
	Aux1             uint32 // Token variant only; opaque to decoding.
	Aux2             uint32 // Token variant only; opaque to decoding.
}

// ReadHeader parses the preamble of src for variant v.
// Options nil means DefaultOptions.
func ReadHeader(src []byte, v Variant, opts *Options) (Header, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if len(src) < MagicSize {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrTruncated, len(src))
	}

	if string(src[:MagicSize]) != Magic {
		return Header{}, fmt.Errorf("%w: %q", ErrBadMagic, src[:MagicSize])
	}

	var (
		h   Header
		err error
	)

	switch v {
	case VariantFlag:
		h, err = readFlagHeader(src, opts.Layout)
	case VariantToken:
		h, err = readTokenHeader(src)
	default:
		return Header{}, fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
	}
	if err != nil {
		return Header{}, err
	}

	if opts.MaxDecompressedSize > 0 && uint64(h.DecompressedSize) > uint64(opts.MaxDecompressedSize) {
		return Header{}, fmt.Errorf("%w: declared=%d max=%d", ErrSizeLimit, h.DecompressedSize, opts.MaxDecompressedSize)
	}

	return h, nil
}

// readTokenHeader reads the fixed 16-byte model-data header.
func readTokenHeader(src []byte) (Header, error) {
	if len(src) < LongHeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes, token header needs %d", ErrTruncated, len(src), LongHeaderSize)
	}

	return Header{
		Variant:          VariantToken,
		Layout:           LayoutLong,
		Size:             LongHeaderSize,
		DecompressedSize: binary.LittleEndian.Uint32(src[4:8]),
		Aux1:             binary.LittleEndian.Uint32(src[8:12]),
		Aux2:             binary.LittleEndian.Uint32(src[12:16]),
	}, nil
}

// readFlagHeader reads the 8- or 16-byte flag-variant header.
func readFlagHeader(src []byte, layout Layout) (Header, error) {
	short := func() Header {
		return Header{
			Variant:          VariantFlag,
			Layout:           LayoutShort,
			Size:             ShortHeaderSize,
			DecompressedSize: binary.LittleEndian.Uint32(src[4:8]),
		}
	}
	long := func() Header {
		return Header{
			Variant:          VariantFlag,
			Layout:           LayoutLong,
			Size:             LongHeaderSize,
			CompressedSize:   binary.LittleEndian.Uint32(src[4:8]),
			DecompressedSize: binary.LittleEndian.Uint32(src[8:12]),
			Flags:            binary.LittleEndian.Uint32(src[12:16]),
		}
	}

	switch layout {
	case LayoutShort:
		if len(src) < ShortHeaderSize {
			return Header{}, fmt.Errorf("%w: %d bytes, short header needs %d", ErrTruncated, len(src), ShortHeaderSize)
		}
		return short(), nil

	case LayoutLong:
		if len(src) < LongHeaderSize {
			return Header{}, fmt.Errorf("%w: %d bytes, long header needs %d", ErrTruncated, len(src), LongHeaderSize)
		}
		return long(), nil

	case LayoutAuto:
		if len(src) < ShortHeaderSize {
			return Header{}, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncated, len(src), ShortHeaderSize)
		}
		if len(src) < LongHeaderSize {
			return short(), nil
		}
		return pickFlagLayout(len(src), short(), long()), nil

	default:
		return Header{}, fmt.Errorf("unknown layout %d", int(layout))
	}
}

// pickFlagLayout chooses between the two header interpretations of an n-byte input.
// A compressed-size word that matches the input length selects the long layout when
// its decompressed size is plausible too (a short header's size word can equal the
// input length by coincidence); otherwise the interpretation whose decompressed size
// the payload could plausibly produce is kept.
func pickFlagLayout(n int, short, long Header) Header {
	total := uint64(n)
	longOK := long.DecompressedSize > 0 && uint64(long.DecompressedSize) <= plausibleSize(n-LongHeaderSize)
	emptyLong := n == LongHeaderSize && long.DecompressedSize == 0

	if c := uint64(long.CompressedSize); (c == total || c == total-LongHeaderSize) && (longOK || emptyLong) {
		return long
	}

	shortOK := uint64(short.DecompressedSize) <= plausibleSize(n-ShortHeaderSize)

	switch {
	case longOK && !shortOK:
		return long
	case shortOK && !longOK:
		return short
	case longOK && shortOK:
		if uint64(long.CompressedSize) <= total {
			return long
		}
		return short
	default:
		return long
	}
}

// plausibleSize is the most output a flag-variant payload of n bytes can produce.
func plausibleSize(n int) uint64 {
	return uint64(n)*flagExpansion + FlagMaxMatch
}
