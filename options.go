package lz77

import "fmt"

// Variant selects the token encoding. The header does not identify it;
// callers derive it from context such as file extension or container type.
type Variant int

// Variant constants.
const (
	VariantFlag  Variant = iota + 1 // Flag byte per 8 operations (textures, fonts, sprites).
	VariantToken                    // Self-describing token bytes (model data).
)

// String returns "flag" or "token".
func (v Variant) String() string {
	switch v {
	case VariantFlag:
		return "flag"
	case VariantToken:
		return "token"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant accepts "a"/"flag" and "b"/"token".
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "a", "A", "flag":
		return VariantFlag, nil
	case "b", "B", "token":
		return VariantToken, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Layout selects the flag-variant header length.
type Layout int

// Layout constants.
const (
	LayoutAuto  Layout = iota // Pick by size plausibility (see ReadHeader).
	LayoutShort               // Magic + decompressed size.
	LayoutLong                // Magic + compressed size + decompressed size + flags.
)

// String returns the layout name.
func (l Layout) String() string {
	switch l {
	case LayoutAuto:
		return "auto"
	case LayoutShort:
		return "short"
	case LayoutLong:
		return "long"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// Convention is the flag-variant bit order and back-reference layout.
// Observed files disagree, and neither is known to be authoritative for a given asset type.
type Convention int

// Convention constants.
const (
	// ConventionAuto decodes with both MSB and LSB and keeps the one with fewer window underruns.
	ConventionAuto Convention = iota
	// ConventionMSB tests flag bits from 0x80 down; reference is big-endian
	// [len:4 | offset-1:12].
	ConventionMSB
	// ConventionLSB tests flag bits from 0x01 up; reference is
	// [offset_lo:8] [offset_hi:4 | len-3:4] with no offset bias.
	ConventionLSB
	// ConventionFromFlags takes LSB when bit 0 of the long header flags word is set, else MSB.
	// Falls back to ConventionAuto for short headers.
	ConventionFromFlags
)

// String returns the name accepted by ParseConvention.
func (c Convention) String() string {
	switch c {
	case ConventionAuto:
		return "auto"
	case ConventionMSB:
		return "msb"
	case ConventionLSB:
		return "lsb"
	case ConventionFromFlags:
		return "flags"
	default:
		return fmt.Sprintf("Convention(%d)", int(c))
	}
}

// ParseConvention accepts the names returned by Convention.String.
func ParseConvention(s string) (Convention, error) {
	for _, c := range []Convention{ConventionAuto, ConventionMSB, ConventionLSB, ConventionFromFlags} {
		if c.String() == s {
			return c, nil
		}
	}

	return 0, fmt.Errorf("unknown convention %q", s)
}

// Options configures Decompress and DecompressFromReader.
type Options struct {
	// Layout forces the flag-variant header length. Ignored for VariantToken.
	Layout Layout
	// Convention selects the flag-variant bit order. Ignored for VariantToken.
	Convention Convention
	// MaxDecompressedSize rejects headers declaring more output bytes (0 = no limit).
	// The output buffer is sized from the header, so leaving it unset trusts the input.
	MaxDecompressedSize int
	// MaxInputSize limits how many bytes DecompressFromReader may read (0 = no limit).
	MaxInputSize int
}

// DefaultOptions returns options for default behavior: auto layout, auto convention, no limits.
func DefaultOptions() *Options {
	return &Options{
		Layout:     LayoutAuto,
		Convention: ConventionAuto,
	}
}

// StrictSizeOptions returns default options that reject headers declaring more than maxSize bytes
// and reader inputs longer than maxSize bytes.
func StrictSizeOptions(maxSize int) *Options {
	opts := DefaultOptions()
	opts.MaxDecompressedSize = maxSize
	opts.MaxInputSize = maxSize

	return opts
}
