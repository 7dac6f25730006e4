package lz77

import "fmt"

// Diagnostics describes recoverable anomalies of one decode call.
// None of them is an error: callers decide whether a mismatch is acceptable.
type Diagnostics struct {
	Header     Header
	Convention Convention // Flag variant: the bit order actually used (MSB or LSB).

	BytesConsumed   int  // Header plus token-stream bytes read.
	TrailingBytes   int  // Input bytes left unread after decoding stopped.
	BackReferences  int  // Back-references processed.
	WindowUnderruns int  // Back-references that reached before the start of output.
	Produced        int  // Bytes decoded before padding or truncation.
	SizeMismatch    bool // Produced differs from Header.DecompressedSize.
	IncompleteToken bool // Input ended inside a multi-byte back-reference.
}

// Clean reports whether decoding hit no anomaly at all.
func (d Diagnostics) Clean() bool {
	return d.TrailingBytes == 0 && d.WindowUnderruns == 0 && !d.SizeMismatch && !d.IncompleteToken
}

// String formats the counters on one line for logs.
func (d Diagnostics) String() string {
	s := fmt.Sprintf("consumed=%d trailing=%d refs=%d underruns=%d produced=%d/%d",
		d.BytesConsumed, d.TrailingBytes, d.BackReferences, d.WindowUnderruns,
		d.Produced, d.Header.DecompressedSize)
	if d.Header.Variant == VariantFlag {
		s += " convention=" + d.Convention.String()
	}
	if d.SizeMismatch {
		s += " size-mismatch"
	}
	if d.IncompleteToken {
		s += " incomplete-token"
	}

	return s
}
