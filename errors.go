// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/lz77

package lz77

import (
	"errors"
	"fmt"
)

// ErrHeader is wrapped by every fatal header error; test with errors.Is(err, ErrHeader).
var ErrHeader = errors.New("lz77 header")

// Header errors. These are the only failures Decompress reports for well-formed calls.
var (
	ErrBadMagic  = fmt.Errorf("%w: bad magic", ErrHeader)
	ErrTruncated = fmt.Errorf("%w: truncated", ErrHeader)
	ErrSizeLimit = fmt.Errorf("%w: decompressed size exceeds limit", ErrHeader)
)

// Caller errors.
var (
	ErrUnknownVariant = errors.New("unknown variant")
	ErrNilReader      = errors.New("reader is nil")
	ErrInputTooLarge  = errors.New("input exceeds MaxInputSize")
)
